// Package mail sends the site's transactional emails through Resend or a
// plain SMTP relay.
package mail

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"vrajamarii/internal/config"
)

var ErrInvalidMessage = errors.New("invalid email message")

type Message struct {
	From    string
	To      []string
	Subject string
	HTML    string
	Text    string
}

func (m Message) validate() error {
	switch {
	case m.From == "":
		return fmt.Errorf("%w: missing sender", ErrInvalidMessage)
	case len(m.To) == 0:
		return fmt.Errorf("%w: missing recipient", ErrInvalidMessage)
	case strings.TrimSpace(m.Subject) == "":
		return fmt.Errorf("%w: missing subject", ErrInvalidMessage)
	case m.HTML == "" && m.Text == "":
		return fmt.Errorf("%w: empty body", ErrInvalidMessage)
	}
	return nil
}

type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// New builds the mailer selected by cfg.Provider.
func New(cfg config.MailConfig, log *zap.Logger) (Mailer, error) {
	switch cfg.Provider {
	case "resend":
		return NewResendMailer(cfg.ResendBaseURL, cfg.ResendAPIKey, log), nil
	case "smtp":
		return NewSMTPMailer(SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUser,
			Password: cfg.SMTPPassword,
		}, log), nil
	default:
		return nil, fmt.Errorf("unknown mail provider %q", cfg.Provider)
	}
}
