package mail

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

type resendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html,omitempty"`
	Text    string   `json:"text,omitempty"`
}

type resendResponse struct {
	ID string `json:"id"`
}

type resendError struct {
	StatusCode int    `json:"statusCode"`
	Name       string `json:"name"`
	Message    string `json:"message"`
}

// ResendMailer delivers through the Resend HTTP API.
type ResendMailer struct {
	httpClient *resty.Client
	logger     *zap.Logger
}

func NewResendMailer(baseURL, apiKey string, logger *zap.Logger) *ResendMailer {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(10 * time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(500 * time.Millisecond).
		SetRetryMaxWaitTime(2 * time.Second).
		SetAuthToken(apiKey).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &ResendMailer{
		httpClient: client,
		logger:     logger,
	}
}

func (m *ResendMailer) Send(ctx context.Context, msg Message) error {
	if err := msg.validate(); err != nil {
		return err
	}

	var result resendResponse
	var apiErr resendError
	resp, err := m.httpClient.R().
		SetContext(ctx).
		SetBody(resendRequest{
			From:    msg.From,
			To:      msg.To,
			Subject: msg.Subject,
			HTML:    msg.HTML,
			Text:    msg.Text,
		}).
		SetResult(&result).
		SetError(&apiErr).
		Post("/emails")
	if err != nil {
		return fmt.Errorf("failed to call Resend API: %w", err)
	}

	if resp.IsError() {
		m.logger.Error("Resend API returned error",
			zap.Int("status_code", resp.StatusCode()),
			zap.String("name", apiErr.Name),
			zap.String("msg", apiErr.Message),
		)
		return fmt.Errorf("resend API error: %s (status: %d)", apiErr.Message, resp.StatusCode())
	}

	m.logger.Info("email sent via Resend",
		zap.String("id", result.ID),
		zap.Strings("to", msg.To),
	)
	return nil
}
