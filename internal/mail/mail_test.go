package mail

import (
	"bufio"
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"vrajamarii/internal/config"
)

func testMessage() Message {
	return Message{
		From:    "Vraja Marii <noreply@vrajamarii.ro>",
		To:      []string{"ana@example.com"},
		Subject: "Rezervarea ta a fost confirmata",
		HTML:    "<p>Buna</p>",
		Text:    "Buna",
	}
}

func TestResendMailerSend(t *testing.T) {
	var got resendRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/emails", r.URL.Path)
		assert.Equal(t, "Bearer re_test", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"49a3999c-0ce1-4ea6-ab68-afcd6dc2e794"}`))
	}))
	defer server.Close()

	m := NewResendMailer(server.URL, "re_test", zap.NewNop())
	require.NoError(t, m.Send(context.Background(), testMessage()))

	assert.Equal(t, []string{"ana@example.com"}, got.To)
	assert.Equal(t, "Rezervarea ta a fost confirmata", got.Subject)
	assert.Equal(t, "<p>Buna</p>", got.HTML)
}

func TestResendMailerAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"statusCode":422,"name":"validation_error","message":"Invalid to field"}`))
	}))
	defer server.Close()

	m := NewResendMailer(server.URL, "re_test", zap.NewNop())
	err := m.Send(context.Background(), testMessage())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid to field")
}

func TestMessageValidation(t *testing.T) {
	m := NewResendMailer("http://127.0.0.1:0", "re_test", zap.NewNop())

	msg := testMessage()
	msg.To = nil
	assert.ErrorIs(t, m.Send(context.Background(), msg), ErrInvalidMessage)

	msg = testMessage()
	msg.HTML, msg.Text = "", ""
	assert.ErrorIs(t, m.Send(context.Background(), msg), ErrInvalidMessage)
}

// fakeSMTP accepts one session without STARTTLS or AUTH and returns the
// DATA payload it received.
func fakeSMTP(t *testing.T) (host, port string, data <-chan string) {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { ln.Close() })

	out := make(chan string, 1)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()

		r := bufio.NewReader(conn)
		reply := func(s string) { conn.Write([]byte(s + "\r\n")) }
		reply("220 localhost ESMTP")

		for {
			line, err := r.ReadString('\n')
			if err != nil {
				return
			}
			cmd := strings.ToUpper(strings.TrimSpace(line))
			switch {
			case strings.HasPrefix(cmd, "EHLO"):
				reply("250-localhost")
				reply("250 8BITMIME")
			case strings.HasPrefix(cmd, "MAIL FROM"), strings.HasPrefix(cmd, "RCPT TO"):
				reply("250 OK")
			case cmd == "DATA":
				reply("354 End data with <CR><LF>.<CR><LF>")
				var body strings.Builder
				for {
					l, err := r.ReadString('\n')
					if err != nil {
						return
					}
					if l == ".\r\n" {
						break
					}
					body.WriteString(l)
				}
				out <- body.String()
				reply("250 OK")
			case cmd == "QUIT":
				reply("221 Bye")
				return
			default:
				reply("250 OK")
			}
		}
	}()

	host, port, err = net.SplitHostPort(ln.Addr().String())
	require.NoError(t, err)
	return host, port, out
}

func TestSMTPMailerSend(t *testing.T) {
	host, port, data := fakeSMTP(t)

	m := NewSMTPMailer(SMTPConfig{Host: host, Port: port}, zap.NewNop())
	require.NoError(t, m.Send(context.Background(), testMessage()))

	body := <-data
	assert.Contains(t, body, "Subject: Rezervarea ta a fost confirmata")
	assert.Contains(t, body, "To: ana@example.com")
	assert.Contains(t, body, "multipart/alternative")
	assert.Contains(t, body, "<p>Buna</p>")
}

func TestSMTPMailerConnectionRefused(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	host, port, _ := net.SplitHostPort(ln.Addr().String())
	ln.Close()

	m := NewSMTPMailer(SMTPConfig{Host: host, Port: port}, zap.NewNop())
	err = m.Send(context.Background(), testMessage())
	assert.ErrorContains(t, err, "failed to connect to SMTP server")
}

func TestEnvelopeAddress(t *testing.T) {
	assert.Equal(t, "noreply@vrajamarii.ro", envelopeAddress("Vraja Marii <noreply@vrajamarii.ro>"))
	assert.Equal(t, "noreply@vrajamarii.ro", envelopeAddress("noreply@vrajamarii.ro"))
}

func TestNewSelectsProvider(t *testing.T) {
	m, err := New(config.MailConfig{Provider: "resend", ResendBaseURL: "https://api.resend.com"}, zap.NewNop())
	require.NoError(t, err)
	assert.IsType(t, &ResendMailer{}, m)

	m, err = New(config.MailConfig{Provider: "smtp", SMTPHost: "smtp.example.com", SMTPPort: "587"}, zap.NewNop())
	require.NoError(t, err)
	assert.IsType(t, &SMTPMailer{}, m)

	_, err = New(config.MailConfig{Provider: "carrier-pigeon"}, zap.NewNop())
	assert.Error(t, err)
}

func TestBookingConfirmed(t *testing.T) {
	subject, html, text, err := BookingConfirmed("ro", "Ana", "https://vrajamarii.ro/evaluation")
	require.NoError(t, err)
	assert.Equal(t, "Rezervarea ta a fost confirmata", subject)
	assert.Contains(t, html, "Buna, Ana!")
	assert.Contains(t, html, `href="https://vrajamarii.ro/evaluation"`)
	assert.Contains(t, html, "Completeaza Evaluarea")
	assert.Contains(t, text, "Completeaza Evaluarea: https://vrajamarii.ro/evaluation")

	subject, html, _, err = BookingConfirmed("en", "", "https://vrajamarii.ro/evaluation")
	require.NoError(t, err)
	assert.Equal(t, "Your booking has been confirmed", subject)
	assert.Contains(t, html, "Hi, Vizitator!")

	subject, _, _, err = BookingConfirmed("de", "Ana", "https://vrajamarii.ro/evaluation")
	require.NoError(t, err)
	assert.Equal(t, "Rezervarea ta a fost confirmata", subject)
}

func TestBookingConfirmedEscapesName(t *testing.T) {
	_, html, _, err := BookingConfirmed("ro", "<script>x</script>", "https://vrajamarii.ro/evaluation")
	require.NoError(t, err)
	assert.NotContains(t, html, "<script>")
	assert.Contains(t, html, "&lt;script&gt;")
}
