package smtp

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoRecipients письмо без получателей не отправляется.
var ErrNoRecipients = errors.New("no recipients")

// Mailer отправляет текстовые письма через транспорт.
type Mailer struct {
	transport TransportInterface
}

func NewMailer(transport TransportInterface) *Mailer {
	return &Mailer{transport: transport}
}

// BuildMessage собирает письмо в формате text/plain UTF-8.
func BuildMessage(from string, to []string, subject, body string) string {
	return strings.Join([]string{
		"From: " + from,
		"To: " + strings.Join(to, ", "),
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"UTF-8\"",
		"",
		body,
	}, "\r\n")
}

// Send отправляет одно письмо всем получателям to.
func (m *Mailer) Send(to []string, subject, body string) error {
	const op = "smtp.Send"
	if len(to) == 0 {
		return fmt.Errorf("%s: %w", op, ErrNoRecipients)
	}

	from := m.transport.GetSMTPUser()
	client, err := m.transport.Connect()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer client.Close()

	if err := client.Mail(from); err != nil {
		return fmt.Errorf("%s: MAIL FROM %s: %w", op, from, err)
	}
	for _, addr := range to {
		if err := client.Rcpt(addr); err != nil {
			return fmt.Errorf("%s: RCPT TO %s: %w", op, addr, err)
		}
	}

	wc, err := client.Data()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if _, err := wc.Write([]byte(BuildMessage(from, to, subject, body))); err != nil {
		_ = wc.Close()
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := wc.Close(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := client.Quit(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
