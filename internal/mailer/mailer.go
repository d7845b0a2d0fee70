package mailer

import (
	"fmt"
	"io"

	"github.com/21f1006580/quiz-master/config"
	"github.com/rs/zerolog/log"
	gomail "gopkg.in/gomail.v2"
)

// Mailer sends notification and report emails over SMTP.
type Mailer interface {
	SendHTML(to, subject, htmlBody string) error
	SendWithAttachment(to, subject, body, filename string, attachment []byte) error
}

type smtpMailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewMailer(cfg *config.Config) Mailer {
	return &smtpMailer{
		dialer: gomail.NewDialer(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password),
		from:   cfg.SMTP.From,
	}
}

func (m *smtpMailer) SendHTML(to, subject, htmlBody string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	if err := m.dialer.DialAndSend(msg); err != nil {
		log.Error().Err(err).Str("to", to).Str("subject", subject).Msg("Failed to send email")
		return fmt.Errorf("sending email to %s: %w", to, err)
	}
	return nil
}

func (m *smtpMailer) SendWithAttachment(to, subject, body, filename string, attachment []byte) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)
	msg.Attach(filename, gomail.SetCopyFunc(func(w io.Writer) error {
		_, err := w.Write(attachment)
		return err
	}))

	if err := m.dialer.DialAndSend(msg); err != nil {
		log.Error().Err(err).Str("to", to).Str("filename", filename).Msg("Failed to send email with attachment")
		return fmt.Errorf("sending email with attachment to %s: %w", to, err)
	}
	return nil
}
