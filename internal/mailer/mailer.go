// Package mailer sends transactional emails over SMTP.
package mailer

import (
	"bytes"
	"context"
	"embed"
	"text/template"

	"github.com/go-mail/mail/v2"
	"github.com/sbilibin2017/todo-api/internal/logger"
)

//go:embed templates
var templateFS embed.FS

// Sender delivers a composed message.
type Sender interface {
	DialAndSend(m ...*mail.Message) error
}

// Mailer renders templates and hands the result to a Sender.
type Mailer struct {
	sender Sender
	from   string
	tmpl   *template.Template
}

// New creates a Mailer that dials the given SMTP server.
func New(host string, port int, username, password, from string) *Mailer {
	return NewWithSender(mail.NewDialer(host, port, username, password), from)
}

// NewWithSender creates a Mailer on top of an existing Sender.
func NewWithSender(sender Sender, from string) *Mailer {
	tmpl := template.Must(template.New("mail").ParseFS(templateFS, "templates/*.tmpl"))
	return &Mailer{sender: sender, from: from, tmpl: tmpl}
}

type passwordResetData struct {
	ResetURL string
}

// SendPasswordReset emails the reset link to the given address.
func (m *Mailer) SendPasswordReset(ctx context.Context, to, resetURL string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg, err := m.compose(to, "password_reset.tmpl", passwordResetData{ResetURL: resetURL})
	if err != nil {
		return err
	}

	if err := m.sender.DialAndSend(msg); err != nil {
		logger.Log.Errorw("failed to send password reset email", "to", to, "error", err)
		return err
	}

	logger.Log.Infow("password reset email sent", "to", to)
	return nil
}

func (m *Mailer) compose(to, name string, data any) (*mail.Message, error) {
	tmpl := m.tmpl.Lookup(name)

	var subject, plainBody bytes.Buffer
	if err := tmpl.ExecuteTemplate(&subject, "subject", data); err != nil {
		return nil, err
	}
	if err := tmpl.ExecuteTemplate(&plainBody, "plainBody", data); err != nil {
		return nil, err
	}

	msg := mail.NewMessage()
	msg.SetHeader("To", to)
	msg.SetHeader("From", m.from)
	msg.SetHeader("Subject", subject.String())
	msg.SetBody("text/plain", plainBody.String())
	return msg, nil
}
