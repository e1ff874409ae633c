package mailer

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/go-mail/mail/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSender struct {
	sent []*mail.Message
	err  error
}

func (f *fakeSender) DialAndSend(m ...*mail.Message) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, m...)
	return nil
}

func render(t *testing.T, msg *mail.Message) string {
	t.Helper()
	var buf bytes.Buffer
	_, err := msg.WriteTo(&buf)
	require.NoError(t, err)
	return buf.String()
}

func TestMailer_SendPasswordReset(t *testing.T) {
	sender := &fakeSender{}
	m := NewWithSender(sender, "Todo App <noreply@example.com>")

	err := m.SendPasswordReset(context.Background(), "a@x.com", "http://localhost:3000/reset-password/abc123")
	require.NoError(t, err)
	require.Len(t, sender.sent, 1)

	msg := sender.sent[0]
	assert.Equal(t, []string{"a@x.com"}, msg.GetHeader("To"))
	assert.Equal(t, []string{"Todo App <noreply@example.com>"}, msg.GetHeader("From"))
	assert.Equal(t, []string{"Password Reset Request"}, msg.GetHeader("Subject"))

	body := render(t, msg)
	assert.Contains(t, body, "http://localhost:3000/reset-password/abc123")
	assert.Contains(t, body, "If you didn't request this")
}

func TestMailer_SendPasswordReset_SenderError(t *testing.T) {
	sender := &fakeSender{err: errors.New("dial tcp: connection refused")}
	m := NewWithSender(sender, "noreply@example.com")

	err := m.SendPasswordReset(context.Background(), "a@x.com", "http://x/reset-password/t")
	assert.EqualError(t, err, "dial tcp: connection refused")
}

func TestMailer_SendPasswordReset_CanceledContext(t *testing.T) {
	sender := &fakeSender{}
	m := NewWithSender(sender, "noreply@example.com")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := m.SendPasswordReset(ctx, "a@x.com", "http://x/reset-password/t")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, sender.sent)
}

func TestNew_BuildsDialer(t *testing.T) {
	m := New("smtp.example.com", 587, "user", "pass", "noreply@example.com")
	dialer, ok := m.sender.(*mail.Dialer)
	require.True(t, ok)
	assert.Equal(t, "smtp.example.com", dialer.Host)
	assert.Equal(t, 587, dialer.Port)
}
