package mailer

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-playground/assert/v2"
)

func newTestSender() *SMTPSender {
	return NewSMTPSender(SMTPConfig{
		Host:     "localhost",
		Port:     2525,
		Username: "digest@example.com",
		Password: "secret",
		From:     "digest@example.com",
		Timeout:  time.Second,
	}, NewRenderer("https://example.com"))
}

func TestSend_RequiresRecipient(t *testing.T) {
	err := newTestSender().Send(context.Background(), "  ", "subject", SampleArticles())

	assert.Equal(t, ErrNoRecipient, err)
}

func TestSend_RejectsInvalidRecipient(t *testing.T) {
	err := newTestSender().Send(context.Background(), "not-an-address", "subject", SampleArticles())

	assert.Equal(t, true, errors.Is(err, ErrInvalidAddress))
}

func TestMessage_Headers(t *testing.T) {
	msg, err := newTestSender().message("reader@example.com", "Daily digest", SampleArticles())

	assert.Equal(t, nil, err)
	rcpts, err := msg.GetRecipients()
	assert.Equal(t, nil, err)
	assert.Equal(t, []string{"reader@example.com"}, rcpts)
}
