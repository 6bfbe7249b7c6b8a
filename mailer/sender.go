package mailer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/wneessen/go-mail"
)

const plainTextBody = "Check out the latest articles!"

var (
	ErrNoRecipient    = errors.New("recipient address is required")
	ErrInvalidAddress = errors.New("invalid email address")
)

// Sender delivers one rendered digest to one recipient.
type Sender interface {
	Send(ctx context.Context, to, subject string, articles []Article) error
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	Timeout  time.Duration
}

type SMTPSender struct {
	cfg      SMTPConfig
	renderer *Renderer
}

func NewSMTPSender(cfg SMTPConfig, renderer *Renderer) *SMTPSender {
	return &SMTPSender{cfg: cfg, renderer: renderer}
}

func (s *SMTPSender) Send(ctx context.Context, to, subject string, articles []Article) error {
	to = strings.TrimSpace(to)
	if to == "" {
		return ErrNoRecipient
	}

	msg, err := s.message(to, subject, articles)
	if err != nil {
		return err
	}

	opts := []mail.Option{
		mail.WithPort(s.cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(s.cfg.Username),
		mail.WithPassword(s.cfg.Password),
		mail.WithTLSPolicy(mail.TLSMandatory),
	}
	if s.cfg.Timeout > 0 {
		opts = append(opts, mail.WithTimeout(s.cfg.Timeout))
	}
	client, err := mail.NewClient(s.cfg.Host, opts...)
	if err != nil {
		return fmt.Errorf("create smtp client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("send mail to %s: %w", to, err)
	}
	return nil
}

func (s *SMTPSender) message(to, subject string, articles []Article) (*mail.Msg, error) {
	body, err := s.renderer.Render(articles)
	if err != nil {
		return nil, err
	}

	msg := mail.NewMsg()
	if err := msg.From(s.cfg.From); err != nil {
		return nil, fmt.Errorf("%w: sender %q: %v", ErrInvalidAddress, s.cfg.From, err)
	}
	if err := msg.To(to); err != nil {
		return nil, fmt.Errorf("%w: recipient %q: %v", ErrInvalidAddress, to, err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, plainTextBody)
	msg.AddAlternativeString(mail.TypeTextHTML, body)
	return msg, nil
}
