package notifier

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/JerryLinyx/MarketDigest/mailer"
	"github.com/google/uuid"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
)

var ErrDisabled = errors.New("bulk email is disabled")

// RecipientLister reads the addresses of every registered user.
type RecipientLister interface {
	ListEmails(ctx context.Context) ([]string, error)
}

type Options struct {
	Enabled     bool
	Concurrency int
	SendTimeout time.Duration
}

type Notifier struct {
	recipients RecipientLister
	sender     mailer.Sender
	opts       Options
}

func New(recipients RecipientLister, sender mailer.Sender, opts Options) *Notifier {
	if opts.Concurrency < 1 {
		opts.Concurrency = 1
	}
	return &Notifier{recipients: recipients, sender: sender, opts: opts}
}

func (n *Notifier) Enabled() bool {
	return n.opts.Enabled
}

type RecipientResult struct {
	Email string `json:"email"`
	Sent  bool   `json:"sent"`
	Error string `json:"error,omitempty"`
}

type Report struct {
	RunID      string            `json:"run_id"`
	Recipients int               `json:"recipients"`
	Sent       int               `json:"sent"`
	Failed     int               `json:"failed"`
	Results    []RecipientResult `json:"results"`
}

// Notify mails the digest to every registered user. A failed recipient is
// recorded in the report and never stops the others. The recipient store is
// borrowed; Notify does not manage its connection.
func (n *Notifier) Notify(ctx context.Context, subject string, articles []mailer.Article) (*Report, error) {
	if !n.opts.Enabled {
		return nil, ErrDisabled
	}

	runID := uuid.NewString()
	emails, err := n.recipients.ListEmails(ctx)
	if err != nil {
		slog.Error("failed to list recipients", "run_id", runID, "error", err)
		return nil, err
	}

	results := make([]RecipientResult, len(emails))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(n.opts.Concurrency)

	for i, email := range emails {
		results[i] = RecipientResult{Email: email}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				results[i].Error = err.Error()
				return nil
			}
			if err := n.send(gctx, email, subject, articles); err != nil {
				slog.Error("failed to send digest", "run_id", runID, "email", email, "error", err)
				results[i].Error = err.Error()
				return nil
			}
			results[i].Sent = true
			return nil
		})
	}
	_ = g.Wait()

	sent := lo.CountBy(results, func(r RecipientResult) bool { return r.Sent })
	report := &Report{
		RunID:      runID,
		Recipients: len(emails),
		Sent:       sent,
		Failed:     len(emails) - sent,
		Results:    results,
	}
	slog.Info("digest broadcast finished", "run_id", runID, "recipients", report.Recipients, "sent", report.Sent, "failed", report.Failed)
	return report, nil
}

func (n *Notifier) send(ctx context.Context, email, subject string, articles []mailer.Article) error {
	if n.opts.SendTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, n.opts.SendTimeout)
		defer cancel()
	}
	return n.sender.Send(ctx, email, subject, articles)
}
