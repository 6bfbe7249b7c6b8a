package notifier

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

type ScheduleOptions struct {
	Spec       string
	Timezone   string
	Subject    string
	RunTimeout time.Duration
}

// Scheduler triggers the bulk digest on a cron schedule.
type Scheduler struct {
	cron     *cron.Cron
	composer *Composer
	notifier *Notifier
	opts     ScheduleOptions
}

func NewScheduler(composer *Composer, notifier *Notifier, opts ScheduleOptions) (*Scheduler, error) {
	loc := time.UTC
	if opts.Timezone != "" {
		l, err := time.LoadLocation(opts.Timezone)
		if err != nil {
			return nil, fmt.Errorf("load timezone %q: %w", opts.Timezone, err)
		}
		loc = l
	}

	s := &Scheduler{
		cron:     cron.New(cron.WithLocation(loc)),
		composer: composer,
		notifier: notifier,
		opts:     opts,
	}
	if _, err := s.cron.AddFunc(opts.Spec, s.run); err != nil {
		return nil, fmt.Errorf("parse schedule %q: %w", opts.Spec, err)
	}
	return s, nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
	slog.Info("digest scheduler started", "schedule", s.opts.Spec, "timezone", s.opts.Timezone)
}

// Stop prevents new runs and waits for a running one, up to ctx's deadline.
func (s *Scheduler) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
		slog.Warn("digest scheduler stop timed out")
	}
}

func (s *Scheduler) run() {
	ctx := context.Background()
	if s.opts.RunTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.opts.RunTimeout)
		defer cancel()
	}
	if _, err := s.RunOnce(ctx); err != nil {
		slog.Error("scheduled digest failed", "error", err)
	}
}

// RunOnce composes the current digest and broadcasts it.
func (s *Scheduler) RunOnce(ctx context.Context) (*Report, error) {
	articles, err := s.composer.Compose(ctx)
	if err != nil {
		return nil, fmt.Errorf("compose digest: %w", err)
	}
	return s.notifier.Notify(ctx, s.opts.Subject, articles)
}
