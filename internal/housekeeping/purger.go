// Package housekeeping removes OTP challenges that can no longer be redeemed.
package housekeeping

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ErlanBelekov/portfolio/internal/metrics"
	"github.com/ErlanBelekov/portfolio/internal/repository"
	"github.com/robfig/cron/v3"
)

type Purger struct {
	repo     repository.ChallengeRepository
	logger   *slog.Logger
	schedule cron.Schedule
	spec     string
	grace    time.Duration
	now      func() time.Time
}

// NewPurger validates spec, a standard five-field cron expression.
// Challenges are kept for grace after expiry so a late verify still sees "expired", not "unknown".
func NewPurger(repo repository.ChallengeRepository, logger *slog.Logger, spec string, grace time.Duration) (*Purger, error) {
	schedule, err := cron.ParseStandard(spec)
	if err != nil {
		return nil, fmt.Errorf("parse purge schedule %q: %w", spec, err)
	}
	return &Purger{
		repo:     repo,
		logger:   logger.With("component", "purger"),
		schedule: schedule,
		spec:     spec,
		grace:    grace,
		now:      time.Now,
	}, nil
}

// Start runs Purge on the schedule until ctx is cancelled.
func (p *Purger) Start(ctx context.Context) {
	c := cron.New()
	c.Schedule(p.schedule, cron.FuncJob(func() { p.Purge(ctx) }))
	c.Start()

	p.logger.Info("purger started", "schedule", p.spec)

	<-ctx.Done()
	<-c.Stop().Done()
	p.logger.Info("purger shut down")
}

// Purge deletes consumed challenges and those expired longer than the grace period.
func (p *Purger) Purge(ctx context.Context) int {
	cutoff := p.now().Add(-p.grace)

	n, err := p.repo.PurgeDead(ctx, cutoff)
	if err != nil {
		p.logger.ErrorContext(ctx, "purge challenges", "error", err)
		return 0
	}
	if n > 0 {
		metrics.ChallengesPurgedTotal.Add(float64(n))
		p.logger.InfoContext(ctx, "purged challenges", "count", n)
	}
	return n
}
