package repository

import (
	"context"
	"time"

	"github.com/ErlanBelekov/portfolio/internal/domain"
)

type ChallengeRepository interface {
	// Replace stores c and drops every unconsumed challenge previously issued to c.Email.
	Replace(ctx context.Context, c *domain.OTPChallenge) error
	// FindActiveByCode returns the unconsumed challenge carrying code, or domain.ErrOTPInvalid.
	FindActiveByCode(ctx context.Context, code string) (*domain.OTPChallenge, error)
	// Consume marks the challenge used. Returns domain.ErrOTPInvalid if it was already consumed.
	Consume(ctx context.Context, id string, at time.Time) error
	// PurgeDead deletes consumed challenges and challenges that expired before cutoff.
	PurgeDead(ctx context.Context, cutoff time.Time) (int, error)
}
