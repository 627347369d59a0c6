package repository

import (
	"context"

	"github.com/ErlanBelekov/portfolio/internal/domain"
)

// ProfilePatch is applied on top of the stored profile; nil fields are left untouched.
type ProfilePatch struct {
	Name      *string
	Bio       *string
	AvatarURL *string
	Social    *domain.Social
	CVURL     *string
	Contact   *string
	Email     *string
}

type ProfileRepository interface {
	// Get returns the single profile, or domain.ErrProfileNotFound.
	Get(ctx context.Context) (*domain.Profile, error)
	// Upsert updates the single profile, inserting it when none exists yet.
	Upsert(ctx context.Context, patch ProfilePatch) (*domain.Profile, error)
}
