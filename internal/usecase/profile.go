package usecase

import (
	"context"
	"fmt"

	"github.com/ErlanBelekov/portfolio/internal/domain"
	"github.com/ErlanBelekov/portfolio/internal/repository"
)

type ProfileUsecase struct {
	repo repository.ProfileRepository
}

func NewProfileUsecase(repo repository.ProfileRepository) *ProfileUsecase {
	return &ProfileUsecase{repo: repo}
}

func (u *ProfileUsecase) Get(ctx context.Context) (*domain.Profile, error) {
	profile, err := u.repo.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return profile, nil
}

// Update applies patch to the single profile, creating it on first use.
// A blank email leaves the stored address alone; it is the operator's sign-in identity.
func (u *ProfileUsecase) Update(ctx context.Context, patch repository.ProfilePatch) (*domain.Profile, error) {
	patch.Email = blankToNil(patch.Email)

	profile, err := u.repo.Upsert(ctx, patch)
	if err != nil {
		return nil, fmt.Errorf("upsert profile: %w", err)
	}
	return profile, nil
}
