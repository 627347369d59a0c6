package repository

import (
	"context"

	"github.com/ErlanBelekov/portfolio/internal/domain"
)

type ContactRepository interface {
	Create(ctx context.Context, c *domain.ContactResponse) (*domain.ContactResponse, error)
	List(ctx context.Context) ([]*domain.ContactResponse, error)
	Update(ctx context.Context, id string, patch domain.ContactPatch) (*domain.ContactResponse, error)
	Delete(ctx context.Context, id string) error
}
