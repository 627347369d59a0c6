package repository

import (
	"context"

	"github.com/ErlanBelekov/portfolio/internal/domain"
)

type ListBlogsInput struct {
	PublishedOnly bool
}

type BlogRepository interface {
	Create(ctx context.Context, b *domain.Blog) (*domain.Blog, error)
	GetByID(ctx context.Context, id string) (*domain.Blog, error)
	List(ctx context.Context, input ListBlogsInput) ([]*domain.Blog, error)
	Update(ctx context.Context, id string, patch domain.BlogPatch) (*domain.Blog, error)
	Delete(ctx context.Context, id string) error
}
