package repository

import (
	"context"

	"github.com/ErlanBelekov/portfolio/internal/domain"
)

type ListProjectsInput struct {
	FeaturedOnly bool
}

type ProjectRepository interface {
	Create(ctx context.Context, p *domain.Project) (*domain.Project, error)
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	List(ctx context.Context, input ListProjectsInput) ([]*domain.Project, error)
	Update(ctx context.Context, id string, patch domain.ProjectPatch) (*domain.Project, error)
	Delete(ctx context.Context, id string) error
}
