package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/ErlanBelekov/portfolio/internal/domain"
	"github.com/ErlanBelekov/portfolio/internal/repository"
)

type ProjectUsecase struct {
	repo repository.ProjectRepository
}

func NewProjectUsecase(repo repository.ProjectRepository) *ProjectUsecase {
	return &ProjectUsecase{repo: repo}
}

type CreateProjectInput struct {
	Title            string
	QuickDescription string
	FullDescription  *string
	YouTubeLink      *string
	ProjectURL       *string
	ImageURL         *string
	Category         string
	IsFeatured       bool
}

func (u *ProjectUsecase) Create(ctx context.Context, input CreateProjectInput) (*domain.Project, error) {
	created, err := u.repo.Create(ctx, &domain.Project{
		Title:            input.Title,
		QuickDescription: input.QuickDescription,
		FullDescription:  blankToNil(input.FullDescription),
		YouTubeLink:      blankToNil(input.YouTubeLink),
		ProjectURL:       blankToNil(input.ProjectURL),
		ImageURL:         blankToNil(input.ImageURL),
		Category:         input.Category,
		IsFeatured:       input.IsFeatured,
	})
	if err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}
	return created, nil
}

func (u *ProjectUsecase) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	project, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get project: %w", err)
	}
	return project, nil
}

// List returns projects newest first.
func (u *ProjectUsecase) List(ctx context.Context, featuredOnly bool) ([]*domain.Project, error) {
	projects, err := u.repo.List(ctx, repository.ListProjectsInput{FeaturedOnly: featuredOnly})
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return projects, nil
}

func (u *ProjectUsecase) Update(ctx context.Context, id string, patch domain.ProjectPatch) (*domain.Project, error) {
	project, err := u.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, fmt.Errorf("update project: %w", err)
	}
	return project, nil
}

func (u *ProjectUsecase) Delete(ctx context.Context, id string) error {
	if err := u.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	return nil
}

// blankToNil maps optional form fields left empty to NULL.
func blankToNil(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	return s
}
