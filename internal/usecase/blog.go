package usecase

import (
	"context"
	"fmt"

	"github.com/ErlanBelekov/portfolio/internal/domain"
	"github.com/ErlanBelekov/portfolio/internal/repository"
)

type BlogUsecase struct {
	repo repository.BlogRepository
}

func NewBlogUsecase(repo repository.BlogRepository) *BlogUsecase {
	return &BlogUsecase{repo: repo}
}

type CreateBlogInput struct {
	Title       string
	Description string
	Content     *string
	ImageURL    *string
	Category    string
	IsPublished bool
}

func (u *BlogUsecase) Create(ctx context.Context, input CreateBlogInput) (*domain.Blog, error) {
	created, err := u.repo.Create(ctx, &domain.Blog{
		Title:       input.Title,
		Description: input.Description,
		Content:     blankToNil(input.Content),
		ImageURL:    blankToNil(input.ImageURL),
		Category:    input.Category,
		IsPublished: input.IsPublished,
	})
	if err != nil {
		return nil, fmt.Errorf("create blog: %w", err)
	}
	return created, nil
}

// GetByID hides drafts unless includeDrafts is set; a hidden draft reads as not found.
func (u *BlogUsecase) GetByID(ctx context.Context, id string, includeDrafts bool) (*domain.Blog, error) {
	blog, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get blog: %w", err)
	}
	if !blog.IsPublished && !includeDrafts {
		return nil, fmt.Errorf("get blog: %w", domain.ErrBlogNotFound)
	}
	return blog, nil
}

func (u *BlogUsecase) List(ctx context.Context, publishedOnly bool) ([]*domain.Blog, error) {
	blogs, err := u.repo.List(ctx, repository.ListBlogsInput{PublishedOnly: publishedOnly})
	if err != nil {
		return nil, fmt.Errorf("list blogs: %w", err)
	}
	return blogs, nil
}

func (u *BlogUsecase) Update(ctx context.Context, id string, patch domain.BlogPatch) (*domain.Blog, error) {
	blog, err := u.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, fmt.Errorf("update blog: %w", err)
	}
	return blog, nil
}

// TogglePublished flips the publish flag of a post.
func (u *BlogUsecase) TogglePublished(ctx context.Context, id string) (*domain.Blog, error) {
	blog, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get blog: %w", err)
	}
	published := !blog.IsPublished
	updated, err := u.repo.Update(ctx, id, domain.BlogPatch{IsPublished: &published})
	if err != nil {
		return nil, fmt.Errorf("update blog: %w", err)
	}
	return updated, nil
}

func (u *BlogUsecase) Delete(ctx context.Context, id string) error {
	if err := u.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete blog: %w", err)
	}
	return nil
}
