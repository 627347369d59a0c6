package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/ErlanBelekov/portfolio/internal/domain"
	"github.com/ErlanBelekov/portfolio/internal/repository"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const blogColumns = `id, title, description, content, image_url, category, is_published, created_at, updated_at`

type BlogRepository struct {
	pool *pgxpool.Pool
}

func NewBlogRepository(pool *pgxpool.Pool) *BlogRepository {
	return &BlogRepository{pool: pool}
}

func (r *BlogRepository) Create(ctx context.Context, b *domain.Blog) (*domain.Blog, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO blogs (title, description, content, image_url, category, is_published)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+blogColumns,
		b.Title, b.Description, b.Content, b.ImageURL, b.Category, b.IsPublished,
	)
	return scanBlog(row)
}

func (r *BlogRepository) GetByID(ctx context.Context, id string) (*domain.Blog, error) {
	id, err := parseID(id, domain.ErrBlogNotFound)
	if err != nil {
		return nil, err
	}

	row := r.pool.QueryRow(ctx, `SELECT `+blogColumns+` FROM blogs WHERE id = $1`, id)
	return scanBlog(row)
}

func (r *BlogRepository) List(ctx context.Context, input repository.ListBlogsInput) ([]*domain.Blog, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+blogColumns+`
		FROM blogs
		WHERE NOT $1 OR is_published
		ORDER BY created_at DESC, id DESC`, input.PublishedOnly)
	if err != nil {
		return nil, fmt.Errorf("list blogs: %w", err)
	}
	defer rows.Close()

	blogs := []*domain.Blog{}
	for rows.Next() {
		b, err := scanBlog(rows)
		if err != nil {
			return nil, err
		}
		blogs = append(blogs, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate blogs: %w", err)
	}
	return blogs, nil
}

func (r *BlogRepository) Update(ctx context.Context, id string, patch domain.BlogPatch) (*domain.Blog, error) {
	id, err := parseID(id, domain.ErrBlogNotFound)
	if err != nil {
		return nil, err
	}

	row := r.pool.QueryRow(ctx, `
		UPDATE blogs
		SET    title        = COALESCE($2, title),
		       description  = COALESCE($3, description),
		       content      = COALESCE($4, content),
		       image_url    = COALESCE($5, image_url),
		       category     = COALESCE($6, category),
		       is_published = COALESCE($7, is_published),
		       updated_at   = NOW()
		WHERE  id = $1
		RETURNING `+blogColumns,
		id, patch.Title, patch.Description, patch.Content, patch.ImageURL, patch.Category, patch.IsPublished,
	)
	return scanBlog(row)
}

func (r *BlogRepository) Delete(ctx context.Context, id string) error {
	id, err := parseID(id, domain.ErrBlogNotFound)
	if err != nil {
		return err
	}

	tag, err := r.pool.Exec(ctx, `DELETE FROM blogs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete blog: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrBlogNotFound
	}
	return nil
}

func scanBlog(row rowScanner) (*domain.Blog, error) {
	var b domain.Blog
	err := row.Scan(
		&b.ID, &b.Title, &b.Description, &b.Content, &b.ImageURL,
		&b.Category, &b.IsPublished, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrBlogNotFound
		}
		return nil, fmt.Errorf("scan blog: %w", err)
	}
	return &b, nil
}
