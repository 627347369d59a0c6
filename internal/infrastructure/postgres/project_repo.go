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

const projectColumns = `id, title, quick_description, full_description, youtube_link,
	project_url, image_url, category, is_featured, created_at, updated_at`

type ProjectRepository struct {
	pool *pgxpool.Pool
}

func NewProjectRepository(pool *pgxpool.Pool) *ProjectRepository {
	return &ProjectRepository{pool: pool}
}

func (r *ProjectRepository) Create(ctx context.Context, p *domain.Project) (*domain.Project, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO projects (
			title, quick_description, full_description, youtube_link,
			project_url, image_url, category, is_featured
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+projectColumns,
		p.Title, p.QuickDescription, p.FullDescription, p.YouTubeLink,
		p.ProjectURL, p.ImageURL, p.Category, p.IsFeatured,
	)
	return scanProject(row)
}

func (r *ProjectRepository) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	id, err := parseID(id, domain.ErrProjectNotFound)
	if err != nil {
		return nil, err
	}

	row := r.pool.QueryRow(ctx, `SELECT `+projectColumns+` FROM projects WHERE id = $1`, id)
	return scanProject(row)
}

func (r *ProjectRepository) List(ctx context.Context, input repository.ListProjectsInput) ([]*domain.Project, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+projectColumns+`
		FROM projects
		WHERE NOT $1 OR is_featured
		ORDER BY created_at DESC, id DESC`, input.FeaturedOnly)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	projects := []*domain.Project{}
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate projects: %w", err)
	}
	return projects, nil
}

func (r *ProjectRepository) Update(ctx context.Context, id string, patch domain.ProjectPatch) (*domain.Project, error) {
	id, err := parseID(id, domain.ErrProjectNotFound)
	if err != nil {
		return nil, err
	}

	row := r.pool.QueryRow(ctx, `
		UPDATE projects
		SET    title             = COALESCE($2, title),
		       quick_description = COALESCE($3, quick_description),
		       full_description  = COALESCE($4, full_description),
		       youtube_link      = COALESCE($5, youtube_link),
		       project_url       = COALESCE($6, project_url),
		       image_url         = COALESCE($7, image_url),
		       category          = COALESCE($8, category),
		       is_featured       = COALESCE($9, is_featured),
		       updated_at        = NOW()
		WHERE  id = $1
		RETURNING `+projectColumns,
		id, patch.Title, patch.QuickDescription, patch.FullDescription, patch.YouTubeLink,
		patch.ProjectURL, patch.ImageURL, patch.Category, patch.IsFeatured,
	)
	return scanProject(row)
}

func (r *ProjectRepository) Delete(ctx context.Context, id string) error {
	id, err := parseID(id, domain.ErrProjectNotFound)
	if err != nil {
		return err
	}

	tag, err := r.pool.Exec(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrProjectNotFound
	}
	return nil
}

func scanProject(row rowScanner) (*domain.Project, error) {
	var p domain.Project
	err := row.Scan(
		&p.ID, &p.Title, &p.QuickDescription, &p.FullDescription, &p.YouTubeLink,
		&p.ProjectURL, &p.ImageURL, &p.Category, &p.IsFeatured, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrProjectNotFound
		}
		return nil, fmt.Errorf("scan project: %w", err)
	}
	return &p, nil
}
