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

const profileColumns = `id, name, bio, avatar_url, social, cv_url, contact, email, created_at, updated_at`

type ProfileRepository struct {
	pool *pgxpool.Pool
}

func NewProfileRepository(pool *pgxpool.Pool) *ProfileRepository {
	return &ProfileRepository{pool: pool}
}

// Get returns the oldest profile row; the site only ever has one.
func (r *ProfileRepository) Get(ctx context.Context) (*domain.Profile, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+profileColumns+` FROM profiles ORDER BY id ASC LIMIT 1`)
	return scanProfile(row)
}

func (r *ProfileRepository) Upsert(ctx context.Context, patch repository.ProfilePatch) (p *domain.Profile, err error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	var id int64
	err = tx.QueryRow(ctx, `SELECT id FROM profiles ORDER BY id ASC LIMIT 1 FOR UPDATE`).Scan(&id)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		social := domain.Social{}
		if patch.Social != nil {
			social = *patch.Social
		}
		p, err = scanProfile(tx.QueryRow(ctx, `
			INSERT INTO profiles (name, bio, avatar_url, social, cv_url, contact, email)
			VALUES (COALESCE($1, ''), $2, $3, $4, $5, $6, $7)
			RETURNING `+profileColumns,
			patch.Name, patch.Bio, patch.AvatarURL, social, patch.CVURL, patch.Contact, patch.Email,
		))
	case err != nil:
		return nil, fmt.Errorf("lock profile: %w", err)
	default:
		p, err = scanProfile(tx.QueryRow(ctx, `
			UPDATE profiles
			SET    name       = COALESCE($2, name),
			       bio        = COALESCE($3, bio),
			       avatar_url = COALESCE($4, avatar_url),
			       social     = COALESCE($5, social),
			       cv_url     = COALESCE($6, cv_url),
			       contact    = COALESCE($7, contact),
			       email      = COALESCE($8, email),
			       updated_at = NOW()
			WHERE  id = $1
			RETURNING `+profileColumns,
			id, patch.Name, patch.Bio, patch.AvatarURL, patch.Social, patch.CVURL, patch.Contact, patch.Email,
		))
	}
	if err != nil {
		return nil, err
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return p, nil
}

func scanProfile(row rowScanner) (*domain.Profile, error) {
	var p domain.Profile
	err := row.Scan(
		&p.ID, &p.Name, &p.Bio, &p.AvatarURL, &p.Social,
		&p.CVURL, &p.Contact, &p.Email, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, fmt.Errorf("scan profile: %w", err)
	}
	return &p, nil
}
