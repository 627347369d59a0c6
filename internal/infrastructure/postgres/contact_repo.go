package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/ErlanBelekov/portfolio/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const contactColumns = `id, username, email, message, is_archived, is_read, created_at, updated_at`

type ContactRepository struct {
	pool *pgxpool.Pool
}

func NewContactRepository(pool *pgxpool.Pool) *ContactRepository {
	return &ContactRepository{pool: pool}
}

func (r *ContactRepository) Create(ctx context.Context, c *domain.ContactResponse) (*domain.ContactResponse, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO contact_responses (username, email, message)
		VALUES ($1, $2, $3)
		RETURNING `+contactColumns,
		c.Username, c.Email, c.Message,
	)
	return scanContact(row)
}

func (r *ContactRepository) List(ctx context.Context) ([]*domain.ContactResponse, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+contactColumns+`
		FROM contact_responses
		ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list contact responses: %w", err)
	}
	defer rows.Close()

	contacts := []*domain.ContactResponse{}
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, err
		}
		contacts = append(contacts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate contact responses: %w", err)
	}
	return contacts, nil
}

func (r *ContactRepository) Update(ctx context.Context, id string, patch domain.ContactPatch) (*domain.ContactResponse, error) {
	id, err := parseID(id, domain.ErrContactNotFound)
	if err != nil {
		return nil, err
	}

	row := r.pool.QueryRow(ctx, `
		UPDATE contact_responses
		SET    is_read     = COALESCE($2, is_read),
		       is_archived = COALESCE($3, is_archived),
		       updated_at  = NOW()
		WHERE  id = $1
		RETURNING `+contactColumns,
		id, patch.IsRead, patch.IsArchived,
	)
	return scanContact(row)
}

func (r *ContactRepository) Delete(ctx context.Context, id string) error {
	id, err := parseID(id, domain.ErrContactNotFound)
	if err != nil {
		return err
	}

	tag, err := r.pool.Exec(ctx, `DELETE FROM contact_responses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete contact response: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrContactNotFound
	}
	return nil
}

func scanContact(row rowScanner) (*domain.ContactResponse, error) {
	var c domain.ContactResponse
	err := row.Scan(
		&c.ID, &c.Username, &c.Email, &c.Message,
		&c.IsArchived, &c.IsRead, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrContactNotFound
		}
		return nil, fmt.Errorf("scan contact response: %w", err)
	}
	return &c, nil
}
