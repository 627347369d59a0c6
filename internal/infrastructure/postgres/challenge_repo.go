package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ErlanBelekov/portfolio/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ChallengeRepository struct {
	pool *pgxpool.Pool
}

func NewChallengeRepository(pool *pgxpool.Pool) *ChallengeRepository {
	return &ChallengeRepository{pool: pool}
}

// Replace keeps at most one outstanding challenge per email so a code can never
// match an older, forgotten challenge.
func (r *ChallengeRepository) Replace(ctx context.Context, c *domain.OTPChallenge) (err error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	if _, err = tx.Exec(ctx,
		`DELETE FROM otp_challenges WHERE email = $1 AND consumed_at IS NULL`,
		c.Email,
	); err != nil {
		return fmt.Errorf("drop outstanding challenges: %w", err)
	}

	err = tx.QueryRow(ctx, `
		INSERT INTO otp_challenges (email, code, expires_at, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id`,
		c.Email, c.Code, c.ExpiresAt, c.IssuedAt,
	).Scan(&c.ID)
	if err != nil {
		return fmt.Errorf("insert challenge: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func (r *ChallengeRepository) FindActiveByCode(ctx context.Context, code string) (*domain.OTPChallenge, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, email, code, expires_at, created_at, consumed_at
		FROM otp_challenges
		WHERE code = $1 AND consumed_at IS NULL
		ORDER BY created_at DESC
		LIMIT 1`, code)

	var c domain.OTPChallenge
	err := row.Scan(&c.ID, &c.Email, &c.Code, &c.ExpiresAt, &c.IssuedAt, &c.ConsumedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrOTPInvalid
		}
		return nil, fmt.Errorf("scan challenge: %w", err)
	}
	return &c, nil
}

func (r *ChallengeRepository) Consume(ctx context.Context, id string, at time.Time) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE otp_challenges SET consumed_at = $2 WHERE id = $1 AND consumed_at IS NULL`,
		id, at)
	if err != nil {
		return fmt.Errorf("consume challenge: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrOTPInvalid
	}
	return nil
}

func (r *ChallengeRepository) PurgeDead(ctx context.Context, cutoff time.Time) (int, error) {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM otp_challenges WHERE consumed_at IS NOT NULL OR expires_at < $1`,
		cutoff)
	if err != nil {
		return 0, fmt.Errorf("purge challenges: %w", err)
	}
	return int(tag.RowsAffected()), nil
}
