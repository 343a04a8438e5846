package session

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/naman03malhotra/vercel-commerce/internal/domain"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) SaveCartID(ctx context.Context, sessionID, cartKey, cartID string) error {
	const q = `
INSERT INTO sessions (session_id, cart_key, cart_id)
VALUES ($1, $2, $3)
ON CONFLICT (session_id, cart_key) DO UPDATE
SET cart_id = EXCLUDED.cart_id, updated_at = now()
`
	_, err := r.pool.Exec(ctx, q, sessionID, cartKey, cartID)
	return err
}

func (r *postgresRepo) GetCartID(ctx context.Context, sessionID, cartKey string) (string, error) {
	const q = `
SELECT cart_id
FROM sessions
WHERE session_id = $1 AND cart_key = $2
LIMIT 1
`
	var cartID string
	if err := r.pool.QueryRow(ctx, q, sessionID, cartKey).Scan(&cartID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", domain.ErrNotFound
		}
		return "", err
	}
	return cartID, nil
}

func (r *postgresRepo) Delete(ctx context.Context, sessionID string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM sessions WHERE session_id = $1`, sessionID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
