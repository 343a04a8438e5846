package session

import (
	"context"
	"time"
)

// Record associates one browser session with a remote cart identifier under
// a cart key derived from the service credential, so carts from different
// stores sharing a database never collide.
type Record struct {
	SessionID string
	CartKey   string
	CartID    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Repository interface {
	SaveCartID(ctx context.Context, sessionID, cartKey, cartID string) error
	GetCartID(ctx context.Context, sessionID, cartKey string) (string, error)
	Delete(ctx context.Context, sessionID string) error
}
