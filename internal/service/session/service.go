package session

import (
	"context"
	"crypto/sha256"
	"encoding/hex"

	"github.com/google/uuid"

	sessionrepo "github.com/naman03malhotra/vercel-commerce/internal/repository/session"
)

// Service hands out session identifiers and remembers which remote cart
// each session belongs to. The cart key is derived from the service
// credential, mirroring the storefront cookie naming of
// "<token hash>/cartId".
type Service struct {
	repo    sessionrepo.Repository
	cartKey string
}

func New(repo sessionrepo.Repository, serviceToken string) *Service {
	return &Service{repo: repo, cartKey: CartKey(serviceToken)}
}

// CartKey derives the cart association key from the service credential.
func CartKey(serviceToken string) string {
	sum := sha256.Sum256([]byte(serviceToken))
	return hex.EncodeToString(sum[:8]) + "/cartId"
}

// NewSessionID issues a fresh session identifier.
func (s *Service) NewSessionID() string {
	return uuid.NewString()
}

// CartID looks up the remote cart bound to a session; domain.ErrNotFound
// when the session has no cart yet.
func (s *Service) CartID(ctx context.Context, sessionID string) (string, error) {
	return s.repo.GetCartID(ctx, sessionID, s.cartKey)
}

// SetCartID binds a remote cart to a session, replacing any previous one.
func (s *Service) SetCartID(ctx context.Context, sessionID, cartID string) error {
	return s.repo.SaveCartID(ctx, sessionID, s.cartKey, cartID)
}

// Forget drops every cart binding a session has; domain.ErrNotFound when
// there was nothing to drop.
func (s *Service) Forget(ctx context.Context, sessionID string) error {
	return s.repo.Delete(ctx, sessionID)
}
