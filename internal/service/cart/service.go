package cart

import (
	"context"
	"fmt"
	"log"

	"github.com/naman03malhotra/vercel-commerce/internal/domain"
	"github.com/naman03malhotra/vercel-commerce/internal/fourthwall"
)

// Service drives the remote side of the cart: every mutation goes through
// the backend gateway and the returned snapshot is normalized before it
// reaches a caller. It knows nothing about the optimistic Store; callers
// trigger both paths and the two are reconciled only by re-fetch.
type Service struct {
	client gateway
	logger *log.Logger
}

type gateway interface {
	FetchCart(ctx context.Context) *fourthwall.CartRecord
	AddCartItem(ctx context.Context, id string, quantity int) (*fourthwall.CartRecord, error)
	UpdateCartItem(ctx context.Context, id string, quantity int) (*fourthwall.CartRecord, error)
	RemoveCartItem(ctx context.Context, id string) (*fourthwall.CartRecord, error)
	CartToken() string
}

func New(client gateway, logger *log.Logger) *Service {
	return &Service{client: client, logger: logger}
}

// CartToken exposes the backend's cart identifier for session bookkeeping;
// empty until the backend has announced one.
func (s *Service) CartToken() string {
	return s.client.CartToken()
}

// Get returns the remote cart, or nil when no remote cart exists yet.
func (s *Service) Get(ctx context.Context) *domain.Cart {
	record := s.client.FetchCart(ctx)
	if record == nil {
		return nil
	}
	cart := fourthwall.ReshapeCart(*record)
	return &cart
}

// Add puts quantity units of a product on the remote cart.
func (s *Service) Add(ctx context.Context, productID string, quantity int) (*domain.Cart, error) {
	record, err := s.client.AddCartItem(ctx, productID, quantity)
	if err != nil {
		s.logger.Printf("remote add failed for %s: %v", productID, err)
		return nil, fmt.Errorf("add cart item %s: %w", productID, err)
	}
	cart := fourthwall.ReshapeCart(*record)
	return &cart, nil
}

// UpdateQuantity sets a line's quantity; zero removes the line.
func (s *Service) UpdateQuantity(ctx context.Context, productID string, quantity int) (*domain.Cart, error) {
	if quantity == 0 {
		return s.Remove(ctx, productID)
	}
	record, err := s.client.UpdateCartItem(ctx, productID, quantity)
	if err != nil {
		s.logger.Printf("remote update failed for %s: %v", productID, err)
		return nil, fmt.Errorf("update cart item %s: %w", productID, err)
	}
	cart := fourthwall.ReshapeCart(*record)
	return &cart, nil
}

// Remove deletes a line from the remote cart.
func (s *Service) Remove(ctx context.Context, productID string) (*domain.Cart, error) {
	record, err := s.client.RemoveCartItem(ctx, productID)
	if err != nil {
		s.logger.Printf("remote remove failed for %s: %v", productID, err)
		return nil, fmt.Errorf("remove cart item %s: %w", productID, err)
	}
	cart := fourthwall.ReshapeCart(*record)
	return &cart, nil
}
