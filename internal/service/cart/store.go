package cart

import (
	"sync"

	"github.com/naman03malhotra/vercel-commerce/internal/domain"
)

// Store holds the optimistic cart for one session. It is created with a
// pending fetch of the remote cart; once that resolves it becomes the
// baseline, overwriting whatever local state exists (last-fetch-wins, no
// field-by-field merge). Mutations apply the reducer synchronously in the
// order they are issued; the corresponding remote calls are triggered
// separately by the caller and are not reconciled with local state here.
type Store struct {
	mu   sync.Mutex
	cart *domain.Cart
}

// NewStore starts resolving the baseline cart in the background. A nil
// fetch leaves the store in the absent state until the first action.
func NewStore(fetch func() *domain.Cart) *Store {
	s := &Store{}
	if fetch != nil {
		go func() {
			s.Resolve(fetch())
		}()
	}
	return s
}

// Resolve installs a freshly fetched remote cart as the new baseline.
func (s *Store) Resolve(cart *domain.Cart) {
	s.mu.Lock()
	s.cart = cart
	s.mu.Unlock()
}

// Cart returns a snapshot of the current state, nil while still absent.
// Lines are copied too, so callers can modify the snapshot freely.
func (s *Store) Cart() *domain.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cart == nil {
		return nil
	}
	snapshot := *s.cart
	snapshot.Lines = make([]domain.CartItem, len(s.cart.Lines))
	copy(snapshot.Lines, s.cart.Lines)
	return &snapshot
}

// AddItem applies an optimistic add and returns the resulting state.
func (s *Store) AddItem(product domain.Product) domain.Cart {
	return s.apply(Action{Type: AddItem, Product: product})
}

// UpdateItem applies an optimistic quantity adjustment or removal.
func (s *Store) UpdateItem(product domain.Product, update UpdateType) domain.Cart {
	return s.apply(Action{Type: UpdateItem, Product: product, Update: update})
}

func (s *Store) apply(action Action) domain.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := Reduce(s.cart, action)
	s.cart = &next
	return next
}
