package httpserver

import (
	"context"
	"log"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/naman03malhotra/vercel-commerce/internal/domain"
	cartsvc "github.com/naman03malhotra/vercel-commerce/internal/service/cart"
)

// sessionCookie identifies one browser session; the per-session cart store
// lives in memory keyed by it.
const sessionCookie = "storefront_session"

type catalogService interface {
	List(ctx context.Context, currency string, limit int) ([]domain.Product, error)
	Get(ctx context.Context, handle, currency string) (*domain.Product, error)
}

type cartService interface {
	Get(ctx context.Context) *domain.Cart
	Add(ctx context.Context, productID string, quantity int) (*domain.Cart, error)
	UpdateQuantity(ctx context.Context, productID string, quantity int) (*domain.Cart, error)
	Remove(ctx context.Context, productID string) (*domain.Cart, error)
	CartToken() string
}

type sessionService interface {
	NewSessionID() string
	CartID(ctx context.Context, sessionID string) (string, error)
	SetCartID(ctx context.Context, sessionID, cartID string) error
	Forget(ctx context.Context, sessionID string) error
}

// Deps carries the services the storefront routes depend on. Sessions may
// be nil when no database is configured; cart association is then skipped.
type Deps struct {
	Catalog  catalogService
	Cart     cartService
	Sessions sessionService
}

type handlers struct {
	catalog  catalogService
	cart     cartService
	sessions sessionService
	currency string
	logger   *log.Logger

	mu     sync.Mutex
	stores map[string]*cartsvc.Store
}

func newHandlers(deps Deps, defaultCurrency string, logger *log.Logger) *handlers {
	return &handlers{
		catalog:  deps.Catalog,
		cart:     deps.Cart,
		sessions: deps.Sessions,
		currency: defaultCurrency,
		logger:   logger,
		stores:   make(map[string]*cartsvc.Store),
	}
}

// ensureSession returns the session id from the cookie, issuing a fresh one
// when the browser has none yet.
func (h *handlers) ensureSession(c *gin.Context) string {
	if id, err := c.Cookie(sessionCookie); err == nil && id != "" {
		return id
	}
	id := uuid.NewString()
	if h.sessions != nil {
		id = h.sessions.NewSessionID()
	}
	c.SetCookie(sessionCookie, id, 30*24*3600, "/", "", false, true)
	return id
}

// storeFor returns the session's optimistic cart store, creating it with a
// pending remote fetch on first touch.
func (h *handlers) storeFor(sessionID string) *cartsvc.Store {
	h.mu.Lock()
	defer h.mu.Unlock()
	if store, ok := h.stores[sessionID]; ok {
		return store
	}
	store := cartsvc.NewStore(func() *domain.Cart {
		return h.cart.Get(context.Background())
	})
	h.stores[sessionID] = store
	return store
}

// dropStore discards a session's optimistic cart so the next touch starts
// from a fresh remote fetch.
func (h *handlers) dropStore(sessionID string) {
	h.mu.Lock()
	delete(h.stores, sessionID)
	h.mu.Unlock()
}

// bindCartID records which remote cart this session belongs to, once the
// backend has announced one. Best-effort: failures are logged only.
func (h *handlers) bindCartID(ctx context.Context, sessionID string) {
	if h.sessions == nil {
		return
	}
	token := h.cart.CartToken()
	if token == "" {
		return
	}
	if err := h.sessions.SetCartID(ctx, sessionID, token); err != nil {
		h.logger.Printf("bind cart id for session %s: %v", sessionID, err)
	}
}
