package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/naman03malhotra/vercel-commerce/internal/domain"
	cartsvc "github.com/naman03malhotra/vercel-commerce/internal/service/cart"
)

// Mutation endpoints apply the optimistic local transition first and then
// trigger the remote call. A remote failure comes back as a human-readable
// message next to the optimistic cart; local state is not rolled back.

type addItemRequest struct {
	Handle string `json:"handle"`
}

type updateItemRequest struct {
	UpdateType string `json:"updateType"`
}

type cartResponse struct {
	Cart    domain.Cart `json:"cart"`
	CartID  string      `json:"cartId,omitempty"`
	Message string      `json:"message,omitempty"`
}

func (h *handlers) getCart(c *gin.Context) {
	sessionID := h.ensureSession(c)
	store := h.storeFor(sessionID)

	cart := store.Cart()
	if cart == nil {
		// Initial fetch not resolved yet (or no remote cart exists);
		// present a well-formed empty cart rather than nothing.
		empty := cartsvc.Empty()
		cart = &empty
	}

	resp := cartResponse{Cart: *cart}
	if h.sessions != nil {
		if cartID, err := h.sessions.CartID(c.Request.Context(), sessionID); err == nil {
			resp.CartID = cartID
		} else if !errors.Is(err, domain.ErrNotFound) {
			h.logger.Printf("cart id lookup for session %s: %v", sessionID, err)
		}
	}
	c.JSON(http.StatusOK, resp)
}

// clearCart resets the session's local cart and drops its remote binding.
// The remote cart itself is left alone; a later fetch re-adopts it only if
// the session binds again.
func (h *handlers) clearCart(c *gin.Context) {
	sessionID := h.ensureSession(c)
	h.dropStore(sessionID)

	if h.sessions != nil {
		if err := h.sessions.Forget(c.Request.Context(), sessionID); err != nil && !errors.Is(err, domain.ErrNotFound) {
			h.logger.Printf("forget session %s: %v", sessionID, err)
		}
	}
	c.JSON(http.StatusOK, cartResponse{Cart: cartsvc.Empty()})
}

func (h *handlers) addCartItem(c *gin.Context) {
	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Handle == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "handle is required"})
		return
	}

	sessionID := h.ensureSession(c)
	ctx := c.Request.Context()

	product, err := h.catalog.Get(ctx, req.Handle, h.currency)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		h.logger.Printf("resolve product %s: %v", req.Handle, err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to load product"})
		return
	}

	optimistic := h.storeFor(sessionID).AddItem(*product)

	resp := cartResponse{Cart: optimistic}
	if _, err := h.cart.Add(ctx, product.ID, 1); err != nil {
		resp.Message = "Error adding item to cart"
	} else {
		h.bindCartID(ctx, sessionID)
	}
	c.JSON(http.StatusOK, resp)
}

func (h *handlers) updateCartItem(c *gin.Context) {
	var req updateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "updateType is required"})
		return
	}

	var update cartsvc.UpdateType
	switch req.UpdateType {
	case "plus":
		update = cartsvc.Increment
	case "minus":
		update = cartsvc.Decrement
	case "delete":
		update = cartsvc.Delete
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "updateType must be plus, minus or delete"})
		return
	}

	merchandiseID := c.Param("id")
	sessionID := h.ensureSession(c)
	ctx := c.Request.Context()

	optimistic := h.storeFor(sessionID).UpdateItem(domain.Product{ID: merchandiseID}, update)

	// The remote call mirrors what the reducer decided: the line's new
	// quantity, or removal when the line is gone.
	quantity := 0
	for _, line := range optimistic.Lines {
		if line.Merchandise.ID == merchandiseID {
			quantity = line.Quantity
			break
		}
	}

	resp := cartResponse{Cart: optimistic}
	if update == cartsvc.Delete || quantity == 0 {
		if _, err := h.cart.Remove(ctx, merchandiseID); err != nil {
			resp.Message = "Error removing item from cart"
		}
	} else {
		if _, err := h.cart.UpdateQuantity(ctx, merchandiseID, quantity); err != nil {
			resp.Message = "Error updating item quantity"
		}
	}
	if resp.Message == "" {
		h.bindCartID(ctx, sessionID)
	}
	c.JSON(http.StatusOK, resp)
}
