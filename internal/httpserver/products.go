package httpserver

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/naman03malhotra/vercel-commerce/internal/domain"
)

func (h *handlers) listProducts(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a non-negative integer"})
			return
		}
		limit = parsed
	}

	products, err := h.catalog.List(c.Request.Context(), h.currency, limit)
	if err != nil {
		h.logger.Printf("list products: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to load products"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products})
}

func (h *handlers) getProduct(c *gin.Context) {
	handle := c.Param("handle")
	product, err := h.catalog.Get(c.Request.Context(), handle, h.currency)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		h.logger.Printf("get product %s: %v", handle, err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to load product"})
		return
	}
	c.JSON(http.StatusOK, product)
}
