package httpserver

import (
	"errors"
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// buildRouter wires routes for the storefront API.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps, defaultCurrency string) (*gin.Engine, error) {
	if deps.Catalog == nil || deps.Cart == nil {
		return nil, errors.New("catalog and cart services are required")
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())
	router.Use(cors.Default())

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	h := newHandlers(deps, defaultCurrency, logger)
	api := router.Group("/api")
	api.GET("/products", h.listProducts)
	api.GET("/products/:handle", h.getProduct)
	api.GET("/cart", h.getCart)
	api.DELETE("/cart", h.clearCart)
	api.POST("/cart/items", h.addCartItem)
	api.POST("/cart/items/:id", h.updateCartItem)

	return router, nil
}
