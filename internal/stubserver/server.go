package stubserver

import (
	"log"
	"math"
	"net/http"
	"strconv"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/naman03malhotra/vercel-commerce/internal/fourthwall"
)

const (
	csrfHeader      = "X-CSRF-Token"
	cartTokenHeader = "Cart-Token"
	currencyCode    = "USD"
	minorUnit       = 2
)

// Server fakes the remote commerce backend for local development and
// demos: the catalog read API in major units and the legacy cart API in
// minor units, with the rotating anti-forgery token the real platform
// uses. State lives in memory and resets on restart.
type Server struct {
	logger *log.Logger
	key    string

	mu        sync.Mutex
	csrf      string
	cartToken string
	products  []fourthwall.ProductRecord
	// line quantities by product id; order tracks insertion for stable
	// cart rendering.
	quantities map[int64]int
	order      []int64
}

func New(key string, logger *log.Logger) *Server {
	return &Server{
		logger:     logger,
		key:        key,
		cartToken:  uuid.NewString(),
		products:   defaultProducts(),
		quantities: make(map[int64]int),
	}
}

// Router builds the gin engine serving the fake backend.
func (s *Server) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(s.logger.Writer()), gin.Recovery())
	router.Use(s.requireKey, s.rotateCSRF)

	router.GET("/products", s.listProducts)
	router.GET("/products/:slug", s.getProduct)
	router.GET("/cart", s.getCart)
	router.POST("/cart/add-item", s.addItem)
	router.PUT("/cart/update-item", s.updateItem)
	router.DELETE("/cart/delete-item", s.deleteItem)

	return router
}

func (s *Server) requireKey(c *gin.Context) {
	if c.Query("key") != s.key {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid service key"})
		return
	}
	c.Next()
}

// rotateCSRF issues a fresh token on every response and, for mutations,
// requires the previously issued one.
func (s *Server) rotateCSRF(c *gin.Context) {
	s.mu.Lock()
	current := s.csrf
	next := uuid.NewString()
	s.csrf = next
	s.mu.Unlock()

	if c.Request.Method != http.MethodGet && current != "" {
		if c.GetHeader(csrfHeader) != current {
			c.Header(csrfHeader, next)
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "stale or missing csrf token"})
			return
		}
	}
	c.Header(csrfHeader, next)
	c.Next()
}

func (s *Server) listProducts(c *gin.Context) {
	limit := len(s.products)
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed >= 0 && parsed < limit {
			limit = parsed
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	c.JSON(http.StatusOK, s.products[:limit])
}

func (s *Server) getProduct(c *gin.Context) {
	slug := c.Param("slug")
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, product := range s.products {
		if product.Slug == slug {
			c.JSON(http.StatusOK, product)
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
}

func (s *Server) getCart(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.Header(cartTokenHeader, s.cartToken)
	c.JSON(http.StatusOK, s.buildCartLocked())
}

type mutationRequest struct {
	ID       string `json:"id"`
	Quantity *int   `json:"quantity"`
}

func (s *Server) addItem(c *gin.Context) {
	req, productID, ok := s.bindMutation(c)
	if !ok {
		return
	}
	quantity := 1
	if req.Quantity != nil && *req.Quantity > 0 {
		quantity = *req.Quantity
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.quantities[productID]; !exists {
		s.order = append(s.order, productID)
	}
	s.quantities[productID] += quantity
	c.Header(cartTokenHeader, s.cartToken)
	c.JSON(http.StatusOK, s.buildCartLocked())
}

func (s *Server) updateItem(c *gin.Context) {
	req, productID, ok := s.bindMutation(c)
	if !ok {
		return
	}
	if req.Quantity == nil || *req.Quantity <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "quantity must be positive"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.quantities[productID]; !exists {
		c.JSON(http.StatusNotFound, gin.H{"error": "item not in cart"})
		return
	}
	s.quantities[productID] = *req.Quantity
	c.Header(cartTokenHeader, s.cartToken)
	c.JSON(http.StatusOK, s.buildCartLocked())
}

func (s *Server) deleteItem(c *gin.Context) {
	_, productID, ok := s.bindMutation(c)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.quantities, productID)
	for i, id := range s.order {
		if id == productID {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	c.Header(cartTokenHeader, s.cartToken)
	c.JSON(http.StatusOK, s.buildCartLocked())
}

func (s *Server) bindMutation(c *gin.Context) (mutationRequest, int64, bool) {
	var req mutationRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.ID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id is required"})
		return req, 0, false
	}
	productID, err := strconv.ParseInt(req.ID, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id must be numeric"})
		return req, 0, false
	}
	return req, productID, true
}

// buildCartLocked renders the cart in the legacy wire format: integers in
// minor units with an explicit exponent. Callers hold s.mu.
func (s *Server) buildCartLocked() fourthwall.CartRecord {
	items := make([]fourthwall.CartItemRecord, 0, len(s.order))
	var total int64
	for _, productID := range s.order {
		quantity := s.quantities[productID]
		product := s.productByID(productID)
		unitMinor := toMinor(product.Prices.Price)
		lineTotal := unitMinor * int64(quantity)
		total += lineTotal

		images := make([]fourthwall.CartItemImage, 0, len(product.Images))
		for _, img := range product.Images {
			images = append(images, fourthwall.CartItemImage{ID: img.ID, Src: img.Src, Thumbnail: img.Src, Alt: img.Alt})
		}

		items = append(items, fourthwall.CartItemRecord{
			Key:       "line-" + strconv.FormatInt(productID, 10),
			ProductID: productID,
			Quantity:  quantity,
			Name:      product.Name,
			SKU:       product.Slug,
			Images:    images,
			Totals: fourthwall.LineTotals{
				LineTotal:         lineTotal,
				CurrencyCode:      currencyCode,
				CurrencyMinorUnit: minorUnit,
			},
		})
	}

	return fourthwall.CartRecord{
		Items: items,
		Totals: fourthwall.CartTotals{
			TotalItems:        total,
			TotalPrice:        total,
			CurrencyCode:      currencyCode,
			CurrencyMinorUnit: minorUnit,
		},
	}
}

func (s *Server) productByID(id int64) fourthwall.ProductRecord {
	for _, product := range s.products {
		if product.ID == id {
			return product
		}
	}
	return fourthwall.ProductRecord{ID: id, Name: "Unknown Product"}
}

func toMinor(major float64) int64 {
	return int64(math.Round(major * math.Pow(10, minorUnit)))
}
