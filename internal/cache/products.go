package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/naman03malhotra/vercel-commerce/internal/domain"
)

// ProductCache is a redis-backed read-through cache for normalized catalog
// reads. It is strictly best-effort: a miss or a redis failure means the
// caller fetches live, and failures are logged rather than returned.
type ProductCache struct {
	rdb    *redis.Client
	ttl    time.Duration
	logger *log.Logger
}

func NewProductCache(rdb *redis.Client, ttl time.Duration, logger *log.Logger) *ProductCache {
	return &ProductCache{rdb: rdb, ttl: ttl, logger: logger}
}

func (c *ProductCache) GetList(ctx context.Context, currency string, limit int) ([]domain.Product, bool) {
	raw, err := c.rdb.Get(ctx, listKey(currency, limit)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Printf("cache get list: %v", err)
		}
		return nil, false
	}
	var products []domain.Product
	if err := json.Unmarshal(raw, &products); err != nil {
		c.logger.Printf("cache decode list: %v", err)
		return nil, false
	}
	return products, true
}

func (c *ProductCache) SetList(ctx context.Context, currency string, limit int, products []domain.Product) {
	payload, err := json.Marshal(products)
	if err != nil {
		c.logger.Printf("cache encode list: %v", err)
		return
	}
	if err := c.rdb.Set(ctx, listKey(currency, limit), payload, c.ttl).Err(); err != nil {
		c.logger.Printf("cache set list: %v", err)
	}
}

func (c *ProductCache) GetProduct(ctx context.Context, handle, currency string) (*domain.Product, bool) {
	raw, err := c.rdb.Get(ctx, productKey(handle, currency)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Printf("cache get product: %v", err)
		}
		return nil, false
	}
	var product domain.Product
	if err := json.Unmarshal(raw, &product); err != nil {
		c.logger.Printf("cache decode product: %v", err)
		return nil, false
	}
	return &product, true
}

func (c *ProductCache) SetProduct(ctx context.Context, handle, currency string, product domain.Product) {
	payload, err := json.Marshal(product)
	if err != nil {
		c.logger.Printf("cache encode product: %v", err)
		return
	}
	if err := c.rdb.Set(ctx, productKey(handle, currency), payload, c.ttl).Err(); err != nil {
		c.logger.Printf("cache set product: %v", err)
	}
}

func listKey(currency string, limit int) string {
	return fmt.Sprintf("catalog:list:%s:%d", currency, limit)
}

func productKey(handle, currency string) string {
	return fmt.Sprintf("catalog:product:%s:%s", currency, handle)
}
