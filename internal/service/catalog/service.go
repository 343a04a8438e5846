package catalog

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/naman03malhotra/vercel-commerce/internal/cache"
	"github.com/naman03malhotra/vercel-commerce/internal/domain"
	"github.com/naman03malhotra/vercel-commerce/internal/fourthwall"
)

// Service reads products from the backend gateway and normalizes them. An
// optional read-through cache fronts the gateway; cache problems are logged
// and fall through to a live fetch, never surfaced.
type Service struct {
	client gateway
	cache  *cache.ProductCache
	logger *log.Logger
}

type gateway interface {
	FetchProducts(ctx context.Context, currency string, limit int) ([]*fourthwall.ProductRecord, error)
	FetchProduct(ctx context.Context, handle, currency string) (*fourthwall.ProductRecord, error)
}

func New(client gateway, productCache *cache.ProductCache, logger *log.Logger) *Service {
	return &Service{client: client, cache: productCache, logger: logger}
}

// List fetches up to limit products (0 = backend default) in the given
// currency. A backend response with nothing in it is an empty list, not an
// error.
func (s *Service) List(ctx context.Context, currency string, limit int) ([]domain.Product, error) {
	if s.cache != nil {
		if products, ok := s.cache.GetList(ctx, currency, limit); ok {
			return products, nil
		}
	}

	records, err := s.client.FetchProducts(ctx, currency, limit)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	if len(records) == 0 {
		s.logger.Printf("no products found for currency=%s", currency)
		return []domain.Product{}, nil
	}

	products := fourthwall.ReshapeProducts(records)
	if s.cache != nil {
		s.cache.SetList(ctx, currency, limit, products)
	}
	return products, nil
}

// Get fetches one product by handle. A missing product maps to
// domain.ErrNotFound.
func (s *Service) Get(ctx context.Context, handle, currency string) (*domain.Product, error) {
	if s.cache != nil {
		if product, ok := s.cache.GetProduct(ctx, handle, currency); ok {
			return product, nil
		}
	}

	record, err := s.client.FetchProduct(ctx, handle, currency)
	if err != nil {
		// The backend reports an unknown handle as a 404.
		var statusErr *fourthwall.StatusError
		if errors.As(err, &statusErr) && statusErr.Status == http.StatusNotFound {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get product %s: %w", handle, err)
	}

	product := fourthwall.ReshapeProduct(record)
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if s.cache != nil {
		s.cache.SetProduct(ctx, handle, currency, *product)
	}
	return product, nil
}
