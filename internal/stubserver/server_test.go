package stubserver

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/naman03malhotra/vercel-commerce/internal/domain"
	"github.com/naman03malhotra/vercel-commerce/internal/fourthwall"
	"github.com/naman03malhotra/vercel-commerce/internal/service/catalog"
)

func newTestBackend(t *testing.T) (*httptest.Server, *fourthwall.Client) {
	t.Helper()
	logger := log.New(io.Discard, "", 0)
	stub := New("stub-key", logger)
	server := httptest.NewServer(stub.Router())
	t.Cleanup(server.Close)
	client := fourthwall.NewClient(server.URL, "stub-key", "mylocalsite", logger)
	return server, client
}

func TestCatalogRoundTrip(t *testing.T) {
	_, client := newTestBackend(t)

	records, err := client.FetchProducts(context.Background(), "USD", 0)
	if err != nil {
		t.Fatalf("FetchProducts: %v", err)
	}
	products := fourthwall.ReshapeProducts(records)
	if len(products) != 3 {
		t.Fatalf("got %d products, want 3", len(products))
	}
	tee := products[0]
	if tee.Handle != "long-sleeve-tee" || tee.Title != "Long Sleeve Tee" {
		t.Fatalf("unexpected first product: %+v", tee)
	}
	if tee.Price.Amount != "25" || tee.Price.CurrencyCode != "USD" {
		t.Fatalf("unexpected price: %+v", tee.Price)
	}
	if tee.FeaturedImage.URL == "" {
		t.Fatalf("expected a featured image")
	}
}

func TestCatalogLimitAndLookup(t *testing.T) {
	_, client := newTestBackend(t)
	ctx := context.Background()

	records, err := client.FetchProducts(ctx, "USD", 1)
	if err != nil {
		t.Fatalf("FetchProducts: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}

	record, err := client.FetchProduct(ctx, "classic-hoodie", "USD")
	if err != nil {
		t.Fatalf("FetchProduct: %v", err)
	}
	product := fourthwall.ReshapeProduct(record)
	if product == nil || product.Price.Amount != "42.5" {
		t.Fatalf("unexpected hoodie: %+v", product)
	}

	if _, err := client.FetchProduct(ctx, "no-such-thing", "USD"); err == nil {
		t.Fatalf("expected an error for an unknown slug")
	} else {
		var statusErr *fourthwall.StatusError
		if !errors.As(err, &statusErr) || statusErr.Status != http.StatusNotFound {
			t.Fatalf("unexpected error: %v", err)
		}
	}
}

func TestMissingProductIsNotFoundThroughCatalog(t *testing.T) {
	_, client := newTestBackend(t)
	svc := catalog.New(client, nil, log.New(io.Discard, "", 0))

	_, err := svc.Get(context.Background(), "no-such-thing", "USD")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for an unknown slug, got %v", err)
	}
}

func TestCartMutationFlow(t *testing.T) {
	_, client := newTestBackend(t)
	ctx := context.Background()

	// Prime the anti-forgery token with a read, like a page load would.
	if _, err := client.FetchProducts(ctx, "USD", 0); err != nil {
		t.Fatalf("FetchProducts: %v", err)
	}

	record, err := client.AddCartItem(ctx, "277", 1)
	if err != nil {
		t.Fatalf("AddCartItem: %v", err)
	}
	cart := fourthwall.ReshapeCart(*record)
	if cart.TotalQuantity != 1 || cart.Cost.TotalAmount.Amount != "25" {
		t.Fatalf("unexpected cart after add: %+v", cart)
	}

	record, err = client.UpdateCartItem(ctx, "277", 3)
	if err != nil {
		t.Fatalf("UpdateCartItem: %v", err)
	}
	cart = fourthwall.ReshapeCart(*record)
	if cart.TotalQuantity != 3 || cart.Cost.TotalAmount.Amount != "75" {
		t.Fatalf("unexpected cart after update: %+v", cart)
	}
	if len(cart.Lines) != 1 || cart.Lines[0].Cost.TotalAmount.Amount != "75" {
		t.Fatalf("unexpected line after update: %+v", cart.Lines)
	}

	record, err = client.RemoveCartItem(ctx, "277")
	if err != nil {
		t.Fatalf("RemoveCartItem: %v", err)
	}
	cart = fourthwall.ReshapeCart(*record)
	if cart.TotalQuantity != 0 || len(cart.Lines) != 0 {
		t.Fatalf("expected an empty cart, got %+v", cart)
	}

	if client.CartToken() == "" {
		t.Fatalf("expected the cart token to be captured")
	}
}

func TestFractionalTotalsSurviveNormalization(t *testing.T) {
	_, client := newTestBackend(t)
	ctx := context.Background()

	if _, err := client.FetchProducts(ctx, "USD", 0); err != nil {
		t.Fatalf("FetchProducts: %v", err)
	}
	record, err := client.AddCartItem(ctx, "301", 2)
	if err != nil {
		t.Fatalf("AddCartItem: %v", err)
	}
	cart := fourthwall.ReshapeCart(*record)
	if cart.Cost.TotalAmount.Amount != "29.98" {
		t.Fatalf("got total %q, want 29.98", cart.Cost.TotalAmount.Amount)
	}
}

func TestStaleTokenRejected(t *testing.T) {
	server, client := newTestBackend(t)
	ctx := context.Background()

	if _, err := client.FetchProducts(ctx, "USD", 0); err != nil {
		t.Fatalf("FetchProducts: %v", err)
	}

	// A raw request replaying no token must be rejected once one exists.
	req, err := http.NewRequest(http.MethodPost, server.URL+"/cart/add-item?key=stub-key", strings.NewReader(`{"id":"277"}`))
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("got status %d, want 403", resp.StatusCode)
	}

	// The client keeps following the rotation and stays usable. Its token
	// went stale when the raw request above rotated the server side, so the
	// first attempt fails and a fresh read recovers it.
	if _, err := client.AddCartItem(ctx, "277", 1); err == nil {
		t.Fatalf("expected a stale-token failure")
	}
	if _, err := client.FetchProducts(ctx, "USD", 0); err != nil {
		t.Fatalf("FetchProducts: %v", err)
	}
	if _, err := client.AddCartItem(ctx, "277", 1); err != nil {
		t.Fatalf("AddCartItem after refresh: %v", err)
	}
}

func TestRequiresServiceKey(t *testing.T) {
	server, _ := newTestBackend(t)

	resp, err := http.Get(server.URL + "/products")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("got status %d, want 401", resp.StatusCode)
	}
}
