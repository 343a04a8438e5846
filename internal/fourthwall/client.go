package fourthwall

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"
)

const (
	csrfHeader       = "X-CSRF-Token"
	cartTokenHeader  = "Cart-Token"
	clientSiteHeader = "X-WB-Client-Site"
)

// StatusError reports a non-success backend response with enough context to
// diagnose it: status code, the URL that was called and the raw body.
type StatusError struct {
	Status int
	URL    string
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("fourthwall: status %d from %s", e.Status, e.URL)
}

// Client performs authenticated exchanges with the remote commerce backend
// and hands raw records back; callers run them through the reshape layer.
//
// The backend rotates an anti-forgery token: each response may carry a fresh
// one in its headers, and the client replays the latest on the next request
// (last-write-wins). The slot is mutex-guarded; construct one Client per
// session rather than sharing a single token across unrelated users.
type Client struct {
	baseURL      string
	serviceToken string
	clientSite   string
	httpClient   *http.Client
	logger       *log.Logger

	mu        sync.Mutex
	csrf      string
	cartToken string
}

func NewClient(baseURL, serviceToken, clientSite string, logger *log.Logger) *Client {
	return &Client{
		baseURL:      strings.TrimRight(baseURL, "/"),
		serviceToken: serviceToken,
		clientSite:   clientSite,
		httpClient:   &http.Client{Timeout: 15 * time.Second},
		logger:       logger,
	}
}

// FetchProducts lists raw catalog records. A backend response with no body
// yields an empty slice, not an error.
func (c *Client) FetchProducts(ctx context.Context, currency string, limit int) ([]*ProductRecord, error) {
	query := url.Values{}
	query.Set("currency", currency)
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}
	var records []*ProductRecord
	if err := c.get(ctx, "products", query, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// FetchProduct reads one raw catalog record by handle.
func (c *Client) FetchProduct(ctx context.Context, handle, currency string) (*ProductRecord, error) {
	query := url.Values{}
	query.Set("currency", currency)
	var record *ProductRecord
	if err := c.get(ctx, "products/"+url.PathEscape(handle), query, &record); err != nil {
		return nil, err
	}
	return record, nil
}

// FetchCart reads the remote cart. Any failure (network, non-200, malformed
// body) is logged and collapsed into an absent cart, so the caller always
// gets either a usable snapshot or a clean "no cart" signal.
func (c *Client) FetchCart(ctx context.Context) *CartRecord {
	var record *CartRecord
	if err := c.get(ctx, "cart", nil, &record); err != nil {
		c.logger.Printf("cart fetch failed, treating as absent: %v", err)
		return nil
	}
	return record
}

type mutationPayload struct {
	ID       string `json:"id"`
	Quantity *int   `json:"quantity,omitempty"`
}

// AddCartItem creates or grows a line on the remote cart and returns the
// post-mutation snapshot.
func (c *Client) AddCartItem(ctx context.Context, id string, quantity int) (*CartRecord, error) {
	var record CartRecord
	if err := c.send(ctx, http.MethodPost, "cart/add-item", mutationPayload{ID: id, Quantity: &quantity}, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

// UpdateCartItem sets a line's quantity on the remote cart.
func (c *Client) UpdateCartItem(ctx context.Context, id string, quantity int) (*CartRecord, error) {
	var record CartRecord
	if err := c.send(ctx, http.MethodPut, "cart/update-item", mutationPayload{ID: id, Quantity: &quantity}, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

// RemoveCartItem deletes a line from the remote cart.
func (c *Client) RemoveCartItem(ctx context.Context, id string) (*CartRecord, error) {
	var record CartRecord
	if err := c.send(ctx, http.MethodDelete, "cart/delete-item", mutationPayload{ID: id}, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

func (c *Client) get(ctx context.Context, endpoint string, query url.Values, out interface{}) error {
	u, err := url.Parse(c.baseURL + "/" + endpoint)
	if err != nil {
		return fmt.Errorf("build url for %s: %w", endpoint, err)
	}
	q := u.Query()
	for key, values := range query {
		for _, v := range values {
			q.Add(key, v)
		}
	}
	q.Set("key", c.serviceToken)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return fmt.Errorf("build request for %s: %w", endpoint, err)
	}
	c.applyHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("get %s: %w", u.String(), err)
	}
	defer resp.Body.Close()
	c.captureToken(resp)

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response from %s: %w", u.String(), err)
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Printf("get failed: status=%d url=%s body=%s", resp.StatusCode, u.String(), body)
		return &StatusError{Status: resp.StatusCode, URL: u.String(), Body: string(body)}
	}

	if len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode response from %s: %w", u.String(), err)
	}
	return nil
}

func (c *Client) send(ctx context.Context, method, endpoint string, payload, out interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode payload for %s: %w", endpoint, err)
	}
	reqURL := c.baseURL + "/" + endpoint + "?key=" + url.QueryEscape(c.serviceToken)

	req, err := http.NewRequestWithContext(ctx, method, reqURL, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("build request for %s: %w", endpoint, err)
	}
	c.applyHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", strings.ToLower(method), reqURL, err)
	}
	defer resp.Body.Close()
	c.captureToken(resp)

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response from %s: %w", reqURL, err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		c.logger.Printf("mutation failed: status=%d url=%s body=%s", resp.StatusCode, reqURL, body)
		return &StatusError{Status: resp.StatusCode, URL: reqURL, Body: string(body)}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode response from %s: %w", reqURL, err)
	}
	return nil
}

func (c *Client) applyHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(clientSiteHeader, c.clientSite)
	c.mu.Lock()
	if c.csrf != "" {
		req.Header.Set(csrfHeader, c.csrf)
	}
	c.mu.Unlock()
}

func (c *Client) captureToken(resp *http.Response) {
	c.mu.Lock()
	if token := resp.Header.Get(csrfHeader); token != "" {
		c.csrf = token
	}
	if token := resp.Header.Get(cartTokenHeader); token != "" {
		c.cartToken = token
	}
	c.mu.Unlock()
}

// CartToken returns the cart identifier the backend last announced, empty
// until a cart response has been seen.
func (c *Client) CartToken() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cartToken
}
