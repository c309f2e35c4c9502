// Package client is a typed wrapper around the inventory HTTP API.
//
// Every method returns either its result or a *Error carrying a
// human-readable message, whether the failure came from the server or from
// the transport.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goldenhive/inventory/models"
)

const (
	defaultTimeout   = 10 * time.Second
	maxErrorBodySize = 64 << 10
)

// Error is the only error type returned by Client. Status is the HTTP status
// of the response, or 0 when no usable response was received.
type Error struct {
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// StatusOf returns the HTTP status carried by err, or 0.
func StatusOf(err error) int {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Status
	}
	return 0
}

// ListParams filters ListProducts. Empty fields are not sent.
type ListParams struct {
	Search   string
	Category string
}

// ProductPayload is the body for create and full update. A nil Quantity is
// omitted from the request.
type ProductPayload struct {
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	SKU         string  `json:"sku"`
	Price       float64 `json:"price"`
	Quantity    *int    `json:"quantity,omitempty"`
	Description string  `json:"description"`
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

type Option func(*Client)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout sets the per-request timeout of the underlying client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		clone := *c.httpClient
		clone.Timeout = d
		c.httpClient = &clone
	}
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) ListProducts(ctx context.Context, params ListParams) ([]models.Product, error) {
	q := url.Values{}
	if params.Search != "" {
		q.Set("search", params.Search)
	}
	if params.Category != "" {
		q.Set("category", params.Category)
	}

	path := "/api/products"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	products := []models.Product{}
	if err := c.do(ctx, http.MethodGet, path, nil, &products, "Failed to fetch products"); err != nil {
		return nil, err
	}
	return products, nil
}

func (c *Client) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	if err := c.do(ctx, http.MethodGet, productPath(id), nil, &product, "Failed to fetch product"); err != nil {
		return nil, err
	}
	return &product, nil
}

func (c *Client) ListCategories(ctx context.Context) ([]string, error) {
	categories := []string{}
	if err := c.do(ctx, http.MethodGet, "/api/categories", nil, &categories, "Failed to fetch categories"); err != nil {
		return nil, err
	}
	return categories, nil
}

func (c *Client) CreateProduct(ctx context.Context, payload ProductPayload) (*models.Product, error) {
	var product models.Product
	if err := c.do(ctx, http.MethodPost, "/api/products", payload, &product, "Failed to create product"); err != nil {
		return nil, err
	}
	return &product, nil
}

func (c *Client) UpdateProduct(ctx context.Context, id uint, payload ProductPayload) (*models.Product, error) {
	var product models.Product
	if err := c.do(ctx, http.MethodPut, productPath(id), payload, &product, "Failed to update product"); err != nil {
		return nil, err
	}
	return &product, nil
}

func (c *Client) UpdateQuantity(ctx context.Context, id uint, quantity int) (*models.Product, error) {
	body := map[string]int{"quantity": quantity}

	var product models.Product
	if err := c.do(ctx, http.MethodPatch, productPath(id)+"/quantity", body, &product, "Failed to update quantity"); err != nil {
		return nil, err
	}
	return &product, nil
}

func (c *Client) DeleteProduct(ctx context.Context, id uint) error {
	return c.do(ctx, http.MethodDelete, productPath(id), nil, nil, "Failed to delete product")
}

func productPath(id uint) string {
	return "/api/products/" + strconv.FormatUint(uint64(id), 10)
}

// do sends one request. A non-nil out is decoded from a 2xx body;
// fallback is the message used when the server gives none.
func (c *Client) do(ctx context.Context, method, path string, body, out any, fallback string) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return &Error{Message: fallback, Err: err}
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return &Error{Message: fallback, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &Error{Message: transportMessage(err, fallback), Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
		return &Error{Status: resp.StatusCode, Message: errorMessage(raw, fallback)}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &Error{Message: fallback, Err: fmt.Errorf("decode %s %s: %w", method, path, err)}
	}
	return nil
}

// errorMessage prefers the JSON "error" field, then the raw body text.
func errorMessage(raw []byte, fallback string) string {
	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(raw, &body); err == nil && body.Error != "" {
		return body.Error
	}
	if text := strings.TrimSpace(string(raw)); text != "" {
		return text
	}
	return fallback
}

func transportMessage(err error, fallback string) string {
	var netErr interface{ Timeout() bool }
	switch {
	case errors.Is(err, context.DeadlineExceeded),
		errors.As(err, &netErr) && netErr.Timeout():
		return fallback + ": request timed out"
	case errors.Is(err, context.Canceled):
		return fallback + ": request cancelled"
	default:
		return fallback + ": server unreachable"
	}
}
