package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

const defaultRequestTimeout = 15 * time.Second

// HTTPClient talks to the remote catalog service over its JSON API.
// All endpoints live under the service's /api prefix.
type HTTPClient struct {
	base   string
	client *http.Client
	log    *zap.Logger
}

func NewHTTPClient(base string, log *zap.Logger) *HTTPClient {
	if log == nil {
		log = zap.NewNop()
	}
	return &HTTPClient{
		base:   strings.TrimRight(base, "/"),
		client: &http.Client{Timeout: defaultRequestTimeout},
		log:    log,
	}
}

func (c *HTTPClient) Products(ctx context.Context, crit Criteria) ([]Product, error) {
	var products []Product
	if err := c.do(ctx, http.MethodGet, "/products", crit.Values(), nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (c *HTTPClient) Product(ctx context.Context, id string) (Product, error) {
	var p Product
	if err := c.do(ctx, http.MethodGet, "/products/"+url.PathEscape(id), nil, nil, &p); err != nil {
		return Product{}, err
	}
	return p, nil
}

func (c *HTTPClient) Categories(ctx context.Context) ([]Category, error) {
	var categories []Category
	if err := c.do(ctx, http.MethodGet, "/categories", nil, nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// productCreate is the creation payload; the service assigns the ID
// and creation timestamp.
type productCreate struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	ImageURL    string  `json:"imageUrl"`
	Stock       int     `json:"stock"`
}

type categoryCreate struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (c *HTTPClient) CreateProduct(ctx context.Context, p Product) (Product, error) {
	if err := p.Validate(); err != nil {
		return Product{}, err
	}

	body := productCreate{
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Category:    p.Category,
		ImageURL:    p.ImageURL,
		Stock:       p.Stock,
	}

	var created Product
	if err := c.do(ctx, http.MethodPost, "/products", nil, body, &created); err != nil {
		return Product{}, err
	}
	return created, nil
}

func (c *HTTPClient) UpdateProduct(ctx context.Context, id string, patch ProductPatch) (Product, error) {
	var updated Product
	if err := c.do(ctx, http.MethodPut, "/products/"+url.PathEscape(id), nil, patch, &updated); err != nil {
		return Product{}, err
	}
	return updated, nil
}

func (c *HTTPClient) DeleteProduct(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/products/"+url.PathEscape(id), nil, nil, nil)
}

func (c *HTTPClient) CreateCategory(ctx context.Context, cat Category) (Category, error) {
	if err := cat.Validate(); err != nil {
		return Category{}, err
	}

	var created Category
	body := categoryCreate{Name: cat.Name, Description: cat.Description}
	if err := c.do(ctx, http.MethodPost, "/categories", nil, body, &created); err != nil {
		return Category{}, err
	}
	return created, nil
}

func (c *HTTPClient) UpdateCategory(ctx context.Context, id string, patch CategoryPatch) (Category, error) {
	var updated Category
	if err := c.do(ctx, http.MethodPut, "/categories/"+url.PathEscape(id), nil, patch, &updated); err != nil {
		return Category{}, err
	}
	return updated, nil
}

func (c *HTTPClient) DeleteCategory(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/categories/"+url.PathEscape(id), nil, nil, nil)
}

func (c *HTTPClient) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := c.base + "/api" + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("catalog service request failed: %w", err)
	}
	defer resp.Body.Close()

	c.log.Debug("catalog request",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)))

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return fmt.Errorf("catalog service returned %s", resp.Status)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}
