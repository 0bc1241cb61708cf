package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/mvaldez/beautyshelf-backend/pkg/config"
	pkgerrors "github.com/mvaldez/beautyshelf-backend/pkg/errors"
)

// maxBodyBytes caps how much of a catalog response we are willing to read.
const maxBodyBytes = 8 << 20

// Product mirrors one record of the external cosmetics catalog.
type Product struct {
	ID               int64    `json:"id"`
	Brand            string   `json:"brand"`
	Name             string   `json:"name"`
	Price            string   `json:"price"`
	ImageLink        string   `json:"image_link"`
	ProductLink      string   `json:"product_link"`
	Description      string   `json:"description"`
	Category         string   `json:"category"`
	ProductType      string   `json:"product_type"`
	TagList          []string `json:"tag_list"`
	APIFeaturedImage string   `json:"api_featured_image"`
	Rating           *float64 `json:"rating"`
}

// Filter narrows a product listing. Zero-value fields are omitted.
type Filter struct {
	Brand       string
	ProductType string
	Tag         string
}

func (f Filter) query() url.Values {
	q := url.Values{}
	if v := strings.TrimSpace(f.Brand); v != "" {
		q.Set("brand", v)
	}
	if v := strings.TrimSpace(f.ProductType); v != "" {
		q.Set("product_type", v)
	}
	if v := strings.TrimSpace(f.Tag); v != "" {
		q.Set("product_tags", v)
	}
	return q
}

// Client talks to the third-party catalog with a bounded timeout and retry
// budget so page rendering never shares fate with an unbounded network call.
type Client struct {
	httpClient *http.Client
	baseURL    string
	maxRetries uint64
	backoff    func() retry.Backoff
}

// New builds a catalog client from configuration.
func New(cfg config.CatalogConfig) *Client {
	maxRetries := cfg.MaxRetries
	if maxRetries < 0 {
		maxRetries = 0
	}
	delay := cfg.RetryDelay
	if delay <= 0 {
		delay = 100 * time.Millisecond
	}
	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		maxRetries: uint64(maxRetries),
		backoff:    func() retry.Backoff { return retry.NewConstant(delay) },
	}
}

// ListProducts fetches the catalog listing, optionally filtered.
func (c *Client) ListProducts(ctx context.Context, filter Filter) ([]Product, error) {
	endpoint := c.baseURL + "/products.json"
	if q := filter.query(); len(q) > 0 {
		endpoint += "?" + q.Encode()
	}

	var products []Product
	if err := c.getJSON(ctx, endpoint, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// GetProduct fetches a single catalog record by its catalog id.
func (c *Client) GetProduct(ctx context.Context, catalogID int64) (*Product, error) {
	endpoint := fmt.Sprintf("%s/products/%d.json", c.baseURL, catalogID)

	var product Product
	if err := c.getJSON(ctx, endpoint, &product); err != nil {
		return nil, err
	}
	if product.ID == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "catalog product not found")
	}
	return &product, nil
}

func (c *Client) getJSON(ctx context.Context, endpoint string, dest any) error {
	backoff := retry.WithMaxRetries(c.maxRetries, c.backoff())

	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return err
		}
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			// Network failures are transient until the retry budget runs out.
			return retry.RetryableError(err)
		}
		defer resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusNotFound:
			return pkgerrors.New(pkgerrors.CodeNotFound, "catalog product not found")
		case resp.StatusCode >= 500:
			return retry.RetryableError(fmt.Errorf("catalog returned %d", resp.StatusCode))
		case resp.StatusCode != http.StatusOK:
			return fmt.Errorf("catalog returned %d", resp.StatusCode)
		}

		body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
		if err != nil {
			return retry.RetryableError(err)
		}
		if err := json.Unmarshal(body, dest); err != nil {
			return fmt.Errorf("decode catalog response: %w", err)
		}
		return nil
	})
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil {
			return typed
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "catalog request failed").
			WithDetails(map[string]any{"endpoint": endpoint})
	}
	return nil
}
