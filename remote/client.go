// Package remote consumes the paginated product API and turns its responses
// into catalog records. Nothing untyped crosses this boundary: a response
// that cannot be mapped fails with a *DeserializationError.
package remote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/rs/zerolog"

	"go-storefront/catalog"
	"go-storefront/models"
)

const (
	productsPath   = "/api/products/"
	categoriesPath = "/api/categories/"

	// PlaceholderImage is used for products the API returns without an image
	PlaceholderImage = "/placeholder.jpg"
)

var errPaginationLoop = errors.New("pagination loop")

var _ catalog.Source = (*Client)(nil)

// Client fetches products and categories from the product API
type Client struct {
	baseURL         string
	httpClient      *http.Client
	maxTries        uint
	initialInterval time.Duration
	logger          zerolog.Logger
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithMaxTries sets how many times a request is attempted before giving up
func WithMaxTries(n uint) Option {
	return func(c *Client) { c.maxTries = n }
}

// WithRetryInterval sets the first wait between attempts; later waits grow
// exponentially
func WithRetryInterval(d time.Duration) Option {
	return func(c *Client) { c.initialInterval = d }
}

// WithLogger sets the logger used for retry warnings
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// NewClient creates a client for the API rooted at baseURL
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse product API url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("product API url %q must be absolute", baseURL)
	}

	c := &Client{
		baseURL:         strings.TrimRight(u.String(), "/"),
		httpClient:      &http.Client{Timeout: 10 * time.Second},
		maxTries:        3,
		initialInterval: 500 * time.Millisecond,
		logger:          zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Load fetches every category and product. Categories that only appear
// nested inside products are added to the category list.
func (c *Client) Load(ctx context.Context) ([]models.Product, []models.Category, error) {
	categories, err := c.FetchCategories(ctx)
	if err != nil {
		return nil, nil, err
	}
	products, nested, err := c.fetchProducts(ctx)
	if err != nil {
		return nil, nil, err
	}

	known := make(map[string]bool, len(categories))
	for _, cat := range categories {
		known[cat.ID] = true
	}
	for _, cat := range nested {
		if !known[cat.ID] {
			known[cat.ID] = true
			categories = append(categories, cat)
		}
	}

	c.logger.Info().
		Int("products", len(products)).
		Int("categories", len(categories)).
		Msg("fetched catalog from product API")
	return products, categories, nil
}

// FetchProducts fetches every page of the product listing
func (c *Client) FetchProducts(ctx context.Context) ([]models.Product, error) {
	products, _, err := c.fetchProducts(ctx)
	return products, err
}

func (c *Client) fetchProducts(ctx context.Context) ([]models.Product, []models.Category, error) {
	target := c.baseURL + productsPath
	raw, err := fetchAll[productLike](ctx, c, target)
	if err != nil {
		return nil, nil, err
	}

	products := make([]models.Product, 0, len(raw))
	var nested []models.Category
	for i, r := range raw {
		p, err := r.toProduct()
		if err != nil {
			return nil, nil, &DeserializationError{URL: target, Err: fmt.Errorf("product %d: %w", i, err)}
		}
		products = append(products, p)
		if r.Category.nested != nil {
			if cat, err := r.Category.nested.toCategory(); err == nil {
				nested = append(nested, cat)
			}
		}
	}
	return products, nested, nil
}

// FetchCategories fetches every page of the category listing
func (c *Client) FetchCategories(ctx context.Context) ([]models.Category, error) {
	target := c.baseURL + categoriesPath
	raw, err := fetchAll[categoryLike](ctx, c, target)
	if err != nil {
		return nil, err
	}

	categories := make([]models.Category, 0, len(raw))
	for i, r := range raw {
		cat, err := r.toCategory()
		if err != nil {
			return nil, &DeserializationError{URL: target, Err: fmt.Errorf("category %d: %w", i, err)}
		}
		categories = append(categories, cat)
	}
	return categories, nil
}

// fetchAll follows next links from target until the last page
func fetchAll[T any](ctx context.Context, c *Client, target string) ([]T, error) {
	var all []T
	seen := make(map[string]bool)

	for next := target; next != ""; {
		if seen[next] {
			return nil, &DeserializationError{URL: next, Err: errPaginationLoop}
		}
		seen[next] = true

		body, err := c.get(ctx, next)
		if err != nil {
			return nil, err
		}

		var page envelope[T]
		if err := json.Unmarshal(body, &page); err != nil {
			return nil, &DeserializationError{URL: next, Err: err}
		}
		if page.Results == nil {
			return nil, &DeserializationError{URL: next, Err: errors.New("missing results")}
		}
		all = append(all, page.Results...)

		current := next
		next = ""
		if page.Next != nil && *page.Next != "" {
			resolved, err := resolve(current, *page.Next)
			if err != nil {
				return nil, &DeserializationError{URL: current, Err: err}
			}
			next = resolved
		}
	}
	return all, nil
}

func resolve(base, ref string) (string, error) {
	b, err := url.Parse(base)
	if err != nil {
		return "", err
	}
	r, err := url.Parse(ref)
	if err != nil {
		return "", fmt.Errorf("invalid next link: %w", err)
	}
	return b.ResolveReference(r).String(), nil
}

// get performs one GET, retrying network errors, 5xx and 429 responses
func (c *Client) get(ctx context.Context, target string) ([]byte, error) {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = c.initialInterval

	operation := func() ([]byte, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
		if err != nil {
			return nil, backoff.Permanent(err)
		}
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			statusErr := &StatusError{URL: target, StatusCode: resp.StatusCode}
			if statusErr.Retryable() {
				return nil, statusErr
			}
			return nil, backoff.Permanent(statusErr)
		}
		return io.ReadAll(resp.Body)
	}

	return backoff.Retry(ctx, operation,
		backoff.WithBackOff(b),
		backoff.WithMaxTries(c.maxTries),
		backoff.WithNotify(func(err error, wait time.Duration) {
			c.logger.Warn().Err(err).Str("url", target).Dur("retry_in", wait).Msg("product API request failed")
		}),
	)
}
