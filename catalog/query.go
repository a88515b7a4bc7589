package catalog

import (
	"fmt"
	"sort"
	"strings"

	"go-storefront/models"
)

const (
	// DefaultRelatedLimit is the number of related products shown on a product page
	DefaultRelatedLimit = 4
	// DefaultPageSize is used by Search when no page size is requested
	DefaultPageSize = 12
	// MaxPageSize caps the page size a client may request
	MaxPageSize = 100
)

// Engine answers catalog queries over a Store. All methods are pure reads.
type Engine struct {
	store *Store
}

// NewEngine creates a query engine over the given store
func NewEngine(store *Store) *Engine {
	return &Engine{store: store}
}

// ListFeatured returns the featured products in catalog order
func (e *Engine) ListFeatured() []*models.Product {
	return e.filter(func(p *models.Product) bool { return p.Featured })
}

// FindByID returns the product with the given id, or an error wrapping
// ErrNotFound.
func (e *Engine) FindByID(id string) (*models.Product, error) {
	p, ok := e.store.Product(id)
	if !ok {
		return nil, fmt.Errorf("product %q: %w", id, ErrNotFound)
	}
	return p, nil
}

// ListByCategory returns the products filed under categoryID in catalog
// order. An unknown category yields an empty result, the same as a category
// with no products.
func (e *Engine) ListByCategory(categoryID string) []*models.Product {
	return e.filter(func(p *models.Product) bool { return p.Category == categoryID })
}

// ListRelated returns up to limit products, other than product itself, that
// share its category or at least one of its tags. Matches are taken in
// catalog order. A limit of zero or less means DefaultRelatedLimit, so
// unlike a plain slice bound, 0 never yields an empty list by itself.
func (e *Engine) ListRelated(product *models.Product, limit int) []*models.Product {
	related := make([]*models.Product, 0)
	if product == nil {
		return related
	}
	if limit <= 0 {
		limit = DefaultRelatedLimit
	}

	for _, p := range e.store.products {
		if len(related) == limit {
			break
		}
		if p.ID == product.ID {
			continue
		}
		if p.Category == product.Category || sharesTag(p, product) {
			related = append(related, p)
		}
	}
	return related
}

func sharesTag(a, b *models.Product) bool {
	for _, tag := range a.Tags {
		if b.HasTag(tag) {
			return true
		}
	}
	return false
}

// ListCategories returns every category in catalog order
func (e *Engine) ListCategories() []models.Category {
	return e.store.Categories()
}

// FindCategory returns the category with the given id, or an error wrapping
// ErrNotFound.
func (e *Engine) FindCategory(id string) (models.Category, error) {
	c, ok := e.store.Category(id)
	if !ok {
		return models.Category{}, fmt.Errorf("category %q: %w", id, ErrNotFound)
	}
	return c, nil
}

// Query describes a product listing request
type Query struct {
	Category string
	// Search is matched case-insensitively against product names
	Search string
	// Ordering is one of name, price, rating, optionally prefixed with "-"
	// for descending order. Empty keeps catalog order.
	Ordering string
	Featured *bool
	Page     int
	PageSize int
}

// Search filters, orders and paginates the catalog. Count in the result is
// the number of matches across all pages.
func (e *Engine) Search(q Query) (models.ProductPage, error) {
	less, err := orderingFunc(q.Ordering)
	if err != nil {
		return models.ProductPage{}, err
	}

	needle := strings.ToLower(strings.TrimSpace(q.Search))
	matches := e.filter(func(p *models.Product) bool {
		if q.Category != "" && p.Category != q.Category {
			return false
		}
		if q.Featured != nil && p.Featured != *q.Featured {
			return false
		}
		if needle != "" && !strings.Contains(strings.ToLower(p.Name), needle) {
			return false
		}
		return true
	})

	if less != nil {
		sort.SliceStable(matches, func(i, j int) bool { return less(matches[i], matches[j]) })
	}

	page, size := q.Page, q.PageSize
	if page < 1 {
		page = 1
	}
	if size <= 0 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}

	result := models.ProductPage{Count: len(matches), Results: make([]*models.Product, 0)}
	start := (page - 1) * size
	if start >= len(matches) {
		return result, nil
	}
	end := start + size
	if end > len(matches) {
		end = len(matches)
	}
	result.Results = append(result.Results, matches[start:end]...)
	return result, nil
}

type lessFunc func(a, b *models.Product) bool

func orderingFunc(ordering string) (lessFunc, error) {
	key := strings.TrimPrefix(ordering, "-")
	desc := key != ordering

	var less lessFunc
	switch key {
	case "":
		if desc {
			return nil, fmt.Errorf("%w: %q", ErrInvalidOrdering, ordering)
		}
		return nil, nil
	case "name":
		less = func(a, b *models.Product) bool {
			return strings.ToLower(a.Name) < strings.ToLower(b.Name)
		}
	case "price":
		less = func(a, b *models.Product) bool { return a.Price.LessThan(b.Price) }
	case "rating":
		less = func(a, b *models.Product) bool { return a.Rating < b.Rating }
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidOrdering, ordering)
	}

	if desc {
		return func(a, b *models.Product) bool { return less(b, a) }, nil
	}
	return less, nil
}

func (e *Engine) filter(keep func(*models.Product) bool) []*models.Product {
	out := make([]*models.Product, 0)
	for _, p := range e.store.products {
		if keep(p) {
			out = append(out, p)
		}
	}
	return out
}
