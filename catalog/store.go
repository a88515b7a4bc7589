package catalog

import (
	"fmt"

	"go-storefront/models"
	"go-storefront/utils"
)

// Store is the immutable in-memory catalog. It is built once at startup and
// only read afterwards, so it is safe for concurrent use without locking.
type Store struct {
	products     []*models.Product
	productByID  map[string]*models.Product
	categories   []models.Category
	categoryByID map[string]int
}

// NewStore copies the given records into a new Store after checking the
// catalog invariants. The caller's slices are not retained.
func NewStore(products []models.Product, categories []models.Category) (*Store, error) {
	validate := utils.NewValidator()

	s := &Store{
		products:     make([]*models.Product, 0, len(products)),
		productByID:  make(map[string]*models.Product, len(products)),
		categories:   make([]models.Category, 0, len(categories)),
		categoryByID: make(map[string]int, len(categories)),
	}

	for _, c := range categories {
		if err := validate.Struct(c); err != nil {
			return nil, fmt.Errorf("%w: category %q: %v", ErrInvalidCatalog, c.ID, err)
		}
		if _, dup := s.categoryByID[c.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate category id %q", ErrInvalidCatalog, c.ID)
		}
		s.categoryByID[c.ID] = len(s.categories)
		s.categories = append(s.categories, c)
	}

	for i := range products {
		p := copyProduct(products[i])
		if err := validate.Struct(p); err != nil {
			return nil, fmt.Errorf("%w: product %q: %v", ErrInvalidCatalog, p.ID, err)
		}
		if _, dup := s.productByID[p.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate product id %q", ErrInvalidCatalog, p.ID)
		}
		if _, ok := s.categoryByID[p.Category]; !ok {
			return nil, fmt.Errorf("%w: product %q references unknown category %q", ErrInvalidCatalog, p.ID, p.Category)
		}
		s.productByID[p.ID] = p
		s.products = append(s.products, p)
	}

	return s, nil
}

func copyProduct(p models.Product) *models.Product {
	p.Images = append([]string(nil), p.Images...)
	p.Tags = append([]string(nil), p.Tags...)
	return &p
}

// Products returns every product in catalog order. The records are shared
// with the store and must be treated as read-only.
func (s *Store) Products() []*models.Product {
	out := make([]*models.Product, len(s.products))
	copy(out, s.products)
	return out
}

// Product returns the product with the given id
func (s *Store) Product(id string) (*models.Product, bool) {
	p, ok := s.productByID[id]
	return p, ok
}

// Categories returns every category in catalog order
func (s *Store) Categories() []models.Category {
	out := make([]models.Category, len(s.categories))
	copy(out, s.categories)
	return out
}

// Category returns the category with the given id
func (s *Store) Category(id string) (models.Category, bool) {
	i, ok := s.categoryByID[id]
	if !ok {
		return models.Category{}, false
	}
	return s.categories[i], true
}

// Len returns the number of products in the store
func (s *Store) Len() int {
	return len(s.products)
}
