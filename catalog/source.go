package catalog

import (
	"context"
	"fmt"

	"go-storefront/models"
)

// Source supplies the raw records a Store is built from
type Source interface {
	Load(ctx context.Context) ([]models.Product, []models.Category, error)
}

// Load reads every record from src and builds a Store from them
func Load(ctx context.Context, src Source) (*Store, error) {
	products, categories, err := src.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	return NewStore(products, categories)
}

// StaticSource serves the catalog bundled with the binary
type StaticSource struct{}

// Load returns fresh copies of the bundled products and categories
func (StaticSource) Load(context.Context) ([]models.Product, []models.Category, error) {
	return SeedProducts(), SeedCategories(), nil
}
