package models

import (
	"github.com/shopspring/decimal"
)

// Product represents one sellable item in the catalog
type Product struct {
	ID          string          `json:"id" yaml:"id" validate:"required"`
	Name        string          `json:"name" yaml:"name" validate:"required"`
	Description string          `json:"description" yaml:"description"`
	Price       decimal.Decimal `json:"price" yaml:"price" validate:"gte=0"`
	Images      []string        `json:"images" yaml:"images" validate:"min=1,dive,required"`
	Category    string          `json:"category" yaml:"category" validate:"required"`
	Tags        []string        `json:"tags" yaml:"tags"`
	Stock       int             `json:"stock" yaml:"stock" validate:"gte=0"`
	Rating      float64         `json:"rating" yaml:"rating" validate:"gte=0,lte=5"`
	Featured    bool            `json:"featured" yaml:"featured"`
}

// HasTag reports whether the product carries the given tag
func (p *Product) HasTag(tag string) bool {
	for _, t := range p.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// InStock reports whether at least one unit is available
func (p *Product) InStock() bool {
	return p.Stock > 0
}

// Category represents a grouping of products
type Category struct {
	ID          string `json:"id" yaml:"id" validate:"required"`
	Name        string `json:"name" yaml:"name" validate:"required"`
	Description string `json:"description" yaml:"description"`
	Image       string `json:"image" yaml:"image"`
}

// ProductPage is the paginated envelope returned by product searches
type ProductPage struct {
	Count   int        `json:"count"`
	Results []*Product `json:"results"`
}

// CategoryDetail is a category together with the products filed under it
type CategoryDetail struct {
	Category Category   `json:"category"`
	Products []*Product `json:"products"`
}
