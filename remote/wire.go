package remote

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"go-storefront/models"
)

type envelope[T any] struct {
	Count   int     `json:"count"`
	Next    *string `json:"next"`
	Results []T     `json:"results"`
}

// flexString accepts either a JSON string or a JSON number
type flexString string

func (s *flexString) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		*s = flexString(str)
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(data, &num); err != nil {
		return fmt.Errorf("expected string or number, got %s", data)
	}
	*s = flexString(num.String())
	return nil
}

type categoryLike struct {
	ID          flexString `json:"id"`
	Slug        string     `json:"slug"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Image       string     `json:"image"`
}

func (c categoryLike) key() string {
	if c.Slug != "" {
		return c.Slug
	}
	return string(c.ID)
}

func (c categoryLike) toCategory() (models.Category, error) {
	if c.key() == "" {
		return models.Category{}, errors.New("category has neither slug nor id")
	}
	name := c.Name
	if name == "" {
		name = c.key()
	}
	return models.Category{
		ID:          c.key(),
		Name:        name,
		Description: c.Description,
		Image:       c.Image,
	}, nil
}

// categoryRef is a product's category, sent either as a bare identifier or
// as a nested category object
type categoryRef struct {
	id     string
	nested *categoryLike
}

func (r *categoryRef) UnmarshalJSON(data []byte) error {
	var id flexString
	if err := json.Unmarshal(data, &id); err == nil {
		r.id = string(id)
		return nil
	}
	var nested categoryLike
	if err := json.Unmarshal(data, &nested); err != nil {
		return fmt.Errorf("category: %w", err)
	}
	r.id = nested.key()
	r.nested = &nested
	return nil
}

type productLike struct {
	ID          flexString      `json:"id"`
	Slug        string          `json:"slug"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Category    categoryRef     `json:"category"`
	Image       string          `json:"image"`
	Images      []string        `json:"images"`
	Tags        []string        `json:"tags"`
	Stock       int             `json:"stock"`
	Rating      float64         `json:"rating"`
	Featured    bool            `json:"featured"`
}

func (p productLike) toProduct() (models.Product, error) {
	id := string(p.ID)
	if id == "" {
		id = p.Slug
	}
	switch {
	case id == "":
		return models.Product{}, errors.New("product has neither id nor slug")
	case p.Name == "":
		return models.Product{}, fmt.Errorf("product %q has no name", id)
	case p.Category.id == "":
		return models.Product{}, fmt.Errorf("product %q has no category", id)
	}

	images := p.Images
	if len(images) == 0 && p.Image != "" {
		images = []string{p.Image}
	}
	if len(images) == 0 {
		images = []string{PlaceholderImage}
	}

	return models.Product{
		ID:          id,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Images:      images,
		Category:    p.Category.id,
		Tags:        p.Tags,
		Stock:       p.Stock,
		Rating:      p.Rating,
		Featured:    p.Featured,
	}, nil
}
