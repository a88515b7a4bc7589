package models

import (
	"github.com/shopspring/decimal"
)

// CartLine represents one line item of a cart as presented to clients
type CartLine struct {
	Product   *Product        `json:"product"`
	Quantity  int             `json:"quantity"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// CartSummary represents a session's cart with its derived prices
type CartSummary struct {
	Items     []CartLine      `json:"items"`
	ItemCount int             `json:"item_count"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	Shipping  decimal.Decimal `json:"shipping"`
	Total     decimal.Decimal `json:"total"`
}

// AddCartItemRequest is the body of POST /cart/items. Quantity defaults
// to 1 when omitted.
type AddCartItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  *int   `json:"quantity,omitempty"`
}

// UpdateCartItemRequest is the body of PUT /cart/items/{id}. A quantity
// below 1 removes the item.
type UpdateCartItemRequest struct {
	Quantity *int `json:"quantity" validate:"required"`
}

// WishlistItemRequest is the body of POST /wishlist/items
type WishlistItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
}
