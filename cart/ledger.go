package cart

import (
	"errors"
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"go-storefront/models"
)

var (
	// ErrInvalidQuantity is returned by Add for a quantity below one
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
	// ErrNilProduct is returned by Add when no product is given
	ErrNilProduct = errors.New("product is required")
)

// DefaultFlatRate is the shipping charge used when none is configured
var DefaultFlatRate = decimal.RequireFromString("4.99")

// Pricing holds the pricing configuration of a ledger
type Pricing struct {
	// FlatRate is charged on every cart, including an empty one
	FlatRate decimal.Decimal
}

// DefaultPricing returns the pricing with DefaultFlatRate shipping
func DefaultPricing() Pricing {
	return Pricing{FlatRate: DefaultFlatRate}
}

// Entry is one line of a ledger. Product points at the catalog record, so
// price changes in the catalog show up in the cart.
type Entry struct {
	Product  *models.Product
	Quantity int
}

// LineTotal returns price times quantity
func (e Entry) LineTotal() decimal.Decimal {
	return e.Product.Price.Mul(decimal.NewFromInt(int64(e.Quantity)))
}

// Ledger holds the products and quantities selected in one session, in the
// order they were first added. A Ledger is not safe for concurrent use.
type Ledger struct {
	pricing Pricing
	order   []string
	entries map[string]*Entry
}

// NewLedger creates an empty ledger
func NewLedger(pricing Pricing) *Ledger {
	return &Ledger{
		pricing: pricing,
		entries: make(map[string]*Entry),
	}
}

// Add puts quantity units of product in the ledger, incrementing the entry
// if the product is already present. A quantity below one, or one that would
// push the entry past math.MaxInt, is rejected with ErrInvalidQuantity and
// leaves the ledger unchanged.
func (l *Ledger) Add(product *models.Product, quantity int) error {
	if product == nil {
		return ErrNilProduct
	}
	if quantity < 1 {
		return fmt.Errorf("add %d of product %q: %w", quantity, product.ID, ErrInvalidQuantity)
	}

	if e, ok := l.entries[product.ID]; ok {
		if quantity > math.MaxInt-e.Quantity {
			return fmt.Errorf("add %d of product %q holding %d: %w", quantity, product.ID, e.Quantity, ErrInvalidQuantity)
		}
		e.Quantity += quantity
		return nil
	}
	l.entries[product.ID] = &Entry{Product: product, Quantity: quantity}
	l.order = append(l.order, product.ID)
	return nil
}

// SetQuantity sets the quantity of an existing entry. A quantity below one
// removes the entry. Unknown ids are ignored.
func (l *Ledger) SetQuantity(productID string, quantity int) {
	e, ok := l.entries[productID]
	if !ok {
		return
	}
	if quantity < 1 {
		l.Remove(productID)
		return
	}
	e.Quantity = quantity
}

// Remove deletes the entry for productID if there is one
func (l *Ledger) Remove(productID string) {
	if _, ok := l.entries[productID]; !ok {
		return
	}
	delete(l.entries, productID)
	for i, id := range l.order {
		if id == productID {
			l.order = append(l.order[:i], l.order[i+1:]...)
			break
		}
	}
}

// Clear empties the ledger
func (l *Ledger) Clear() {
	l.order = nil
	l.entries = make(map[string]*Entry)
}

// Entries returns a copy of the entries in insertion order
func (l *Ledger) Entries() []Entry {
	out := make([]Entry, 0, len(l.order))
	for _, id := range l.order {
		out = append(out, *l.entries[id])
	}
	return out
}

// Len returns the number of distinct products in the ledger
func (l *Ledger) Len() int {
	return len(l.order)
}

// Quantity returns the quantity held for productID, zero when absent
func (l *Ledger) Quantity(productID string) int {
	if e, ok := l.entries[productID]; ok {
		return e.Quantity
	}
	return 0
}

// ItemCount returns the total number of units across all entries
func (l *Ledger) ItemCount() int {
	n := 0
	for _, e := range l.entries {
		n += e.Quantity
	}
	return n
}

// Subtotal returns the sum of price times quantity over all entries
func (l *Ledger) Subtotal() decimal.Decimal {
	sum := decimal.Zero
	for _, e := range l.entries {
		sum = sum.Add(e.LineTotal())
	}
	return sum
}

// Shipping returns the flat shipping rate. The rate is charged whether or
// not the cart holds anything.
func (l *Ledger) Shipping() decimal.Decimal {
	return l.pricing.FlatRate
}

// Total returns Subtotal plus Shipping
func (l *Ledger) Total() decimal.Decimal {
	return l.Subtotal().Add(l.Shipping())
}

// Summary returns the ledger's contents and prices for presentation
func (l *Ledger) Summary() models.CartSummary {
	items := make([]models.CartLine, 0, len(l.order))
	for _, e := range l.Entries() {
		items = append(items, models.CartLine{
			Product:   e.Product,
			Quantity:  e.Quantity,
			LineTotal: e.LineTotal(),
		})
	}
	return models.CartSummary{
		Items:     items,
		ItemCount: l.ItemCount(),
		Subtotal:  l.Subtotal(),
		Shipping:  l.Shipping(),
		Total:     l.Total(),
	}
}
