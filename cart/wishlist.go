package cart

import "go-storefront/models"

// Wishlist is an ordered set of products saved for later
type Wishlist struct {
	items []*models.Product
}

// NewWishlist creates an empty wishlist
func NewWishlist() *Wishlist {
	return &Wishlist{}
}

// Add saves product, reporting false if it was already saved
func (w *Wishlist) Add(product *models.Product) (bool, error) {
	if product == nil {
		return false, ErrNilProduct
	}
	if w.Contains(product.ID) {
		return false, nil
	}
	w.items = append(w.items, product)
	return true, nil
}

// Remove drops the product with the given id if present
func (w *Wishlist) Remove(productID string) {
	for i, p := range w.items {
		if p.ID == productID {
			w.items = append(w.items[:i], w.items[i+1:]...)
			return
		}
	}
}

// Contains reports whether the product is saved
func (w *Wishlist) Contains(productID string) bool {
	for _, p := range w.items {
		if p.ID == productID {
			return true
		}
	}
	return false
}

// Items returns the saved products in the order they were added
func (w *Wishlist) Items() []*models.Product {
	out := make([]*models.Product, len(w.items))
	copy(out, w.items)
	return out
}

// Len returns the number of saved products
func (w *Wishlist) Len() int {
	return len(w.items)
}
