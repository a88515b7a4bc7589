package controllers

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"go-storefront/cart"
	"go-storefront/catalog"
	"go-storefront/models"
	"go-storefront/utils"
)

// CartController handles cart-related requests
type CartController struct {
	Engine   *catalog.Engine
	Sessions *cart.Sessions
	Validate *validator.Validate
}

// NewCartController creates a new CartController
func NewCartController(engine *catalog.Engine, sessions *cart.Sessions, validate *validator.Validate) *CartController {
	return &CartController{
		Engine:   engine,
		Sessions: sessions,
		Validate: validate,
	}
}

// GetCart returns the session's cart with its totals
func (cc *CartController) GetCart(w http.ResponseWriter, r *http.Request) {
	cc.withCart(w, r, func(*cart.Ledger) error { return nil })
}

// AddToCart adds a product to the session's cart
func (cc *CartController) AddToCart(w http.ResponseWriter, r *http.Request) {
	var req models.AddCartItemRequest
	if err := decodeJSON(w, r, &req); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}
	if err := cc.Validate.Struct(req); err != nil {
		http.Error(w, utils.ValidationMessage(err), http.StatusBadRequest)
		return
	}

	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}

	product, err := cc.Engine.FindByID(req.ProductID)
	if err != nil {
		http.Error(w, "Product not found", http.StatusNotFound)
		return
	}

	cc.withCart(w, r, func(ledger *cart.Ledger) error {
		return ledger.Add(product, quantity)
	})
}

// UpdateCartItem sets the quantity of a cart line. Zero removes it.
func (cc *CartController) UpdateCartItem(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateCartItemRequest
	if err := decodeJSON(w, r, &req); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}
	if err := cc.Validate.Struct(req); err != nil {
		http.Error(w, utils.ValidationMessage(err), http.StatusBadRequest)
		return
	}

	productID := mux.Vars(r)["id"]
	cc.withCart(w, r, func(ledger *cart.Ledger) error {
		ledger.SetQuantity(productID, *req.Quantity)
		return nil
	})
}

// RemoveFromCart drops one product from the cart
func (cc *CartController) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	productID := mux.Vars(r)["id"]
	cc.withCart(w, r, func(ledger *cart.Ledger) error {
		ledger.Remove(productID)
		return nil
	})
}

// ClearCart empties the cart
func (cc *CartController) ClearCart(w http.ResponseWriter, r *http.Request) {
	cc.withCart(w, r, func(ledger *cart.Ledger) error {
		ledger.Clear()
		return nil
	})
}

// withCart applies fn to the session's ledger and answers with the
// resulting summary
func (cc *CartController) withCart(w http.ResponseWriter, r *http.Request, fn func(*cart.Ledger) error) {
	id, ok := sessionID(w, r)
	if !ok {
		return
	}

	var summary models.CartSummary
	err := cc.Sessions.Do(id, func(s *cart.Session) error {
		if err := fn(s.Cart); err != nil {
			return err
		}
		summary = s.Cart.Summary()
		return nil
	})
	if err != nil {
		if errors.Is(err, cart.ErrInvalidQuantity) {
			http.Error(w, "Quantity must be at least 1", http.StatusBadRequest)
			return
		}
		http.Error(w, "Error updating cart", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, summary)
}
