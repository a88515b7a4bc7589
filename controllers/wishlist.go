package controllers

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"go-storefront/cart"
	"go-storefront/catalog"
	"go-storefront/models"
	"go-storefront/utils"
)

// WishlistController handles wishlist-related requests
type WishlistController struct {
	Engine   *catalog.Engine
	Sessions *cart.Sessions
	Validate *validator.Validate
}

// NewWishlistController creates a new WishlistController
func NewWishlistController(engine *catalog.Engine, sessions *cart.Sessions, validate *validator.Validate) *WishlistController {
	return &WishlistController{
		Engine:   engine,
		Sessions: sessions,
		Validate: validate,
	}
}

// GetWishlist lists the saved products
func (wc *WishlistController) GetWishlist(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(w, r)
	if !ok {
		return
	}

	var items []*models.Product
	err := wc.Sessions.Do(id, func(s *cart.Session) error {
		items = s.Wishlist.Items()
		return nil
	})
	if err != nil {
		http.Error(w, "Error reading wishlist", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// AddToWishlist saves a product. Saving it twice is not an error.
func (wc *WishlistController) AddToWishlist(w http.ResponseWriter, r *http.Request) {
	var req models.WishlistItemRequest
	if err := decodeJSON(w, r, &req); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}
	if err := wc.Validate.Struct(req); err != nil {
		http.Error(w, utils.ValidationMessage(err), http.StatusBadRequest)
		return
	}

	product, err := wc.Engine.FindByID(req.ProductID)
	if err != nil {
		http.Error(w, "Product not found", http.StatusNotFound)
		return
	}

	id, ok := sessionID(w, r)
	if !ok {
		return
	}

	var added bool
	var items []*models.Product
	err = wc.Sessions.Do(id, func(s *cart.Session) error {
		var err error
		if added, err = s.Wishlist.Add(product); err != nil {
			return err
		}
		items = s.Wishlist.Items()
		return nil
	})
	if err != nil {
		http.Error(w, "Error updating wishlist", http.StatusInternalServerError)
		return
	}

	status := http.StatusOK
	if added {
		status = http.StatusCreated
	}
	writeJSON(w, status, items)
}

// RemoveFromWishlist drops a saved product
func (wc *WishlistController) RemoveFromWishlist(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(w, r)
	if !ok {
		return
	}

	productID := mux.Vars(r)["id"]
	var items []*models.Product
	err := wc.Sessions.Do(id, func(s *cart.Session) error {
		s.Wishlist.Remove(productID)
		items = s.Wishlist.Items()
		return nil
	})
	if err != nil {
		http.Error(w, "Error updating wishlist", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, items)
}
