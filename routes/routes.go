// routes/routes.go
package routes

import (
	"net/http"

	"github.com/gorilla/mux"

	"go-storefront/controllers"
)

// Controllers groups the handlers served by the storefront
type Controllers struct {
	Products   *controllers.ProductController
	Categories *controllers.CategoryController
	Cart       *controllers.CartController
	Wishlist   *controllers.WishlistController
	Contact    *controllers.ContactController
}

// RegisterRoutes sets up all the routes for the application. sessionMiddleware
// guards the routes that read or change a visitor's cart and wishlist.
func RegisterRoutes(router *mux.Router, sessionMiddleware mux.MiddlewareFunc, c Controllers) {
	router.HandleFunc("/health", health).Methods("GET")

	// Catalog routes
	router.HandleFunc("/products", c.Products.GetProducts).Methods("GET")
	router.HandleFunc("/products/featured", c.Products.GetFeaturedProducts).Methods("GET")
	router.HandleFunc("/products/{id}", c.Products.GetProductByID).Methods("GET")
	router.HandleFunc("/products/{id}/related", c.Products.GetRelatedProducts).Methods("GET")
	router.HandleFunc("/categories", c.Categories.GetCategories).Methods("GET")
	router.HandleFunc("/categories/{id}", c.Categories.GetCategoryByID).Methods("GET")

	router.HandleFunc("/contact", c.Contact.SubmitContact).Methods("POST")

	// Session routes
	cart := router.PathPrefix("/cart").Subrouter()
	cart.Use(sessionMiddleware)
	cart.HandleFunc("", c.Cart.GetCart).Methods("GET")
	cart.HandleFunc("", c.Cart.ClearCart).Methods("DELETE")
	cart.HandleFunc("/items", c.Cart.AddToCart).Methods("POST")
	cart.HandleFunc("/items/{id}", c.Cart.UpdateCartItem).Methods("PUT")
	cart.HandleFunc("/items/{id}", c.Cart.RemoveFromCart).Methods("DELETE")

	wishlist := router.PathPrefix("/wishlist").Subrouter()
	wishlist.Use(sessionMiddleware)
	wishlist.HandleFunc("", c.Wishlist.GetWishlist).Methods("GET")
	wishlist.HandleFunc("/items", c.Wishlist.AddToWishlist).Methods("POST")
	wishlist.HandleFunc("/items/{id}", c.Wishlist.RemoveFromWishlist).Methods("DELETE")
}

func health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
