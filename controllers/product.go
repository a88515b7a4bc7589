package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"go-storefront/catalog"
)

// ProductController handles product-related requests
type ProductController struct {
	Engine *catalog.Engine
}

// NewProductController creates a new ProductController
func NewProductController(engine *catalog.Engine) *ProductController {
	return &ProductController{Engine: engine}
}

// GetProducts searches the catalog with the filters in the query string
func (pc *ProductController) GetProducts(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	query := catalog.Query{
		Category: params.Get("category"),
		Search:   params.Get("search"),
		Ordering: params.Get("ordering"),
	}

	if raw := params.Get("featured"); raw != "" {
		featured, err := strconv.ParseBool(raw)
		if err != nil {
			http.Error(w, "Invalid featured flag", http.StatusBadRequest)
			return
		}
		query.Featured = &featured
	}

	var ok bool
	if query.Page, ok = positiveInt(params.Get("page")); !ok {
		http.Error(w, "Invalid page", http.StatusBadRequest)
		return
	}
	if query.PageSize, ok = positiveInt(params.Get("page_size")); !ok {
		http.Error(w, "Invalid page size", http.StatusBadRequest)
		return
	}

	page, err := pc.Engine.Search(query)
	if err != nil {
		if errors.Is(err, catalog.ErrInvalidOrdering) {
			http.Error(w, "Invalid ordering", http.StatusBadRequest)
			return
		}
		http.Error(w, "Error searching products", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, page)
}

// GetFeaturedProducts lists the products shown on the home page
func (pc *ProductController) GetFeaturedProducts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, pc.Engine.ListFeatured())
}

// GetProductByID retrieves a single product by ID
func (pc *ProductController) GetProductByID(w http.ResponseWriter, r *http.Request) {
	product, err := pc.Engine.FindByID(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Product not found", http.StatusNotFound)
		return
	}

	writeJSON(w, http.StatusOK, product)
}

// GetRelatedProducts lists products sharing a category or tag with the
// requested one
func (pc *ProductController) GetRelatedProducts(w http.ResponseWriter, r *http.Request) {
	limit, ok := positiveInt(r.URL.Query().Get("limit"))
	if !ok {
		http.Error(w, "Invalid limit", http.StatusBadRequest)
		return
	}
	if limit > catalog.MaxPageSize {
		limit = catalog.MaxPageSize
	}

	product, err := pc.Engine.FindByID(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Product not found", http.StatusNotFound)
		return
	}

	writeJSON(w, http.StatusOK, pc.Engine.ListRelated(product, limit))
}
