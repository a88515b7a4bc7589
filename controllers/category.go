package controllers

import (
	"net/http"

	"github.com/gorilla/mux"

	"go-storefront/catalog"
	"go-storefront/models"
)

// CategoryController handles category-related requests
type CategoryController struct {
	Engine *catalog.Engine
}

// NewCategoryController creates a new CategoryController
func NewCategoryController(engine *catalog.Engine) *CategoryController {
	return &CategoryController{Engine: engine}
}

// GetCategories lists every category
func (cc *CategoryController) GetCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, cc.Engine.ListCategories())
}

// GetCategoryByID returns a category with its products
func (cc *CategoryController) GetCategoryByID(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	category, err := cc.Engine.FindCategory(id)
	if err != nil {
		http.Error(w, "Category not found", http.StatusNotFound)
		return
	}

	writeJSON(w, http.StatusOK, models.CategoryDetail{
		Category: category,
		Products: cc.Engine.ListByCategory(id),
	})
}
