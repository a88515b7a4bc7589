package controllers

import (
	"context"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-storefront/cart"
	"go-storefront/catalog"
	"go-storefront/middleware"
	"go-storefront/models"
	"go-storefront/utils"
)

func newTestEngine(t *testing.T) *catalog.Engine {
	t.Helper()
	store, err := catalog.Load(context.Background(), catalog.StaticSource{})
	require.NoError(t, err)
	return catalog.NewEngine(store)
}

func newRequest(method, target, body string, vars map[string]string) *http.Request {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	if vars != nil {
		req = mux.SetURLVars(req, vars)
	}
	return req
}

func withSession(req *http.Request, id string) *http.Request {
	return req.WithContext(middleware.WithSessionID(req.Context(), id))
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v))
}

func productIDs(products []*models.Product) []string {
	ids := make([]string, 0, len(products))
	for _, p := range products {
		ids = append(ids, p.ID)
	}
	return ids
}

func TestGetProducts(t *testing.T) {
	pc := NewProductController(newTestEngine(t))

	tests := []struct {
		name   string
		query  string
		status int
		count  int
		ids    []string
	}{
		{"all", "", http.StatusOK, 8, []string{"1", "2", "3", "4", "5", "6", "7", "8"}},
		{"by category", "?category=clothing", http.StatusOK, 3, []string{"2", "4", "7"}},
		{"ordered by price", "?category=figures&ordering=-price", http.StatusOK, 2, []string{"6", "1"}},
		{"featured", "?featured=true&ordering=name", http.StatusOK, 3, nil},
		{"paged", "?page=2&page_size=3", http.StatusOK, 8, []string{"4", "5", "6"}},
		{"unknown category", "?category=nope", http.StatusOK, 0, []string{}},
		{"bad ordering", "?ordering=stock", http.StatusBadRequest, 0, nil},
		{"bad page", "?page=0", http.StatusBadRequest, 0, nil},
		{"bad page size", "?page_size=abc", http.StatusBadRequest, 0, nil},
		{"bad featured", "?featured=maybe", http.StatusBadRequest, 0, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			pc.GetProducts(rec, newRequest(http.MethodGet, "/products"+tt.query, "", nil))
			require.Equal(t, tt.status, rec.Code)
			if tt.status != http.StatusOK {
				return
			}

			var page models.ProductPage
			decode(t, rec, &page)
			assert.Equal(t, tt.count, page.Count)
			if tt.ids != nil {
				assert.Equal(t, tt.ids, productIDs(page.Results))
			}
		})
	}
}

func TestGetFeaturedProducts(t *testing.T) {
	pc := NewProductController(newTestEngine(t))

	rec := httptest.NewRecorder()
	pc.GetFeaturedProducts(rec, newRequest(http.MethodGet, "/products/featured", "", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var products []*models.Product
	decode(t, rec, &products)
	assert.Equal(t, []string{"1", "3", "6"}, productIDs(products))
}

func TestGetProductByID(t *testing.T) {
	pc := NewProductController(newTestEngine(t))

	rec := httptest.NewRecorder()
	pc.GetProductByID(rec, newRequest(http.MethodGet, "/products/3", "", map[string]string{"id": "3"}))
	require.Equal(t, http.StatusOK, rec.Code)

	var product models.Product
	decode(t, rec, &product)
	assert.Equal(t, "3", product.ID)
	assert.Equal(t, "185.99", product.Price.String())

	rec = httptest.NewRecorder()
	pc.GetProductByID(rec, newRequest(http.MethodGet, "/products/99", "", map[string]string{"id": "99"}))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetRelatedProducts(t *testing.T) {
	pc := NewProductController(newTestEngine(t))

	tests := []struct {
		id     string
		query  string
		status int
		ids    []string
	}{
		{"1", "", http.StatusOK, []string{"6"}},
		{"2", "", http.StatusOK, []string{"4", "7"}},
		{"2", "?limit=1", http.StatusOK, []string{"4"}},
		{"3", "", http.StatusOK, []string{}},
		{"2", "?limit=-1", http.StatusBadRequest, nil},
		{"99", "", http.StatusNotFound, nil},
	}

	for _, tt := range tests {
		t.Run(tt.id+tt.query, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := newRequest(http.MethodGet, "/products/"+tt.id+"/related"+tt.query, "", map[string]string{"id": tt.id})
			pc.GetRelatedProducts(rec, req)
			require.Equal(t, tt.status, rec.Code)
			if tt.status != http.StatusOK {
				return
			}

			var products []*models.Product
			decode(t, rec, &products)
			assert.Equal(t, tt.ids, productIDs(products))
		})
	}
}

func TestCategories(t *testing.T) {
	cc := NewCategoryController(newTestEngine(t))

	rec := httptest.NewRecorder()
	cc.GetCategories(rec, newRequest(http.MethodGet, "/categories", "", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var categories []models.Category
	decode(t, rec, &categories)
	assert.Len(t, categories, 5)

	rec = httptest.NewRecorder()
	cc.GetCategoryByID(rec, newRequest(http.MethodGet, "/categories/figures", "", map[string]string{"id": "figures"}))
	require.Equal(t, http.StatusOK, rec.Code)
	var detail models.CategoryDetail
	decode(t, rec, &detail)
	assert.Equal(t, "figures", detail.Category.ID)
	assert.Equal(t, []string{"1", "6"}, productIDs(detail.Products))

	rec = httptest.NewRecorder()
	cc.GetCategoryByID(rec, newRequest(http.MethodGet, "/categories/nope", "", map[string]string{"id": "nope"}))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func newTestCartController(t *testing.T) *CartController {
	t.Helper()
	sessions := cart.NewSessions(cart.DefaultPricing(), 0, zerolog.Nop())
	return NewCartController(newTestEngine(t), sessions, utils.NewValidator())
}

func TestCartFlow(t *testing.T) {
	cc := newTestCartController(t)

	rec := httptest.NewRecorder()
	cc.GetCart(rec, withSession(newRequest(http.MethodGet, "/cart", "", nil), "s1"))
	require.Equal(t, http.StatusOK, rec.Code)
	var summary models.CartSummary
	decode(t, rec, &summary)
	assert.Empty(t, summary.Items)
	assert.Equal(t, "4.99", summary.Total.String())

	rec = httptest.NewRecorder()
	cc.AddToCart(rec, withSession(newRequest(http.MethodPost, "/cart/items", `{"product_id":"1","quantity":2}`, nil), "s1"))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	cc.AddToCart(rec, withSession(newRequest(http.MethodPost, "/cart/items", `{"product_id":"4"}`, nil), "s1"))
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &summary)
	require.Len(t, summary.Items, 2)
	assert.Equal(t, 3, summary.ItemCount)
	assert.Equal(t, "144.97", summary.Subtotal.String())
	assert.Equal(t, "149.96", summary.Total.String())

	rec = httptest.NewRecorder()
	cc.UpdateCartItem(rec, withSession(newRequest(http.MethodPut, "/cart/items/1", `{"quantity":1}`, map[string]string{"id": "1"}), "s1"))
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &summary)
	assert.Equal(t, "84.98", summary.Subtotal.String())

	rec = httptest.NewRecorder()
	cc.RemoveFromCart(rec, withSession(newRequest(http.MethodDelete, "/cart/items/4", "", map[string]string{"id": "4"}), "s1"))
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &summary)
	require.Len(t, summary.Items, 1)
	assert.Equal(t, "1", summary.Items[0].Product.ID)

	// other sessions are unaffected
	rec = httptest.NewRecorder()
	cc.GetCart(rec, withSession(newRequest(http.MethodGet, "/cart", "", nil), "s2"))
	decode(t, rec, &summary)
	assert.Empty(t, summary.Items)

	rec = httptest.NewRecorder()
	cc.ClearCart(rec, withSession(newRequest(http.MethodDelete, "/cart", "", nil), "s1"))
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &summary)
	assert.Empty(t, summary.Items)
	assert.Equal(t, "0", summary.Subtotal.String())
}

func TestAddToCartRejectsBadRequests(t *testing.T) {
	cc := newTestCartController(t)

	tests := []struct {
		name   string
		body   string
		status int
	}{
		{"malformed body", `{"product_id":`, http.StatusBadRequest},
		{"missing product", `{"quantity":1}`, http.StatusBadRequest},
		{"unknown product", `{"product_id":"99","quantity":1}`, http.StatusNotFound},
		{"zero quantity", `{"product_id":"1","quantity":0}`, http.StatusBadRequest},
		{"negative quantity", `{"product_id":"1","quantity":-2}`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			cc.AddToCart(rec, withSession(newRequest(http.MethodPost, "/cart/items", tt.body, nil), "s1"))
			assert.Equal(t, tt.status, rec.Code)
		})
	}

	var entries int
	cc.Sessions.Do("s1", func(s *cart.Session) error {
		entries = s.Cart.Len()
		return nil
	})
	assert.Zero(t, entries)
}

func TestAddToCartRejectsQuantityOverflow(t *testing.T) {
	cc := newTestCartController(t)
	huge := strconv.Itoa(math.MaxInt)

	rec := httptest.NewRecorder()
	cc.AddToCart(rec, withSession(newRequest(http.MethodPost, "/cart/items", `{"product_id":"1","quantity":`+huge+`}`, nil), "s1"))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	cc.AddToCart(rec, withSession(newRequest(http.MethodPost, "/cart/items", `{"product_id":"1","quantity":1}`, nil), "s1"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	cc.GetCart(rec, withSession(newRequest(http.MethodGet, "/cart", "", nil), "s1"))
	var summary models.CartSummary
	decode(t, rec, &summary)
	require.Len(t, summary.Items, 1)
	assert.Equal(t, math.MaxInt, summary.Items[0].Quantity)
	assert.True(t, summary.Subtotal.IsPositive())
}

func TestUpdateCartItemRequiresQuantity(t *testing.T) {
	cc := newTestCartController(t)

	rec := httptest.NewRecorder()
	cc.UpdateCartItem(rec, withSession(newRequest(http.MethodPut, "/cart/items/1", `{}`, map[string]string{"id": "1"}), "s1"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCartRequiresSession(t *testing.T) {
	cc := newTestCartController(t)

	rec := httptest.NewRecorder()
	cc.GetCart(rec, newRequest(http.MethodGet, "/cart", "", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestWishlistFlow(t *testing.T) {
	sessions := cart.NewSessions(cart.DefaultPricing(), 0, zerolog.Nop())
	wc := NewWishlistController(newTestEngine(t), sessions, utils.NewValidator())

	rec := httptest.NewRecorder()
	wc.AddToWishlist(rec, withSession(newRequest(http.MethodPost, "/wishlist/items", `{"product_id":"5"}`, nil), "s1"))
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = httptest.NewRecorder()
	wc.AddToWishlist(rec, withSession(newRequest(http.MethodPost, "/wishlist/items", `{"product_id":"5"}`, nil), "s1"))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	wc.AddToWishlist(rec, withSession(newRequest(http.MethodPost, "/wishlist/items", `{"product_id":"2"}`, nil), "s1"))
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = httptest.NewRecorder()
	wc.AddToWishlist(rec, withSession(newRequest(http.MethodPost, "/wishlist/items", `{"product_id":"99"}`, nil), "s1"))
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	wc.GetWishlist(rec, withSession(newRequest(http.MethodGet, "/wishlist", "", nil), "s1"))
	require.Equal(t, http.StatusOK, rec.Code)
	var items []*models.Product
	decode(t, rec, &items)
	assert.Equal(t, []string{"5", "2"}, productIDs(items))

	rec = httptest.NewRecorder()
	wc.RemoveFromWishlist(rec, withSession(newRequest(http.MethodDelete, "/wishlist/items/5", "", map[string]string{"id": "5"}), "s1"))
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &items)
	assert.Equal(t, []string{"2"}, productIDs(items))
}

type fakeSender struct {
	sent []utils.Email
	err  error
}

func (f *fakeSender) Send(_ context.Context, email utils.Email) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, email)
	return nil
}

func TestSubmitContact(t *testing.T) {
	sender := &fakeSender{}
	es := utils.NewEmailServiceWithSender(sender, "shop@example.com", "inbox@example.com")
	cc := NewContactController(es, utils.NewValidator(), zerolog.Nop())

	rec := httptest.NewRecorder()
	body := `{"name":"Ann","email":"ann@example.com","subject":"Hi","message":"Do you ship abroad?"}`
	cc.SubmitContact(rec, newRequest(http.MethodPost, "/contact", body, nil))
	require.Equal(t, http.StatusAccepted, rec.Code)
	require.Len(t, sender.sent, 1)
	assert.Equal(t, "inbox@example.com", sender.sent[0].To)
	assert.Equal(t, "Contact form: Hi", sender.sent[0].Subject)

	rec = httptest.NewRecorder()
	cc.SubmitContact(rec, newRequest(http.MethodPost, "/contact", `{"name":"Ann","email":"not-an-email","message":"x"}`, nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "email failed email")
	assert.Len(t, sender.sent, 1)
}

func TestSubmitContactSenderFailure(t *testing.T) {
	sender := &fakeSender{err: assert.AnError}
	es := utils.NewEmailServiceWithSender(sender, "shop@example.com", "inbox@example.com")
	cc := NewContactController(es, utils.NewValidator(), zerolog.Nop())

	rec := httptest.NewRecorder()
	cc.SubmitContact(rec, newRequest(http.MethodPost, "/contact", `{"name":"Ann","email":"ann@example.com","message":"Hello"}`, nil))
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}
