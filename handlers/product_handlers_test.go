package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ecom-product/handlers"
	"ecom-product/middleware"
	"ecom-product/models"
	"ecom-product/router"
	"ecom-product/stores"
	"ecom-product/utils"
)

// envelope mirrors utils.Envelope with the payload left raw for per-test
// decoding.
type envelope struct {
	Success    bool            `json:"success"`
	StatusCode int             `json:"statusCode"`
	Message    string          `json:"message"`
	Data       json.RawMessage `json:"data"`
	Errors     []string        `json:"errors"`
}

func newTestServer() (*mux.Router, *stores.MemoryProductStore, *stores.MemoryCategoryStore) {
	products := stores.NewMemoryProductStore()
	categories := stores.NewMemoryCategoryStore()
	h := handlers.New(products, categories, nil, "test")
	norm := &middleware.ErrorNormalizer{Dev: false}
	return router.Setup(h, norm, "*"), products, categories
}

func doRequest(r http.Handler, method, path string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	var reader *bytes.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	_ = json.Unmarshal(w.Body.Bytes(), &env)
	return w, env
}

func seedProduct(t *testing.T, store *stores.MemoryProductStore) models.Product {
	t.Helper()
	product, err := store.Create(context.Background(), models.Product{
		Name:         "Milk",
		Price:        2.5,
		MaxPrice:     3.0,
		Stock:        10,
		CategoryName: "Dairy",
		CategoryID:   2,
		IsActive:     true,
	})
	require.NoError(t, err)
	return product
}

func TestCreateProduct(t *testing.T) {
	r, _, _ := newTestServer()

	w, env := doRequest(r, http.MethodPost, "/api/v1/products", map[string]interface{}{
		"name":          "Milk",
		"price":         2.5,
		"stock":         10,
		"category_name": "Dairy",
	})

	require.Equal(t, http.StatusCreated, w.Code)
	assert.True(t, env.Success)
	assert.Equal(t, http.StatusCreated, env.StatusCode)
	assert.Equal(t, "Product created successfully", env.Message)

	var product models.Product
	require.NoError(t, json.Unmarshal(env.Data, &product))
	assert.True(t, product.IsActive)
	assert.Equal(t, 10, product.Stock)
	assert.Equal(t, "Milk", product.Name)
	assert.False(t, product.ID.IsZero())
}

func TestCreateProduct_ValidationFailure(t *testing.T) {
	r, _, _ := newTestServer()

	w, env := doRequest(r, http.MethodPost, "/api/v1/products", map[string]interface{}{
		"price": 2.5,
	})

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, env.Success)
	assert.Contains(t, env.Errors, "name is required")
	assert.Contains(t, env.Errors, "category_name is required")
}

func TestCreateProduct_InvalidBody(t *testing.T) {
	r, _, _ := newTestServer()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/products", bytes.NewReader([]byte("{not json")))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid request body", env.Message)
}

func TestGetProductByID(t *testing.T) {
	r, products, _ := newTestServer()
	seeded := seedProduct(t, products)

	w, env := doRequest(r, http.MethodGet, "/api/v1/products/"+seeded.ID.Hex(), nil)

	require.Equal(t, http.StatusOK, w.Code)
	var product models.Product
	require.NoError(t, json.Unmarshal(env.Data, &product))
	assert.Equal(t, seeded.ID, product.ID)
	assert.Equal(t, "Milk", product.Name)
}

func TestGetProductByID_MalformedID(t *testing.T) {
	r, _, _ := newTestServer()

	w, env := doRequest(r, http.MethodGet, "/api/v1/products/not-an-id", nil)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, env.Success)
	assert.Equal(t, "Invalid ID format", env.Message)
}

func TestGetProductByID_NotFound(t *testing.T) {
	r, _, _ := newTestServer()

	w, env := doRequest(r, http.MethodGet, "/api/v1/products/64b0c1f2a3d4e5f60718293a", nil)

	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Product not found", env.Message)
}

func TestUpdateProduct_PartialPatch(t *testing.T) {
	r, products, _ := newTestServer()
	seeded := seedProduct(t, products)

	w, env := doRequest(r, http.MethodPut, "/api/v1/products/"+seeded.ID.Hex(), map[string]interface{}{
		"price": 3.5,
	})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Product updated successfully", env.Message)

	var product models.Product
	require.NoError(t, json.Unmarshal(env.Data, &product))
	assert.Equal(t, 3.5, product.Price)
	// Omitted fields stay untouched
	assert.Equal(t, "Milk", product.Name)
	assert.Equal(t, 10, product.Stock)
	assert.Equal(t, "Dairy", product.CategoryName)
}

func TestUpdateProduct_RejectsNegativePrice(t *testing.T) {
	r, products, _ := newTestServer()
	seeded := seedProduct(t, products)

	w, env := doRequest(r, http.MethodPut, "/api/v1/products/"+seeded.ID.Hex(), map[string]interface{}{
		"price": -3.5,
	})

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, env.Success)
}

func TestDeleteProduct(t *testing.T) {
	r, products, _ := newTestServer()
	seeded := seedProduct(t, products)

	w, env := doRequest(r, http.MethodDelete, "/api/v1/products/"+seeded.ID.Hex(), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Product deleted successfully", env.Message)

	w, _ = doRequest(r, http.MethodGet, "/api/v1/products/"+seeded.ID.Hex(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteProduct_NotFound(t *testing.T) {
	r, _, _ := newTestServer()

	w, env := doRequest(r, http.MethodDelete, "/api/v1/products/64b0c1f2a3d4e5f60718293a", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Product not found", env.Message)
}

func TestToggleProductStatus(t *testing.T) {
	r, products, _ := newTestServer()
	seeded := seedProduct(t, products)
	path := "/api/v1/products/" + seeded.ID.Hex() + "/status"

	w, env := doRequest(r, http.MethodPatch, path, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, env.Message, "deactivated")

	var product models.Product
	require.NoError(t, json.Unmarshal(env.Data, &product))
	assert.False(t, product.IsActive)

	// Toggling twice restores the original state
	w, env = doRequest(r, http.MethodPatch, path, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, env.Message, "activated")
	require.NoError(t, json.Unmarshal(env.Data, &product))
	assert.True(t, product.IsActive)
}

func TestGetProducts_Pagination(t *testing.T) {
	r, products, _ := newTestServer()
	for i := 0; i < 5; i++ {
		_, err := products.Create(context.Background(), models.Product{
			Name:         fmt.Sprintf("Product %d", i),
			CategoryName: "Dairy",
			IsActive:     true,
		})
		require.NoError(t, err)
	}

	w, env := doRequest(r, http.MethodGet, "/api/v1/products?page=2&limit=2", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var page struct {
		Products   []models.Product `json:"products"`
		Pagination utils.Pagination `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &page))
	assert.Len(t, page.Products, 2)
	assert.Equal(t, 2, page.Pagination.Page)
	assert.Equal(t, int64(5), page.Pagination.Total)
	assert.Equal(t, 3, page.Pagination.Pages)
}

func TestGetProducts_FilterPassThrough(t *testing.T) {
	r, products, _ := newTestServer()
	ctx := context.Background()

	_, err := products.Create(ctx, models.Product{Name: "Milk", CategoryName: "Dairy", IsActive: true})
	require.NoError(t, err)
	_, err = products.Create(ctx, models.Product{Name: "Bread", CategoryName: "Bakery", IsActive: true})
	require.NoError(t, err)

	_, env := doRequest(r, http.MethodGet, "/api/v1/products?category_name=Bakery", nil)

	var page struct {
		Products []models.Product `json:"products"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &page))
	require.Len(t, page.Products, 1)
	assert.Equal(t, "Bread", page.Products[0].Name)
}

func TestUnknownRoute(t *testing.T) {
	r, _, _ := newTestServer()

	w, env := doRequest(r, http.MethodGet, "/api/v1/nope", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.False(t, env.Success)
	assert.Equal(t, "Cannot GET /api/v1/nope", env.Message)
}
