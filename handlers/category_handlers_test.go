package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ecom-product/models"
	"ecom-product/stores"
	"ecom-product/utils"
)

func seedCategories(t *testing.T, store *stores.MemoryCategoryStore) {
	t.Helper()
	ctx := context.Background()
	for _, c := range []models.Category{
		{CategoryName: "snacks", CategoryID: 23, IsActive: true},
		{CategoryName: "fruits", CategoryID: 2, IsActive: true},
		{CategoryName: "beverages", CategoryID: 38, IsActive: false},
	} {
		_, err := store.Create(ctx, c)
		require.NoError(t, err)
	}
}

func TestGetCategories(t *testing.T) {
	r, _, categories := newTestServer()
	seedCategories(t, categories)

	w, env := doRequest(r, http.MethodGet, "/api/v1/categories?page=1&limit=2", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, env.Success)

	var page struct {
		Categories []models.Category `json:"categories"`
		Pagination utils.Pagination  `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &page))
	assert.Len(t, page.Categories, 2)
	assert.Equal(t, int64(3), page.Pagination.Total)
	assert.Equal(t, 2, page.Pagination.Pages)

	// Names come back title-cased
	assert.Equal(t, "Beverages", page.Categories[0].CategoryName)
}

func TestGetActiveCategories(t *testing.T) {
	r, _, categories := newTestServer()
	seedCategories(t, categories)

	w, env := doRequest(r, http.MethodGet, "/api/v1/categories/active", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var data struct {
		Categories []models.Category `json:"categories"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.Len(t, data.Categories, 2)
	// Sorted by name, inactive excluded
	assert.Equal(t, "Fruits", data.Categories[0].CategoryName)
	assert.Equal(t, "Snacks", data.Categories[1].CategoryName)
}

func TestSearchCategories(t *testing.T) {
	r, _, categories := newTestServer()
	seedCategories(t, categories)

	w, env := doRequest(r, http.MethodGet, "/api/v1/categories/search?q=snacks", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var data struct {
		Categories []models.Category `json:"categories"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.Len(t, data.Categories, 1)
	assert.Equal(t, "Snacks", data.Categories[0].CategoryName)
}

func TestSearchCategories_MissingQuery(t *testing.T) {
	r, _, _ := newTestServer()

	w, env := doRequest(r, http.MethodGet, "/api/v1/categories/search?q=", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, env.Success)
	assert.Equal(t, "Search query is required", env.Message)

	// Absent q behaves the same as empty q
	w, env = doRequest(r, http.MethodGet, "/api/v1/categories/search", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Search query is required", env.Message)
}
