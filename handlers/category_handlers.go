package handlers

import (
	"net/http"
	"time"

	"ecom-product/models"
	"ecom-product/utils"
)

// categoryPage is the list payload shape, cached as a unit.
type categoryPage struct {
	Categories []models.Category `json:"categories"`
	Pagination utils.Pagination  `json:"pagination"`
}

// GetCategories handles GET /api/v1/categories
func (h *Handler) GetCategories(w http.ResponseWriter, r *http.Request) error {
	query := parseListQuery(r)

	cacheKey := listCacheKey("categories", query)
	var page categoryPage
	if h.cacheGet(r, cacheKey, &page) {
		w.Header().Set("X-Cache", "HIT")
		utils.Send(w, http.StatusOK, page, "")
		return nil
	}
	w.Header().Set("X-Cache", "MISS")

	list, err := h.Categories.FindAll(r.Context(), query)
	if err != nil {
		return err
	}

	page = categoryPage{
		Categories: list.Rows,
		Pagination: utils.NewPagination(query.Page, query.Limit, list.Total),
	}
	h.cacheSet(r, cacheKey, page, 5*time.Minute)

	utils.Send(w, http.StatusOK, page, "")
	return nil
}

// GetActiveCategories handles GET /api/v1/categories/active
func (h *Handler) GetActiveCategories(w http.ResponseWriter, r *http.Request) error {
	categories, err := h.Categories.FindActive(r.Context())
	if err != nil {
		return err
	}

	utils.Send(w, http.StatusOK, map[string]interface{}{"categories": categories}, "")
	return nil
}

// SearchCategories handles GET /api/v1/categories/search?q=
func (h *Handler) SearchCategories(w http.ResponseWriter, r *http.Request) error {
	categories, err := h.Categories.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		return err
	}

	utils.Send(w, http.StatusOK, map[string]interface{}{"categories": categories}, "")
	return nil
}
