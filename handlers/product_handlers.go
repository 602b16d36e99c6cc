package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"ecom-product/apperror"
	"ecom-product/cache"
	"ecom-product/models"
	"ecom-product/utils"
	"ecom-product/validators"
)

// productPage is the list payload shape, cached as a unit.
type productPage struct {
	Products   []models.Product `json:"products"`
	Pagination utils.Pagination `json:"pagination"`
}

// CreateProduct handles POST /api/v1/products
func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) error {
	var payload models.ProductPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		return apperror.New("Invalid request body", http.StatusBadRequest)
	}

	if err := validators.ValidateProduct(payload, false); err != nil {
		return err
	}

	product, err := h.Products.Create(r.Context(), payload.Product())
	if err != nil {
		return err
	}

	h.invalidateProductCache(r, "")
	utils.Send(w, http.StatusCreated, product, "Product created successfully")
	return nil
}

// GetProducts handles GET /api/v1/products
func (h *Handler) GetProducts(w http.ResponseWriter, r *http.Request) error {
	query := parseListQuery(r)

	cacheKey := listCacheKey("products", query)
	var page productPage
	if h.cacheGet(r, cacheKey, &page) {
		w.Header().Set("X-Cache", "HIT")
		utils.Send(w, http.StatusOK, page, "")
		return nil
	}
	w.Header().Set("X-Cache", "MISS")

	list, err := h.Products.FindAll(r.Context(), query)
	if err != nil {
		return err
	}

	page = productPage{
		Products:   list.Rows,
		Pagination: utils.NewPagination(query.Page, query.Limit, list.Total),
	}
	h.cacheSet(r, cacheKey, page, 5*time.Minute)

	utils.Send(w, http.StatusOK, page, "")
	return nil
}

// GetProductByID handles GET /api/v1/products/{id}
func (h *Handler) GetProductByID(w http.ResponseWriter, r *http.Request) error {
	productID := mux.Vars(r)["id"]

	cacheKey := fmt.Sprintf(cache.ProductDetailPattern, productID)
	var product models.Product
	if h.cacheGet(r, cacheKey, &product) {
		w.Header().Set("X-Cache", "HIT")
		utils.Send(w, http.StatusOK, product, "")
		return nil
	}
	w.Header().Set("X-Cache", "MISS")

	product, err := h.Products.FindByID(r.Context(), productID)
	if err != nil {
		return err
	}

	h.cacheSet(r, cacheKey, product, 30*time.Minute)
	utils.Send(w, http.StatusOK, product, "")
	return nil
}

// UpdateProduct handles PUT /api/v1/products/{id}
func (h *Handler) UpdateProduct(w http.ResponseWriter, r *http.Request) error {
	productID := mux.Vars(r)["id"]

	var payload models.ProductPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		return apperror.New("Invalid request body", http.StatusBadRequest)
	}

	if err := validators.ValidateProduct(payload, true); err != nil {
		return err
	}

	product, err := h.Products.Update(r.Context(), productID, payload.Document())
	if err != nil {
		return err
	}

	h.invalidateProductCache(r, productID)
	utils.Send(w, http.StatusOK, product, "Product updated successfully")
	return nil
}

// DeleteProduct handles DELETE /api/v1/products/{id}
func (h *Handler) DeleteProduct(w http.ResponseWriter, r *http.Request) error {
	productID := mux.Vars(r)["id"]

	if _, err := h.Products.Delete(r.Context(), productID); err != nil {
		return err
	}

	h.invalidateProductCache(r, productID)
	utils.Send(w, http.StatusOK, nil, "Product deleted successfully")
	return nil
}

// ToggleProductStatus handles PATCH /api/v1/products/{id}/status. It reads
// the current is_active value and writes its negation; concurrent toggles
// on the same product can lose an update.
func (h *Handler) ToggleProductStatus(w http.ResponseWriter, r *http.Request) error {
	productID := mux.Vars(r)["id"]

	product, err := h.Products.FindByID(r.Context(), productID)
	if err != nil {
		return err
	}

	updated, err := h.Products.Update(r.Context(), productID, map[string]interface{}{
		"is_active": !product.IsActive,
	})
	if err != nil {
		return err
	}

	h.invalidateProductCache(r, productID)

	message := "Product deactivated successfully"
	if updated.IsActive {
		message = "Product activated successfully"
	}
	utils.Send(w, http.StatusOK, updated, message)
	return nil
}

// invalidateProductCache drops the detail entry for id (when given) and
// every product list entry.
func (h *Handler) invalidateProductCache(r *http.Request, id string) {
	if h.Cache == nil {
		return
	}
	if id != "" {
		key := fmt.Sprintf(cache.ProductDetailPattern, id)
		if err := h.Cache.Delete(r.Context(), key); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("failed to invalidate product detail cache")
		}
	}
	if err := h.Cache.DeleteByPattern(r.Context(), cache.ProductListPattern); err != nil {
		log.Warn().Err(err).Msg("failed to invalidate product list cache")
	}
}
