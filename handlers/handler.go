package handlers

import (
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"ecom-product/cache"
	"ecom-product/stores"
)

var startTime = time.Now()

// Handler holds the dependencies every route handler uses. Stores are
// injected as interfaces so tests can run against the in-memory
// implementations; Cache is optional and skipped when nil.
type Handler struct {
	Products   stores.ProductStore
	Categories stores.CategoryStore
	Cache      *cache.Cache
	Env        string
}

func New(products stores.ProductStore, categories stores.CategoryStore, c *cache.Cache, env string) *Handler {
	return &Handler{
		Products:   products,
		Categories: categories,
		Cache:      c,
		Env:        env,
	}
}

// parseListQuery extracts page and limit (defaulting to 1 and 10) and
// collects every remaining query parameter as a pass-through equality
// filter.
func parseListQuery(r *http.Request) stores.ListQuery {
	query := stores.ListQuery{Page: 1, Limit: 10, Filters: map[string]string{}}

	for key, values := range r.URL.Query() {
		if len(values) == 0 {
			continue
		}
		switch key {
		case "page":
			if page, err := strconv.Atoi(values[0]); err == nil && page > 0 {
				query.Page = page
			}
		case "limit":
			if limit, err := strconv.Atoi(values[0]); err == nil && limit > 0 {
				query.Limit = limit
			}
		default:
			query.Filters[key] = values[0]
		}
	}
	return query
}

// listCacheKey builds a deterministic cache key for a list query.
func listCacheKey(prefix string, query stores.ListQuery) string {
	parts := make([]string, 0, len(query.Filters))
	for key, value := range query.Filters {
		parts = append(parts, key+"="+value)
	}
	sort.Strings(parts)
	return prefix + ":p" + strconv.Itoa(query.Page) +
		":l" + strconv.Itoa(query.Limit) +
		":" + strings.Join(parts, ":")
}

func (h *Handler) cacheGet(r *http.Request, key string, dest interface{}) bool {
	if h.Cache == nil {
		return false
	}
	return h.Cache.Get(r.Context(), key, dest) == nil
}

func (h *Handler) cacheSet(r *http.Request, key string, data interface{}, ttl time.Duration) {
	if h.Cache == nil {
		return
	}
	if err := h.Cache.Set(r.Context(), key, data, ttl); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("failed to cache response")
	}
}
