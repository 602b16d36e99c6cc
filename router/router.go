package router

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"ecom-product/handlers"
	"ecom-product/middleware"
	"ecom-product/utils"
)

// Setup registers every route under the /api/v1 base path. All handlers are
// wrapped by the error normalizer; they never format error responses
// themselves.
func Setup(h *handlers.Handler, norm *middleware.ErrorNormalizer, allowedOrigins string) *mux.Router {
	router := mux.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recover)
	router.Use(middleware.CORS(allowedOrigins))

	router.HandleFunc("/health", h.Health).Methods("GET")

	api := router.PathPrefix("/api/v1").Subrouter()

	// Product routes
	products := api.PathPrefix("/products").Subrouter()
	products.HandleFunc("", norm.Wrap(h.GetProducts)).Methods("GET")
	products.HandleFunc("", norm.Wrap(h.CreateProduct)).Methods("POST")
	products.HandleFunc("/{id}", norm.Wrap(h.GetProductByID)).Methods("GET")
	products.HandleFunc("/{id}", norm.Wrap(h.UpdateProduct)).Methods("PUT")
	products.HandleFunc("/{id}", norm.Wrap(h.DeleteProduct)).Methods("DELETE")
	products.HandleFunc("/{id}/status", norm.Wrap(h.ToggleProductStatus)).Methods("PATCH")

	// Category routes
	categories := api.PathPrefix("/categories").Subrouter()
	categories.HandleFunc("", norm.Wrap(h.GetCategories)).Methods("GET")
	categories.HandleFunc("/active", norm.Wrap(h.GetActiveCategories)).Methods("GET")
	categories.HandleFunc("/search", norm.Wrap(h.SearchCategories)).Methods("GET")

	router.NotFoundHandler = http.HandlerFunc(notFound)
	router.MethodNotAllowedHandler = http.HandlerFunc(notFound)

	return router
}

func notFound(w http.ResponseWriter, r *http.Request) {
	utils.Send(w, http.StatusNotFound, nil, fmt.Sprintf("Cannot %s %s", r.Method, r.URL.Path))
}
