package products

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/bwaremarkt/storefront/internal/service/models/product"
)

type catalog interface {
	ProductByID(id string) (product.Product, bool)
	List() []product.Product
}

// List returns the full catalog.
func List(w http.ResponseWriter, r *http.Request, catalog catalog) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(catalog.List()); err != nil {
		slog.Error("Error sending catalog response", "error", err)
	}
}

// Get returns a single product.
func Get(w http.ResponseWriter, r *http.Request, catalog catalog) {
	p, ok := catalog.ProductByID(chi.URLParam(r, "id"))
	if !ok {
		http.Error(w, "product not found", http.StatusNotFound)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(p); err != nil {
		slog.Error("Error sending product response", "error", err)
	}
}
