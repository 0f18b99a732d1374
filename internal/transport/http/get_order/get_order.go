package getorder

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/bwaremarkt/storefront/internal/service/models/order"
)

type service interface {
	GetByID(ctx context.Context, id string) (order.Order, bool)
	GetByOrderNumber(ctx context.Context, number string) (order.Order, bool)
}

// GetByID returns a single order by its opaque id.
func GetByID(w http.ResponseWriter, r *http.Request, service service) {
	o, found := service.GetByID(r.Context(), chi.URLParam(r, "id"))
	respond(w, o, found)
}

// GetByOrderNumber returns a single order by its human-facing number.
func GetByOrderNumber(w http.ResponseWriter, r *http.Request, service service) {
	o, found := service.GetByOrderNumber(r.Context(), chi.URLParam(r, "orderNumber"))
	respond(w, o, found)
}

func respond(w http.ResponseWriter, o order.Order, found bool) {
	if !found {
		http.Error(w, "order not found", http.StatusNotFound)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(o); err != nil {
		slog.Error("Error sending order response", "error", err)
	}
}
