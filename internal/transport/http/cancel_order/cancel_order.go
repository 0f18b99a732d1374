package cancelorder

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/bwaremarkt/storefront/internal/service/models/order"
	"github.com/bwaremarkt/storefront/internal/service/services/ordersvc"
)

type service interface {
	Cancel(ctx context.Context, id string) (order.Order, error)
}

// Cancel moves an order into the Storniert state. This is the support
// action; the automatic lifecycle never cancels an order.
func Cancel(w http.ResponseWriter, r *http.Request, service service) {
	o, err := service.Cancel(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		switch {
		case errors.Is(err, ordersvc.ErrOrderNotFound):
			http.Error(w, err.Error(), http.StatusNotFound)
		case errors.Is(err, ordersvc.ErrOrderTerminal):
			http.Error(w, err.Error(), http.StatusConflict)
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
			slog.Error("Error cancelling order", "error", err)
		}

		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(o); err != nil {
		slog.Error("Error sending response for cancel", "error", err)
	}
}
