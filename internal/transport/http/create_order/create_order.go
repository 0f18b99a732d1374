package createorder

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/bwaremarkt/storefront/internal/service/models/order"
	"github.com/bwaremarkt/storefront/internal/service/services/ordersvc"
)

// service is an interface for the service layer.
type service interface {
	Checkout(ctx context.Context, form ordersvc.CheckoutForm) (order.Order, error)
}

// Checkout handles the order creation request. The request body carries the
// checkout form; the order items come from the current cart.
func Checkout(w http.ResponseWriter, r *http.Request, service service) {
	var form ordersvc.CheckoutForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error decoding request body for checkout", "error", err)

		return
	}

	o, err := service.Checkout(r.Context(), form)
	if err != nil {
		var vErr *ordersvc.ValidationError
		if errors.As(err, &vErr) {
			http.Error(w, vErr.Error(), http.StatusBadRequest)

			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		slog.Error("Error performing checkout", "error", err)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(o); err != nil {
		slog.Error("Error sending response for checkout", "error", err)
	}
}
