package listorders

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gorilla/schema"

	"github.com/bwaremarkt/storefront/internal/service/models/order"
)

type service interface {
	List(ctx context.Context, q order.Query) []order.Order
}

type listOrdersRequest struct {
	Status string `schema:"status,omitempty"`
	Limit  int    `schema:"limit,omitempty"`
}

func (q *listOrdersRequest) ToModel() order.Query {
	return order.Query{
		Status: q.Status,
		Limit:  q.Limit,
	}
}

// ListOrders returns the stored orders, newest first.
func ListOrders(w http.ResponseWriter, r *http.Request, service service) {
	decoder := schema.NewDecoder()
	query := &listOrdersRequest{}
	err := decoder.Decode(query, r.URL.Query())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error decoding request", "error", err)

		return
	}

	orders := service.List(r.Context(), query.ToModel())

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(orders); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		slog.Error("Error sending response", "error", err)
	}
}
