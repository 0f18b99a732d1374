package cart

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/bwaremarkt/storefront/internal/service/models/cart"
	"github.com/bwaremarkt/storefront/internal/service/models/product"
)

type service interface {
	Items(ctx context.Context) []cart.Item
	ItemCount(ctx context.Context) int
	AddToCart(ctx context.Context, productID string, quantity int)
	UpdateQuantity(ctx context.Context, productID string, quantity int)
	RemoveFromCart(ctx context.Context, productID string)
	Clear(ctx context.Context)
}

type catalog interface {
	ProductByID(id string) (product.Product, bool)
}

// line is a cart item joined with its live catalog entry. The product may
// be nil when it has left the catalog; the line itself stays.
type line struct {
	cart.Item
	Product *product.Product `json:"product,omitempty"`
}

type cartResponse struct {
	Items []line `json:"items"`
	Count int    `json:"count"`
}

// Get returns the cart with live catalog data joined per line.
func Get(w http.ResponseWriter, r *http.Request, service service, catalog catalog) {
	items := service.Items(r.Context())
	lines := make([]line, 0, len(items))
	for _, item := range items {
		l := line{Item: item}
		if p, ok := catalog.ProductByID(item.ProductID); ok {
			l.Product = &p
		}
		lines = append(lines, l)
	}

	writeJSON(w, cartResponse{
		Items: lines,
		Count: service.ItemCount(r.Context()),
	})
}

type addItemRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// AddItem adds a product to the cart, incrementing an existing line.
func AddItem(w http.ResponseWriter, r *http.Request, service service) {
	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error decoding add-to-cart request", "error", err)

		return
	}
	if req.ProductID == "" {
		http.Error(w, "productId is required", http.StatusBadRequest)

		return
	}

	service.AddToCart(r.Context(), req.ProductID, req.Quantity)
	writeJSON(w, map[string]int{"count": service.ItemCount(r.Context())})
}

type updateItemRequest struct {
	Quantity int `json:"quantity"`
}

// UpdateItem sets a line's quantity; zero removes the line.
func UpdateItem(w http.ResponseWriter, r *http.Request, service service) {
	var req updateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error decoding cart update request", "error", err)

		return
	}

	service.UpdateQuantity(r.Context(), chi.URLParam(r, "productID"), req.Quantity)
	writeJSON(w, map[string]int{"count": service.ItemCount(r.Context())})
}

// RemoveItem removes a product's line from the cart.
func RemoveItem(w http.ResponseWriter, r *http.Request, service service) {
	service.RemoveFromCart(r.Context(), chi.URLParam(r, "productID"))
	writeJSON(w, map[string]int{"count": service.ItemCount(r.Context())})
}

// Clear empties the cart.
func Clear(w http.ResponseWriter, r *http.Request, service service) {
	service.Clear(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Error sending cart response", "error", err)
	}
}
