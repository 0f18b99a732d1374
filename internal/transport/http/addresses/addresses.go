package addresses

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/bwaremarkt/storefront/internal/service/models/address"
	"github.com/bwaremarkt/storefront/internal/service/services/addresssvc"
)

var validate = validator.New()

type service interface {
	List(ctx context.Context) []address.Address
	Add(ctx context.Context, d address.Draft) address.Address
	Update(ctx context.Context, id string, d address.Draft) (address.Address, error)
	Remove(ctx context.Context, id string) error
	SetDefault(ctx context.Context, id string) error
}

// List returns the address book.
func List(w http.ResponseWriter, r *http.Request, service service) {
	writeJSON(w, service.List(r.Context()))
}

// Add stores a new address; identical content is deduplicated.
func Add(w http.ResponseWriter, r *http.Request, service service) {
	draft, ok := decodeDraft(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(service.Add(r.Context(), draft)); err != nil {
		slog.Error("Error sending address response", "error", err)
	}
}

// Update overwrites an existing address.
func Update(w http.ResponseWriter, r *http.Request, service service) {
	draft, ok := decodeDraft(w, r)
	if !ok {
		return
	}

	a, err := service.Update(r.Context(), chi.URLParam(r, "id"), draft)
	if err != nil {
		respondError(w, err)

		return
	}

	writeJSON(w, a)
}

// Remove deletes an address.
func Remove(w http.ResponseWriter, r *http.Request, service service) {
	if err := service.Remove(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondError(w, err)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// SetDefault makes an address the single default.
func SetDefault(w http.ResponseWriter, r *http.Request, service service) {
	if err := service.SetDefault(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondError(w, err)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func decodeDraft(w http.ResponseWriter, r *http.Request) (address.Draft, bool) {
	var draft address.Draft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error decoding address request", "error", err)

		return address.Draft{}, false
	}

	if err := validate.Struct(draft); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)

		return address.Draft{}, false
	}

	return draft, true
}

func respondError(w http.ResponseWriter, err error) {
	if errors.Is(err, addresssvc.ErrAddressNotFound) {
		http.Error(w, err.Error(), http.StatusNotFound)

		return
	}

	http.Error(w, err.Error(), http.StatusInternalServerError)
	slog.Error("Error handling address request", "error", err)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Error sending address response", "error", err)
	}
}
