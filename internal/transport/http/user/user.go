package user

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/bwaremarkt/storefront/internal/service/models/user"
)

type service interface {
	Get(ctx context.Context) (user.UserData, bool)
	Set(ctx context.Context, u user.UserData)
	Clear(ctx context.Context)
}

// Get returns the current session record.
func Get(w http.ResponseWriter, r *http.Request, service service) {
	u, found := service.Get(r.Context())
	if !found {
		http.Error(w, "no session", http.StatusNotFound)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(u); err != nil {
		slog.Error("Error sending session response", "error", err)
	}
}

// Set overwrites the session record wholesale (login, registration,
// profile update).
func Set(w http.ResponseWriter, r *http.Request, service service) {
	var u user.UserData
	if err := json.NewDecoder(r.Body).Decode(&u); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error decoding session request", "error", err)

		return
	}

	service.Set(r.Context(), u)

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(u); err != nil {
		slog.Error("Error sending session response", "error", err)
	}
}

// Clear removes the session record (logout).
func Clear(w http.ResponseWriter, r *http.Request, service service) {
	service.Clear(r.Context())
	w.WriteHeader(http.StatusNoContent)
}
