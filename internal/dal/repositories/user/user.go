package userrepo

import (
	"context"

	"github.com/bwaremarkt/storefront/internal/dal/storage"
	"github.com/bwaremarkt/storefront/internal/service/models/user"
)

// UserRepository persists the singleton session record. Unlike the other
// collections this one stores a single object, not a sequence.
type UserRepository struct {
	store *storage.Store
}

// NewUserRepository creates a new user repository over the store.
func NewUserRepository(store *storage.Store) *UserRepository {
	return &UserRepository{store: store}
}

// Get returns the stored session record. found is false when no record is
// stored or the content is unreadable.
func (r *UserRepository) Get(ctx context.Context) (user.UserData, bool, error) {
	var u *user.UserData
	err := r.store.Read(storage.CollectionUser, &u)
	if u == nil {
		return user.UserData{}, false, err
	}

	return *u, true, err
}

// Set overwrites the session record wholesale.
func (r *UserRepository) Set(ctx context.Context, u user.UserData) error {
	return r.store.Write(storage.CollectionUser, u)
}

// Clear removes the session record wholesale.
func (r *UserRepository) Clear(ctx context.Context) error {
	return r.store.Delete(storage.CollectionUser)
}
