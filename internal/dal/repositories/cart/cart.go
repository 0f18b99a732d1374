package cartrepo

import (
	"context"

	"github.com/bwaremarkt/storefront/internal/dal/storage"
	"github.com/bwaremarkt/storefront/internal/service/models/cart"
)

// CartRepository persists the cart collection.
type CartRepository struct {
	store *storage.Store
}

// NewCartRepository creates a new cart repository over the store.
func NewCartRepository(store *storage.Store) *CartRepository {
	return &CartRepository{store: store}
}

// Items returns the current cart lines. Absent or unreadable content
// degrades to an empty cart.
func (r *CartRepository) Items(ctx context.Context) ([]cart.Item, error) {
	var items []cart.Item
	err := r.store.Read(storage.CollectionCart, &items)

	return items, err
}

// Save replaces the persisted cart with the given lines.
func (r *CartRepository) Save(ctx context.Context, items []cart.Item) error {
	return r.store.Write(storage.CollectionCart, items)
}

// Clear removes the cart collection wholesale.
func (r *CartRepository) Clear(ctx context.Context) error {
	return r.store.Delete(storage.CollectionCart)
}
