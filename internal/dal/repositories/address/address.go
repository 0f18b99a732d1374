package addressrepo

import (
	"context"

	"github.com/bwaremarkt/storefront/internal/dal/storage"
	"github.com/bwaremarkt/storefront/internal/service/models/address"
)

// AddressRepository persists the address book.
type AddressRepository struct {
	store *storage.Store
}

// NewAddressRepository creates a new address repository over the store.
func NewAddressRepository(store *storage.Store) *AddressRepository {
	return &AddressRepository{store: store}
}

// List returns all saved addresses.
func (r *AddressRepository) List(ctx context.Context) ([]address.Address, error) {
	var addresses []address.Address
	err := r.store.Read(storage.CollectionAddresses, &addresses)

	return addresses, err
}

// Save replaces the persisted address book with the given addresses.
func (r *AddressRepository) Save(ctx context.Context, addresses []address.Address) error {
	return r.store.Write(storage.CollectionAddresses, addresses)
}
