package iaddressrepo

import (
	"context"

	"github.com/bwaremarkt/storefront/internal/service/models/address"
)

// IAddressRepository is an interface for the address collection repository.
type IAddressRepository interface {
	List(ctx context.Context) ([]address.Address, error)
	Save(ctx context.Context, addresses []address.Address) error
}
