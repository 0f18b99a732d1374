package icartrepo

import (
	"context"

	"github.com/bwaremarkt/storefront/internal/service/models/cart"
)

// ICartRepository is an interface for the cart collection repository.
type ICartRepository interface {
	Items(ctx context.Context) ([]cart.Item, error)
	Save(ctx context.Context, items []cart.Item) error
	Clear(ctx context.Context) error
}
