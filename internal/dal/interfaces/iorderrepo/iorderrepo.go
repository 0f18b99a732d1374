package iorderrepo

import (
	"context"

	"github.com/bwaremarkt/storefront/internal/service/models/order"
)

// IOrderRepository is an interface for the order collection repository.
type IOrderRepository interface {
	List(ctx context.Context) ([]order.Order, error)
	SaveAll(ctx context.Context, orders []order.Order) error
	GetByID(ctx context.Context, id string) (order.Order, bool, error)
	GetByOrderNumber(ctx context.Context, number string) (order.Order, bool, error)
}
