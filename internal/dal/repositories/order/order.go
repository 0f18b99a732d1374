package orderrepo

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/bwaremarkt/storefront/internal/dal/storage"
	"github.com/bwaremarkt/storefront/internal/service/models/order"
)

// OrderRepository persists the order collection, newest first.
type OrderRepository struct {
	store *storage.Store
}

// NewOrderRepository creates a new order repository over the store.
func NewOrderRepository(store *storage.Store) *OrderRepository {
	return &OrderRepository{store: store}
}

// List returns all orders, newest first. Records that fail to decode are
// skipped so one malformed entry cannot poison the whole collection; the
// returned error reports read trouble for logging, alongside whatever could
// still be decoded.
func (r *OrderRepository) List(ctx context.Context) ([]order.Order, error) {
	var raw []json.RawMessage
	err := r.store.Read(storage.CollectionOrders, &raw)

	return storage.DecodeRecords[order.Order](raw), err
}

// SaveAll replaces the persisted collection with the given orders. A new
// order is prepended by the caller and lands in the same single write, so
// it is never partially persisted. Stored records that List could not
// decode are re-merged at the tail of the write: they are inert, but an
// order is never deleted in-product, unreadable or not.
func (r *OrderRepository) SaveAll(ctx context.Context, orders []order.Order) error {
	records := make([]json.RawMessage, 0, len(orders))
	for _, o := range orders {
		rec, err := json.Marshal(o)
		if err != nil {
			return fmt.Errorf("failed to serialize order %s: %w", o.ID, err)
		}
		records = append(records, rec)
	}

	var stored []json.RawMessage
	if err := r.store.Read(storage.CollectionOrders, &stored); err == nil {
		records = append(records, storage.UndecodedRecords[order.Order](stored)...)
	}

	return r.store.Write(storage.CollectionOrders, records)
}

// GetByID scans for an order by its opaque id.
func (r *OrderRepository) GetByID(ctx context.Context, id string) (order.Order, bool, error) {
	orders, err := r.List(ctx)
	for _, o := range orders {
		if o.ID == id {
			return o, true, err
		}
	}

	return order.Order{}, false, err
}

// GetByOrderNumber scans for an order by its human-facing number.
func (r *OrderRepository) GetByOrderNumber(ctx context.Context, number string) (order.Order, bool, error) {
	orders, err := r.List(ctx)
	for _, o := range orders {
		if o.OrderNumber == number {
			return o, true, err
		}
	}

	return order.Order{}, false, err
}
