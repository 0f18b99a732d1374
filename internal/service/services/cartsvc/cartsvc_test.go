package cartsvc

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bwaremarkt/storefront/internal/dal/bolt"
	cartrepo "github.com/bwaremarkt/storefront/internal/dal/repositories/cart"
	"github.com/bwaremarkt/storefront/internal/dal/storage"
	"github.com/bwaremarkt/storefront/pkg/events"
)

func newTestCart(t *testing.T) (*CartService, *storage.Store) {
	t.Helper()

	client, err := bolt.NewClient(filepath.Join(t.TempDir(), "store.db"))
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })

	store := storage.NewStore(client, events.NewBus())
	svc := MustNewCartService(
		WithCartRepository(cartrepo.NewCartRepository(store)),
	)

	return svc, store
}

func TestAddToCart_NewLineAndIncrement(t *testing.T) {
	svc, _ := newTestCart(t)
	ctx := context.Background()

	svc.AddToCart(ctx, "wm-010", 1)
	svc.AddToCart(ctx, "ks-015", 2)
	svc.AddToCart(ctx, "wm-010", 3)

	items := svc.Items(ctx)
	require.Len(t, items, 2, "one line per product")
	assert.Equal(t, 4, svc.Quantity(ctx, "wm-010"))
	assert.Equal(t, 2, svc.Quantity(ctx, "ks-015"))
	assert.Equal(t, 6, svc.ItemCount(ctx))
}

func TestAddToCart_ClampsQuantityToOne(t *testing.T) {
	svc, _ := newTestCart(t)
	ctx := context.Background()

	svc.AddToCart(ctx, "wm-010", 0)
	svc.AddToCart(ctx, "ks-015", -5)

	assert.Equal(t, 1, svc.Quantity(ctx, "wm-010"))
	assert.Equal(t, 1, svc.Quantity(ctx, "ks-015"))
}

func TestUpdateQuantity(t *testing.T) {
	svc, _ := newTestCart(t)
	ctx := context.Background()

	svc.AddToCart(ctx, "wm-010", 2)

	svc.UpdateQuantity(ctx, "wm-010", 5)
	assert.Equal(t, 5, svc.Quantity(ctx, "wm-010"))

	// Zero or negative removes the line.
	svc.UpdateQuantity(ctx, "wm-010", 0)
	assert.False(t, svc.Contains(ctx, "wm-010"))

	// Updating an absent product is a no-op.
	svc.UpdateQuantity(ctx, "nope", 3)
	assert.Empty(t, svc.Items(ctx))
}

func TestRemoveFromCart(t *testing.T) {
	svc, _ := newTestCart(t)
	ctx := context.Background()

	svc.AddToCart(ctx, "wm-010", 1)
	svc.AddToCart(ctx, "ks-015", 1)

	svc.RemoveFromCart(ctx, "wm-010")

	assert.False(t, svc.Contains(ctx, "wm-010"))
	assert.True(t, svc.Contains(ctx, "ks-015"))
}

func TestClear(t *testing.T) {
	svc, _ := newTestCart(t)
	ctx := context.Background()

	svc.AddToCart(ctx, "wm-010", 2)
	svc.Clear(ctx)

	assert.Empty(t, svc.Items(ctx))
	assert.Zero(t, svc.ItemCount(ctx))
}

func TestCart_SurvivesRestart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.db")
	ctx := context.Background()

	client, err := bolt.NewClient(path)
	require.NoError(t, err)
	svc := MustNewCartService(
		WithCartRepository(cartrepo.NewCartRepository(storage.NewStore(client, events.NewBus()))),
	)
	svc.AddToCart(ctx, "wm-010", 3)
	require.NoError(t, client.Close())

	client, err = bolt.NewClient(path)
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })

	reopened := MustNewCartService(
		WithCartRepository(cartrepo.NewCartRepository(storage.NewStore(client, events.NewBus()))),
	)
	assert.Equal(t, 3, reopened.Quantity(ctx, "wm-010"))
}

func TestMutations_EmitCartUpdated(t *testing.T) {
	svc, store := newTestCart(t)
	ctx := context.Background()

	notified := 0
	unsub := store.Subscribe(storage.CollectionCart, func() { notified++ })
	defer unsub()

	svc.AddToCart(ctx, "wm-010", 1)
	svc.UpdateQuantity(ctx, "wm-010", 2)
	svc.RemoveFromCart(ctx, "wm-010")

	assert.Equal(t, 3, notified)
}
