package cartsvc

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/bwaremarkt/storefront/internal/dal/interfaces/icartrepo"
	"github.com/bwaremarkt/storefront/internal/service/models/cart"
)

// CartService manages the shopping cart. Every mutation reads the full
// collection, changes it in memory and writes it back; the mutex makes each
// public operation the unit of atomicity within this process. Storage
// trouble is logged and swallowed per the store's best-effort contract.
type CartService struct {
	mu       sync.Mutex
	cartRepo icartrepo.ICartRepository
}

// option is a function that configures the CartService.
type option func(*CartService)

// MustNewCartService creates a new CartService.
func MustNewCartService(opts ...option) *CartService {
	s := &CartService{}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// WithCartRepository sets the cart repository for the CartService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithCartRepository(repo icartrepo.ICartRepository) option {
	return func(s *CartService) {
		s.cartRepo = repo
	}
}

// AddToCart adds a product to the cart, incrementing the quantity when the
// product already has a line. Quantities below one count as one.
func (s *CartService) AddToCart(ctx context.Context, productID string, quantity int) {
	if quantity < 1 {
		quantity = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.items(ctx)
	for i := range items {
		if items[i].ProductID == productID {
			items[i].Quantity += quantity
			s.save(ctx, items)

			return
		}
	}

	items = append(items, cart.Item{
		ProductID: productID,
		Quantity:  quantity,
		AddedAt:   time.Now().Format(time.RFC3339),
	})
	s.save(ctx, items)
}

// UpdateQuantity sets the quantity of a cart line. A quantity of zero or
// less removes the line entirely.
func (s *CartService) UpdateQuantity(ctx context.Context, productID string, quantity int) {
	if quantity <= 0 {
		s.RemoveFromCart(ctx, productID)

		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.items(ctx)
	for i := range items {
		if items[i].ProductID == productID {
			items[i].Quantity = quantity
			s.save(ctx, items)

			return
		}
	}
}

// RemoveFromCart removes a product's line from the cart.
func (s *CartService) RemoveFromCart(ctx context.Context, productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.items(ctx)
	filtered := items[:0]
	for _, item := range items {
		if item.ProductID != productID {
			filtered = append(filtered, item)
		}
	}
	s.save(ctx, filtered)
}

// Clear empties the cart wholesale.
func (s *CartService) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.cartRepo.Clear(ctx); err != nil {
		slog.Error("Failed to clear cart", "error", err)
	}
}

// Items returns the current cart lines.
func (s *CartService) Items(ctx context.Context) []cart.Item {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.items(ctx)
}

// ItemCount returns the total number of units across all lines.
func (s *CartService) ItemCount(ctx context.Context) int {
	total := 0
	for _, item := range s.Items(ctx) {
		total += item.Quantity
	}

	return total
}

// Quantity returns the quantity of a product in the cart, zero when absent.
func (s *CartService) Quantity(ctx context.Context, productID string) int {
	for _, item := range s.Items(ctx) {
		if item.ProductID == productID {
			return item.Quantity
		}
	}

	return 0
}

// Contains reports whether the product has a line in the cart.
func (s *CartService) Contains(ctx context.Context, productID string) bool {
	return s.Quantity(ctx, productID) > 0
}

func (s *CartService) items(ctx context.Context) []cart.Item {
	items, err := s.cartRepo.Items(ctx)
	if err != nil {
		slog.Error("Failed to read cart, treating as empty", "error", err)
	}

	return items
}

func (s *CartService) save(ctx context.Context, items []cart.Item) {
	if err := s.cartRepo.Save(ctx, items); err != nil {
		slog.Error("Failed to persist cart", "error", err)
	}
}
