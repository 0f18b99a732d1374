package addresssvc

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/bwaremarkt/storefront/internal/dal/interfaces/iaddressrepo"
	"github.com/bwaremarkt/storefront/internal/service/models/address"
)

// ErrAddressNotFound is returned when an address id does not exist.
var ErrAddressNotFound = errors.New("address not found")

// AddressService manages the address book. Its invariant: at most one
// address carries the default flag at any time.
type AddressService struct {
	mu          sync.Mutex
	addressRepo iaddressrepo.IAddressRepository
}

// option is a function that configures the AddressService.
type option func(*AddressService)

// MustNewAddressService creates a new AddressService.
func MustNewAddressService(opts ...option) *AddressService {
	s := &AddressService{}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// WithAddressRepository sets the address repository for the AddressService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithAddressRepository(repo iaddressrepo.IAddressRepository) option {
	return func(s *AddressService) {
		s.addressRepo = repo
	}
}

// List returns all saved addresses.
func (s *AddressService) List(ctx context.Context) []address.Address {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.list(ctx)
}

// Add stores a new address. An address whose fields exactly match an
// existing record is not duplicated; the existing record is returned
// instead. Adding a default clears the flag on every other address.
func (s *AddressService) Add(ctx context.Context, d address.Draft) address.Address {
	s.mu.Lock()
	defer s.mu.Unlock()

	addresses := s.list(ctx)
	for _, a := range addresses {
		if a.SameFields(d) {
			return a
		}
	}

	if d.IsDefault {
		for i := range addresses {
			addresses[i].IsDefault = false
		}
	}

	a := address.Address{
		ID:         uuid.NewString(),
		Name:       d.Name,
		Street:     d.Street,
		City:       d.City,
		PostalCode: d.PostalCode,
		IsDefault:  d.IsDefault,
		CreatedAt:  time.Now().UnixMilli(),
	}

	s.save(ctx, append(addresses, a))

	return a
}

// Update overwrites the fields of an existing address. Making it the
// default clears the flag everywhere else.
func (s *AddressService) Update(ctx context.Context, id string, d address.Draft) (address.Address, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	addresses := s.list(ctx)
	idx := -1
	for i := range addresses {
		if addresses[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return address.Address{}, ErrAddressNotFound
	}

	if d.IsDefault {
		for i := range addresses {
			addresses[i].IsDefault = false
		}
	}

	addresses[idx].Name = d.Name
	addresses[idx].Street = d.Street
	addresses[idx].City = d.City
	addresses[idx].PostalCode = d.PostalCode
	addresses[idx].IsDefault = d.IsDefault

	s.save(ctx, addresses)

	return addresses[idx], nil
}

// Remove deletes an address by id.
func (s *AddressService) Remove(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	addresses := s.list(ctx)
	filtered := addresses[:0]
	for _, a := range addresses {
		if a.ID != id {
			filtered = append(filtered, a)
		}
	}
	if len(filtered) == len(addresses) {
		return ErrAddressNotFound
	}

	s.save(ctx, filtered)

	return nil
}

// SetDefault makes the given address the single default.
func (s *AddressService) SetDefault(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	addresses := s.list(ctx)
	found := false
	for i := range addresses {
		addresses[i].IsDefault = addresses[i].ID == id
		if addresses[i].IsDefault {
			found = true
		}
	}
	if !found {
		return ErrAddressNotFound
	}

	s.save(ctx, addresses)

	return nil
}

// Default returns the default address, falling back to the first saved one.
// ok is false when the book is empty.
func (s *AddressService) Default(ctx context.Context) (address.Address, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	addresses := s.list(ctx)
	for _, a := range addresses {
		if a.IsDefault {
			return a, true
		}
	}
	if len(addresses) > 0 {
		return addresses[0], true
	}

	return address.Address{}, false
}

func (s *AddressService) list(ctx context.Context) []address.Address {
	addresses, err := s.addressRepo.List(ctx)
	if err != nil {
		slog.Error("Failed to read addresses, treating as empty", "error", err)
	}

	return addresses
}

func (s *AddressService) save(ctx context.Context, addresses []address.Address) {
	if err := s.addressRepo.Save(ctx, addresses); err != nil {
		slog.Error("Failed to persist addresses", "error", err)
	}
}
