package usersvc

import (
	"context"
	"log/slog"
	"sync"

	"github.com/bwaremarkt/storefront/internal/dal/interfaces/iuserrepo"
	"github.com/bwaremarkt/storefront/internal/service/models/user"
)

// UserService holds the current session: a single record overwritten
// wholesale on login, registration and profile update, and removed wholesale
// on logout.
type UserService struct {
	mu       sync.Mutex
	userRepo iuserrepo.IUserRepository
}

// option is a function that configures the UserService.
type option func(*UserService)

// MustNewUserService creates a new UserService.
func MustNewUserService(opts ...option) *UserService {
	s := &UserService{}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// WithUserRepository sets the user repository for the UserService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithUserRepository(repo iuserrepo.IUserRepository) option {
	return func(s *UserService) {
		s.userRepo = repo
	}
}

// Get returns the current session record. ok is false when none is stored.
func (s *UserService) Get(ctx context.Context) (user.UserData, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, found, err := s.userRepo.Get(ctx)
	if err != nil {
		slog.Error("Failed to read session record", "error", err)
	}

	return u, found
}

// Set overwrites the session record.
func (s *UserService) Set(ctx context.Context, u user.UserData) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.userRepo.Set(ctx, u); err != nil {
		slog.Error("Failed to persist session record", "error", err)
	}
}

// Clear removes the session record (logout).
func (s *UserService) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.userRepo.Clear(ctx); err != nil {
		slog.Error("Failed to clear session record", "error", err)
	}
}

// IsLoggedIn reports whether a session record exists with the logged-in
// flag set. Presence alone is not enough.
func (s *UserService) IsLoggedIn(ctx context.Context) bool {
	u, found := s.Get(ctx)
	return found && u.IsLoggedIn
}
