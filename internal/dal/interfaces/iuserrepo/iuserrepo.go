package iuserrepo

import (
	"context"

	"github.com/bwaremarkt/storefront/internal/service/models/user"
)

// IUserRepository is an interface for the session-record repository.
type IUserRepository interface {
	Get(ctx context.Context) (user.UserData, bool, error)
	Set(ctx context.Context, u user.UserData) error
	Clear(ctx context.Context) error
}
