package ports

import (
	"context"

	"github.com/ratehub/store-ratings-api/internal/core/domain"
)

// ListUsersFilter carries the query parameters for the admin user listing.
// All text filters are optional case-insensitive substring matches,
// AND-combined when several are given.
type ListUsersFilter struct {
	Name      string
	Email     string
	Address   string
	Role      domain.Role // zero value = no role filter
	SortBy    string      // name, email, address, role, created_at; default name
	SortOrder string      // ASC or DESC; default ASC
}

// UserRepository defines persistence operations for users.
type UserRepository interface {
	// Create inserts a new user. Returns domain.ErrEmailTaken when the
	// email unique index rejects the insert.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	List(ctx context.Context, filter ListUsersFilter) ([]*domain.User, error)
	Count(ctx context.Context) (int64, error)
}
