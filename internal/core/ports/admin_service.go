package ports

import (
	"context"

	"github.com/ratehub/store-ratings-api/internal/core/domain"
)

// Stats is the admin dashboard's set of independent platform counts.
type Stats struct {
	TotalUsers   int64 `json:"totalUsers"`
	TotalStores  int64 `json:"totalStores"`
	TotalRatings int64 `json:"totalRatings"`
}

// CreateStoreInput carries the data for admin store creation.
type CreateStoreInput struct {
	Name    string
	Email   string
	Address string
	OwnerID string
}

// CreateUserInput carries the data for admin user creation. Unlike public
// registration the role is chosen by the admin.
type CreateUserInput struct {
	Name     string
	Email    string
	Password string
	Address  string
	Role     domain.Role
}

// UserDetails is a user's public profile; Stores is populated (with
// aggregates) only when the user is a store owner.
type UserDetails struct {
	User   *domain.User   `json:"user"`
	Stores []StoreSummary `json:"stores,omitempty"`
}

// AdminService defines the admin-only aggregation and management use cases.
type AdminService interface {
	Stats(ctx context.Context) (*Stats, error)
	ListStores(ctx context.Context, filter ListStoresFilter) ([]StoreSummary, error)
	ListUsers(ctx context.Context, filter ListUsersFilter) ([]*domain.User, error)
	UserDetails(ctx context.Context, userID string) (*UserDetails, error)
	CreateStore(ctx context.Context, input CreateStoreInput) (*domain.Store, error)
	CreateUser(ctx context.Context, input CreateUserInput) (*domain.User, error)
}
