package ports

import (
	"context"
	"time"

	"github.com/ratehub/store-ratings-api/internal/core/domain"
)

// RegisterInput carries the data for public self-registration. The role is
// not caller-controlled: self-registered accounts are always normal users.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Address  string
}

// AuthService defines authentication use cases.
type AuthService interface {
	// Register creates a normal-user account and returns a signed token.
	Register(ctx context.Context, input RegisterInput) (string, *domain.User, error)
	// Login verifies credentials and returns a signed token.
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	// Logout revokes the presented token until its expiry.
	Logout(ctx context.Context, token string) error
	// UpdatePassword verifies the current password and replaces it.
	UpdatePassword(ctx context.Context, userID, currentPassword, newPassword string) error
}

// TokenRevoker abstracts the revocation store (Redis). Revoke holds the
// token until ttl elapses, after which the JWT itself has expired.
type TokenRevoker interface {
	Revoke(ctx context.Context, token string, ttl time.Duration) error
	IsRevoked(ctx context.Context, token string) (bool, error)
}
