package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/ratehub/store-ratings-api/internal/core/domain"
	"github.com/ratehub/store-ratings-api/internal/core/ports"
)

// AdminService implements the admin-only aggregation and management use
// cases: platform stats, store/user listings, user inspection, and
// store/user creation.
type AdminService struct {
	users   ports.UserRepository
	stores  ports.StoreRepository
	ratings ports.RatingRepository
	logger  zerolog.Logger
}

func NewAdminService(users ports.UserRepository, stores ports.StoreRepository, ratings ports.RatingRepository, logger zerolog.Logger) *AdminService {
	return &AdminService{users: users, stores: stores, ratings: ratings, logger: logger}
}

// Stats returns the three platform counts. They are independent reads, not
// a correlated snapshot.
func (s *AdminService) Stats(ctx context.Context) (*ports.Stats, error) {
	totalUsers, err := s.users.Count(ctx)
	if err != nil {
		return nil, err
	}
	totalStores, err := s.stores.Count(ctx)
	if err != nil {
		return nil, err
	}
	totalRatings, err := s.ratings.Count(ctx)
	if err != nil {
		return nil, err
	}

	return &ports.Stats{
		TotalUsers:   totalUsers,
		TotalStores:  totalStores,
		TotalRatings: totalRatings,
	}, nil
}

func (s *AdminService) ListStores(ctx context.Context, filter ports.ListStoresFilter) ([]ports.StoreSummary, error) {
	return s.stores.ListWithAggregates(ctx, filter)
}

func (s *AdminService) ListUsers(ctx context.Context, filter ports.ListUsersFilter) ([]*domain.User, error) {
	return s.users.List(ctx, filter)
}

// UserDetails returns a user's public profile. Store owners additionally
// get every store they own with its aggregate rating.
func (s *AdminService) UserDetails(ctx context.Context, userID string) (*ports.UserDetails, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	details := &ports.UserDetails{User: user}
	if user.Role == domain.RoleStoreOwner {
		stores, err := s.stores.ListByOwnerWithAggregates(ctx, userID)
		if err != nil {
			return nil, err
		}
		details.Stores = stores
	}
	return details, nil
}

// CreateStore creates a store after checking, once, that the owner exists
// and carries the storeOwner role. Ownership is not re-validated later.
func (s *AdminService) CreateStore(ctx context.Context, input ports.CreateStoreInput) (*domain.Store, error) {
	owner, err := s.users.FindByID(ctx, input.OwnerID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrOwnerNotOwner
		}
		return nil, err
	}
	if owner.Role != domain.RoleStoreOwner {
		return nil, domain.ErrOwnerNotOwner
	}

	now := time.Now().UTC()
	store := &domain.Store{
		Name:      input.Name,
		Email:     input.Email,
		Address:   input.Address,
		OwnerID:   input.OwnerID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := s.stores.Create(ctx, store)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("store_id", created.ID).
		Str("owner_id", created.OwnerID).
		Msg("store created")
	return created, nil
}

// CreateUser creates an account with an admin-chosen role.
func (s *AdminService) CreateUser(ctx context.Context, input ports.CreateUserInput) (*domain.User, error) {
	if !input.Role.Valid() {
		return nil, domain.ErrInvalidRole
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Name:         input.Name,
		Email:        input.Email,
		Address:      input.Address,
		PasswordHash: string(hash),
		Role:         input.Role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("user_id", created.ID).
		Str("role", string(created.Role)).
		Msg("user created by admin")
	return created, nil
}
