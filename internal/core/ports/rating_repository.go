package ports

import (
	"context"

	"github.com/ratehub/store-ratings-api/internal/core/domain"
)

// RatingRepository defines persistence operations for the rating ledger.
type RatingRepository interface {
	// Create inserts a new rating. The (user_id, store_id) unique index is
	// the authoritative guard: a duplicate-key failure is returned as
	// domain.ErrRatingExists, which also resolves the race between two
	// concurrent submits for the same pair.
	Create(ctx context.Context, rating *domain.Rating) (*domain.Rating, error)
	// Update overwrites the rating value for an existing (user, store)
	// pair and refreshes its update timestamp. Returns
	// domain.ErrRatingNotFound when no rating exists for the pair.
	Update(ctx context.Context, userID, storeID string, value int) (*domain.Rating, error)
	FindByUserAndStore(ctx context.Context, userID, storeID string) (*domain.Rating, error)
	// ListForStore returns all ratings for a store joined with the
	// minimal public projection of each author.
	ListForStore(ctx context.Context, storeID string) ([]domain.StoreRating, error)
	// AggregateForStore computes the store's average and count over the
	// full rating set. Zero ratings yields {0, 0}, never an error.
	AggregateForStore(ctx context.Context, storeID string) (domain.StoreAggregate, error)
	Count(ctx context.Context) (int64, error)
}
