package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/ratehub/store-ratings-api/internal/core/domain"
	"github.com/ratehub/store-ratings-api/internal/core/ports"
)

// RatingService implements the rating ledger: one rating per (user, store)
// pair, created once and mutated in place afterwards.
type RatingService struct {
	ratings ports.RatingRepository
	stores  ports.StoreRepository
	logger  zerolog.Logger
}

func NewRatingService(ratings ports.RatingRepository, stores ports.StoreRepository, logger zerolog.Logger) *RatingService {
	return &RatingService{ratings: ratings, stores: stores, logger: logger}
}

// Submit creates the user's rating for a store. The store must exist, and
// the pair must not have been rated before. The existence check is
// advisory only: when two submits race, the unique index on
// (user_id, store_id) rejects the second insert and the repository
// surfaces it as domain.ErrRatingExists.
func (s *RatingService) Submit(ctx context.Context, userID, storeID string, value int) (*domain.Rating, error) {
	if _, err := s.stores.FindByID(ctx, storeID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	rating := &domain.Rating{
		UserID:    userID,
		StoreID:   storeID,
		Rating:    value,
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := s.ratings.Create(ctx, rating)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("user_id", userID).
		Str("store_id", storeID).
		Int("rating", value).
		Msg("rating submitted")
	return created, nil
}

// Update overwrites the rating value for an existing pair. A pair that was
// never submitted is a NotFound failure, never an implicit create.
func (s *RatingService) Update(ctx context.Context, userID, storeID string, value int) (*domain.Rating, error) {
	updated, err := s.ratings.Update(ctx, userID, storeID, value)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("user_id", userID).
		Str("store_id", storeID).
		Int("rating", value).
		Msg("rating updated")
	return updated, nil
}
