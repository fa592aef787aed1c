package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/ratehub/store-ratings-api/internal/core/domain"
	"github.com/ratehub/store-ratings-api/internal/core/ports"
)

// StoreService implements the store catalog query and the owner-facing
// dashboard views.
type StoreService struct {
	stores  ports.StoreRepository
	ratings ports.RatingRepository
	logger  zerolog.Logger
}

func NewStoreService(stores ports.StoreRepository, ratings ports.RatingRepository, logger zerolog.Logger) *StoreService {
	return &StoreService{stores: stores, ratings: ratings, logger: logger}
}

// ListForViewer returns every store exactly once, each row merging the
// store-wide average with the viewer's own rating. The heavy lifting (the
// dual join) happens in one repository query; nothing here iterates per
// store.
func (s *StoreService) ListForViewer(ctx context.Context, viewerID string, filter ports.ListingFilter) ([]domain.StoreListing, error) {
	return s.stores.ListForViewer(ctx, viewerID, filter)
}

// Dashboard returns the owner's store with its aggregate rating. The
// dashboard assumes a single store per owner; owners without a store get
// NotFound.
func (s *StoreService) Dashboard(ctx context.Context, ownerID string) (*ports.DashboardResult, error) {
	store, err := s.stores.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	agg, err := s.ratings.AggregateForStore(ctx, store.ID)
	if err != nil {
		return nil, err
	}

	return &ports.DashboardResult{
		StoreID:       store.ID,
		StoreName:     store.Name,
		Email:         store.Email,
		Address:       store.Address,
		AverageRating: agg.AverageRating,
		TotalRatings:  agg.TotalRatings,
	}, nil
}

// RatingsReceived returns all ratings of the owner's store, each with the
// author's public projection only.
func (s *StoreService) RatingsReceived(ctx context.Context, ownerID string) ([]domain.StoreRating, error) {
	store, err := s.stores.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return s.ratings.ListForStore(ctx, store.ID)
}
