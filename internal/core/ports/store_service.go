package ports

import (
	"context"

	"github.com/ratehub/store-ratings-api/internal/core/domain"
)

// DashboardResult is the store owner's aggregate view of their store.
type DashboardResult struct {
	StoreID       string  `json:"storeId"`
	StoreName     string  `json:"storeName"`
	Email         string  `json:"email"`
	Address       string  `json:"address"`
	AverageRating float64 `json:"averageRating"`
	TotalRatings  int64   `json:"totalRatings"`
}

// StoreService defines store-facing use cases: the personalized listing
// for normal users and the owner's dashboard views.
type StoreService interface {
	ListForViewer(ctx context.Context, viewerID string, filter ListingFilter) ([]domain.StoreListing, error)
	Dashboard(ctx context.Context, ownerID string) (*DashboardResult, error)
	RatingsReceived(ctx context.Context, ownerID string) ([]domain.StoreRating, error)
}
