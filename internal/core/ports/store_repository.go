package ports

import (
	"context"

	"github.com/ratehub/store-ratings-api/internal/core/domain"
)

// ListingFilter carries the query parameters for the per-viewer store
// listing. Name and Address are optional case-insensitive substring
// matches, AND-combined when both are given.
type ListingFilter struct {
	Name      string
	Address   string
	SortBy    string // name, address, rating; default name
	SortOrder string // ASC or DESC; default ASC
}

// ListStoresFilter carries the query parameters for the admin store
// listing (full aggregate, no per-viewer join).
type ListStoresFilter struct {
	Name      string
	Email     string
	Address   string
	SortBy    string // name, email, address, created_at; default name
	SortOrder string // ASC or DESC; default ASC
}

// StoreSummary is a store joined with its full rating aggregate, used by
// the admin listing and the admin user-details view.
type StoreSummary struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Email         string  `json:"email"`
	Address       string  `json:"address"`
	AverageRating float64 `json:"averageRating"`
	TotalRatings  int64   `json:"totalRatings"`
}

// StoreRepository defines persistence operations for stores.
type StoreRepository interface {
	// Create inserts a new store. Returns domain.ErrStoreEmailTaken when
	// the email unique index rejects the insert.
	Create(ctx context.Context, store *domain.Store) (*domain.Store, error)
	FindByID(ctx context.Context, id string) (*domain.Store, error)
	// FindByOwner returns the owner's store, or domain.ErrStoreNotFound
	// when the owner has none. The schema permits several stores per
	// owner; the dashboard assumes one, so the earliest-created wins.
	FindByOwner(ctx context.Context, ownerID string) (*domain.Store, error)
	// ListForViewer composes the personalized listing in a single query:
	// every store exactly once, joined with the store-wide average and
	// with the viewer's own rating (nil when absent).
	ListForViewer(ctx context.Context, viewerID string, filter ListingFilter) ([]domain.StoreListing, error)
	// ListWithAggregates returns stores with their full aggregate,
	// filtered and sorted per filter.
	ListWithAggregates(ctx context.Context, filter ListStoresFilter) ([]StoreSummary, error)
	// ListByOwnerWithAggregates returns all stores owned by ownerID with
	// their aggregates.
	ListByOwnerWithAggregates(ctx context.Context, ownerID string) ([]StoreSummary, error)
	Count(ctx context.Context) (int64, error)
}
