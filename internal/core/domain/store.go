package domain

import "time"

// Store is a rateable business. A store belongs to exactly one owner; the
// owner's role is checked once at creation time.
type Store struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Address   string    `json:"address"`
	OwnerID   string    `json:"owner_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// StoreAggregate is the store-wide rating summary, computed on read from
// the full rating set. AverageRating is 0 when TotalRatings is 0.
type StoreAggregate struct {
	StoreID       string  `json:"store_id"`
	AverageRating float64 `json:"average_rating"`
	TotalRatings  int64   `json:"total_ratings"`
}

// StoreListing is one row of the personalized store listing: the global
// aggregate merged with the viewer's own rating. UserSubmittedRating is nil
// when the viewer has never rated the store.
type StoreListing struct {
	ID                  string  `json:"id"`
	Name                string  `json:"name"`
	Address             string  `json:"address"`
	Email               string  `json:"email"`
	OverallRating       float64 `json:"overallRating"`
	UserSubmittedRating *int    `json:"userSubmittedRating"`
}
