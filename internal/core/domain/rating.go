package domain

import "time"

// Rating is a single user's score for a single store. The (UserID, StoreID)
// pair is unique: a user rates a store at most once and re-rating mutates
// the existing row in place. Enforced by a unique compound index so that
// two concurrent submits can never both commit.
type Rating struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	StoreID   string    `json:"store_id"`
	Rating    int       `json:"rating"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// StoreRating is a rating joined with its author's public projection, as
// returned to store owners.
type StoreRating struct {
	ID        string       `json:"id"`
	Rating    int          `json:"rating"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
	User      RatingAuthor `json:"user"`
}
