package ports

import (
	"context"

	"github.com/ratehub/store-ratings-api/internal/core/domain"
)

// RatingService owns the one-rating-per-user-per-store state machine:
// absent -> Submit -> present -> Update -> present. Submit on a present
// pair and Update on an absent pair are both terminal errors. The 1..5
// range is enforced at the request boundary, not re-checked here.
type RatingService interface {
	Submit(ctx context.Context, userID, storeID string, value int) (*domain.Rating, error)
	Update(ctx context.Context, userID, storeID string, value int) (*domain.Rating, error)
}
