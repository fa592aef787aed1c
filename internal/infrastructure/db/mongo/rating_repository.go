package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ratehub/store-ratings-api/internal/core/domain"
)

const ratingsCollection = "ratings"

type RatingRepository struct {
	col *mongo.Collection
}

func NewRatingRepository(db *mongo.Database) *RatingRepository {
	return &RatingRepository{col: db.Collection(ratingsCollection)}
}

type ratingDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	UserID    primitive.ObjectID `bson:"user_id"`
	StoreID   primitive.ObjectID `bson:"store_id"`
	Rating    int                `bson:"rating"`
	CreatedAt time.Time          `bson:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at"`
}

func (d ratingDoc) toDomain() *domain.Rating {
	return &domain.Rating{
		ID:        d.ID.Hex(),
		UserID:    d.UserID.Hex(),
		StoreID:   d.StoreID.Hex(),
		Rating:    d.Rating,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

func ratingPair(userID, storeID string) (primitive.ObjectID, primitive.ObjectID, error) {
	userOID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return primitive.NilObjectID, primitive.NilObjectID, domain.ErrUserNotFound
	}
	storeOID, err := primitive.ObjectIDFromHex(storeID)
	if err != nil {
		return primitive.NilObjectID, primitive.NilObjectID, domain.ErrStoreNotFound
	}
	return userOID, storeOID, nil
}

// Create inserts a new rating. The unique (user_id, store_id) index is the
// only guard against double submission that survives concurrency: when two
// submits race past the service's existence check, the second InsertOne
// fails with a duplicate-key error and becomes ErrRatingExists here.
func (r *RatingRepository) Create(ctx context.Context, rating *domain.Rating) (*domain.Rating, error) {
	userOID, storeOID, err := ratingPair(rating.UserID, rating.StoreID)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := ratingDoc{
		UserID:    userOID,
		StoreID:   storeOID,
		Rating:    rating.Rating,
		CreatedAt: rating.CreatedAt,
		UpdatedAt: rating.UpdatedAt,
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrRatingExists
		}
		return nil, fmt.Errorf("insert rating: %w", err)
	}

	created := *rating
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

// Update overwrites the rating value in place for an existing pair.
func (r *RatingRepository) Update(ctx context.Context, userID, storeID string, value int) (*domain.Rating, error) {
	userOID, storeOID, err := ratingPair(userID, storeID)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc ratingDoc
	err = r.col.FindOneAndUpdate(ctx,
		bson.M{"user_id": userOID, "store_id": storeOID},
		bson.M{"$set": bson.M{"rating": value, "updated_at": time.Now().UTC()}},
		opts,
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrRatingNotFound
		}
		return nil, fmt.Errorf("update rating: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *RatingRepository) FindByUserAndStore(ctx context.Context, userID, storeID string) (*domain.Rating, error) {
	userOID, storeOID, err := ratingPair(userID, storeID)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc ratingDoc
	if err := r.col.FindOne(ctx, bson.M{"user_id": userOID, "store_id": storeOID}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrRatingNotFound
		}
		return nil, fmt.Errorf("find rating: %w", err)
	}
	return doc.toDomain(), nil
}

type storeRatingRow struct {
	ID        primitive.ObjectID `bson:"_id"`
	Rating    int                `bson:"rating"`
	CreatedAt time.Time          `bson:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at"`
	Author    []struct {
		ID    primitive.ObjectID `bson:"_id"`
		Name  string             `bson:"name"`
		Email string             `bson:"email"`
	} `bson:"author"`
}

// ListForStore returns every rating of a store joined with its author's
// public projection. The $lookup carries a $project so the author's
// address, role and password hash never leave the database.
func (r *RatingRepository) ListForStore(ctx context.Context, storeID string) ([]domain.StoreRating, error) {
	storeOID, err := primitive.ObjectIDFromHex(storeID)
	if err != nil {
		return nil, domain.ErrStoreNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"store_id": storeOID}}},
		bson.D{{Key: "$lookup", Value: bson.M{
			"from": usersCollection,
			"let":  bson.M{"uid": "$user_id"},
			"pipeline": bson.A{
				bson.M{"$match": bson.M{"$expr": bson.M{"$eq": bson.A{"$_id", "$$uid"}}}},
				bson.M{"$project": bson.M{"name": 1, "email": 1}},
			},
			"as": "author",
		}}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}}}},
	}

	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("list ratings for store: %w", err)
	}
	defer cur.Close(ctx)

	var ratings []domain.StoreRating
	for cur.Next(ctx) {
		var row storeRatingRow
		if err := cur.Decode(&row); err != nil {
			return nil, fmt.Errorf("decode store rating: %w", err)
		}
		sr := domain.StoreRating{
			ID:        row.ID.Hex(),
			Rating:    row.Rating,
			CreatedAt: row.CreatedAt,
			UpdatedAt: row.UpdatedAt,
		}
		if len(row.Author) > 0 {
			sr.User = domain.RatingAuthor{
				ID:    row.Author[0].ID.Hex(),
				Name:  row.Author[0].Name,
				Email: row.Author[0].Email,
			}
		}
		ratings = append(ratings, sr)
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("list ratings for store: %w", err)
	}
	return ratings, nil
}

type aggregateRow struct {
	AverageRating float64 `bson:"average_rating"`
	TotalRatings  int64   `bson:"total_ratings"`
}

// AggregateForStore computes the arithmetic mean and count over the full
// rating set in one grouped query; no sampling, no incremental cache. A
// store with no ratings yields {0, 0}.
func (r *RatingRepository) AggregateForStore(ctx context.Context, storeID string) (domain.StoreAggregate, error) {
	agg := domain.StoreAggregate{StoreID: storeID}

	storeOID, err := primitive.ObjectIDFromHex(storeID)
	if err != nil {
		return agg, domain.ErrStoreNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"store_id": storeOID}}},
		bson.D{{Key: "$group", Value: bson.M{
			"_id":            nil,
			"average_rating": bson.M{"$avg": "$rating"},
			"total_ratings":  bson.M{"$sum": 1},
		}}},
	}

	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return agg, fmt.Errorf("aggregate ratings: %w", err)
	}
	defer cur.Close(ctx)

	if cur.Next(ctx) {
		var row aggregateRow
		if err := cur.Decode(&row); err != nil {
			return agg, fmt.Errorf("decode rating aggregate: %w", err)
		}
		agg.AverageRating = row.AverageRating
		agg.TotalRatings = row.TotalRatings
	}
	if err := cur.Err(); err != nil {
		return agg, fmt.Errorf("aggregate ratings: %w", err)
	}
	return agg, nil
}

func (r *RatingRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()
	return r.col.CountDocuments(ctx, bson.M{})
}

func (r *RatingRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "store_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "store_id", Value: 1}}},
	})
	return err
}
