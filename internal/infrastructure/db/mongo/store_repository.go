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
	"github.com/ratehub/store-ratings-api/internal/core/ports"
)

const storesCollection = "stores"

type StoreRepository struct {
	col *mongo.Collection
}

func NewStoreRepository(db *mongo.Database) *StoreRepository {
	return &StoreRepository{col: db.Collection(storesCollection)}
}

type storeDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"name"`
	Email     string             `bson:"email"`
	Address   string             `bson:"address"`
	OwnerID   primitive.ObjectID `bson:"owner_id"`
	CreatedAt time.Time          `bson:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at"`
}

func (d storeDoc) toDomain() *domain.Store {
	return &domain.Store{
		ID:        d.ID.Hex(),
		Name:      d.Name,
		Email:     d.Email,
		Address:   d.Address,
		OwnerID:   d.OwnerID.Hex(),
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

func (r *StoreRepository) Create(ctx context.Context, store *domain.Store) (*domain.Store, error) {
	ownerOID, err := primitive.ObjectIDFromHex(store.OwnerID)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := storeDoc{
		Name:      store.Name,
		Email:     store.Email,
		Address:   store.Address,
		OwnerID:   ownerOID,
		CreatedAt: store.CreatedAt,
		UpdatedAt: store.UpdatedAt,
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrStoreEmailTaken
		}
		return nil, fmt.Errorf("insert store: %w", err)
	}

	created := *store
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *StoreRepository) FindByID(ctx context.Context, id string) (*domain.Store, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrStoreNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc storeDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrStoreNotFound
		}
		return nil, fmt.Errorf("find store: %w", err)
	}
	return doc.toDomain(), nil
}

// FindByOwner returns the owner's store. When the schema holds more than
// one, the earliest-created wins so the dashboard stays deterministic.
func (r *StoreRepository) FindByOwner(ctx context.Context, ownerID string) (*domain.Store, error) {
	oid, err := primitive.ObjectIDFromHex(ownerID)
	if err != nil {
		return nil, domain.ErrStoreNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.FindOne().SetSort(bson.D{{Key: "created_at", Value: 1}})

	var doc storeDoc
	if err := r.col.FindOne(ctx, bson.M{"owner_id": oid}, opts).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrStoreNotFound
		}
		return nil, fmt.Errorf("find store by owner: %w", err)
	}
	return doc.toDomain(), nil
}

type listingRow struct {
	ID            primitive.ObjectID `bson:"_id"`
	Name          string             `bson:"name"`
	Email         string             `bson:"email"`
	Address       string             `bson:"address"`
	OverallRating float64            `bson:"overall_rating"`
	UserRating    *int               `bson:"user_rating"`
}

// ListForViewer runs the dual-join listing as one aggregation: a first
// $lookup pulls every rating of each store for the average, a second,
// separately scoped $lookup pulls at most the viewer's single rating. The
// two joins never multiply rows because each collapses into per-store
// fields before projection, so the result has exactly one row per store.
func (r *StoreRepository) ListForViewer(ctx context.Context, viewerID string, filter ports.ListingFilter) ([]domain.StoreListing, error) {
	viewerOID, err := primitive.ObjectIDFromHex(viewerID)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	match := bson.M{}
	if filter.Name != "" {
		match["name"] = containsRegex(filter.Name)
	}
	if filter.Address != "" {
		match["address"] = containsRegex(filter.Address)
	}

	pipeline := mongo.Pipeline{}
	if len(match) > 0 {
		pipeline = append(pipeline, bson.D{{Key: "$match", Value: match}})
	}

	pipeline = append(pipeline,
		bson.D{{Key: "$lookup", Value: bson.M{
			"from":         ratingsCollection,
			"localField":   "_id",
			"foreignField": "store_id",
			"as":           "all_ratings",
		}}},
		bson.D{{Key: "$lookup", Value: bson.M{
			"from": ratingsCollection,
			"let":  bson.M{"sid": "$_id"},
			"pipeline": bson.A{
				bson.M{"$match": bson.M{"$expr": bson.M{"$and": bson.A{
					bson.M{"$eq": bson.A{"$store_id", "$$sid"}},
					bson.M{"$eq": bson.A{"$user_id", viewerOID}},
				}}}},
			},
			"as": "viewer_rating",
		}}},
		bson.D{{Key: "$addFields", Value: bson.M{
			"overall_rating": bson.M{"$ifNull": bson.A{bson.M{"$avg": "$all_ratings.rating"}, 0}},
			"total_ratings":  bson.M{"$size": "$all_ratings"},
			"rated":          bson.M{"$gt": bson.A{bson.M{"$size": "$all_ratings"}, 0}},
			"user_rating":    bson.M{"$arrayElemAt": bson.A{"$viewer_rating.rating", 0}},
		}}},
		bson.D{{Key: "$project", Value: bson.M{"all_ratings": 0, "viewer_rating": 0}}},
		listingSortStage(filter.SortBy, filter.SortOrder),
	)

	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("list stores for viewer: %w", err)
	}
	defer cur.Close(ctx)

	var listings []domain.StoreListing
	for cur.Next(ctx) {
		var row listingRow
		if err := cur.Decode(&row); err != nil {
			return nil, fmt.Errorf("decode listing row: %w", err)
		}
		listings = append(listings, domain.StoreListing{
			ID:                  row.ID.Hex(),
			Name:                row.Name,
			Address:             row.Address,
			Email:               row.Email,
			OverallRating:       row.OverallRating,
			UserSubmittedRating: row.UserRating,
		})
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("list stores for viewer: %w", err)
	}
	return listings, nil
}

// listingSortStage builds the $sort for the viewer listing. Rating sorts
// key on "rated" first so stores with no ratings land last in both
// directions: an absent aggregate must not collide with a real low
// average. Ties break on _id so the order is stable.
func listingSortStage(sortBy, sortOrder string) bson.D {
	dir := 1
	if sortOrder == "DESC" {
		dir = -1
	}

	switch sortBy {
	case "rating":
		return bson.D{{Key: "$sort", Value: bson.D{
			{Key: "rated", Value: -1},
			{Key: "overall_rating", Value: dir},
			{Key: "_id", Value: 1},
		}}}
	case "address":
		return bson.D{{Key: "$sort", Value: bson.D{
			{Key: "address", Value: dir},
			{Key: "_id", Value: 1},
		}}}
	default:
		return bson.D{{Key: "$sort", Value: bson.D{
			{Key: "name", Value: dir},
			{Key: "_id", Value: 1},
		}}}
	}
}

type summaryRow struct {
	ID            primitive.ObjectID `bson:"_id"`
	Name          string             `bson:"name"`
	Email         string             `bson:"email"`
	Address       string             `bson:"address"`
	AverageRating float64            `bson:"average_rating"`
	TotalRatings  int64              `bson:"total_ratings"`
}

// ListWithAggregates is the admin-facing listing: every matching store with
// its full aggregate, no per-viewer join.
func (r *StoreRepository) ListWithAggregates(ctx context.Context, filter ports.ListStoresFilter) ([]ports.StoreSummary, error) {
	match := bson.M{}
	if filter.Name != "" {
		match["name"] = containsRegex(filter.Name)
	}
	if filter.Email != "" {
		match["email"] = containsRegex(filter.Email)
	}
	if filter.Address != "" {
		match["address"] = containsRegex(filter.Address)
	}

	pipeline := mongo.Pipeline{}
	if len(match) > 0 {
		pipeline = append(pipeline, bson.D{{Key: "$match", Value: match}})
	}
	pipeline = append(pipeline,
		aggregateStages()...,
	)
	pipeline = append(pipeline, bson.D{{Key: "$sort", Value: sortSpec(filter.SortBy, filter.SortOrder, map[string]string{
		"name":      "name",
		"email":     "email",
		"address":   "address",
		"createdAt": "created_at",
	})}})

	return r.runSummaryPipeline(ctx, pipeline)
}

// ListByOwnerWithAggregates returns all stores of one owner with their
// aggregates, for the admin user-details view.
func (r *StoreRepository) ListByOwnerWithAggregates(ctx context.Context, ownerID string) ([]ports.StoreSummary, error) {
	oid, err := primitive.ObjectIDFromHex(ownerID)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	pipeline := mongo.Pipeline{bson.D{{Key: "$match", Value: bson.M{"owner_id": oid}}}}
	pipeline = append(pipeline, aggregateStages()...)
	pipeline = append(pipeline, bson.D{{Key: "$sort", Value: bson.D{{Key: "created_at", Value: 1}}}})

	return r.runSummaryPipeline(ctx, pipeline)
}

// aggregateStages joins each store with its ratings and collapses them
// into average_rating and total_ratings fields.
func aggregateStages() []bson.D {
	return []bson.D{
		{{Key: "$lookup", Value: bson.M{
			"from":         ratingsCollection,
			"localField":   "_id",
			"foreignField": "store_id",
			"as":           "all_ratings",
		}}},
		{{Key: "$addFields", Value: bson.M{
			"average_rating": bson.M{"$ifNull": bson.A{bson.M{"$avg": "$all_ratings.rating"}, 0}},
			"total_ratings":  bson.M{"$size": "$all_ratings"},
		}}},
		{{Key: "$project", Value: bson.M{"all_ratings": 0}}},
	}
}

func (r *StoreRepository) runSummaryPipeline(ctx context.Context, pipeline mongo.Pipeline) ([]ports.StoreSummary, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate stores: %w", err)
	}
	defer cur.Close(ctx)

	var summaries []ports.StoreSummary
	for cur.Next(ctx) {
		var row summaryRow
		if err := cur.Decode(&row); err != nil {
			return nil, fmt.Errorf("decode store summary: %w", err)
		}
		summaries = append(summaries, ports.StoreSummary{
			ID:            row.ID.Hex(),
			Name:          row.Name,
			Email:         row.Email,
			Address:       row.Address,
			AverageRating: row.AverageRating,
			TotalRatings:  row.TotalRatings,
		})
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("aggregate stores: %w", err)
	}
	return summaries, nil
}

func (r *StoreRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()
	return r.col.CountDocuments(ctx, bson.M{})
}

func (r *StoreRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "owner_id", Value: 1}}},
	})
	return err
}
