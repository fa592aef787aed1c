package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/ratehub/store-ratings-api/internal/core/domain"
	"github.com/ratehub/store-ratings-api/internal/core/ports"
)

var discardLogger = zerolog.Nop()

// memDB is a shared in-memory backing store for the stub repositories.
// The stubs mirror the behaviour of the real Mongo repositories: unique
// emails, the unique (user, store) rating pair, and the dual-join listing
// semantics (average over all ratings, viewer rating attached separately,
// unrated stores last on rating sorts, id tie-break).
type memDB struct {
	seq     int
	users   []*domain.User
	stores  []*domain.Store
	ratings []*domain.Rating

	failWith error // if set, every call returns this error
}

func newMemDB() *memDB {
	return &memDB{}
}

func (m *memDB) nextID() string {
	m.seq++
	return fmt.Sprintf("id-%03d", m.seq)
}

func (m *memDB) addUser(name, email string, role domain.Role) *domain.User {
	u := &domain.User{
		ID:        m.nextID(),
		Name:      name,
		Email:     email,
		Address:   "1 Test Way",
		Role:      role,
		CreatedAt: time.Now().UTC(),
	}
	m.users = append(m.users, u)
	return u
}

func (m *memDB) addStore(name, email, ownerID string) *domain.Store {
	s := &domain.Store{
		ID:        m.nextID(),
		Name:      name,
		Email:     email,
		Address:   "2 Test Way",
		OwnerID:   ownerID,
		CreatedAt: time.Now().UTC(),
	}
	m.stores = append(m.stores, s)
	return s
}

func (m *memDB) addRating(userID, storeID string, value int) *domain.Rating {
	r := &domain.Rating{
		ID:        m.nextID(),
		UserID:    userID,
		StoreID:   storeID,
		Rating:    value,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	m.ratings = append(m.ratings, r)
	return r
}

func (m *memDB) storeAggregate(storeID string) (float64, int64) {
	var sum, n int64
	for _, r := range m.ratings {
		if r.StoreID == storeID {
			sum += int64(r.Rating)
			n++
		}
	}
	if n == 0 {
		return 0, 0
	}
	return float64(sum) / float64(n), n
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

// --- UserRepository stub ---

type stubUserRepo struct{ db *memDB }

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if r.db.failWith != nil {
		return nil, r.db.failWith
	}
	for _, u := range r.db.users {
		if u.Email == user.Email {
			return nil, domain.ErrEmailTaken
		}
	}
	clone := *user
	clone.ID = r.db.nextID()
	r.db.users = append(r.db.users, &clone)
	out := clone
	return &out, nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	if r.db.failWith != nil {
		return nil, r.db.failWith
	}
	for _, u := range r.db.users {
		if u.ID == id {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	if r.db.failWith != nil {
		return nil, r.db.failWith
	}
	for _, u := range r.db.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) UpdatePassword(_ context.Context, id, passwordHash string) error {
	for _, u := range r.db.users {
		if u.ID == id {
			u.PasswordHash = passwordHash
			u.UpdatedAt = time.Now().UTC()
			return nil
		}
	}
	return domain.ErrUserNotFound
}

func (r *stubUserRepo) List(_ context.Context, filter ports.ListUsersFilter) ([]*domain.User, error) {
	var out []*domain.User
	for _, u := range r.db.users {
		if filter.Name != "" && !containsFold(u.Name, filter.Name) {
			continue
		}
		if filter.Email != "" && !containsFold(u.Email, filter.Email) {
			continue
		}
		if filter.Address != "" && !containsFold(u.Address, filter.Address) {
			continue
		}
		if filter.Role != "" && u.Role != filter.Role {
			continue
		}
		clone := *u
		out = append(out, &clone)
	}
	desc := filter.SortOrder == "DESC"
	sort.SliceStable(out, func(i, j int) bool {
		var less bool
		switch filter.SortBy {
		case "email":
			less = out[i].Email < out[j].Email
		case "address":
			less = out[i].Address < out[j].Address
		case "role":
			less = out[i].Role < out[j].Role
		default:
			less = out[i].Name < out[j].Name
		}
		if desc {
			return !less
		}
		return less
	})
	return out, nil
}

func (r *stubUserRepo) Count(_ context.Context) (int64, error) {
	if r.db.failWith != nil {
		return 0, r.db.failWith
	}
	return int64(len(r.db.users)), nil
}

// --- StoreRepository stub ---

type stubStoreRepo struct{ db *memDB }

func (r *stubStoreRepo) Create(_ context.Context, store *domain.Store) (*domain.Store, error) {
	if r.db.failWith != nil {
		return nil, r.db.failWith
	}
	for _, s := range r.db.stores {
		if s.Email == store.Email {
			return nil, domain.ErrStoreEmailTaken
		}
	}
	clone := *store
	clone.ID = r.db.nextID()
	r.db.stores = append(r.db.stores, &clone)
	out := clone
	return &out, nil
}

func (r *stubStoreRepo) FindByID(_ context.Context, id string) (*domain.Store, error) {
	if r.db.failWith != nil {
		return nil, r.db.failWith
	}
	for _, s := range r.db.stores {
		if s.ID == id {
			clone := *s
			return &clone, nil
		}
	}
	return nil, domain.ErrStoreNotFound
}

func (r *stubStoreRepo) FindByOwner(_ context.Context, ownerID string) (*domain.Store, error) {
	if r.db.failWith != nil {
		return nil, r.db.failWith
	}
	// Insertion order doubles as creation order: first match wins.
	for _, s := range r.db.stores {
		if s.OwnerID == ownerID {
			clone := *s
			return &clone, nil
		}
	}
	return nil, domain.ErrStoreNotFound
}

func (r *stubStoreRepo) ListForViewer(_ context.Context, viewerID string, filter ports.ListingFilter) ([]domain.StoreListing, error) {
	if r.db.failWith != nil {
		return nil, r.db.failWith
	}

	var rows []domain.StoreListing
	rated := make(map[string]bool)
	for _, s := range r.db.stores {
		if filter.Name != "" && !containsFold(s.Name, filter.Name) {
			continue
		}
		if filter.Address != "" && !containsFold(s.Address, filter.Address) {
			continue
		}

		avg, n := r.db.storeAggregate(s.ID)
		row := domain.StoreListing{
			ID:            s.ID,
			Name:          s.Name,
			Address:       s.Address,
			Email:         s.Email,
			OverallRating: avg,
		}
		rated[s.ID] = n > 0
		for _, rt := range r.db.ratings {
			if rt.StoreID == s.ID && rt.UserID == viewerID {
				v := rt.Rating
				row.UserSubmittedRating = &v
				break
			}
		}
		rows = append(rows, row)
	}

	desc := filter.SortOrder == "DESC"
	sort.SliceStable(rows, func(i, j int) bool {
		switch filter.SortBy {
		case "rating":
			// Unrated stores sort last in both directions.
			if rated[rows[i].ID] != rated[rows[j].ID] {
				return rated[rows[i].ID]
			}
			if rows[i].OverallRating != rows[j].OverallRating {
				if desc {
					return rows[i].OverallRating > rows[j].OverallRating
				}
				return rows[i].OverallRating < rows[j].OverallRating
			}
			return rows[i].ID < rows[j].ID
		case "address":
			if rows[i].Address != rows[j].Address {
				if desc {
					return rows[i].Address > rows[j].Address
				}
				return rows[i].Address < rows[j].Address
			}
			return rows[i].ID < rows[j].ID
		default:
			if rows[i].Name != rows[j].Name {
				if desc {
					return rows[i].Name > rows[j].Name
				}
				return rows[i].Name < rows[j].Name
			}
			return rows[i].ID < rows[j].ID
		}
	})
	return rows, nil
}

func (r *stubStoreRepo) ListWithAggregates(_ context.Context, filter ports.ListStoresFilter) ([]ports.StoreSummary, error) {
	if r.db.failWith != nil {
		return nil, r.db.failWith
	}
	var out []ports.StoreSummary
	for _, s := range r.db.stores {
		if filter.Name != "" && !containsFold(s.Name, filter.Name) {
			continue
		}
		if filter.Email != "" && !containsFold(s.Email, filter.Email) {
			continue
		}
		if filter.Address != "" && !containsFold(s.Address, filter.Address) {
			continue
		}
		avg, n := r.db.storeAggregate(s.ID)
		out = append(out, ports.StoreSummary{
			ID: s.ID, Name: s.Name, Email: s.Email, Address: s.Address,
			AverageRating: avg, TotalRatings: n,
		})
	}
	desc := filter.SortOrder == "DESC"
	sort.SliceStable(out, func(i, j int) bool {
		var less bool
		switch filter.SortBy {
		case "email":
			less = out[i].Email < out[j].Email
		case "address":
			less = out[i].Address < out[j].Address
		default:
			less = out[i].Name < out[j].Name
		}
		if desc {
			return !less
		}
		return less
	})
	return out, nil
}

func (r *stubStoreRepo) ListByOwnerWithAggregates(_ context.Context, ownerID string) ([]ports.StoreSummary, error) {
	if r.db.failWith != nil {
		return nil, r.db.failWith
	}
	var out []ports.StoreSummary
	for _, s := range r.db.stores {
		if s.OwnerID != ownerID {
			continue
		}
		avg, n := r.db.storeAggregate(s.ID)
		out = append(out, ports.StoreSummary{
			ID: s.ID, Name: s.Name, Email: s.Email, Address: s.Address,
			AverageRating: avg, TotalRatings: n,
		})
	}
	return out, nil
}

func (r *stubStoreRepo) Count(_ context.Context) (int64, error) {
	if r.db.failWith != nil {
		return 0, r.db.failWith
	}
	return int64(len(r.db.stores)), nil
}

// --- RatingRepository stub ---

type stubRatingRepo struct{ db *memDB }

func (r *stubRatingRepo) Create(_ context.Context, rating *domain.Rating) (*domain.Rating, error) {
	if r.db.failWith != nil {
		return nil, r.db.failWith
	}
	// Mirrors the unique (user_id, store_id) index.
	for _, existing := range r.db.ratings {
		if existing.UserID == rating.UserID && existing.StoreID == rating.StoreID {
			return nil, domain.ErrRatingExists
		}
	}
	clone := *rating
	clone.ID = r.db.nextID()
	r.db.ratings = append(r.db.ratings, &clone)
	out := clone
	return &out, nil
}

func (r *stubRatingRepo) Update(_ context.Context, userID, storeID string, value int) (*domain.Rating, error) {
	if r.db.failWith != nil {
		return nil, r.db.failWith
	}
	for _, existing := range r.db.ratings {
		if existing.UserID == userID && existing.StoreID == storeID {
			existing.Rating = value
			existing.UpdatedAt = time.Now().UTC()
			clone := *existing
			return &clone, nil
		}
	}
	return nil, domain.ErrRatingNotFound
}

func (r *stubRatingRepo) FindByUserAndStore(_ context.Context, userID, storeID string) (*domain.Rating, error) {
	for _, existing := range r.db.ratings {
		if existing.UserID == userID && existing.StoreID == storeID {
			clone := *existing
			return &clone, nil
		}
	}
	return nil, domain.ErrRatingNotFound
}

func (r *stubRatingRepo) ListForStore(_ context.Context, storeID string) ([]domain.StoreRating, error) {
	if r.db.failWith != nil {
		return nil, r.db.failWith
	}
	var out []domain.StoreRating
	for _, rt := range r.db.ratings {
		if rt.StoreID != storeID {
			continue
		}
		sr := domain.StoreRating{
			ID:        rt.ID,
			Rating:    rt.Rating,
			CreatedAt: rt.CreatedAt,
			UpdatedAt: rt.UpdatedAt,
		}
		for _, u := range r.db.users {
			if u.ID == rt.UserID {
				sr.User = domain.RatingAuthor{ID: u.ID, Name: u.Name, Email: u.Email}
				break
			}
		}
		out = append(out, sr)
	}
	return out, nil
}

func (r *stubRatingRepo) AggregateForStore(_ context.Context, storeID string) (domain.StoreAggregate, error) {
	if r.db.failWith != nil {
		return domain.StoreAggregate{}, r.db.failWith
	}
	avg, n := r.db.storeAggregate(storeID)
	return domain.StoreAggregate{StoreID: storeID, AverageRating: avg, TotalRatings: n}, nil
}

func (r *stubRatingRepo) Count(_ context.Context) (int64, error) {
	if r.db.failWith != nil {
		return 0, r.db.failWith
	}
	return int64(len(r.db.ratings)), nil
}
