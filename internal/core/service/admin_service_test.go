package service

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/ratehub/store-ratings-api/internal/core/domain"
	"github.com/ratehub/store-ratings-api/internal/core/ports"
)

func newAdminFixture() (*memDB, *AdminService) {
	db := newMemDB()
	svc := NewAdminService(&stubUserRepo{db: db}, &stubStoreRepo{db: db}, &stubRatingRepo{db: db}, discardLogger)
	return db, svc
}

func TestAdminStats(t *testing.T) {
	db, svc := newAdminFixture()
	alice := db.addUser("Alice Example Person Name", "alice@example.com", domain.RoleNormalUser)
	db.addUser("Robert Example Person Name", "bob@example.com", domain.RoleNormalUser)
	store := db.addStore("Corner Bakery And Coffee", "bakery@example.com", "")
	db.addRating(alice.ID, store.ID, 5)

	stats, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.TotalUsers != 2 || stats.TotalStores != 1 || stats.TotalRatings != 1 {
		t.Errorf("unexpected counts: %+v", stats)
	}
}

func TestAdminListStoresAggregates(t *testing.T) {
	db, svc := newAdminFixture()
	alice := db.addUser("Alice Example Person Name", "alice@example.com", domain.RoleNormalUser)
	bob := db.addUser("Robert Example Person Name", "bob@example.com", domain.RoleNormalUser)
	rated := db.addStore("Corner Bakery And Coffee", "bakery@example.com", "")
	db.addStore("Brand New Unrated Bistro", "new@example.com", "")
	db.addRating(alice.ID, rated.ID, 4)
	db.addRating(bob.ID, rated.ID, 2)

	rows, err := svc.ListStores(context.Background(), ports.ListStoresFilter{SortBy: "name", SortOrder: "ASC"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 stores, got %d", len(rows))
	}
	if rows[0].Name != "Brand New Unrated Bistro" || rows[0].AverageRating != 0 || rows[0].TotalRatings != 0 {
		t.Errorf("unexpected first row: %+v", rows[0])
	}
	if rows[1].AverageRating != 3.0 || rows[1].TotalRatings != 2 {
		t.Errorf("unexpected aggregate: %+v", rows[1])
	}
}

func TestAdminListUsersFilters(t *testing.T) {
	db, svc := newAdminFixture()
	db.addUser("Alice Example Person Name", "alice@example.com", domain.RoleNormalUser)
	db.addUser("Olivia Example Owner Name", "owner@example.com", domain.RoleStoreOwner)

	rows, err := svc.ListUsers(context.Background(), ports.ListUsersFilter{Role: domain.RoleStoreOwner})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(rows) != 1 || rows[0].Role != domain.RoleStoreOwner {
		t.Fatalf("expected only the store owner, got %v", rows)
	}
}

func TestAdminUserDetails(t *testing.T) {
	db, svc := newAdminFixture()
	normal := db.addUser("Alice Example Person Name", "alice@example.com", domain.RoleNormalUser)
	owner := db.addUser("Olivia Example Owner Name", "owner@example.com", domain.RoleStoreOwner)
	store := db.addStore("Corner Bakery And Coffee", "bakery@example.com", owner.ID)
	db.addRating(normal.ID, store.ID, 5)

	details, err := svc.UserDetails(context.Background(), normal.ID)
	if err != nil {
		t.Fatalf("details: %v", err)
	}
	if details.Stores != nil {
		t.Errorf("normal user must not carry stores, got %v", details.Stores)
	}

	details, err = svc.UserDetails(context.Background(), owner.ID)
	if err != nil {
		t.Fatalf("details: %v", err)
	}
	if len(details.Stores) != 1 {
		t.Fatalf("expected one owned store, got %d", len(details.Stores))
	}
	if details.Stores[0].AverageRating != 5.0 || details.Stores[0].TotalRatings != 1 {
		t.Errorf("unexpected aggregate: %+v", details.Stores[0])
	}
}

func TestAdminUserDetailsMissing(t *testing.T) {
	_, svc := newAdminFixture()
	_, err := svc.UserDetails(context.Background(), "no-such-user")
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestAdminCreateStore(t *testing.T) {
	db, svc := newAdminFixture()
	owner := db.addUser("Olivia Example Owner Name", "owner@example.com", domain.RoleStoreOwner)

	store, err := svc.CreateStore(context.Background(), ports.CreateStoreInput{
		Name:    "Freshly Minted Retail Store",
		Email:   "fresh@example.com",
		Address: "3 Test Way",
		OwnerID: owner.ID,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if store.ID == "" || store.OwnerID != owner.ID {
		t.Errorf("unexpected store: %+v", store)
	}
}

func TestAdminCreateStoreOwnerValidation(t *testing.T) {
	db, svc := newAdminFixture()
	normal := db.addUser("Alice Example Person Name", "alice@example.com", domain.RoleNormalUser)

	cases := []struct {
		name    string
		ownerID string
	}{
		{"owner is a normal user", normal.ID},
		{"owner does not exist", "no-such-user"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateStore(context.Background(), ports.CreateStoreInput{
				Name:    "Freshly Minted Retail Store",
				Email:   "fresh@example.com",
				OwnerID: tc.ownerID,
			})
			if !errors.Is(err, domain.ErrOwnerNotOwner) {
				t.Fatalf("expected ErrOwnerNotOwner, got %v", err)
			}
		})
	}
}

func TestAdminCreateStoreDuplicateEmail(t *testing.T) {
	db, svc := newAdminFixture()
	owner := db.addUser("Olivia Example Owner Name", "owner@example.com", domain.RoleStoreOwner)
	db.addStore("Corner Bakery And Coffee", "bakery@example.com", owner.ID)

	_, err := svc.CreateStore(context.Background(), ports.CreateStoreInput{
		Name:    "Another Bakery Entirely Here",
		Email:   "bakery@example.com",
		OwnerID: owner.ID,
	})
	if !errors.Is(err, domain.ErrStoreEmailTaken) {
		t.Fatalf("expected ErrStoreEmailTaken, got %v", err)
	}
}

func TestAdminCreateUser(t *testing.T) {
	_, svc := newAdminFixture()

	user, err := svc.CreateUser(context.Background(), ports.CreateUserInput{
		Name:     "Olivia Example Owner Name",
		Email:    "owner@example.com",
		Password: "Str0ng!Password",
		Address:  "4 Test Way",
		Role:     domain.RoleStoreOwner,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if user.Role != domain.RoleStoreOwner {
		t.Errorf("expected storeOwner role, got %s", user.Role)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("Str0ng!Password")) != nil {
		t.Error("stored hash does not match the password")
	}
}

func TestAdminCreateUserInvalidRole(t *testing.T) {
	_, svc := newAdminFixture()

	_, err := svc.CreateUser(context.Background(), ports.CreateUserInput{
		Name:     "Olivia Example Owner Name",
		Email:    "owner@example.com",
		Password: "Str0ng!Password",
		Role:     domain.Role("superuser"),
	})
	if !errors.Is(err, domain.ErrInvalidRole) {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}
}
