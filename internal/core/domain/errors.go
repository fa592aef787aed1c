package domain

import "errors"

// Sentinel errors shared across services and repositories. Repositories
// translate storage-level failures (duplicate key, no documents) into these
// so callers can match with errors.Is; the HTTP layer owns the mapping to
// status codes.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrForbidden          = errors.New("access forbidden")

	ErrUserNotFound = errors.New("user not found")
	ErrEmailTaken   = errors.New("email is already taken")

	ErrStoreNotFound   = errors.New("store not found")
	ErrStoreEmailTaken = errors.New("store email is already taken")
	ErrOwnerNotOwner   = errors.New("owner must be a user with storeOwner role")
	ErrInvalidRole     = errors.New("invalid role")

	ErrRatingExists   = errors.New("you have already rated this store, use update instead")
	ErrRatingNotFound = errors.New("rating not found, submit a rating first")
)
