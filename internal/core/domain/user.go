package domain

import "time"

// Role is the closed set of actor roles in the platform. Keeping it a
// dedicated type (rather than loose strings) makes the allowed-role set of
// every protected route auditable in one place.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleNormalUser Role = "normalUser"
	RoleStoreOwner Role = "storeOwner"
)

// Valid reports whether r is one of the three known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleNormalUser, RoleStoreOwner:
		return true
	}
	return false
}

// User models an authenticated actor in the system.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Address      string    `json:"address"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// RatingAuthor is the minimal public projection of a rating's author.
// Address, role and credential material never leave the ledger.
type RatingAuthor struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}
