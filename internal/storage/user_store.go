package storage

import (
	"context"
	"time"
)

// Role values recognised by the user directory.
const (
	RoleAdmin    = "admin"
	RoleVendor   = "vendor"
	RoleCustomer = "customer"
)

// User is the address-bearing projection of an account owned by the business
// side of the application.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Deleted   bool      `json:"deleted"`
	CreatedAt time.Time `json:"created_at"`
}

// UserStore is the read side of the user directory plus the upsert used to
// seed it.
type UserStore interface {
	// ListActiveByRole returns every non-deleted user with the given role.
	ListActiveByRole(ctx context.Context, role string) ([]User, error)
	// Save inserts or replaces a user.
	Save(ctx context.Context, u User) error
}
