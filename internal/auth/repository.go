package auth

import (
	"context"

	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/internal/users"
)

// Repository is the slice of the user store the auth flows need.
// users.Repository satisfies it.
type Repository interface {
	FindByUsername(ctx context.Context, username string) (*users.User, error)
	FindByEmail(ctx context.Context, email string) (*users.User, error)
	UpdatePassword(ctx context.Context, id int64, hashed string) error
}

// SearchRegistry drops per-session trip searches.
type SearchRegistry interface {
	Forget(key string)
}

// ResetNotifier delivers a freshly generated password.
type ResetNotifier interface {
	PasswordReset(ctx context.Context, email, name, username, password string) error
}
