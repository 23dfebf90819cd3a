package auth

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNoSession          = errors.New("no active session")
)

// UserRepository abstracts persistence concerns from the domain layer.
type UserRepository interface {
	// Create returns ErrUserAlreadyExists when the email is taken.
	Create(ctx context.Context, user User) error
	GetByEmail(ctx context.Context, email string) (User, error)
}

// Revoker remembers signed-out sessions until their tokens would expire anyway.
type Revoker interface {
	Revoke(ctx context.Context, sessionID string, until time.Time) error
	IsRevoked(ctx context.Context, sessionID string) (bool, error)
}

// ProfileSeeder creates the owner's profile at sign-up.
type ProfileSeeder interface {
	Seed(ctx context.Context, ownerID uuid.UUID, fullName, email string) error
}
