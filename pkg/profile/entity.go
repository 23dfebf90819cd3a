package profile

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Profile is the single per-identity record; ID equals the owner's user id.
type Profile struct {
	ID        uuid.UUID `json:"id"`
	FullName  string    `json:"fullName"`
	Headline  string    `json:"headline"`
	Bio       string    `json:"bio"`
	Location  string    `json:"location"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Website   string    `json:"website"`
	GitHub    string    `json:"github"`
	LinkedIn  string    `json:"linkedin"`
	AvatarURL string    `json:"avatarUrl"`
	UpdatedAt time.Time `json:"updatedAt"`
}

var ErrNotFound = errors.New("profile not found")

// Repository is the port to the record store for profiles.
type Repository interface {
	Get(ctx context.Context, id uuid.UUID) (Profile, error)
	// Upsert writes every field except AvatarURL, which is owned by SetAvatarURL.
	Upsert(ctx context.Context, p Profile) error
	SetAvatarURL(ctx context.Context, id uuid.UUID, url string, at time.Time) error
}
