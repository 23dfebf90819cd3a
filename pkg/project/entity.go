package project

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Project is a portfolio entry owned by one profile.
type Project struct {
	ID          uuid.UUID `json:"id"`
	OwnerID     uuid.UUID `json:"ownerId"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	ImageURL    string    `json:"imageUrl"`
	ProjectURL  string    `json:"projectUrl"`
	GitHubURL   string    `json:"githubUrl"`
	TechStack   []string  `json:"techStack"`
	CreatedAt   time.Time `json:"createdAt"`
}

var ErrNotFound = errors.New("project not found")

// Repository is the port to the record store for projects.
// ListByOwner returns newest first.
type Repository interface {
	Create(ctx context.Context, p Project) error
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]Project, error)
	DeleteForOwner(ctx context.Context, ownerID, id uuid.UUID) error
}
