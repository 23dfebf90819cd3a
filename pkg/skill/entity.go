package skill

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Skill belongs to exactly one portfolio owner. Names are not unique per owner.
type Skill struct {
	ID          uuid.UUID `json:"id"`
	OwnerID     uuid.UUID `json:"ownerId"`
	Name        string    `json:"name"`
	Proficiency int       `json:"proficiency"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Order selects the listing order.
type Order int

const (
	// OrderByName is used by the dashboard list.
	OrderByName Order = iota
	// OrderByProficiency (highest first) is used by the public portfolio and the resume.
	OrderByProficiency
)

var ErrNotFound = errors.New("skill not found")

// Repository is the port to the record store for skills.
type Repository interface {
	Create(ctx context.Context, s Skill) error
	ListByOwner(ctx context.Context, ownerID uuid.UUID, order Order) ([]Skill, error)
	// DeleteForOwner returns ErrNotFound if the row does not exist or is not owned by ownerID.
	DeleteForOwner(ctx context.Context, ownerID, id uuid.UUID) error
}
