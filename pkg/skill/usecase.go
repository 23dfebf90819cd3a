package skill

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/artem13815/folio/pkg/validation"
)

const (
	MinProficiency = 1
	MaxProficiency = 5
)

// Input is the raw skill form. Proficiency arrives as text and is coerced on validation.
type Input struct {
	Name        string `json:"name"`
	Proficiency string `json:"proficiency"`
}

// DefaultInput is the state the form returns to after a successful submit.
func DefaultInput() Input {
	return Input{Name: "", Proficiency: strconv.Itoa(3)}
}

// Validate checks the form and returns the coerced proficiency.
func (in Input) Validate() (int, validation.Violations) {
	v := validation.Violations{}
	validation.MinLen("name", in.Name, 2, "Skill name must be at least 2 characters", v)
	p, _ := validation.IntInRange("proficiency", in.Proficiency, MinProficiency, MaxProficiency,
		"Proficiency must be between 1 and 5", v)
	return p, v
}

// UseCase covers the skill form and the skills list.
type UseCase interface {
	Create(ctx context.Context, ownerID uuid.UUID, in Input) (Skill, error)
	List(ctx context.Context, ownerID uuid.UUID, order Order) ([]Skill, error)
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
}

type service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) UseCase {
	return &service{repo: repo, now: time.Now}
}

func (s *service) Create(ctx context.Context, ownerID uuid.UUID, in Input) (Skill, error) {
	p, v := in.Validate()
	if err := v.Err(); err != nil {
		return Skill{}, err
	}
	sk := Skill{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		Name:        strings.TrimSpace(in.Name),
		Proficiency: p,
		CreatedAt:   s.now().UTC(),
	}
	if err := s.repo.Create(ctx, sk); err != nil {
		return Skill{}, err
	}
	return sk, nil
}

func (s *service) List(ctx context.Context, ownerID uuid.UUID, order Order) ([]Skill, error) {
	items, err := s.repo.ListByOwner(ctx, ownerID, order)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []Skill{}
	}
	return items, nil
}

func (s *service) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	return s.repo.DeleteForOwner(ctx, ownerID, id)
}
