package profile

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/artem13815/folio/pkg/validation"
)

type Input struct {
	FullName string `json:"fullName"`
	Headline string `json:"headline"`
	Bio      string `json:"bio"`
	Location string `json:"location"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Website  string `json:"website"`
	GitHub   string `json:"github"`
	LinkedIn string `json:"linkedin"`
}

func (in Input) Validate() validation.Violations {
	v := validation.Violations{}
	validation.MinLen("fullName", in.FullName, 2, "Name must be at least 2 characters", v)
	validation.EmailOrEmpty("email", in.Email, v)
	validation.URLOrEmpty("website", in.Website, v)
	validation.URLOrEmpty("github", in.GitHub, v)
	validation.URLOrEmpty("linkedin", in.LinkedIn, v)
	return v
}

// InputFrom prefills the editor form from a stored profile.
func InputFrom(p Profile) Input {
	return Input{
		FullName: p.FullName,
		Headline: p.Headline,
		Bio:      p.Bio,
		Location: p.Location,
		Email:    p.Email,
		Phone:    p.Phone,
		Website:  p.Website,
		GitHub:   p.GitHub,
		LinkedIn: p.LinkedIn,
	}
}

// UseCase covers the profile editor. Save has upsert semantics.
type UseCase interface {
	Get(ctx context.Context, ownerID uuid.UUID) (Profile, error)
	Save(ctx context.Context, ownerID uuid.UUID, in Input) (Profile, error)
	// Seed creates the profile at sign-up; fullName is not validated here.
	Seed(ctx context.Context, ownerID uuid.UUID, fullName, email string) error
	SetAvatar(ctx context.Context, ownerID uuid.UUID, url string) error
}

type service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) UseCase {
	return &service{repo: repo, now: time.Now}
}

func (s *service) Get(ctx context.Context, ownerID uuid.UUID) (Profile, error) {
	return s.repo.Get(ctx, ownerID)
}

func (s *service) Save(ctx context.Context, ownerID uuid.UUID, in Input) (Profile, error) {
	if err := in.Validate().Err(); err != nil {
		return Profile{}, err
	}
	p := Profile{
		ID:        ownerID,
		FullName:  strings.TrimSpace(in.FullName),
		Headline:  strings.TrimSpace(in.Headline),
		Bio:       strings.TrimSpace(in.Bio),
		Location:  strings.TrimSpace(in.Location),
		Email:     strings.TrimSpace(in.Email),
		Phone:     strings.TrimSpace(in.Phone),
		Website:   strings.TrimSpace(in.Website),
		GitHub:    strings.TrimSpace(in.GitHub),
		LinkedIn:  strings.TrimSpace(in.LinkedIn),
		UpdatedAt: s.now().UTC(),
	}
	if err := s.repo.Upsert(ctx, p); err != nil {
		return Profile{}, err
	}
	// avatar is untouched by Upsert; reload to return the full record
	return s.repo.Get(ctx, ownerID)
}

func (s *service) Seed(ctx context.Context, ownerID uuid.UUID, fullName, email string) error {
	return s.repo.Upsert(ctx, Profile{
		ID:        ownerID,
		FullName:  strings.TrimSpace(fullName),
		Email:     strings.TrimSpace(email),
		UpdatedAt: s.now().UTC(),
	})
}

func (s *service) SetAvatar(ctx context.Context, ownerID uuid.UUID, url string) error {
	return s.repo.SetAvatarURL(ctx, ownerID, url, s.now().UTC())
}
