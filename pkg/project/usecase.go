package project

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/artem13815/folio/pkg/validation"
)

// Input is the raw project form; TechStack is the comma-separated text field.
type Input struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
	ProjectURL  string `json:"projectUrl"`
	GitHubURL   string `json:"githubUrl"`
	TechStack   string `json:"techStack"`
}

func DefaultInput() Input { return Input{} }

func (in Input) Validate() validation.Violations {
	v := validation.Violations{}
	validation.MinLen("title", in.Title, 2, "Project title must be at least 2 characters", v)
	validation.URLOrEmpty("imageUrl", in.ImageURL, v)
	validation.URLOrEmpty("projectUrl", in.ProjectURL, v)
	validation.URLOrEmpty("githubUrl", in.GitHubURL, v)
	return v
}

// ParseTechStack splits on commas, trims every token and drops empty ones.
// Order is preserved; joining the result with ", " and parsing again yields the same list.
func ParseTechStack(s string) []string {
	out := []string{}
	for _, tok := range strings.Split(s, ",") {
		if tok = strings.TrimSpace(tok); tok != "" {
			out = append(out, tok)
		}
	}
	return out
}

// UseCase covers the project form and the projects list.
type UseCase interface {
	Create(ctx context.Context, ownerID uuid.UUID, in Input) (Project, error)
	List(ctx context.Context, ownerID uuid.UUID) ([]Project, error)
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
}

type service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) UseCase {
	return &service{repo: repo, now: time.Now}
}

func (s *service) Create(ctx context.Context, ownerID uuid.UUID, in Input) (Project, error) {
	if err := in.Validate().Err(); err != nil {
		return Project{}, err
	}
	p := Project{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
		ImageURL:    strings.TrimSpace(in.ImageURL),
		ProjectURL:  strings.TrimSpace(in.ProjectURL),
		GitHubURL:   strings.TrimSpace(in.GitHubURL),
		TechStack:   ParseTechStack(in.TechStack),
		CreatedAt:   s.now().UTC(),
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return Project{}, err
	}
	return p, nil
}

func (s *service) List(ctx context.Context, ownerID uuid.UUID) ([]Project, error) {
	items, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []Project{}
	}
	return items, nil
}

func (s *service) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	return s.repo.DeleteForOwner(ctx, ownerID, id)
}
