// Package portfolio assembles the read-only snapshot shown on the public page
// and fed to the resume generator.
package portfolio

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/artem13815/folio/pkg/profile"
	"github.com/artem13815/folio/pkg/project"
	"github.com/artem13815/folio/pkg/skill"
)

var ErrNotFound = errors.New("portfolio not found")

// Snapshot is one consistent-enough read of an owner's records. The three
// reads are independent; no transaction spans them.
type Snapshot struct {
	Profile    profile.Profile   `json:"profile"`
	HasProfile bool              `json:"-"`
	Projects   []project.Project `json:"projects"`
	Skills     []skill.Skill     `json:"skills"`
}

type UseCase interface {
	// Load returns whatever exists for ownerID; a missing profile is not an error.
	Load(ctx context.Context, ownerID uuid.UUID) (Snapshot, error)
	// Public is Load for the shareable page: a missing profile is ErrNotFound.
	Public(ctx context.Context, ownerID uuid.UUID) (Snapshot, error)
}

type service struct {
	profiles profile.Repository
	projects project.Repository
	skills   skill.Repository
	group    singleflight.Group
	timeout  time.Duration
}

func NewService(profiles profile.Repository, projects project.Repository, skills skill.Repository) UseCase {
	return &service{profiles: profiles, projects: projects, skills: skills, timeout: 10 * time.Second}
}

func (s *service) Load(ctx context.Context, ownerID uuid.UUID) (Snapshot, error) {
	// concurrent identical loads share one round of store reads
	v, err, _ := s.group.Do(ownerID.String(), func() (any, error) {
		// waiters share this call, so it must not end with the first caller's context
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.timeout)
		defer cancel()
		return s.load(ctx, ownerID)
	})
	if err != nil {
		return Snapshot{}, err
	}
	return v.(Snapshot), nil
}

func (s *service) Public(ctx context.Context, ownerID uuid.UUID) (Snapshot, error) {
	snap, err := s.Load(ctx, ownerID)
	if err != nil {
		return Snapshot{}, err
	}
	if !snap.HasProfile {
		return Snapshot{}, ErrNotFound
	}
	return snap, nil
}

func (s *service) load(ctx context.Context, ownerID uuid.UUID) (Snapshot, error) {
	var snap Snapshot
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		p, err := s.profiles.Get(gctx, ownerID)
		switch {
		case errors.Is(err, profile.ErrNotFound):
			return nil
		case err != nil:
			return err
		}
		snap.Profile, snap.HasProfile = p, true
		return nil
	})
	g.Go(func() error {
		items, err := s.projects.ListByOwner(gctx, ownerID)
		snap.Projects = items
		return err
	})
	g.Go(func() error {
		items, err := s.skills.ListByOwner(gctx, ownerID, skill.OrderByProficiency)
		snap.Skills = items
		return err
	})
	if err := g.Wait(); err != nil {
		return Snapshot{}, err
	}
	if snap.Projects == nil {
		snap.Projects = []project.Project{}
	}
	if snap.Skills == nil {
		snap.Skills = []skill.Skill{}
	}
	return snap, nil
}
