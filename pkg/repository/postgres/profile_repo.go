package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/artem13815/folio/pkg/profile"
)

// ProfileRepository implements profile.Repository.
type ProfileRepository struct {
	pool *pgxpool.Pool
}

func NewProfileRepository(pool *pgxpool.Pool) *ProfileRepository {
	return &ProfileRepository{pool: pool}
}

func (r *ProfileRepository) Get(ctx context.Context, id uuid.UUID) (profile.Profile, error) {
	var p profile.Profile
	err := r.pool.QueryRow(ctx, `
		SELECT id, full_name, headline, bio, location, email, phone,
		       website, github, linkedin, avatar_url, updated_at
		FROM profiles WHERE id = $1
	`, id).Scan(&p.ID, &p.FullName, &p.Headline, &p.Bio, &p.Location, &p.Email, &p.Phone,
		&p.Website, &p.GitHub, &p.LinkedIn, &p.AvatarURL, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return profile.Profile{}, profile.ErrNotFound
		}
		return profile.Profile{}, err
	}
	p.UpdatedAt = p.UpdatedAt.UTC()
	return p, nil
}

func (r *ProfileRepository) Upsert(ctx context.Context, p profile.Profile) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO profiles (id, full_name, headline, bio, location, email, phone,
		                      website, github, linkedin, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (id) DO UPDATE SET
			full_name = EXCLUDED.full_name,
			headline = EXCLUDED.headline,
			bio = EXCLUDED.bio,
			location = EXCLUDED.location,
			email = EXCLUDED.email,
			phone = EXCLUDED.phone,
			website = EXCLUDED.website,
			github = EXCLUDED.github,
			linkedin = EXCLUDED.linkedin,
			updated_at = EXCLUDED.updated_at
	`, p.ID, p.FullName, p.Headline, p.Bio, p.Location, p.Email, p.Phone,
		p.Website, p.GitHub, p.LinkedIn, p.UpdatedAt)
	return err
}

// SetAvatarURL creates an otherwise empty profile if none exists yet.
func (r *ProfileRepository) SetAvatarURL(ctx context.Context, id uuid.UUID, url string, at time.Time) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO profiles (id, avatar_url, updated_at) VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET avatar_url = EXCLUDED.avatar_url, updated_at = EXCLUDED.updated_at
	`, id, url, at)
	return err
}
