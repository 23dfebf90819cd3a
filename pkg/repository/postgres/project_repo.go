package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/artem13815/folio/pkg/project"
)

// ProjectRepository implements project.Repository.
type ProjectRepository struct {
	pool *pgxpool.Pool
}

func NewProjectRepository(pool *pgxpool.Pool) *ProjectRepository {
	return &ProjectRepository{pool: pool}
}

func (r *ProjectRepository) Create(ctx context.Context, p project.Project) error {
	stack := p.TechStack
	if stack == nil {
		stack = []string{}
	}
	_, err := r.pool.Exec(ctx, `
		INSERT INTO projects (id, owner_id, title, description, image_url, project_url, github_url, tech_stack, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, p.ID, p.OwnerID, p.Title, p.Description, p.ImageURL, p.ProjectURL, p.GitHubURL, stack, p.CreatedAt)
	return err
}

func (r *ProjectRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]project.Project, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, owner_id, title, description, image_url, project_url, github_url, tech_stack, created_at
		FROM projects WHERE owner_id = $1
		ORDER BY created_at DESC
	`, ownerID)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (project.Project, error) {
		var p project.Project
		err := row.Scan(&p.ID, &p.OwnerID, &p.Title, &p.Description, &p.ImageURL,
			&p.ProjectURL, &p.GitHubURL, &p.TechStack, &p.CreatedAt)
		p.CreatedAt = p.CreatedAt.UTC()
		return p, err
	})
}

func (r *ProjectRepository) DeleteForOwner(ctx context.Context, ownerID, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM projects WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return project.ErrNotFound
	}
	return nil
}
