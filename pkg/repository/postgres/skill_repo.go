package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/artem13815/folio/pkg/skill"
)

// SkillRepository implements skill.Repository.
type SkillRepository struct {
	pool *pgxpool.Pool
}

func NewSkillRepository(pool *pgxpool.Pool) *SkillRepository {
	return &SkillRepository{pool: pool}
}

func (r *SkillRepository) Create(ctx context.Context, s skill.Skill) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO skills (id, owner_id, name, proficiency, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, s.ID, s.OwnerID, s.Name, s.Proficiency, s.CreatedAt)
	return err
}

var skillOrder = map[skill.Order]string{
	skill.OrderByName:        "name ASC, created_at ASC",
	skill.OrderByProficiency: "proficiency DESC, name ASC",
}

func (r *SkillRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID, order skill.Order) ([]skill.Skill, error) {
	orderBy, ok := skillOrder[order]
	if !ok {
		orderBy = skillOrder[skill.OrderByName]
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id, owner_id, name, proficiency, created_at
		FROM skills WHERE owner_id = $1
		ORDER BY `+orderBy, ownerID)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (skill.Skill, error) {
		var s skill.Skill
		err := row.Scan(&s.ID, &s.OwnerID, &s.Name, &s.Proficiency, &s.CreatedAt)
		s.CreatedAt = s.CreatedAt.UTC()
		return s, err
	})
}

func (r *SkillRepository) DeleteForOwner(ctx context.Context, ownerID, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM skills WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return skill.ErrNotFound
	}
	return nil
}
