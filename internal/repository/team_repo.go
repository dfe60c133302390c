package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"lawfirm-cms/internal/model"
)

type TeamRepository struct {
	pool *pgxpool.Pool
}

func NewTeamRepository(pool *pgxpool.Pool) *TeamRepository {
	return &TeamRepository{pool: pool}
}

const teamColumns = `id, name, position, bio, photo_url, email, display_order, created_at, updated_at`

func scanTeamMember(row pgx.Row) (model.TeamMember, error) {
	var m model.TeamMember
	err := row.Scan(&m.ID, &m.Name, &m.Position, &m.Bio, &m.PhotoURL,
		&m.Email, &m.DisplayOrder, &m.CreatedAt, &m.UpdatedAt)
	return m, err
}

func (r *TeamRepository) List(ctx context.Context) ([]model.TeamMember, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+teamColumns+` FROM team_members ORDER BY display_order, name`)
	if err != nil {
		return nil, storeErr("list team members", err)
	}
	defer rows.Close()

	members := make([]model.TeamMember, 0)
	for rows.Next() {
		m, err := scanTeamMember(rows)
		if err != nil {
			return nil, storeErr("scan team member", err)
		}
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("iterate team members", err)
	}

	return members, nil
}

func (r *TeamRepository) FindByID(ctx context.Context, id string) (model.TeamMember, error) {
	m, err := scanTeamMember(r.pool.QueryRow(ctx,
		`SELECT `+teamColumns+` FROM team_members WHERE id = $1`, id))

	if errors.Is(err, pgx.ErrNoRows) {
		return model.TeamMember{}, model.ErrMemberNotFound
	}
	if err != nil {
		return model.TeamMember{}, storeErr("find team member", err)
	}
	return m, nil
}

func (r *TeamRepository) Create(ctx context.Context, m model.TeamMember) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO team_members (id, name, position, bio, photo_url, email, display_order, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		m.ID, m.Name, m.Position, m.Bio, m.PhotoURL, m.Email,
		m.DisplayOrder, m.CreatedAt, m.UpdatedAt)
	if err != nil {
		return storeErr("create team member", err)
	}
	return nil
}

func (r *TeamRepository) Update(ctx context.Context, m model.TeamMember) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE team_members
		 SET name = $2, position = $3, bio = $4, photo_url = $5,
		     email = $6, display_order = $7, updated_at = $8
		 WHERE id = $1`,
		m.ID, m.Name, m.Position, m.Bio, m.PhotoURL,
		m.Email, m.DisplayOrder, m.UpdatedAt)
	if err != nil {
		return storeErr("update team member", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrMemberNotFound
	}
	return nil
}

func (r *TeamRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM team_members WHERE id = $1`, id)
	if err != nil {
		return storeErr("delete team member", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrMemberNotFound
	}
	return nil
}
