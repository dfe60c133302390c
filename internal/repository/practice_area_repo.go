package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"lawfirm-cms/internal/model"
)

type PracticeAreaRepository struct {
	pool *pgxpool.Pool
}

func NewPracticeAreaRepository(pool *pgxpool.Pool) *PracticeAreaRepository {
	return &PracticeAreaRepository{pool: pool}
}

const practiceAreaColumns = `id, title, slug, summary, description, icon_url, display_order, created_at, updated_at`

func scanPracticeArea(row pgx.Row) (model.PracticeArea, error) {
	var p model.PracticeArea
	err := row.Scan(&p.ID, &p.Title, &p.Slug, &p.Summary, &p.Description,
		&p.IconURL, &p.DisplayOrder, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

func (r *PracticeAreaRepository) List(ctx context.Context) ([]model.PracticeArea, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+practiceAreaColumns+` FROM services ORDER BY display_order, title`)
	if err != nil {
		return nil, storeErr("list services", err)
	}
	defer rows.Close()

	areas := make([]model.PracticeArea, 0)
	for rows.Next() {
		p, err := scanPracticeArea(rows)
		if err != nil {
			return nil, storeErr("scan service", err)
		}
		areas = append(areas, p)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("iterate services", err)
	}

	return areas, nil
}

func (r *PracticeAreaRepository) FindByID(ctx context.Context, id string) (model.PracticeArea, error) {
	p, err := scanPracticeArea(r.pool.QueryRow(ctx,
		`SELECT `+practiceAreaColumns+` FROM services WHERE id = $1`, id))

	if errors.Is(err, pgx.ErrNoRows) {
		return model.PracticeArea{}, model.ErrServiceNotFound
	}
	if err != nil {
		return model.PracticeArea{}, storeErr("find service by id", err)
	}
	return p, nil
}

func (r *PracticeAreaRepository) FindBySlug(ctx context.Context, slug string) (model.PracticeArea, error) {
	p, err := scanPracticeArea(r.pool.QueryRow(ctx,
		`SELECT `+practiceAreaColumns+` FROM services WHERE slug = $1`, slug))

	if errors.Is(err, pgx.ErrNoRows) {
		return model.PracticeArea{}, model.ErrServiceNotFound
	}
	if err != nil {
		return model.PracticeArea{}, storeErr("find service by slug", err)
	}
	return p, nil
}

func (r *PracticeAreaRepository) SlugExists(ctx context.Context, slug string, excludeID string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM services WHERE slug = $1 AND id <> $2)`,
		slug, excludeID).Scan(&exists)
	if err != nil {
		return false, storeErr("check service slug", err)
	}
	return exists, nil
}

func (r *PracticeAreaRepository) Create(ctx context.Context, p model.PracticeArea) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO services (id, title, slug, summary, description, icon_url, display_order, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		p.ID, p.Title, p.Slug, p.Summary, p.Description, p.IconURL,
		p.DisplayOrder, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return storeErr("create service", err)
	}
	return nil
}

func (r *PracticeAreaRepository) Update(ctx context.Context, p model.PracticeArea) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE services
		 SET title = $2, slug = $3, summary = $4, description = $5,
		     icon_url = $6, display_order = $7, updated_at = $8
		 WHERE id = $1`,
		p.ID, p.Title, p.Slug, p.Summary, p.Description,
		p.IconURL, p.DisplayOrder, p.UpdatedAt)
	if err != nil {
		return storeErr("update service", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrServiceNotFound
	}
	return nil
}

func (r *PracticeAreaRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM services WHERE id = $1`, id)
	if err != nil {
		return storeErr("delete service", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrServiceNotFound
	}
	return nil
}
