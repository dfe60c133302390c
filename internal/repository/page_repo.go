package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"lawfirm-cms/internal/model"
)

type PageRepository struct {
	pool *pgxpool.Pool
}

func NewPageRepository(pool *pgxpool.Pool) *PageRepository {
	return &PageRepository{pool: pool}
}

func (r *PageRepository) Find(ctx context.Context, key string) (model.Page, error) {
	var p model.Page
	err := r.pool.QueryRow(ctx,
		`SELECT key, title, body, updated_at FROM pages WHERE key = $1`, key).
		Scan(&p.Key, &p.Title, &p.Body, &p.UpdatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return model.Page{}, model.ErrPageNotFound
	}
	if err != nil {
		return model.Page{}, storeErr("find page", err)
	}
	return p, nil
}

func (r *PageRepository) Update(ctx context.Context, p model.Page) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE pages SET title = $2, body = $3, updated_at = $4 WHERE key = $1`,
		p.Key, p.Title, p.Body, p.UpdatedAt)
	if err != nil {
		return storeErr("update page", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrPageNotFound
	}
	return nil
}
