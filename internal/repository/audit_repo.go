package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"lawfirm-cms/internal/model"
)

type AuditRepository struct {
	pool *pgxpool.Pool
}

func NewAuditRepository(pool *pgxpool.Pool) *AuditRepository {
	return &AuditRepository{pool: pool}
}

func (r *AuditRepository) Insert(ctx context.Context, e model.AuditEntry) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO audit_entries (id, actor, action, entity, entity_id, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		e.ID, e.Actor, e.Action, e.Entity, e.EntityID, e.CreatedAt)
	if err != nil {
		return storeErr("insert audit entry", err)
	}
	return nil
}

func (r *AuditRepository) List(ctx context.Context, page int, limit int) ([]model.AuditEntry, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM audit_entries`).Scan(&total); err != nil {
		return nil, 0, storeErr("count audit entries", err)
	}

	rows, err := r.pool.Query(ctx,
		`SELECT id, actor, action, entity, entity_id, created_at
		 FROM audit_entries
		 ORDER BY created_at DESC
		 LIMIT $1 OFFSET $2`, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, storeErr("list audit entries", err)
	}
	defer rows.Close()

	entries := make([]model.AuditEntry, 0)
	for rows.Next() {
		var e model.AuditEntry
		if err := rows.Scan(&e.ID, &e.Actor, &e.Action, &e.Entity, &e.EntityID, &e.CreatedAt); err != nil {
			return nil, 0, storeErr("scan audit entry", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, storeErr("iterate audit entries", err)
	}

	return entries, total, nil
}
