package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"lawfirm-cms/internal/model"
)

type SubscriberRepository struct {
	pool *pgxpool.Pool
}

func NewSubscriberRepository(pool *pgxpool.Pool) *SubscriberRepository {
	return &SubscriberRepository{pool: pool}
}

// Subscribe inserts the email or reactivates a previous subscription.
// Returns the stored row either way, so repeat subscriptions are idempotent.
func (r *SubscriberRepository) Subscribe(ctx context.Context, s model.Subscriber) (model.Subscriber, error) {
	var out model.Subscriber
	err := r.pool.QueryRow(ctx,
		`INSERT INTO subscribers (id, email, active, created_at)
		 VALUES ($1, lower($2), true, $3)
		 ON CONFLICT (email) DO UPDATE SET active = true
		 RETURNING id, email, active, created_at`,
		s.ID, s.Email, s.CreatedAt).
		Scan(&out.ID, &out.Email, &out.Active, &out.CreatedAt)
	if err != nil {
		return model.Subscriber{}, storeErr("subscribe", err)
	}
	return out, nil
}

func (r *SubscriberRepository) List(ctx context.Context, page int, limit int) ([]model.Subscriber, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM subscribers`).Scan(&total); err != nil {
		return nil, 0, storeErr("count subscribers", err)
	}

	rows, err := r.pool.Query(ctx,
		`SELECT id, email, active, created_at
		 FROM subscribers
		 ORDER BY created_at DESC
		 LIMIT $1 OFFSET $2`, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, storeErr("list subscribers", err)
	}
	defer rows.Close()

	subscribers := make([]model.Subscriber, 0)
	for rows.Next() {
		var s model.Subscriber
		if err := rows.Scan(&s.ID, &s.Email, &s.Active, &s.CreatedAt); err != nil {
			return nil, 0, storeErr("scan subscriber", err)
		}
		subscribers = append(subscribers, s)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, storeErr("iterate subscribers", err)
	}

	return subscribers, total, nil
}

func (r *SubscriberRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM subscribers WHERE id = $1`, id)
	if err != nil {
		return storeErr("delete subscriber", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrSubscriberNotFound
	}
	return nil
}
