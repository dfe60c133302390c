package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"lawfirm-cms/internal/model"
)

type InquiryRepository struct {
	pool *pgxpool.Pool
}

func NewInquiryRepository(pool *pgxpool.Pool) *InquiryRepository {
	return &InquiryRepository{pool: pool}
}

const inquiryColumns = `id, name, email, phone, subject, message, status, created_at`

func (r *InquiryRepository) Create(ctx context.Context, q model.Inquiry) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO inquiries (id, name, email, phone, subject, message, status, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		q.ID, q.Name, q.Email, q.Phone, q.Subject, q.Message, q.Status, q.CreatedAt)
	if err != nil {
		return storeErr("create inquiry", err)
	}
	return nil
}

func (r *InquiryRepository) List(ctx context.Context, status string, page int, limit int) ([]model.Inquiry, int, error) {
	var total int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM inquiries WHERE ($1 = '' OR status = $1)`, status).Scan(&total)
	if err != nil {
		return nil, 0, storeErr("count inquiries", err)
	}

	rows, err := r.pool.Query(ctx,
		`SELECT `+inquiryColumns+`
		 FROM inquiries
		 WHERE ($1 = '' OR status = $1)
		 ORDER BY created_at DESC
		 LIMIT $2 OFFSET $3`, status, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, storeErr("list inquiries", err)
	}
	defer rows.Close()

	inquiries := make([]model.Inquiry, 0)
	for rows.Next() {
		var q model.Inquiry
		if err := rows.Scan(&q.ID, &q.Name, &q.Email, &q.Phone, &q.Subject,
			&q.Message, &q.Status, &q.CreatedAt); err != nil {
			return nil, 0, storeErr("scan inquiry", err)
		}
		inquiries = append(inquiries, q)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, storeErr("iterate inquiries", err)
	}

	return inquiries, total, nil
}

func (r *InquiryRepository) FindByID(ctx context.Context, id string) (model.Inquiry, error) {
	var q model.Inquiry
	err := r.pool.QueryRow(ctx,
		`SELECT `+inquiryColumns+` FROM inquiries WHERE id = $1`, id).
		Scan(&q.ID, &q.Name, &q.Email, &q.Phone, &q.Subject, &q.Message, &q.Status, &q.CreatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return model.Inquiry{}, model.ErrInquiryNotFound
	}
	if err != nil {
		return model.Inquiry{}, storeErr("find inquiry", err)
	}
	return q, nil
}

func (r *InquiryRepository) UpdateStatus(ctx context.Context, id string, status string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE inquiries SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return storeErr("update inquiry status", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrInquiryNotFound
	}
	return nil
}

func (r *InquiryRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM inquiries WHERE id = $1`, id)
	if err != nil {
		return storeErr("delete inquiry", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrInquiryNotFound
	}
	return nil
}
