package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"lawfirm-cms/internal/model"
)

type BlogRepository struct {
	pool *pgxpool.Pool
}

func NewBlogRepository(pool *pgxpool.Pool) *BlogRepository {
	return &BlogRepository{pool: pool}
}

const blogColumns = `id, title, slug, excerpt, content, category, image_url, published, views, created_at, updated_at`

func scanBlog(row pgx.Row) (model.Blog, error) {
	var b model.Blog
	err := row.Scan(&b.ID, &b.Title, &b.Slug, &b.Excerpt, &b.Content, &b.Category,
		&b.ImageURL, &b.Published, &b.Views, &b.CreatedAt, &b.UpdatedAt)
	return b, err
}

func (r *BlogRepository) List(ctx context.Context, filter model.BlogFilter) ([]model.Blog, int, error) {
	where := `WHERE ($1 = '' OR category = $1) AND (NOT $2::bool OR published)`
	args := []any{filter.Category, filter.PublishedOnly}

	var total int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM blogs `+where, args...).Scan(&total)
	if err != nil {
		return nil, 0, storeErr("count blogs", err)
	}

	offset := (filter.Page - 1) * filter.Limit
	rows, err := r.pool.Query(ctx,
		fmt.Sprintf(`SELECT %s FROM blogs %s ORDER BY created_at DESC LIMIT $3 OFFSET $4`, blogColumns, where),
		filter.Category, filter.PublishedOnly, filter.Limit, offset)
	if err != nil {
		return nil, 0, storeErr("list blogs", err)
	}
	defer rows.Close()

	blogs := make([]model.Blog, 0)
	for rows.Next() {
		b, err := scanBlog(rows)
		if err != nil {
			return nil, 0, storeErr("scan blog", err)
		}
		blogs = append(blogs, b)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, storeErr("iterate blogs", err)
	}

	return blogs, total, nil
}

func (r *BlogRepository) FindByID(ctx context.Context, id string) (model.Blog, error) {
	b, err := scanBlog(r.pool.QueryRow(ctx,
		`SELECT `+blogColumns+` FROM blogs WHERE id = $1`, id))

	if errors.Is(err, pgx.ErrNoRows) {
		return model.Blog{}, model.ErrBlogNotFound
	}
	if err != nil {
		return model.Blog{}, storeErr("find blog by id", err)
	}
	return b, nil
}

func (r *BlogRepository) FindBySlug(ctx context.Context, slug string) (model.Blog, error) {
	b, err := scanBlog(r.pool.QueryRow(ctx,
		`SELECT `+blogColumns+` FROM blogs WHERE slug = $1`, slug))

	if errors.Is(err, pgx.ErrNoRows) {
		return model.Blog{}, model.ErrBlogNotFound
	}
	if err != nil {
		return model.Blog{}, storeErr("find blog by slug", err)
	}
	return b, nil
}

func (r *BlogRepository) SlugExists(ctx context.Context, slug string, excludeID string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM blogs WHERE slug = $1 AND id <> $2)`,
		slug, excludeID).Scan(&exists)
	if err != nil {
		return false, storeErr("check blog slug", err)
	}
	return exists, nil
}

func (r *BlogRepository) Create(ctx context.Context, b model.Blog) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO blogs (id, title, slug, excerpt, content, category, image_url, published, views, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		b.ID, b.Title, b.Slug, b.Excerpt, b.Content, b.Category, b.ImageURL,
		b.Published, b.Views, b.CreatedAt, b.UpdatedAt)
	if err != nil {
		return storeErr("create blog", err)
	}
	return nil
}

func (r *BlogRepository) Update(ctx context.Context, b model.Blog) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE blogs
		 SET title = $2, slug = $3, excerpt = $4, content = $5, category = $6,
		     image_url = $7, published = $8, updated_at = $9
		 WHERE id = $1`,
		b.ID, b.Title, b.Slug, b.Excerpt, b.Content, b.Category,
		b.ImageURL, b.Published, b.UpdatedAt)
	if err != nil {
		return storeErr("update blog", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrBlogNotFound
	}
	return nil
}

func (r *BlogRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM blogs WHERE id = $1`, id)
	if err != nil {
		return storeErr("delete blog", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrBlogNotFound
	}
	return nil
}

func (r *BlogRepository) IncrementViews(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE blogs SET views = views + 1 WHERE id = $1`, id)
	if err != nil {
		return storeErr("increment blog views", err)
	}
	return nil
}
