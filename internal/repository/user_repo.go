package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"lawfirm-cms/internal/model"
)

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

const userColumns = `id, username, password_hash, role, login_attempts, locked_until, last_login, created_at, updated_at`

func scanUser(row pgx.Row) (model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Role,
		&u.LoginAttempts, &u.LockedUntil, &u.LastLogin, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (model.User, error) {
	u, err := scanUser(r.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id))

	if errors.Is(err, pgx.ErrNoRows) {
		return model.User{}, model.ErrUserNotFound
	}
	if err != nil {
		return model.User{}, storeErr("find user by id", err)
	}
	return u, nil
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (model.User, error) {
	u, err := scanUser(r.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE lower(username) = lower($1)`,
		strings.TrimSpace(username)))

	if errors.Is(err, pgx.ErrNoRows) {
		return model.User{}, model.ErrUserNotFound
	}
	if err != nil {
		return model.User{}, storeErr("find user by username", err)
	}
	return u, nil
}

// Upsert creates the user or replaces its password hash and role. Used by
// the out-of-band seeding step; the API never creates users.
func (r *UserRepository) Upsert(ctx context.Context, u model.User) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO users (id, username, password_hash, role, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (username) DO UPDATE
		 SET password_hash = EXCLUDED.password_hash,
		     role = EXCLUDED.role,
		     login_attempts = 0,
		     locked_until = NULL,
		     updated_at = EXCLUDED.updated_at`,
		u.ID, u.Username, u.PasswordHash, u.Role, u.CreatedAt, u.UpdatedAt)
	if err != nil {
		return storeErr("upsert user", err)
	}
	return nil
}

// RecordFailure bumps the persisted failed-attempt counter and returns the
// new value so the caller can decide whether to lock the account.
func (r *UserRepository) RecordFailure(ctx context.Context, userID string) (int, error) {
	var attempts int
	err := r.pool.QueryRow(ctx,
		`UPDATE users
		 SET login_attempts = login_attempts + 1, updated_at = $2
		 WHERE id = $1
		 RETURNING login_attempts`,
		userID, time.Now().UTC()).Scan(&attempts)
	if err != nil {
		return 0, storeErr("record failed attempt", err)
	}
	return attempts, nil
}

func (r *UserRepository) LockAccount(ctx context.Context, userID string, until time.Time) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE users SET locked_until = $2, updated_at = $3 WHERE id = $1`,
		userID, until, time.Now().UTC())
	if err != nil {
		return storeErr("lock account", err)
	}
	return nil
}

// RecordSuccess stamps last_login and clears the lockout bookkeeping in one
// statement; login_attempts resets whenever last_login is updated.
func (r *UserRepository) RecordSuccess(ctx context.Context, userID string, at time.Time) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE users
		 SET login_attempts = 0, locked_until = NULL, last_login = $2, updated_at = $2
		 WHERE id = $1`,
		userID, at)
	if err != nil {
		return storeErr("record successful login", err)
	}
	return nil
}
