package users

import (
	"context"
	"database/sql"
	"errors"
)

type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) FindOrCreate(ctx context.Context, user User) (User, error) {
	const query = `
INSERT INTO users (id, email, name, created_at, last_seen_at)
VALUES ($1, $2, $3, now(), now())
ON CONFLICT (email) DO UPDATE SET
  last_seen_at = now()
RETURNING id, email, name, created_at, last_seen_at`
	var out User
	err := r.DB.QueryRowContext(ctx, query, user.ID, user.Email, user.Name).Scan(
		&out.ID,
		&out.Email,
		&out.Name,
		&out.CreatedAt,
		&out.LastSeenAt,
	)
	if err != nil {
		return User{}, err
	}
	return out, nil
}

func (r *PGRepo) GetByID(ctx context.Context, userID string) (User, error) {
	const query = `
SELECT id, email, name, created_at, last_seen_at
FROM users
WHERE id = $1
LIMIT 1`
	var user User
	err := r.DB.QueryRowContext(ctx, query, userID).Scan(
		&user.ID,
		&user.Email,
		&user.Name,
		&user.CreatedAt,
		&user.LastSeenAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	return user, nil
}
