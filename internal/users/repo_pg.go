package users

import (
	"context"
	"database/sql"
	"errors"
)

type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Upsert(ctx context.Context, user User) error {
	const query = `
INSERT INTO users (id, email, name, created_at)
VALUES ($1, $2, $3, now())
ON CONFLICT (id) DO UPDATE SET
  email = COALESCE(EXCLUDED.email, users.email),
  name = COALESCE(EXCLUDED.name, users.name)`
	_, err := r.DB.ExecContext(ctx, query,
		user.ID,
		nullableString(user.Email),
		nullableString(user.Name),
	)
	return err
}

func (r *PGRepo) GetByID(ctx context.Context, userID string) (User, error) {
	const query = `
SELECT id, email, name, created_at
FROM users
WHERE id = $1
LIMIT 1`
	var user User
	var email, name sql.NullString
	err := r.DB.QueryRowContext(ctx, query, userID).Scan(
		&user.ID,
		&email,
		&name,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	user.Email = email.String
	if name.Valid {
		user.Name = name.String
	}
	return user, nil
}

func nullableString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

var _ Repo = (*PGRepo)(nil)
