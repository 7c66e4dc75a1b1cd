package user

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type Repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

// Ensure provisions a local row for an externally authenticated account.
// Safe to call on every first-seen request; existing rows are untouched.
func (r *Repository) Ensure(ctx context.Context, id uuid.UUID, uid, name, email string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (id, uid, name, email, status)
		VALUES ($1, $2, $3, $4, 'active')
		ON CONFLICT (id) DO NOTHING
	`, id, uid, name, email)
	return err
}

// Get loads one account.
func (r *Repository) Get(ctx context.Context, id uuid.UUID) (*User, error) {
	var u User
	err := r.db.GetContext(ctx, &u, `
		SELECT id, uid, name, email, status, photo_url, created_at
		FROM users
		WHERE id = $1
	`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// UpdateName changes the display name.
func (r *Repository) UpdateName(ctx context.Context, id uuid.UUID, name string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE users SET name = $1 WHERE id = $2`, name, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrUserNotFound
	}
	return nil
}

// UpdatePhotoURL swaps the avatar URL, returning the previous one so the
// caller can delete the old object.
func (r *Repository) UpdatePhotoURL(ctx context.Context, id uuid.UUID, photoURL string) (string, error) {
	var previous string
	err := r.db.GetContext(ctx, &previous, `
		WITH old AS (SELECT photo_url FROM users WHERE id = $2)
		UPDATE users SET photo_url = $1
		WHERE id = $2
		RETURNING (SELECT photo_url FROM old)
	`, photoURL, id)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrUserNotFound
	}
	return previous, err
}
