package payment

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

// ListActive returns payment methods shown at checkout, in display order.
func (r *Repository) ListActive(ctx context.Context) ([]Method, error) {
	methods := []Method{}
	err := r.db.SelectContext(ctx, &methods, `
		SELECT id, name, number, logo_url, kind, is_active, sort_order, created_at
		FROM payment_methods
		WHERE is_active = true
		ORDER BY sort_order, name
	`)
	return methods, err
}

// GetActive loads one active method by id.
func (r *Repository) GetActive(ctx context.Context, id uuid.UUID) (*Method, error) {
	var m Method
	err := r.db.GetContext(ctx, &m, `
		SELECT id, name, number, logo_url, kind, is_active, sort_order, created_at
		FROM payment_methods
		WHERE id = $1 AND is_active = true
	`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrMethodNotFound
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}
