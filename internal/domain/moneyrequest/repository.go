package moneyrequest

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type Repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

// Create stores a new Pending request. No wallet write happens here; the
// credit is applied by external admin tooling on approval.
func (r *Repository) Create(ctx context.Context, m *MoneyRequest) error {
	m.ID = uuid.New()
	m.Status = StatusPending
	return r.db.GetContext(ctx, &m.CreatedAt, `
		INSERT INTO money_requests (id, user_id, amount, payment_method,
		                            user_payment_number, transaction_id, admin_number, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at
	`, m.ID, m.UserID, m.Amount, m.PaymentMethod,
		m.UserPaymentNumber, m.TransactionID, m.AdminNumber, m.Status)
}

// ListByUser returns the user's requests newest-first.
func (r *Repository) ListByUser(ctx context.Context, userID uuid.UUID) ([]MoneyRequest, error) {
	requests := []MoneyRequest{}
	err := r.db.SelectContext(ctx, &requests, `
		SELECT id, user_id, amount, payment_method, user_payment_number,
		       transaction_id, admin_number, status, created_at
		FROM money_requests
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	return requests, err
}

// Edit updates amount, payment number and transaction id of a Pending
// request inside its edit window. The window check runs against the locked
// row.
func (r *Repository) Edit(ctx context.Context, userID, requestID uuid.UUID, amount int64, userPaymentNumber, transactionID string, now time.Time) (*MoneyRequest, error) {
	tx, err := r.db.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var m MoneyRequest
	err = tx.GetContext(ctx, &m, `
		SELECT id, user_id, amount, payment_method, user_payment_number,
		       transaction_id, admin_number, status, created_at
		FROM money_requests
		WHERE id = $1
		FOR UPDATE
	`, requestID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRequestNotFound
	}
	if err != nil {
		return nil, err
	}
	if m.UserID != userID {
		return nil, ErrRequestNotFound
	}
	if !m.Editable(now) {
		return nil, ErrEditWindowClosed
	}

	m.Amount = amount
	m.UserPaymentNumber = userPaymentNumber
	m.TransactionID = transactionID

	if _, err := tx.ExecContext(ctx, `
		UPDATE money_requests
		SET amount = $1, user_payment_number = $2, transaction_id = $3
		WHERE id = $4
	`, m.Amount, m.UserPaymentNumber, m.TransactionID, m.ID); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Delete withdraws a request. Only Pending requests can go; anything already
// decided by admin tooling stays on record.
func (r *Repository) Delete(ctx context.Context, userID, requestID uuid.UUID) error {
	tx, err := r.db.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var m MoneyRequest
	err = tx.GetContext(ctx, &m, `
		SELECT id, user_id, amount, payment_method, user_payment_number,
		       transaction_id, admin_number, status, created_at
		FROM money_requests
		WHERE id = $1
		FOR UPDATE
	`, requestID)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrRequestNotFound
	}
	if err != nil {
		return err
	}
	if m.UserID != userID {
		return ErrRequestNotFound
	}
	if !m.Deletable() {
		return ErrNotDeletable
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM money_requests WHERE id = $1`, m.ID); err != nil {
		return err
	}

	return tx.Commit()
}
