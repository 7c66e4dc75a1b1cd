package wallet

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type Repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) EnsureWallet(ctx context.Context, userID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO user_wallets (user_id, balance)
		VALUES ($1, 0)
		ON CONFLICT (user_id) DO NOTHING
	`, userID)
	return err
}

func (r *Repository) GetBalance(ctx context.Context, userID uuid.UUID) (int64, error) {
	if err := r.EnsureWallet(ctx, userID); err != nil {
		return 0, err
	}

	var balance int64
	err := r.db.GetContext(ctx, &balance, `SELECT balance FROM user_wallets WHERE user_id = $1`, userID)
	return balance, err
}

func (r *Repository) ListTransactions(ctx context.Context, userID uuid.UUID, limit int) ([]Transaction, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	txns := []Transaction{}
	err := r.db.SelectContext(ctx, &txns, `
		SELECT id, user_id, amount, type, reference_id, created_at
		FROM wallet_transactions
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, userID, limit)
	return txns, err
}

// Lock ensures the wallet row exists and takes a row lock on it, returning
// the current balance. It must be called inside a transaction that commits or
// rolls back promptly; the checkout and cancellation flows compose it with
// their own writes so balance checks and mutations are a single atomic unit.
func Lock(ctx context.Context, tx *sqlx.Tx, userID uuid.UUID) (int64, error) {
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO user_wallets (user_id, balance)
		VALUES ($1, 0)
		ON CONFLICT (user_id) DO NOTHING
	`, userID); err != nil {
		return 0, err
	}

	var balance int64
	err := tx.GetContext(ctx, &balance, `SELECT balance FROM user_wallets WHERE user_id = $1 FOR UPDATE`, userID)
	return balance, err
}

// SetBalance writes a new balance for a wallet locked by Lock.
func SetBalance(ctx context.Context, tx *sqlx.Tx, userID uuid.UUID, balance int64) error {
	_, err := tx.ExecContext(ctx, `UPDATE user_wallets SET balance = $1, updated_at = now() WHERE user_id = $2`, balance, userID)
	return err
}

// RecordTransaction appends a ledger entry within the caller's transaction.
func RecordTransaction(ctx context.Context, tx *sqlx.Tx, userID uuid.UUID, amount int64, txType TransactionType, referenceID string) error {
	var ref interface{}
	if referenceID != "" {
		ref = referenceID
	}

	_, err := tx.ExecContext(ctx, `
		INSERT INTO wallet_transactions (user_id, amount, type, reference_id)
		VALUES ($1, $2, $3, $4)
	`, userID, amount, string(txType), ref)
	return err
}

// Credit adds funds to a wallet in its own transaction. This is the boundary
// the admin approval flow calls when a money request is accepted.
func (r *Repository) Credit(ctx context.Context, userID uuid.UUID, amount int64, referenceID string) error {
	tx, err := r.db.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return err
	}
	defer tx.Rollback()

	balance, err := Lock(ctx, tx, userID)
	if err != nil {
		return err
	}

	if err := SetBalance(ctx, tx, userID, balance+amount); err != nil {
		return err
	}

	if err := RecordTransaction(ctx, tx, userID, amount, TransactionTypeTopUp, referenceID); err != nil {
		return err
	}

	return tx.Commit()
}
