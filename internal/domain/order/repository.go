package order

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/topupbd/topup-api/internal/domain/catalog"
	"github.com/topupbd/topup-api/internal/domain/wallet"
)

type Repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

// CheckoutParams is the validated input the commit protocol runs on.
// PackageAmount and PackagePrice are the compound package identity; price is
// re-matched against the locked catalog row, never trusted from a stale page.
type CheckoutParams struct {
	UserID            uuid.UUID
	GameID            uuid.UUID
	PackageAmount     string
	PackagePrice      int64
	Quantity          int64
	PlayerID          string
	InputTypeLabel    string
	PaymentMethod     string
	Route             PaymentRoute
	UserPaymentNumber string
	TransactionRef    string
	AdminNumber       string
}

// lockedPackage is the in-transaction re-read of the selected package.
type lockedPackage struct {
	Price      int64         `db:"price"`
	Stock      sql.NullInt64 `db:"stock"`
	GameName   string        `db:"name"`
	GameStatus string        `db:"status"`
}

// Checkout runs the atomic commit protocol: re-read the package under a row
// lock, check stock, debit the wallet (wallet route), decrement stock and
// create the order, all in one transaction. Any failure aborts the whole
// thing; no partial write is ever visible. Lock collisions between
// concurrent buyers are retried once, then surfaced as ErrTxConflict.
func (r *Repository) Checkout(ctx context.Context, p CheckoutParams) (*Order, error) {
	// The bound keeps the price * quantity total well inside int64; an
	// out-of-range quantity must never reach the multiplication below.
	if p.Quantity < 1 || p.Quantity > MaxQuantity {
		return nil, ErrQuantityInvalid
	}

	var created *Order
	var err error
	for attempt := 0; attempt < 2; attempt++ {
		created, err = r.checkoutOnce(ctx, p)
		if err == nil || !isRetryable(err) {
			return created, err
		}
	}
	if isRetryable(err) {
		return nil, ErrTxConflict
	}
	return created, err
}

func (r *Repository) checkoutOnce(ctx context.Context, p CheckoutParams) (*Order, error) {
	tx, err := r.db.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	// 1. Re-read the package by its compound identity, locked. A repriced or
	// removed package simply stops matching: stale selections fail here.
	var pkg lockedPackage
	err = tx.GetContext(ctx, &pkg, `
		SELECT p.price, p.stock, g.name, g.status
		FROM game_packages p
		JOIN games g ON g.id = p.game_id
		WHERE p.game_id = $1 AND p.amount = $2 AND p.price = $3
		FOR UPDATE OF p
	`, p.GameID, p.PackageAmount, p.PackagePrice)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPackageNotFound
	}
	if err != nil {
		return nil, err
	}
	if catalog.GameStatus(pkg.GameStatus) != catalog.GameStatusActive {
		return nil, ErrGameUnavailable
	}

	// 2. Stock check. NULL stock means unlimited supply.
	if pkg.Stock.Valid && pkg.Stock.Int64 < p.Quantity {
		return nil, fmt.Errorf("%w: only %d left", ErrInsufficientStock, pkg.Stock.Int64)
	}

	// Total is computed from the locked row, not the client's quote.
	total := pkg.Price * p.Quantity

	orderID := uuid.New()

	// 3. Wallet route: balance check and debit under the same lock set.
	if p.Route == RouteWallet {
		balance, err := wallet.Lock(ctx, tx, p.UserID)
		if err != nil {
			return nil, err
		}
		if balance < total {
			return nil, fmt.Errorf("%w: have %d, need %d", ErrInsufficientBalance, balance, total)
		}
		if err := wallet.SetBalance(ctx, tx, p.UserID, balance-total); err != nil {
			return nil, err
		}
		if err := wallet.RecordTransaction(ctx, tx, p.UserID, -total, wallet.TransactionTypePurchase, orderID.String()); err != nil {
			return nil, err
		}
	}

	// 4. Decrement stock on the locked row. The predicate re-checks the
	// count so the decrement can never drive stock negative.
	if pkg.Stock.Valid {
		res, err := tx.ExecContext(ctx, `
			UPDATE game_packages
			SET stock = stock - $1
			WHERE game_id = $2 AND amount = $3 AND price = $4 AND stock >= $1
		`, p.Quantity, p.GameID, p.PackageAmount, p.PackagePrice)
		if err != nil {
			return nil, err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return nil, err
		}
		if n != 1 {
			return nil, fmt.Errorf("%w: only %d left", ErrInsufficientStock, pkg.Stock.Int64)
		}
	}

	// 5. Create the order snapshot.
	o := &Order{
		ID:             orderID,
		UserID:         p.UserID,
		GameName:       pkg.GameName,
		PackageAmount:  p.PackageAmount,
		Quantity:       p.Quantity,
		Price:          total,
		PlayerID:       p.PlayerID,
		InputTypeLabel: p.InputTypeLabel,
		PaymentMethod:  p.PaymentMethod,
		Status:         StatusPending,
	}
	switch p.Route {
	case RouteWallet:
		o.TransactionID = WalletPayReference
		o.UserPaymentNumber = "N/A"
		o.AdminNumber = "N/A"
	case RouteManual:
		o.UserPaymentNumber = p.UserPaymentNumber
		o.TransactionID = p.TransactionRef
		o.AdminNumber = p.AdminNumber
	}

	err = tx.GetContext(ctx, &o.CreatedAt, `
		INSERT INTO orders (id, user_id, game_name, package_amount, quantity, price,
		                    player_id, input_type_label, payment_method,
		                    user_payment_number, transaction_id, admin_number, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING created_at
	`, o.ID, o.UserID, o.GameName, o.PackageAmount, o.Quantity, o.Price,
		o.PlayerID, o.InputTypeLabel, o.PaymentMethod,
		o.UserPaymentNumber, o.TransactionID, o.AdminNumber, o.Status)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return o, nil
}

// Cancel transitions an order to Canceled, refunding the full recorded price
// to the wallet when the order was wallet-paid. Order lock, balance credit
// and status write are one transaction, so a crash or a concurrent second
// cancel can never double-refund.
func (r *Repository) Cancel(ctx context.Context, userID, orderID uuid.UUID) (*Order, error) {
	tx, err := r.db.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var o Order
	err = tx.GetContext(ctx, &o, `
		SELECT id, user_id, game_name, package_amount, quantity, price, player_id,
		       input_type_label, payment_method, user_payment_number, transaction_id,
		       admin_number, admin_note, status, created_at
		FROM orders
		WHERE id = $1
		FOR UPDATE
	`, orderID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	if o.UserID != userID {
		return nil, ErrOrderNotFound
	}
	if !o.Cancelable() {
		return nil, ErrNotCancelable
	}

	if o.PaymentMethod == "Wallet" || o.PaymentMethod == "My Wallet" {
		balance, err := wallet.Lock(ctx, tx, o.UserID)
		if err != nil {
			return nil, err
		}
		if err := wallet.SetBalance(ctx, tx, o.UserID, balance+o.Price); err != nil {
			return nil, err
		}
		if err := wallet.RecordTransaction(ctx, tx, o.UserID, o.Price, wallet.TransactionTypeRefund, o.ID.String()); err != nil {
			return nil, err
		}
	}

	if _, err := tx.ExecContext(ctx, `UPDATE orders SET status = $1 WHERE id = $2`, StatusCanceled, o.ID); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	o.Status = StatusCanceled
	return &o, nil
}

// Edit updates the self-service fields of a Pending order inside its edit
// window. The window check runs against the locked row so a stale client
// cannot slip an edit past the boundary.
func (r *Repository) Edit(ctx context.Context, userID, orderID uuid.UUID, playerID, transactionRef string, now time.Time) (*Order, error) {
	tx, err := r.db.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var o Order
	err = tx.GetContext(ctx, &o, `
		SELECT id, user_id, game_name, package_amount, quantity, price, player_id,
		       input_type_label, payment_method, user_payment_number, transaction_id,
		       admin_number, admin_note, status, created_at
		FROM orders
		WHERE id = $1
		FOR UPDATE
	`, orderID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	if o.UserID != userID {
		return nil, ErrOrderNotFound
	}
	if !o.Editable(now) {
		return nil, ErrEditWindowClosed
	}
	if transactionRef != "" && o.WalletPaid() {
		return nil, ErrWalletRefImmutable
	}

	o.PlayerID = playerID
	if transactionRef != "" {
		o.TransactionID = transactionRef
	}

	if _, err := tx.ExecContext(ctx, `
		UPDATE orders SET player_id = $1, transaction_id = $2 WHERE id = $3
	`, o.PlayerID, o.TransactionID, o.ID); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return &o, nil
}

// GetByID loads one order owned by the user.
func (r *Repository) GetByID(ctx context.Context, userID, orderID uuid.UUID) (*Order, error) {
	var o Order
	err := r.db.GetContext(ctx, &o, `
		SELECT id, user_id, game_name, package_amount, quantity, price, player_id,
		       input_type_label, payment_method, user_payment_number, transaction_id,
		       admin_number, admin_note, status, created_at
		FROM orders
		WHERE id = $1 AND user_id = $2
	`, orderID, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// ListByUser returns the user's orders newest-first.
func (r *Repository) ListByUser(ctx context.Context, userID uuid.UUID) ([]Order, error) {
	orders := []Order{}
	err := r.db.SelectContext(ctx, &orders, `
		SELECT id, user_id, game_name, package_amount, quantity, price, player_id,
		       input_type_label, payment_method, user_payment_number, transaction_id,
		       admin_number, admin_note, status, created_at
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	return orders, err
}

// isRetryable reports whether the error is a transient lock collision
// (serialization failure or deadlock) worth one more attempt.
func isRetryable(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "40001" || pqErr.Code == "40P01"
	}
	return false
}
