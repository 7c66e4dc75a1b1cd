package order

import "errors"

var (
	// Pre-store validation failures. Reported before any store call.
	ErrPlayerIDRequired     = errors.New("player identifier is required")
	ErrPlayerIDInvalid      = errors.New("player identifier does not match the expected format")
	ErrPackageRequired      = errors.New("a package must be selected")
	ErrPaymentRequired      = errors.New("a payment method must be selected")
	ErrQuantityInvalid      = errors.New("quantity must be between 1 and 100")
	ErrManualFieldsRequired = errors.New("payment number and transaction id are required")

	// Stale-state conflicts discovered on the locked re-read.
	ErrGameUnavailable   = errors.New("this product is no longer available")
	ErrPackageNotFound   = errors.New("this package is no longer available")
	ErrInsufficientStock = errors.New("not enough stock available")

	// Resource insufficiency.
	ErrInsufficientBalance = errors.New("insufficient wallet balance")

	// Lifecycle failures.
	ErrOrderNotFound      = errors.New("order not found")
	ErrNotCancelable      = errors.New("order can no longer be canceled")
	ErrEditWindowClosed   = errors.New("order can no longer be edited")
	ErrWalletRefImmutable = errors.New("payment reference of a wallet-paid order cannot be changed")

	// ErrTxConflict marks a serialization/deadlock collision between
	// concurrent buyers after internal retry; callers surface it as a
	// retryable failure, never as success.
	ErrTxConflict = errors.New("transaction conflict, please try again")
)
