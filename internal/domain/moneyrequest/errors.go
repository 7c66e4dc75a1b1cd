package moneyrequest

import "errors"

var (
	ErrAmountInvalid    = errors.New("amount must be greater than zero")
	ErrFieldsRequired   = errors.New("payment number and transaction id are required")
	ErrPaymentRequired  = errors.New("a payment method must be selected")
	ErrRequestNotFound  = errors.New("money request not found")
	ErrEditWindowClosed = errors.New("request can no longer be edited")
	ErrNotDeletable     = errors.New("only pending requests can be deleted")
)
