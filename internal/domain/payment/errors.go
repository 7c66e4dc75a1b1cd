package payment

import "errors"

var (
	ErrMethodNotFound  = errors.New("payment method not found")
	ErrStagingDisabled = errors.New("gateway staging unavailable")
	ErrStagedNotFound  = errors.New("staged order not found or expired")
)
