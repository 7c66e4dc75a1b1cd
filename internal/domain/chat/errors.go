package chat

import "errors"

var (
	ErrBodyRequired = errors.New("message body is required")
	ErrBodyTooLong  = errors.New("message body is too long")
)
