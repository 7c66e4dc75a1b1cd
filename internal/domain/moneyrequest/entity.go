package moneyrequest

import (
	"time"

	"github.com/google/uuid"
)

// Status values are shared with external admin tooling and must stay
// bit-exact.
type Status string

const (
	StatusPending  Status = "Pending"
	StatusApproved Status = "Approved"
	StatusRejected Status = "Rejected"
)

// EditWindow is how long after creation a Pending request stays self-service
// editable. Exclusive boundary, same as order edits.
const EditWindow = 3 * time.Minute

// MoneyRequest is a buyer's claim to have sent money for a wallet top-up.
// The wallet is only credited when external admin tooling approves it.
type MoneyRequest struct {
	ID                uuid.UUID `db:"id" json:"id"`
	UserID            uuid.UUID `db:"user_id" json:"user_id"`
	Amount            int64     `db:"amount" json:"amount"`
	PaymentMethod     string    `db:"payment_method" json:"payment_method"`
	UserPaymentNumber string    `db:"user_payment_number" json:"user_payment_number"`
	TransactionID     string    `db:"transaction_id" json:"transaction_id"`
	AdminNumber       string    `db:"admin_number" json:"admin_number,omitempty"`
	Status            Status    `db:"status" json:"status"`
	CreatedAt         time.Time `db:"created_at" json:"created_at"`
}

// Editable reports whether the request is inside its self-service edit
// window.
func (m *MoneyRequest) Editable(now time.Time) bool {
	return m.Status == StatusPending && now.Sub(m.CreatedAt) < EditWindow
}

// Deletable reports whether the user may still withdraw the request.
func (m *MoneyRequest) Deletable() bool {
	return m.Status == StatusPending
}
