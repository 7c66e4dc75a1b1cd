package order

import (
	"time"

	"github.com/google/uuid"
)

// Status values cross the boundary to external admin tooling and must stay
// bit-exact.
type Status string

const (
	StatusPending   Status = "Pending"
	StatusApproved  Status = "Approved"
	StatusCompleted Status = "Completed"
	StatusCanceled  Status = "Canceled"
	StatusRejected  Status = "Rejected"
)

// PaymentRoute selects how a checkout is settled.
type PaymentRoute string

const (
	RouteWallet  PaymentRoute = "wallet"
	RouteManual  PaymentRoute = "manual"
	RouteGateway PaymentRoute = "gateway"
)

// WalletPayReference is the transaction-reference sentinel stored on
// wallet-paid orders. External admin tooling keys on it; never change it.
const WalletPayReference = "WALLET_PAY"

// EditWindow is how long after creation a Pending order (or money request)
// stays self-service editable. The boundary is exclusive: an edit at exactly
// creation+EditWindow is rejected.
const EditWindow = 3 * time.Minute

// Order snapshots the purchase at commit time. Game and package fields are
// copies, not references: repricing the catalog later must not rewrite
// history.
type Order struct {
	ID                uuid.UUID `db:"id" json:"id"`
	UserID            uuid.UUID `db:"user_id" json:"user_id"`
	GameName          string    `db:"game_name" json:"game"`
	PackageAmount     string    `db:"package_amount" json:"package"`
	Quantity          int64     `db:"quantity" json:"quantity"`
	Price             int64     `db:"price" json:"price"`
	PlayerID          string    `db:"player_id" json:"player_id"`
	InputTypeLabel    string    `db:"input_type_label" json:"input_type_label"`
	PaymentMethod     string    `db:"payment_method" json:"payment_method"`
	UserPaymentNumber string    `db:"user_payment_number" json:"user_payment_number,omitempty"`
	TransactionID     string    `db:"transaction_id" json:"transaction_id,omitempty"`
	AdminNumber       string    `db:"admin_number" json:"admin_number,omitempty"`
	AdminNote         string    `db:"admin_note" json:"admin_note,omitempty"`
	Status            Status    `db:"status" json:"status"`
	CreatedAt         time.Time `db:"created_at" json:"created_at"`
}

// WalletPaid reports whether the order was settled from the stored balance.
func (o *Order) WalletPaid() bool {
	return o.TransactionID == WalletPayReference
}

// Cancelable reports whether self-service cancellation is still allowed.
func (o *Order) Cancelable() bool {
	return o.Status == StatusPending || o.Status == StatusApproved
}

// Editable reports whether the order is inside its self-service edit window.
func (o *Order) Editable(now time.Time) bool {
	return o.Status == StatusPending && now.Sub(o.CreatedAt) < EditWindow
}
