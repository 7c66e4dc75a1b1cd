package payment

import (
	"time"

	"github.com/google/uuid"
)

type Kind string

const (
	// KindManual methods are off-band transfers verified later by an admin.
	KindManual Kind = "manual"
	// KindGateway methods redirect to a hosted payment page; settlement
	// happens outside this service.
	KindGateway Kind = "gateway"
)

// Method is an admin-managed payment option shown at checkout.
type Method struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Number    string    `db:"number" json:"number"`
	LogoURL   string    `db:"logo_url" json:"logo_url"`
	Kind      Kind      `db:"kind" json:"kind"`
	IsActive  bool      `db:"is_active" json:"-"`
	SortOrder int       `db:"sort_order" json:"sort_order"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// WalletMethodName is the reserved method name for paying from the stored
// balance. It never lives in the payment_methods table.
const WalletMethodName = "My Wallet"
