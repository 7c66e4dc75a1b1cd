package catalog

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

type GameStatus string

const (
	GameStatusActive      GameStatus = "active"
	GameStatusUnavailable GameStatus = "unavailable"
	GameStatusInactive    GameStatus = "inactive"
)

// InputType declares what kind of player identifier a game expects at
// checkout.
type InputType string

const (
	InputTypeUserID       InputType = "userid"
	InputTypeMobileNumber InputType = "mobile_number"
	InputTypeEmail        InputType = "email"
	InputTypeFreeText     InputType = "free_text"
)

// Game is a catalog item with an ordered list of purchasable packages.
type Game struct {
	ID           uuid.UUID  `db:"id" json:"id"`
	Name         string     `db:"name" json:"name"`
	Category     string     `db:"category" json:"category"`
	Status       GameStatus `db:"status" json:"status"`
	InputType    InputType  `db:"input_type" json:"input_type"`
	LogoURL      string     `db:"logo_url" json:"logo_url"`
	BannerURL    string     `db:"banner_url" json:"banner_url"`
	TutorialLink string     `db:"tutorial_link" json:"tutorial_link,omitempty"`
	Description  string     `db:"description" json:"description,omitempty"`
	SortOrder    int        `db:"sort_order" json:"sort_order"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`

	Packages []Package `db:"-" json:"packages,omitempty"`
}

// Package is a purchasable (amount, price, stock) tuple under a game.
// There is no synthetic package id: a package is identified by the
// (amount, price) pair within its game, and that pair is what crosses the
// wire at checkout.
type Package struct {
	GameID          uuid.UUID `db:"game_id" json:"-"`
	Amount          string    `db:"amount" json:"amount"`
	Price           int64     `db:"price" json:"price"`
	DiscountPercent int       `db:"discount_percent" json:"discount_percent,omitempty"`
	// Stock is nil for unlimited supply, otherwise the remaining count.
	Stock     *int64 `db:"stock" json:"stock,omitempty"`
	SortOrder int    `db:"sort_order" json:"sort_order"`
}

// Unlimited reports whether the package has no stock ceiling.
func (p Package) Unlimited() bool {
	return p.Stock == nil
}

// SoldOut reports whether a limited package has run dry.
func (p Package) SoldOut() bool {
	return p.Stock != nil && *p.Stock <= 0
}

// OriginalPrice back-computes the pre-discount price for display, rounding
// up the way the storefront always has.
func (p Package) OriginalPrice() int64 {
	if p.DiscountPercent <= 0 || p.DiscountPercent >= 100 {
		return p.Price
	}
	return int64(math.Ceil(float64(p.Price) / (1 - float64(p.DiscountPercent)/100)))
}

// ParseLegacyStock maps a stock value from the legacy catalog dump onto the
// tri-state stock column. The old system stored stock as a free-form string
// and treated anything non-numeric as unlimited supply; that policy is kept,
// but it is made explicit here (NULL column) instead of re-deciding it at
// every sale.
func ParseLegacyStock(raw string) *int64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil
	}
	if n < 0 {
		n = 0
	}
	return &n
}
