package wishlist

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// CardType distinguishes what a wishlist card points at.
type CardType string

const (
	// CardTypeImage saves a whole game by its art card.
	CardTypeImage CardType = "image"
	// CardTypePackage saves one specific (amount, price) package.
	CardTypePackage CardType = "package"
)

// Item is a saved storefront card. ItemID is the dedup key: the game id for
// image cards, the compound package key for package cards.
type Item struct {
	ID            uuid.UUID `db:"id" json:"id"`
	UserID        uuid.UUID `db:"user_id" json:"-"`
	ItemID        string    `db:"item_id" json:"item_id"`
	CardType      CardType  `db:"card_type" json:"card_type"`
	GameID        uuid.UUID `db:"game_id" json:"game_id"`
	GameName      string    `db:"game_name" json:"game_name"`
	ImageURL      string    `db:"image_url" json:"image_url,omitempty"`
	PackageAmount string    `db:"package_amount" json:"package_amount,omitempty"`
	PackagePrice  int64     `db:"package_price" json:"package_price,omitempty"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}

// PackageItemID builds the dedup key for a package card. Packages have no
// synthetic id, so the key is derived from the compound identity; the format
// is shared with existing clients and must not change.
func PackageItemID(gameID uuid.UUID, amount string, price int64) string {
	return fmt.Sprintf("%s_%s_%d", gameID, strings.ReplaceAll(amount, " ", ""), price)
}
