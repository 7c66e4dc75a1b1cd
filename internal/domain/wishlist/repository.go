package wishlist

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type Repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

// Add saves a card. Saving the same item twice is a no-op; the unique
// (user_id, item_id) constraint absorbs the duplicate.
func (r *Repository) Add(ctx context.Context, item *Item) error {
	item.ID = uuid.New()
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO wishlist_items (id, user_id, item_id, card_type, game_id,
		                            game_name, image_url, package_amount, package_price)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (user_id, item_id) DO NOTHING
	`, item.ID, item.UserID, item.ItemID, item.CardType, item.GameID,
		item.GameName, item.ImageURL, item.PackageAmount, item.PackagePrice)
	return err
}

// Remove drops a saved card by its dedup key. Removing an absent item is a
// no-op.
func (r *Repository) Remove(ctx context.Context, userID uuid.UUID, itemID string) error {
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM wishlist_items WHERE user_id = $1 AND item_id = $2
	`, userID, itemID)
	return err
}

// IsWishlisted reports whether the user has saved the item.
func (r *Repository) IsWishlisted(ctx context.Context, userID uuid.UUID, itemID string) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, `
		SELECT EXISTS (SELECT 1 FROM wishlist_items WHERE user_id = $1 AND item_id = $2)
	`, userID, itemID)
	return exists, err
}

// ListByUser returns the user's saved cards, newest first.
func (r *Repository) ListByUser(ctx context.Context, userID uuid.UUID) ([]Item, error) {
	items := []Item{}
	err := r.db.SelectContext(ctx, &items, `
		SELECT id, user_id, item_id, card_type, game_id, game_name,
		       image_url, package_amount, package_price, created_at
		FROM wishlist_items
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	return items, err
}
