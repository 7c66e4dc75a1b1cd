package catalog

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type Repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

// ListGames returns browsable games, optionally filtered by category.
// Inactive games are hidden; unavailable ones still render (grayed out in the
// storefront) so they stay listed here.
func (r *Repository) ListGames(ctx context.Context, category string) ([]Game, error) {
	games := []Game{}
	var err error

	if category != "" {
		err = r.db.SelectContext(ctx, &games, `
			SELECT id, name, category, status, input_type, logo_url, banner_url,
			       tutorial_link, description, sort_order, created_at
			FROM games
			WHERE status <> 'inactive' AND category = $1
			ORDER BY sort_order, name
		`, category)
	} else {
		err = r.db.SelectContext(ctx, &games, `
			SELECT id, name, category, status, input_type, logo_url, banner_url,
			       tutorial_link, description, sort_order, created_at
			FROM games
			WHERE status <> 'inactive'
			ORDER BY sort_order, name
		`)
	}

	return games, err
}

// GetGame loads a game together with its ordered package list.
func (r *Repository) GetGame(ctx context.Context, id uuid.UUID) (*Game, error) {
	var game Game
	err := r.db.GetContext(ctx, &game, `
		SELECT id, name, category, status, input_type, logo_url, banner_url,
		       tutorial_link, description, sort_order, created_at
		FROM games
		WHERE id = $1
	`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrGameNotFound
	}
	if err != nil {
		return nil, err
	}

	packages := []Package{}
	err = r.db.SelectContext(ctx, &packages, `
		SELECT game_id, amount, price, discount_percent, stock, sort_order
		FROM game_packages
		WHERE game_id = $1
		ORDER BY sort_order, price
	`, id)
	if err != nil {
		return nil, err
	}
	game.Packages = packages

	return &game, nil
}

// GetPackage reads one package by its compound identity. This is the
// unlocked read used for pre-checkout display; the checkout transaction
// re-reads with a row lock and never trusts this snapshot.
func (r *Repository) GetPackage(ctx context.Context, gameID uuid.UUID, amount string, price int64) (*Package, error) {
	var pkg Package
	err := r.db.GetContext(ctx, &pkg, `
		SELECT game_id, amount, price, discount_percent, stock, sort_order
		FROM game_packages
		WHERE game_id = $1 AND amount = $2 AND price = $3
	`, gameID, amount, price)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &pkg, nil
}

// UpsertGame inserts or refreshes a catalog row. Used by the import tool;
// the live catalog is otherwise managed by external admin tooling.
func (r *Repository) UpsertGame(ctx context.Context, g *Game) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO games (id, name, category, status, input_type, logo_url, banner_url, tutorial_link, description, sort_order)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			category = EXCLUDED.category,
			status = EXCLUDED.status,
			input_type = EXCLUDED.input_type,
			logo_url = EXCLUDED.logo_url,
			banner_url = EXCLUDED.banner_url,
			tutorial_link = EXCLUDED.tutorial_link,
			description = EXCLUDED.description,
			sort_order = EXCLUDED.sort_order
	`, g.ID, g.Name, g.Category, g.Status, g.InputType, g.LogoURL, g.BannerURL, g.TutorialLink, g.Description, g.SortOrder)
	return err
}

// ReplacePackages swaps a game's package list wholesale, keeping list order.
func (r *Repository) ReplacePackages(ctx context.Context, gameID uuid.UUID, packages []Package) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM game_packages WHERE game_id = $1`, gameID); err != nil {
		return err
	}

	for i, pkg := range packages {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO game_packages (game_id, amount, price, discount_percent, stock, sort_order)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, gameID, pkg.Amount, pkg.Price, pkg.DiscountPercent, pkg.Stock, i); err != nil {
			return err
		}
	}

	return tx.Commit()
}
