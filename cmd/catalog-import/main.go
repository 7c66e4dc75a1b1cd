package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/topupbd/topup-api/internal/config"
	"github.com/topupbd/topup-api/internal/domain/catalog"
	"github.com/topupbd/topup-api/internal/pkg/database"
	"github.com/topupbd/topup-api/internal/pkg/logger"
)

// legacyGame mirrors one document of the old catalog export. Stock comes in
// as a free-form string; prices arrive as integers already.
type legacyGame struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Category     string `json:"category"`
	Status       string `json:"status"`
	InputType    string `json:"input_type"`
	LogoURL      string `json:"logo_url"`
	BannerURL    string `json:"banner_url"`
	TutorialLink string `json:"tutorial_link"`
	Description  string `json:"description"`
	SortOrder    int    `json:"sort_order"`

	Packages []legacyPackage `json:"packages"`
}

type legacyPackage struct {
	Amount          string `json:"amount"`
	Price           int64  `json:"price"`
	DiscountPercent int    `json:"discount_percent"`
	Stock           string `json:"stock"`
}

func main() {
	var (
		file   = flag.String("file", "", "path to the legacy catalog JSON export")
		dryRun = flag.Bool("dry-run", false, "parse and report without writing")
	)
	flag.Parse()

	cfg := config.Load()
	if err := logger.Init(logger.Config{Level: cfg.LogLevel, Environment: cfg.Env}); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize logger")
	}

	if *file == "" {
		log.Fatal().Msg("usage: catalog-import -file <export.json> [-dry-run]")
	}

	data, err := os.ReadFile(*file)
	if err != nil {
		log.Fatal().Err(err).Str("file", *file).Msg("Failed to read export")
	}

	var games []legacyGame
	if err := json.Unmarshal(data, &games); err != nil {
		log.Fatal().Err(err).Msg("Failed to parse export")
	}

	db, err := database.NewPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer database.ClosePostgres(db)

	repo := catalog.NewRepository(db)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	imported := 0
	for _, lg := range games {
		id, err := uuid.Parse(lg.ID)
		if err != nil {
			// Old exports carry provider-generated string ids; derive a
			// stable UUID so re-runs hit the same row.
			id = uuid.NewSHA1(uuid.NameSpaceOID, []byte(lg.ID))
		}

		status := catalog.GameStatus(lg.Status)
		switch status {
		case catalog.GameStatusActive, catalog.GameStatusUnavailable, catalog.GameStatusInactive:
		default:
			status = catalog.GameStatusActive
		}

		g := &catalog.Game{
			ID:           id,
			Name:         lg.Name,
			Category:     lg.Category,
			Status:       status,
			InputType:    catalog.InputType(lg.InputType),
			LogoURL:      lg.LogoURL,
			BannerURL:    lg.BannerURL,
			TutorialLink: lg.TutorialLink,
			Description:  lg.Description,
			SortOrder:    lg.SortOrder,
		}

		packages := make([]catalog.Package, 0, len(lg.Packages))
		for _, lp := range lg.Packages {
			packages = append(packages, catalog.Package{
				GameID:          id,
				Amount:          lp.Amount,
				Price:           lp.Price,
				DiscountPercent: lp.DiscountPercent,
				Stock:           catalog.ParseLegacyStock(lp.Stock),
			})
		}

		if *dryRun {
			log.Info().Str("game", g.Name).Int("packages", len(packages)).Msg("would import")
			continue
		}

		if err := repo.UpsertGame(ctx, g); err != nil {
			log.Fatal().Err(err).Str("game", g.Name).Msg("Failed to upsert game")
		}
		if err := repo.ReplacePackages(ctx, id, packages); err != nil {
			log.Fatal().Err(err).Str("game", g.Name).Msg("Failed to replace packages")
		}
		imported++
	}

	log.Info().Int("games", imported).Msg("Catalog import complete")
}
