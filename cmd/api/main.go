package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/topupbd/topup-api/internal/config"
	"github.com/topupbd/topup-api/internal/domain/catalog"
	"github.com/topupbd/topup-api/internal/domain/chat"
	"github.com/topupbd/topup-api/internal/domain/content"
	"github.com/topupbd/topup-api/internal/domain/moneyrequest"
	"github.com/topupbd/topup-api/internal/domain/order"
	"github.com/topupbd/topup-api/internal/domain/payment"
	"github.com/topupbd/topup-api/internal/domain/user"
	"github.com/topupbd/topup-api/internal/domain/wallet"
	"github.com/topupbd/topup-api/internal/domain/wishlist"
	"github.com/topupbd/topup-api/internal/middleware"
	"github.com/topupbd/topup-api/internal/pkg/database"
	"github.com/topupbd/topup-api/internal/pkg/jwt"
	"github.com/topupbd/topup-api/internal/pkg/logger"
	pkgresponse "github.com/topupbd/topup-api/internal/pkg/response"
	"github.com/topupbd/topup-api/internal/pkg/storage"
)

func main() {
	cfg := config.Load()

	if err := logger.Init(logger.Config{Level: cfg.LogLevel, Environment: cfg.Env}); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize logger")
	}

	log.Info().
		Str("env", cfg.Env).
		Str("port", cfg.Port).
		Msg("Starting top-up API")

	db, err := database.NewPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer database.ClosePostgres(db)

	redisClient, err := database.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer database.CloseRedis(redisClient)

	jwtService := jwt.NewService(cfg.JWTSecret, cfg.JWTAccessTTL)

	media := storage.NewService(storage.Config{
		AccountID:       cfg.R2AccountID,
		AccessKeyID:     cfg.R2AccessKeyID,
		AccessKeySecret: cfg.R2AccessKeySecret,
		BucketName:      cfg.R2BucketName,
		PublicURL:       cfg.R2PublicURL,
	})

	// ---------- Repositories ----------
	walletRepo := wallet.NewRepository(db)
	catalogRepo := catalog.NewRepository(db)
	paymentRepo := payment.NewRepository(db)
	orderRepo := order.NewRepository(db)
	moneyRequestRepo := moneyrequest.NewRepository(db)
	wishlistRepo := wishlist.NewRepository(db)
	userRepo := user.NewRepository(db)
	chatRepo := chat.NewRepository(db)
	contentRepo := content.NewRepository(db)

	// ---------- Gateway staging ----------
	stager := payment.NewStager(redisClient, cfg.GatewayStagingTTL, cfg.GatewayBkashURL, cfg.GatewayNagadURL)

	// ---------- WebSocket hub ----------
	supportHub := chat.NewHub(redisClient)
	go supportHub.Run()
	defer supportHub.Shutdown()

	// ---------- Services ----------
	walletService := wallet.NewService(walletRepo)
	orderService := order.NewService(orderRepo, catalogRepo, paymentRepo, stager)
	moneyRequestService := moneyrequest.NewService(moneyRequestRepo, paymentRepo, stager)
	userService := user.NewService(userRepo, walletService, media)
	chatService := chat.NewService(chatRepo, supportHub)

	// ---------- Handlers ----------
	walletHandler := wallet.NewHandler(walletService)
	catalogHandler := catalog.NewHandler(catalogRepo)
	paymentHandler := payment.NewHandler(paymentRepo, stager)
	orderHandler := order.NewHandler(orderService)
	moneyRequestHandler := moneyrequest.NewHandler(moneyRequestService)
	wishlistHandler := wishlist.NewHandler(wishlistRepo)
	userHandler := user.NewHandler(userService)
	chatHandler := chat.NewHandler(chatService, supportHub)
	contentHandler := content.NewHandler(contentRepo)

	authMiddleware := middleware.Auth(jwtService)

	// ---------- Router ----------
	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recover)
	r.Use(middleware.CORSHandler(cfg.AllowedOrigins))

	// WebSocket endpoint (before Compress); browsers cannot set headers on
	// WS dials, so the token rides the query string.
	r.Get("/ws", func(w http.ResponseWriter, r *http.Request) {
		token := r.URL.Query().Get("token")
		if token != "" {
			r.Header.Set("Authorization", "Bearer "+token)
		}
		authMiddleware(http.HandlerFunc(chatHandler.WebSocket)).ServeHTTP(w, r)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		pkgresponse.OK(w, map[string]string{
			"status":  "ok",
			"version": "1.0.0",
		})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(chimw.Compress(5))

		r.Mount("/games", catalogHandler.Routes())
		r.Mount("/content", contentHandler.Routes())
		r.Mount("/payments", paymentHandler.Routes(authMiddleware))
		r.Mount("/orders", orderHandler.Routes(authMiddleware))
		r.Mount("/money-requests", moneyRequestHandler.Routes(authMiddleware))
		r.Mount("/wallet", walletHandler.Routes(authMiddleware))
		r.Mount("/wishlist", wishlistHandler.Routes(authMiddleware))
		r.Mount("/users", userHandler.Routes(authMiddleware))
		r.Mount("/support", chatHandler.Routes(authMiddleware))
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited properly")
}
