package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/maelvns/featherpost-be/internal/api"
	"github.com/maelvns/featherpost-be/internal/auth"
	"github.com/maelvns/featherpost-be/internal/blob"
	"github.com/maelvns/featherpost-be/internal/config"
	"github.com/maelvns/featherpost-be/internal/database"
	"github.com/maelvns/featherpost-be/internal/imagecheck"
	"github.com/maelvns/featherpost-be/internal/janitor"
	"github.com/maelvns/featherpost-be/internal/logger"
	"github.com/maelvns/featherpost-be/internal/services"
	"github.com/maelvns/featherpost-be/internal/store/sqlstore"
	"github.com/maelvns/featherpost-be/internal/ws"
)

func main() {
	logger.Init()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET must be set")
	}

	// Set up database
	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("Failed to apply database migrations")
	}

	st := sqlstore.New(db)

	// Set up collaborators
	blobs, err := blob.NewS3Store(context.Background(), cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize blob storage")
	}
	images := imagecheck.New()
	tokens := auth.NewTokenService(cfg.JWTSecret)
	resolver := auth.NewResolver(tokens, st)

	// Set up the live feed hub
	hub := ws.NewHub()
	go hub.Run()

	// Set up services
	userService := services.NewUserService(st, blobs, images, tokens)
	messageService := services.NewMessageService(st, hub)

	// Set up and run the background orphan sweeper
	jan, err := janitor.New(st, cfg.JanitorSchedule)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize janitor")
	}
	jan.Start()

	// Set up router
	router := api.NewRouter(resolver, st, userService, messageService, hub)

	// Set up server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.ServerPort),
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		log.Info().Int("port", cfg.ServerPort).Msg("Server starting")
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("ListenAndServe()")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	jan.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exiting")
}
