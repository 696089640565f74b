package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/wadjakorntonsri/biolink/pkg/adapters/handler"
	"github.com/wadjakorntonsri/biolink/pkg/adapters/repository/sqlstore"
	"github.com/wadjakorntonsri/biolink/pkg/config"
	"github.com/wadjakorntonsri/biolink/pkg/core/services"
	"github.com/wadjakorntonsri/biolink/pkg/logger"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize Repository
	repo, err := sqlstore.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer repo.Close()

	// Initialize Router
	mux := handler.NewRouter(cfg, log, handler.Services{
		Links:       services.NewLinkService(repo),
		Collections: services.NewCollectionService(repo),
		Ordering:    services.NewOrderingService(repo, log),
		Clicks:      services.NewClickService(repo, log),
		Profiles:    services.NewProfileService(repo),
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("graceful shutdown failed")
		}
	}()

	log.Info().Str("port", cfg.Port).Str("env", cfg.AppEnv).Msg("server starting")
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("server stopped")
	}
	log.Info().Msg("server stopped")
}
