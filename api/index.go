package handler

import (
	"context"
	"net/http"

	"github.com/wadjakorntonsri/biolink/pkg/adapters/handler"
	"github.com/wadjakorntonsri/biolink/pkg/adapters/repository/sqlstore"
	"github.com/wadjakorntonsri/biolink/pkg/config"
	"github.com/wadjakorntonsri/biolink/pkg/core/services"
	"github.com/wadjakorntonsri/biolink/pkg/logger"
)

var mux http.Handler

func init() {
	cfg := config.Load()
	log := logger.New(cfg.LogLevel, "json")

	// Note: On Vercel, a local sqlite file is ephemeral; use Turso or Postgres in DATABASE_URL
	repo, err := sqlstore.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		panic(err)
	}

	mux = handler.NewRouter(cfg, log, handler.Services{
		Links:       services.NewLinkService(repo),
		Collections: services.NewCollectionService(repo),
		Ordering:    services.NewOrderingService(repo, log),
		Clicks:      services.NewClickService(repo, log),
		Profiles:    services.NewProfileService(repo),
	})
}

// Handler is the entrypoint for Vercel
func Handler(w http.ResponseWriter, r *http.Request) {
	mux.ServeHTTP(w, r)
}
