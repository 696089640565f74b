package main

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/wadjakorntonsri/biolink/pkg/adapters/repository/sqlstore"
	"github.com/wadjakorntonsri/biolink/pkg/config"
	"github.com/wadjakorntonsri/biolink/pkg/logger"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.LogLevel, cfg.LogFormat)

	if err := newRootCmd(cfg, log).ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(cfg *config.Config, log zerolog.Logger) *cobra.Command {
	root := &cobra.Command{
		Use:          "biolink",
		Short:        "maintenance commands for the biolink database",
		SilenceUsage: true,
	}

	open := func(ctx context.Context) (*sqlstore.Repository, error) {
		return sqlstore.New(ctx, cfg.DatabaseURL)
	}

	root.AddCommand(exportCmd(open))
	root.AddCommand(importCmd(open, log))
	root.AddCommand(renumberCmd(open, log))
	return root
}
