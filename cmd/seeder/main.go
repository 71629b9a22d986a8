package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/MichalMitros/catalog-seeder/internal/app"
	"github.com/MichalMitros/catalog-seeder/internal/platform/config"
	"github.com/rs/zerolog"
)

func main() {
	// cancel seeding between items on SIGINT/SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().
			Err(err).
			Msg("can't load configuration")
	}

	logger = app.NewLogger(os.Stderr, cfg.LogLevel)

	if cfg.Catalog.Source == "" {
		logger.Fatal().Msg("please provide catalog file via CATALOG_SOURCE environment variable")
	}

	application, err := app.New(ctx, cfg, &logger)
	if err != nil {
		logger.Fatal().
			Err(err).
			Msg("can't set up seeder")
	}
	defer func() {
		if err := application.Close(); err != nil {
			logger.Error().
				Err(err).
				Msg("can't close seeder")
		}
	}()

	logger.Info().
		Str("source", cfg.Catalog.Source).
		Str("adminApi", cfg.AdminAPI.URL).
		Msg("catalog seeding started")

	run, err := application.Importer.Import(ctx, cfg.Catalog.Source)
	if err != nil && run == nil {
		logger.Error().
			Err(err).
			Msg("can't seed catalog")
		_ = application.Close()
		stop()
		os.Exit(1)
	}

	if err != nil {
		logger.Warn().
			Err(err).
			Msg("seeding interrupted")
	}
}
