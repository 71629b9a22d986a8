package app

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"net/http"

	"github.com/MichalMitros/catalog-seeder/internal/assets"
	"github.com/MichalMitros/catalog-seeder/internal/fetcher"
	"github.com/MichalMitros/catalog-seeder/internal/graphql"
	"github.com/MichalMitros/catalog-seeder/internal/importer"
	"github.com/MichalMitros/catalog-seeder/internal/platform/config"
	"github.com/MichalMitros/catalog-seeder/internal/platform/storage"
	"github.com/MichalMitros/catalog-seeder/internal/seeder"
	"github.com/MichalMitros/catalog-seeder/internal/vendure"
	"github.com/rs/zerolog"

	_ "github.com/lib/pq"
)

// UserAgent is user agent header value used in all outgoing requests.
const UserAgent = "catalog-seeder/0.1.0"

// NewLogger returns JSON logger writing to w with level parsed from level.
// Unknown levels fall back to info.
func NewLogger(w io.Writer, level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	return zerolog.New(w).Level(lvl).With().Timestamp().Logger()
}

// App is importer wired with its dependencies.
type App struct {
	Importer *importer.Importer
	db       *sql.DB
}

// New wires importer with Admin API client, fetcher, asset pipeline and run ledger.
// Postgres ledger is used when database URL is configured, otherwise runs are not stored.
func New(ctx context.Context, cfg *config.Config, logger *zerolog.Logger) (*App, error) {
	app := &App{}

	var ledger seeder.Storage = &storage.Nop{}
	if cfg.DatabaseURL != "" {
		db, err := sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("can't open Postgres connection: %w", err)
		}

		postgres := storage.NewPostgres(db, storage.WithStaleAfter(cfg.RunStaleAfter))
		if err = postgres.Migrate(ctx); err != nil {
			_ = db.Close()
			return nil, err
		}

		app.db = db
		ledger = postgres
	} else {
		logger.Warn().Msg("DATABASE_URL not set, seeding runs won't be stored")
	}

	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}

	api := vendure.NewAdminAPI(graphql.NewClient(httpClient, cfg.AdminAPI.URL, graphql.NewSession(), UserAgent))
	fet := fetcher.NewFetcher(httpClient, UserAgent, fetcher.WithMaxRedirects(cfg.Catalog.MaxRedirects))

	app.Importer = importer.NewImporter(
		api,
		fet,
		assets.NewPipeline(fet, api, logger),
		ledger,
		importer.Config{
			Username:      cfg.AdminAPI.Username,
			Password:      cfg.AdminAPI.Password,
			LanguageCode:  cfg.AdminAPI.LanguageCode,
			BrandFacet:    cfg.Catalog.BrandFacet,
			CategoryFacet: cfg.Catalog.CategoryFacet,
		},
		logger,
	)

	return app, nil
}

// Close closes database connection if it was opened.
func (a *App) Close() error {
	if a.db == nil {
		return nil
	}

	if err := a.db.Close(); err != nil {
		return fmt.Errorf("can't close Postgres connection: %w", err)
	}

	return nil
}
