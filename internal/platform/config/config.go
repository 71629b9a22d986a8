package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	LogLevel      string        `env:"LOG_LEVEL" envDefault:"info"`
	DatabaseURL   string        `env:"DATABASE_URL"`
	RunStaleAfter time.Duration `env:"RUN_STALE_AFTER" envDefault:"6h"`
	HTTPTimeout   time.Duration `env:"HTTP_TIMEOUT" envDefault:"60s"`

	AdminAPI AdminAPI
	Catalog  Catalog
	RabbitMQ RabbitMQ
}

// AdminAPI holds Admin API connection configuration.
type AdminAPI struct {
	URL          string `env:"ADMIN_API_URL" envDefault:"http://localhost:3000/admin-api"`
	Username     string `env:"SUPERADMIN_USERNAME" envDefault:"superadmin"`
	Password     string `env:"SUPERADMIN_PASSWORD" envDefault:"superadmin"`
	LanguageCode string `env:"LANGUAGE_CODE" envDefault:"es"`
}

// Catalog holds catalog seeding configuration.
type Catalog struct {
	Source        string `env:"CATALOG_SOURCE"`
	BrandFacet    string `env:"BRAND_FACET_NAME" envDefault:"Marca"`
	CategoryFacet string `env:"CATEGORY_FACET_NAME" envDefault:"Categoría"`
	MaxRedirects  int    `env:"MAX_REDIRECTS" envDefault:"5"`
}

// RabbitMQ holds RabbitMQ configuration.
type RabbitMQ struct {
	URL        string `env:"RABBITMQ_URL"`
	Exchange   string `env:"RABBITMQ_EXCHANGE" envDefault:"catalog-seeder-ex"`
	Queue      string `env:"RABBITMQ_QUEUE" envDefault:"catalog-seeder.commands"`
	RoutingKey string `env:"RABBITMQ_ROUTING_KEY" envDefault:"import"`
}

// Load reads .env files, when present, and parses configuration from environment.
// Variables already set in environment take precedence over .env files.
func Load(files ...string) (*Config, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("can't load env file: %w", err)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("can't parse env variables: %w", err)
	}

	return &cfg, nil
}
