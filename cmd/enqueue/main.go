package main

import (
	"context"
	"os"
	"time"

	"github.com/MichalMitros/catalog-seeder/internal/app"
	"github.com/MichalMitros/catalog-seeder/internal/platform/config"
	"github.com/MichalMitros/catalog-seeder/internal/platform/rabbitmq"
	"github.com/MichalMitros/catalog-seeder/pkg/v1/commander"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
)

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().
			Err(err).
			Msg("can't load configuration")
	}

	logger = app.NewLogger(os.Stderr, cfg.LogLevel)

	sources := os.Args[1:]
	if len(sources) == 0 && cfg.Catalog.Source != "" {
		sources = []string{cfg.Catalog.Source}
	}
	if len(sources) == 0 {
		logger.Fatal().Msg("please provide catalog sources as arguments or via CATALOG_SOURCE environment variable")
	}

	amqpConnection, err := amqp.Dial(cfg.RabbitMQ.URL)
	if err != nil {
		logger.Fatal().
			Err(err).
			Msg("can't open RabbitMQ connection")
	}
	defer amqpConnection.Close()

	conn, err := rabbitmq.NewRabbitMQ(amqpConnection, cfg.RabbitMQ.Exchange)
	if err != nil {
		logger.Fatal().
			Err(err).
			Msg("can't open RabbitMQ channel")
	}

	if err = conn.Bind(cfg.RabbitMQ.Queue, cfg.RabbitMQ.RoutingKey); err != nil {
		logger.Fatal().
			Err(err).
			Msg("can't declare RabbitMQ queue")
	}

	cmndr := commander.NewImportCommander(commander.NewRabbitMQSender(conn, cfg.RabbitMQ.RoutingKey))

	failed := 0
	for _, source := range sources {
		if err := cmndr.SendImportCommand(ctx, source); err != nil {
			failed++
			logger.Error().
				Err(err).
				Str("source", source).
				Msg("can't send import command")
			continue
		}

		logger.Info().
			Str("source", source).
			Msg("import command sent")
	}

	if failed > 0 {
		cancel()
		os.Exit(1)
	}
}
