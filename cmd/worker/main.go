package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/MichalMitros/catalog-seeder/internal/app"
	"github.com/MichalMitros/catalog-seeder/internal/handler"
	"github.com/MichalMitros/catalog-seeder/internal/platform/config"
	"github.com/MichalMitros/catalog-seeder/internal/platform/rabbitmq"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().
			Err(err).
			Msg("can't load configuration")
	}

	logger = app.NewLogger(os.Stderr, cfg.LogLevel)

	amqpConnection, err := amqp.Dial(cfg.RabbitMQ.URL)
	if err != nil {
		logger.Fatal().
			Err(err).
			Msg("can't open RabbitMQ connection")
	}

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

	application, err := app.New(ctx, cfg, &logger)
	if err != nil {
		logger.Fatal().
			Err(err).
			Msg("can't set up importer")
	}

	han := handler.NewHandler(conn, application.Importer, &logger)

	// start consuming and handling messages
	handled, err := han.Start(ctx, cfg.RabbitMQ.Queue)
	if err != nil {
		logger.Fatal().
			Err(err).
			Msg("can't start consuming")
	}

	logger.Info().Msg("catalog seeder worker up and running")

	// handle graceful shutdown and context cancellation
	termChan := make(chan os.Signal, 1)
	signal.Notify(termChan, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-termChan:
		cancel()
	case <-conn.Done():
		logger.Error().Msg("consuming stopped unexpectedly")
		cancel()
	}

	logger.Info().Msg("graceful shutdown start")

	// wait for consumer and error logging to finish
	<-conn.Done()
	<-handled

	if err := application.Close(); err != nil {
		logger.Error().
			Err(err).
			Msg("can't close Postgres connection")
	}

	if err := amqpConnection.Close(); err != nil {
		logger.Error().
			Err(err).
			Msg("can't close RabbitMQ connection")
	}

	logger.Info().Msg("graceful shutdown successful")
}
