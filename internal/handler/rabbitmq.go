package handler

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/MichalMitros/catalog-seeder/internal/platform/models"
	"github.com/MichalMitros/catalog-seeder/internal/platform/rabbitmq"
	"github.com/MichalMitros/catalog-seeder/pkg/v1/commander"
	"github.com/rs/zerolog"
)

//go:generate mockery --name Importer --filename importer.go
//go:generate mockery --name Consumer --filename consumer.go

// Importer imports catalog files.
type Importer interface {
	Import(ctx context.Context, source string) (*models.Run, error)
}

// Consumer consumes messages from queue.
type Consumer interface {
	Consume(ctx context.Context, queue string, handler rabbitmq.HandlerFunc) (<-chan error, error)
}

// RMQHandler handles RMQ messages.
type RMQHandler struct {
	consumer Consumer
	importer Importer
	logger   *zerolog.Logger
}

// NewHandler returns new RMQHandler.
func NewHandler(consumer Consumer, importer Importer, logger *zerolog.Logger) *RMQHandler {
	return &RMQHandler{
		consumer: consumer,
		importer: importer,
		logger:   logger,
	}
}

// Start starts consuming and handling import commands from RMQ.
// Returned channel is closed when all consuming errors are logged.
func (h *RMQHandler) Start(ctx context.Context, queue string) (<-chan struct{}, error) {
	errorsChan, err := h.consumer.Consume(ctx, queue, h.Handle)
	if err != nil {
		return nil, err
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for err := range errorsChan {
			h.logger.Error().
				Err(err).
				Msg("can't handle message")
		}
	}()

	return done, nil
}

// Handle decodes import command and imports its source.
func (h *RMQHandler) Handle(ctx context.Context, message []byte) error {
	cmd, err := decodeMessage(message)
	if err != nil {
		return err
	}

	h.logger.Debug().
		Str("source", cmd.Source).
		Msg("import started")

	run, err := h.importer.Import(ctx, cmd.Source)
	if err != nil {
		return fmt.Errorf("import of %q failed: %w", cmd.Source, err)
	}

	h.logger.Info().
		Str("source", cmd.Source).
		Int("runId", run.ID).
		Int32("created", deref(run.CreatedProducts)).
		Int32("skipped", deref(run.SkippedProducts)).
		Int32("failed", deref(run.FailedProducts)).
		Msg("import finished")

	return nil
}

func decodeMessage(msg []byte) (*commander.ImportCommand, error) {
	var cmd commander.ImportCommand
	if err := json.Unmarshal(msg, &cmd); err != nil {
		return nil, fmt.Errorf("can't decode import command: %w", err)
	}

	if err := cmd.Validate(); err != nil {
		return nil, fmt.Errorf("invalid import command: %w", err)
	}

	return &cmd, nil
}

func deref(v *int32) int32 {
	if v == nil {
		return 0
	}
	return *v
}
