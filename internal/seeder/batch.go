package seeder

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MichalMitros/catalog-seeder/internal/graphql"
	"github.com/MichalMitros/catalog-seeder/internal/platform/models"
	"github.com/rs/zerolog"
	"github.com/samber/lo"
)

//go:generate mockery --name ItemSeeder --filename item_seeder.go
//go:generate mockery --name Storage --filename storage.go
//go:generate mockery --name Clock --filename clock.go

// ItemSeeder seeds single product definition.
type ItemSeeder interface {
	Seed(ctx context.Context, def models.ProductDefinition) (models.ItemOutcome, error)
}

// Storage is seeding runs ledger.
type Storage interface {
	// StartRun creates new run if there is no unfinished run for provided source.
	StartRun(ctx context.Context, source string) (*models.Run, error)
	// RecordItem stores outcome of seeding single item in run.
	RecordItem(ctx context.Context, runID int, item models.ItemOutcome) error
	// FinishRun finishes provided run and updates its statistics.
	FinishRun(ctx context.Context, run *models.Run) error
}

// Clock provides times.
type Clock interface {
	// Now returns current UTC time.
	Now() *time.Time
}

// Option is custom configuration of Batch.
type Option func(b *Batch)

// WithClock sets Batch's custom Clock.
func WithClock(c Clock) Option {
	return func(b *Batch) {
		b.clock = c
	}
}

// Batch seeds stream of product definitions one by one.
type Batch struct {
	seeder  ItemSeeder
	storage Storage
	clock   Clock
	logger  *zerolog.Logger
}

// NewBatch returns new Batch.
func NewBatch(seeder ItemSeeder, storage Storage, logger *zerolog.Logger, ops ...Option) *Batch {
	b := &Batch{
		seeder:  seeder,
		storage: storage,
		clock:   systemClock{},
		logger:  logger,
	}

	for _, op := range ops {
		op(b)
	}

	return b
}

// Run seeds all results from input until it is closed or context is canceled.
// Failed items are counted and don't stop the run, returned error is only context error.
func (b *Batch) Run(ctx context.Context, source string, input <-chan models.ParsingResult) (*models.Run, error) {
	run, err := b.storage.StartRun(ctx, source)
	if err != nil {
		return nil, fmt.Errorf("can't start seeding run: %w", err)
	}

	created, skipped, failedItems := int32(0), int32(0), int32(0)
	status := b.consume(ctx, run.ID, input, func(outcome models.ItemOutcome) {
		switch outcome.Status {
		case models.ItemCreated:
			created++
		case models.ItemSkipped:
			skipped++
		default:
			failedItems++
		}
	})

	run.CreatedProducts = &created
	run.SkippedProducts = &skipped
	run.FailedProducts = &failedItems

	return run, b.finish(ctx, run, status)
}

func (b *Batch) consume(
	ctx context.Context,
	runID int,
	input <-chan models.ParsingResult,
	count func(models.ItemOutcome),
) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case result, ok := <-input:
			if !ok {
				return nil
			}

			outcome := b.seed(ctx, result)
			count(outcome)

			if err := b.storage.RecordItem(ctx, runID, outcome); err != nil {
				b.logger.Error().
					Err(err).
					Int("row", outcome.Row).
					Str("sku", outcome.SKU).
					Msg("can't record item outcome")
			}
		}
	}
}

func (b *Batch) seed(ctx context.Context, result models.ParsingResult) models.ItemOutcome {
	if result.Error != nil {
		b.logger.Error().
			Err(result.Error).
			Int("row", result.Row).
			Str("sku", result.Product.SKU).
			Msg("can't decode product")

		return models.ItemOutcome{
			Row:    result.Row,
			SKU:    result.Product.SKU,
			Name:   result.Product.Name,
			Status: models.ItemFailed,
			Error:  lo.ToPtr(result.Error.Error()),
		}
	}

	outcome, err := b.seeder.Seed(ctx, result.Product)
	outcome.Row = result.Row

	logEvent := b.logger.Debug()
	if err != nil {
		logEvent = b.logger.Error().Err(err)

		var gqlErr *graphql.Error
		if errors.As(err, &gqlErr) && len(gqlErr.Errors) > 1 {
			logEvent = logEvent.Str("graphql_errors", gqlErr.Messages())
		}
	}
	logEvent.
		Int("row", result.Row).
		Str("sku", result.Product.SKU).
		Str("name", result.Product.Name).
		Str("status", string(outcome.Status)).
		Msg("product seeded")

	return outcome
}

func (b *Batch) finish(ctx context.Context, run *models.Run, status error) error {
	if status != nil {
		run.StatusMessage = lo.ToPtr(status.Error())
	}
	run.IsSuccess = lo.ToPtr(status == nil)
	run.FinishedAt = b.clock.Now()

	// run is finished even when seeding was canceled
	if err := b.storage.FinishRun(context.WithoutCancel(ctx), run); err != nil {
		b.logger.Error().
			Err(err).
			Int("runId", run.ID).
			Msg("can't finish seeding run")
	}

	b.logger.Info().
		Str("source", run.Source).
		Int32("created", *run.CreatedProducts).
		Int32("skipped", *run.SkippedProducts).
		Int32("failed", *run.FailedProducts).
		Msg("seeding finished")

	return status
}
