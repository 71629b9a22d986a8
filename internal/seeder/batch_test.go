package seeder_test

import (
	"bytes"
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/MichalMitros/catalog-seeder/internal/graphql"
	"github.com/MichalMitros/catalog-seeder/internal/platform"
	"github.com/MichalMitros/catalog-seeder/internal/platform/models"
	"github.com/MichalMitros/catalog-seeder/internal/platform/models/modelstesting"
	"github.com/MichalMitros/catalog-seeder/internal/seeder"
	"github.com/MichalMitros/catalog-seeder/internal/seeder/mocks"
	"github.com/go-faker/faker/v4"
	"github.com/rs/zerolog"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// reusable test data
var (
	source    = faker.URL()
	runID     = rand.Int()
	createdAt = time.Date(2024, time.April, 1, 1, 1, 1, 0, time.UTC)
	now       = time.Date(2024, time.April, 1, 2, 1, 1, 0, time.UTC)
	nopLogger = zerolog.Nop()
	products  = modelstesting.FakeProducts(6)
	results   = []models.ParsingResult{ // will affect tests results when changed
		{Row: 1, Product: products[0]},
		{Row: 2, Product: products[1]},
		{Row: 3, Error: assert.AnError},
		{Row: 4, Product: products[2]},
		{Row: 5, Product: products[3]},
		{Row: 6, Product: products[4]},
		{Row: 7, Product: products[5]},
	}
	// seeding outcomes of results with products, by product index
	outcomes = []models.ItemStatus{
		models.ItemCreated,
		models.ItemCreated,
		models.ItemFailed,
		models.ItemSkipped,
		models.ItemCreated,
		models.ItemCreated,
	}
)

func feed(results []models.ParsingResult) <-chan models.ParsingResult {
	input := make(chan models.ParsingResult, len(results))
	for _, r := range results {
		input <- r
	}
	close(input)
	return input
}

func newRun() *models.Run {
	return &models.Run{ID: runID, Source: source, CreatedAt: createdAt}
}

func TestUnitBatchRun(t *testing.T) {
	itemSeeder := mocks.NewItemSeeder(t)
	for ix, product := range products {
		outcome := models.ItemOutcome{SKU: product.SKU, Name: product.Name, Status: outcomes[ix]}
		var err error
		if outcomes[ix] == models.ItemFailed {
			err = assert.AnError
			outcome.Error = lo.ToPtr(err.Error())
		}
		itemSeeder.On("Seed", mock.Anything, product).Return(outcome, err).Once()
	}

	storage := mocks.NewStorage(t)
	storage.On("StartRun", mock.Anything, source).Return(newRun(), nil).Once()
	for _, r := range results {
		storage.On("RecordItem", mock.Anything, runID, mock.MatchedBy(func(item models.ItemOutcome) bool {
			return item.Row == r.Row
		})).Return(nil).Once()
	}

	wantRun := &models.Run{
		ID:              runID,
		Source:          source,
		CreatedAt:       createdAt,
		FinishedAt:      &now,
		IsSuccess:       lo.ToPtr(true),
		CreatedProducts: lo.ToPtr(int32(4)),
		SkippedProducts: lo.ToPtr(int32(1)),
		FailedProducts:  lo.ToPtr(int32(2)),
	}
	storage.On("FinishRun", mock.Anything, wantRun).Return(nil).Once()

	clock := mocks.NewClock(t)
	clock.On("Now").Return(&now).Once()

	batch := seeder.NewBatch(itemSeeder, storage, &nopLogger, seeder.WithClock(clock))

	run, err := batch.Run(context.TODO(), source, feed(results))

	require.NoError(t, err, "shouldn't return any error")
	assert.Equal(t, wantRun, run, "should return finished run")
	assert.Equal(t,
		int32(len(results)),
		*run.CreatedProducts+*run.SkippedProducts+*run.FailedProducts,
		"counters should sum to number of items",
	)
}

func TestUnitBatchRunRecordsOutcomes(t *testing.T) {
	product := products[0]
	itemSeeder := mocks.NewItemSeeder(t)
	itemSeeder.On("Seed", mock.Anything, product).Return(models.ItemOutcome{
		SKU:       product.SKU,
		Status:    models.ItemCreated,
		ProductID: lo.ToPtr("1"),
	}, nil).Once()

	storage := mocks.NewStorage(t)
	storage.On("StartRun", mock.Anything, source).Return(newRun(), nil).Once()
	storage.On("RecordItem", mock.Anything, runID, models.ItemOutcome{
		Row:       1,
		SKU:       product.SKU,
		Status:    models.ItemCreated,
		ProductID: lo.ToPtr("1"),
	}).Return(assert.AnError).Once()
	storage.On("RecordItem", mock.Anything, runID, models.ItemOutcome{
		Row:    2,
		Status: models.ItemFailed,
		Error:  lo.ToPtr(assert.AnError.Error()),
	}).Return(nil).Once()
	storage.On("FinishRun", mock.Anything, mock.Anything).Return(assert.AnError).Once()

	batch := seeder.NewBatch(itemSeeder, storage, &nopLogger)

	run, err := batch.Run(context.TODO(), source, feed([]models.ParsingResult{
		{Row: 1, Product: product},
		{Row: 2, Error: assert.AnError},
	}))

	require.NoError(t, err, "ledger errors shouldn't fail run")
	assert.Equal(t, int32(1), *run.CreatedProducts, "should count created product")
	assert.Equal(t, int32(1), *run.FailedProducts, "should count decoding error")
	require.NotNil(t, run.FinishedAt, "should set finish time")
}

func TestUnitBatchRunStartError(t *testing.T) {
	tests := map[string]struct {
		err error
	}{
		"already running": {err: platform.ErrAlreadyRunning},
		"storage error":   {err: assert.AnError},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			storage := mocks.NewStorage(t)
			storage.On("StartRun", mock.Anything, source).Return(nil, tt.err).Once()

			batch := seeder.NewBatch(mocks.NewItemSeeder(t), storage, &nopLogger)

			run, err := batch.Run(context.TODO(), source, feed(results))

			require.ErrorIs(t, err, tt.err, "should return start error")
			assert.Nil(t, run, "shouldn't return run")
		})
	}
}

func TestUnitBatchRunCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	storage := mocks.NewStorage(t)
	storage.On("StartRun", mock.Anything, source).Return(newRun(), nil).Once()
	storage.On("FinishRun", mock.Anything, mock.MatchedBy(func(run *models.Run) bool {
		return !*run.IsSuccess && *run.StatusMessage == context.Canceled.Error()
	})).Return(nil).Once()

	clock := mocks.NewClock(t)
	clock.On("Now").Return(&now).Once()

	batch := seeder.NewBatch(mocks.NewItemSeeder(t), storage, &nopLogger, seeder.WithClock(clock))

	// input is never closed
	run, err := batch.Run(ctx, source, make(chan models.ParsingResult))

	require.ErrorIs(t, err, context.Canceled, "should return context error")
	assert.Equal(t, int32(0), *run.CreatedProducts, "shouldn't seed anything")
	assert.False(t, *run.IsSuccess, "should finish failed run")
}

func TestUnitBatchRunLogsGraphQLErrors(t *testing.T) {
	product := products[0]
	gqlErr := &graphql.Error{Errors: []graphql.ErrorMessage{{Message: "first"}, {Message: "second"}}}

	itemSeeder := mocks.NewItemSeeder(t)
	itemSeeder.On("Seed", mock.Anything, product).
		Return(models.ItemOutcome{Status: models.ItemFailed, Error: lo.ToPtr(gqlErr.Error())}, gqlErr).
		Once()

	storage := mocks.NewStorage(t)
	storage.On("StartRun", mock.Anything, source).Return(newRun(), nil).Once()
	storage.On("RecordItem", mock.Anything, runID, mock.Anything).Return(nil).Once()
	storage.On("FinishRun", mock.Anything, mock.Anything).Return(nil).Once()

	var logs bytes.Buffer
	logger := zerolog.New(&logs)

	_, err := seeder.NewBatch(itemSeeder, storage, &logger).
		Run(context.TODO(), source, feed([]models.ParsingResult{{Row: 2, Product: product}}))

	require.NoError(t, err, "shouldn't return any error")
	assert.Contains(t, logs.String(), `"graphql_errors":"first; second"`, "should log all graphql errors")
}
