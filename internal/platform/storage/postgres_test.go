package storage_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/MichalMitros/catalog-seeder/internal/platform"
	"github.com/MichalMitros/catalog-seeder/internal/platform/models"
	"github.com/MichalMitros/catalog-seeder/internal/platform/storage"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	selectLastRun = `(?s)SELECT\s.+\sFROM\s+public\.seed_run\s.+ORDER BY\s+seed_run\.created_at DESC`
	insertRun     = `(?s)INSERT INTO public\.seed_run\s.+RETURNING`
	insertItem    = `INSERT INTO public\.seed_item`
	updateRun     = `UPDATE public\.seed_run`
)

var lastRunColumns = []string{"seed_run.id", "seed_run.created_at", "seed_run.finished_at", "seed_run.success"}

func newMock(t *testing.T, ops ...storage.PostgresOption) (storage.Postgres, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err, "shouldn't return any error")
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet(), "should run all expected queries")
		_ = db.Close()
	})

	return storage.NewPostgres(db, ops...), mock
}

func TestUnitStartRun(t *testing.T) {
	source := "https://files.example.com/catalog.json"
	createdAt := time.Date(2024, time.April, 1, 1, 1, 1, 0, time.UTC)

	tests := map[string]struct {
		lastRun *sqlmock.Rows
		ops     []storage.PostgresOption
		wantErr error
	}{
		"first run": {
			lastRun: sqlmock.NewRows(lastRunColumns),
		},
		"after finished run": {
			lastRun: sqlmock.NewRows(lastRunColumns).AddRow(1, time.Now(), time.Now(), true),
		},
		"after stale run": {
			lastRun: sqlmock.NewRows(lastRunColumns).AddRow(1, time.Now().Add(-storage.DefaultStaleAfter-time.Minute), nil, nil),
		},
		"after run stale for custom age": {
			lastRun: sqlmock.NewRows(lastRunColumns).AddRow(1, time.Now().Add(-2*time.Hour), nil, nil),
			ops:     []storage.PostgresOption{storage.WithStaleAfter(time.Hour)},
		},
		"already running": {
			lastRun: sqlmock.NewRows(lastRunColumns).AddRow(1, time.Now(), nil, nil),
			wantErr: platform.ErrAlreadyRunning,
		},
		"already running within custom age": {
			lastRun: sqlmock.NewRows(lastRunColumns).AddRow(1, time.Now().Add(-2*time.Hour), nil, nil),
			ops:     []storage.PostgresOption{storage.WithStaleAfter(3 * time.Hour)},
			wantErr: platform.ErrAlreadyRunning,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			post, mock := newMock(t, tt.ops...)

			mock.ExpectBegin()
			mock.ExpectQuery(selectLastRun).WillReturnRows(tt.lastRun)
			if tt.wantErr != nil {
				mock.ExpectRollback()
			} else {
				mock.ExpectQuery(insertRun).WillReturnRows(
					sqlmock.NewRows([]string{"seed_run.id", "seed_run.created_at"}).AddRow(7, createdAt),
				)
				mock.ExpectCommit()
			}

			run, err := post.StartRun(context.TODO(), source)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr, "should return correct error")
				assert.Nil(t, run, "shouldn't return run")
				return
			}
			require.NoError(t, err, "shouldn't return any error")
			assert.Equal(t, &models.Run{ID: 7, Source: source, CreatedAt: createdAt}, run, "should return started run")
		})
	}
}

func TestUnitStartRunErrors(t *testing.T) {
	t.Run("select error", func(t *testing.T) {
		post, mock := newMock(t)
		mock.ExpectBegin()
		mock.ExpectQuery(selectLastRun).WillReturnError(assert.AnError)
		mock.ExpectRollback()

		_, err := post.StartRun(context.TODO(), "catalog.json")

		require.ErrorIs(t, err, assert.AnError, "should return query error")
	})

	t.Run("insert error", func(t *testing.T) {
		post, mock := newMock(t)
		mock.ExpectBegin()
		mock.ExpectQuery(selectLastRun).WillReturnRows(sqlmock.NewRows(lastRunColumns))
		mock.ExpectQuery(insertRun).WillReturnError(assert.AnError)
		mock.ExpectRollback()

		_, err := post.StartRun(context.TODO(), "catalog.json")

		require.ErrorIs(t, err, assert.AnError, "should return insert error")
	})

	t.Run("begin error", func(t *testing.T) {
		post, mock := newMock(t)
		mock.ExpectBegin().WillReturnError(assert.AnError)

		_, err := post.StartRun(context.TODO(), "catalog.json")

		require.ErrorIs(t, err, assert.AnError, "should return begin error")
	})
}

func TestUnitRecordItem(t *testing.T) {
	post, mock := newMock(t)
	mock.ExpectExec(insertItem).WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(insertItem).WillReturnError(assert.AnError)

	item := models.ItemOutcome{Row: 1, SKU: "C-1", Status: models.ItemCreated, AssetIDs: []string{"1", "2"}}

	require.NoError(t, post.RecordItem(context.TODO(), 7, item), "shouldn't return any error")
	require.ErrorIs(t, post.RecordItem(context.TODO(), 7, item), assert.AnError, "should return insert error")
}

func TestUnitFinishRun(t *testing.T) {
	run := &models.Run{
		ID:              7,
		FinishedAt:      lo.ToPtr(time.Now()),
		IsSuccess:       lo.ToPtr(true),
		CreatedProducts: lo.ToPtr(int32(1)),
		SkippedProducts: lo.ToPtr(int32(0)),
		FailedProducts:  lo.ToPtr(int32(0)),
	}

	tests := map[string]struct {
		prepare func(mock sqlmock.Sqlmock)
		wantErr bool
	}{
		"updated": {
			prepare: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(updateRun).WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		"not existing run": {
			prepare: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(updateRun).WillReturnResult(sqlmock.NewResult(0, 0))
			},
			wantErr: true,
		},
		"update error": {
			prepare: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(updateRun).WillReturnError(assert.AnError)
			},
			wantErr: true,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			post, mock := newMock(t)
			tt.prepare(mock)

			err := post.FinishRun(context.TODO(), run)

			if tt.wantErr {
				require.Error(t, err, "should return error")
			} else {
				require.NoError(t, err, "shouldn't return any error")
			}
		})
	}
}

func TestUnitNop(t *testing.T) {
	var nop storage.Nop

	first, err := nop.StartRun(context.TODO(), "catalog.json")
	require.NoError(t, err, "shouldn't return any error")
	second, err := nop.StartRun(context.TODO(), "catalog.json")
	require.NoError(t, err, "shouldn't return any error")

	assert.NotEqual(t, first.ID, second.ID, "should number runs")
	assert.Equal(t, "catalog.json", first.Source, "should set source")
	assert.NoError(t, nop.RecordItem(context.TODO(), first.ID, models.ItemOutcome{}), "shouldn't return any error")
	assert.NoError(t, nop.FinishRun(context.TODO(), first), "shouldn't return any error")
}
