package storage

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"time"

	"github.com/MichalMitros/catalog-seeder/internal/platform"
	"github.com/MichalMitros/catalog-seeder/internal/platform/models"
	"github.com/MichalMitros/catalog-seeder/internal/platform/storage/gen/postgres/public/table"

	pgmodels "github.com/MichalMitros/catalog-seeder/internal/platform/storage/gen/postgres/public/model"
	pg "github.com/go-jet/jet/v2/postgres"
	"github.com/go-jet/jet/v2/qrm"
)

//go:embed schema.sql
var schema string

// DefaultStaleAfter is age after which unfinished run no longer blocks new runs of the same source.
const DefaultStaleAfter = 6 * time.Hour

// PostgresOption is custom configuration of Postgres.
type PostgresOption func(p *Postgres)

// WithStaleAfter sets age after which unfinished runs are treated as abandoned.
func WithStaleAfter(d time.Duration) PostgresOption {
	return func(p *Postgres) {
		p.staleAfter = d
	}
}

// Postgres is ledger of seeding runs and their items.
type Postgres struct {
	db         *sql.DB
	staleAfter time.Duration
}

// NewPostgres returns new Postgres.
func NewPostgres(db *sql.DB, ops ...PostgresOption) Postgres {
	p := Postgres{
		db:         db,
		staleAfter: DefaultStaleAfter,
	}

	for _, op := range ops {
		op(&p)
	}

	return p
}

// Migrate creates ledger tables if they don't exist.
func (p Postgres) Migrate(ctx context.Context) error {
	if _, err := p.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("can't create ledger tables: %w", err)
	}

	return nil
}

// StartRun creates new unfinished run of source and returns it.
// It returns ErrAlreadyRunning if previous run of source is not finished yet.
func (p Postgres) StartRun(ctx context.Context, source string) (*models.Run, error) {
	var run *models.Run

	err := runInTransaction(ctx, p.db, func(tx *sql.Tx) error {
		lastRun, err := getLastRun(ctx, tx, source)
		if err != nil && !errors.Is(err, qrm.ErrNoRows) {
			return fmt.Errorf("can't get last run from database: %w", err)
		}

		if lastRun != nil && lastRun.FinishedAt == nil && lastRun.Success == nil &&
			time.Since(lastRun.CreatedAt) < p.staleAfter {
			return platform.ErrAlreadyRunning
		}

		newRun := &pgmodels.SeedRun{Source: source}
		err = table.SeedRun.INSERT(table.SeedRun.Source).
			MODEL(newRun).
			RETURNING(table.SeedRun.ID, table.SeedRun.CreatedAt).
			QueryContext(ctx, tx, newRun)
		if err != nil {
			return fmt.Errorf("can't insert run into database: %w", err)
		}

		run = toRun(newRun)

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("can't add run: %w", err)
	}

	return run, nil
}

// RecordItem stores outcome of single catalog item seeded in run.
func (p Postgres) RecordItem(ctx context.Context, runID int, item models.ItemOutcome) error {
	_, err := table.SeedItem.INSERT(table.SeedItem.MutableColumns.Except(table.SeedItem.CreatedAt)).
		MODEL(toDBItem(runID, item)).
		ExecContext(ctx, p.db)
	if err != nil {
		return fmt.Errorf("can't insert item of run %d: %w", runID, err)
	}

	return nil
}

// FinishRun sets run as finished and updates run's statistics.
func (p Postgres) FinishRun(ctx context.Context, run *models.Run) error {
	columnList := table.SeedRun.AllColumns.Except(table.SeedRun.ID, table.SeedRun.CreatedAt, table.SeedRun.Source)

	result, err := table.SeedRun.UPDATE(columnList).
		MODEL(toDBRun(run)).
		WHERE(table.SeedRun.ID.EQ(pg.Int32(int32(run.ID)))).
		ExecContext(ctx, p.db)
	if err != nil {
		return fmt.Errorf("can't update run: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("can't update run: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("can't update run %d: %w", run.ID, sql.ErrNoRows)
	}

	return nil
}

func getLastRun(ctx context.Context, db qrm.DB, source string) (*pgmodels.SeedRun, error) {
	var run pgmodels.SeedRun
	err := table.SeedRun.SELECT(
		table.SeedRun.ID,
		table.SeedRun.CreatedAt,
		table.SeedRun.FinishedAt,
		table.SeedRun.Success,
	).
		WHERE(table.SeedRun.Source.EQ(pg.String(source))).
		ORDER_BY(table.SeedRun.CreatedAt.DESC()).
		LIMIT(1).
		QueryContext(ctx, db, &run)
	if err != nil {
		return nil, err
	}

	return &run, nil
}

func runInTransaction(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) error {
	var (
		tx  *sql.Tx
		err error
	)

	if tx, err = db.BeginTx(ctx, nil); err != nil {
		return fmt.Errorf("can't begin transaction: %w", err)
	}

	if err = fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("can't rollback transaction: %w (rollback reason: %w)", rbErr, err)
		}
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("can't commit transaction: %w", err)
	}

	return nil
}
