package storagetesting

import (
	"context"
	"database/sql"
	"os"
	"testing"

	"github.com/MichalMitros/catalog-seeder/internal/platform/storage"
	pgmodels "github.com/MichalMitros/catalog-seeder/internal/platform/storage/gen/postgres/public/model"
	"github.com/MichalMitros/catalog-seeder/internal/platform/storage/gen/postgres/public/table"
	pg "github.com/go-jet/jet/v2/postgres"
	"github.com/go-jet/jet/v2/qrm"

	_ "github.com/lib/pq"
)

// Open opens connection to DB and creates ledger tables.
// Test is skipped when DATABASE_URL environment variable is not set.
func Open(t *testing.T) *sql.DB {
	t.Helper()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		t.Skip("please provide database URL via DATABASE_URL environment variable")
	}

	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		t.Fatalf("can't open connection to %q: %s", dbURL, err)
	}

	if err = storage.NewPostgres(db).Migrate(context.Background()); err != nil {
		t.Fatal("can't migrate database", err)
	}

	return db
}

// InsertRuns is a helper test function to insert runs.
func InsertRuns(t *testing.T, exc qrm.Executable, runs ...pgmodels.SeedRun) {
	t.Helper()

	if len(runs) == 0 {
		return
	}

	_, err := table.SeedRun.INSERT(table.SeedRun.MutableColumns).MODELS(runs).Exec(exc)
	if err != nil {
		t.Fatal("can't insert runs", err)
	}
}

// GetRuns is a helper test function to get all runs.
func GetRuns(t *testing.T, queryable qrm.Queryable) []pgmodels.SeedRun {
	t.Helper()

	runs := []pgmodels.SeedRun{}
	err := table.SeedRun.SELECT(table.SeedRun.AllColumns).
		WHERE(table.SeedRun.ID.IS_NOT_NULL()).
		ORDER_BY(table.SeedRun.ID.ASC()).
		Query(queryable, &runs)
	if err != nil {
		t.Fatal("can't get runs", err)
	}

	return runs
}

// GetItems is a helper test function to get items of run ordered by row.
func GetItems(t *testing.T, queryable qrm.Queryable, runID int) []pgmodels.SeedItem {
	t.Helper()

	items := []pgmodels.SeedItem{}
	err := table.SeedItem.SELECT(table.SeedItem.AllColumns).
		WHERE(table.SeedItem.RunID.EQ(pg.Int32(int32(runID)))).
		ORDER_BY(table.SeedItem.Row.ASC()).
		Query(queryable, &items)
	if err != nil {
		t.Fatal("can't get items", err)
	}

	return items
}

// CleanupData is a helper test function to delete all ledger data.
func CleanupData(t *testing.T, exc qrm.Executable) {
	t.Helper()

	_, err := table.SeedItem.DELETE().WHERE(table.SeedItem.ID.IS_NOT_NULL()).Exec(exc)
	if err != nil {
		t.Fatal("can't delete items data", err)
	}

	_, err = table.SeedRun.DELETE().WHERE(table.SeedRun.ID.IS_NOT_NULL()).Exec(exc)
	if err != nil {
		t.Fatal("can't delete runs data", err)
	}
}
