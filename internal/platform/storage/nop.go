package storage

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/MichalMitros/catalog-seeder/internal/platform/models"
)

// Nop is ledger which keeps nothing. It's used when no database is configured.
type Nop struct {
	runs atomic.Int64
}

// StartRun returns new run numbered within process.
func (n *Nop) StartRun(_ context.Context, source string) (*models.Run, error) {
	return &models.Run{
		ID:        int(n.runs.Add(1)),
		Source:    source,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// RecordItem does nothing.
func (*Nop) RecordItem(context.Context, int, models.ItemOutcome) error {
	return nil
}

// FinishRun does nothing.
func (*Nop) FinishRun(context.Context, *models.Run) error {
	return nil
}
