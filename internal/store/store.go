package store

import (
	"context"
	"time"

	"StockVault/internal/model"
)

// Store is the durable home of daily bars and the single source of
// truth for per-symbol sync cursors.
type Store interface {
	// EnsureSchema idempotently creates the bars table. Safe on every run.
	EnsureSchema(ctx context.Context) error
	// LatestDate returns the maximum persisted trade date for symbol.
	// ok is false when no bar exists yet for the symbol.
	LatestDate(ctx context.Context, symbol string) (latest time.Time, ok bool, err error)
	// Write persists a batch of bars in one transaction. Writing a bar
	// whose (symbol, trade_date) key already exists overwrites it.
	// Empty input is a no-op.
	Write(ctx context.Context, bars []model.Bar) error
	// AllBars returns every persisted bar, ordered by symbol then date.
	AllBars(ctx context.Context) ([]model.Bar, error)
	Close() error
}
