package collector

import (
	"context"
	"errors"
	"time"

	"StockVault/internal/model"
)

// Provider is the remote market-data source. It is the sole ground
// truth for prices and for the universe of tracked symbols, and it is
// assumed to be unreliable: calls may time out, rate-limit, or return
// nothing.
type Provider interface {
	// ListUniverse returns the full current roster of tracked symbols.
	ListUniverse(ctx context.Context) ([]string, error)
	// GetDailyBars returns raw daily rows for one symbol over
	// [start, end] inclusive, back-adjusted.
	GetDailyBars(ctx context.Context, symbol string, start, end time.Time) ([]model.RawBar, error)
	Name() string
}

// ErrUniverseUnavailable marks a failed universe listing. There is
// nothing to iterate without a roster, so callers treat it as fatal to
// the whole run.
var ErrUniverseUnavailable = errors.New("universe listing unavailable")
