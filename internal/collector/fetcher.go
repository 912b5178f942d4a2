package collector

import (
	"context"
	"fmt"
	"time"

	"StockVault/internal/model"

	"github.com/sirupsen/logrus"
)

// Fetcher wraps a Provider with the pipeline's retry policy. One flaky
// symbol must never block the rest of the universe, so a window fetch
// that keeps failing becomes an error for that symbol only; the caller
// decides to skip it and move on.
type Fetcher struct {
	provider   Provider
	maxRetries int
	retryDelay time.Duration
	log        *logrus.Entry

	// Sleep is called between retry attempts. Replaceable in tests so
	// they run without real delays.
	Sleep func(time.Duration)
}

// NewFetcher creates a Fetcher with the given retry bound and
// inter-attempt delay.
func NewFetcher(p Provider, maxRetries int, retryDelay time.Duration, log *logrus.Logger) *Fetcher {
	return &Fetcher{
		provider:   p,
		maxRetries: maxRetries,
		retryDelay: retryDelay,
		log:        log.WithField("component", "fetcher"),
		Sleep:      time.Sleep,
	}
}

// ListUniverse returns the provider's current roster of symbols. A
// failure or an empty roster is wrapped in ErrUniverseUnavailable.
func (f *Fetcher) ListUniverse(ctx context.Context) ([]string, error) {
	symbols, err := f.provider.ListUniverse(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUniverseUnavailable, err)
	}
	if len(symbols) == 0 {
		return nil, fmt.Errorf("%w: provider returned an empty roster", ErrUniverseUnavailable)
	}
	return symbols, nil
}

// FetchWindow retrieves raw rows for one symbol over [start, end]
// inclusive. An inverted window (start after end) is a no-op and never
// contacts the provider. Transient provider failures are retried up to
// the configured bound with a fixed delay; if every attempt fails the
// last error is returned.
func (f *Fetcher) FetchWindow(ctx context.Context, symbol string, start, end time.Time) ([]model.RawBar, error) {
	if start.After(end) {
		return nil, nil
	}

	var lastErr error
	for attempt := 1; attempt <= f.maxRetries; attempt++ {
		rows, err := f.provider.GetDailyBars(ctx, symbol, start, end)
		if err == nil {
			return rows, nil
		}
		lastErr = err
		f.log.WithError(err).WithFields(logrus.Fields{
			"symbol":  symbol,
			"attempt": fmt.Sprintf("%d/%d", attempt, f.maxRetries),
		}).Warn("fetch attempt failed")

		if attempt < f.maxRetries {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			f.Sleep(f.retryDelay)
		}
	}
	return nil, fmt.Errorf("fetch %s [%s, %s] after %d attempts: %w",
		symbol, start.Format(model.DateFormat), end.Format(model.DateFormat),
		f.maxRetries, lastErr)
}
