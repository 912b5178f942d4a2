// Package syncer drives the fetch → validate → persist loop over the
// whole universe of tracked symbols.
package syncer

import (
	"context"
	"fmt"
	"time"

	"StockVault/internal/collector"
	"StockVault/internal/model"
	"StockVault/internal/store"
	"StockVault/internal/validator"

	"github.com/sirupsen/logrus"
)

// Mode selects how per-symbol fetch windows are computed.
type Mode string

const (
	// ModeFullRefresh fetches a fixed lookback window for every symbol
	// regardless of the stored cursor.
	ModeFullRefresh Mode = "full-refresh"
	// ModeIncremental fetches only the range after each symbol's cursor.
	ModeIncremental Mode = "incremental"
)

// ParseMode converts a mode string from the invocation surface.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeFullRefresh, ModeIncremental:
		return Mode(s), nil
	}
	return "", fmt.Errorf("unknown sync mode %q (want %q or %q)", s, ModeFullRefresh, ModeIncremental)
}

// Options are the tunables of one synchronizer instance.
type Options struct {
	LookbackDays int           // full-refresh window size
	RequestDelay time.Duration // inter-symbol pacing
}

// Summary reports the outcome of one run.
type Summary struct {
	Total    int // symbols in the universe
	Synced   int // fetched, validated and persisted
	UpToDate int // empty incremental window, no fetch call made
	Empty    int // fetched but nothing to persist
	Failed   int // fetch, validation or write failure
}

func (s Summary) String() string {
	return fmt.Sprintf("total=%d synced=%d up-to-date=%d empty=%d failed=%d",
		s.Total, s.Synced, s.UpToDate, s.Empty, s.Failed)
}

type outcome int

const (
	outcomeSynced outcome = iota
	outcomeUpToDate
	outcomeEmpty
)

// Synchronizer orchestrates one run: list universe, then per symbol
// compute the window from the store cursor, fetch, validate, persist.
// Symbols are processed strictly sequentially; a single symbol's
// failure never aborts the run.
type Synchronizer struct {
	fetcher *collector.Fetcher
	store   store.Store
	opts    Options
	log     *logrus.Entry

	// Now and Sleep are replaceable in tests.
	Now   func() time.Time
	Sleep func(time.Duration)
}

// New creates a Synchronizer.
func New(f *collector.Fetcher, st store.Store, opts Options, log *logrus.Logger) *Synchronizer {
	return &Synchronizer{
		fetcher: f,
		store:   st,
		opts:    opts,
		log:     log.WithField("component", "syncer"),
		Now:     time.Now,
		Sleep:   time.Sleep,
	}
}

// Run executes one synchronization pass in the given mode and returns
// a summary. It fails only on fatal conditions: schema creation,
// universe listing, or cancellation. Per-symbol failures are logged
// and counted.
func (s *Synchronizer) Run(ctx context.Context, mode Mode) (Summary, error) {
	if err := s.store.EnsureSchema(ctx); err != nil {
		return Summary{}, fmt.Errorf("ensure schema: %w", err)
	}

	symbols, err := s.fetcher.ListUniverse(ctx)
	if err != nil {
		return Summary{}, err
	}

	sum := Summary{Total: len(symbols)}
	today := model.Day(s.Now())
	s.log.WithFields(logrus.Fields{"mode": mode, "symbols": len(symbols)}).Info("sync run started")

	for i, symbol := range symbols {
		// Cancellation is honored between symbols: never start the next.
		if err := ctx.Err(); err != nil {
			s.log.WithField("summary", sum.String()).Warn("sync run cancelled")
			return sum, err
		}
		if i > 0 && s.opts.RequestDelay > 0 {
			s.Sleep(s.opts.RequestDelay)
		}

		symLog := s.log.WithFields(logrus.Fields{
			"symbol":   symbol,
			"progress": fmt.Sprintf("%d/%d", i+1, len(symbols)),
		})
		out, err := s.syncSymbol(ctx, mode, symbol, today)
		switch {
		case err != nil:
			sum.Failed++
			symLog.WithError(err).Error("symbol sync failed")
		case out == outcomeUpToDate:
			sum.UpToDate++
			symLog.Debug("already up to date")
		case out == outcomeEmpty:
			sum.Empty++
			symLog.Debug("nothing to persist")
		default:
			sum.Synced++
		}
	}

	s.log.WithField("summary", sum.String()).Info("sync run finished")
	return sum, nil
}

func (s *Synchronizer) syncSymbol(ctx context.Context, mode Mode, symbol string, today time.Time) (outcome, error) {
	start, end, empty, err := s.window(ctx, mode, symbol, today)
	if err != nil {
		return 0, fmt.Errorf("compute window: %w", err)
	}
	if empty {
		return outcomeUpToDate, nil
	}

	rows, err := s.fetcher.FetchWindow(ctx, symbol, start, end)
	if err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return outcomeEmpty, nil
	}

	bars, dropped, err := validator.Clean(symbol, rows)
	if err != nil {
		return 0, fmt.Errorf("validate: %w", err)
	}
	if dropped > 0 {
		s.log.WithFields(logrus.Fields{"symbol": symbol, "dropped": dropped}).Warn("rows rejected by validation")
	}
	if len(bars) == 0 {
		return outcomeEmpty, nil
	}

	if err := s.store.Write(ctx, bars); err != nil {
		return 0, fmt.Errorf("persist: %w", err)
	}
	return outcomeSynced, nil
}

// window computes the fetch range for one symbol. empty means the
// symbol is already up to date and no fetch call should be made.
func (s *Synchronizer) window(ctx context.Context, mode Mode, symbol string, today time.Time) (start, end time.Time, empty bool, err error) {
	end = today
	if mode == ModeIncremental {
		cursor, ok, err := s.store.LatestDate(ctx, symbol)
		if err != nil {
			return time.Time{}, time.Time{}, false, err
		}
		if ok {
			start = cursor.AddDate(0, 0, 1)
			if start.After(end) {
				return time.Time{}, time.Time{}, true, nil
			}
			return start, end, false, nil
		}
		// No cursor yet: first sync behaves like a full refresh.
	}
	start = today.AddDate(0, 0, -s.opts.LookbackDays)
	return start, end, false, nil
}
