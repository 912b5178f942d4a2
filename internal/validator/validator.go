// Package validator turns raw provider rows into clean daily bars.
// Malformed individual rows are dropped, never fatal; only a payload
// that cannot belong to the requested symbol at all rejects the batch.
package validator

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"StockVault/internal/model"

	"github.com/shopspring/decimal"
)

// ErrMalformedInput marks a payload that is structurally unusable,
// as opposed to one that merely contains bad rows.
var ErrMalformedInput = errors.New("malformed input")

// Date layouts the provider has been observed to emit.
var dateLayouts = []string{
	model.DateFormat,
	"20060102",
	"2006/01/02",
	"2006-01-02T15:04:05Z07:00",
}

// Clean coerces and filters raw rows for one symbol into bars that
// satisfy the store's invariants. It returns the cleaned bars and the
// number of rows dropped. An empty result is valid and means there is
// nothing to persist. Rows carrying a different non-empty symbol mean
// the payload does not belong to the requested instrument, and the
// whole batch is rejected with ErrMalformedInput.
func Clean(symbol string, rows []model.RawBar) ([]model.Bar, int, error) {
	if symbol == "" {
		return nil, 0, fmt.Errorf("%w: empty symbol", ErrMalformedInput)
	}

	bars := make([]model.Bar, 0, len(rows))
	dropped := 0
	for _, row := range rows {
		if row.Symbol != "" && row.Symbol != symbol {
			return nil, 0, fmt.Errorf("%w: row for %q in payload for %q", ErrMalformedInput, row.Symbol, symbol)
		}
		bar, ok := coerce(symbol, row)
		if !ok {
			dropped++
			continue
		}
		bars = append(bars, bar)
	}
	return bars, dropped, nil
}

// coerce converts one raw row into a Bar, reporting false for any row
// that violates the bar invariants.
func coerce(symbol string, row model.RawBar) (model.Bar, bool) {
	date, ok := parseDate(row.Date)
	if !ok {
		return model.Bar{}, false
	}

	open, okO := parsePrice(row.Open)
	high, okH := parsePrice(row.High)
	low, okL := parsePrice(row.Low)
	clos, okC := parsePrice(row.Close)
	if !okO || !okH || !okL || !okC {
		return model.Bar{}, false
	}

	// OHLC consistency. Exact equality of all four fields is a
	// suspended/no-trade day and is valid.
	if high.LessThan(low) || high.LessThan(open) || high.LessThan(clos) ||
		low.GreaterThan(open) || low.GreaterThan(clos) {
		return model.Bar{}, false
	}

	volume, ok := parseVolume(row.Volume)
	if !ok || volume < 0 {
		return model.Bar{}, false
	}

	return model.Bar{
		Symbol: symbol,
		Date:   date,
		Open:   open.InexactFloat64(),
		High:   high.InexactFloat64(),
		Low:    low.InexactFloat64(),
		Close:  clos.InexactFloat64(),
		Volume: volume,
	}, true
}

func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return model.Day(t), true
		}
	}
	return time.Time{}, false
}

// parsePrice coerces a provider-native numeric string. Thousands
// separators are tolerated; negative prices are rejected.
func parsePrice(s string) (decimal.Decimal, bool) {
	d, ok := parseNumber(s)
	if !ok || d.IsNegative() {
		return decimal.Decimal{}, false
	}
	return d, true
}

func parseVolume(s string) (int64, bool) {
	d, ok := parseNumber(s)
	if !ok {
		return 0, false
	}
	return d.IntPart(), true
}

func parseNumber(s string) (decimal.Decimal, bool) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return decimal.Decimal{}, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, false
	}
	return d, true
}
