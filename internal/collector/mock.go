package collector

import (
	"context"
	"errors"
	"time"

	"StockVault/internal/model"
)

// WindowCall records one GetDailyBars invocation made against a MockProvider.
type WindowCall struct {
	Symbol string
	Start  time.Time
	End    time.Time
}

// MockProvider returns controllable fixed data for development and testing.
type MockProvider struct {
	Symbols     []string
	Rows        map[string][]model.RawBar
	UniverseErr error

	// FailFirst makes the first N GetDailyBars calls fail before
	// succeeding, to exercise the retry path.
	FailFirst int

	Calls []WindowCall
	fails int
}

func (m *MockProvider) Name() string { return "mock" }

func (m *MockProvider) ListUniverse(_ context.Context) ([]string, error) {
	if m.UniverseErr != nil {
		return nil, m.UniverseErr
	}
	return m.Symbols, nil
}

func (m *MockProvider) GetDailyBars(_ context.Context, symbol string, start, end time.Time) ([]model.RawBar, error) {
	m.Calls = append(m.Calls, WindowCall{Symbol: symbol, Start: start, End: end})
	if m.fails < m.FailFirst {
		m.fails++
		return nil, errors.New("mock: transient provider failure")
	}
	var out []model.RawBar
	for _, r := range m.Rows[symbol] {
		d, err := time.Parse(model.DateFormat, r.Date)
		if err != nil {
			// Rows with provider-native date formats are returned as-is;
			// the window filter only applies to parseable dates.
			out = append(out, r)
			continue
		}
		if d.Before(start) || d.After(end) {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}
