package collector

import (
	"context"
	"errors"
	"testing"
	"time"

	"StockVault/internal/model"

	logrustest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(s string) time.Time {
	t, err := time.Parse(model.DateFormat, s)
	if err != nil {
		panic(err)
	}
	return t
}

// newTestFetcher returns a fetcher whose retry sleeps are recorded
// instead of executed.
func newTestFetcher(p Provider, maxRetries int) (*Fetcher, *[]time.Duration) {
	log, _ := logrustest.NewNullLogger()
	f := NewFetcher(p, maxRetries, 5*time.Second, log)
	var slept []time.Duration
	f.Sleep = func(d time.Duration) { slept = append(slept, d) }
	return f, &slept
}

func TestFetchWindow_EmptyWindowIsNoOp(t *testing.T) {
	mock := &MockProvider{}
	f, _ := newTestFetcher(mock, 3)

	rows, err := f.FetchWindow(context.Background(), "000001", day("2024-01-16"), day("2024-01-15"))
	require.NoError(t, err)
	assert.Empty(t, rows)
	assert.Empty(t, mock.Calls, "inverted window must not contact the provider")
}

func TestFetchWindow_RetriesThenSucceeds(t *testing.T) {
	mock := &MockProvider{
		FailFirst: 2,
		Rows: map[string][]model.RawBar{
			"000001": {{Date: "2024-01-12", Open: "5", High: "6", Low: "4", Close: "5", Volume: "100"}},
		},
	}
	f, slept := newTestFetcher(mock, 3)

	rows, err := f.FetchWindow(context.Background(), "000001", day("2024-01-10"), day("2024-01-15"))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Len(t, mock.Calls, 3)
	assert.Equal(t, []time.Duration{5 * time.Second, 5 * time.Second}, *slept)
}

func TestFetchWindow_ExhaustsRetries(t *testing.T) {
	mock := &MockProvider{FailFirst: 100}
	f, slept := newTestFetcher(mock, 3)

	_, err := f.FetchWindow(context.Background(), "000001", day("2024-01-10"), day("2024-01-15"))
	require.Error(t, err)
	assert.Len(t, mock.Calls, 3)
	// No sleep after the final attempt.
	assert.Len(t, *slept, 2)
}

func TestListUniverse_WrapsFailure(t *testing.T) {
	mock := &MockProvider{UniverseErr: errors.New("connection refused")}
	f, _ := newTestFetcher(mock, 3)

	_, err := f.ListUniverse(context.Background())
	require.ErrorIs(t, err, ErrUniverseUnavailable)
}

func TestListUniverse_EmptyRosterIsUnavailable(t *testing.T) {
	f, _ := newTestFetcher(&MockProvider{}, 3)

	_, err := f.ListUniverse(context.Background())
	require.ErrorIs(t, err, ErrUniverseUnavailable)
}

func TestListUniverse_ReturnsRoster(t *testing.T) {
	f, _ := newTestFetcher(&MockProvider{Symbols: []string{"000001", "600519"}}, 3)

	symbols, err := f.ListUniverse(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"000001", "600519"}, symbols)
}
