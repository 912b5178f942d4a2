package validator

import (
	"testing"
	"time"

	"StockVault/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rawBar(date, open, high, low, close, volume string) model.RawBar {
	return model.RawBar{Date: date, Open: open, High: high, Low: low, Close: close, Volume: volume}
}

func TestClean_ValidRow(t *testing.T) {
	bars, dropped, err := Clean("600519", []model.RawBar{
		rawBar("2024-03-05", "1700.5", "1720.0", "1695.2", "1710.8", "32000"),
	})
	require.NoError(t, err)
	assert.Zero(t, dropped)
	require.Len(t, bars, 1)

	b := bars[0]
	assert.Equal(t, "600519", b.Symbol)
	assert.Equal(t, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), b.Date)
	assert.Equal(t, 1700.5, b.Open)
	assert.Equal(t, 1720.0, b.High)
	assert.Equal(t, 1695.2, b.Low)
	assert.Equal(t, 1710.8, b.Close)
	assert.Equal(t, int64(32000), b.Volume)
}

func TestClean_RejectsHighBelowLow(t *testing.T) {
	bars, dropped, err := Clean("000001", []model.RawBar{
		rawBar("2024-03-05", "9.5", "9", "10", "9.5", "100"),
	})
	require.NoError(t, err)
	assert.Empty(t, bars)
	assert.Equal(t, 1, dropped)
}

func TestClean_KeepsSuspendedDay(t *testing.T) {
	// A no-trade day has all four prices equal and zero volume. That is
	// valid data, not an error.
	bars, dropped, err := Clean("000001", []model.RawBar{
		rawBar("2024-03-05", "5", "5", "5", "5", "0"),
	})
	require.NoError(t, err)
	assert.Zero(t, dropped)
	require.Len(t, bars, 1)
	assert.Equal(t, 5.0, bars[0].Open)
	assert.Equal(t, int64(0), bars[0].Volume)
}

func TestClean_DropsNegativeVolume(t *testing.T) {
	bars, dropped, err := Clean("000001", []model.RawBar{
		rawBar("2024-03-05", "5", "6", "4", "5", "-10"),
	})
	require.NoError(t, err)
	assert.Empty(t, bars)
	assert.Equal(t, 1, dropped)
}

func TestClean_DropsMissingFields(t *testing.T) {
	rows := []model.RawBar{
		rawBar("2024-03-05", "5", "6", "4", "", "100"),   // missing close
		rawBar("", "5", "6", "4", "5", "100"),            // missing date
		rawBar("2024-03-06", "5", "6", "4", "5", "junk"), // unparseable volume
		rawBar("2024-03-07", "5", "6", "4", "5", "100"),  // fine
	}
	bars, dropped, err := Clean("000001", rows)
	require.NoError(t, err)
	assert.Equal(t, 3, dropped)
	require.Len(t, bars, 1)
	assert.Equal(t, time.Date(2024, 3, 7, 0, 0, 0, 0, time.UTC), bars[0].Date)
}

func TestClean_CoercesProviderFormats(t *testing.T) {
	rows := []model.RawBar{
		rawBar("20240305", "12.50", "13.00", "12.00", "12.80", "1,234,567"),
		rawBar("2024/03/06", " 12.80 ", "13.10", "12.60", "13.05", "98765"),
	}
	bars, dropped, err := Clean("300750", rows)
	require.NoError(t, err)
	assert.Zero(t, dropped)
	require.Len(t, bars, 2)
	assert.Equal(t, "2024-03-05", bars[0].Date.Format(model.DateFormat))
	assert.Equal(t, int64(1234567), bars[0].Volume)
	assert.Equal(t, "2024-03-06", bars[1].Date.Format(model.DateFormat))
	assert.Equal(t, 12.8, bars[1].Open)
}

func TestClean_EmptyInput(t *testing.T) {
	bars, dropped, err := Clean("000001", nil)
	require.NoError(t, err)
	assert.Empty(t, bars)
	assert.Zero(t, dropped)
}

func TestClean_AllRowsRejected(t *testing.T) {
	bars, dropped, err := Clean("000001", []model.RawBar{
		rawBar("nonsense", "a", "b", "c", "d", "e"),
		rawBar("2024-03-05", "-1", "6", "4", "5", "100"),
	})
	require.NoError(t, err)
	assert.Empty(t, bars)
	assert.Equal(t, 2, dropped)
}

func TestClean_SymbolMismatchIsMalformed(t *testing.T) {
	row := rawBar("2024-03-05", "5", "6", "4", "5", "100")
	row.Symbol = "999999"
	_, _, err := Clean("000001", []model.RawBar{row})
	require.ErrorIs(t, err, ErrMalformedInput)

	_, _, err = Clean("", nil)
	require.ErrorIs(t, err, ErrMalformedInput)
}
