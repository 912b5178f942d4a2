package validator

import (
	"testing"
	"time"

	"StockVault/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAudit_CleanStore(t *testing.T) {
	d := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	bars := []model.Bar{
		{Symbol: "000001", Date: d, Open: 10, High: 11, Low: 9, Close: 10.5, Volume: 100},
		{Symbol: "000001", Date: d.AddDate(0, 0, 1), Open: 10.5, High: 10.5, Low: 10.5, Close: 10.5, Volume: 0},
	}
	assert.Empty(t, Audit(bars))
}

func TestAudit_ReportsViolations(t *testing.T) {
	d := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	bars := []model.Bar{
		{Symbol: "000001", Date: d, Open: 10, High: 9, Low: 10, Close: 10, Volume: 100}, // high < low
		{Symbol: "000002", Date: d, Open: 5, High: 6, Low: 4, Close: 5, Volume: -1},     // negative volume
		{Symbol: "000003", Date: d, Open: 5, High: 6, Low: 4, Close: 5, Volume: 10},
		{Symbol: "000003", Date: d, Open: 5, High: 6, Low: 4, Close: 5, Volume: 10}, // duplicate key
	}
	findings := Audit(bars)
	require.Len(t, findings, 3)
	assert.Contains(t, findings[0].Issue, "OHLC")
	assert.Contains(t, findings[1].Issue, "volume")
	assert.Contains(t, findings[2].Issue, "duplicate")
}
