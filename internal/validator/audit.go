package validator

import (
	"fmt"
	"time"

	"StockVault/internal/model"
)

// Finding describes one invariant violation discovered in persisted data.
type Finding struct {
	Symbol string
	Date   time.Time
	Issue  string
}

func (f Finding) String() string {
	return fmt.Sprintf("%s %s: %s", f.Symbol, f.Date.Format(model.DateFormat), f.Issue)
}

// Audit re-checks stored bars against the invariants the ingest path
// enforces. A clean store returns no findings.
func Audit(bars []model.Bar) []Finding {
	var findings []Finding
	seen := make(map[string]struct{}, len(bars))

	for _, b := range bars {
		key := b.Symbol + "|" + b.Date.Format(model.DateFormat)
		if _, dup := seen[key]; dup {
			findings = append(findings, Finding{b.Symbol, b.Date, "duplicate (symbol, trade_date) key"})
		}
		seen[key] = struct{}{}

		if b.High < b.Low || b.High < b.Open || b.High < b.Close ||
			b.Low > b.Open || b.Low > b.Close {
			findings = append(findings, Finding{b.Symbol, b.Date, "inconsistent OHLC values"})
		}
		if b.Open < 0 || b.High < 0 || b.Low < 0 || b.Close < 0 {
			findings = append(findings, Finding{b.Symbol, b.Date, "negative price"})
		}
		if b.Volume < 0 {
			findings = append(findings, Finding{b.Symbol, b.Date, "negative volume"})
		}
	}
	return findings
}
