package model

import "time"

// DateFormat is the canonical calendar-date representation used in the
// store and in provider requests.
const DateFormat = "2006-01-02"

// RawBar is one daily row exactly as the market-data provider returned
// it. All fields arrive as strings in the provider's native formats;
// nothing is trusted until the validator has coerced it.
type RawBar struct {
	Symbol string `json:"symbol"`
	Date   string `json:"date"`
	Open   string `json:"open"`
	High   string `json:"high"`
	Low    string `json:"low"`
	Close  string `json:"close"`
	Volume string `json:"volume"`
}

// Bar is one validated daily OHLCV record. The pair (Symbol, Date) is
// unique across the store.
type Bar struct {
	Symbol string
	Date   time.Time // midnight UTC, day granularity
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume int64
}

// Day truncates t to midnight UTC.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
