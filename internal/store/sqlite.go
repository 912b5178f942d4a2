package store

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"StockVault/internal/model"

	"github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"
)

// SQLiteStore persists daily bars to a SQLite database.
//
// Conflict policy: overwrite. A bar whose (symbol, trade_date) key
// already exists is replaced via the native ON CONFLICT clause, which
// makes a full-refresh re-fetch of an already populated range safe to
// re-run.
type SQLiteStore struct {
	db  *sql.DB
	mu  sync.Mutex
	log *logrus.Entry
}

// OpenSQLite opens (or creates) the SQLite database file.
func OpenSQLite(path string, log *logrus.Logger) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode for better concurrent read performance while a sync runs.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	s := &SQLiteStore{db: db, log: log.WithField("component", "store")}
	s.log.WithField("path", path).Info("sqlite store opened")
	return s, nil
}

func (s *SQLiteStore) EnsureSchema(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stmts := []string{
		`CREATE TABLE IF NOT EXISTS daily_bars (
			symbol     TEXT NOT NULL,
			trade_date TEXT NOT NULL,
			open       REAL NOT NULL,
			high       REAL NOT NULL,
			low        REAL NOT NULL,
			close      REAL NOT NULL,
			volume     INTEGER NOT NULL,
			PRIMARY KEY (symbol, trade_date)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_bars_date ON daily_bars(trade_date)`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

func (s *SQLiteStore) LatestDate(ctx context.Context, symbol string) (time.Time, bool, error) {
	var latest sql.NullString
	err := s.db.QueryRowContext(ctx,
		`SELECT MAX(trade_date) FROM daily_bars WHERE symbol = ?`, symbol,
	).Scan(&latest)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("latest date for %s: %w", symbol, err)
	}
	if !latest.Valid {
		return time.Time{}, false, nil
	}
	t, err := time.Parse(model.DateFormat, latest.String)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("latest date for %s: parse %q: %w", symbol, latest.String, err)
	}
	return t, true, nil
}

func (s *SQLiteStore) Write(ctx context.Context, bars []model.Bar) error {
	if len(bars) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin write: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO daily_bars
		(symbol, trade_date, open, high, low, close, volume)
		VALUES (?,?,?,?,?,?,?)
		ON CONFLICT(symbol, trade_date) DO UPDATE SET
			open = excluded.open,
			high = excluded.high,
			low = excluded.low,
			close = excluded.close,
			volume = excluded.volume`)
	if err != nil {
		return fmt.Errorf("prepare write: %w", err)
	}
	defer stmt.Close()

	for _, b := range bars {
		if _, err := stmt.ExecContext(ctx,
			b.Symbol, b.Date.Format(model.DateFormat),
			b.Open, b.High, b.Low, b.Close, b.Volume,
		); err != nil {
			return fmt.Errorf("write %s %s: %w", b.Symbol, b.Date.Format(model.DateFormat), err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit write: %w", err)
	}
	return nil
}

func (s *SQLiteStore) AllBars(ctx context.Context) ([]model.Bar, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT symbol, trade_date, open, high, low, close, volume
		 FROM daily_bars ORDER BY symbol, trade_date`)
	if err != nil {
		return nil, fmt.Errorf("all bars: %w", err)
	}
	defer rows.Close()

	var bars []model.Bar
	for rows.Next() {
		var b model.Bar
		var date string
		if err := rows.Scan(&b.Symbol, &date, &b.Open, &b.High, &b.Low, &b.Close, &b.Volume); err != nil {
			return nil, fmt.Errorf("all bars: scan: %w", err)
		}
		b.Date, err = time.Parse(model.DateFormat, date)
		if err != nil {
			return nil, fmt.Errorf("all bars: parse date %q: %w", date, err)
		}
		bars = append(bars, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("all bars: %w", err)
	}
	return bars, nil
}

func (s *SQLiteStore) Close() error {
	s.log.Info("closing sqlite store")
	return s.db.Close()
}
