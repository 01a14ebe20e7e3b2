// Package storage persists price history, indicator readings and consolidated
// signals to SQLite.
package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"github.com/ducminhle1904/crypto-signal-engine/internal/analysis"
	"github.com/ducminhle1904/crypto-signal-engine/internal/indicators"
	"github.com/ducminhle1904/crypto-signal-engine/pkg/types"
)

const schema = `
CREATE TABLE IF NOT EXISTS price_history (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	symbol TEXT NOT NULL,
	timestamp DATETIME NOT NULL,
	open REAL NOT NULL,
	high REAL NOT NULL,
	low REAL NOT NULL,
	close REAL NOT NULL,
	volume REAL NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_price_history_symbol ON price_history(symbol);
CREATE INDEX IF NOT EXISTS idx_price_history_timestamp ON price_history(timestamp);

CREATE TABLE IF NOT EXISTS technical_indicators (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	symbol TEXT NOT NULL,
	timestamp DATETIME NOT NULL,
	indicator_name TEXT NOT NULL,
	value REAL NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_indicators_symbol ON technical_indicators(symbol);
CREATE INDEX IF NOT EXISTS idx_indicators_name ON technical_indicators(indicator_name);

CREATE TABLE IF NOT EXISTS signals (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	symbol TEXT NOT NULL,
	timestamp DATETIME NOT NULL,
	signal_type TEXT NOT NULL,
	reason TEXT,
	details TEXT,
	price_at_signal REAL
);
CREATE INDEX IF NOT EXISTS idx_signals_symbol ON signals(symbol);
CREATE INDEX IF NOT EXISTS idx_signals_timestamp ON signals(timestamp);

CREATE TABLE IF NOT EXISTS user_preferences (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id TEXT NOT NULL DEFAULT 'default',
	preference_name TEXT NOT NULL,
	preference_value TEXT,
	UNIQUE(user_id, preference_name)
);
`

// Store wraps the SQLite database behind the screener's persistence needs.
type Store struct {
	db *sqlx.DB
}

// SignalRecord is one persisted consolidated signal.
type SignalRecord struct {
	ID            int64     `db:"id"`
	Symbol        string    `db:"symbol"`
	Timestamp     time.Time `db:"timestamp"`
	SignalType    string    `db:"signal_type"`
	Reason        string    `db:"reason"`
	Details       string    `db:"details"`
	PriceAtSignal float64   `db:"price_at_signal"`
}

// IndicatorRow is one persisted indicator reading.
type IndicatorRow struct {
	Symbol        string    `db:"symbol"`
	Timestamp     time.Time `db:"timestamp"`
	IndicatorName string    `db:"indicator_name"`
	Value         float64   `db:"value"`
}

// Open connects to the SQLite database at path (":memory:" works for tests)
// and ensures the schema exists.
func Open(path string) (*Store, error) {
	db, err := sqlx.Connect("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// SavePriceHistory appends the bars of one symbol. Existing rows for the
// symbol are kept; callers that refresh periodically get an append-only log.
func (s *Store) SavePriceHistory(symbol string, series types.PriceSeries) error {
	tx, err := s.db.Beginx()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Preparex(`INSERT INTO price_history (symbol, timestamp, open, high, low, close, volume)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, bar := range series {
		if _, err := stmt.Exec(symbol, bar.Timestamp, bar.Open, bar.High, bar.Low, bar.Close, bar.Volume); err != nil {
			return fmt.Errorf("failed to insert bar for %s: %w", symbol, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit price history for %s: %w", symbol, err)
	}
	return nil
}

// SaveIndicators writes every defined indicator value of the snapshot, one
// row per (bar, column). Warm-up bars are skipped entirely.
func (s *Store) SaveIndicators(symbol string, series types.PriceSeries, snap *indicators.Snapshot) error {
	if snap == nil || snap.Bars != len(series) {
		return fmt.Errorf("snapshot does not match series for %s", symbol)
	}

	tx, err := s.db.Beginx()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Preparex(`INSERT INTO technical_indicators (symbol, timestamp, indicator_name, value)
		VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, col := range snap.Columns() {
		for i, bar := range series {
			v, ok := col.Series.At(i)
			if !ok {
				continue
			}
			if _, err := stmt.Exec(symbol, bar.Timestamp, col.Name, v); err != nil {
				return fmt.Errorf("failed to insert %s for %s: %w", col.Name, symbol, err)
			}
		}
	}

	// The marker column is always defined, so every bar gets a row.
	for i, bar := range series {
		if _, err := stmt.Exec(symbol, bar.Timestamp, indicators.NameMarker, float64(snap.Markers[i])); err != nil {
			return fmt.Errorf("failed to insert %s for %s: %w", indicators.NameMarker, symbol, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit indicators for %s: %w", symbol, err)
	}
	return nil
}

// SaveSignal records one consolidated signal with its detail map serialized
// as a JSON object.
func (s *Store) SaveSignal(symbol string, sig analysis.Signal, price float64, at time.Time) error {
	details := make(map[string]string, len(sig.Details))
	for _, d := range sig.Details {
		details[d.Label] = d.Value
	}
	payload, err := json.Marshal(details)
	if err != nil {
		return fmt.Errorf("failed to marshal signal details: %w", err)
	}

	_, err = s.db.Exec(`INSERT INTO signals (symbol, timestamp, signal_type, reason, details, price_at_signal)
		VALUES (?, ?, ?, ?, ?, ?)`,
		symbol, at, string(sig.Direction), sig.Reason, string(payload), price)
	if err != nil {
		return fmt.Errorf("failed to insert signal for %s: %w", symbol, err)
	}
	return nil
}

// RecentSignals returns the latest signals, newest first.
func (s *Store) RecentSignals(limit int) ([]SignalRecord, error) {
	var records []SignalRecord
	err := s.db.Select(&records, `SELECT id, symbol, timestamp, signal_type, reason, details, price_at_signal
		FROM signals ORDER BY timestamp DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent signals: %w", err)
	}
	return records, nil
}

// PriceHistory loads one symbol's bars inside the [from, to] window in
// timestamp order. Zero times widen the window on that side.
func (s *Store) PriceHistory(symbol string, from, to time.Time) (types.PriceSeries, error) {
	query := `SELECT timestamp, open, high, low, close, volume FROM price_history WHERE symbol = ?`
	args := []interface{}{symbol}

	if !from.IsZero() {
		query += ` AND timestamp >= ?`
		args = append(args, from)
	}
	if !to.IsZero() {
		query += ` AND timestamp <= ?`
		args = append(args, to)
	}
	query += ` ORDER BY timestamp`

	rows, err := s.db.Queryx(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query price history for %s: %w", symbol, err)
	}
	defer rows.Close()

	var series types.PriceSeries
	for rows.Next() {
		var bar types.Bar
		if err := rows.Scan(&bar.Timestamp, &bar.Open, &bar.High, &bar.Low, &bar.Close, &bar.Volume); err != nil {
			return nil, fmt.Errorf("failed to scan bar for %s: %w", symbol, err)
		}
		series = append(series, bar)
	}
	return series, rows.Err()
}

// IndicatorValues loads the stored readings of one indicator column for a
// symbol, in timestamp order.
func (s *Store) IndicatorValues(symbol, indicatorName string) ([]IndicatorRow, error) {
	var rows []IndicatorRow
	err := s.db.Select(&rows, `SELECT symbol, timestamp, indicator_name, value
		FROM technical_indicators WHERE symbol = ? AND indicator_name = ? ORDER BY timestamp`,
		symbol, indicatorName)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s for %s: %w", indicatorName, symbol, err)
	}
	return rows, nil
}

// SetPreference stores or updates one user preference.
func (s *Store) SetPreference(userID, name, value string) error {
	_, err := s.db.Exec(`INSERT INTO user_preferences (user_id, preference_name, preference_value)
		VALUES (?, ?, ?)
		ON CONFLICT(user_id, preference_name) DO UPDATE SET preference_value = excluded.preference_value`,
		userID, name, value)
	if err != nil {
		return fmt.Errorf("failed to save preference %s: %w", name, err)
	}
	return nil
}

// Preference reads one user preference, falling back to def when unset.
func (s *Store) Preference(userID, name, def string) (string, error) {
	var value string
	err := s.db.Get(&value, `SELECT preference_value FROM user_preferences
		WHERE user_id = ? AND preference_name = ?`, userID, name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return def, nil
		}
		return def, fmt.Errorf("failed to read preference %s: %w", name, err)
	}
	return value, nil
}
