package store

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"SwingSentinel/internal/model"

	_ "modernc.org/sqlite"
)

const dateLayout = "2006-01-02"

// SQLiteStore caches daily closes in a SQLite database.
type SQLiteStore struct {
	db  *sql.DB
	mu  sync.Mutex
	now func() time.Time
}

// NewSQLiteStore opens (or creates) the SQLite database and runs migrations.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	s := &SQLiteStore{db: db, now: time.Now}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite store opened: %s", dbPath)
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS daily_closes (
			symbol TEXT NOT NULL,
			date   TEXT NOT NULL,
			close  REAL NOT NULL,
			PRIMARY KEY (symbol, date)
		)`,
		`CREATE TABLE IF NOT EXISTS refreshes (
			symbol       TEXT PRIMARY KEY,
			refreshed_at INTEGER NOT NULL
		)`,
	}

	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("exec %q: %w", stmt[:40], err)
		}
	}
	return nil
}

func (s *SQLiteStore) LoadCloses(symbol string) ([]model.PricePoint, time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var refreshed time.Time
	var ts int64
	err := s.db.QueryRow(`SELECT refreshed_at FROM refreshes WHERE symbol = ?`, symbol).Scan(&ts)
	switch {
	case err == sql.ErrNoRows:
		return nil, time.Time{}, nil
	case err != nil:
		return nil, time.Time{}, fmt.Errorf("query refresh: %w", err)
	}
	refreshed = time.Unix(ts, 0)

	rows, err := s.db.Query(`SELECT date, close FROM daily_closes WHERE symbol = ? ORDER BY date ASC`, symbol)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("query closes: %w", err)
	}
	defer rows.Close()

	var points []model.PricePoint
	for rows.Next() {
		var date string
		var p model.PricePoint
		if err := rows.Scan(&date, &p.Close); err != nil {
			return nil, time.Time{}, fmt.Errorf("scan close: %w", err)
		}
		d, err := time.Parse(dateLayout, date)
		if err != nil {
			return nil, time.Time{}, fmt.Errorf("parse date %q: %w", date, err)
		}
		p.Date = d
		points = append(points, p)
	}
	return points, refreshed, rows.Err()
}

func (s *SQLiteStore) SaveCloses(symbol string, points []model.PricePoint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	for _, p := range points {
		if _, err := tx.Exec(`INSERT INTO daily_closes (symbol, date, close) VALUES (?,?,?)
			ON CONFLICT(symbol, date) DO UPDATE SET close = excluded.close`,
			symbol, model.DateOf(p.Date).Format(dateLayout), p.Close,
		); err != nil {
			return fmt.Errorf("upsert close: %w", err)
		}
	}
	if _, err := tx.Exec(`INSERT INTO refreshes (symbol, refreshed_at) VALUES (?,?)
		ON CONFLICT(symbol) DO UPDATE SET refreshed_at = excluded.refreshed_at`,
		symbol, s.now().Unix(),
	); err != nil {
		return fmt.Errorf("upsert refresh: %w", err)
	}
	return tx.Commit()
}

func (s *SQLiteStore) Close() error {
	log.Println("[INFO] closing sqlite store")
	return s.db.Close()
}
