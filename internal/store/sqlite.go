package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// DefaultSQLitePath is the database file used when none is configured
const DefaultSQLitePath = "data/radar.db"

// SQLite is a Backend over a local SQLite database
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens or creates the database at path and ensures the schema exists
func OpenSQLite(ctx context.Context, path string) (*SQLite, error) {
	if path == "" {
		path = DefaultSQLitePath
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating cache dir: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}
	db.SetMaxOpenConns(1)

	s := &SQLite{db: db}
	if err := s.init(ctx); err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}

func (s *SQLite) init(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS site_summary (
			domain        TEXT PRIMARY KEY,
			source_url    TEXT NOT NULL,
			summary_json  TEXT NOT NULL,
			insights_json TEXT NOT NULL DEFAULT '',
			risk_score    REAL NOT NULL,
			updated_at    INTEGER NOT NULL
		);
	`)
	if err != nil {
		return fmt.Errorf("initializing schema: %w", err)
	}

	return nil
}

// Get implements Backend
func (s *SQLite) Get(ctx context.Context, domain string) (Entry, error) {
	var (
		entry     Entry
		updatedAt int64
	)

	err := s.db.QueryRowContext(ctx, `
		SELECT domain, source_url, summary_json, insights_json, risk_score, updated_at
		FROM site_summary WHERE domain = ?
	`, domain).Scan(&entry.Domain, &entry.SourceURL, &entry.SummaryJSON, &entry.InsightsJSON, &entry.RiskScore, &updatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, ErrNotFound
	}

	if err != nil {
		return Entry{}, fmt.Errorf("reading entry %s: %w", domain, err)
	}

	entry.UpdatedAt = time.UnixMilli(updatedAt).UTC()

	return entry, nil
}

// Upsert implements Backend
func (s *SQLite) Upsert(ctx context.Context, entry Entry) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO site_summary (domain, source_url, summary_json, insights_json, risk_score, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(domain) DO UPDATE SET
			source_url = excluded.source_url,
			summary_json = excluded.summary_json,
			insights_json = excluded.insights_json,
			risk_score = excluded.risk_score,
			updated_at = excluded.updated_at
	`, entry.Domain, entry.SourceURL, entry.SummaryJSON, entry.InsightsJSON, entry.RiskScore, entry.UpdatedAt.UnixMilli())
	if err != nil {
		return fmt.Errorf("upserting entry %s: %w", entry.Domain, err)
	}

	return nil
}

// Ping implements Backend
func (s *SQLite) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close implements Backend
func (s *SQLite) Close() error {
	return s.db.Close()
}
