// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ocrcache keeps recognized text in a SQLite database so that
// rescanning the same image skips OCR.
package ocrcache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Entry is one cached OCR result.
type Entry struct {
	Key       string
	Backend   string
	Languages string
	Text      string
	CreatedAt time.Time
}

// Store manages the OCR cache database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the cache database at path, creating parent
// directories and the schema as needed.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating cache directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening cache database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating cache schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS ocr_text (
			key TEXT PRIMARY KEY,
			backend TEXT NOT NULL,
			languages TEXT NOT NULL,
			text TEXT NOT NULL,
			created_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_ocr_text_created_at ON ocr_text(created_at)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Get returns the entry stored under key. The boolean is false on a miss.
func (s *Store) Get(ctx context.Context, key string) (Entry, bool, error) {
	var e Entry
	var created string
	err := s.db.QueryRowContext(ctx,
		`SELECT key, backend, languages, text, created_at FROM ocr_text WHERE key = ?`, key,
	).Scan(&e.Key, &e.Backend, &e.Languages, &e.Text, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, false, nil
	}
	if err != nil {
		return Entry{}, false, fmt.Errorf("reading cache entry %s: %w", key, err)
	}
	if e.CreatedAt, err = time.Parse(time.RFC3339, created); err != nil {
		return Entry{}, false, fmt.Errorf("parsing cache timestamp %q: %w", created, err)
	}
	return e, true, nil
}

// Put stores e, replacing any entry with the same key. A zero CreatedAt is
// set to the current time.
func (s *Store) Put(ctx context.Context, e Entry) error {
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO ocr_text (key, backend, languages, text, created_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET
			backend=excluded.backend, languages=excluded.languages,
			text=excluded.text, created_at=excluded.created_at`,
		e.Key, e.Backend, e.Languages, e.Text, e.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("writing cache entry %s: %w", e.Key, err)
	}
	return nil
}

// Count returns the number of cached entries.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT count(*) FROM ocr_text`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting cache entries: %w", err)
	}
	return n, nil
}

// Prune deletes entries created before cutoff and returns how many were
// removed. A zero cutoff removes everything.
func (s *Store) Prune(ctx context.Context, cutoff time.Time) (int, error) {
	var res sql.Result
	var err error
	if cutoff.IsZero() {
		res, err = s.db.ExecContext(ctx, `DELETE FROM ocr_text`)
	} else {
		res, err = s.db.ExecContext(ctx, `DELETE FROM ocr_text WHERE created_at < ?`,
			cutoff.UTC().Format(time.RFC3339))
	}
	if err != nil {
		return 0, fmt.Errorf("pruning cache: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("pruning cache: %w", err)
	}
	return int(n), nil
}
