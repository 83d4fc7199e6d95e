// Package audit records store operations (encrypt, decrypt, remove,
// init) in a local sqlite database. Recording is best-effort:
// operations must not fail just because audit logging failed, so every
// recording error is logged at warn and swallowed.
package audit

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/oidcvault/oidcvault/internal/events"
)

// Entry is a single audit record.
type Entry struct {
	Time    time.Time
	Op      string // init, encrypt, decrypt, reencrypt, remove, list
	File    string // filename or path operated on, if any
	Success bool
	Detail  string // error text on failure
}

// Store is a sqlite-backed audit trail.
type Store struct {
	db     *sql.DB
	logger *events.Logger
}

// NewStore opens (creating if needed) the audit database at dbPath.
func NewStore(dbPath string, logger *events.Logger) (*Store, error) {
	if logger == nil {
		logger = events.Discard()
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal=WAL&_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open audit database: %w", err)
	}

	store := &Store{
		db:     db,
		logger: logger.WithField("component", "audit"),
	}

	if err := store.initialize(); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize audit database: %w", err)
	}

	return store, nil
}

func (s *Store) initialize() error {
	schema := `
    CREATE TABLE IF NOT EXISTS audit_log (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        ts TIMESTAMP NOT NULL,
        op TEXT NOT NULL,
        file TEXT,
        success INTEGER NOT NULL,
        detail TEXT
    );

    CREATE INDEX IF NOT EXISTS idx_audit_ts ON audit_log(ts);
    CREATE INDEX IF NOT EXISTS idx_audit_op ON audit_log(op);
    `

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// Record writes an entry. Failures are logged, never returned.
func (s *Store) Record(op, file string, opErr error) {
	if s == nil {
		return
	}

	entry := Entry{
		Time:    time.Now().UTC(),
		Op:      op,
		File:    file,
		Success: opErr == nil,
	}
	if opErr != nil {
		entry.Detail = opErr.Error()
	}

	_, err := s.db.Exec(
		`INSERT INTO audit_log (ts, op, file, success, detail) VALUES (?, ?, ?, ?, ?)`,
		entry.Time, entry.Op, entry.File, entry.Success, entry.Detail,
	)
	if err != nil {
		s.logger.WithError(err).Warn("Could not record audit entry")
	}
}

// Recent returns the most recent entries, newest first.
func (s *Store) Recent(limit int) ([]Entry, error) {
	rows, err := s.db.Query(
		`SELECT ts, op, file, success, detail FROM audit_log ORDER BY id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query audit log: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.Time, &e.Op, &e.File, &e.Success, &e.Detail); err != nil {
			return nil, fmt.Errorf("scan audit entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Close releases the database handle.
func (s *Store) Close() error {
	if s == nil {
		return nil
	}
	return s.db.Close()
}
