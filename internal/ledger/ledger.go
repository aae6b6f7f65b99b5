// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ledger records ROBOT invocations in a SQLite database so the
// CLI can show what was run, when, and how it ended.
package ledger

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/robotool/pkg/types"
)

const defaultMaxResults = 20

// Invocation is one recorded ROBOT run.
type Invocation struct {
	ID        int64
	StartedAt time.Time
	Duration  time.Duration
	Command   []string
	ExitCode  int
	Succeeded bool
}

// Store manages the invocation ledger database.
type Store struct {
	db         *sql.DB
	maxResults int
}

// Open opens or creates the ledger database at cfg.DBPath, creating the
// schema and any missing parent directories.
func Open(cfg types.HistoryConfig) (*Store, error) {
	if cfg.DBPath == "" {
		return nil, fmt.Errorf("ledger database path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o755); err != nil {
		return nil, fmt.Errorf("creating ledger directory: %w", err)
	}

	db, err := sql.Open("sqlite3", cfg.DBPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening ledger database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}

	s := &Store{db: db, maxResults: maxResults}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating ledger schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS invocations (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			started_at TEXT NOT NULL,
			duration_ms INTEGER NOT NULL,
			command TEXT NOT NULL,
			exit_code INTEGER NOT NULL,
			succeeded INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_invocations_started_at ON invocations(started_at)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record appends one invocation. The command token list is stored as JSON.
func (s *Store) Record(inv Invocation) error {
	command, err := json.Marshal(inv.Command)
	if err != nil {
		return fmt.Errorf("marshaling command: %w", err)
	}

	succeeded := 0
	if inv.Succeeded {
		succeeded = 1
	}

	_, err = s.db.Exec(
		`INSERT INTO invocations (started_at, duration_ms, command, exit_code, succeeded)
		 VALUES (?, ?, ?, ?, ?)`,
		inv.StartedAt.UTC().Format(time.RFC3339Nano),
		inv.Duration.Milliseconds(),
		string(command),
		inv.ExitCode,
		succeeded,
	)
	if err != nil {
		return fmt.Errorf("inserting invocation: %w", err)
	}
	return nil
}

// Recent returns the newest invocations, most recent first. A limit of
// zero or less means the store's configured maximum.
func (s *Store) Recent(limit int) ([]Invocation, error) {
	if limit <= 0 {
		limit = s.maxResults
	}

	rows, err := s.db.Query(
		`SELECT id, started_at, duration_ms, command, exit_code, succeeded
		 FROM invocations ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying invocations: %w", err)
	}
	defer rows.Close()

	var invocations []Invocation
	for rows.Next() {
		var (
			inv        Invocation
			startedAt  string
			durationMS int64
			command    string
			succeeded  int
		)
		if err := rows.Scan(&inv.ID, &startedAt, &durationMS, &command, &inv.ExitCode, &succeeded); err != nil {
			return nil, fmt.Errorf("scanning invocation: %w", err)
		}
		if t, parseErr := time.Parse(time.RFC3339Nano, startedAt); parseErr == nil {
			inv.StartedAt = t
		}
		inv.Duration = time.Duration(durationMS) * time.Millisecond
		if err := json.Unmarshal([]byte(command), &inv.Command); err != nil {
			return nil, fmt.Errorf("unmarshaling command: %w", err)
		}
		inv.Succeeded = succeeded == 1
		invocations = append(invocations, inv)
	}
	return invocations, rows.Err()
}
