package store

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/etnz/club"
	"github.com/rs/zerolog"
	_ "modernc.org/sqlite" // pure Go driver
)

const schema = `CREATE TABLE IF NOT EXISTS snapshot (
	id INTEGER PRIMARY KEY CHECK (id = 1),
	data TEXT NOT NULL,
	updated_at TEXT NOT NULL
)`

// SQLite stores the snapshot as a JSON document in a single row table.
type SQLite struct {
	db  *sql.DB
	log zerolog.Logger
}

// OpenSQLite opens, and creates if needed, the database at path. "file:" URIs
// are passed to the driver as is.
func OpenSQLite(ctx context.Context, path string, log zerolog.Logger) (*SQLite, error) {
	if !strings.HasPrefix(path, "file:") {
		abs, err := filepath.Abs(path)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve database path: %w", err)
		}
		if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
		path = abs
	}
	db, err := sql.Open("sqlite", connectionString(path))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// one writer at a time, sqlite locks the whole file anyway.
	db.SetMaxOpenConns(1)

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	log.Debug().Str("path", path).Msg("database opened")
	return &SQLite{db: db, log: log}, nil
}

func connectionString(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_pragma=journal_mode(WAL)" +
		"&_pragma=synchronous(FULL)" +
		"&_pragma=busy_timeout(5000)"
}

// Load reads the snapshot row, ErrNotFound if it was never saved.
func (s *SQLite) Load(ctx context.Context) (club.Snapshot, error) {
	var data string
	err := s.db.QueryRowContext(ctx, `SELECT data FROM snapshot WHERE id = 1`).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return club.Snapshot{}, ErrNotFound
	}
	if err != nil {
		return club.Snapshot{}, fmt.Errorf("failed to query snapshot: %w", err)
	}
	return club.DecodeSnapshot(strings.NewReader(data))
}

// Save upserts the snapshot row.
func (s *SQLite) Save(ctx context.Context, snap club.Snapshot) error {
	var buf bytes.Buffer
	if err := club.EncodeSnapshot(&buf, snap); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO snapshot (id, data, updated_at) VALUES (1, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		buf.String(), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	s.log.Debug().Int("bytes", buf.Len()).Msg("snapshot saved")
	return nil
}

// Close closes the database.
func (s *SQLite) Close() error { return s.db.Close() }
