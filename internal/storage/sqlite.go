package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// schema lists the whiteboard's migrations in order. Entry i brings the file
// from user_version i to i+1; append new steps, never edit old ones.
var schema = []string{
	`CREATE TABLE preferences (
		key        TEXT PRIMARY KEY,
		value      TEXT NOT NULL DEFAULT '',
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
}

// DB holds the whiteboard's preferences file: the last tool picked and the
// terminal size. Boards themselves are never written to disk.
type DB struct {
	conn *sql.DB
}

// New opens the preferences file at path, creating it and its directory if
// needed, and brings its schema up to date.
func New(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	conn, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	// The TUI and a standalone MCP server may share the file; one connection
	// per process keeps writes serialized.
	conn.SetMaxOpenConns(1)

	db := &DB{conn: conn}
	if err := db.upgrade(); err != nil {
		conn.Close()
		return nil, err
	}
	return db, nil
}

// Close releases the file.
func (db *DB) Close() error {
	return db.conn.Close()
}

// Version returns the schema version recorded in the file.
func (db *DB) Version() (int, error) {
	var v int
	if err := db.conn.QueryRow(`PRAGMA user_version`).Scan(&v); err != nil {
		return 0, fmt.Errorf("read schema version: %w", err)
	}
	return v, nil
}

// upgrade applies the schema steps the file has not seen yet, each in its own
// transaction together with the version bump.
func (db *DB) upgrade() error {
	from, err := db.Version()
	if err != nil {
		return err
	}
	if from > len(schema) {
		return fmt.Errorf("schema version %d is newer than this build (%d)", from, len(schema))
	}
	for v := from; v < len(schema); v++ {
		tx, err := db.conn.Begin()
		if err != nil {
			return fmt.Errorf("schema step %d: %w", v+1, err)
		}
		if _, err := tx.Exec(schema[v]); err != nil {
			tx.Rollback()
			return fmt.Errorf("schema step %d: %w", v+1, err)
		}
		if _, err := tx.Exec(fmt.Sprintf(`PRAGMA user_version = %d`, v+1)); err != nil {
			tx.Rollback()
			return fmt.Errorf("schema step %d: set version: %w", v+1, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("schema step %d: commit: %w", v+1, err)
		}
	}
	return nil
}
