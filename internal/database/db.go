// Package database provides the SQLite-backed keyword and settings store.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS keywords (
	id       INTEGER PRIMARY KEY AUTOINCREMENT,
	keyword  TEXT    NOT NULL UNIQUE,
	is_regex INTEGER NOT NULL DEFAULT 0
);
CREATE TABLE IF NOT EXISTS config (
	key   TEXT PRIMARY KEY,
	value TEXT
);
`

// DB wraps a database connection and provides keyword and settings
// operations.
type DB struct {
	conn *sql.DB
}

// Open opens (creating if necessary) the SQLite database at the given
// path and ensures the schema exists. Concurrent event handlers are
// serialized through a single connection, which keeps every operation a
// plain read-modify-write without SQLITE_BUSY handling.
func Open(path string) (*DB, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	conn.SetMaxOpenConns(1)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := conn.ExecContext(ctx, schema); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	slog.Info("Opened keyword database", "path", path)
	return &DB{conn: conn}, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	if db.conn != nil {
		return db.conn.Close()
	}
	return nil
}
