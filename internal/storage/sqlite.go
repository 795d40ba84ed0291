package storage

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

// SQLiteKV is a slot stored as one row of the slots table
type SQLiteKV struct {
	db  *sql.DB
	key string
}

// OpenSQLite opens or creates the database at dbPath and returns the slot key
func OpenSQLite(dbPath, key string) (*SQLiteKV, error) {
	// Ensure directory exists
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// One connection keeps an in-memory database alive across calls
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := migrate(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &SQLiteKV{db: db, key: key}, nil
}

// Load reads the slot's value
func (s *SQLiteKV) Load(ctx context.Context) ([]byte, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM slots WHERE key = ?`, s.key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrEmpty
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read slot %q: %w", s.key, err)
	}
	return []byte(value), nil
}

// Save upserts the slot's value
func (s *SQLiteKV) Save(ctx context.Context, data []byte) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO slots (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		s.key, string(data), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to write slot %q: %w", s.key, err)
	}
	return nil
}

// Close closes the database
func (s *SQLiteKV) Close() error {
	return s.db.Close()
}
