// Package store implements the persistence ports on database/sql.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"
)

// Store handles all relational database operations.
type Store struct {
	db *sql.DB
}

// Open connects to Postgres with pool tuning and returns a store instance.
func Open(databaseURL string) (*Store, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.PingContext(context.Background()); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &Store{db: db}, nil
}

// NewStore wraps an existing handle (used by tests with an in-memory DB).
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying *sql.DB for use in transactions.
func (s *Store) DB() *sql.DB {
	return s.db
}

// isUniqueViolation matches the engine-specific unique-constraint error
// text (lib/pq and sqlite phrase it differently).
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "UNIQUE constraint")
}
