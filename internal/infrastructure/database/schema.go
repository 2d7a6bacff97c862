package database

import (
	"context"
	"fmt"

	"bookstore-api/pkg/database"
)

// Schema is kept in code so the migrate command works for both drivers
// without shipping migration files.

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS authors (
		id         SERIAL PRIMARY KEY,
		first_name TEXT NOT NULL,
		last_name  TEXT NOT NULL,
		bio        TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS books (
		id        SERIAL PRIMARY KEY,
		title     TEXT NOT NULL,
		year      INTEGER,
		isbn      TEXT NOT NULL,
		summary   VARCHAR(500),
		image     TEXT,
		price     NUMERIC(12, 2) CHECK (price >= 0),
		author_id INTEGER REFERENCES authors (id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_books_author_id ON books (author_id)`,
	`CREATE TABLE IF NOT EXISTS accounts (
		id            UUID PRIMARY KEY,
		email         TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS account_roles (
		account_id UUID NOT NULL REFERENCES accounts (id) ON DELETE CASCADE,
		role       TEXT NOT NULL CHECK (role IN ('Administrator', 'Customer')),
		PRIMARY KEY (account_id, role)
	)`,
}

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS authors (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		first_name TEXT NOT NULL,
		last_name  TEXT NOT NULL,
		bio        TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS books (
		id        INTEGER PRIMARY KEY AUTOINCREMENT,
		title     TEXT NOT NULL,
		year      INTEGER,
		isbn      TEXT NOT NULL,
		summary   TEXT CHECK (summary IS NULL OR length(summary) <= 500),
		image     TEXT,
		price     TEXT,
		author_id INTEGER REFERENCES authors (id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_books_author_id ON books (author_id)`,
	`CREATE TABLE IF NOT EXISTS accounts (
		id            TEXT PRIMARY KEY,
		email         TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		created_at    TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS account_roles (
		account_id TEXT NOT NULL REFERENCES accounts (id) ON DELETE CASCADE,
		role       TEXT NOT NULL CHECK (role IN ('Administrator', 'Customer')),
		PRIMARY KEY (account_id, role)
	)`,
}

// Migrate creates every table the API needs. Idempotent.
func Migrate(ctx context.Context, db database.DB) error {
	statements := postgresSchema
	if db.Dialect() == database.DialectSQLite {
		statements = sqliteSchema
	}

	return db.InTx(ctx, func(q database.Querier) error {
		for i, stmt := range statements {
			if _, err := q.Exec(ctx, stmt); err != nil {
				return fmt.Errorf("migration step %d: %w", i+1, err)
			}
		}
		return nil
	})
}
