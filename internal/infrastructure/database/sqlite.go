package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"bookstore-api/pkg/database"
)

// SQLiteDB implements database.DB on a local SQLite file.
// Used for local development and for package tests.
type SQLiteDB struct {
	db *sql.DB
}

var _ database.DB = (*SQLiteDB)(nil)

// OpenSQLite opens (or creates) the SQLite database at path.
// Foreign keys are enabled so referential failures behave like PostgreSQL.
func OpenSQLite(path string) (*SQLiteDB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}

	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_foreign_keys=1", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// a single writer avoids SQLITE_BUSY between pooled connections
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	return &SQLiteDB{db: db}, nil
}

// sqlQuerier is satisfied by both *sql.DB and *sql.Tx
type sqlQuerier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

type sqlConn struct {
	q sqlQuerier
}

func (c sqlConn) Exec(ctx context.Context, query string, args ...any) (int64, error) {
	res, err := c.q.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, translateError(err)
	}
	return res.RowsAffected()
}

func (c sqlConn) QueryRow(ctx context.Context, query string, args ...any) database.Row {
	return row{scan: c.q.QueryRowContext(ctx, query, args...).Scan}
}

func (c sqlConn) Query(ctx context.Context, query string, args ...any) (database.Rows, error) {
	rows, err := c.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, translateError(err)
	}
	return sqlRows{rows}, nil
}

// sqlRows drops the error returned by (*sql.Rows).Close to match database.Rows
type sqlRows struct {
	*sql.Rows
}

func (r sqlRows) Close() { _ = r.Rows.Close() }

func (s *SQLiteDB) Dialect() database.Dialect { return database.DialectSQLite }

func (s *SQLiteDB) Exec(ctx context.Context, query string, args ...any) (int64, error) {
	return sqlConn{q: s.db}.Exec(ctx, query, args...)
}

func (s *SQLiteDB) QueryRow(ctx context.Context, query string, args ...any) database.Row {
	return sqlConn{q: s.db}.QueryRow(ctx, query, args...)
}

func (s *SQLiteDB) Query(ctx context.Context, query string, args ...any) (database.Rows, error) {
	return sqlConn{q: s.db}.Query(ctx, query, args...)
}

// InTx commits when fn returns nil and rolls back otherwise (panics included)
func (s *SQLiteDB) InTx(ctx context.Context, fn func(q database.Querier) error) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		} else if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = fn(sqlConn{q: tx}); err != nil {
		return err
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", translateError(err))
	}
	return nil
}

func (s *SQLiteDB) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	return nil
}

func (s *SQLiteDB) Close() error {
	return s.db.Close()
}
