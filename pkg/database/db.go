package database

import (
	"context"
	"errors"
	"fmt"
)

// Driver-neutral errors. Implementations in internal/infrastructure/database
// translate pgx / sqlite3 errors into these so repositories never import a driver.
var (
	ErrNoRows              = errors.New("no rows in result set")
	ErrUniqueViolation     = errors.New("unique constraint violation")
	ErrForeignKeyViolation = errors.New("foreign key constraint violation")
)

// Dialect chọn cú pháp placeholder cho từng driver
type Dialect string

const (
	DialectPostgres Dialect = "postgres"
	DialectSQLite   Dialect = "sqlite"
)

// Placeholder returns the n-th (1-based) bind parameter for the dialect.
func (d Dialect) Placeholder(n int) string {
	if d == DialectPostgres {
		return fmt.Sprintf("$%d", n)
	}
	return "?"
}

// Row is the result of QueryRow. Scan returns ErrNoRows when nothing matched.
type Row interface {
	Scan(dest ...any) error
}

// Rows is a forward-only cursor.
type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close()
}

// Querier is the part of a connection that both a pool and a transaction expose.
type Querier interface {
	// Exec runs a statement and returns the number of affected rows
	Exec(ctx context.Context, query string, args ...any) (int64, error)
	QueryRow(ctx context.Context, query string, args ...any) Row
	Query(ctx context.Context, query string, args ...any) (Rows, error)
}

// DB is the store handle shared by all repositories.
// InTx runs fn inside one transaction: commit when fn returns nil, rollback otherwise.
type DB interface {
	Querier
	Dialect() Dialect
	InTx(ctx context.Context, fn func(q Querier) error) error
	Ping(ctx context.Context) error
	Close() error
}
