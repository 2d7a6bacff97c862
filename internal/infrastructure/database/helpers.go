package database

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"

	"bookstore-api/pkg/database"
)

// PostgreSQL SQLSTATE codes
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// row adapts a driver Scan func so that "no rows" is reported as database.ErrNoRows
type row struct {
	scan func(dest ...any) error
}

func (r row) Scan(dest ...any) error {
	return translateError(r.scan(dest...))
}

// translateError maps driver specific errors to the sentinels in pkg/database.
// The original error is kept in the chain for logging.
func translateError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, pgx.ErrNoRows) || errors.Is(err, sql.ErrNoRows) {
		return database.ErrNoRows
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return fmt.Errorf("%w: %s", database.ErrUniqueViolation, pgErr.Message)
		case pgForeignKeyViolation:
			return fmt.Errorf("%w: %s", database.ErrForeignKeyViolation, pgErr.Message)
		}
		return err
	}

	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		switch liteErr.ExtendedCode {
		case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
			return fmt.Errorf("%w: %s", database.ErrUniqueViolation, liteErr.Error())
		case sqlite3.ErrConstraintForeignKey:
			return fmt.Errorf("%w: %s", database.ErrForeignKeyViolation, liteErr.Error())
		}
	}

	return err
}
