// Package testutil holds helpers shared by package tests.
package testutil

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	infradb "bookstore-api/internal/infrastructure/database"
)

// NewSQLiteDB opens a migrated SQLite database in a temp dir.
// The database is closed when the test ends.
func NewSQLiteDB(t *testing.T) *infradb.SQLiteDB {
	t.Helper()

	db, err := infradb.OpenSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err, "open sqlite")
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, infradb.Migrate(context.Background(), db), "migrate")
	return db
}
