// Package testutil provides database fixtures shared by the repository and
// service tests.
package testutil

import (
	"database/sql"
	"testing"

	"github.com/planvox/planvox/internal/db"
)

// NewTestDB opens a migrated in-memory database and closes it when the test
// finishes.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("opening in-memory database: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return database
}

// NewTestUoW wraps database in a transactional unit of work.
func NewTestUoW(database *sql.DB) db.UnitOfWork {
	return db.NewSQLiteUnitOfWork(database)
}
