// Package testutil provides helpers shared by the package tests.
package testutil

import (
	"database/sql"
	_ "github.com/mattn/go-sqlite3"
	"task-service/migrations"
	"testing"
)

// NewDB opens a migrated in-memory SQLite database that is closed when the test ends.
func NewDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	// every pooled connection would otherwise get its own empty database
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	if err := migrations.AutoMigrate("sqlite3", 0, db); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}
