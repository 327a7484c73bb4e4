// Package dbtest provides throwaway databases for tests.
package dbtest

import (
	"testing"

	"github.com/AS-AI-CS/EndpointerSubmission/internal/config"
	"github.com/AS-AI-CS/EndpointerSubmission/internal/database"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Open opens a private in-memory SQLite database with all tables migrated.
// The database is closed when the test finishes.
func Open(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := database.Open(config.DatabaseConfig{
		Driver: config.DriverSQLite,
		Path:   "file:" + uuid.NewString() + "?mode=memory&cache=shared",
	}, "release")
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}
	t.Cleanup(func() { _ = database.Close(db) })

	return db
}
