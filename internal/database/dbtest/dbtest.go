// Package dbtest opens migrated in-memory SQLite databases for package tests.
package dbtest

import (
	"log/slog"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"creator-finance/internal/database"
)

// New returns a fresh migrated database that is closed when t finishes.
func New(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := database.Open(sqlite.Open(":memory:"), slog.LevelError)
	require.NoError(t, err, "failed to open test database")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// every connection to :memory: is a separate database
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db), "failed to migrate test database")

	t.Cleanup(func() { _ = database.Close(db) })
	return db
}
