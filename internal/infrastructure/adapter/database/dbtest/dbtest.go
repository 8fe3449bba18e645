// Package dbtest opens migrated in-memory sqlite databases for tests
package dbtest

import (
	"context"
	"testing"

	"github.com/amirhossein-jamali/polaroid-studio/internal/infrastructure/adapter/database/migration"
	"github.com/amirhossein-jamali/polaroid-studio/internal/infrastructure/adapter/logger"
	timeprovider "github.com/amirhossein-jamali/polaroid-studio/internal/infrastructure/adapter/time"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// NewSQLite returns a fresh migrated in-memory database that is closed when
// the test ends
func NewSQLite(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// every connection to :memory: is a separate database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	mgr := migration.NewMigrationManager(db, logger.NewNoopLogger(), timeprovider.NewClock())
	require.NoError(t, mgr.MigrateAll(context.Background()))

	return db
}
