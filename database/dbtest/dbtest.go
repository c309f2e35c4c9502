// Package dbtest opens throwaway in-memory sqlite stores for tests.
package dbtest

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/goldenhive/inventory/config"
	"github.com/goldenhive/inventory/database"
	"github.com/goldenhive/inventory/logger"
)

// New returns a migrated, empty store private to the calling test.
func New(t testing.TB) *gorm.DB {
	t.Helper()

	cfg := &config.Config{
		DBDriver:       config.DriverSQLite,
		DatabaseDSN:    fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()),
		DBMaxOpenConns: 1,
		DBMaxIdleConns: 1,
	}

	ctx := context.Background()
	db, err := database.Open(ctx, cfg, logger.Discard())
	if err != nil {
		t.Fatalf("dbtest: open: %v", err)
	}
	t.Cleanup(func() { _ = database.Close(db) })

	if err := database.Migrate(ctx, db); err != nil {
		t.Fatalf("dbtest: migrate: %v", err)
	}
	return db
}
