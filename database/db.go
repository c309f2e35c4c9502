package database

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	_ "github.com/lib/pq" // registers the "postgres" database/sql driver
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/goldenhive/inventory/config"
	"github.com/goldenhive/inventory/models"
)

// sqliteBusyTimeout is how long a sqlite writer waits for a competing lock, in milliseconds.
const sqliteBusyTimeout = 5000

// Open connects to the configured store and verifies the connection.
// The caller owns the returned handle and closes it with Close.
func Open(ctx context.Context, cfg *config.Config, log *slog.Logger) (*gorm.DB, error) {
	dialector, err := buildDialector(cfg.DBDriver, cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("database: build dialector: %w", err)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         NewGormLogger(log, 200*time.Millisecond),
		TranslateError: true,
		NowFunc: func() time.Time {
			return time.Now().UTC().Truncate(time.Microsecond)
		},
	})
	if err != nil {
		return nil, fmt.Errorf("database: open: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("database: get sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.DBMaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.DBMaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.DBConnMaxLifetime)

	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("database: ping: %w", err)
	}

	log.Info("database connected", "driver", cfg.DBDriver)
	return db, nil
}

// Migrate creates or updates the products table.
func Migrate(ctx context.Context, db *gorm.DB) error {
	if err := db.WithContext(ctx).AutoMigrate(&models.Product{}); err != nil {
		return fmt.Errorf("database: migrate: %w", err)
	}
	return nil
}

// Ping checks that the store still answers.
func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close releases the underlying connection pool.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func buildDialector(driver, dsn string) (gorm.Dialector, error) {
	switch driver {
	case config.DriverSQLite:
		return sqlite.Open(withBusyTimeout(dsn)), nil
	case config.DriverPostgres:
		return postgres.New(postgres.Config{
			DriverName: "postgres",
			DSN:        dsn,
		}), nil
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q (supported: sqlite, postgres)", driver)
	}
}

func withBusyTimeout(dsn string) string {
	if strings.Contains(dsn, "_busy_timeout") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return fmt.Sprintf("%s%s_busy_timeout=%d", dsn, sep, sqliteBusyTimeout)
}
