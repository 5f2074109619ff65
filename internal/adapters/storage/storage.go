// Package storage implements the quote record store on GORM.
package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	gormsqlite "github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Config selects and configures the database backend.
type Config struct {
	// Driver is "sqlite" for local/dev or "postgres" for production.
	Driver string

	// DSN is the driver-specific connection string.
	DSN string
}

// Open connects to the configured database and migrates the quotes table.
func Open(ctx context.Context, cfg Config, logger *slog.Logger) (*gorm.DB, error) {
	if logger == nil {
		logger = slog.Default()
	}

	gormCfg := &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	}

	var (
		db  *gorm.DB
		err error
	)

	switch strings.ToLower(cfg.Driver) {
	case "sqlite", "sqlite3":
		if dirErr := ensureSQLiteDirectory(cfg.DSN); dirErr != nil {
			return nil, fmt.Errorf("ensuring sqlite directory: %w", dirErr)
		}

		db, err = gorm.Open(gormsqlite.Open(cfg.DSN), gormCfg)

	case "postgres":
		db, err = gorm.Open(postgres.Open(cfg.DSN), gormCfg)

	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	if err != nil {
		return nil, fmt.Errorf("opening %s database: %w", cfg.Driver, err)
	}

	// SQLite allows one writer; a pool of one also keeps ":memory:" DSNs
	// on a single shared database instead of one per pooled connection.
	if strings.HasPrefix(strings.ToLower(cfg.Driver), "sqlite") {
		sqlDB, dbErr := db.DB()
		if dbErr != nil {
			return nil, fmt.Errorf("accessing sqlite connection pool: %w", dbErr)
		}

		sqlDB.SetMaxOpenConns(1)
	}

	err = db.WithContext(ctx).AutoMigrate(&quoteRecord{})
	if err != nil {
		return nil, fmt.Errorf("migrating quotes table: %w", err)
	}

	logger.InfoContext(ctx, "database opened",
		slog.String("driver", strings.ToLower(cfg.Driver)),
	)

	return db, nil
}

// ensureSQLiteDirectory creates the parent directory for a file-backed DSN.
func ensureSQLiteDirectory(dsn string) error {
	candidate := strings.TrimSpace(dsn)
	if candidate == "" || candidate == ":memory:" {
		return nil
	}

	candidate = strings.TrimPrefix(candidate, "file:")
	if idx := strings.Index(candidate, "?"); idx >= 0 {
		candidate = candidate[:idx]
	}

	if candidate == "" || candidate == ":memory:" {
		return nil
	}

	dir := filepath.Dir(candidate)
	if dir == "" || dir == "." {
		return nil
	}

	err := os.MkdirAll(dir, 0o750)
	if err != nil && !errors.Is(err, os.ErrExist) {
		return err
	}

	return nil
}
