// Package store opens the embedded SQLite database shared by every module
// and keeps its schema current.
package store

import (
	"context"
	"fmt"
	"log"

	"github.com/example/retail-pos/domain/ledger"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Options configures Open.
type Options struct {
	Path         string
	Debug        bool
	MaxOpenConns int
}

// Open connects to the SQLite file at opts.Path, upgrades tables left by
// older installations, runs auto-migrations and imports the rows of a
// desktop-era database.
func Open(opts Options) (*gorm.DB, error) {
	logLevel := logger.Silent
	if opts.Debug {
		logLevel = logger.Info
	}

	db, err := gorm.Open(sqlite.Open(opts.Path), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}
	maxOpen := opts.MaxOpenConns
	if maxOpen < 1 {
		maxOpen = 1
	}
	sqlDB.SetMaxOpenConns(maxOpen)

	if err := UpgradeSchema(db); err != nil {
		// Best effort: the columns that could be added are in place and
		// AutoMigrate gets a second chance at the rest.
		log.Printf("[store] Warning: schema upgrade incomplete: %v", err)
	}

	if err := Migrate(db); err != nil {
		sqlDB.Close()
		return nil, err
	}

	if err := ImportLegacy(db); err != nil {
		sqlDB.Close()
		return nil, err
	}
	return db, nil
}

// Migrate creates missing tables and columns for every ledger entity.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(ledger.Models()...); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// Close releases the underlying connection pool.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}
	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	return nil
}

// Ping checks that the database answers.
func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}
	return sqlDB.PingContext(ctx)
}

// VerifyTables returns the names of ledger tables missing from the database.
func VerifyTables(db *gorm.DB) []string {
	var missing []string
	for _, model := range ledger.Models() {
		table := model.(interface{ TableName() string }).TableName()
		if !db.Migrator().HasTable(table) {
			missing = append(missing, table)
		}
	}
	return missing
}
