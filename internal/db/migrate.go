package db

import (
	"fmt"     // Error wrapping
	"strings" // DSN options

	"pizza_pos/internal/config" // Database settings
	"pizza_pos/internal/domain" // Importing domain models

	"github.com/glebarez/sqlite" // Pure Go SQLite driver for GORM
	"github.com/sirupsen/logrus" // Structured logging
	"gorm.io/driver/mysql"       // MySQL driver for GORM
	"gorm.io/gorm"               // GORM ORM library
	"gorm.io/gorm/logger"        // GORM log levels
)

// Open connects to the database selected by cfg.DBDriver
func Open(cfg *config.Config) (*gorm.DB, error) {
	gcfg := &gorm.Config{}
	if cfg.IsProd {
		gcfg.Logger = logger.Default.LogMode(logger.Silent) // Keep SQL out of production logs
	}
	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case "mysql":
		dialector = mysql.Open(cfg.MySQLDSN())
	default:
		dsn := cfg.DBPath
		if !strings.Contains(dsn, "?") {
			dsn += "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)" // Enforce ON DELETE SET NULL on orders, wait on locked writes
		}
		dialector = sqlite.Open(dsn)
	}
	db, err := gorm.Open(dialector, gcfg)
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", cfg.DBDriver, err)
	}
	return db, nil
}

// OpenSQLite opens an SQLite database file, mainly for tools and tests
func OpenSQLite(path string) (*gorm.DB, error) {
	return Open(&config.Config{DBDriver: "sqlite", DBPath: path, IsProd: true})
}

// Migrate performs automatic migration for the database schema
func Migrate(db *gorm.DB) error {
	// AutoMigrate will create tables, missing foreign keys, constraints, columns and indexes
	if err := db.AutoMigrate(&domain.Account{}, &domain.Order{}); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	logrus.Info("Migration completed.") // Log successful migration
	return nil
}
