// Package testutil holds helpers shared by package tests.
package testutil

import (
	"context"
	"path/filepath"
	"testing"

	"pizza_pos/internal/account"
	"pizza_pos/internal/db"

	"gorm.io/gorm"
)

// SetupTestDB creates a migrated SQLite database in a temporary directory
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	gdb, err := db.OpenSQLite(filepath.Join(t.TempDir(), "pos.db"))
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return gdb
}

// SeededAccounts returns an account service over a fresh database holding
// the default admin and employee accounts
func SeededAccounts(t *testing.T) (*account.Service, *gorm.DB) {
	t.Helper()

	gdb := SetupTestDB(t)
	svc := account.NewService(db.NewUserRepository(gdb))
	if err := svc.Seed(context.Background()); err != nil {
		t.Fatalf("Failed to seed accounts: %v", err)
	}
	return svc, gdb
}
