package main

import (
	"context" // Seeding context

	"pizza_pos/internal/account" // Default accounts
	"pizza_pos/internal/config"  // Custom import path (Config)
	"pizza_pos/internal/db"      // Custom import path (Database)

	"github.com/sirupsen/logrus" // Structured logging
)

// Main entry point for migration
func main() {
	cfg, err := config.LoadConfig() // Load configuration
	if err != nil {
		logrus.Fatalf("failed to load config: %v", err)
	}

	gdb, err := db.Open(cfg)
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		logrus.Fatalf("failed to migrate DB: %v", err)
	}
	if err := account.NewService(db.NewUserRepository(gdb)).Seed(context.Background()); err != nil {
		logrus.Fatalf("failed to seed accounts: %v", err)
	}
}
