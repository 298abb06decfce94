package main

import (
	"context" // Context for the admin bootstrap

	"debt_ledger/internal/auth"   // Admin bootstrap
	"debt_ledger/internal/config" // Custom import path (Config)
	"debt_ledger/internal/db"     // Custom import path (Database)
	"debt_ledger/internal/store"  // Persistence

	"github.com/sirupsen/logrus" // Logrus for structured logging
)

// Main entry point for migration
func main() {
	cfg := config.LoadConfig() // Load configuration
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	gdb, err := db.Open(cfg)
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		logrus.Fatalf("failed to migrate DB: %v", err)
	}

	// Sessions are not needed to create the admin account
	authSvc := auth.NewService(store.New(gdb), nil, auth.Options{Secret: cfg.SessionSecret})
	created, err := authSvc.EnsureAdmin(context.Background(), cfg.AdminUsername, cfg.AdminEmail, cfg.AdminPassword)
	if err != nil {
		logrus.Fatalf("failed to bootstrap admin: %v", err)
	}
	if !created {
		logrus.Info("Admin account already present")
	}
}
