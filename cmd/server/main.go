package main

import (
	"context" // context package is needed for Redis operations

	"debt_ledger/internal/api"    // HTTP handlers and router
	"debt_ledger/internal/auth"   // Auth and session service
	"debt_ledger/internal/config" // Custom package for configuration
	"debt_ledger/internal/db"     // Database connection and migration
	"debt_ledger/internal/ledger" // Ledger service
	"debt_ledger/internal/store"  // Persistence

	"github.com/gin-gonic/gin"      // Gin web framework
	"github.com/redis/go-redis/v9"  // Redis client
	"github.com/shopspring/decimal" // Money amounts
	"github.com/sirupsen/logrus"    // Logrus for structured logging
)

// Main function to set up and run the server
func main() {
	cfg := config.LoadConfig() // Load configuration

	// Setup logger
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logrus.SetLevel(level)
	} else {
		logrus.Warnf("unknown LOG_LEVEL %q, using info", cfg.LogLevel)
	}

	// Refuse the placeholder secret in production
	if cfg.IsProd && cfg.SessionSecret == "change-me" {
		logrus.Fatal("SESSION_SECRET must be set in production")
	}

	// Connect to the database and bring the schema up to date
	gdb, err := db.Open(cfg)
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err) // Fatal error if DB connection fails
	}
	if err := db.Migrate(gdb); err != nil {
		logrus.Fatalf("failed to migrate DB: %v", err)
	}

	// Setup Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr, // Redis server address
		Password: cfg.RedisPass, // Redis password
		DB:       cfg.RedisDB,   // Redis database number
	})

	// Test Redis connection
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		logrus.Fatalf("failed to connect to Redis: %v", err)
	}

	st := store.New(gdb)
	authSvc := auth.NewService(st, auth.NewSessionStore(redisClient, cfg.SessionTTL), auth.Options{
		Secret: cfg.SessionSecret,
	})

	// Create the default admin on first start
	if _, err := authSvc.EnsureAdmin(context.Background(), cfg.AdminUsername, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		logrus.Fatalf("failed to bootstrap admin: %v", err)
	}

	decimal.MarshalJSONWithoutQuotes = true // Amounts go out as JSON numbers

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	r, err := api.NewRouter(api.Deps{
		Auth:      authSvc,
		Ledger:    ledger.NewService(st),
		DB:        st,
		Redis:     redisClient,
		StaticDir: cfg.StaticDir,
		Currency:  cfg.Currency,
		Secure:    cfg.IsProd,
	})
	if err != nil {
		logrus.Fatalf("failed to build router: %v", err)
	}

	logrus.WithField("port", cfg.AppPort).Info("Server running") // Log server start
	if err := r.Run(":" + cfg.AppPort); err != nil {
		logrus.Fatalf("server stopped: %v", err)
	}
}
