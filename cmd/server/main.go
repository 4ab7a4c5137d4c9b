package main

import (
	"context" // context package is needed for Redis operations

	"pizza_pos/internal/account" // Account service
	"pizza_pos/internal/api"     // Custom package for API handlers
	"pizza_pos/internal/catalog" // Price list
	"pizza_pos/internal/config"  // Custom package for configuration
	"pizza_pos/internal/db"      // Database setup and repositories
	"pizza_pos/internal/order"   // Order model
	"pizza_pos/internal/session" // Session stores

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
)

// Main function to set up and run the server
func main() {
	cfg, err := config.LoadConfig() // Load configuration
	if err != nil {
		logrus.Fatalf("failed to load config: %v", err)
	}

	// Setup logger
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logrus.SetLevel(level)
	}

	// Connect to the database and bring the schema up to date
	gdb, err := db.Open(cfg)
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err) // Fatal error if DB connection fails
	}
	if err := db.Migrate(gdb); err != nil {
		logrus.Fatalf("failed to migrate DB: %v", err)
	}

	accounts := account.NewService(db.NewUserRepository(gdb))
	if err := accounts.Seed(context.Background()); err != nil {
		logrus.Fatalf("failed to seed accounts: %v", err)
	}

	// Redis is optional: without it sessions live in memory and nothing is cached
	var redisClient *redis.Client
	var sessions session.Store = session.NewMemoryStore(cfg.TokenTTL)
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr, // Redis server address
			Password: cfg.RedisPass, // Redis password
			DB:       cfg.RedisDB,   // Redis database number
		})
		// Test Redis connection
		if _, err := redisClient.Ping(context.Background()).Result(); err != nil {
			logrus.Fatalf("failed to connect to Redis: %v", err)
		}
		sessions = session.NewRedisStore(redisClient, cfg.TokenTTL)
	}

	orderLog := db.NewOrderRepository(gdb)

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup Gin
	r := gin.Default() // Gin router instance

	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logrus.Fatalf("failed to set trusted proxies: %v", err)
	}

	api.RegisterRoutes(r, api.Deps{
		Accounts:  accounts,                                                 // User directory
		Orders:    order.NewModel(catalog.Default(), orderLog, cfg.TaxRate), // Cart pricing
		OrderLog:  orderLog,                                                 // Stored orders
		Sessions:  sessions,                                                 // Session store
		Redis:     redisClient,                                              // Optional cache
		JWTSecret: cfg.JWTSecret,                                            // Token signing key
		TokenTTL:  cfg.TokenTTL,                                             // Token lifetime
	})

	logrus.WithFields(logrus.Fields{
		"port":      cfg.AppPort,          // Listen port
		"db_driver": cfg.DBDriver,         // Database backend
		"redis":     redisClient != nil,   // Redis sessions and cache
		"tax_rate":  cfg.TaxRate.String(), // Sales tax rate
	}).Info("Server running")
	if err := r.Run(":" + cfg.AppPort); err != nil { // Start the server on port cfg.AppPort
		logrus.Fatalf("server stopped: %v", err)
	}
}
