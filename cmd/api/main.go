package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/lib/pq"
	"github.com/uptrace/bun"

	_ "github.com/ulavalmarket/marketplace-api/docs" // Swagger docs (generated)
	"github.com/ulavalmarket/marketplace-api/internal/auth"
	"github.com/ulavalmarket/marketplace-api/internal/config"
	"github.com/ulavalmarket/marketplace-api/internal/database"
	httpServer "github.com/ulavalmarket/marketplace-api/internal/http"
	"github.com/ulavalmarket/marketplace-api/internal/listing"
	"github.com/ulavalmarket/marketplace-api/internal/logging"
	"github.com/ulavalmarket/marketplace-api/internal/user"
)

// @title           ULaval Marketplace API
// @version         1.0
// @description     Campus marketplace backend with JWT authentication and listings.

// @contact.name   API Support
// @contact.email  support@example.com

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the access token.

func main() {
	if err := run(); err != nil {
		log.Fatalf("Application error: %v", err)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize logger
	logger := logging.NewLoggerWithLevel(cfg.Server.IsDevelopment(), logging.ParseLevel(cfg.Log.Level))
	logger.Info("starting application",
		"env", cfg.Server.Env,
		"port", cfg.Server.Port,
		"storage", cfg.Server.StorageBackend,
	)

	// Initialize repositories
	var (
		userRepo    user.Repository
		sessionRepo auth.SessionRepository
	)
	switch cfg.Server.StorageBackend {
	case config.StoragePostgres:
		db, err := initDB(cfg.Database)
		if err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
		defer db.Close()

		userRepo = user.NewPostgresRepository(db)
		sessionRepo = auth.NewPostgresSessionRepository(db)
	default:
		userRepo = user.NewMemoryRepository()
		sessionRepo = auth.NewMemorySessionRepository()
	}

	// Listings live in memory regardless of the storage backend
	listingRepo := listing.NewMemoryRepository()

	// Initialize auth services
	hasher := auth.NewPasswordHasher()
	jwtService, err := auth.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.TokenLifetime)
	if err != nil {
		return fmt.Errorf("failed to initialize JWT service: %w", err)
	}

	authService := auth.NewService(userRepo, sessionRepo, hasher, jwtService)
	listingService := listing.NewService(listingRepo)

	// Initialize HTTP handlers
	authHandler := auth.NewHandler(authService)
	authMiddleware := auth.NewMiddleware(jwtService)
	listingHandler := listing.NewHandler(listingService, userRepo)

	// Initialize router
	router := httpServer.NewRouter(cfg, authHandler, authMiddleware, listingHandler, logger)

	// Initialize HTTP server
	serverAddr := ":" + cfg.Server.Port
	server := httpServer.NewServer(
		serverAddr,
		router,
		cfg.Server.ReadTimeout,
		cfg.Server.WriteTimeout,
		logger,
	)

	// Start server in a goroutine
	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- server.Start()
	}()

	// Wait for interrupt signal or server error
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case sig := <-shutdown:
		logger.Info("received shutdown signal", "signal", sig.String())

		// Graceful shutdown with timeout
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// initDB initializes the database connection and returns a Bun DB instance
func initDB(cfg config.DatabaseConfig) (*bun.DB, error) {
	sqlDB, err := sql.Open("postgres", cfg.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Verify connection
	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	// Set connection pool settings
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	return database.NewBunDB(sqlDB), nil
}
