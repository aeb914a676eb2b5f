// cmd/api/main.go

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v4/pgxpool"

	"trendpulse/internal/adapter/events"
	"trendpulse/internal/adapter/sheets"
	"trendpulse/internal/adapter/storage"
	"trendpulse/internal/config"
	"trendpulse/internal/domain/trend"
	"trendpulse/internal/logging"
	"trendpulse/internal/server"
	"trendpulse/internal/service/trends"
)

func main() {
	// Load .env.local (or ENV_FILE) before reading configuration
	envFile := os.Getenv("ENV_FILE")
	if envFile == "" {
		envFile = ".env.local"
	}
	if err := config.LoadEnvFile(envFile); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load env file: %v\n", err)
		os.Exit(1)
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(logging.Options{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: "trendpulse",
	})

	logger.Info().
		Bool("sheet_id_present", cfg.Sheets.SheetID != "").
		Bool("credentials_present", cfg.Sheets.CredentialsJSON != "").
		Str("env", cfg.Environment).
		Msg("Configuration loaded")

	// Setup context with cancellation for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Setup signal handling for graceful shutdown
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Optional archivers
	var archivers []trend.Archiver

	if cfg.Database.Enabled {
		db, err := initDatabase(ctx, cfg.Database)
		if err != nil {
			logger.Fatal().Err(err).Msg("Failed to initialize database")
		}
		defer db.Close()

		snapshots := storage.NewSnapshotStore(db)
		if err := snapshots.EnsureSchema(ctx); err != nil {
			logger.Fatal().Err(err).Msg("Failed to prepare snapshot schema")
		}
		archivers = append(archivers, snapshots)
	}

	if cfg.NATS.URL != "" {
		natsConn, err := events.Connect(cfg.NATS, logger)
		if err != nil {
			logger.Fatal().Err(err).Msg("Failed to connect to NATS")
		}
		defer natsConn.Close()

		archivers = append(archivers, events.NewPublisher(natsConn, cfg.NATS.Subject))
	}

	// Initialize services
	sheetsClient := sheets.NewClient(
		sheets.Config{
			CredentialsJSON: cfg.Sheets.CredentialsJSON,
			SheetID:         cfg.Sheets.SheetID,
			KeysTab:         cfg.Sheets.KeysTab,
		},
		sheets.Connect,
		logger,
	)

	trendService := trends.NewService(
		sheetsClient,
		trends.ServiceConfig{
			TrendsTTL: cfg.Cache.TrendsTTL,
			KeysTTL:   cfg.Cache.KeysTTL,
		},
		logger,
		nil,
		archivers...,
	)

	// Initialize HTTP server
	httpServer := server.NewServer(cfg.Server, cfg.Sheets.ContactEmail, trendService, logger)

	// Start HTTP server
	go func() {
		logger.Info().Str("host", cfg.Server.Host).Int("port", cfg.Server.Port).Msg("Starting HTTP server")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("HTTP server error")
		}
	}()

	// Wait for shutdown signal
	<-shutdown
	logger.Info().Msg("Shutdown signal received")

	// Create shutdown context with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("HTTP server shutdown error")
	}

	logger.Info().Msg("Shutdown complete")
}

// Initialize database connection
func initDatabase(ctx context.Context, cfg config.DatabaseConfig) (*pgxpool.Pool, error) {
	connString := fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Database, cfg.SSLMode,
	)

	poolConfig, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("unable to parse connection string: %w", err)
	}

	poolConfig.MaxConns = int32(cfg.MaxOpenConns)
	poolConfig.MinConns = int32(cfg.MaxIdleConns)
	poolConfig.MaxConnLifetime = cfg.MaxLifetime

	db, err := pgxpool.ConnectConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to database: %w", err)
	}

	// Test connection
	if err := db.Ping(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("unable to ping database: %w", err)
	}

	return db, nil
}
