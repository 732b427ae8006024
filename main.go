package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pattern-analyzer/config"
	"pattern-analyzer/internal/api"
	"pattern-analyzer/internal/binance"
	"pattern-analyzer/internal/cache"
	"pattern-analyzer/internal/database"
	"pattern-analyzer/internal/events"
	"pattern-analyzer/internal/logging"
	"pattern-analyzer/internal/scanner"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fallback := logging.New(logging.Config{})
		fallback.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logger := logging.New(logging.Config{Level: cfg.Logging.Level, Pretty: cfg.Logging.Pretty})
	logger.Info().Msg("Starting pattern analyzer")

	bus := events.NewBus()

	client := binance.NewClient(cfg.Binance.APIKey, cfg.Binance.SecretKey, logger)

	analysisCache := cache.New(cache.Config{
		Address:  cfg.Redis.Address,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		TTL:      cfg.Redis.TTLSecs,
	}, logger)
	defer analysisCache.Close()

	// persistence is optional; without a DB host the service still scans
	// and serves, it just keeps no history
	var repo *database.Repository
	if cfg.Database.Host != "" {
		db, err := database.New(database.Config{
			Host:     cfg.Database.Host,
			Port:     cfg.Database.Port,
			User:     cfg.Database.User,
			Password: cfg.Database.Password,
			Database: cfg.Database.Database,
			SSLMode:  cfg.Database.SSLMode,
		}, logger)
		if err != nil {
			logger.Fatal().Err(err).Msg("Failed to connect to database")
		}
		defer db.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		if err := db.RunMigrations(ctx); err != nil {
			cancel()
			logger.Fatal().Err(err).Msg("Failed to run migrations")
		}
		cancel()

		repo = database.NewRepository(db)
	} else {
		logger.Warn().Msg("No database configured, signal history disabled")
	}

	sc := scanner.New(client, analysisCache, repo, bus, scanner.Config{
		Enabled:      cfg.Scanner.Enabled,
		Symbols:      cfg.Scanner.Symbols,
		Timeframe:    cfg.Scanner.Timeframe,
		CandleLimit:  cfg.Scanner.CandleLimit,
		ScanInterval: time.Duration(cfg.Scanner.IntervalSecs) * time.Second,
		WorkerCount:  cfg.Scanner.WorkerCount,
	}, logger)
	sc.Start()

	server := api.NewServer(api.Config{
		Host:           cfg.Server.Host,
		Port:           cfg.Server.Port,
		ProductionMode: cfg.Server.ProductionMode,
		AllowedOrigins: cfg.Server.AllowedOrigins,
	}, client, analysisCache, repo, sc, bus, logger)

	go func() {
		if err := server.Start(); err != nil {
			logger.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	logger.Info().Msg("Shutting down")

	sc.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("Server shutdown failed")
	}

	logger.Info().Msg("Shutdown complete")
}
