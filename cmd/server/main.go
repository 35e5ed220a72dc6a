package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/mcoot/scrabble-go2/internal/api"
	"github.com/mcoot/scrabble-go2/internal/factory"
	redisstorage "github.com/mcoot/scrabble-go2/internal/storage/redis"
	sqlitestorage "github.com/mcoot/scrabble-go2/internal/storage/sqlite"
)

func main() {
	// Set up logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// A .env file is optional; real environment variables take precedence
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logger.Warn("could not load .env file", slog.String("error", err.Error()))
	}

	// Build factory config from environment
	cfg := factory.Config{
		DictionaryPath: os.Getenv("DICTIONARY_PATH"),
		Logger:         logger,
		StorageType:    os.Getenv("STORAGE_TYPE"),
	}

	switch cfg.StorageType {
	case factory.StorageTypeRedis:
		redisURL := os.Getenv("REDIS_URL")
		if redisURL == "" {
			logger.Error("REDIS_URL required when STORAGE_TYPE=redis")
			os.Exit(1)
		}
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = redisURL
		cfg.RedisConfig = &redisCfg
	case factory.StorageTypeSQLite:
		sqliteCfg := sqlitestorage.DefaultConfig()
		if path := os.Getenv("SQLITE_PATH"); path != "" {
			sqliteCfg.Path = path
		}
		cfg.SQLiteConfig = &sqliteCfg
	}

	if seed := os.Getenv("RANDOM_SEED"); seed != "" {
		n, err := strconv.ParseUint(seed, 10, 64)
		if err != nil {
			logger.Error("RANDOM_SEED must be an unsigned integer", slog.String("value", seed))
			os.Exit(1)
		}
		cfg.RandomSeed = &n
		logger.Warn("using seeded randomness, bags are reproducible", slog.Uint64("seed", n))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Create application factory
	app, err := factory.New(ctx, cfg)
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("dictionary loaded", slog.Int("words", app.DictionaryService.WordCount()))

	router := api.NewRouter(api.RouterConfig{
		Logger:         logger,
		GameController: app.GameController,
		Dictionary:     app.DictionaryService,
	})

	// Create server
	serverConfig, err := api.ServerConfigFromEnv(os.Getenv)
	if err != nil {
		logger.Error("invalid server config", slog.String("error", err.Error()))
		os.Exit(1)
	}
	server := api.NewServer(router, serverConfig, logger)

	// Handle graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		logger.Info("shutdown signal received")
		cancel()
	}()

	// Start server in goroutine
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	// Wait for shutdown or error
	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	case <-ctx.Done():
		if err := server.Shutdown(context.Background()); err != nil {
			logger.Error("shutdown error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	if closer, ok := app.Storage.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			logger.Warn("failed to close storage", slog.String("error", err.Error()))
		}
	}

	logger.Info("server stopped")
}
