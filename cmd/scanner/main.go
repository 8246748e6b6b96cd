package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/palgatox64/sonusitory/internal/db"
	"github.com/palgatox64/sonusitory/internal/drive"
	"github.com/palgatox64/sonusitory/internal/scan"
)

// One-shot scanner for operating a library from the command line,
// without going through the HTTP job queue.
func main() {
	var (
		userID   = flag.String("user", "", "User id whose library to scan")
		mode     = flag.String("mode", "full", "Scan mode (full, quick, covers_only)")
		logLevel = flag.String("log-level", getEnv("LOG_LEVEL", "info"), "Log level (debug, info, warn, error)")
	)
	flag.Parse()

	if os.Getenv("DEBUG") == "true" {
		if err := godotenv.Load("../../.env"); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: .env file not found. Using system environment variables.\n")
		}
	}

	logger, err := setupLogger(*logLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error setting up logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if *userID == "" {
		logger.Fatal("Missing required -user flag")
	}
	scanMode, err := parseMode(*mode)
	if err != nil {
		logger.Fatal("Invalid mode", zap.String("mode", *mode), zap.Error(err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		logger.Info("Received shutdown signal", zap.String("signal", sig.String()))
		cancel()
	}()

	database, err := db.Connect(ctx, db.ConfigFromEnv(), logger)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer database.Close()

	driveCfg, err := drive.ConfigFromEnv()
	if err != nil {
		logger.Fatal("Failed to load Google API configuration", zap.Error(err))
	}

	orchestrator := scan.NewOrchestrator(
		database,
		func(ctx context.Context, tokenJSON string) (scan.TreeClient, error) {
			return drive.NewClient(ctx, driveCfg, tokenJSON, logger)
		},
		scan.Config{Logger: logger},
	)

	progress := func(step string, current, total int) {
		logger.Info("scan progress",
			zap.String("step", step),
			zap.Int("current", current),
			zap.Int("total", total))
	}

	result, err := orchestrator.Run(ctx, *userID, scanMode, progress)
	if err != nil {
		logger.Fatal("Scan failed", zap.Error(err))
	}

	logger.Info("Scan finished",
		zap.Int("songsCreated", result.SongsCreated),
		zap.Int("coversFound", result.CoversFound))
	fmt.Println(result.Message)
}

func parseMode(mode string) (scan.Mode, error) {
	switch scan.Mode(mode) {
	case scan.ModeFull, scan.ModeQuick, scan.ModeCovers:
		return scan.Mode(mode), nil
	}
	return "", fmt.Errorf("unknown mode %q", mode)
}

func setupLogger(level string) (*zap.Logger, error) {
	var config zap.Config
	if level == "debug" {
		config = zap.NewDevelopmentConfig()
	} else {
		config = zap.NewProductionConfig()
	}

	switch level {
	case "debug":
		config.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	case "warn":
		config.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	case "error":
		config.Level = zap.NewAtomicLevelAt(zap.ErrorLevel)
	default:
		config.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}

	return config.Build()
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
