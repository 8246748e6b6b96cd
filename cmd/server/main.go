package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/palgatox64/sonusitory/internal/db"
	"github.com/palgatox64/sonusitory/internal/drive"
	"github.com/palgatox64/sonusitory/internal/jobs"
	"github.com/palgatox64/sonusitory/internal/scan"
	"github.com/palgatox64/sonusitory/internal/service"
)

func main() {
	if os.Getenv("DEBUG") == "true" {
		if err := godotenv.Load("../../.env"); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: .env file not found. Using system environment variables.\n")
		}
	}

	logger, err := setupLogger(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error setting up logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	service.InitializeLogger(logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	database, err := db.Connect(ctx, db.ConfigFromEnv(), logger)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer database.Close()

	if err := database.Migrate(); err != nil {
		logger.Fatal("Failed to apply migrations", zap.Error(err))
	}

	driveCfg, err := drive.ConfigFromEnv()
	if err != nil {
		logger.Fatal("Failed to load Google API configuration", zap.Error(err))
	}

	orchestrator := scan.NewOrchestrator(
		database,
		func(ctx context.Context, tokenJSON string) (scan.TreeClient, error) {
			return drive.NewClient(ctx, driveCfg, tokenJSON, logger)
		},
		scan.Config{
			Logger:  logger,
			Metrics: scan.NewMetrics(),
		},
	)

	status := jobs.NewStatusStore()
	runner := jobs.NewRunner(orchestrator, status, logger)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		logger.Info("Received shutdown signal", zap.String("signal", sig.String()))
		cancel()
	}()

	go runner.Start(ctx)

	svc := service.New(database, runner, status, driveCfg)
	router := svc.Router(logger)

	port := getEnv("PORT", "8080")
	logger.Info("Sonusitory server starting", zap.String("port", port))
	if err := router.Run(":" + port); err != nil {
		logger.Fatal("Server failed", zap.Error(err))
	}
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
