package main

import (
	"context"
	"log"
	"time"

	"dropship-store/cmd"
	"dropship-store/internal/data/repository"
	"dropship-store/internal/wire"
	"dropship-store/pkg/database"
	"dropship-store/pkg/events"
	"dropship-store/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.String("driver", config.Database.Driver),
		zap.Bool("debug", config.App.Debug),
	)

	// Connect to the document store
	startCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	store, err := database.Open(startCtx, config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := store.Close(closeCtx); err != nil {
			logger.Error("Failed to close database", zap.Error(err))
		}
	}()

	logger.Info("Database connected successfully", zap.String("driver", store.Driver()))

	// Initialize all repositories
	repos := repository.NewRepository(store, logger)
	if err := repos.Migrate(startCtx); err != nil {
		logger.Fatal("Failed to migrate database", zap.Error(err))
	}

	publisher := events.New(config.Kafka.Brokers, config.Kafka.Topic)
	defer func() {
		if err := publisher.Close(); err != nil {
			logger.Error("Failed to close event publisher", zap.Error(err))
		}
	}()

	// Wire all dependencies
	app := wire.Wiring(repos, config, publisher, logger)

	if err := app.Service.Auth.SeedAdmin(startCtx); err != nil {
		logger.Fatal("Failed to seed admin account", zap.Error(err))
	}

	// Start server
	logger.Info("Starting HTTP server", zap.String("port", config.App.Port))

	if err := cmd.APIServer(app.Router, config.App.Port, logger); err != nil {
		logger.Error("Server stopped", zap.Error(err))
		return
	}
	logger.Info("Server stopped gracefully")
}
