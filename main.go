// main.go
package main

import (
	"context"
	"log"
	"time"

	"clinic-backend/cmd"
	"clinic-backend/internal/data/repository"
	"clinic-backend/internal/usecase"
	"clinic-backend/internal/wire"
	"clinic-backend/pkg/database"
	"clinic-backend/pkg/mailer"
	"clinic-backend/pkg/utils"

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
		zap.Bool("debug", config.App.Debug),
	)

	// Connect to database
	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	// Initialize all repositories
	repos := repository.NewRepository(db, config, logger)

	// Outbound email transport
	mail := mailer.NewSMTPMailer(config.Email)

	// Periodic cleanup of expired session rows
	go usecase.StartSessionSweeper(context.Background(), repos.Session, time.Hour, logger)

	// Wire all dependencies
	app := wire.Wiring(repos, mail, config, logger)

	// Start server
	logger.Info("Starting HTTP server", zap.String("port", config.App.Port))

	cmd.APIServer(app.Router, config.App.Port)
}
