// Package main provides the entry point for the ClipSight extraction service.
// @title ClipSight Video Metadata API
// @version 1.0
// @description A Go service that resolves normalized video metadata through a multi-provider fallback chain.

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /

package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/clipsight/clipsight/docs" // Import for swagger docs
	"github.com/clipsight/clipsight/internal/api/handlers"
	"github.com/clipsight/clipsight/internal/api/router"
	"github.com/clipsight/clipsight/internal/config"
	"github.com/clipsight/clipsight/internal/database"
	"github.com/clipsight/clipsight/internal/services/resolver"
	"github.com/clipsight/clipsight/internal/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := utils.GetLogger()
	logger.Info("Starting ClipSight extraction service")

	if creds := cfg.Credentials.Available(); len(creds) > 0 {
		logger.Infof("Provider credentials configured: %v", creds)
	} else {
		logger.Warn("No provider credentials configured - only credential-free adapters will run")
	}

	// Snapshot store is optional; the service runs without it.
	var db *database.MongoDB
	if cfg.Mongo.URI != "" {
		db, err = database.NewMongoDB(&cfg.Mongo)
		if err != nil {
			logger.Fatalf("Failed to connect to MongoDB: %v", err)
		}
		logger.Info("Extraction snapshot store enabled")
	} else {
		logger.Info("MONGO_URI not set - extraction snapshots disabled")
	}

	videoResolver := resolver.New(cfg)

	videoHandler := handlers.NewVideoHandler(videoResolver, db)
	healthHandler := handlers.NewHealthHandler(db)

	r := router.NewRouter(cfg, videoHandler, healthHandler)

	go func() {
		logger.Infof("Starting server on %s:%s", cfg.Server.Host, cfg.Server.Port)
		if err := r.Start(); err != nil {
			logger.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if db != nil {
		if err := db.Close(ctx); err != nil {
			logger.Errorf("Failed to close database connection: %v", err)
		}
	}

	logger.Info("Server shutdown complete")
}
