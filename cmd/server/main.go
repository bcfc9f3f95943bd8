package main

import (
	"context"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"github.com/vacatio/backend/internal/live"
	"github.com/vacatio/backend/internal/router"
	"github.com/vacatio/backend/internal/storage"
	"github.com/vacatio/backend/pkg/cache"
	"github.com/vacatio/backend/pkg/config"
	"github.com/vacatio/backend/validators"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database connection
	db, err := config.InitDB(cfg)
	if err != nil {
		logrus.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.CloseDB()

	// Initialize the image attachment store
	imageStore, err := storage.NewImageStore(cfg.UploadsDir)
	if err != nil {
		logrus.Fatalf("Failed to initialize image store: %v", err)
	}

	// Optional Redis cache for the follower report
	cch, err := cache.New(context.Background(), cfg.RedisAddr, cfg.RedisPass)
	if err != nil {
		logrus.Fatalf("Failed to connect to Redis: %v", err)
	}
	if cch != nil {
		defer cch.Close()
	}

	// The live-update hub is constructed once here and handed to every
	// handler that publishes
	hub := live.NewHub()
	go hub.Run()
	defer hub.Shutdown()

	// Create Echo instance
	e := echo.New()
	e.Validator = validators.NewValidator()

	// Setup global middleware
	router.SetupMiddleware(e)

	// Setup routes and dependencies
	if err := router.SetupRoutes(e, db.Postgres, imageStore, hub, cch, cfg.JWTSecret); err != nil {
		logrus.Fatalf("Failed to set up routes: %v", err)
	}

	// Start server
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
