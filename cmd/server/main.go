package main

import (
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/vantora-labs/vantora/backend/internal/router"
	"github.com/vantora-labs/vantora/backend/pkg/config"
	"github.com/vantora-labs/vantora/backend/pkg/logger"
	"github.com/vantora-labs/vantora/backend/pkg/validators"
)

func main() {
	// Load environment variables from a .env file when present; otherwise
	// the process environment is used as-is.
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	logger.Init(cfg.LogLevel)
	if cfg.Env == "development" {
		logger.SetTextFormatter()
	}

	// Initialize database connections
	db, err := config.InitDB(cfg)
	if err != nil {
		logger.Log.Fatalf("Failed to initialize databases: %v", err)
	}
	defer db.CloseDB()

	// Create Echo instance
	e := echo.New()

	// Setup global middleware
	router.SetupMiddleware(e)

	// Validator
	e.Validator = validators.New()

	// Setup routes and dependencies
	router.SetupRoutes(e, db.Postgres, db.Mongo, cfg)

	// Start server
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
