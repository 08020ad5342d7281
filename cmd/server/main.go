package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"assettrack/internal/adapters/http/middleware"
	"assettrack/internal/adapters/http/routes"
	"assettrack/internal/adapters/persistence/models"
	"assettrack/internal/adapters/persistence/repositories"
	"assettrack/internal/config"
	"assettrack/internal/core/services"

	"github.com/gofiber/fiber/v2"

	_ "assettrack/docs" // Swagger docs
)

// @title AssetTrack API
// @version 1.0
// @description Asset and inventory management backend
// @termsOfService http://swagger.io/terms/

// @contact.name API Support

// @license.name MIT

// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer config.CloseDatabase()

	// Auto migrate (creates tables if not exist)
	if err := models.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to auto migrate: %v", err)
	}
	log.Println("Database migration completed")

	// Seed super admin and master data
	if err := config.SeedData(db, cfg); err != nil {
		log.Printf("Warning: Failed to seed data: %v", err)
	}

	// Background jobs: overdue scan and token cleanup
	reminderService := services.NewReminderService(
		repositories.NewAssignmentRepository(db),
		repositories.NewRefreshTokenRepository(db),
	)
	reminderService.Start()
	defer reminderService.Stop()

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "AssetTrack API v1.0",
		ErrorHandler: middleware.CustomErrorHandler,
	})

	// Setup middlewares
	middleware.Setup(app, cfg)

	// Setup routes (pass db and cfg for dependency injection)
	routes.Setup(app, db, cfg)

	// Graceful shutdown
	go gracefulShutdown(app)

	// Start server
	log.Printf("Server starting on port %s [MODE: %s]", cfg.Port, cfg.AppMode)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// gracefulShutdown handles graceful shutdown
func gracefulShutdown(app *fiber.App) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}
	log.Println("Server stopped gracefully")
}
