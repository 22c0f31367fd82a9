package main

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"

	"planpal-api/config"
	"planpal-api/database"
	"planpal-api/jobs"
	"planpal-api/middleware"
	"planpal-api/routes"
	"planpal-api/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.Initialize(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Run migrations
	if err := database.Migrate(db); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Seed database with test data (optional - for development)
	if err := database.SeedData(db); err != nil {
		log.Printf("Warning: Failed to seed database: %v", err)
	}

	// Set Gin mode based on environment
	if cfg.Port == "8080" { // Development
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// Shared services: the vote ledger must outlive individual requests
	voteService := services.NewVoteService()
	emailService := services.NewEmailService(cfg)

	// Create router
	router := gin.Default()

	// Setup CORS middleware
	router.Use(routes.SetupCORS())

	// Request logging, rate limiting and security headers
	router.Use(middleware.RequestLogger())
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.RateLimit(120, 30))
	router.Use(middleware.ValidateJSON())

	// Recovery middleware
	router.Use(gin.Recovery())

	// Setup routes
	routes.SetupRoutes(router, db, cfg, voteService, emailService)

	// Drop vote ledgers for plans whose date has passed
	cleanupJob := jobs.NewLedgerCleanupJob(db, voteService, time.Hour)
	cleanupJob.Start()

	// Start server
	log.Printf("Starting PlanPal API server on port %s", cfg.Port)
	log.Printf("Health check available at: http://localhost:%s/ping", cfg.Port)

	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
