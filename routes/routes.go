package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"planpal-api/config"
	"planpal-api/controllers"
	"planpal-api/middleware"
	"planpal-api/repositories"
	"planpal-api/services"
)

// SetupCORS allows the web client to talk to the API from another origin.
func SetupCORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

func SetupRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, voteService *services.VoteService, emailService *services.EmailService) {
	planRepo := repositories.NewPlanRepository(db)
	smsService := services.NewSMSService(cfg)
	placesService := services.NewPlacesService(cfg)
	weatherService := services.NewWeatherService(cfg)

	planController := controllers.NewPlanController(planRepo, cfg)
	rsvpController := controllers.NewRSVPController(planRepo)
	voteController := controllers.NewVoteController(planRepo, voteService)
	inviteController := controllers.NewInviteController(planRepo, emailService, smsService, cfg)
	venueController := controllers.NewVenueController(placesService, weatherService)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
			"status":  "healthy",
		})
	})

	// API version 1
	v1 := r.Group("/api/v1")

	// Public routes: the share code is the only access key
	plans := v1.Group("/plans")
	{
		plans.POST("", planController.CreatePlan)
		plans.GET("/:code", planController.GetPlan)
		plans.POST("/:code/rsvps", rsvpController.SubmitRSVP)
		plans.POST("/:code/votes", voteController.AddVote)
		plans.POST("/:code/date-votes", voteController.SubmitDateVote)
		plans.GET("/:code/results", voteController.GetResults)
		plans.POST("/:code/manage-token", planController.ManageToken)
	}

	// Creator-only management routes
	managed := v1.Group("/plans")
	managed.Use(middleware.ManageAuth(cfg.JWTSecret))
	{
		managed.PUT("/:code", planController.UpdatePlan)
		managed.POST("/:code/invites/email", inviteController.SendEmailInvites)
		managed.POST("/:code/invites/sms", inviteController.SendSMSInvites)
	}

	// Venue discovery and weather advice
	venues := v1.Group("/venues")
	{
		venues.GET("/search", venueController.SearchVenues)
	}
	v1.GET("/weather", venueController.GetWeather)
}
