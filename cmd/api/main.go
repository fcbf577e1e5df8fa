package main

import (
	"fmt"
	"net/http"
	"os"

	"daybook/internal/config"
	"daybook/internal/database"
	"daybook/internal/events"
	"daybook/internal/handlers"
	"daybook/internal/logger"
	"daybook/internal/middleware"
	"daybook/internal/services"
	"daybook/internal/validator"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "daybook/internal/docs" // Import swagger docs
)

// @title           Daybook API
// @version         1.0
// @description     Daybook is a personal journaling application: dated entries with mood and category, searchable lists, calendar and statistics views.
// @termsOfService  http://swagger.io/terms/

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	dbManager, err := database.NewManager(database.NewConfig())
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	if err := dbManager.Migrate(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	validator.Register()

	// Initialize services
	db := dbManager.DB()
	dispatcher := events.NewDispatcher()
	userService := services.NewUserService(db)
	entryService := services.NewEntryService(db, dispatcher)
	statsService := services.NewStatsService(db)
	auditService := services.NewAuditService(db)

	// Every entry mutation triggers a best-effort stats recomputation.
	dispatcher.Subscribe(func(e events.EntryEvent) error {
		return statsService.RecomputeUserStats(e.UserID)
	})

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService, auditService)
	entryHandler := handlers.NewEntryHandler(entryService, auditService)
	statsHandler := handlers.NewStatsHandler(statsService)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 group
	v1 := router.Group("/api/v1")

	// Public routes
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.Refresh)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware(userService))

	// User profile
	protected.GET("/profile", authHandler.GetProfile)
	protected.PUT("/profile/preferences", authHandler.UpdatePreferences)

	// Entry routes
	entries := protected.Group("/entries")
	entries.POST("", entryHandler.CreateEntry)
	entries.GET("", entryHandler.GetUserEntries)
	entries.GET("/:id", entryHandler.GetEntryByID)
	entries.PUT("/:id", entryHandler.UpdateEntry)
	entries.PATCH("/:id/favorite", entryHandler.ToggleFavorite)
	entries.DELETE("/:id", entryHandler.DeleteEntry)

	// Stats routes
	stats := protected.Group("/stats")
	stats.GET("/calendar", statsHandler.GetCalendar)
	stats.GET("/summary", statsHandler.GetSummary)
	stats.GET("/dashboard", statsHandler.GetDashboard)

	log.Infof("Starting Daybook backend server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
