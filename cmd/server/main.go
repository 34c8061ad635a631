// @title           Photo Delivery Backend API
// @version         1.0.0
// @description     Backend API for real-estate photography delivery: folder organization, client delivery pages, revision round tracking, file comments and job reviews.

// @contact.name   API Support
// @contact.email  support@example.com

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

package main

import (
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"photo-delivery-backend/internal/config"
	"photo-delivery-backend/internal/database"
	"photo-delivery-backend/internal/handlers"
	"photo-delivery-backend/internal/middleware"
	"photo-delivery-backend/internal/notifier"
	"photo-delivery-backend/internal/supabase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		l := zerolog.New(os.Stderr)
		l.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if cfg.Environment != "production" {
		logger = logger.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen})
	}

	// Set Gin mode
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Database connection string
	dbURL := cfg.DatabaseURL
	if dbURL == "" {
		logger.Warn().Msg("DATABASE_URL not set. Migrations will be skipped.")
		logger.Warn().Msg("Please set DATABASE_URL environment variable with your Supabase PostgreSQL connection string")
	}

	// Initialize Supabase clients
	supabaseClient, err := supabase.NewClient(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize Supabase client")
	}

	storageClient, err := supabase.NewStorageClient(cfg.SupabaseURL, cfg.SupabasePublishableKey, cfg.SupabaseStorageBucket)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize storage client")
	}

	realtimeClient := supabase.NewRealtimeClient(supabaseClient.Supabase)

	// Notification collaborator (optional; disabled when unconfigured)
	notifierClient := notifier.NewClient(cfg.NotifierBaseURL, cfg.NotifierAPIKey, logger)
	if !notifierClient.Enabled() {
		logger.Warn().Msg("NOTIFIER_BASE_URL not set. Delivery emails will not be sent.")
	}

	// Create database client for direct queries
	var dbClient *supabase.DatabaseClient
	if dbURL != "" {
		var err error
		dbClient, err = supabase.NewDatabaseClient(dbURL)
		if err != nil {
			logger.Warn().Err(err).Msg("Failed to initialize database client. Database operations will be limited.")
		} else {
			defer dbClient.Close()

			// Run migrations
			migrator, err := database.NewMigrator(dbURL)
			if err != nil {
				logger.Warn().Err(err).Msg("Failed to initialize migrator")
			} else {
				defer migrator.Close()
				if err := migrator.Run(); err != nil {
					logger.Warn().Err(err).Msg("Migration failed")
				} else {
					logger.Info().Msg("Migrations completed successfully")
				}
			}
		}
	}

	// Initialize handlers (dbClient might be nil, handlers should handle this)
	jobsHandler := handlers.NewJobsHandler(cfg, dbClient, storageClient, realtimeClient, notifierClient, logger)
	foldersHandler := handlers.NewFoldersHandler(dbClient, storageClient, logger)
	ordersHandler := handlers.NewOrdersHandler(cfg, dbClient)
	filesHandler := handlers.NewFilesHandler(dbClient)
	deliveryHandler := handlers.NewDeliveryHandler(dbClient, realtimeClient, notifierClient, logger)

	// Setup router
	router := gin.New()

	// Middleware
	router.Use(middleware.RequestLogger(logger))
	router.Use(gin.Recovery())

	// Health check (no auth)
	router.GET("/health", handlers.HealthHandler)

	// Public delivery page (token is the capability, no auth middleware)
	delivery := router.Group("/delivery/:token")
	delivery.GET("", deliveryHandler.GetDelivery)
	delivery.POST("/revisions/request", deliveryHandler.RequestRevision)
	delivery.GET("/files/:file_id/comments", deliveryHandler.ListFileComments)
	delivery.POST("/files/:file_id/comments", deliveryHandler.AddFileComment)
	delivery.POST("/review", deliveryHandler.SubmitReview)

	// API routes
	api := router.Group("/api/v1")
	api.Use(middleware.AuthMiddleware(cfg))

	// Job routes
	api.POST("/jobs", jobsHandler.CreateJob)
	api.GET("/jobs", jobsHandler.ListJobs)
	api.GET("/jobs/:job_id", jobsHandler.GetJob)
	api.DELETE("/jobs/:job_id", jobsHandler.DeleteJob)
	api.POST("/jobs/:job_id/delivery", jobsHandler.SendDelivery)
	api.GET("/jobs/:job_id/deliverables", jobsHandler.GetDeliverables)

	// Folder routes (folder paths travel in the body or query, not the URL)
	api.GET("/jobs/:job_id/folders", foldersHandler.ListFolders)
	api.POST("/jobs/:job_id/folders", foldersHandler.CreateFolder)
	api.PATCH("/jobs/:job_id/folders", foldersHandler.UpdateFolder)
	api.DELETE("/jobs/:job_id/folders", foldersHandler.DeleteFolder)

	// Order and revision routes
	api.POST("/orders", ordersHandler.CreateOrder)
	api.GET("/orders/:order_id", ordersHandler.GetOrder)
	api.GET("/orders/:order_id/revisions", ordersHandler.ListRevisionRequests)
	api.PATCH("/orders/:order_id/revision-settings", ordersHandler.UpdateRevisionSettings)
	api.POST("/orders/:order_id/files", filesHandler.RegisterFile)

	// File and comment routes
	api.PATCH("/files/:file_id/notes", filesHandler.UpdateFileNotes)
	api.GET("/files/:file_id/comments", filesHandler.GetFileComments)
	api.PATCH("/comments/:comment_id/status", filesHandler.UpdateCommentStatus)

	// Partner settings
	api.GET("/settings/revisions", ordersHandler.GetRevisionDefaults)
	api.PUT("/settings/revisions", ordersHandler.UpdateRevisionDefaults)

	// Start server
	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	logger.Info().Str("port", port).Msg("Server starting")
	if err := http.ListenAndServe(":"+port, router); err != nil {
		logger.Fatal().Err(err).Msg("Failed to start server")
	}
}
