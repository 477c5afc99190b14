package main

import (
	"incident_flow_app_go/config"
	"incident_flow_app_go/db"
	"incident_flow_app_go/handlers"
	"incident_flow_app_go/middleware"
	"incident_flow_app_go/models"
	"incident_flow_app_go/services"
	"incident_flow_app_go/services/jobs"
	"log"
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	if err := db.Initialize(cfg.DBPath, cfg.Environment); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Run migrations
	if err := db.AutoMigrate(
		&models.User{},
		&models.Session{},
		&models.Department{},
		&models.Gender{},
		&models.Race{},
		&models.Meta{},
		&models.OccurrenceDescription{},
		&models.IncidentClassification{},
		&models.OccurrenceClassification{},
		&models.DamageClassification{},
		&models.EventPatient{},
		&models.EventOccurrence{},
		&models.ResponseOccurrence{},
		&models.ManagerResponse{},
		&models.OccurrenceAttachment{},
	); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize file storage (R2 or local fallback)
	services.InitializeStorage(cfg)

	// Create Echo instance
	e := echo.New()

	// Middleware
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())

	// Make config available to handlers
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set("config", cfg)
			return next(c)
		}
	})

	// Public routes (no authentication required)
	e.GET("/", handlers.HomeHandler)
	e.POST("/login", handlers.LoginPostHandler, middleware.LoginRateLimiter.Middleware())

	// Protected routes
	protected := e.Group("")
	protected.Use(middleware.RequireAuth())
	{
		protected.POST("/logout", handlers.LogoutHandler)
		protected.GET("/api/me", handlers.GetCurrentUserHandler)

		// Departments
		protected.GET("/api/departments", handlers.GetDepartments)
		protected.GET("/api/departments/:id", handlers.GetDepartment)
		protected.PUT("/api/departments/:id", handlers.UpdateDepartment)

		// Occurrences
		protected.POST("/api/occurrences", handlers.CreateOccurrence)
		protected.GET("/api/occurrences", handlers.GetOccurrences)
		protected.GET("/api/occurrences/pending", handlers.GetOccurrencesNeedingResponse)
		protected.GET("/api/occurrences/export", handlers.ExportOccurrencesExcel)
		protected.GET("/api/occurrences/:id", handlers.GetOccurrence)
		protected.GET("/api/occurrences/:id/report", handlers.ExportOccurrencePDF)
		protected.GET("/api/occurrences/:id/response", handlers.GetResponseForOccurrence)

		// Attachments
		protected.POST("/api/occurrences/:id/attachments", handlers.UploadAttachment)
		protected.GET("/api/occurrences/:id/attachments", handlers.GetAttachments)
		protected.GET("/api/occurrences/:id/attachments/:aid/download", handlers.DownloadAttachment)
		protected.DELETE("/api/occurrences/:id/attachments/:aid", handlers.DeleteAttachment)

		// Responses
		protected.POST("/api/responses", handlers.CreateResponse)
		protected.GET("/api/responses/escalated", handlers.GetEscalatedResponses)
		protected.GET("/api/responses/:id", handlers.GetResponse)
		protected.PUT("/api/responses/:id", handlers.UpdateResponse)
		protected.GET("/api/responses/:id/manager-responses", handlers.GetManagerResponses)
		protected.POST("/api/manager-responses", handlers.CreateManagerResponse)

		// Classifications
		protected.GET("/api/classifications/incident", handlers.GetIncidentClassifications)
		protected.GET("/api/classifications/occurrence", handlers.GetOccurrenceClassifications)
		protected.GET("/api/classifications/damage", handlers.GetDamageClassifications)

		// Lookups
		protected.GET("/api/genders", handlers.GetGenders)
		protected.GET("/api/races", handlers.GetRaces)
		protected.GET("/api/metas", handlers.GetMetas)
		protected.POST("/api/metas", handlers.CreateMeta)
		protected.GET("/api/occurrence-descriptions", handlers.GetOccurrenceDescriptions)
		protected.POST("/api/occurrence-descriptions", handlers.CreateOccurrenceDescription)

		// Staff-only routes
		staffRoutes := protected.Group("")
		staffRoutes.Use(middleware.RequireStaff())
		{
			staffRoutes.POST("/api/departments", handlers.CreateDepartment)
			staffRoutes.DELETE("/api/departments/:id", handlers.DeleteDepartment)
			staffRoutes.DELETE("/api/occurrences/:id", handlers.DeleteOccurrence)
			staffRoutes.POST("/api/occurrences/:id/restore", handlers.RestoreOccurrence)
			staffRoutes.POST("/api/classifications/incident", handlers.CreateIncidentClassification)
			staffRoutes.POST("/api/classifications/occurrence", handlers.CreateOccurrenceClassification)
			staffRoutes.POST("/api/classifications/damage", handlers.CreateDamageClassification)
		}
	}

	// Background jobs (runs every hour)
	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		defer ticker.Stop()

		for range ticker.C {
			if err := services.CleanupExpiredSessions(db.DB); err != nil {
				log.Printf("Error cleaning up expired sessions: %v", err)
			}

			jobs.SendDeadlineReminders(db.DB, cfg)
		}
	}()

	// Start server
	log.Printf("Server starting on port %s", cfg.ServerPort)
	if err := e.Start(":" + cfg.ServerPort); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
