package main

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"autogenics-server/config"
	"autogenics-server/database"
	"autogenics-server/jobs"
	"autogenics-server/middleware"
	"autogenics-server/models"
	"autogenics-server/routes"
	"autogenics-server/services"
	ws "autogenics-server/websocket"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	// Load configuration
	config.Load()

	// Initialize database
	if err := database.Initialize(); err != nil {
		log.Fatal("Failed to initialize database:", err)
	}

	// Promote the configured admin account, if any
	seedAdmin()

	// Set Gin mode
	if config.AppConfig.Server.GinMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Booking field validators on the binding engine
	routes.RegisterValidators()

	// Create router
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// Disable automatic redirects for trailing slashes
	router.RedirectTrailingSlash = false
	router.RedirectFixedPath = false

	// Security headers (must be first)
	router.Use(middleware.SecurityHeadersMiddleware())

	// Input validation
	router.Use(middleware.InputValidationMiddleware())

	// Rate limiting
	router.Use(middleware.RateLimitMiddleware())
	middleware.StartRateLimiterCleanup()

	// CORS
	router.Use(cors.New(cors.Config{
		AllowOrigins:     config.AppConfig.CORS.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Device-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Audit logging
	router.Use(middleware.AuditLogMiddleware())

	// Realtime change-notification hub
	hub := ws.NewHub()
	go hub.Run()

	// Progress-photo storage; uploads fail cleanly when unconfigured
	var storage services.Storage
	cloudinaryStorage, err := services.NewCloudinaryStorage()
	if err != nil {
		log.Printf("⚠️ Storage disabled: %v", err)
		storage = services.DisabledStorage{}
	} else {
		storage = cloudinaryStorage
	}

	notifier := services.NewNotifier()
	chatStore := services.NewChatStore()
	chatService := services.NewChatService()

	v1 := router.Group("/api/v1")

	// Public routes
	routes.RegisterPublicRoutes(v1)

	// Auth routes with tighter rate limits
	authGroup := v1.Group("/auth")
	authGroup.Use(middleware.AuthRateLimitMiddleware())
	routes.RegisterAuthRoutes(authGroup)

	// Authenticated customer routes
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware())
	routes.RegisterBookingRoutes(protected, hub)
	routes.RegisterFeedbackRoutes(protected, hub)
	routes.RegisterProfileRoutes(protected)
	routes.RegisterChatRoutes(protected, chatStore, chatService)

	// WebSocket auth rides on a query parameter
	wsGroup := v1.Group("")
	wsGroup.Use(middleware.WebSocketAuthMiddleware())
	routes.RegisterWebSocketRoutes(wsGroup, hub)

	// Admin routes
	adminGroup := v1.Group("/admin")
	adminGroup.Use(middleware.AuthMiddleware(), middleware.AdminAuthMiddleware())
	routes.RegisterAdminBookingRoutes(adminGroup, hub, storage, notifier)
	routes.RegisterAdminFeedbackRoutes(adminGroup, hub)
	routes.RegisterAdminRoutes(adminGroup, storage)

	// Background refresh-token cleanup
	cleanupJob := jobs.NewCleanupJob()
	cleanupJob.Start()
	defer cleanupJob.Stop()

	port := config.AppConfig.Server.Port
	log.Printf("🚀 Autogenics server listening on :%s", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatal("Server failed:", err)
	}
}

// seedAdmin flags the ADMIN_EMAIL account as admin+superadmin so a fresh
// deployment has a way into the admin panel. The account still signs up
// through the normal flow first.
func seedAdmin() {
	email := strings.ToLower(strings.TrimSpace(os.Getenv("ADMIN_EMAIL")))
	if email == "" {
		return
	}

	var user models.User
	if err := database.DB.Where("email = ?", email).First(&user).Error; err != nil {
		log.Printf("⚠️ ADMIN_EMAIL %s has no account yet; sign up first", email)
		return
	}

	if user.IsAdmin && user.IsSuperAdmin {
		return
	}

	user.IsAdmin = true
	user.IsSuperAdmin = true
	if err := database.DB.Save(&user).Error; err != nil {
		log.Printf("❌ Failed to promote admin account: %v", err)
		return
	}
	log.Printf("✅ Promoted %s to superadmin", email)
}
