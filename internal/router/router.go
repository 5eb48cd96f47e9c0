package router

import (
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"

	"github.com/vantora-labs/vantora/backend/internal/handlers"
	"github.com/vantora-labs/vantora/backend/internal/middleware"
	"github.com/vantora-labs/vantora/backend/internal/models"
	"github.com/vantora-labs/vantora/backend/internal/repositories"
	"github.com/vantora-labs/vantora/backend/pkg/config"
	"github.com/vantora-labs/vantora/backend/pkg/logger"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	e.Use(eMiddleware.RequestLoggerWithConfig(eMiddleware.RequestLoggerConfig{
		LogURI:     true,
		LogStatus:  true,
		LogMethod:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v eMiddleware.RequestLoggerValues) error {
			logger.Log.WithFields(logrus.Fields{
				"method":  v.Method,
				"uri":     v.URI,
				"status":  v.Status,
				"latency": v.Latency.String(),
			}).Info("request")
			return nil
		},
	}))
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, pgdb *gorm.DB, mgClient *mongo.Client, cfg *config.Config) {
	// AutoMigrate PostgreSQL models
	err := pgdb.AutoMigrate(
		&models.User{},
		&models.FriendRequest{},
		&models.Friendship{},
		&models.Notification{},
		&models.Report{},
	)
	if err != nil {
		logger.Log.Fatalf("Failed to auto migrate models: %v", err)
	}

	mongoDB := mgClient.Database(cfg.MongoDatabase)

	// Health check - always accessible
	e.GET("/api/health", handlers.HealthCheck)

	// --- Initialize Repositories ---
	userRepo := repositories.NewPostgresUserRepository(pgdb)
	friendshipRepo := repositories.NewPostgresFriendshipRepository(pgdb)
	notificationRepo := repositories.NewPostgresNotificationRepository(pgdb)
	reportRepo := repositories.NewPostgresReportRepository(pgdb)
	postRepo := repositories.NewMongoPostRepository(mongoDB)
	messageRepo := repositories.NewMongoMessageRepository(mongoDB)

	jwtAuth := middleware.JWTAuthMiddleware(cfg.JWTSecret)
	adminAuth := middleware.AdminAuthMiddleware(userRepo)

	// --- Auth and profile routes ---
	authHandler := handlers.NewAuthHandler(userRepo, cfg.JWTSecret)
	authHandler.RegisterPublicRoutes(e.Group("/api/auth"))
	authHandler.RegisterProtectedRoutes(e.Group("/api/auth", jwtAuth))

	// --- Post routes ---
	postHandler := handlers.NewPostHandler(postRepo, userRepo, friendshipRepo, notificationRepo)
	postHandler.RegisterPublicRoutes(e.Group("/api/posts"))
	postHandler.RegisterProtectedRoutes(e.Group("/api/posts", jwtAuth))

	// --- Friend routes ---
	friendHandler := handlers.NewFriendHandler(friendshipRepo, userRepo, notificationRepo)
	friendHandler.RegisterFriendRoutes(e.Group("/api/friends", jwtAuth))

	// --- Message routes ---
	messageHandler := handlers.NewMessageHandler(messageRepo, userRepo, notificationRepo)
	messageHandler.RegisterMessageRoutes(e.Group("/api/messages", jwtAuth))

	// --- Notification routes ---
	notificationHandler := handlers.NewNotificationHandler(notificationRepo, userRepo, postRepo)
	notificationHandler.RegisterNotificationRoutes(e.Group("/api/notifications", jwtAuth))

	// --- Admin routes ---
	adminHandler := handlers.NewAdminHandler(userRepo, postRepo, reportRepo, notificationRepo)
	// Report submission is open to any authenticated user; everything else
	// re-verifies the admin flag server-side.
	adminHandler.RegisterReportRoutes(e.Group("/api/admin", jwtAuth))
	adminHandler.RegisterAdminRoutes(e.Group("/api/admin", jwtAuth, adminAuth))

	logger.Log.Info("All routes configured")
}
