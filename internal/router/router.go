package router

import (
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
	"github.com/vacatio/backend/internal/handlers"
	"github.com/vacatio/backend/internal/live"
	"github.com/vacatio/backend/internal/middleware"
	"github.com/vacatio/backend/internal/models"
	"github.com/vacatio/backend/internal/repositories"
	"github.com/vacatio/backend/internal/storage"
	"github.com/vacatio/backend/pkg/cache"
	"gorm.io/gorm"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	e.Use(eMiddleware.Logger())
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, db *gorm.DB, imageStore *storage.ImageStore, hub *live.Hub, cch *cache.Cache, jwtSecret string) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Vacation{},
		&models.Follower{},
	); err != nil {
		return err
	}
	logrus.Info("Auto-migrations completed for all models")

	// Health check - always accessible
	e.GET("/api/health", handlers.HealthCheck)

	// --- Initialize Repositories ---
	userRepo := repositories.NewPostgresUserRepository(db)
	vacationRepo := repositories.NewPostgresVacationRepository(db)
	followerRepo := repositories.NewPostgresFollowerRepository(db)

	// --- Unprotected routes ---
	authHandler := handlers.NewAuthHandler(userRepo, jwtSecret)
	authHandler.RegisterAuthRoutes(e.Group("/api/auth"))

	liveHandler := handlers.NewLiveHandler(hub)
	liveHandler.RegisterLiveRoutes(e)

	imageHandler := handlers.NewImageHandler(imageStore)
	imageHandler.RegisterImageRoutes(e)

	// --- Protected routes (require JWT authentication) ---
	vacations := e.Group("/api/vacations")
	vacations.Use(middleware.JWTAuth(jwtSecret))
	admin := e.Group("/api/vacations")
	admin.Use(middleware.JWTAuth(jwtSecret), middleware.AdminOnly())

	reportHandler := handlers.NewReportHandler(vacationRepo, cch)
	reportHandler.RegisterReportRoutes(admin)

	vacationHandler := handlers.NewVacationHandler(vacationRepo, imageStore, hub, reportHandler)
	vacationHandler.RegisterVacationRoutes(vacations, admin)

	followHandler := handlers.NewFollowHandler(followerRepo, vacationRepo, hub, reportHandler)
	followHandler.RegisterFollowRoutes(vacations)

	logrus.Info("All routes configured")
	return nil
}
