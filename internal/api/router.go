package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/creditdesk/loan-system/internal/api/handler"
	"github.com/creditdesk/loan-system/internal/api/middleware"
	"github.com/creditdesk/loan-system/internal/core/domain"
	"github.com/creditdesk/loan-system/internal/core/service"
	"github.com/creditdesk/loan-system/internal/infrastructure/config"
	mongodb "github.com/creditdesk/loan-system/internal/infrastructure/db/mongo"
	redisdb "github.com/creditdesk/loan-system/internal/infrastructure/db/redis"
	healthhandlers "github.com/creditdesk/loan-system/internal/infrastructure/http/handlers"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("loans"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	applicationRepo := mongodb.NewApplicationRepository(db)
	accessLogRepo := mongodb.NewAccessLogRepository(db)
	banList := redisdb.NewBanList(rdb, cfg.TokenTTL)

	userService := service.NewUserService(userRepo, banList, cfg.JWTSecret, cfg.TokenTTL, log)
	applicationService := service.NewApplicationService(applicationRepo, userRepo, log)
	accessLogService := service.NewAccessLogService(accessLogRepo, userRepo, log)

	authHandler := handler.NewAuthHandler(userService)
	userHandler := handler.NewUserHandler(userService)
	applicationHandler := handler.NewApplicationHandler(applicationService)
	accessLogHandler := handler.NewAccessLogHandler(accessLogService)

	// --- Open routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	// --- Authenticated routes ---
	authed := e.Group("", middleware.Auth(cfg.JWTSecret), middleware.BanGuard(banList, log))
	authed.GET("/auth/me", userHandler.Me)
	authed.PATCH("/users/me", userHandler.UpdateProfile)
	authed.PATCH("/users/me/password", userHandler.UpdatePassword)
	authed.POST("/applications", applicationHandler.Submit)
	authed.GET("/applications", applicationHandler.ListMine)
	authed.DELETE("/applications/active", applicationHandler.DeleteActive)
	authed.POST("/logs", accessLogHandler.Create)

	// --- Administrator routes ---
	admin := authed.Group("/admin", middleware.RBAC(domain.RoleAdmin))
	admin.GET("/users", userHandler.ListAccounts)
	admin.POST("/users", userHandler.CreateAdmin)
	admin.POST("/users/ban", userHandler.Ban)
	admin.GET("/applications", applicationHandler.ListAll)
	admin.PATCH("/applications/status", applicationHandler.UpdateStatus)
	admin.GET("/logs", accessLogHandler.ListAll)

	// --- Operational endpoints ---
	healthHandler := healthhandlers.NewHealthHandler()
	healthDepsHandler := healthhandlers.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
