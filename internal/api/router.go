package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/emapp/employee-manager/docs"
	"github.com/emapp/employee-manager/internal/api/handler"
	"github.com/emapp/employee-manager/internal/api/middleware"
	"github.com/emapp/employee-manager/internal/core/domain"
	"github.com/emapp/employee-manager/internal/core/ports"
	"github.com/emapp/employee-manager/internal/core/service"
	"github.com/emapp/employee-manager/internal/infrastructure/config"
	mongodb "github.com/emapp/employee-manager/internal/infrastructure/db/mongo"
	redisdb "github.com/emapp/employee-manager/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, notifier ports.Notifier, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("ema"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	blacklist := redisdb.NewTokenBlacklist(rdb)

	authService := service.NewAuthService(userRepo, blacklist, cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL, log)
	userService := service.NewUserService(userRepo, notifier, log)

	authHandler := handler.NewAuthHandler(userService, authService)
	userHandler := handler.NewUserHandler(userService)

	authRequired := middleware.Auth(cfg.JWTSecret)

	// --- Bootstrap registration and token lifecycle ---
	e.POST("/auth/superuser", authHandler.RegisterSuperUser)
	e.POST("/auth/manager", authHandler.RegisterManager)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/refresh", authHandler.Refresh)
	e.POST("/auth/logout", authHandler.Logout, authRequired)
	e.POST("/auth/employees", userHandler.RegisterEmployee, authRequired,
		middleware.RequireOperation(domain.OpCreateEmployee))

	// --- Identity lifecycle ---
	e.GET("/users", userHandler.ListUsers, authRequired,
		middleware.RequireOperation(domain.OpListAllUsers))
	e.GET("/employees", userHandler.ListEmployees, authRequired,
		middleware.RequireOperation(domain.OpListEmployees))
	e.GET("/employees/:id", userHandler.GetEmployee, authRequired,
		middleware.RequireOperation(domain.OpManageEmployee))
	e.PATCH("/employees/:id", userHandler.UpdateEmployee, authRequired,
		middleware.RequireOperation(domain.OpManageEmployee))
	e.DELETE("/employees/:id", userHandler.DeleteEmployee, authRequired,
		middleware.RequireOperation(domain.OpManageEmployee))

	// --- Password flows ---
	e.PATCH("/users/:id/forgot-password", userHandler.ForgotPassword)
	e.PATCH("/users/:id/reset-password", userHandler.ResetPassword, authRequired)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)

	// --- Observability and docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
