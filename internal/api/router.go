package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/globetrotter/trip-planner-api/internal/api/handler"
	"github.com/globetrotter/trip-planner-api/internal/api/middleware"
	"github.com/globetrotter/trip-planner-api/internal/core/domain"
	"github.com/globetrotter/trip-planner-api/internal/core/ports"
	"github.com/globetrotter/trip-planner-api/internal/core/service"
	"github.com/globetrotter/trip-planner-api/internal/infrastructure/config"
	mongodb "github.com/globetrotter/trip-planner-api/internal/infrastructure/db/mongo"
	redisdb "github.com/globetrotter/trip-planner-api/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// The mailer is passed in already wrapped for async delivery.
func NewRouter(cfg *config.Config, db *mongo.Database, rdb *redis.Client, mailer ports.Mailer, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("tripplanner"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	tripRepo := mongodb.NewTripRepository(db)
	denylist := redisdb.NewTokenDenylist(rdb)

	tokens := service.NewTokenManager(
		cfg.Auth.AccessSecret,
		cfg.Auth.RefreshSecret,
		cfg.Auth.AccessTTL,
		cfg.Auth.RefreshTTL,
	)
	authService := service.NewAuthService(userRepo, tokens, mailer, denylist, cfg.Auth.BcryptCost, log)
	userService := service.NewUserService(userRepo, log)
	tripService := service.NewTripService(tripRepo, log)

	authHandler := handler.NewAuthHandler(authService, cfg.Env, tokens.RefreshTTL())
	userHandler := handler.NewUserHandler(userService)
	tripHandler := handler.NewTripHandler(tripService)

	authenticated := middleware.Auth(tokens, userRepo, denylist)

	// --- Auth routes ---
	e.POST("/auth/signup", authHandler.Signup)
	e.GET("/auth/verify-email", authHandler.VerifyEmail)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/refresh", authHandler.Refresh)
	e.POST("/auth/logout", authHandler.Logout, authenticated)
	e.POST("/auth/forgot-password", authHandler.ForgotPassword)
	e.POST("/auth/reset-password", authHandler.ResetPassword)

	// --- User routes ---
	users := e.Group("/v1/users", authenticated)
	users.GET("/me", userHandler.Me)
	users.GET("/:id", userHandler.Get, middleware.RequireSelfOrAdmin("id"))
	users.PATCH("/:id/role", userHandler.ChangeRole, middleware.RequireRole(domain.RoleAdmin))

	// --- Trip routes ---
	trips := e.Group("/v1/trips", authenticated)
	trips.POST("", tripHandler.Create)
	trips.GET("", tripHandler.List)
	trips.GET("/:id", tripHandler.Get, middleware.Ownership(tripRepo, "id"))
	trips.DELETE("/:id", tripHandler.Delete, middleware.Ownership(tripRepo, "id"))

	// --- Ops surface ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
