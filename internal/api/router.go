package api

import (
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/ratehub/store-ratings-api/internal/api/handler"
	"github.com/ratehub/store-ratings-api/internal/api/middleware"
	"github.com/ratehub/store-ratings-api/internal/core/domain"
	"github.com/ratehub/store-ratings-api/internal/core/service"
	mongodb "github.com/ratehub/store-ratings-api/internal/infrastructure/db/mongo"
	redisdb "github.com/ratehub/store-ratings-api/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes
// registered. Every protected route passes the same two-stage gate: Auth
// (valid, non-revoked token) then RBAC (role in the route's allowed set).
func NewRouter(db *mongo.Database, rdb *redis.Client, jwtSecret string, tokenTTL time.Duration, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	storeRepo := mongodb.NewStoreRepository(db)
	ratingRepo := mongodb.NewRatingRepository(db)
	revocation := redisdb.NewRevocationStore(rdb)

	authService := service.NewAuthService(userRepo, revocation, jwtSecret, tokenTTL)
	ratingService := service.NewRatingService(ratingRepo, storeRepo, log)
	storeService := service.NewStoreService(storeRepo, ratingRepo, log)
	adminService := service.NewAdminService(userRepo, storeRepo, ratingRepo, log)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(storeService, ratingService)
	ownerHandler := handler.NewStoreOwnerHandler(storeService)
	adminHandler := handler.NewAdminHandler(adminService)

	authenticated := middleware.Auth(jwtSecret, revocation)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/logout", authHandler.Logout, authenticated)
	e.PATCH("/auth/password", authHandler.UpdatePassword, authenticated)

	// --- Normal user routes ---
	user := e.Group("/user", authenticated, middleware.RBAC(domain.RoleNormalUser))
	user.GET("/stores", userHandler.ListStores)
	user.POST("/stores/:storeId/rating", userHandler.SubmitRating)
	user.PATCH("/stores/:storeId/rating", userHandler.UpdateRating)

	// --- Store owner routes ---
	owner := e.Group("/store-owner", authenticated, middleware.RBAC(domain.RoleStoreOwner))
	owner.GET("/dashboard", ownerHandler.Dashboard)
	owner.GET("/ratings", ownerHandler.Ratings)

	// --- Admin routes ---
	admin := e.Group("/admin", authenticated, middleware.RBAC(domain.RoleAdmin))
	admin.GET("/dashboard/stats", adminHandler.Stats)
	admin.GET("/stores", adminHandler.ListStores)
	admin.POST("/stores", adminHandler.CreateStore)
	admin.GET("/users", adminHandler.ListUsers)
	admin.POST("/users", adminHandler.CreateUser)
	admin.GET("/users/:id", adminHandler.UserDetails)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	return e
}
