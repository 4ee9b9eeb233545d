package api

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/pecc/timetracking/internal/api/handler"
	"github.com/pecc/timetracking/internal/core/service"
	"github.com/pecc/timetracking/internal/infrastructure/db/postgres"
	"github.com/pecc/timetracking/internal/infrastructure/db/redis"
	healthhandlers "github.com/pecc/timetracking/internal/infrastructure/http/handlers"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(pool *pgxpool.Pool, rdb *goredis.Client, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())

	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Dependencies ---
	listCache := redis.NewListCache(rdb)

	userRepo := postgres.NewUserRepository(pool)
	entryRepo := postgres.NewTimeEntryRepository(pool)
	subRepo := postgres.NewSubmissionRepository(pool)

	authService := service.NewAuthService(userRepo, log)
	userService := service.NewUserService(userRepo, listCache, log)
	entryService := service.NewTimeEntryService(entryRepo, listCache, log)
	subService := service.NewSubmissionService(subRepo, listCache, log)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	entryHandler := handler.NewTimeEntryHandler(entryService)
	subHandler := handler.NewSubmissionHandler(subService)

	// --- Auth routes ---
	e.POST("/auth/login", authHandler.Login)

	// --- CRUD routes ---
	e.GET("/users", userHandler.List)
	e.POST("/users", userHandler.Create)
	e.PUT("/users/:id", userHandler.Update)
	e.DELETE("/users/:id", userHandler.Delete)

	e.GET("/time-entries", entryHandler.List)
	e.POST("/time-entries", entryHandler.Create)
	e.PUT("/time-entries/:id", entryHandler.Update)

	e.GET("/contractor-submissions", subHandler.List)
	e.POST("/contractor-submissions", subHandler.Create)

	// --- Observability ---
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// --- Health probes ---
	healthHandler := healthhandlers.NewHealthHandler()
	healthDepsHandler := healthhandlers.NewHealthDependenciesHandler(pool, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	return e
}
