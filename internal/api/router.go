package api

import (
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/acquisitions/identity-api/internal/api/handler"
	"github.com/acquisitions/identity-api/internal/api/middleware"
	"github.com/acquisitions/identity-api/internal/api/session"
	"github.com/acquisitions/identity-api/internal/core/service"
	"github.com/acquisitions/identity-api/internal/infrastructure/admission"
	"github.com/acquisitions/identity-api/internal/infrastructure/db/postgres"
	"github.com/acquisitions/identity-api/internal/pkg/config"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(pool *pgxpool.Pool, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.CORS())
	e.Use(echomiddleware.Secure())
	e.Use(echomiddleware.BodyLimit("1M"))

	// --- Dependencies ---
	userRepo := postgres.NewUserRepository(pool)
	hasher := service.NewBcryptHasher()
	tokens := service.NewTokenService(cfg.JWT.Secret, cfg.JWT.TTL)
	authService := service.NewAuthService(userRepo, hasher, log)
	cookies := session.NewManager(cfg.IsProduction(), cfg.JWT.TTL)
	admissionService := admission.NewService(rdb)
	authHandler := handler.NewAuthHandler(authService, tokens, cookies, log)

	// --- Guarded routes: identity resolution then admission control ---
	guarded := e.Group("",
		middleware.Identity(tokens),
		middleware.Admission(admissionService, log),
	)

	guarded.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, "Hello from Acquisitions!")
	})
	guarded.POST("/sign-up", authHandler.SignUp)
	guarded.POST("/sign-in", authHandler.SignIn)
	guarded.POST("/sign-out", authHandler.SignOut)

	// --- Health probes and metrics (not admission-gated) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(pool, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	return e
}
