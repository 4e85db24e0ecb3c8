package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/barbercommunity/marketplace/internal/api/handler"
	"github.com/barbercommunity/marketplace/internal/api/middleware"
	"github.com/barbercommunity/marketplace/internal/core/domain"
	"github.com/barbercommunity/marketplace/internal/core/ports"
)

// Dependencies are the collaborators the router wires into handlers.
type Dependencies struct {
	AuthService ports.AuthService
	Catalog     ports.CatalogRepository
	JWTSecret   string
	Log         zerolog.Logger
	// Readiness lists the dependencies /health/ready pings. May be empty.
	Readiness map[string]handler.Pinger
	// Registry receives the HTTP metrics and backs /metrics. Nil means the
	// process-wide default registry.
	Registry *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(deps.Log))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "marketplace_api",
		Registerer: registerer(deps.Registry),
	}))

	// --- Dependencies ---
	authHandler := handler.NewAuthHandler(deps.AuthService)
	catalogHandler := handler.NewCatalogHandler(deps.Catalog)
	authMiddleware := middleware.Auth(deps.JWTSecret)

	// --- Auth routes ---
	auth := e.Group("/api/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.GET("/me", authHandler.Me, authMiddleware)

	// --- Catalog routes (public) ---
	e.GET("/api/posts", catalogHandler.Posts)
	e.GET("/api/barbers", catalogHandler.Barbers)
	e.GET("/api/barbers/search", catalogHandler.Search)
	e.GET("/api/barbers/cities/list", catalogHandler.Cities)
	e.GET("/api/barbers/:id", catalogHandler.Profile)

	// --- Contact (clients only) ---
	e.POST("/api/contact", catalogHandler.Contact, authMiddleware, middleware.RBAC(domain.RoleClient))

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.Readiness)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
		Gatherer: gatherer(deps.Registry),
	}))

	return e
}

// requestLogger emits one zerolog line per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Error != nil {
				ev = log.Warn().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}

func registerer(r *prometheus.Registry) prometheus.Registerer {
	if r == nil {
		return prometheus.DefaultRegisterer
	}
	return r
}

func gatherer(r *prometheus.Registry) prometheus.Gatherer {
	if r == nil {
		return prometheus.DefaultGatherer
	}
	return r
}
