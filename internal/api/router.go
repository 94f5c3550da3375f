package api

import (
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/hp-grievance/portal/internal/api/handler"
	"github.com/hp-grievance/portal/internal/api/middleware"
	"github.com/hp-grievance/portal/internal/core/domain"
	"github.com/hp-grievance/portal/internal/core/ports"
)

const metricsSubsystem = "grievance_portal"

// Dependencies are the services the router exposes.
type Dependencies struct {
	Auth       ports.AuthService
	Grievances ports.GrievanceService
	Triage     ports.TriageService
	Sessions   middleware.SessionRestorer
	Validate   *validator.Validate
	// Pingers are checked by /health/ready, keyed by backend name.
	Pingers   map[string]ports.Pinger
	JWTSecret string
	Logger    zerolog.Logger
	// Registry receives the HTTP metrics. Nil uses the default registry.
	Registry *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator(deps.Validate)
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(deps.Logger))
	e.Use(metricsMiddleware(deps.Registry))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.Auth)
	grievanceHandler := handler.NewGrievanceHandler(deps.Grievances, deps.Validate)
	triageHandler := handler.NewTriageHandler(deps.Triage)
	healthHandler := handler.NewHealthHandler(deps.Pingers)

	requireAuth := middleware.Auth(deps.JWTSecret, deps.Sessions)

	// --- Auth routes ---
	e.POST("/auth/otp", authHandler.RequestCode)
	e.POST("/auth/verify", authHandler.Verify)
	e.POST("/auth/officer-demo", authHandler.OfficerDemo)
	e.POST("/auth/logout", authHandler.Logout, requireAuth)

	// --- API v1 ---
	v1 := e.Group("/v1")
	v1.GET("/reference", handler.Reference)
	v1.GET("/session", authHandler.Session, requireAuth)

	citizen := v1.Group("/grievances", requireAuth, middleware.RBAC(domain.RoleCitizen))
	citizen.POST("", grievanceHandler.Create)
	citizen.GET("", grievanceHandler.List)
	citizen.GET("/:id", grievanceHandler.Get)
	citizen.POST("/:id/replies", grievanceHandler.Reply)

	officer := v1.Group("/triage", requireAuth, middleware.RBAC(domain.RoleOfficer))
	officer.GET("", triageHandler.List)
	officer.POST("/:id/actions", triageHandler.Act)

	// --- Health checks (no auth required) ---
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)

	// --- Observability and docs ---
	e.GET("/metrics", metricsHandler(deps.Registry))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

func metricsMiddleware(reg *prometheus.Registry) echo.MiddlewareFunc {
	if reg == nil {
		return echoprometheus.NewMiddleware(metricsSubsystem)
	}
	return echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  metricsSubsystem,
		Registerer: reg,
	})
}

func metricsHandler(reg *prometheus.Registry) echo.HandlerFunc {
	if reg == nil {
		return echoprometheus.NewHandler()
	}
	return echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: reg})
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogURI:       true,
		LogMethod:    true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			evt := log.Info()
			if v.Error != nil {
				evt = log.Warn().Err(v.Error)
			}
			evt.
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
