package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/stockpanel/admin-api/internal/api/handler"
	"github.com/stockpanel/admin-api/internal/api/middleware"
	"github.com/stockpanel/admin-api/internal/core/domain"
	"github.com/stockpanel/admin-api/internal/core/ports"
)

// Deps carries everything the router needs to build its handlers.
type Deps struct {
	Auth     ports.AuthService
	Admins   ports.AdminService
	Users    ports.UserService
	Accounts ports.AccountService
	Stocks   ports.StockService
	Items    ports.ItemService
	Stats    ports.StatsService

	Sessions ports.SessionCodec
	Cookie   handler.CookieConfig
	Probes   map[string]handler.Probe

	AllowedOrigins []string
	Development    bool
	Logger         zerolog.Logger

	// Registerer and Gatherer default to the Prometheus default registry.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Logger, d.Development)

	if d.Registerer == nil {
		d.Registerer = prometheus.DefaultRegisterer
	}
	if d.Gatherer == nil {
		d.Gatherer = prometheus.DefaultGatherer
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(d.Logger))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "stockadmin",
		Registerer: d.Registerer,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}))
	if len(d.AllowedOrigins) > 0 {
		e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
			AllowOrigins:     d.AllowedOrigins,
			AllowCredentials: true,
			AllowHeaders:     []string{echo.HeaderContentType, echo.HeaderAuthorization, echo.HeaderXRequestID},
		}))
	}

	// --- Gates ---
	authed := middleware.Authenticate(d.Sessions, d.Cookie.Name)
	adminOnly := []echo.MiddlewareFunc{authed, middleware.RequireRole(domain.RoleAdmin)}
	selfOnly := []echo.MiddlewareFunc{authed, middleware.RequireSelf("id")}

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(d.Auth, d.Admins, d.Cookie)
	adminHandler := handler.NewAdminHandler(d.Admins)
	userHandler := handler.NewUserHandler(d.Users)
	accountHandler := handler.NewAccountHandler(d.Accounts)
	stockHandler := handler.NewStockHandler(d.Stocks)
	itemHandler := handler.NewItemHandler(d.Items)
	statsHandler := handler.NewStatsHandler(d.Stats)
	healthHandler := handler.NewHealthHandler(d.Probes, d.Logger, d.Development)

	api := e.Group("/api")

	// --- Auth routes ---
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/logout", authHandler.Logout)
	api.POST("/auth/forgot-password", authHandler.ForgotPassword)
	api.POST("/auth/reset-password", authHandler.ResetPassword)
	api.GET("/auth/session", handler.WithClaims(authHandler.Session), authed)
	api.DELETE("/auth/delete-session-account", handler.WithClaims(authHandler.DeleteSessionAccount), authed)

	// --- Admins ---
	api.GET("/admins", adminHandler.List, adminOnly...)
	api.POST("/admins", handler.WithClaims(adminHandler.Create), adminOnly...)
	api.GET("/admins/:id", adminHandler.Get, adminOnly...)
	api.DELETE("/admins/:id", handler.WithClaims(adminHandler.Delete), adminOnly...)
	api.PATCH("/admins/:id/admin-settings", adminHandler.UpdateSettings, selfOnly...)
	api.PATCH("/admins/:id/update-password", adminHandler.UpdatePassword, selfOnly...)

	// --- Users ---
	api.GET("/users", userHandler.List, adminOnly...)
	api.GET("/users/:id", userHandler.Get, adminOnly...)
	api.DELETE("/users/:id", handler.WithClaims(userHandler.Delete), adminOnly...)

	// --- Accounts ---
	api.GET("/accounts", accountHandler.List, adminOnly...)
	api.GET("/accounts/:id", accountHandler.Get, adminOnly...)
	api.DELETE("/accounts/:id", handler.WithClaims(accountHandler.Delete), adminOnly...)

	// --- Stocks ---
	api.GET("/stocks", stockHandler.List, adminOnly...)
	api.GET("/stocks/:id", stockHandler.Get, adminOnly...)
	api.DELETE("/stocks/:id", handler.WithClaims(stockHandler.Delete), adminOnly...)

	// --- Items ---
	api.GET("/items", itemHandler.List, adminOnly...)
	api.GET("/items/search", itemHandler.Search, adminOnly...)
	api.DELETE("/items/:id", handler.WithClaims(itemHandler.Delete), adminOnly...)

	api.GET("/stats", statsHandler.Overview, adminOnly...)

	// --- Health probes, metrics and docs (no auth required) ---
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: d.Gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

// requestLogger feeds echo's request log into zerolog.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(_ echo.Context, v echomiddleware.RequestLoggerValues) error {
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
