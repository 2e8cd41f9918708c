package api

import (
	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/brahmakosh/admin-backend/docs"
	"github.com/brahmakosh/admin-backend/internal/api/handler"
	"github.com/brahmakosh/admin-backend/internal/api/middleware"
	"github.com/brahmakosh/admin-backend/internal/core/domain"
	"github.com/brahmakosh/admin-backend/internal/core/ports"
)

// Services groups the core services the routes are served by.
type Services struct {
	Authenticator ports.Authenticator
	Auth          ports.AuthService
	Admins        ports.AdminService
	Approvals     ports.ApprovalService
	Clients       ports.ClientService
	Users         ports.UserService
}

// Options carries the router's ambient settings.
type Options struct {
	Log zerolog.Logger
	// Diagnostics exposes internal error detail in responses.
	Diagnostics bool
	// Probes are pinged by the readiness endpoint, keyed by dependency name.
	Probes map[string]handler.Pinger
	// Registry receives the HTTP metrics. A fresh registry is used when nil.
	Registry *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(svc Services, opts Options) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(opts.Log, opts.Diagnostics)

	reg := opts.Registry
	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(requestLogger(opts.Log))
	e.Use(echomiddleware.CORS())
	e.Use(echomiddleware.BodyLimit("1M"))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "admin",
		Registerer: reg,
	}))

	// --- Ops endpoints (no auth required) ---
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
		Gatherer: prometheus.Gatherers{prometheus.DefaultGatherer, reg},
	}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(opts.Probes)
	api.GET("/health", healthHandler.Liveness)
	api.GET("/health/ready", readinessHandler.Readiness)

	authn := middleware.Auth(svc.Authenticator)

	// --- Auth routes ---
	authHandler := handler.NewAuthHandler(svc.Auth)
	auth := api.Group("/auth")
	auth.POST("/super-admin/login", authHandler.SuperAdminLogin)
	auth.POST("/admin/login", authHandler.AdminLogin)
	auth.POST("/client/login", authHandler.ClientLogin)
	auth.POST("/user/login", authHandler.UserLogin)
	auth.POST("/user/register", authHandler.RegisterUser)
	auth.POST("/client/register", authHandler.RegisterClient)
	auth.GET("/me", authHandler.Me, authn)

	// --- Super admin routes ---
	superAdmin := handler.NewSuperAdminHandler(svc.Admins, svc.Approvals)
	sa := api.Group("/super-admin", authn, middleware.RequireRoles(domain.RoleSuperAdmin))
	sa.GET("/admins", superAdmin.ListAdmins)
	sa.POST("/admins", superAdmin.CreateAdmin)
	sa.PUT("/admins/:id", superAdmin.UpdateAdmin)
	sa.DELETE("/admins/:id", superAdmin.DeleteAdmin)
	sa.GET("/pending-approvals", superAdmin.PendingApprovals)
	sa.POST("/approve-login/:type/:id", superAdmin.ApproveLogin)
	sa.POST("/reject-login/:type/:id", superAdmin.RejectLogin)
	sa.GET("/dashboard/overview", superAdmin.Overview)

	// --- Admin routes ---
	adminHandler := handler.NewAdminHandler(svc.Clients)
	admin := api.Group("/admin", authn, middleware.RequireRoles(domain.RoleAdmin, domain.RoleSuperAdmin))
	admin.GET("/clients", adminHandler.ListClients)
	admin.POST("/clients", adminHandler.CreateClient)
	admin.PUT("/clients/:id", adminHandler.UpdateClient)
	admin.DELETE("/clients/:id", adminHandler.DeleteClient)
	admin.GET("/users", adminHandler.ListUsers)
	admin.GET("/dashboard/overview", adminHandler.Overview)

	// --- Client routes ---
	clientHandler := handler.NewClientHandler(svc.Users)
	client := api.Group("/client", authn, middleware.RequireRoles(domain.RoleClient, domain.RoleAdmin, domain.RoleSuperAdmin))
	client.GET("/users", clientHandler.ListUsers)
	client.POST("/users", clientHandler.CreateUser)
	client.PUT("/users/:id", clientHandler.UpdateUser)
	client.DELETE("/users/:id", clientHandler.DeleteUser)
	client.GET("/dashboard/overview", clientHandler.Overview)

	// --- Profile routes ---
	profileHandler := handler.NewProfileHandler(svc.Users)
	users := api.Group("/users", authn, middleware.RequireRoles(domain.RoleUser))
	users.GET("/profile", profileHandler.Get)
	users.PUT("/profile", profileHandler.Update)

	return e
}

// requestLogger writes one zerolog entry per request.
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
			evt := log.Info()
			if v.Error != nil {
				evt = log.Warn().Err(v.Error)
			}
			evt.
				Str("request_id", v.RequestID).
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Msg("request")
			return nil
		},
	})
}
