package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	_ "github.com/tsvs/backend/docs"
	"github.com/tsvs/backend/internal/infrastructure/auth"
	"github.com/tsvs/backend/internal/infrastructure/config"
	"github.com/tsvs/backend/internal/infrastructure/logger"
	"github.com/tsvs/backend/internal/interfaces/http/handler"
	"github.com/tsvs/backend/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// wsTokenParam carries the access token on WebSocket handshakes
const wsTokenParam = "token"

// Handlers groups the HTTP handlers mounted by NewEngine
type Handlers struct {
	System      *handler.SystemHandler
	Auth        *handler.AuthHandler
	Users       *handler.UserHandler
	Admin       *handler.AdminHandler
	Regions     *handler.DirectoryHandler
	Departments *handler.DirectoryHandler
	Exam        *handler.ExamHandler
	Chat        *handler.ChatHandler
	License     *handler.LicenseHandler
}

// Deps holds everything NewEngine needs
type Deps struct {
	Config    *config.Config
	Logger    *zap.Logger
	JWT       *auth.JWTService
	Blacklist auth.TokenBlacklist
	// Registry receives the HTTP instruments and backs /metrics
	Registry *prometheus.Registry
	// StaticRoot is served under the local storage URL prefix when set
	StaticRoot string
	Handlers   Handlers
}

// NewEngine assembles the gin engine: global middleware, public routes and
// the JWT protected API. The returned func releases background resources.
func NewEngine(deps Deps) (*gin.Engine, func()) {
	cfg := deps.Config
	log := deps.Logger
	h := deps.Handlers
	registry := deps.Registry
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	middleware.SetupValidator()

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Order matters: the request id feeds recovery and the access log,
	// tracing must wrap the handlers so spans carry the route pattern.
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log, "/health", "/metrics"))
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORSWithConfig(middleware.CORSConfigFromHTTP(cfg.HTTP)))
	engine.Use(middleware.BodyLimitWithUploads(cfg.HTTP.MaxBodySize, cfg.HTTP.MaxUploadSize))
	engine.Use(middleware.Metrics(middleware.NewHTTPMetrics(registry, "tsvs")))
	engine.Use(middleware.TracingWithConfig(middleware.TracingConfig{
		ServiceName: cfg.Telemetry.ServiceName,
		Enabled:     cfg.Telemetry.Enabled,
	}))
	engine.Use(middleware.TracingAttributeInjector())
	engine.Use(middleware.ProfilingWithConfig(middleware.ProfilingConfig{
		Enabled:          cfg.Telemetry.ProfilingEnabled,
		SkipPaths:        []string{"/health", "/metrics"},
		SkipPathPrefixes: []string{"/static/", "/swagger/"},
	}))

	cleanup := func() {}
	if cfg.HTTP.RateLimitEnabled {
		limiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(limiter))
		cleanup = limiter.Stop
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	engine.GET("/metrics", middleware.MetricsHandler(registry))
	if deps.StaticRoot != "" {
		engine.Static(cfg.Storage.Local.URLPrefix, deps.StaticRoot)
	}

	jwtConfig := middleware.DefaultJWTConfig(deps.JWT)
	jwtConfig.TokenBlacklist = deps.Blacklist
	jwtConfig.Logger = log
	requireJWT := middleware.JWTAuthMiddlewareWithConfig(jwtConfig)

	engine.GET("/swagger/*any",
		middleware.SwaggerProtection(middleware.SwaggerConfig{
			Enabled:     cfg.Swagger.Enabled,
			RequireAuth: cfg.Swagger.RequireAuth,
			AllowedIPs:  cfg.Swagger.AllowedIPs,
		}, requireJWT),
		ginSwagger.WrapHandler(swaggerFiles.Handler))

	r := NewRouter(engine, WithAPIVersion(""))
	r.Register(h.System)

	authRoutes := NewDomainGroup("auth", "/auth")
	authRoutes.POST("/token", h.Auth.Login)
	authRoutes.Group("session", "").Use(requireJWT).
		GET("/protected-resource", h.Auth.Me).
		POST("/logout", h.Auth.Logout)

	userRoutes := NewDomainGroup("users", "/users")
	userRoutes.POST("", h.Users.Create)
	userRoutes.Group("protected", "").Use(requireJWT).
		GET("", h.Users.List).
		GET("/active", h.Users.ListActive).
		GET("/:id", h.Users.GetByID).
		PUT("/:id", h.Users.Update).
		DELETE("/:id", h.Users.Delete).
		POST("/:id/reset-password", h.Users.ResetPassword)
	// Services re-check the stored roles; the token check rejects early
	userRoutes.Group("moderation", "").Use(requireJWT, middleware.RequireAdmin()).
		POST("/:id/disable", h.Users.Disable).
		GET("/:id/history", h.Users.History)

	adminRoutes := NewDomainGroup("admin", "/admin").
		Use(requireJWT, middleware.RequireSuperAdmin()).
		PATCH("/users/:id/privilege", h.Admin.GrantAdmin).
		DELETE("/users/:id/privilege", h.Admin.RevokeAdmin)

	regionRoutes := NewDomainGroup("regions", "/regions").Use(requireJWT).Include(h.Regions)
	departmentRoutes := NewDomainGroup("departments", "/departments").Use(requireJWT).Include(h.Departments)
	examRoutes := NewDomainGroup("exam", "/exam").Use(requireJWT).Include(h.Exam)
	licenseRoutes := NewDomainGroup("license", "/license").Use(requireJWT).Include(h.License)

	chatRoutes := NewDomainGroup("chat", "/chat")
	chatRoutes.GET("/ws", middleware.TokenFromQuery(wsTokenParam), requireJWT, h.Chat.Stream)
	chatRoutes.Group("rest", "").Use(requireJWT).Include(h.Chat)

	r.Register(authRoutes).
		Register(userRoutes).
		Register(adminRoutes).
		Register(regionRoutes).
		Register(departmentRoutes).
		Register(examRoutes).
		Register(chatRoutes).
		Register(licenseRoutes)
	r.Setup()

	return engine, cleanup
}
