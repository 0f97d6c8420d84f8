package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/gympulse/gym-management-api/internal/api/handler"
	"github.com/gympulse/gym-management-api/internal/api/middleware"
	"github.com/gympulse/gym-management-api/internal/core/domain"
	"github.com/gympulse/gym-management-api/internal/core/service"
	"github.com/gympulse/gym-management-api/internal/core/token"
	"github.com/gympulse/gym-management-api/internal/infrastructure/config"
	mongodb "github.com/gympulse/gym-management-api/internal/infrastructure/db/mongo"
	redisdb "github.com/gympulse/gym-management-api/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// audit may be nil, in which case auth events are simply not recorded.
func NewRouter(cfg *config.Config, db *mongo.Database, rdb *redis.Client, audit service.AuditSink, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("gym"))

	// --- Dependencies ---
	codec := token.NewCodec(token.Config{
		Secret:     cfg.JWT.Secret,
		AccessTTL:  cfg.JWT.AccessTTL,
		RefreshTTL: cfg.JWT.RefreshTTL,
	})
	userRepo := mongodb.NewUserRepository(db)
	memberRepo := mongodb.NewMemberRepository(db)
	auditRepo := mongodb.NewAuditRepository(db)
	migrationLock := redisdb.NewMigrationLock(rdb)

	authService := service.NewAuthService(userRepo, codec, migrationLock, audit, log)
	memberService := service.NewMemberService(memberRepo, log)
	userService := service.NewUserService(userRepo, auditRepo, log)

	authHandler := handler.NewAuthHandler(authService)
	memberHandler := handler.NewMemberHandler(memberService)
	userHandler := handler.NewUserHandler(userService)

	// The gate skips cfg.PublicPaths prefixes and never rejects; RBAC on the
	// route groups below is what turns "unauthenticated" into 401/403.
	e.Use(middleware.Auth(codec, userRepo, cfg.PublicPaths, log))

	// --- Auth routes (public) ---
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/refresh", authHandler.Refresh)
	e.POST("/auth/validate", authHandler.Validate)

	// Migration sits under /auth but is ADMIN-only: the global gate skipped
	// it as public, so run a route-level gate before RBAC.
	e.POST("/auth/encrypt-passwords", authHandler.EncryptPasswords,
		middleware.Auth(codec, userRepo, nil, log),
		middleware.RBAC(domain.RoleAdmin),
	)

	// --- Members (staff only) ---
	members := e.Group("/members")
	members.GET("", memberHandler.List,
		middleware.RBAC(domain.RoleAdmin, domain.RoleManager, domain.RoleReceptionist))
	members.GET("/:id", memberHandler.Get,
		middleware.RBAC(domain.RoleAdmin, domain.RoleManager, domain.RoleReceptionist))
	members.POST("", memberHandler.Create,
		middleware.RBAC(domain.RoleAdmin, domain.RoleManager))
	members.PUT("/:id", memberHandler.Update,
		middleware.RBAC(domain.RoleAdmin, domain.RoleManager))
	members.POST("/:id/deactivate", memberHandler.Deactivate,
		middleware.RBAC(domain.RoleAdmin, domain.RoleManager))
	members.DELETE("/:id", memberHandler.Delete,
		middleware.RBAC(domain.RoleAdmin))

	// --- User administration ---
	users := e.Group("/users")
	users.PUT("/me/password", userHandler.ChangePassword,
		middleware.RBAC(domain.RoleAdmin, domain.RoleManager, domain.RoleReceptionist))
	users.GET("", userHandler.List, middleware.RBAC(domain.RoleAdmin))
	users.GET("/:id", userHandler.Get, middleware.RBAC(domain.RoleAdmin))
	users.PUT("/:id/active", userHandler.SetActive, middleware.RBAC(domain.RoleAdmin))
	users.GET("/:id/audit", userHandler.AuditTrail, middleware.RBAC(domain.RoleAdmin))

	// --- Operational endpoints ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
