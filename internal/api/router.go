package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"

	"github.com/authgrid/auth-service/internal/api/handler"
	appmw "github.com/authgrid/auth-service/internal/api/middleware"
	"github.com/authgrid/auth-service/internal/core/domain"
	"github.com/authgrid/auth-service/internal/core/service"
	"github.com/authgrid/auth-service/internal/infrastructure/config"
	"github.com/authgrid/auth-service/internal/infrastructure/db/gormdb"
	mongodb "github.com/authgrid/auth-service/internal/infrastructure/db/mongo"
	redisdb "github.com/authgrid/auth-service/internal/infrastructure/db/redis"
	"github.com/authgrid/auth-service/internal/infrastructure/social"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg *config.Config, db *gorm.DB, mdb *mongo.Database, rdb *redis.Client, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("auth"))

	// --- Dependencies ---
	users := gormdb.NewCredentialRepository(db)
	roles := gormdb.NewRoleRepository(db)
	history := mongodb.NewHistoryRepository(mdb)
	denylist := redisdb.NewDenylist(rdb)
	limiter := redisdb.NewRateLimiter(rdb, cfg.RateLimit.Limit, cfg.RateLimit.Interval)

	tokens := service.NewTokenService(cfg.JWTSecret, cfg.TokenTTL, denylist)
	authService := service.NewAuthService(users, roles, tokens, history, log)
	accessService := service.NewAccessService(users, roles)
	userService := service.NewUserService(users, roles, history, log)
	roleService := service.NewRoleService(roles, log)
	resolver := social.NewResolver(cfg.Social, cfg.PublicURL)

	authHandler := handler.NewAuthHandler(authService, resolver)
	userHandler := handler.NewUserHandler(authService, userService)
	roleHandler := handler.NewRoleHandler(roleService)

	authRequired := appmw.Auth(tokens, cfg.RefreshThreshold)
	rateLimited := appmw.RateLimit(limiter, cfg.RateLimit.ByEmail, cfg.RateLimit.ByIP)
	requireAny := func(permissions ...string) echo.MiddlewareFunc {
		return appmw.RequireAny(accessService, permissions...)
	}

	// --- Auth routes ---
	e.POST("/auth/login", authHandler.Login)
	e.GET("/auth/login/:provider", authHandler.SocialLogin)
	e.DELETE("/auth/logout", authHandler.Logout, authRequired)

	// --- User routes ---
	e.POST("/users/register", userHandler.Register)

	users_ := e.Group("/users", authRequired, rateLimited)
	users_.GET("/", userHandler.List, requireAny(domain.PermUserAllRead))
	users_.GET("/:id", userHandler.Get, requireAny(domain.PermUserSelfRead, domain.PermUserAllRead))
	users_.POST("/:id", userHandler.Update, requireAny(domain.PermUserSelfUpdate, domain.PermUserAllUpdate))
	users_.DELETE("/:id", userHandler.Disable, requireAny(domain.PermUserAllDelete))
	users_.GET("/:id/role", userHandler.GetRole, requireAny(domain.PermUserSelfRead, domain.PermUserAllRead))
	users_.PUT("/:id/role/:role_id", userHandler.SetRole, requireAny(domain.PermUserSelfSetRole, domain.PermUserAllSetRole))
	users_.GET("/:id/history", userHandler.History, requireAny(domain.PermUserSelfRead, domain.PermUserAllRead))

	// --- Role routes ---
	roles_ := e.Group("/roles", authRequired, rateLimited)
	roles_.POST("/create", roleHandler.Create, requireAny(domain.PermRoleSelfCreate, domain.PermRoleAllCreate))
	roles_.GET("/", roleHandler.List, requireAny(domain.PermRoleSelfRead, domain.PermRoleAllRead))
	roles_.GET("/:id", roleHandler.Get, requireAny(domain.PermRoleSelfRead, domain.PermRoleAllRead))
	roles_.POST("/:id", roleHandler.Update, requireAny(domain.PermRoleSelfUpdate, domain.PermRoleAllUpdate))
	roles_.DELETE("/:id", roleHandler.Delete, requireAny(domain.PermRoleSelfDelete, domain.PermRoleAllDelete))

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, mdb, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
