package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"elevate-backend/internal/services/health"
	"elevate-backend/internal/shared/config"
	"elevate-backend/internal/shared/metrics"
	"elevate-backend/internal/shared/server/middleware"
	"elevate-backend/internal/shared/server/respond"
)

// RouteRegistrar is implemented by every feature handler.
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// RouterDeps carries what the router needs from bootstrap.
type RouterDeps struct {
	Config    config.Config
	Verifier  middleware.TokenVerifier
	RateLimit *middleware.RateLimitConfig
	Health    *health.Service
	Handlers  []RouteRegistrar
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	if deps.Config.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	limits := middleware.DefaultRateLimitConfig()
	if deps.RateLimit != nil {
		limits = *deps.RateLimit
	}

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin()),
		middleware.Auth(deps.Verifier),
		middleware.RateLimit(limits),
	)

	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		status := deps.Health.Check(c.Request.Context())
		code := http.StatusOK
		if !status.OK {
			code = http.StatusServiceUnavailable
		}
		respond.JSON(c, code, status)
	})
	for _, h := range deps.Handlers {
		if h != nil {
			h.RegisterRoutes(api)
		}
	}
	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
