package router

import (
	"context"
	"net/http"
	"time"

	apphttp "railspace_backend/internal/http"
	"railspace_backend/platform/httpkit"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

const generalRequestsPerMinute = 120

// New builds the gin engine: global middleware, health check, the public,
// session-protected and admin route groups, then every module's routes.
func New(app *apphttp.App) *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(httpkit.RequestID())
	engine.Use(httpkit.RequestLogger(app.Logger))
	engine.Use(httpkit.SecurityHeaders())
	engine.Use(cors.New(corsConfig(app.Config)))

	engine.GET("/api/health", healthHandler(app.Health))

	v1 := engine.Group("/api/v1")
	v1.Use(httpkit.NewPerMinuteLimiter(generalRequestsPerMinute, app.Logger).RateLimit())

	protected := v1.Group("")
	protected.Use(httpkit.AuthRequired(app.Config))

	admin := v1.Group("/admin")
	admin.Use(httpkit.AdminRequired(app.Config, app.Logger))

	rc := &apphttp.RouterContext{
		Engine:      engine,
		V1:          v1,
		Protected:   protected,
		Admin:       admin,
		AIRateLimit: aiRateLimit(app),
	}

	for _, module := range app.Modules {
		app.Logger.Debug("registering module routes", "module", module.Name())
		module.RegisterRoutes(rc)
	}

	return engine
}

func aiRateLimit(app *apphttp.App) gin.HandlerFunc {
	perMinute := app.Config.GetAIRateLimitPerMinute()
	if app.Redis != nil {
		return httpkit.NewRedisRateLimiter(app.Redis, "ratelimit:ai", perMinute, time.Minute, app.Logger).RateLimit()
	}
	return httpkit.NewPerMinuteLimiter(perMinute, app.Logger).RateLimit()
}

func corsConfig(cfg apphttp.RouterConfig) cors.Config {
	c := cors.Config{
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", httpkit.HeaderRequestID},
		ExposeHeaders:    []string{httpkit.HeaderRequestID},
		AllowCredentials: cfg.GetCORSAllowCreds(),
		MaxAge:           12 * time.Hour,
	}
	if cfg.GetCORSAllowAll() {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = cfg.GetCORSOrigins()
	}
	return c
}

func healthHandler(health apphttp.HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		if health != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := health.Ping(ctx); err != nil {
				httpkit.Error(c, http.StatusServiceUnavailable, "database unavailable", nil)
				return
			}
		}
		httpkit.OK(c, gin.H{"status": "ok"})
	}
}
