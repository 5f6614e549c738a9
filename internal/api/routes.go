package api

import (
	"github.com/gin-gonic/gin"
	"github.com/jroosing/nextdash/internal/api/handlers"
	"github.com/jroosing/nextdash/internal/api/middleware"
	"github.com/jroosing/nextdash/internal/config"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/jroosing/nextdash/internal/api/docs" // swagger docs
)

func RegisterRoutes(r *gin.Engine, h *handlers.Handler, cfg *config.Config) {
	// Swagger UI at /swagger/*
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api/v1")

	if cfg != nil && cfg.RateLimit.Enabled() {
		api.Use(middleware.RateLimit(middleware.NewRateLimiter(RateLimitSettings(cfg.RateLimit))))
	}

	// Optional API key protection.
	if cfg != nil && cfg.Server.APIKey != "" {
		api.Use(middleware.RequireAPIKey(cfg.Server.APIKey))
	}

	api.GET("/health", h.Health)
	api.GET("/stats", h.Stats)
	api.GET("/config", h.GetConfig)

	p := api.Group("/profiles/:id")

	p.GET("", h.GetProfile)
	p.PATCH("", h.UpdateProfile)

	p.GET("/security", h.GetSecurity)
	p.PATCH("/security", h.UpdateSecurity)
	p.GET("/privacy", h.GetPrivacy)
	p.PATCH("/privacy", h.UpdatePrivacy)
	p.GET("/parental-control", h.GetParentalControl)
	p.PATCH("/parental-control", h.UpdateParentalControl)

	p.GET("/allowlist", h.GetAllowlist)
	p.POST("/allowlist", h.AddAllowlist)
	p.DELETE("/allowlist/:domain", h.RemoveAllowlist)

	p.GET("/denylist", h.GetDenylist)
	p.POST("/denylist", h.AddDenylist)
	p.DELETE("/denylist/:domain", h.RemoveDenylist)

	p.GET("/analytics", h.GetAnalytics)
	p.GET("/logs", h.GetLogs)
}

// RateLimitSettings maps the rate_limit config section onto the middleware.
func RateLimitSettings(c config.RateLimitConfig) middleware.RateLimitSettings {
	return middleware.RateLimitSettings{
		CleanupSeconds: c.CleanupSeconds,
		MaxIPEntries:   c.MaxIPEntries,
		GlobalQPS:      c.GlobalQPS,
		GlobalBurst:    c.GlobalBurst,
		IPQPS:          c.IPQPS,
		IPBurst:        c.IPBurst,
	}
}
