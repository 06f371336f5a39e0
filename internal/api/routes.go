package api

import (
	"github.com/gin-gonic/gin"
	"github.com/jroosing/dyndns/internal/api/handlers"
	"github.com/jroosing/dyndns/internal/api/middleware"
	"github.com/jroosing/dyndns/internal/config"
	"github.com/jroosing/dyndns/internal/ratelimit"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/jroosing/dyndns/internal/api/docs" // swagger docs
)

// RegisterRoutes mounts every endpoint on r.
func RegisterRoutes(r *gin.Engine, h *handlers.Handler, cfg *config.Config, limiter *ratelimit.Limiter) {
	if cfg.API.EnableSwagger {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Lookup protocol. A single catch-all route: gin cannot hold both
	// /lookup/:qname/:qtype and a catch-all for malformed paths.
	pdns := r.Group("/pdns")
	pdns.GET("/lookup/*params", h.Lookup)
	pdns.GET("/getAllDomains", h.GetAllDomains)
	pdns.GET("/getAllDomainMetadata/:name", h.GetAllDomainMetadata)

	upd := r.Group("/update", middleware.RateLimit(limiter, cfg.Update.TrustProxyHeaders))
	upd.GET("", h.Update)
	upd.GET("/*params", h.Update)

	v1 := r.Group("/api/v1")
	v1.GET("/health", h.Health)

	admin := v1.Group("", middleware.RequireAdmin(cfg.API.APIKey, h.Accounts()))
	admin.GET("/stats", h.Stats)
	admin.GET("/zones", h.ListZones)
	admin.POST("/setup", h.SetupBaseDomain)
	admin.POST("/zones", h.CreateZone)
	admin.DELETE("/zones/:name", h.DeleteZone)
	admin.GET("/config/delete-zone-enabled", h.GetDeleteZoneEnabled)
	admin.PUT("/config/delete-zone-enabled", h.SetDeleteZoneEnabled)
	admin.GET("/advanced/:zone", h.ListAdvanced)
	admin.POST("/advanced", h.AddAdvanced)
	admin.DELETE("/advanced", h.DeleteAdvanced)
	admin.GET("/admin/logs", h.AdminLogs)

	user := v1.Group("/domains", middleware.RequireUser(h.Accounts()))
	user.GET("", h.ListDomains)
	user.POST("", h.CreateDomain)
	user.DELETE("/:name", h.DeleteDomain)
}
