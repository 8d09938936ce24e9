package router

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/w-isiah/shpsk/config"
	"github.com/w-isiah/shpsk/internal/api/handler"
	"github.com/w-isiah/shpsk/internal/api/middleware"
	"github.com/w-isiah/shpsk/internal/auth"
	"github.com/w-isiah/shpsk/pkg/jwt"
	"github.com/w-isiah/shpsk/pkg/redis"
)

// 写接口可用角色
var (
	editorRoles  = []string{auth.RoleSuperAdmin, auth.RoleAdmin, auth.RoleStaff}
	deleterRoles = []string{auth.RoleSuperAdmin, auth.RoleAdmin}
)

// Setup 初始化并返回 Gin 路由引擎；rdb 为 nil 时黑名单与限流降级
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, db *gorm.DB, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(cfg.Server.BodyLimit))

	// 避免把 nil *redis.Client 装进接口
	var (
		checker middleware.TokenChecker
		limiter middleware.RateLimiter
	)
	if rdb != nil {
		checker = rdb
		if cfg.RateLimit.Enabled {
			limiter = rdb
		}
	}
	writeLimit := middleware.RateLimit(limiter, cfg.RateLimit.Requests, cfg.RateLimit.Window, logger)

	// ── 健康检查 ──
	r.GET("/health", healthCheck(db, rdb))

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	authorized := v1.Group("")
	authorized.Use(middleware.JWTAuth(jwtMgr, checker, logger))
	{
		authorized.POST("/auth/logout", h.Auth.Logout)

		// 地点模块
		locations := authorized.Group("/locations")
		{
			locations.GET("", h.Location.ListLocations)
			locations.GET("/parent-options", h.Location.ParentOptions)
			locations.GET("/export", h.Export.ExportLocations)
			locations.GET("/:id", h.Location.GetLocation)
			locations.POST("", middleware.RoleAuth(editorRoles...), writeLimit, h.Location.CreateLocation)
			locations.PUT("/:id", middleware.RoleAuth(editorRoles...), writeLimit, h.Location.UpdateLocation)
			locations.DELETE("/:id", middleware.RoleAuth(deleterRoles...), writeLimit, h.Location.DeleteLocation)
		}
	}

	return r
}

// healthCheck 数据库不可用时返回 503；Redis 仅报告状态
func healthCheck(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		status := http.StatusOK
		body := gin.H{"status": "ok", "db": "ok", "redis": "disabled"}

		if db == nil {
			status = http.StatusServiceUnavailable
			body["status"], body["db"] = "unavailable", "unavailable"
		} else if sqlDB, err := db.DB(); err != nil || sqlDB.PingContext(ctx) != nil {
			status = http.StatusServiceUnavailable
			body["status"], body["db"] = "unavailable", "unavailable"
		}

		if rdb != nil {
			body["redis"] = "ok"
			if err := rdb.Ping(ctx); err != nil {
				body["redis"] = "unavailable"
			}
		}

		c.JSON(status, body)
	}
}
