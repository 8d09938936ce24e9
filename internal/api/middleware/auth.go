package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/w-isiah/shpsk/internal/auth"
	"github.com/w-isiah/shpsk/pkg/jwt"
	"github.com/w-isiah/shpsk/pkg/response"
)

// 上下文键，Handler 通过同名键读取
const (
	ActorKey    = "actor"
	UserIDKey   = "user_id"
	RoleKey     = "role"
	TokenJTIKey = "token_jti"
	TokenExpKey = "token_exp"
)

// TokenChecker Token 黑名单查询（Redis 实现）
type TokenChecker interface {
	IsBlacklisted(ctx context.Context, jti string) (bool, error)
}

// JWTAuth JWT 认证中间件
// 从 Authorization: Bearer <token> 中提取并验证 Access Token
// checker 为 nil 或 Redis 出错时跳过黑名单检查
func JWTAuth(jwtMgr *jwt.Manager, checker TokenChecker, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, 10002, "缺少认证头")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(c, 10002, "认证头格式无效")
			c.Abort()
			return
		}

		claims, err := jwtMgr.ParseToken(parts[1])
		if err != nil {
			response.Unauthorized(c, 10002, "Token 无效或已过期")
			c.Abort()
			return
		}

		if checker != nil && claims.ID != "" {
			revoked, err := checker.IsBlacklisted(c.Request.Context(), claims.ID)
			if err != nil {
				logger.Warn("黑名单检查失败，降级放行", zap.Error(err))
			} else if revoked {
				response.Unauthorized(c, 10002, "Token 已注销")
				c.Abort()
				return
			}
		}

		actor := auth.Actor{UserID: claims.UserID, Role: claims.Role}
		c.Set(ActorKey, actor)
		c.Set(UserIDKey, claims.UserID)
		c.Set(RoleKey, claims.Role)
		c.Set(TokenJTIKey, claims.ID)
		if claims.ExpiresAt != nil {
			c.Set(TokenExpKey, claims.ExpiresAt.Time)
		}

		c.Next()
	}
}

// RoleAuth 角色权限中间件
// 检查当前用户是否具有指定角色之一
func RoleAuth(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		v, exists := c.Get(ActorKey)
		actor, ok := v.(auth.Actor)
		if !exists || !ok || actor.IsZero() {
			response.Unauthorized(c, 10002, "未认证")
			c.Abort()
			return
		}

		if !actor.HasRole(allowedRoles...) {
			response.Forbidden(c, 10003, "无权限访问")
			c.Abort()
			return
		}

		c.Next()
	}
}
