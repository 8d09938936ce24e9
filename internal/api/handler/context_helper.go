package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/w-isiah/shpsk/internal/api/middleware"
	"github.com/w-isiah/shpsk/internal/auth"
	"github.com/w-isiah/shpsk/pkg/response"
)

// MustGetActor 从 Gin 上下文中安全提取当前操作者。
// 如果 JWT 中间件未正确注入，返回 false 并写入 401 响应。
// 调用方应在 ok=false 时直接 return。
func MustGetActor(c *gin.Context) (auth.Actor, bool) {
	v, exists := c.Get(middleware.ActorKey)
	if !exists {
		response.Unauthorized(c, 10002, "未认证")
		return auth.Actor{}, false
	}
	actor, ok := v.(auth.Actor)
	if !ok || actor.IsZero() {
		response.Unauthorized(c, 10002, "未认证")
		return auth.Actor{}, false
	}
	return actor, true
}

// MustGetTokenInfo 提取当前 Token 的 jti 与过期时间，用于登出吊销
func MustGetTokenInfo(c *gin.Context) (string, time.Time, bool) {
	jti := c.GetString(middleware.TokenJTIKey)
	exp, ok := c.Get(middleware.TokenExpKey)
	expAt, isTime := exp.(time.Time)
	if jti == "" || !ok || !isTime {
		response.Unauthorized(c, 10002, "未认证")
		return "", time.Time{}, false
	}
	return jti, expAt, true
}

// MustParseID 解析路径参数中的正整数 ID
func MustParseID(c *gin.Context, name, label string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		response.BadRequest(c, 10001, label+"ID无效")
		return 0, false
	}
	return id, true
}
