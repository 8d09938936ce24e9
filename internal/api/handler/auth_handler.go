package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/w-isiah/shpsk/internal/service"
	"github.com/w-isiah/shpsk/pkg/response"
)

// AuthHandler 认证模块 HTTP 处理器
type AuthHandler struct {
	authSvc service.AuthService
}

// NewAuthHandler 创建 AuthHandler
func NewAuthHandler(authSvc service.AuthService) *AuthHandler {
	return &AuthHandler{authSvc: authSvc}
}

// Logout 注销当前 Token
// POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}
	jti, expiresAt, ok := MustGetTokenInfo(c)
	if !ok {
		return
	}

	if err := h.authSvc.Logout(c.Request.Context(), jti, expiresAt, actor.UserID); err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, nil, response.Info("已退出登录"))
}
