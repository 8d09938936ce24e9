package service

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// TokenBlacklist Token 吊销存储（Redis 实现）
type TokenBlacklist interface {
	BlacklistToken(ctx context.Context, jti string, ttl time.Duration) error
}

// AuthService 认证相关业务接口
// 登录与账号管理由认证模块负责，本服务只处理当前 Token 的吊销
type AuthService interface {
	Logout(ctx context.Context, jti string, expiresAt time.Time, userID string) error
}

type authService struct {
	blacklist TokenBlacklist
	logger    *zap.Logger
}

// NewAuthService 创建 AuthService 实例；blacklist 为 nil 时吊销降级为空操作
func NewAuthService(blacklist TokenBlacklist, logger *zap.Logger) AuthService {
	return &authService{blacklist: blacklist, logger: logger}
}

func (s *authService) Logout(ctx context.Context, jti string, expiresAt time.Time, userID string) error {
	if s.blacklist == nil {
		s.logger.Warn("Redis 不可用，Token 未加入黑名单", zap.String("user_id", userID))
		return nil
	}
	if err := s.blacklist.BlacklistToken(ctx, jti, time.Until(expiresAt)); err != nil {
		s.logger.Error("Token 加入黑名单失败", zap.String("user_id", userID), zap.Error(err))
		return err
	}
	return nil
}
