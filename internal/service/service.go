package service

import (
	"go.uber.org/zap"

	"github.com/w-isiah/shpsk/config"
	"github.com/w-isiah/shpsk/internal/repository"
	"github.com/w-isiah/shpsk/pkg/redis"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Auth     AuthService
	Location LocationService
	Export   ExportService
}

// NewService 创建 Service 聚合；rdb 为 nil 时 Token 吊销降级
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	rdb *redis.Client,
	logger *zap.Logger,
) *Service {
	// 避免把 nil *redis.Client 装进接口
	var blacklist TokenBlacklist
	if rdb != nil {
		blacklist = rdb
	}

	return &Service{
		Auth:     NewAuthService(blacklist, logger),
		Location: NewLocationService(repo, logger),
		Export:   NewExportService(repo, logger),
	}
}
