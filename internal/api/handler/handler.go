package handler

import "github.com/w-isiah/shpsk/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth     *AuthHandler
	Location *LocationHandler
	Export   *ExportHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:     NewAuthHandler(svc.Auth),
		Location: NewLocationHandler(svc.Location),
		Export:   NewExportHandler(svc.Export),
	}
}
