package service

import (
	"bytes"
	"context"
	"errors"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/w-isiah/shpsk/internal/model"
	"github.com/w-isiah/shpsk/internal/repository"
	pkgerrors "github.com/w-isiah/shpsk/pkg/errors"
)

// ── 导出模块业务错误 ──

var ErrExportGenerateFail = errors.New("生成 Excel 文件失败")

// ExportService 导出业务接口
//
// 导出以 bytes.Buffer 返回，由 Handler 层设置下载响应头。
type ExportService interface {
	ExportLocations(ctx context.Context) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger, now: time.Now}
}

const locationSheet = "地点"

var locationHeaders = []interface{}{"编号", "名称", "类型", "上级类型", "上级", "房间容量", "房间说明"}

func (s *exportService) ExportLocations(ctx context.Context) (*bytes.Buffer, string, error) {
	items, err := s.repo.Location.List(ctx)
	if err != nil {
		s.logger.Error("导出时查询地点失败", zap.Error(err))
		return nil, "", pkgerrors.Database(err)
	}

	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(locationSheet)
	if err != nil {
		s.logger.Error("创建工作表失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}
	f.SetActiveSheet(idx)
	// 删除默认 Sheet1
	if err := f.DeleteSheet("Sheet1"); err != nil {
		s.logger.Warn("删除默认工作表失败", zap.Error(err))
	}

	if err := f.SetSheetRow(locationSheet, "A1", &locationHeaders); err != nil {
		s.logger.Error("写入表头失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	if style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err == nil {
		_ = f.SetCellStyle(locationSheet, "A1", "G1", style)
	}

	for i := range items {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := locationRow(&items[i])
		if err := f.SetSheetRow(locationSheet, cell, &row); err != nil {
			s.logger.Error("写入地点行失败", zap.Int("row", i+2), zap.Error(err))
			return nil, "", ErrExportGenerateFail
		}
	}

	_ = f.SetColWidth(locationSheet, "B", "B", 24)
	_ = f.SetColWidth(locationSheet, "E", "E", 24)
	_ = f.SetColWidth(locationSheet, "G", "G", 40)

	buf, err := f.WriteToBuffer()
	if err != nil {
		s.logger.Error("输出 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := "locations_" + s.now().Format("20060102") + ".xlsx"
	return buf, filename, nil
}

func locationRow(item *model.LocationListItem) []interface{} {
	parent := item.Parent()
	row := []interface{}{
		item.LocationID,
		deref(item.Name),
		item.Type,
		"",
		deref(item.ParentName()),
		"",
		"",
	}
	if !parent.IsNone() {
		row[3] = string(parent.Kind)
	}
	if parent.Kind == model.ParentRoom {
		if item.RoomCapacity != nil {
			row[5] = *item.RoomCapacity
		}
		row[6] = deref(item.RoomDescription)
	}
	return row
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
