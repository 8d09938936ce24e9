package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/w-isiah/shpsk/internal/auth"
	"github.com/w-isiah/shpsk/internal/dto"
	"github.com/w-isiah/shpsk/internal/model"
	"github.com/w-isiah/shpsk/internal/repository"
	pkgerrors "github.com/w-isiah/shpsk/pkg/errors"
)

// ── 地点模块业务错误 ──

var (
	ErrLocationNotFound       = pkgerrors.NotFound("地点不存在")
	ErrLocationTypeRequired   = pkgerrors.Validation("地点类型不能为空")
	ErrLocationNameRequired   = pkgerrors.Validation("地点名称不能为空")
	ErrLocationNameInvalid    = pkgerrors.Validation("地点名称只能包含字母、数字、空格、短横线或下划线")
	ErrParentInvalid          = pkgerrors.Validation("上级引用格式无效")
	ErrLocationNameExists     = pkgerrors.Conflict("地点名称已存在")
	ErrParentSlotTaken        = pkgerrors.Conflict("该上级下已存在地点")
	ErrTopLevelExists         = pkgerrors.Conflict("已存在顶级地点")
	ErrParentCycle            = pkgerrors.Conflict("不能以自身或下级地点作为上级")
	ErrLocationHasAssets      = pkgerrors.Conflict("地点仍关联固定资产，无法删除")
	ErrLocationConflict       = pkgerrors.Conflict("地点名称或上级已被占用")
	ErrParentLocationNotFound = pkgerrors.NotFound("上级地点不存在")
	ErrParentRoomNotFound     = pkgerrors.NotFound("上级房间不存在")
)

// LocationInUseError 地点仍被固定资产引用
type LocationInUseError struct {
	AssetCount int64
}

func (e *LocationInUseError) Error() string {
	return fmt.Sprintf("仍有 %d 项固定资产关联该地点，无法删除", e.AssetCount)
}

func (e *LocationInUseError) Unwrap() error { return ErrLocationHasAssets }

// 祖先链遍历上限，防止脏数据导致死循环
const maxAncestorDepth = 1000

// LocationService 地点业务接口
//
// 一致性规则：
//   - 名称非空时全局唯一
//   - 每个上级（地点/房间/顶级）最多被一个地点占用
//   - 仍关联固定资产的地点不可删除；删除上级地点时其子地点移到顶级
type LocationService interface {
	List(ctx context.Context) ([]dto.LocationResponse, error)
	GetByID(ctx context.Context, id int64) (*dto.LocationResponse, error)
	Create(ctx context.Context, req *dto.CreateLocationRequest, actor auth.Actor) (*dto.LocationResponse, error)
	Update(ctx context.Context, id int64, req *dto.UpdateLocationRequest, actor auth.Actor) (*dto.LocationResponse, error)
	Delete(ctx context.Context, id int64, actor auth.Actor) (*dto.DeleteLocationResponse, error)
	// ParentOptions 上级候选：全部房间与地点（可排除正在编辑的地点）
	ParentOptions(ctx context.Context, req *dto.ParentOptionsRequest) (*dto.ParentOptionsResponse, error)
}

type locationService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewLocationService 创建 LocationService 实例
func NewLocationService(repo *repository.Repository, logger *zap.Logger) LocationService {
	return &locationService{repo: repo, logger: logger}
}

// ────────────────────── List ──────────────────────

// List 每次直接查库：房间容量与说明由房间模块维护，列表不做缓存
func (s *locationService) List(ctx context.Context) ([]dto.LocationResponse, error) {
	items, err := s.repo.Location.List(ctx)
	if err != nil {
		s.logger.Error("列出地点失败", zap.Error(err))
		return []dto.LocationResponse{}, pkgerrors.Database(err)
	}

	result := make([]dto.LocationResponse, 0, len(items))
	for i := range items {
		result = append(result, toLocationResponse(&items[i]))
	}

	return result, nil
}

// ────────────────────── GetByID ──────────────────────

func (s *locationService) GetByID(ctx context.Context, id int64) (*dto.LocationResponse, error) {
	return s.detail(ctx, id)
}

// ────────────────────── Create ──────────────────────

func (s *locationService) Create(ctx context.Context, req *dto.CreateLocationRequest, actor auth.Actor) (*dto.LocationResponse, error) {
	name := strings.TrimSpace(req.Name)
	locType := strings.TrimSpace(req.Type)

	if locType == "" {
		return nil, ErrLocationTypeRequired
	}
	if name != "" && !model.ValidLocationName(name) {
		return nil, ErrLocationNameInvalid
	}
	parent, err := parseParent(req.Parent)
	if err != nil {
		return nil, err
	}

	if err := s.checkName(ctx, name, 0); err != nil {
		return nil, err
	}
	if err := s.checkParent(ctx, parent, 0); err != nil {
		return nil, err
	}
	if err := s.checkSlot(ctx, parent, 0); err != nil {
		return nil, err
	}

	loc := &model.Location{Type: locType}
	if name != "" {
		loc.Name = &name
	}
	loc.SetParent(parent)
	loc.Touch(actor.UserID, true)

	if err := s.repo.Location.Create(ctx, loc); err != nil {
		return nil, s.translateWriteError("创建地点失败", 0, err)
	}

	s.logger.Info("地点已创建",
		zap.Int64("id", loc.LocationID),
		zap.String("parent", parent.String()),
		zap.String("actor", actor.UserID),
	)

	return s.detail(ctx, loc.LocationID)
}

// ────────────────────── Update ──────────────────────

func (s *locationService) Update(ctx context.Context, id int64, req *dto.UpdateLocationRequest, actor auth.Actor) (*dto.LocationResponse, error) {
	name := strings.TrimSpace(req.Name)
	locType := strings.TrimSpace(req.Type)

	if name == "" {
		return nil, ErrLocationNameRequired
	}
	if locType == "" {
		return nil, ErrLocationTypeRequired
	}
	if !model.ValidLocationName(name) {
		return nil, ErrLocationNameInvalid
	}
	parent, err := parseParent(req.Parent)
	if err != nil {
		return nil, err
	}

	loc, err := s.repo.Location.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLocationNotFound
		}
		s.logger.Error("查询地点失败", zap.Int64("id", id), zap.Error(err))
		return nil, pkgerrors.Database(err)
	}

	// 编辑同样遵守名称与上级唯一规则（排除自身）
	if err := s.checkName(ctx, name, id); err != nil {
		return nil, err
	}
	if err := s.checkParent(ctx, parent, id); err != nil {
		return nil, err
	}
	if err := s.checkSlot(ctx, parent, id); err != nil {
		return nil, err
	}

	loc.Name = &name
	loc.Type = locType
	loc.SetParent(parent)
	loc.Touch(actor.UserID, false)

	if err := s.repo.Location.Update(ctx, loc); err != nil {
		return nil, s.translateWriteError("更新地点失败", id, err)
	}

	return s.detail(ctx, id)
}

// ────────────────────── Delete ──────────────────────

func (s *locationService) Delete(ctx context.Context, id int64, actor auth.Actor) (*dto.DeleteLocationResponse, error) {
	if _, err := s.repo.Location.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLocationNotFound
		}
		s.logger.Error("查询地点失败", zap.Int64("id", id), zap.Error(err))
		return nil, pkgerrors.Database(err)
	}

	assets, err := s.repo.FixedAsset.CountByLocation(ctx, id)
	if err != nil {
		s.logger.Error("统计地点固定资产失败", zap.Int64("id", id), zap.Error(err))
		return nil, pkgerrors.Database(err)
	}
	if assets > 0 {
		return nil, &LocationInUseError{AssetCount: assets}
	}

	reparented, err := s.repo.Location.Delete(ctx, id)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return nil, ErrLocationNotFound
		case errors.Is(err, gorm.ErrForeignKeyViolated):
			// 检查之后又有资产挂到该地点
			return nil, ErrLocationHasAssets
		}
		s.logger.Error("删除地点失败", zap.Int64("id", id), zap.Error(err))
		return nil, pkgerrors.Database(err)
	}

	if reparented > 0 {
		s.logger.Warn("子地点已移到顶级",
			zap.Int64("id", id),
			zap.Int64("reparented", reparented),
		)
	}
	s.logger.Info("地点已删除", zap.Int64("id", id), zap.String("actor", actor.UserID))

	return &dto.DeleteLocationResponse{ID: id, Reparented: reparented}, nil
}

// ────────────────────── ParentOptions ──────────────────────

func (s *locationService) ParentOptions(ctx context.Context, req *dto.ParentOptionsRequest) (*dto.ParentOptionsResponse, error) {
	rooms, err := s.repo.Room.List(ctx)
	if err != nil {
		s.logger.Error("列出房间失败", zap.Error(err))
		return nil, pkgerrors.Database(err)
	}

	locations, err := s.repo.Location.ListOptions(ctx, req.ExcludeID)
	if err != nil {
		s.logger.Error("列出上级地点失败", zap.Error(err))
		return nil, pkgerrors.Database(err)
	}

	resp := &dto.ParentOptionsResponse{
		Rooms:     make([]dto.ParentOption, 0, len(rooms)),
		Locations: make([]dto.ParentOption, 0, len(locations)),
	}
	for _, r := range rooms {
		resp.Rooms = append(resp.Rooms, dto.ParentOption{
			Kind:        string(model.ParentRoom),
			ID:          r.RoomID,
			Name:        r.RoomName,
			Type:        "Room",
			Description: r.Description,
		})
	}
	for i := range locations {
		resp.Locations = append(resp.Locations, dto.ParentOption{
			Kind: string(model.ParentLocation),
			ID:   locations[i].LocationID,
			Name: locations[i].DisplayName(),
			Type: locations[i].Type,
		})
	}

	return resp, nil
}

// ── 内部辅助方法 ──

func parseParent(req *dto.ParentRefRequest) (model.ParentRef, error) {
	if req == nil {
		return model.NoParent(), nil
	}
	ref := model.ParentRef{Kind: model.ParentKind(req.Kind), ID: req.ID}
	if ref.IsNone() || !ref.Valid() {
		return model.ParentRef{}, ErrParentInvalid
	}
	return ref, nil
}

// checkName 名称唯一；selfID 为编辑中的地点
func (s *locationService) checkName(ctx context.Context, name string, selfID int64) error {
	if name == "" {
		return nil
	}
	existing, err := s.repo.Location.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		s.logger.Error("按名称查询地点失败", zap.String("name", name), zap.Error(err))
		return pkgerrors.Database(err)
	}
	if existing.LocationID != selfID {
		return ErrLocationNameExists
	}
	return nil
}

// checkParent 上级必须存在；地点上级不能是自身或自身的下级
func (s *locationService) checkParent(ctx context.Context, parent model.ParentRef, selfID int64) error {
	switch parent.Kind {
	case model.ParentRoom:
		if _, err := s.repo.Room.GetByID(ctx, parent.ID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrParentRoomNotFound
			}
			s.logger.Error("查询上级房间失败", zap.Int64("room_id", parent.ID), zap.Error(err))
			return pkgerrors.Database(err)
		}
		return nil

	case model.ParentLocation:
		if selfID != 0 && parent.ID == selfID {
			return ErrParentCycle
		}
		cur, err := s.repo.Location.GetByID(ctx, parent.ID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrParentLocationNotFound
			}
			s.logger.Error("查询上级地点失败", zap.Int64("parent_id", parent.ID), zap.Error(err))
			return pkgerrors.Database(err)
		}
		if selfID == 0 {
			return nil
		}

		// 沿上级链向上，遇到自身即成环
		seen := map[int64]bool{cur.LocationID: true}
		for depth := 0; depth < maxAncestorDepth; depth++ {
			up := cur.Parent()
			if up.Kind != model.ParentLocation {
				return nil
			}
			if up.ID == selfID {
				return ErrParentCycle
			}
			if seen[up.ID] {
				return nil
			}
			seen[up.ID] = true

			cur, err = s.repo.Location.GetByID(ctx, up.ID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return nil
				}
				return pkgerrors.Database(err)
			}
		}
		return nil
	}
	return nil
}

// checkSlot 每个上级（含顶级）只允许一个地点
func (s *locationService) checkSlot(ctx context.Context, parent model.ParentRef, selfID int64) error {
	existing, err := s.repo.Location.GetByParent(ctx, parent)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		s.logger.Error("按上级查询地点失败", zap.String("parent", parent.String()), zap.Error(err))
		return pkgerrors.Database(err)
	}
	if existing.LocationID == selfID {
		return nil
	}
	if parent.IsNone() {
		return ErrTopLevelExists
	}
	return ErrParentSlotTaken
}

// translateWriteError 将写入时的约束冲突翻译为业务错误
// 唯一索引兜底并发写入：两个请求同时通过检查时，后写入者在此失败
func (s *locationService) translateWriteError(msg string, id int64, err error) error {
	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrLocationConflict
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return ErrParentLocationNotFound
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrLocationNotFound
	}
	s.logger.Error(msg, zap.Int64("id", id), zap.Error(err))
	return pkgerrors.Database(err)
}

func (s *locationService) detail(ctx context.Context, id int64) (*dto.LocationResponse, error) {
	item, err := s.repo.Location.GetDetail(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLocationNotFound
		}
		s.logger.Error("查询地点失败", zap.Int64("id", id), zap.Error(err))
		return nil, pkgerrors.Database(err)
	}
	resp := toLocationResponse(item)
	return &resp, nil
}

func toLocationResponse(item *model.LocationListItem) dto.LocationResponse {
	resp := dto.LocationResponse{
		ID:   item.LocationID,
		Name: item.Name,
		Type: item.Type,
	}

	parent := item.Parent()
	if !parent.IsNone() {
		resp.Parent = &dto.ParentResponse{
			Kind: string(parent.Kind),
			ID:   parent.ID,
			Name: item.ParentName(),
		}
	}
	if parent.Kind == model.ParentRoom {
		resp.Room = &dto.RoomDetail{
			Capacity:    item.RoomCapacity,
			Description: item.RoomDescription,
		}
	}

	return resp
}
