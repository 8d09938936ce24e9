package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/w-isiah/shpsk/internal/api/validator"
	"github.com/w-isiah/shpsk/internal/dto"
	"github.com/w-isiah/shpsk/internal/service"
	pkgerrors "github.com/w-isiah/shpsk/pkg/errors"
	"github.com/w-isiah/shpsk/pkg/response"
)

// LocationHandler 地点模块 HTTP 处理器
type LocationHandler struct {
	locationSvc service.LocationService
}

// NewLocationHandler 创建 LocationHandler
func NewLocationHandler(locationSvc service.LocationService) *LocationHandler {
	return &LocationHandler{locationSvc: locationSvc}
}

// ListLocations 获取地点列表（含上级名称与房间信息）
// GET /api/v1/locations
func (h *LocationHandler) ListLocations(c *gin.Context) {
	locations, err := h.locationSvc.List(c.Request.Context())
	if err != nil {
		// 查询失败时仍返回空列表，前端照常渲染
		response.ErrorWithData(c, http.StatusInternalServerError, 16000,
			"加载地点列表失败", dto.ListResponse{List: []dto.LocationResponse{}, Total: 0})
		return
	}

	response.OK(c, dto.ListResponse{List: locations, Total: len(locations)})
}

// GetLocation 获取地点详情
// GET /api/v1/locations/:id
func (h *LocationHandler) GetLocation(c *gin.Context) {
	id, ok := MustParseID(c, "id", "地点")
	if !ok {
		return
	}

	location, err := h.locationSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleLocationError(c, err)
		return
	}

	response.OK(c, location)
}

// CreateLocation 创建地点
// POST /api/v1/locations
func (h *LocationHandler) CreateLocation(c *gin.Context) {
	var req dto.CreateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, 10001, "参数校验失败", validator.Details(err))
		return
	}

	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	location, err := h.locationSvc.Create(c.Request.Context(), &req, actor)
	if err != nil {
		h.handleLocationError(c, err)
		return
	}

	response.Created(c, location, response.Success("地点已创建"))
}

// UpdateLocation 更新地点
// PUT /api/v1/locations/:id
func (h *LocationHandler) UpdateLocation(c *gin.Context) {
	id, ok := MustParseID(c, "id", "地点")
	if !ok {
		return
	}

	var req dto.UpdateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, 10001, "参数校验失败", validator.Details(err))
		return
	}

	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	location, err := h.locationSvc.Update(c.Request.Context(), id, &req, actor)
	if err != nil {
		h.handleLocationError(c, err)
		return
	}

	response.OK(c, location, response.Success("地点已更新"))
}

// DeleteLocation 删除地点；其子地点移到顶级
// DELETE /api/v1/locations/:id
func (h *LocationHandler) DeleteLocation(c *gin.Context) {
	id, ok := MustParseID(c, "id", "地点")
	if !ok {
		return
	}

	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	result, err := h.locationSvc.Delete(c.Request.Context(), id, actor)
	if err != nil {
		h.handleLocationError(c, err)
		return
	}

	var messages []response.Flash
	if result.Reparented > 0 {
		messages = append(messages, response.Warning(fmt.Sprintf("%d 个子地点已移到顶级", result.Reparented)))
	}
	messages = append(messages, response.Success("地点已删除"))
	response.OK(c, result, messages...)
}

// ParentOptions 获取上级候选（房间与地点）
// GET /api/v1/locations/parent-options?exclude_id=
func (h *LocationHandler) ParentOptions(c *gin.Context) {
	var req dto.ParentOptionsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, 10001, "参数校验失败", validator.Details(err))
		return
	}

	options, err := h.locationSvc.ParentOptions(c.Request.Context(), &req)
	if err != nil {
		h.handleLocationError(c, err)
		return
	}

	response.OK(c, options)
}

// handleLocationError 统一处理地点模块业务错误
func (h *LocationHandler) handleLocationError(c *gin.Context, err error) {
	var inUse *service.LocationInUseError
	switch {
	case errors.Is(err, service.ErrLocationNotFound):
		response.NotFound(c, 16001, "地点不存在")
	case errors.Is(err, service.ErrParentLocationNotFound):
		response.NotFound(c, 16009, "上级地点不存在")
	case errors.Is(err, service.ErrParentRoomNotFound):
		response.NotFound(c, 16010, "上级房间不存在")
	case errors.Is(err, service.ErrLocationNameExists):
		response.Conflict(c, 16003, "地点名称已存在")
	case errors.Is(err, service.ErrParentSlotTaken):
		response.Conflict(c, 16004, "该上级下已存在地点")
	case errors.Is(err, service.ErrTopLevelExists):
		response.Conflict(c, 16005, "已存在顶级地点")
	case errors.Is(err, service.ErrParentCycle):
		response.Conflict(c, 16006, "不能以自身或下级地点作为上级")
	case errors.As(err, &inUse):
		response.Conflict(c, 16007, inUse.Error())
	case errors.Is(err, service.ErrLocationHasAssets):
		response.Conflict(c, 16007, "地点仍关联固定资产，无法删除")
	case errors.Is(err, pkgerrors.ErrValidation):
		response.BadRequest(c, 16002, pkgerrors.Message(err))
	case errors.Is(err, pkgerrors.ErrConflict):
		response.Conflict(c, 16008, pkgerrors.Message(err))
	case errors.Is(err, pkgerrors.ErrNotFound):
		response.NotFound(c, 16001, pkgerrors.Message(err))
	default:
		response.InternalError(c)
	}
}
