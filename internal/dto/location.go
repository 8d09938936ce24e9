package dto

// ── 地点模块 DTO ──

// ParentRefRequest 上级引用；整体为空表示顶级地点
type ParentRefRequest struct {
	Kind string `json:"kind" binding:"required,oneof=location room"`
	ID   int64  `json:"id"   binding:"required,min=1"`
}

// CreateLocationRequest 新增地点请求
// 名称可选；类型必填由业务层校验，以便返回明确的提示
type CreateLocationRequest struct {
	Name   string            `json:"name"   binding:"omitempty,max=100,location_name"`
	Type   string            `json:"type"   binding:"max=50"`
	Parent *ParentRefRequest `json:"parent"`
}

// UpdateLocationRequest 编辑地点请求（名称与类型均必填）
type UpdateLocationRequest struct {
	Name   string            `json:"name"   binding:"notblank,max=100,location_name"`
	Type   string            `json:"type"   binding:"notblank,max=50"`
	Parent *ParentRefRequest `json:"parent"`
}

// ParentOptionsRequest 上级候选查询参数
type ParentOptionsRequest struct {
	ExcludeID int64 `form:"exclude_id" binding:"omitempty,min=1"`
}

// ParentResponse 上级信息
type ParentResponse struct {
	Kind string  `json:"kind"`
	ID   int64   `json:"id"`
	Name *string `json:"name,omitempty"`
}

// RoomDetail 上级为房间时附带的房间信息
type RoomDetail struct {
	Capacity    *int    `json:"capacity,omitempty"`
	Description *string `json:"description,omitempty"`
}

// LocationResponse 地点信息响应
type LocationResponse struct {
	ID     int64           `json:"id"`
	Name   *string         `json:"name"`
	Type   string          `json:"type"`
	Parent *ParentResponse `json:"parent"`
	Room   *RoomDetail     `json:"room,omitempty"`
}

// DeleteLocationResponse 删除结果
type DeleteLocationResponse struct {
	ID         int64 `json:"id"`
	Reparented int64 `json:"reparented"` // 被移到顶级的子地点数
}

// ParentOption 上级候选项
type ParentOption struct {
	Kind        string  `json:"kind"`
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Type        string  `json:"type"`
	Description *string `json:"description,omitempty"`
}

// ParentOptionsResponse 上级候选列表：房间与地点
type ParentOptionsResponse struct {
	Rooms     []ParentOption `json:"rooms"`
	Locations []ParentOption `json:"locations"`
}
