package model

import (
	"fmt"
	"regexp"
)

// ── 上级引用 ──

// ParentKind 上级类型
type ParentKind string

const (
	ParentNone     ParentKind = "none"
	ParentLocation ParentKind = "location"
	ParentRoom     ParentKind = "room"
)

// ParentRef 地点的上级：无、另一个地点、或一个房间
// 零值等同于无上级
type ParentRef struct {
	Kind ParentKind
	ID   int64
}

// NoParent 顶级地点
func NoParent() ParentRef { return ParentRef{Kind: ParentNone} }

// LocationParent 以地点为上级
func LocationParent(id int64) ParentRef { return ParentRef{Kind: ParentLocation, ID: id} }

// RoomParent 以房间为上级
func RoomParent(id int64) ParentRef { return ParentRef{Kind: ParentRoom, ID: id} }

// IsNone 是否为顶级
func (p ParentRef) IsNone() bool {
	return p.Kind == "" || p.Kind == ParentNone
}

// Valid 检查引用形态是否合法
func (p ParentRef) Valid() bool {
	switch p.Kind {
	case "", ParentNone:
		return p.ID == 0
	case ParentLocation, ParentRoom:
		return p.ID > 0
	default:
		return false
	}
}

func (p ParentRef) String() string {
	if p.IsNone() {
		return "none"
	}
	return fmt.Sprintf("%s:%d", p.Kind, p.ID)
}

// ── 地点 ──

var locationNamePattern = regexp.MustCompile(`^[A-Za-z0-9 _-]+$`)

// ValidLocationName 地点名称只允许字母、数字、空格、短横线与下划线
func ValidLocationName(name string) bool {
	return locationNamePattern.MatchString(name)
}

// Location 地点表，对应 locations
// 上级引用拆成两列存储，两列至多一列非空；两列各自唯一，保证每个上级只有一个子地点
type Location struct {
	LocationID       int64   `gorm:"primaryKey;autoIncrement"                              json:"location_id"`
	Name             *string `gorm:"type:varchar(100);uniqueIndex:uk_locations_name"       json:"name,omitempty"`
	Type             string  `gorm:"type:varchar(50);not null"                             json:"type"`
	ParentLocationID *int64  `gorm:"uniqueIndex:uk_locations_parent_location"              json:"parent_location_id,omitempty"`
	ParentRoomID     *int64  `gorm:"uniqueIndex:uk_locations_parent_room"                  json:"parent_room_id,omitempty"`
	BaseModel
}

// TableName 指定表名
func (Location) TableName() string { return "locations" }

// Parent 读取上级引用
func (l *Location) Parent() ParentRef {
	switch {
	case l.ParentLocationID != nil:
		return LocationParent(*l.ParentLocationID)
	case l.ParentRoomID != nil:
		return RoomParent(*l.ParentRoomID)
	default:
		return NoParent()
	}
}

// SetParent 写入上级引用
func (l *Location) SetParent(p ParentRef) {
	l.ParentLocationID = nil
	l.ParentRoomID = nil
	id := p.ID
	switch p.Kind {
	case ParentLocation:
		l.ParentLocationID = &id
	case ParentRoom:
		l.ParentRoomID = &id
	}
}

// DisplayName 名称为空时退回类型
func (l *Location) DisplayName() string {
	if l.Name != nil && *l.Name != "" {
		return *l.Name
	}
	return l.Type
}

// LocationListItem 地点列表行：地点 + 上级地点名称 + 房间信息
type LocationListItem struct {
	LocationID         int64
	Name               *string
	Type               string
	ParentLocationID   *int64
	ParentRoomID       *int64
	ParentLocationName *string
	RoomName           *string
	RoomCapacity       *int
	RoomDescription    *string
}

// Parent 读取上级引用
func (i *LocationListItem) Parent() ParentRef {
	l := Location{ParentLocationID: i.ParentLocationID, ParentRoomID: i.ParentRoomID}
	return l.Parent()
}

// ParentName 上级显示名称（地点名或房间名）
func (i *LocationListItem) ParentName() *string {
	if i.ParentLocationID != nil {
		return i.ParentLocationName
	}
	if i.ParentRoomID != nil {
		return i.RoomName
	}
	return nil
}
