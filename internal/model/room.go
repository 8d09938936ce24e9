package model

// Room 房间表，对应 rooms（由宿舍/房间模块维护，本模块只读）
type Room struct {
	RoomID      int64   `gorm:"primaryKey;autoIncrement"    json:"room_id"`
	RoomName    string  `gorm:"type:varchar(100);not null"  json:"room_name"`
	Capacity    int     `gorm:"not null;default:0"          json:"capacity"`
	Description *string `gorm:"type:text"                   json:"description,omitempty"`
}

// TableName 指定表名
func (Room) TableName() string { return "rooms" }
