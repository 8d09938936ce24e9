package model

import "time"

// BaseModel 通用审计字段（所有业务模型嵌入）
// 操作者 ID 来自认证模块，格式不固定，统一按字符串保存
type BaseModel struct {
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	CreatedBy *string   `gorm:"type:varchar(64)"         json:"created_by,omitempty"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
	UpdatedBy *string   `gorm:"type:varchar(64)"         json:"updated_by,omitempty"`
}

// Touch 记录操作者；创建时同时写入 CreatedBy
func (m *BaseModel) Touch(actorID string, creating bool) {
	if actorID == "" {
		return
	}
	id := actorID
	if creating {
		m.CreatedBy = &id
	}
	m.UpdatedBy = &id
}
