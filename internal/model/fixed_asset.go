package model

// FixedAsset 固定资产表，对应 fixed_assets
// 本模块只在删除地点前统计引用数量
type FixedAsset struct {
	AssetID              int64  `gorm:"primaryKey;autoIncrement"                 json:"asset_id"`
	IdentificationNumber string `gorm:"type:varchar(64);not null;uniqueIndex"    json:"identification_number"`
	AssetDescription     string `gorm:"type:varchar(255)"                        json:"asset_description"`
	LocationID           int64  `gorm:"not null;index"                           json:"location_id"`
}

// TableName 指定表名
func (FixedAsset) TableName() string { return "fixed_assets" }
