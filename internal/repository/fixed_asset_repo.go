package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/w-isiah/shpsk/internal/model"
)

// FixedAssetRepository 固定资产只读访问接口
type FixedAssetRepository interface {
	CountByLocation(ctx context.Context, locationID int64) (int64, error)
}

type fixedAssetRepo struct {
	db *gorm.DB
}

// NewFixedAssetRepo 创建 FixedAssetRepository 实例
func NewFixedAssetRepo(db *gorm.DB) FixedAssetRepository {
	return &fixedAssetRepo{db: db}
}

func (r *fixedAssetRepo) CountByLocation(ctx context.Context, locationID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.FixedAsset{}).
		Where("location_id = ?", locationID).
		Count(&count).Error
	return count, err
}
