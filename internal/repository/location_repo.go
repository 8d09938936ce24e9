package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/w-isiah/shpsk/internal/model"
)

// LocationRepository 地点数据访问接口
type LocationRepository interface {
	Create(ctx context.Context, loc *model.Location) error
	GetByID(ctx context.Context, id int64) (*model.Location, error)
	GetByName(ctx context.Context, name string) (*model.Location, error)
	// GetByParent 查询占用指定上级的地点；NoParent 时查询顶级地点
	GetByParent(ctx context.Context, parent model.ParentRef) (*model.Location, error)
	GetDetail(ctx context.Context, id int64) (*model.LocationListItem, error)
	List(ctx context.Context) ([]model.LocationListItem, error)
	// ListOptions 列出可作为上级的地点，excludeID>0 时排除该地点
	ListOptions(ctx context.Context, excludeID int64) ([]model.Location, error)
	Update(ctx context.Context, loc *model.Location) error
	// Delete 在同一事务内把子地点移到顶级并删除地点，返回被移动的子地点数
	Delete(ctx context.Context, id int64) (int64, error)
}

type locationRepo struct {
	db *gorm.DB
}

// NewLocationRepo 创建 LocationRepository 实例
func NewLocationRepo(db *gorm.DB) LocationRepository {
	return &locationRepo{db: db}
}

// 列表与详情共用的联表查询：l 为地点，p 为上级地点，r 为上级房间
const locationDetailSelect = `l.location_id, l.name, l.type, l.parent_location_id, l.parent_room_id,
	p.name AS parent_location_name,
	r.room_name AS room_name, r.capacity AS room_capacity, r.description AS room_description`

func (r *locationRepo) detailQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("locations AS l").
		Select(locationDetailSelect).
		Joins("LEFT JOIN locations AS p ON l.parent_location_id = p.location_id").
		Joins("LEFT JOIN rooms AS r ON l.parent_room_id = r.room_id")
}

func (r *locationRepo) Create(ctx context.Context, loc *model.Location) error {
	return r.db.WithContext(ctx).Create(loc).Error
}

func (r *locationRepo) GetByID(ctx context.Context, id int64) (*model.Location, error) {
	var loc model.Location
	err := r.db.WithContext(ctx).
		Where("location_id = ?", id).
		First(&loc).Error
	if err != nil {
		return nil, err
	}
	return &loc, nil
}

func (r *locationRepo) GetByName(ctx context.Context, name string) (*model.Location, error) {
	var loc model.Location
	err := r.db.WithContext(ctx).
		Where("name = ?", name).
		First(&loc).Error
	if err != nil {
		return nil, err
	}
	return &loc, nil
}

func (r *locationRepo) GetByParent(ctx context.Context, parent model.ParentRef) (*model.Location, error) {
	db := r.db.WithContext(ctx)
	switch parent.Kind {
	case model.ParentLocation:
		db = db.Where("parent_location_id = ?", parent.ID)
	case model.ParentRoom:
		db = db.Where("parent_room_id = ?", parent.ID)
	default:
		db = db.Where("parent_location_id IS NULL AND parent_room_id IS NULL")
	}

	var loc model.Location
	if err := db.Order("location_id ASC").First(&loc).Error; err != nil {
		return nil, err
	}
	return &loc, nil
}

func (r *locationRepo) GetDetail(ctx context.Context, id int64) (*model.LocationListItem, error) {
	var items []model.LocationListItem
	err := r.detailQuery(ctx).
		Where("l.location_id = ?", id).
		Limit(1).
		Scan(&items).Error
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &items[0], nil
}

func (r *locationRepo) List(ctx context.Context) ([]model.LocationListItem, error) {
	var items []model.LocationListItem
	err := r.detailQuery(ctx).
		Order("l.name ASC, l.location_id ASC").
		Scan(&items).Error
	return items, err
}

func (r *locationRepo) ListOptions(ctx context.Context, excludeID int64) ([]model.Location, error) {
	var locations []model.Location
	db := r.db.WithContext(ctx)
	if excludeID > 0 {
		db = db.Where("location_id <> ?", excludeID)
	}
	err := db.Order("name ASC, location_id ASC").Find(&locations).Error
	return locations, err
}

func (r *locationRepo) Update(ctx context.Context, loc *model.Location) error {
	return r.db.WithContext(ctx).
		Model(loc).
		Select("name", "type", "parent_location_id", "parent_room_id", "updated_at", "updated_by").
		Updates(loc).Error
}

func (r *locationRepo) Delete(ctx context.Context, id int64) (int64, error) {
	var reparented int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.Location{}).
			Where("parent_location_id = ?", id).
			Update("parent_location_id", nil)
		if res.Error != nil {
			return res.Error
		}
		reparented = res.RowsAffected

		res = tx.Where("location_id = ?", id).Delete(&model.Location{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return reparented, nil
}
