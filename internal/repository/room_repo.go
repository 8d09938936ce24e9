package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/w-isiah/shpsk/internal/model"
)

// RoomRepository 房间只读访问接口（房间由宿舍/房间模块维护）
type RoomRepository interface {
	GetByID(ctx context.Context, id int64) (*model.Room, error)
	List(ctx context.Context) ([]model.Room, error)
}

type roomRepo struct {
	db *gorm.DB
}

// NewRoomRepo 创建 RoomRepository 实例
func NewRoomRepo(db *gorm.DB) RoomRepository {
	return &roomRepo{db: db}
}

func (r *roomRepo) GetByID(ctx context.Context, id int64) (*model.Room, error) {
	var room model.Room
	err := r.db.WithContext(ctx).
		Where("room_id = ?", id).
		First(&room).Error
	if err != nil {
		return nil, err
	}
	return &room, nil
}

func (r *roomRepo) List(ctx context.Context) ([]model.Room, error) {
	var rooms []model.Room
	err := r.db.WithContext(ctx).
		Order("room_name ASC").
		Find(&rooms).Error
	return rooms, err
}
