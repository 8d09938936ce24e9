//go:build integration

package repository_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/w-isiah/shpsk/internal/model"
	"github.com/w-isiah/shpsk/internal/repository"
	"github.com/w-isiah/shpsk/pkg/database"
)

// ═══════════════════════════════════════════════════════════
// Test Setup
// ═══════════════════════════════════════════════════════════

var (
	testDB *gorm.DB
	repo   *repository.Repository
)

func TestMain(m *testing.M) {
	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		dsn = "host=localhost port=5433 user=shpsk password=shpsk_password dbname=shpsk_test sslmode=disable TimeZone=Africa/Kampala"
	}

	var err error
	testDB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "无法连接测试数据库: %v\n", err)
		os.Exit(1)
	}

	sqlDB, err := testDB.DB()
	if err != nil {
		fmt.Fprintf(os.Stderr, "获取 sql.DB 失败: %v\n", err)
		os.Exit(1)
	}
	if err := database.RunMigrations(sqlDB, "postgres", zap.NewNop()); err != nil {
		fmt.Fprintf(os.Stderr, "迁移失败: %v\n", err)
		os.Exit(1)
	}

	repo = repository.NewRepository(testDB)
	os.Exit(m.Run())
}

// resetTables 每个测试前清空地点相关表
func resetTables(t *testing.T) {
	t.Helper()
	if err := testDB.Exec("TRUNCATE fixed_assets, locations, rooms RESTART IDENTITY CASCADE").Error; err != nil {
		t.Fatalf("清空数据失败: %v", err)
	}
}

func createLocation(t *testing.T, name, locType string, parent model.ParentRef) *model.Location {
	t.Helper()
	loc := &model.Location{Type: locType}
	if name != "" {
		loc.Name = &name
	}
	loc.SetParent(parent)
	if err := repo.Location.Create(context.Background(), loc); err != nil {
		t.Fatalf("创建地点 %q 失败: %v", name, err)
	}
	return loc
}

func createRoom(t *testing.T, name string, capacity int) *model.Room {
	t.Helper()
	room := &model.Room{RoomName: name, Capacity: capacity}
	if err := testDB.Create(room).Error; err != nil {
		t.Fatalf("创建房间失败: %v", err)
	}
	return room
}

// ═══════════════════════════════════════════════════════════
// LocationRepository
// ═══════════════════════════════════════════════════════════

func TestLocationRepo_ListJoinsParents(t *testing.T) {
	resetTables(t)
	ctx := context.Background()

	room := createRoom(t, "Lab 1", 30)
	north := createLocation(t, "North Wing", "Building", model.NoParent())
	createLocation(t, "Annex", "Building", model.LocationParent(north.LocationID))
	createLocation(t, "Cabinet", "Storage", model.RoomParent(room.RoomID))

	items, err := repo.Location.List(ctx)
	if err != nil {
		t.Fatalf("List 失败: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("期望3条，实际=%d", len(items))
	}
	if *items[0].Name != "Annex" || *items[0].ParentLocationName != "North Wing" {
		t.Errorf("Annex 联表结果不符: %+v", items[0])
	}
	if *items[1].RoomName != "Lab 1" || *items[1].RoomCapacity != 30 {
		t.Errorf("Cabinet 联表结果不符: %+v", items[1])
	}
	if items[2].ParentName() != nil {
		t.Errorf("顶级地点不应有上级名称: %+v", items[2])
	}
}

func TestLocationRepo_UniqueConstraints(t *testing.T) {
	resetTables(t)
	ctx := context.Background()

	north := createLocation(t, "North Wing", "Building", model.NoParent())
	createLocation(t, "Annex", "Building", model.LocationParent(north.LocationID))

	dupName := "North Wing"
	err := repo.Location.Create(ctx, &model.Location{Name: &dupName, Type: "Block"})
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Errorf("重名应触发唯一索引，实际: %v", err)
	}

	other := "Shed"
	slot := &model.Location{Name: &other, Type: "Store"}
	slot.SetParent(model.LocationParent(north.LocationID))
	err = repo.Location.Create(ctx, slot)
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Errorf("同一上级第二个子地点应触发唯一索引，实际: %v", err)
	}

	// 未命名地点可以有多个
	createLocation(t, "", "Corridor", model.LocationParent(mustByName(t, "Annex").LocationID))
	a := &model.Location{Type: "Corridor"}
	a.SetParent(model.RoomParent(createRoom(t, "Hall", 100).RoomID))
	if err := repo.Location.Create(ctx, a); err != nil {
		t.Errorf("多个未命名地点应允许: %v", err)
	}
}

func TestLocationRepo_GetByParent(t *testing.T) {
	resetTables(t)
	ctx := context.Background()

	north := createLocation(t, "North Wing", "Building", model.NoParent())
	annex := createLocation(t, "Annex", "Building", model.LocationParent(north.LocationID))

	top, err := repo.Location.GetByParent(ctx, model.NoParent())
	if err != nil || top.LocationID != north.LocationID {
		t.Errorf("期望顶级为 North Wing，实际=%v err=%v", top, err)
	}
	child, err := repo.Location.GetByParent(ctx, model.LocationParent(north.LocationID))
	if err != nil || child.LocationID != annex.LocationID {
		t.Errorf("期望子地点为 Annex，实际=%v err=%v", child, err)
	}
	_, err = repo.Location.GetByParent(ctx, model.RoomParent(999))
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("期望 ErrRecordNotFound，实际: %v", err)
	}
}

func TestLocationRepo_UpdateClearsParent(t *testing.T) {
	resetTables(t)
	ctx := context.Background()

	north := createLocation(t, "North Wing", "Building", model.NoParent())
	annex := createLocation(t, "Annex", "Building", model.LocationParent(north.LocationID))

	// 先把 North Wing 挂到房间下，Annex 才能成为顶级
	room := createRoom(t, "Hall", 100)
	north.SetParent(model.RoomParent(room.RoomID))
	if err := repo.Location.Update(ctx, north); err != nil {
		t.Fatalf("更新 North Wing 失败: %v", err)
	}

	annex.SetParent(model.NoParent())
	annex.Touch("admin-001", false)
	if err := repo.Location.Update(ctx, annex); err != nil {
		t.Fatalf("更新 Annex 失败: %v", err)
	}

	got, _ := repo.Location.GetByID(ctx, annex.LocationID)
	if !got.Parent().IsNone() {
		t.Errorf("Annex 应为顶级，实际=%s", got.Parent())
	}
	if got.UpdatedBy == nil || *got.UpdatedBy != "admin-001" {
		t.Errorf("期望记录修改人，实际=%v", got.UpdatedBy)
	}
}

func TestLocationRepo_DeleteReparentsChildren(t *testing.T) {
	resetTables(t)
	ctx := context.Background()

	north := createLocation(t, "North Wing", "Building", model.NoParent())
	annex := createLocation(t, "Annex", "Building", model.LocationParent(north.LocationID))

	reparented, err := repo.Location.Delete(ctx, north.LocationID)
	if err != nil {
		t.Fatalf("Delete 失败: %v", err)
	}
	if reparented != 1 {
		t.Errorf("期望1个子地点被移动，实际=%d", reparented)
	}

	got, err := repo.Location.GetByID(ctx, annex.LocationID)
	if err != nil {
		t.Fatalf("子地点应仍存在: %v", err)
	}
	if !got.Parent().IsNone() {
		t.Errorf("子地点应移到顶级，实际=%s", got.Parent())
	}

	if _, err := repo.Location.Delete(ctx, north.LocationID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("重复删除期望 ErrRecordNotFound，实际: %v", err)
	}
}

func TestLocationRepo_DeleteBlockedByAssets(t *testing.T) {
	resetTables(t)
	ctx := context.Background()

	north := createLocation(t, "North Wing", "Building", model.NoParent())
	asset := &model.FixedAsset{
		IdentificationNumber: fmt.Sprintf("FA-%d", time.Now().UnixNano()),
		AssetDescription:     "Projector",
		LocationID:           north.LocationID,
	}
	if err := testDB.Create(asset).Error; err != nil {
		t.Fatalf("创建固定资产失败: %v", err)
	}

	count, err := repo.FixedAsset.CountByLocation(ctx, north.LocationID)
	if err != nil || count != 1 {
		t.Errorf("期望资产数1，实际=%d err=%v", count, err)
	}

	_, err = repo.Location.Delete(ctx, north.LocationID)
	if !errors.Is(err, gorm.ErrForeignKeyViolated) {
		t.Errorf("有资产引用时删除应触发外键约束，实际: %v", err)
	}
}

func TestLocationRepo_ListOptionsExcludes(t *testing.T) {
	resetTables(t)
	ctx := context.Background()

	north := createLocation(t, "North Wing", "Building", model.NoParent())
	createLocation(t, "Annex", "Building", model.LocationParent(north.LocationID))

	options, err := repo.Location.ListOptions(ctx, north.LocationID)
	if err != nil {
		t.Fatalf("ListOptions 失败: %v", err)
	}
	if len(options) != 1 || *options[0].Name != "Annex" {
		t.Errorf("期望仅 Annex，实际=%+v", options)
	}
}

// ═══════════════════════════════════════════════════════════
// RoomRepository
// ═══════════════════════════════════════════════════════════

func TestRoomRepo(t *testing.T) {
	resetTables(t)
	ctx := context.Background()

	createRoom(t, "Lab 2", 20)
	hall := createRoom(t, "Hall", 200)

	rooms, err := repo.Room.List(ctx)
	if err != nil || len(rooms) != 2 || rooms[0].RoomName != "Hall" {
		t.Errorf("期望按名称排序的2个房间，实际=%+v err=%v", rooms, err)
	}

	got, err := repo.Room.GetByID(ctx, hall.RoomID)
	if err != nil || got.Capacity != 200 {
		t.Errorf("GetByID 结果不符: %+v err=%v", got, err)
	}
}

func mustByName(t *testing.T, name string) *model.Location {
	t.Helper()
	loc, err := repo.Location.GetByName(context.Background(), name)
	if err != nil {
		t.Fatalf("按名称查询 %q 失败: %v", name, err)
	}
	return loc
}
