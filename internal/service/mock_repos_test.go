package service

import (
	"context"
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/w-isiah/shpsk/internal/model"
)

// ── Mock LocationRepository ──

type mockLocationRepo struct {
	locations map[int64]*model.Location
	rooms     *mockRoomRepo
	nextID    int64

	listErr   error
	createErr error
	updateErr error
	deleteErr error
}

func newMockLocationRepo(rooms *mockRoomRepo) *mockLocationRepo {
	return &mockLocationRepo{
		locations: make(map[int64]*model.Location),
		rooms:     rooms,
		nextID:    1,
	}
}

// seed 直接写入一条地点，绕过业务校验
func (m *mockLocationRepo) seed(name, locType string, parent model.ParentRef) *model.Location {
	loc := &model.Location{Type: locType}
	if name != "" {
		n := name
		loc.Name = &n
	}
	loc.SetParent(parent)
	_ = m.Create(context.Background(), loc)
	return loc
}

func (m *mockLocationRepo) sortedIDs() []int64 {
	ids := make([]int64, 0, len(m.locations))
	for id := range m.locations {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func (m *mockLocationRepo) Create(_ context.Context, loc *model.Location) error {
	if m.createErr != nil {
		return m.createErr
	}
	loc.LocationID = m.nextID
	m.nextID++
	cp := *loc
	m.locations[cp.LocationID] = &cp
	return nil
}

func (m *mockLocationRepo) GetByID(_ context.Context, id int64) (*model.Location, error) {
	if l, ok := m.locations[id]; ok {
		cp := *l
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockLocationRepo) GetByName(_ context.Context, name string) (*model.Location, error) {
	for _, id := range m.sortedIDs() {
		l := m.locations[id]
		if l.Name != nil && *l.Name == name {
			cp := *l
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockLocationRepo) GetByParent(_ context.Context, parent model.ParentRef) (*model.Location, error) {
	for _, id := range m.sortedIDs() {
		l := m.locations[id]
		p := l.Parent()
		if p == parent || (p.IsNone() && parent.IsNone()) {
			cp := *l
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockLocationRepo) item(l *model.Location) model.LocationListItem {
	item := model.LocationListItem{
		LocationID:       l.LocationID,
		Name:             l.Name,
		Type:             l.Type,
		ParentLocationID: l.ParentLocationID,
		ParentRoomID:     l.ParentRoomID,
	}
	if l.ParentLocationID != nil {
		if p, ok := m.locations[*l.ParentLocationID]; ok {
			item.ParentLocationName = p.Name
		}
	}
	if l.ParentRoomID != nil {
		if r, ok := m.rooms.rooms[*l.ParentRoomID]; ok {
			name, capacity := r.RoomName, r.Capacity
			item.RoomName = &name
			item.RoomCapacity = &capacity
			item.RoomDescription = r.Description
		}
	}
	return item
}

func (m *mockLocationRepo) GetDetail(_ context.Context, id int64) (*model.LocationListItem, error) {
	l, ok := m.locations[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	item := m.item(l)
	return &item, nil
}

// List 与 PostgreSQL 一致：按名称升序，NULL 名称排在最后
func (m *mockLocationRepo) List(_ context.Context) ([]model.LocationListItem, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	items := make([]model.LocationListItem, 0, len(m.locations))
	for _, id := range m.sortedIDs() {
		items = append(items, m.item(m.locations[id]))
	}
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i].Name, items[j].Name
		switch {
		case a == nil && b == nil:
			return false
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return *a < *b
		}
	})
	return items, nil
}

func (m *mockLocationRepo) ListOptions(_ context.Context, excludeID int64) ([]model.Location, error) {
	var result []model.Location
	for _, id := range m.sortedIDs() {
		if id == excludeID {
			continue
		}
		result = append(result, *m.locations[id])
	}
	return result, nil
}

func (m *mockLocationRepo) Update(_ context.Context, loc *model.Location) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	if _, ok := m.locations[loc.LocationID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *loc
	m.locations[loc.LocationID] = &cp
	return nil
}

func (m *mockLocationRepo) Delete(_ context.Context, id int64) (int64, error) {
	if m.deleteErr != nil {
		return 0, m.deleteErr
	}
	if _, ok := m.locations[id]; !ok {
		return 0, gorm.ErrRecordNotFound
	}
	var reparented int64
	for _, l := range m.locations {
		if l.ParentLocationID != nil && *l.ParentLocationID == id {
			l.ParentLocationID = nil
			reparented++
		}
	}
	delete(m.locations, id)
	return reparented, nil
}

// ── Mock RoomRepository ──

type mockRoomRepo struct {
	rooms   map[int64]*model.Room
	listErr error
}

func newMockRoomRepo() *mockRoomRepo {
	return &mockRoomRepo{rooms: make(map[int64]*model.Room)}
}

func (m *mockRoomRepo) add(id int64, name string, capacity int, desc string) {
	room := &model.Room{RoomID: id, RoomName: name, Capacity: capacity}
	if desc != "" {
		d := desc
		room.Description = &d
	}
	m.rooms[id] = room
}

func (m *mockRoomRepo) GetByID(_ context.Context, id int64) (*model.Room, error) {
	if r, ok := m.rooms[id]; ok {
		cp := *r
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockRoomRepo) List(_ context.Context) ([]model.Room, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var result []model.Room
	for _, r := range m.rooms {
		result = append(result, *r)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].RoomName < result[j].RoomName })
	return result, nil
}

// ── Mock FixedAssetRepository ──

type mockFixedAssetRepo struct {
	counts map[int64]int64
	err    error
}

func newMockFixedAssetRepo() *mockFixedAssetRepo {
	return &mockFixedAssetRepo{counts: make(map[int64]int64)}
}

func (m *mockFixedAssetRepo) CountByLocation(_ context.Context, locationID int64) (int64, error) {
	if m.err != nil {
		return 0, m.err
	}
	return m.counts[locationID], nil
}

// ── Mock TokenBlacklist ──

type mockBlacklist struct {
	entries map[string]time.Duration
	err     error
}

func (m *mockBlacklist) BlacklistToken(_ context.Context, jti string, ttl time.Duration) error {
	if m.err != nil {
		return m.err
	}
	if m.entries == nil {
		m.entries = make(map[string]time.Duration)
	}
	m.entries[jti] = ttl
	return nil
}
