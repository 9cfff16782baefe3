package purchase

import (
	"context"
	"learnhub/biz/infrastructure/consts"
	"learnhub/biz/infrastructure/repository/memstore"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MemoryMapper struct {
	store *memstore.Store[Purchase]
}

func NewMemoryMapper() *MemoryMapper {
	return &MemoryMapper{store: memstore.New[Purchase]()}
}

func (m *MemoryMapper) Insert(_ context.Context, p *Purchase) error {
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
		p.CreateTime = time.Now()
		p.UpdateTime = p.CreateTime
	}
	return m.store.InsertUnique(p.ID.Hex(), p, func(d *Purchase) bool {
		return d.UserID == p.UserID && d.CourseID == p.CourseID
	})
}

func (m *MemoryMapper) FindOne(_ context.Context, id string) (*Purchase, error) {
	if !primitive.IsValidObjectID(id) {
		return nil, consts.ErrInvalidObjectId
	}
	return m.store.Get(id)
}

func (m *MemoryMapper) FindOneByUserAndCourse(_ context.Context, userID, courseID string) (*Purchase, error) {
	return m.store.FindOne(func(d *Purchase) bool { return d.UserID == userID && d.CourseID == courseID })
}

func (m *MemoryMapper) FindByUser(_ context.Context, userID string, page, pageSize int64) ([]*Purchase, int64, error) {
	all := m.store.Find(func(d *Purchase) bool { return d.UserID == userID }, func(a, b *Purchase) bool {
		return a.CreateTime.After(b.CreateTime)
	})
	return memstore.Page(all, (page-1)*pageSize, pageSize), int64(len(all)), nil
}

func (m *MemoryMapper) FindUnfinished(_ context.Context, before time.Time) ([]*Purchase, error) {
	return m.store.Find(func(d *Purchase) bool {
		return d.Status != consts.PurchaseStatusComplete && d.UpdateTime.Before(before)
	}, nil), nil
}

func (m *MemoryMapper) TransitStatus(_ context.Context, id, from, to string) (bool, error) {
	ok := false
	err := m.store.Mutate(id, func(d *Purchase) error {
		if d.Status == from {
			d.Status = to
			d.UpdateTime = time.Now()
			ok = true
		}
		return nil
	})
	if err == consts.ErrNotFound {
		return false, nil
	}
	return ok, err
}

func (m *MemoryMapper) DeleteByCourse(_ context.Context, courseID string) (int64, error) {
	return m.store.DeleteWhere(func(d *Purchase) bool { return d.CourseID == courseID }), nil
}

// Touch 修改更新时间，测试中用于模拟卡住的购买
func (m *MemoryMapper) Touch(id string, t time.Time) error {
	return m.store.Mutate(id, func(d *Purchase) error {
		d.UpdateTime = t
		return nil
	})
}

type ProgressMemoryMapper struct {
	store *memstore.Store[Progress]
}

func NewProgressMemoryMapper() *ProgressMemoryMapper {
	return &ProgressMemoryMapper{store: memstore.New[Progress]()}
}

func (m *ProgressMemoryMapper) Start(_ context.Context, userID, courseID string) (*Progress, error) {
	p := &Progress{
		ID:              primitive.NewObjectID(),
		UserID:          userID,
		CourseID:        courseID,
		CompletedVideos: []string{},
		CreateTime:      time.Now(),
	}
	p.UpdateTime = p.CreateTime
	err := m.store.InsertUnique(p.ID.Hex(), p, func(d *Progress) bool {
		return d.UserID == userID && d.CourseID == courseID
	})
	if err != nil && err != consts.ErrDuplicate {
		return nil, err
	}
	return m.FindOne(context.Background(), userID, courseID)
}

func (m *ProgressMemoryMapper) FindOne(_ context.Context, userID, courseID string) (*Progress, error) {
	return m.store.FindOne(func(d *Progress) bool { return d.UserID == userID && d.CourseID == courseID })
}

func (m *ProgressMemoryMapper) DeleteByCourse(_ context.Context, courseID string) (int64, error) {
	return m.store.DeleteWhere(func(d *Progress) bool { return d.CourseID == courseID }), nil
}
