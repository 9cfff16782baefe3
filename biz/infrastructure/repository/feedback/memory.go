package feedback

import (
	"context"
	"learnhub/biz/infrastructure/consts"
	"learnhub/biz/infrastructure/repository/memstore"
	"time"

	"github.com/samber/lo"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MemoryMapper struct {
	store *memstore.Store[Feedback]
}

func NewMemoryMapper() *MemoryMapper {
	return &MemoryMapper{store: memstore.New[Feedback]()}
}

func (m *MemoryMapper) Insert(_ context.Context, f *Feedback) error {
	if f.ID.IsZero() {
		f.ID = primitive.NewObjectID()
		f.CreateTime = time.Now()
		f.UpdateTime = f.CreateTime
	}
	return m.store.InsertUnique(f.ID.Hex(), f, func(d *Feedback) bool {
		return d.UserID == f.UserID && d.CourseID == f.CourseID
	})
}

func (m *MemoryMapper) Update(_ context.Context, f *Feedback) error {
	return m.store.Mutate(f.ID.Hex(), func(old *Feedback) error {
		old.Rating, old.Comment = f.Rating, f.Comment
		old.UpdateTime = time.Now()
		return nil
	})
}

func (m *MemoryMapper) FindOne(_ context.Context, id string) (*Feedback, error) {
	if !primitive.IsValidObjectID(id) {
		return nil, consts.ErrInvalidObjectId
	}
	return m.store.Get(id)
}

func (m *MemoryMapper) FindOneByUserAndCourse(_ context.Context, userID, courseID string) (*Feedback, error) {
	return m.store.FindOne(func(f *Feedback) bool { return f.UserID == userID && f.CourseID == courseID })
}

func (m *MemoryMapper) FindByCourse(_ context.Context, courseID string, page, pageSize int64) ([]*Feedback, int64, error) {
	all := m.store.Find(func(f *Feedback) bool { return f.CourseID == courseID }, func(a, b *Feedback) bool {
		return a.CreateTime.After(b.CreateTime)
	})
	return memstore.Page(all, (page-1)*pageSize, pageSize), int64(len(all)), nil
}

func (m *MemoryMapper) AverageRating(_ context.Context, courseID string) (float64, error) {
	all := m.store.Find(func(f *Feedback) bool { return f.CourseID == courseID }, nil)
	if len(all) == 0 {
		return 0, nil
	}
	sum := lo.SumBy(all, func(f *Feedback) int64 { return f.Rating })
	return float64(sum) / float64(len(all)), nil
}

func (m *MemoryMapper) Delete(_ context.Context, id string) error {
	return m.store.Delete(id)
}

func (m *MemoryMapper) DeleteByCourse(_ context.Context, courseID string) (int64, error) {
	return m.store.DeleteWhere(func(f *Feedback) bool { return f.CourseID == courseID }), nil
}
