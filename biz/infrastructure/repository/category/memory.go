package category

import (
	"context"
	"learnhub/biz/infrastructure/consts"
	"learnhub/biz/infrastructure/repository/memstore"
	"time"

	"github.com/samber/lo"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MemoryMapper struct {
	store *memstore.Store[Category]
}

func NewMemoryMapper() *MemoryMapper {
	return &MemoryMapper{store: memstore.New[Category]()}
}

func (m *MemoryMapper) Insert(_ context.Context, c *Category) error {
	if c.ID.IsZero() {
		c.ID = primitive.NewObjectID()
		c.CreateTime = time.Now()
		c.UpdateTime = c.CreateTime
	}
	return m.store.Insert(c.ID.Hex(), c)
}

func (m *MemoryMapper) FindOne(_ context.Context, id string) (*Category, error) {
	if !primitive.IsValidObjectID(id) {
		return nil, consts.ErrInvalidObjectId
	}
	return m.store.Get(id)
}

func (m *MemoryMapper) FindAll(_ context.Context) ([]*Category, error) {
	return m.store.Find(nil, func(a, b *Category) bool { return a.Name < b.Name }), nil
}

func (m *MemoryMapper) PushCourse(_ context.Context, id, courseID string) error {
	return m.store.Mutate(id, func(c *Category) error {
		if !lo.Contains(c.Courses, courseID) {
			c.Courses = append(c.Courses, courseID)
		}
		return nil
	})
}

func (m *MemoryMapper) PullCourse(_ context.Context, id, courseID string) error {
	return m.store.Mutate(id, func(c *Category) error {
		c.Courses = lo.Without(c.Courses, courseID)
		return nil
	})
}
