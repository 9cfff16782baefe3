package course

import (
	"context"
	"learnhub/biz/infrastructure/consts"
	"learnhub/biz/infrastructure/repository/memstore"
	"time"

	"github.com/samber/lo"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MemoryMapper struct {
	store *memstore.Store[Course]
}

func NewMemoryMapper() *MemoryMapper {
	return &MemoryMapper{store: memstore.New[Course]()}
}

func (m *MemoryMapper) Insert(_ context.Context, c *Course) error {
	if c.ID.IsZero() {
		c.ID = primitive.NewObjectID()
		c.CreateTime = time.Now()
		c.UpdateTime = c.CreateTime
	}
	return m.store.Insert(c.ID.Hex(), c)
}

func (m *MemoryMapper) Update(_ context.Context, c *Course) error {
	c.UpdateTime = time.Now()
	return m.store.Mutate(c.ID.Hex(), func(old *Course) error {
		// 保留引用数组，与 mongo 实现一致
		next := *c
		next.Sections, next.Students, next.Purchases = old.Sections, old.Students, old.Purchases
		next.Comments, next.Feedbacks, next.ChatRoomID = old.Comments, old.Feedbacks, old.ChatRoomID
		next.CreateTime = old.CreateTime
		*old = next
		return nil
	})
}

func (m *MemoryMapper) FindOne(_ context.Context, id string) (*Course, error) {
	if !primitive.IsValidObjectID(id) {
		return nil, consts.ErrInvalidObjectId
	}
	return m.store.Get(id)
}

func (m *MemoryMapper) FindByInstructor(_ context.Context, instructorID string, page, pageSize int64) ([]*Course, int64, error) {
	return m.findPage(func(c *Course) bool { return c.InstructorID == instructorID }, page, pageSize)
}

func (m *MemoryMapper) FindPublished(_ context.Context, categoryID string, page, pageSize int64) ([]*Course, int64, error) {
	return m.findPage(func(c *Course) bool {
		return c.IsPublished && (categoryID == "" || c.CategoryID == categoryID)
	}, page, pageSize)
}

func (m *MemoryMapper) findPage(match func(*Course) bool, page, pageSize int64) ([]*Course, int64, error) {
	all := m.store.Find(match, func(a, b *Course) bool { return a.CreateTime.After(b.CreateTime) })
	return memstore.Page(all, (page-1)*pageSize, pageSize), int64(len(all)), nil
}

func (m *MemoryMapper) Delete(_ context.Context, id string) error {
	return m.store.Delete(id)
}

func (m *MemoryMapper) Push(_ context.Context, id, field, ref string) error {
	return m.store.Mutate(id, func(c *Course) error {
		refs := c.Refs(field)
		if refs == nil {
			return consts.ErrInvalidParams
		}
		if !lo.Contains(*refs, ref) {
			*refs = append(*refs, ref)
		}
		c.UpdateTime = time.Now()
		return nil
	})
}

func (m *MemoryMapper) Pull(_ context.Context, id, field, ref string) error {
	return m.store.Mutate(id, func(c *Course) error {
		refs := c.Refs(field)
		if refs == nil {
			return consts.ErrInvalidParams
		}
		*refs = lo.Without(*refs, ref)
		c.UpdateTime = time.Now()
		return nil
	})
}

func (m *MemoryMapper) SetChatRoom(_ context.Context, id, roomID string) error {
	return m.store.Mutate(id, func(c *Course) error {
		c.ChatRoomID = roomID
		return nil
	})
}

func (m *MemoryMapper) SetStatus(_ context.Context, id, status string, isPublished bool) error {
	return m.store.Mutate(id, func(c *Course) error {
		c.Status, c.IsPublished = status, isPublished
		c.UpdateTime = time.Now()
		return nil
	})
}
