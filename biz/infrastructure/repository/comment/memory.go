package comment

import (
	"context"
	"learnhub/biz/infrastructure/consts"
	"learnhub/biz/infrastructure/repository/memstore"
	"time"

	"github.com/samber/lo"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MemoryMapper struct {
	store *memstore.Store[Comment]
}

func NewMemoryMapper() *MemoryMapper {
	return &MemoryMapper{store: memstore.New[Comment]()}
}

func (m *MemoryMapper) Insert(_ context.Context, c *Comment) error {
	if c.ID.IsZero() {
		c.ID = primitive.NewObjectID()
		c.CreateTime = time.Now()
		c.UpdateTime = c.CreateTime
	}
	return m.store.Insert(c.ID.Hex(), c)
}

func (m *MemoryMapper) Update(_ context.Context, c *Comment) error {
	return m.store.Mutate(c.ID.Hex(), func(old *Comment) error {
		old.Title, old.Content = c.Title, c.Content
		old.UpdateTime = time.Now()
		return nil
	})
}

func (m *MemoryMapper) FindOne(_ context.Context, id string) (*Comment, error) {
	if !primitive.IsValidObjectID(id) {
		return nil, consts.ErrInvalidObjectId
	}
	return m.store.Get(id)
}

func (m *MemoryMapper) FindByCourse(_ context.Context, courseID string, page, pageSize int64) ([]*Comment, int64, error) {
	all := m.store.Find(func(c *Comment) bool { return c.CourseID == courseID }, func(a, b *Comment) bool {
		return a.CreateTime.After(b.CreateTime)
	})
	return memstore.Page(all, (page-1)*pageSize, pageSize), int64(len(all)), nil
}

func (m *MemoryMapper) Delete(_ context.Context, id string) error {
	return m.store.Delete(id)
}

func (m *MemoryMapper) DeleteByCourse(_ context.Context, courseID string) (int64, error) {
	return m.store.DeleteWhere(func(c *Comment) bool { return c.CourseID == courseID }), nil
}

func (m *MemoryMapper) PushReply(_ context.Context, id, replyID string) error {
	return m.store.Mutate(id, func(c *Comment) error {
		if !lo.Contains(c.Replies, replyID) {
			c.Replies = append(c.Replies, replyID)
		}
		return nil
	})
}

func (m *MemoryMapper) PullReply(_ context.Context, id, replyID string) error {
	return m.store.Mutate(id, func(c *Comment) error {
		c.Replies = lo.Without(c.Replies, replyID)
		return nil
	})
}

type ReplyMemoryMapper struct {
	store *memstore.Store[Reply]
}

func NewReplyMemoryMapper() *ReplyMemoryMapper {
	return &ReplyMemoryMapper{store: memstore.New[Reply]()}
}

func (m *ReplyMemoryMapper) Insert(_ context.Context, r *Reply) error {
	if r.ID.IsZero() {
		r.ID = primitive.NewObjectID()
		r.CreateTime = time.Now()
		r.UpdateTime = r.CreateTime
	}
	return m.store.Insert(r.ID.Hex(), r)
}

func (m *ReplyMemoryMapper) Update(_ context.Context, r *Reply) error {
	return m.store.Mutate(r.ID.Hex(), func(old *Reply) error {
		old.Title, old.Content = r.Title, r.Content
		old.UpdateTime = time.Now()
		return nil
	})
}

func (m *ReplyMemoryMapper) FindOne(_ context.Context, id string) (*Reply, error) {
	if !primitive.IsValidObjectID(id) {
		return nil, consts.ErrInvalidObjectId
	}
	return m.store.Get(id)
}

func (m *ReplyMemoryMapper) FindByComment(_ context.Context, commentID string) ([]*Reply, error) {
	return m.store.Find(func(r *Reply) bool { return r.CommentID == commentID }, nil), nil
}

func (m *ReplyMemoryMapper) Delete(_ context.Context, id string) error {
	return m.store.Delete(id)
}

func (m *ReplyMemoryMapper) DeleteByComment(_ context.Context, commentID string) (int64, error) {
	return m.store.DeleteWhere(func(r *Reply) bool { return r.CommentID == commentID }), nil
}
