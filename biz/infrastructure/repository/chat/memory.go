package chat

import (
	"context"
	"learnhub/biz/infrastructure/consts"
	"learnhub/biz/infrastructure/repository/memstore"
	"time"

	"github.com/samber/lo"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type RoomMemoryMapper struct {
	store *memstore.Store[CourseChatRoom]
}

func NewRoomMemoryMapper() *RoomMemoryMapper {
	return &RoomMemoryMapper{store: memstore.New[CourseChatRoom]()}
}

func (m *RoomMemoryMapper) Insert(_ context.Context, r *CourseChatRoom) error {
	if r.ID.IsZero() {
		r.ID = primitive.NewObjectID()
		r.CreateTime = time.Now()
		r.UpdateTime = r.CreateTime
	}
	return m.store.InsertUnique(r.ID.Hex(), r, func(d *CourseChatRoom) bool { return d.CourseID == r.CourseID })
}

func (m *RoomMemoryMapper) FindOne(_ context.Context, id string) (*CourseChatRoom, error) {
	if !primitive.IsValidObjectID(id) {
		return nil, consts.ErrInvalidObjectId
	}
	return m.store.Get(id)
}

func (m *RoomMemoryMapper) FindOneByCourse(_ context.Context, courseID string) (*CourseChatRoom, error) {
	return m.store.FindOne(func(r *CourseChatRoom) bool { return r.CourseID == courseID })
}

func (m *RoomMemoryMapper) PushStudent(_ context.Context, id, userID string) error {
	return m.store.Mutate(id, func(r *CourseChatRoom) error {
		if !lo.Contains(r.Students, userID) {
			r.Students = append(r.Students, userID)
		}
		return nil
	})
}

func (m *RoomMemoryMapper) PushMessage(_ context.Context, id, messageID string) error {
	return m.store.Mutate(id, func(r *CourseChatRoom) error {
		r.Messages = append(r.Messages, messageID)
		return nil
	})
}

func (m *RoomMemoryMapper) Delete(_ context.Context, id string) error {
	return m.store.Delete(id)
}

type PrivateMemoryMapper struct {
	store *memstore.Store[PrivateChatRoom]
}

func NewPrivateMemoryMapper() *PrivateMemoryMapper {
	return &PrivateMemoryMapper{store: memstore.New[PrivateChatRoom]()}
}

func (m *PrivateMemoryMapper) Insert(_ context.Context, r *PrivateChatRoom) error {
	if r.ID.IsZero() {
		r.ID = primitive.NewObjectID()
		r.CreateTime = time.Now()
		r.UpdateTime = r.CreateTime
	}
	return m.store.InsertUnique(r.ID.Hex(), r, func(d *PrivateChatRoom) bool {
		return d.CourseID == r.CourseID && d.StudentID == r.StudentID && d.InstructorID == r.InstructorID
	})
}

func (m *PrivateMemoryMapper) FindOne(_ context.Context, id string) (*PrivateChatRoom, error) {
	if !primitive.IsValidObjectID(id) {
		return nil, consts.ErrInvalidObjectId
	}
	return m.store.Get(id)
}

func (m *PrivateMemoryMapper) FindOneByTriple(_ context.Context, courseID, studentID, instructorID string) (*PrivateChatRoom, error) {
	return m.store.FindOne(func(d *PrivateChatRoom) bool {
		return d.CourseID == courseID && d.StudentID == studentID && d.InstructorID == instructorID
	})
}

func (m *PrivateMemoryMapper) FindByCourse(_ context.Context, courseID string) ([]*PrivateChatRoom, error) {
	return m.store.Find(func(d *PrivateChatRoom) bool { return d.CourseID == courseID }, nil), nil
}

func (m *PrivateMemoryMapper) PushMessage(_ context.Context, id, messageID string) error {
	return m.store.Mutate(id, func(r *PrivateChatRoom) error {
		r.Messages = append(r.Messages, messageID)
		return nil
	})
}

func (m *PrivateMemoryMapper) Delete(_ context.Context, id string) error {
	return m.store.Delete(id)
}

type MessageMemoryMapper struct {
	store *memstore.Store[Message]
}

func NewMessageMemoryMapper() *MessageMemoryMapper {
	return &MessageMemoryMapper{store: memstore.New[Message]()}
}

func (m *MessageMemoryMapper) Insert(_ context.Context, msg *Message) error {
	if msg.ID.IsZero() {
		msg.ID = primitive.NewObjectID()
		msg.CreateTime = time.Now()
	}
	return m.store.Insert(msg.ID.Hex(), msg)
}

func (m *MessageMemoryMapper) FindByRoom(_ context.Context, roomID string, page, pageSize int64) ([]*Message, int64, error) {
	all := m.store.Find(func(msg *Message) bool { return msg.RoomID == roomID }, nil)
	all = lo.Reverse(all)
	return memstore.Page(all, (page-1)*pageSize, pageSize), int64(len(all)), nil
}

func (m *MessageMemoryMapper) DeleteByRoom(_ context.Context, roomID string) (int64, error) {
	return m.store.DeleteWhere(func(msg *Message) bool { return msg.RoomID == roomID }), nil
}
