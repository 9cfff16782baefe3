package content

import (
	"context"
	"learnhub/biz/infrastructure/consts"
	"learnhub/biz/infrastructure/repository/memstore"
	"time"

	"github.com/samber/lo"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type orderedMemory[T any, PT orderedDoc[T]] struct {
	store *memstore.Store[T]
}

func newOrderedMemory[T any, PT orderedDoc[T]]() *orderedMemory[T, PT] {
	return &orderedMemory[T, PT]{store: memstore.New[T]()}
}

func (m *orderedMemory[T, PT]) Insert(_ context.Context, doc *T) error {
	PT(doc).stamp()
	return m.store.Insert(PT(doc).hexID(), doc)
}

func (m *orderedMemory[T, PT]) FindOne(_ context.Context, id string) (*T, error) {
	if !primitive.IsValidObjectID(id) {
		return nil, consts.ErrInvalidObjectId
	}
	return m.store.Get(id)
}

func (m *orderedMemory[T, PT]) FindByParent(_ context.Context, parentID string) ([]*T, error) {
	return m.store.Find(func(d *T) bool { return PT(d).parent() == parentID }, func(a, b *T) bool {
		return *PT(a).position() < *PT(b).position()
	}), nil
}

func (m *orderedMemory[T, PT]) Count(_ context.Context, parentID string) (int64, error) {
	return m.store.Count(func(d *T) bool { return PT(d).parent() == parentID }), nil
}

func (m *orderedMemory[T, PT]) Delete(_ context.Context, id string) error {
	return m.store.Delete(id)
}

func (m *orderedMemory[T, PT]) DeleteByParent(_ context.Context, parentID string) (int64, error) {
	return m.store.DeleteWhere(func(d *T) bool { return PT(d).parent() == parentID }), nil
}

func (m *orderedMemory[T, PT]) Shift(_ context.Context, parentID string, from, to, delta int64) error {
	m.store.MutateWhere(func(d *T) bool {
		p := *PT(d).position()
		return PT(d).parent() == parentID && p >= from && (to <= 0 || p <= to)
	}, func(d *T) {
		*PT(d).position() += delta
	})
	return nil
}

func (m *orderedMemory[T, PT]) SetPosition(_ context.Context, id string, position int64) error {
	return m.store.Mutate(id, func(d *T) error {
		*PT(d).position() = position
		return nil
	})
}

type SectionMemoryMapper struct {
	*orderedMemory[Section, *Section]
}

func NewSectionMemoryMapper() *SectionMemoryMapper {
	return &SectionMemoryMapper{newOrderedMemory[Section]()}
}

func (m *SectionMemoryMapper) Update(_ context.Context, s *Section) error {
	return m.store.Mutate(s.ID.Hex(), func(old *Section) error {
		old.Title, old.Description = s.Title, s.Description
		old.IsPublished, old.QuizID = s.IsPublished, s.QuizID
		old.UpdateTime = time.Now()
		return nil
	})
}

func (m *SectionMemoryMapper) Push(_ context.Context, id, field, ref string) error {
	return m.store.Mutate(id, func(s *Section) error {
		refs := s.Refs(field)
		if refs == nil {
			return consts.ErrInvalidParams
		}
		if !lo.Contains(*refs, ref) {
			*refs = append(*refs, ref)
		}
		return nil
	})
}

func (m *SectionMemoryMapper) Pull(_ context.Context, id, field, ref string) error {
	return m.store.Mutate(id, func(s *Section) error {
		refs := s.Refs(field)
		if refs == nil {
			return consts.ErrInvalidParams
		}
		*refs = lo.Without(*refs, ref)
		return nil
	})
}

type VideoMemoryMapper struct {
	*orderedMemory[Video, *Video]
}

func NewVideoMemoryMapper() *VideoMemoryMapper {
	return &VideoMemoryMapper{newOrderedMemory[Video]()}
}

func (m *VideoMemoryMapper) Update(_ context.Context, v *Video) error {
	return m.store.Mutate(v.ID.Hex(), func(old *Video) error {
		old.Title, old.Description = v.Title, v.Description
		old.IsPublished, old.IsFree = v.IsPublished, v.IsFree
		old.AssetKey, old.MuxData = v.AssetKey, nil
		if v.MuxData != nil {
			md := *v.MuxData
			old.MuxData = &md
		}
		old.FilePacks = append([]string(nil), v.FilePacks...)
		old.UpdateTime = time.Now()
		return nil
	})
}

type AttachmentMemoryMapper struct {
	*orderedMemory[Attachment, *Attachment]
}

func NewAttachmentMemoryMapper() *AttachmentMemoryMapper {
	return &AttachmentMemoryMapper{newOrderedMemory[Attachment]()}
}
