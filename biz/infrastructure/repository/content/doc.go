package content

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// orderedDoc 有 position 字段的内容文档
type orderedDoc[T any] interface {
	*T
	parent() string
	position() *int64
	hexID() string
	stamp()
}

func (s *Section) hexID() string    { return s.ID.Hex() }
func (v *Video) hexID() string      { return v.ID.Hex() }
func (a *Attachment) hexID() string { return a.ID.Hex() }

func (s *Section) stamp() {
	if s.ID.IsZero() {
		s.ID = primitive.NewObjectID()
		s.CreateTime = time.Now()
	}
	s.UpdateTime = time.Now()
}

func (v *Video) stamp() {
	if v.ID.IsZero() {
		v.ID = primitive.NewObjectID()
		v.CreateTime = time.Now()
	}
	v.UpdateTime = time.Now()
}

func (a *Attachment) stamp() {
	if a.ID.IsZero() {
		a.ID = primitive.NewObjectID()
		a.CreateTime = time.Now()
	}
	a.UpdateTime = time.Now()
}
