package content

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	FieldVideos      = "videos"
	FieldAttachments = "attachments"
)

// Section 课程章节，Position 在同一课程内从 1 开始连续
type Section struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	Position    int64              `bson:"position" json:"position"`
	CourseID    string             `bson:"course_id" json:"courseId"`
	IsPublished bool               `bson:"is_published" json:"isPublished"`
	Videos      []string           `bson:"videos" json:"videos"`
	Attachments []string           `bson:"attachments" json:"attachments"`
	QuizID      string             `bson:"quiz_id,omitempty" json:"quizId,omitempty"`
	CreateTime  time.Time          `bson:"create_time" json:"createTime"`
	UpdateTime  time.Time          `bson:"update_time" json:"updateTime"`
}

func (s *Section) parent() string   { return s.CourseID }
func (s *Section) position() *int64 { return &s.Position }

func (s *Section) Refs(field string) *[]string {
	switch field {
	case FieldVideos:
		return &s.Videos
	case FieldAttachments:
		return &s.Attachments
	}
	return nil
}

// Ordered 同级有序内容的公共操作
type Ordered[T any] interface {
	Insert(ctx context.Context, doc *T) error
	FindOne(ctx context.Context, id string) (*T, error)
	// FindByParent 按 position 升序
	FindByParent(ctx context.Context, parentID string) ([]*T, error)
	Count(ctx context.Context, parentID string) (int64, error)
	Delete(ctx context.Context, id string) error
	DeleteByParent(ctx context.Context, parentID string) (int64, error)
	// Shift 将 position 在 [from, to] 内的同级加上 delta，to <= 0 表示不设上界
	Shift(ctx context.Context, parentID string, from, to, delta int64) error
	SetPosition(ctx context.Context, id string, position int64) error
}

type ISectionMapper interface {
	Ordered[Section]
	Update(ctx context.Context, s *Section) error
	Push(ctx context.Context, id, field, ref string) error
	Pull(ctx context.Context, id, field, ref string) error
}
