package course

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// 引用字段
const (
	FieldSections  = "sections"
	FieldStudents  = "students"
	FieldPurchases = "purchases"
	FieldComments  = "comments"
	FieldFeedbacks = "feedbacks"
)

type Course struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Subtitle    string             `bson:"subtitle" json:"subtitle"`
	Description string             `bson:"description" json:"description"`
	ImageKey    string             `bson:"image_key" json:"imageKey"`
	Price       float64            `bson:"price" json:"price"`
	Currency    string             `bson:"currency" json:"currency"`
	Language    string             `bson:"language" json:"language"`
	Level       string             `bson:"level" json:"level"`
	Status      string             `bson:"status" json:"status"`
	CourseType  string             `bson:"course_type" json:"courseType"`
	IsPublished bool               `bson:"is_published" json:"isPublished"`
	// FaqVideoKey FAQ 类型课程的介绍视频
	FaqVideoKey string `bson:"faq_video_key" json:"faqVideoKey"`

	CategoryID   string   `bson:"category_id" json:"categoryId"`
	InstructorID string   `bson:"instructor_id" json:"instructorId"`
	Sections     []string `bson:"sections" json:"sections"`
	Students     []string `bson:"students" json:"students"`
	Purchases    []string `bson:"purchases" json:"purchases"`
	Comments     []string `bson:"comments" json:"comments"`
	Feedbacks    []string `bson:"feedbacks" json:"feedbacks"`
	ExamID       string   `bson:"exam_id,omitempty" json:"examId,omitempty"`
	ChatRoomID   string   `bson:"chat_room_id,omitempty" json:"chatRoomId,omitempty"`

	CreateTime time.Time `bson:"create_time" json:"createTime"`
	UpdateTime time.Time `bson:"update_time" json:"updateTime"`
}

func (c *Course) Refs(field string) *[]string {
	switch field {
	case FieldSections:
		return &c.Sections
	case FieldStudents:
		return &c.Students
	case FieldPurchases:
		return &c.Purchases
	case FieldComments:
		return &c.Comments
	case FieldFeedbacks:
		return &c.Feedbacks
	}
	return nil
}

type IMongoMapper interface {
	Insert(ctx context.Context, c *Course) error
	// Update 整体覆盖，不包含引用数组
	Update(ctx context.Context, c *Course) error
	FindOne(ctx context.Context, id string) (*Course, error)
	FindByInstructor(ctx context.Context, instructorID string, page, pageSize int64) ([]*Course, int64, error)
	FindPublished(ctx context.Context, categoryID string, page, pageSize int64) ([]*Course, int64, error)
	Delete(ctx context.Context, id string) error
	Push(ctx context.Context, id, field, ref string) error
	Pull(ctx context.Context, id, field, ref string) error
	SetChatRoom(ctx context.Context, id, roomID string) error
	SetStatus(ctx context.Context, id, status string, isPublished bool) error
}
