package chat

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CourseChatRoom 课程群聊，讲师既是管理员也是成员
type CourseChatRoom struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CourseID        string             `bson:"course_id" json:"courseId"`
	InstructorAdmin string             `bson:"instructor_admin" json:"instructorAdmin"`
	Students        []string           `bson:"students" json:"students"`
	Messages        []string           `bson:"messages" json:"messages"`
	CreateTime      time.Time          `bson:"create_time" json:"createTime"`
	UpdateTime      time.Time          `bson:"update_time" json:"updateTime"`
}

// PrivateChatRoom 学生与讲师的私聊，(course, student, instructor) 唯一
type PrivateChatRoom struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CourseID     string             `bson:"course_id" json:"courseId"`
	StudentID    string             `bson:"student_id" json:"studentId"`
	InstructorID string             `bson:"instructor_id" json:"instructorId"`
	IsActive     bool               `bson:"is_active" json:"isActive"`
	Messages     []string           `bson:"messages" json:"messages"`
	CreateTime   time.Time          `bson:"create_time" json:"createTime"`
	UpdateTime   time.Time          `bson:"update_time" json:"updateTime"`
}

type Message struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	RoomID     string             `bson:"room_id" json:"roomId"`
	RoomType   string             `bson:"room_type" json:"roomType"`
	SenderID   string             `bson:"sender_id" json:"senderId"`
	Content    string             `bson:"content" json:"content"`
	ClientID   string             `bson:"client_id" json:"clientId"`
	CreateTime time.Time          `bson:"create_time" json:"createTime"`
}

type IRoomMongoMapper interface {
	// Insert 每门课只有一个群聊，重复时返回 consts.ErrDuplicate
	Insert(ctx context.Context, r *CourseChatRoom) error
	FindOne(ctx context.Context, id string) (*CourseChatRoom, error)
	FindOneByCourse(ctx context.Context, courseID string) (*CourseChatRoom, error)
	PushStudent(ctx context.Context, id, userID string) error
	PushMessage(ctx context.Context, id, messageID string) error
	Delete(ctx context.Context, id string) error
}

type IPrivateMongoMapper interface {
	// Insert 命中唯一索引时返回 consts.ErrDuplicate
	Insert(ctx context.Context, r *PrivateChatRoom) error
	FindOne(ctx context.Context, id string) (*PrivateChatRoom, error)
	FindOneByTriple(ctx context.Context, courseID, studentID, instructorID string) (*PrivateChatRoom, error)
	FindByCourse(ctx context.Context, courseID string) ([]*PrivateChatRoom, error)
	PushMessage(ctx context.Context, id, messageID string) error
	Delete(ctx context.Context, id string) error
}

type IMessageMongoMapper interface {
	Insert(ctx context.Context, msg *Message) error
	FindByRoom(ctx context.Context, roomID string, page, pageSize int64) ([]*Message, int64, error)
	DeleteByRoom(ctx context.Context, roomID string) (int64, error)
}
