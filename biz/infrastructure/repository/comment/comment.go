package comment

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Comment 课程下的问答
type Comment struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title      string             `bson:"title" json:"title"`
	Content    string             `bson:"content" json:"content"`
	UserID     string             `bson:"user_id" json:"userId"`
	CourseID   string             `bson:"course_id" json:"courseId"`
	Replies    []string           `bson:"replies" json:"replies"`
	CreateTime time.Time          `bson:"create_time" json:"createTime"`
	UpdateTime time.Time          `bson:"update_time" json:"updateTime"`
}

type Reply struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title      string             `bson:"title" json:"title"`
	Content    string             `bson:"content" json:"content"`
	UserID     string             `bson:"user_id" json:"userId"`
	CommentID  string             `bson:"comment_id" json:"commentId"`
	CreateTime time.Time          `bson:"create_time" json:"createTime"`
	UpdateTime time.Time          `bson:"update_time" json:"updateTime"`
}

type IMongoMapper interface {
	Insert(ctx context.Context, c *Comment) error
	Update(ctx context.Context, c *Comment) error
	FindOne(ctx context.Context, id string) (*Comment, error)
	// FindByCourse 按创建时间倒序，pageSize 为 0 时返回全部
	FindByCourse(ctx context.Context, courseID string, page, pageSize int64) ([]*Comment, int64, error)
	Delete(ctx context.Context, id string) error
	DeleteByCourse(ctx context.Context, courseID string) (int64, error)
	PushReply(ctx context.Context, id, replyID string) error
	PullReply(ctx context.Context, id, replyID string) error
}

type IReplyMongoMapper interface {
	Insert(ctx context.Context, r *Reply) error
	Update(ctx context.Context, r *Reply) error
	FindOne(ctx context.Context, id string) (*Reply, error)
	FindByComment(ctx context.Context, commentID string) ([]*Reply, error)
	Delete(ctx context.Context, id string) error
	DeleteByComment(ctx context.Context, commentID string) (int64, error)
}
