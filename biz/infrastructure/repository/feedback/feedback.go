package feedback

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Feedback 学生对课程的评分，每个学生每门课一条
type Feedback struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID     string             `bson:"user_id" json:"userId"`
	CourseID   string             `bson:"course_id" json:"courseId"`
	Rating     int64              `bson:"rating" json:"rating"`
	Comment    string             `bson:"comment" json:"comment"`
	CreateTime time.Time          `bson:"create_time" json:"createTime"`
	UpdateTime time.Time          `bson:"update_time" json:"updateTime"`
}

type IMongoMapper interface {
	// Insert (user, course) 已存在时返回 consts.ErrDuplicate
	Insert(ctx context.Context, f *Feedback) error
	Update(ctx context.Context, f *Feedback) error
	FindOne(ctx context.Context, id string) (*Feedback, error)
	FindOneByUserAndCourse(ctx context.Context, userID, courseID string) (*Feedback, error)
	FindByCourse(ctx context.Context, courseID string, page, pageSize int64) ([]*Feedback, int64, error)
	// AverageRating 课程平均分，没有评价时为 0
	AverageRating(ctx context.Context, courseID string) (float64, error)
	Delete(ctx context.Context, id string) error
	DeleteByCourse(ctx context.Context, courseID string) (int64, error)
}
