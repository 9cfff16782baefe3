package purchase

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Purchase 购买记录，Status 只能按 pending -> enrolled -> chat_provisioned -> complete 前进
type Purchase struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID     string             `bson:"user_id" json:"userId"`
	CourseID   string             `bson:"course_id" json:"courseId"`
	Amount     float64            `bson:"amount" json:"amount"`
	Currency   string             `bson:"currency" json:"currency"`
	Status     string             `bson:"status" json:"status"`
	CreateTime time.Time          `bson:"create_time" json:"createTime"`
	UpdateTime time.Time          `bson:"update_time" json:"updateTime"`
}

// Progress 学习进度，报名时创建
type Progress struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID          string             `bson:"user_id" json:"userId"`
	CourseID        string             `bson:"course_id" json:"courseId"`
	CompletedVideos []string           `bson:"completed_videos" json:"completedVideos"`
	Percent         float64            `bson:"percent" json:"percent"`
	CreateTime      time.Time          `bson:"create_time" json:"createTime"`
	UpdateTime      time.Time          `bson:"update_time" json:"updateTime"`
}

type IMongoMapper interface {
	// Insert (user, course) 已存在时返回 consts.ErrDuplicate
	Insert(ctx context.Context, p *Purchase) error
	FindOne(ctx context.Context, id string) (*Purchase, error)
	FindOneByUserAndCourse(ctx context.Context, userID, courseID string) (*Purchase, error)
	FindByUser(ctx context.Context, userID string, page, pageSize int64) ([]*Purchase, int64, error)
	// FindUnfinished 返回更新时间早于 before 且未完成的购买
	FindUnfinished(ctx context.Context, before time.Time) ([]*Purchase, error)
	// TransitStatus 仅当当前状态为 from 时改为 to，返回是否成功
	TransitStatus(ctx context.Context, id, from, to string) (bool, error)
	DeleteByCourse(ctx context.Context, courseID string) (int64, error)
}

type IProgressMongoMapper interface {
	// Start 幂等创建进度记录
	Start(ctx context.Context, userID, courseID string) (*Progress, error)
	FindOne(ctx context.Context, userID, courseID string) (*Progress, error)
	DeleteByCourse(ctx context.Context, courseID string) (int64, error)
}
