package category

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Category struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name       string             `bson:"name" json:"name"`
	Courses    []string           `bson:"courses" json:"courses"`
	CreateTime time.Time          `bson:"create_time" json:"createTime"`
	UpdateTime time.Time          `bson:"update_time" json:"updateTime"`
}

type IMongoMapper interface {
	Insert(ctx context.Context, c *Category) error
	FindOne(ctx context.Context, id string) (*Category, error)
	FindAll(ctx context.Context) ([]*Category, error)
	PushCourse(ctx context.Context, id, courseID string) error
	PullCourse(ctx context.Context, id, courseID string) error
}
