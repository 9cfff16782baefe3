package content

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Attachment struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name       string             `bson:"name" json:"name"`
	AssetKey   string             `bson:"asset_key" json:"assetKey"`
	Position   int64              `bson:"position" json:"position"`
	SectionID  string             `bson:"section_id" json:"sectionId"`
	CourseID   string             `bson:"course_id" json:"courseId"`
	CreateTime time.Time          `bson:"create_time" json:"createTime"`
	UpdateTime time.Time          `bson:"update_time" json:"updateTime"`
}

func (a *Attachment) parent() string   { return a.SectionID }
func (a *Attachment) position() *int64 { return &a.Position }

type IAttachmentMapper interface {
	Ordered[Attachment]
}
