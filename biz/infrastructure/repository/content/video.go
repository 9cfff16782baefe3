package content

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MuxData struct {
	AssetID    string `bson:"asset_id" json:"assetId"`
	PlaybackID string `bson:"playback_id" json:"playbackId"`
}

type Video struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	Position    int64              `bson:"position" json:"position"`
	SectionID   string             `bson:"section_id" json:"sectionId"`
	CourseID    string             `bson:"course_id" json:"courseId"`
	IsPublished bool               `bson:"is_published" json:"isPublished"`
	IsFree      bool               `bson:"is_free" json:"isFree"`
	AssetKey    string             `bson:"asset_key" json:"assetKey"`
	MuxData     *MuxData           `bson:"mux_data,omitempty" json:"muxData,omitempty"`
	FilePacks   []string           `bson:"file_packs" json:"filePacks"`
	CreateTime  time.Time          `bson:"create_time" json:"createTime"`
	UpdateTime  time.Time          `bson:"update_time" json:"updateTime"`
}

func (v *Video) parent() string   { return v.SectionID }
func (v *Video) position() *int64 { return &v.Position }

type IVideoMapper interface {
	Ordered[Video]
	Update(ctx context.Context, v *Video) error
}
