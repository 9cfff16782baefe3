package content

import (
	"context"
	"learnhub/biz/infrastructure/config"
	"learnhub/biz/infrastructure/consts"
	"time"

	"go.mongodb.org/mongo-driver/bson"
)

const (
	SectionCollectionName    = "section"
	VideoCollectionName      = "video"
	AttachmentCollectionName = "attachment"
)

type SectionMongoMapper struct {
	*orderedMongo[Section, *Section]
}

func NewSectionMongoMapper(config *config.Config) *SectionMongoMapper {
	return &SectionMongoMapper{newOrderedMongo[Section](config, SectionCollectionName, consts.CourseID)}
}

func (m *SectionMongoMapper) Update(ctx context.Context, s *Section) error {
	return m.update(ctx, s.ID.Hex(), bson.M{consts.Set: bson.M{
		"title":           s.Title,
		"description":     s.Description,
		"is_published":    s.IsPublished,
		"quiz_id":         s.QuizID,
		consts.UpdateTime: time.Now(),
	}})
}

func (m *SectionMongoMapper) Push(ctx context.Context, id, field, ref string) error {
	return m.update(ctx, id, bson.M{
		consts.AddToSet: bson.M{field: ref},
		consts.Set:      bson.M{consts.UpdateTime: time.Now()},
	})
}

func (m *SectionMongoMapper) Pull(ctx context.Context, id, field, ref string) error {
	return m.update(ctx, id, bson.M{
		consts.Pull: bson.M{field: ref},
		consts.Set:  bson.M{consts.UpdateTime: time.Now()},
	})
}

type VideoMongoMapper struct {
	*orderedMongo[Video, *Video]
}

func NewVideoMongoMapper(config *config.Config) *VideoMongoMapper {
	return &VideoMongoMapper{newOrderedMongo[Video](config, VideoCollectionName, "section_id")}
}

func (m *VideoMongoMapper) Update(ctx context.Context, v *Video) error {
	return m.update(ctx, v.ID.Hex(), bson.M{consts.Set: bson.M{
		"title":           v.Title,
		"description":     v.Description,
		"is_published":    v.IsPublished,
		"is_free":         v.IsFree,
		"asset_key":       v.AssetKey,
		"mux_data":        v.MuxData,
		"file_packs":      v.FilePacks,
		consts.UpdateTime: time.Now(),
	}})
}

type AttachmentMongoMapper struct {
	*orderedMongo[Attachment, *Attachment]
}

func NewAttachmentMongoMapper(config *config.Config) *AttachmentMongoMapper {
	return &AttachmentMongoMapper{newOrderedMongo[Attachment](config, AttachmentCollectionName, "section_id")}
}
