package course

import (
	"context"
	"errors"
	"learnhub/biz/infrastructure/config"
	"learnhub/biz/infrastructure/consts"
	"learnhub/biz/infrastructure/util/log"
	"learnhub/biz/infrastructure/util/page"
	"time"

	"github.com/zeromicro/go-zero/core/stores/monc"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	prefixCourseCacheKey = "cache:course:"
	CollectionName       = "course"
)

type MongoMapper struct {
	conn *monc.Model
}

func NewMongoMapper(config *config.Config) *MongoMapper {
	log.Info("NewCourseMongoMapper collection: %s", CollectionName)
	conn := monc.MustNewModel(config.Mongo.URL, config.Mongo.DB, CollectionName, config.Cache)
	return &MongoMapper{
		conn: conn,
	}
}

func (m *MongoMapper) Insert(ctx context.Context, c *Course) error {
	if c.ID.IsZero() {
		c.ID = primitive.NewObjectID()
		c.CreateTime = time.Now()
		c.UpdateTime = c.CreateTime
	}
	_, err := m.conn.InsertOneNoCache(ctx, c)
	return err
}

func (m *MongoMapper) Update(ctx context.Context, c *Course) error {
	c.UpdateTime = time.Now()
	// 引用数组只通过 Push/Pull 维护，避免覆盖并发写入
	_, err := m.conn.UpdateByID(ctx, prefixCourseCacheKey+c.ID.Hex(), c.ID, bson.M{consts.Set: bson.M{
		"title":         c.Title,
		"subtitle":      c.Subtitle,
		"description":   c.Description,
		"image_key":     c.ImageKey,
		"price":         c.Price,
		"currency":      c.Currency,
		"language":      c.Language,
		"level":         c.Level,
		"status":        c.Status,
		"course_type":   c.CourseType,
		"is_published":  c.IsPublished,
		"faq_video_key": c.FaqVideoKey,
		"category_id":   c.CategoryID,
		"exam_id":       c.ExamID,
		"update_time":   c.UpdateTime,
	}})
	return err
}

func (m *MongoMapper) FindOne(ctx context.Context, id string) (*Course, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, consts.ErrInvalidObjectId
	}
	var c Course
	err = m.conn.FindOne(ctx, prefixCourseCacheKey+id, &c, bson.M{consts.ID: oid})
	switch {
	case err == nil:
		return &c, nil
	case errors.Is(err, monc.ErrNotFound):
		return nil, consts.ErrNotFound
	default:
		return nil, err
	}
}

func (m *MongoMapper) FindByInstructor(ctx context.Context, instructorID string, pageNum, pageSize int64) ([]*Course, int64, error) {
	return m.findPage(ctx, bson.M{"instructor_id": instructorID}, pageNum, pageSize)
}

func (m *MongoMapper) FindPublished(ctx context.Context, categoryID string, pageNum, pageSize int64) ([]*Course, int64, error) {
	filter := bson.M{"is_published": true}
	if categoryID != "" {
		filter["category_id"] = categoryID
	}
	return m.findPage(ctx, filter, pageNum, pageSize)
}

func (m *MongoMapper) findPage(ctx context.Context, filter bson.M, pageNum, pageSize int64) ([]*Course, int64, error) {
	var courses []*Course

	// 获取总数
	total, err := m.conn.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	// 分页查询
	skip := page.Skip(pageNum, pageSize)
	err = m.conn.Find(ctx, &courses, filter, &options.FindOptions{
		Skip:  &skip,
		Limit: &pageSize,
		Sort:  bson.M{consts.CreateTime: -1},
	})
	if err != nil {
		return nil, 0, err
	}
	return courses, total, nil
}

func (m *MongoMapper) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return consts.ErrInvalidObjectId
	}
	_, err = m.conn.DeleteOne(ctx, prefixCourseCacheKey+id, bson.M{consts.ID: oid})
	return err
}

func (m *MongoMapper) Push(ctx context.Context, id, field, ref string) error {
	return m.update(ctx, id, bson.M{consts.AddToSet: bson.M{field: ref}})
}

func (m *MongoMapper) Pull(ctx context.Context, id, field, ref string) error {
	return m.update(ctx, id, bson.M{consts.Pull: bson.M{field: ref}})
}

func (m *MongoMapper) SetChatRoom(ctx context.Context, id, roomID string) error {
	return m.update(ctx, id, bson.M{consts.Set: bson.M{"chat_room_id": roomID}})
}

func (m *MongoMapper) SetStatus(ctx context.Context, id, status string, isPublished bool) error {
	return m.update(ctx, id, bson.M{consts.Set: bson.M{"status": status, "is_published": isPublished}})
}

func (m *MongoMapper) update(ctx context.Context, id string, update bson.M) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return consts.ErrInvalidObjectId
	}
	set, _ := update[consts.Set].(bson.M)
	if set == nil {
		set = bson.M{}
	}
	set[consts.UpdateTime] = time.Now()
	update[consts.Set] = set

	res, err := m.conn.UpdateByID(ctx, prefixCourseCacheKey+id, oid, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return consts.ErrNotFound
	}
	return nil
}
