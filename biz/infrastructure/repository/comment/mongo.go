package comment

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

const CollectionName = "comment"

type MongoMapper struct {
	conn *monc.Model
}

func NewMongoMapper(config *config.Config) *MongoMapper {
	log.Info("NewCommentMongoMapper collection: %s", CollectionName)
	conn := monc.MustNewModel(config.Mongo.URL, config.Mongo.DB, CollectionName, config.Cache)
	return &MongoMapper{
		conn: conn,
	}
}

func (m *MongoMapper) Insert(ctx context.Context, c *Comment) error {
	if c.ID.IsZero() {
		c.ID = primitive.NewObjectID()
		c.CreateTime = time.Now()
		c.UpdateTime = c.CreateTime
	}
	_, err := m.conn.InsertOneNoCache(ctx, c)
	return err
}

func (m *MongoMapper) Update(ctx context.Context, c *Comment) error {
	c.UpdateTime = time.Now()
	_, err := m.conn.UpdateByIDNoCache(ctx, c.ID, bson.M{consts.Set: bson.M{
		"title":           c.Title,
		"content":         c.Content,
		consts.UpdateTime: c.UpdateTime,
	}})
	return err
}

func (m *MongoMapper) FindOne(ctx context.Context, id string) (*Comment, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, consts.ErrInvalidObjectId
	}
	var c Comment
	err = m.conn.FindOneNoCache(ctx, &c, bson.M{consts.ID: oid})
	switch {
	case err == nil:
		return &c, nil
	case errors.Is(err, monc.ErrNotFound):
		return nil, consts.ErrNotFound
	default:
		return nil, err
	}
}

func (m *MongoMapper) FindByCourse(ctx context.Context, courseID string, pageNum, pageSize int64) ([]*Comment, int64, error) {
	var comments []*Comment
	filter := bson.M{consts.CourseID: courseID}

	total, err := m.conn.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	skip := page.Skip(pageNum, pageSize)
	err = m.conn.Find(ctx, &comments, filter, &options.FindOptions{
		Skip:  &skip,
		Limit: &pageSize,
		Sort:  bson.M{consts.CreateTime: -1},
	})
	if err != nil {
		return nil, 0, err
	}
	return comments, total, nil
}

func (m *MongoMapper) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return consts.ErrInvalidObjectId
	}
	_, err = m.conn.DeleteOneNoCache(ctx, bson.M{consts.ID: oid})
	return err
}

func (m *MongoMapper) DeleteByCourse(ctx context.Context, courseID string) (int64, error) {
	return m.conn.DeleteMany(ctx, bson.M{consts.CourseID: courseID})
}

func (m *MongoMapper) PushReply(ctx context.Context, id, replyID string) error {
	return m.updateReplies(ctx, id, bson.M{consts.AddToSet: bson.M{"replies": replyID}})
}

func (m *MongoMapper) PullReply(ctx context.Context, id, replyID string) error {
	return m.updateReplies(ctx, id, bson.M{consts.Pull: bson.M{"replies": replyID}})
}

func (m *MongoMapper) updateReplies(ctx context.Context, id string, update bson.M) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return consts.ErrInvalidObjectId
	}
	update[consts.Set] = bson.M{consts.UpdateTime: time.Now()}
	res, err := m.conn.UpdateByIDNoCache(ctx, oid, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return consts.ErrNotFound
	}
	return nil
}
