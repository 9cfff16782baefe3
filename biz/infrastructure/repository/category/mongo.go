package category

import (
	"context"
	"errors"
	"learnhub/biz/infrastructure/config"
	"learnhub/biz/infrastructure/consts"
	"learnhub/biz/infrastructure/util/log"
	"time"

	"github.com/zeromicro/go-zero/core/stores/monc"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const CollectionName = "category"

type MongoMapper struct {
	conn *monc.Model
}

func NewMongoMapper(config *config.Config) *MongoMapper {
	log.Info("NewCategoryMongoMapper collection: %s", CollectionName)
	conn := monc.MustNewModel(config.Mongo.URL, config.Mongo.DB, CollectionName, config.Cache)
	return &MongoMapper{
		conn: conn,
	}
}

func (m *MongoMapper) Insert(ctx context.Context, c *Category) error {
	if c.ID.IsZero() {
		c.ID = primitive.NewObjectID()
		c.CreateTime = time.Now()
		c.UpdateTime = c.CreateTime
	}
	_, err := m.conn.InsertOneNoCache(ctx, c)
	return err
}

func (m *MongoMapper) FindOne(ctx context.Context, id string) (*Category, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, consts.ErrInvalidObjectId
	}
	var c Category
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

func (m *MongoMapper) FindAll(ctx context.Context) ([]*Category, error) {
	var categories []*Category
	err := m.conn.Find(ctx, &categories, bson.M{}, &options.FindOptions{
		Sort: bson.M{"name": 1},
	})
	if err != nil {
		return nil, err
	}
	return categories, nil
}

func (m *MongoMapper) PushCourse(ctx context.Context, id, courseID string) error {
	return m.update(ctx, id, bson.M{consts.AddToSet: bson.M{"courses": courseID}})
}

func (m *MongoMapper) PullCourse(ctx context.Context, id, courseID string) error {
	return m.update(ctx, id, bson.M{consts.Pull: bson.M{"courses": courseID}})
}

func (m *MongoMapper) update(ctx context.Context, id string, update bson.M) error {
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
