package content

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

type orderedMongo[T any, PT orderedDoc[T]] struct {
	conn        *monc.Model
	parentField string
}

func newOrderedMongo[T any, PT orderedDoc[T]](config *config.Config, collection, parentField string) *orderedMongo[T, PT] {
	log.Info("NewContentMongoMapper collection: %s", collection)
	return &orderedMongo[T, PT]{
		conn:        monc.MustNewModel(config.Mongo.URL, config.Mongo.DB, collection, config.Cache),
		parentField: parentField,
	}
}

func (m *orderedMongo[T, PT]) Insert(ctx context.Context, doc *T) error {
	PT(doc).stamp()
	_, err := m.conn.InsertOneNoCache(ctx, doc)
	return err
}

func (m *orderedMongo[T, PT]) FindOne(ctx context.Context, id string) (*T, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, consts.ErrInvalidObjectId
	}
	doc := new(T)
	err = m.conn.FindOneNoCache(ctx, doc, bson.M{consts.ID: oid})
	switch {
	case err == nil:
		return doc, nil
	case errors.Is(err, monc.ErrNotFound):
		return nil, consts.ErrNotFound
	default:
		return nil, err
	}
}

func (m *orderedMongo[T, PT]) FindByParent(ctx context.Context, parentID string) ([]*T, error) {
	var docs []*T
	err := m.conn.Find(ctx, &docs, bson.M{m.parentField: parentID}, &options.FindOptions{
		Sort: bson.D{{Key: consts.Position, Value: 1}},
	})
	if err != nil {
		return nil, err
	}
	return docs, nil
}

func (m *orderedMongo[T, PT]) Count(ctx context.Context, parentID string) (int64, error) {
	return m.conn.CountDocuments(ctx, bson.M{m.parentField: parentID})
}

func (m *orderedMongo[T, PT]) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return consts.ErrInvalidObjectId
	}
	n, err := m.conn.DeleteOneNoCache(ctx, bson.M{consts.ID: oid})
	if err != nil {
		return err
	}
	if n == 0 {
		return consts.ErrNotFound
	}
	return nil
}

func (m *orderedMongo[T, PT]) DeleteByParent(ctx context.Context, parentID string) (int64, error) {
	return m.conn.DeleteMany(ctx, bson.M{m.parentField: parentID})
}

// Shift 单条 update-many，每个文档上的 $inc 是原子的
func (m *orderedMongo[T, PT]) Shift(ctx context.Context, parentID string, from, to, delta int64) error {
	rng := bson.M{"$gte": from}
	if to > 0 {
		rng["$lte"] = to
	}
	_, err := m.conn.UpdateManyNoCache(ctx,
		bson.M{m.parentField: parentID, consts.Position: rng},
		bson.M{
			consts.Inc: bson.M{consts.Position: delta},
			consts.Set: bson.M{consts.UpdateTime: time.Now()},
		},
	)
	return err
}

func (m *orderedMongo[T, PT]) SetPosition(ctx context.Context, id string, position int64) error {
	return m.update(ctx, id, bson.M{consts.Set: bson.M{consts.Position: position, consts.UpdateTime: time.Now()}})
}

func (m *orderedMongo[T, PT]) update(ctx context.Context, id string, update bson.M) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return consts.ErrInvalidObjectId
	}
	res, err := m.conn.UpdateByIDNoCache(ctx, oid, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return consts.ErrNotFound
	}
	return nil
}
