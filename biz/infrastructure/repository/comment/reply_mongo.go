package comment

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

const ReplyCollectionName = "reply"

type ReplyMongoMapper struct {
	conn *monc.Model
}

func NewReplyMongoMapper(config *config.Config) *ReplyMongoMapper {
	log.Info("NewReplyMongoMapper collection: %s", ReplyCollectionName)
	conn := monc.MustNewModel(config.Mongo.URL, config.Mongo.DB, ReplyCollectionName, config.Cache)
	return &ReplyMongoMapper{
		conn: conn,
	}
}

func (m *ReplyMongoMapper) Insert(ctx context.Context, r *Reply) error {
	if r.ID.IsZero() {
		r.ID = primitive.NewObjectID()
		r.CreateTime = time.Now()
		r.UpdateTime = r.CreateTime
	}
	_, err := m.conn.InsertOneNoCache(ctx, r)
	return err
}

func (m *ReplyMongoMapper) Update(ctx context.Context, r *Reply) error {
	r.UpdateTime = time.Now()
	_, err := m.conn.UpdateByIDNoCache(ctx, r.ID, bson.M{consts.Set: bson.M{
		"title":           r.Title,
		"content":         r.Content,
		consts.UpdateTime: r.UpdateTime,
	}})
	return err
}

func (m *ReplyMongoMapper) FindOne(ctx context.Context, id string) (*Reply, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, consts.ErrInvalidObjectId
	}
	var r Reply
	err = m.conn.FindOneNoCache(ctx, &r, bson.M{consts.ID: oid})
	switch {
	case err == nil:
		return &r, nil
	case errors.Is(err, monc.ErrNotFound):
		return nil, consts.ErrNotFound
	default:
		return nil, err
	}
}

func (m *ReplyMongoMapper) FindByComment(ctx context.Context, commentID string) ([]*Reply, error) {
	var replies []*Reply
	err := m.conn.Find(ctx, &replies, bson.M{"comment_id": commentID}, &options.FindOptions{
		Sort: bson.M{consts.CreateTime: 1},
	})
	if err != nil {
		return nil, err
	}
	return replies, nil
}

func (m *ReplyMongoMapper) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return consts.ErrInvalidObjectId
	}
	_, err = m.conn.DeleteOneNoCache(ctx, bson.M{consts.ID: oid})
	return err
}

func (m *ReplyMongoMapper) DeleteByComment(ctx context.Context, commentID string) (int64, error) {
	return m.conn.DeleteMany(ctx, bson.M{"comment_id": commentID})
}
