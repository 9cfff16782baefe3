package chat

import (
	"context"
	"errors"
	"learnhub/biz/infrastructure/config"
	"learnhub/biz/infrastructure/consts"
	"learnhub/biz/infrastructure/repository/mongox"
	"learnhub/biz/infrastructure/util/log"
	"time"

	"github.com/zeromicro/go-zero/core/stores/monc"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	prefixRoomCacheKey = "cache:chat_room:"
	RoomCollectionName = "course_chat_room"
)

type RoomMongoMapper struct {
	conn *monc.Model
}

func NewRoomMongoMapper(config *config.Config) *RoomMongoMapper {
	log.Info("NewRoomMongoMapper collection: %s", RoomCollectionName)
	conn := monc.MustNewModel(config.Mongo.URL, config.Mongo.DB, RoomCollectionName, config.Cache)
	mongox.MustEnsureUniqueIndex(config, RoomCollectionName, "uniq_course", bson.D{{Key: consts.CourseID, Value: 1}})
	return &RoomMongoMapper{
		conn: conn,
	}
}

func (m *RoomMongoMapper) Insert(ctx context.Context, r *CourseChatRoom) error {
	if r.ID.IsZero() {
		r.ID = primitive.NewObjectID()
		r.CreateTime = time.Now()
		r.UpdateTime = r.CreateTime
	}
	_, err := m.conn.InsertOneNoCache(ctx, r)
	if mongox.IsDuplicateKey(err) {
		return consts.ErrDuplicate
	}
	return err
}

func (m *RoomMongoMapper) FindOne(ctx context.Context, id string) (*CourseChatRoom, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, consts.ErrInvalidObjectId
	}
	var r CourseChatRoom
	err = m.conn.FindOne(ctx, prefixRoomCacheKey+id, &r, bson.M{consts.ID: oid})
	switch {
	case err == nil:
		return &r, nil
	case errors.Is(err, monc.ErrNotFound):
		return nil, consts.ErrNotFound
	default:
		return nil, err
	}
}

func (m *RoomMongoMapper) FindOneByCourse(ctx context.Context, courseID string) (*CourseChatRoom, error) {
	var r CourseChatRoom
	err := m.conn.FindOneNoCache(ctx, &r, bson.M{consts.CourseID: courseID})
	switch {
	case err == nil:
		return &r, nil
	case errors.Is(err, monc.ErrNotFound):
		return nil, consts.ErrNotFound
	default:
		return nil, err
	}
}

func (m *RoomMongoMapper) PushStudent(ctx context.Context, id, userID string) error {
	return m.update(ctx, id, bson.M{consts.AddToSet: bson.M{"students": userID}})
}

func (m *RoomMongoMapper) PushMessage(ctx context.Context, id, messageID string) error {
	return m.update(ctx, id, bson.M{"$push": bson.M{"messages": messageID}})
}

func (m *RoomMongoMapper) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return consts.ErrInvalidObjectId
	}
	_, err = m.conn.DeleteOne(ctx, prefixRoomCacheKey+id, bson.M{consts.ID: oid})
	return err
}

func (m *RoomMongoMapper) update(ctx context.Context, id string, update bson.M) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return consts.ErrInvalidObjectId
	}
	update[consts.Set] = bson.M{consts.UpdateTime: time.Now()}
	res, err := m.conn.UpdateByID(ctx, prefixRoomCacheKey+id, oid, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return consts.ErrNotFound
	}
	return nil
}
