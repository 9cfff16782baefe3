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

const PrivateCollectionName = "private_chat_room"

type PrivateMongoMapper struct {
	conn *monc.Model
}

func NewPrivateMongoMapper(config *config.Config) *PrivateMongoMapper {
	log.Info("NewPrivateMongoMapper collection: %s", PrivateCollectionName)
	conn := monc.MustNewModel(config.Mongo.URL, config.Mongo.DB, PrivateCollectionName, config.Cache)
	mongox.MustEnsureUniqueIndex(config, PrivateCollectionName, "uniq_course_student_instructor", bson.D{
		{Key: consts.CourseID, Value: 1},
		{Key: "student_id", Value: 1},
		{Key: "instructor_id", Value: 1},
	})
	return &PrivateMongoMapper{
		conn: conn,
	}
}

func (m *PrivateMongoMapper) Insert(ctx context.Context, r *PrivateChatRoom) error {
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

func (m *PrivateMongoMapper) FindOne(ctx context.Context, id string) (*PrivateChatRoom, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, consts.ErrInvalidObjectId
	}
	return m.findOne(ctx, bson.M{consts.ID: oid})
}

func (m *PrivateMongoMapper) FindOneByTriple(ctx context.Context, courseID, studentID, instructorID string) (*PrivateChatRoom, error) {
	return m.findOne(ctx, bson.M{
		consts.CourseID: courseID,
		"student_id":    studentID,
		"instructor_id": instructorID,
	})
}

func (m *PrivateMongoMapper) findOne(ctx context.Context, filter bson.M) (*PrivateChatRoom, error) {
	var r PrivateChatRoom
	err := m.conn.FindOneNoCache(ctx, &r, filter)
	switch {
	case err == nil:
		return &r, nil
	case errors.Is(err, monc.ErrNotFound):
		return nil, consts.ErrNotFound
	default:
		return nil, err
	}
}

func (m *PrivateMongoMapper) FindByCourse(ctx context.Context, courseID string) ([]*PrivateChatRoom, error) {
	var rooms []*PrivateChatRoom
	if err := m.conn.Find(ctx, &rooms, bson.M{consts.CourseID: courseID}); err != nil {
		return nil, err
	}
	return rooms, nil
}

func (m *PrivateMongoMapper) PushMessage(ctx context.Context, id, messageID string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return consts.ErrInvalidObjectId
	}
	res, err := m.conn.UpdateByIDNoCache(ctx, oid, bson.M{
		"$push":    bson.M{"messages": messageID},
		consts.Set: bson.M{consts.UpdateTime: time.Now()},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return consts.ErrNotFound
	}
	return nil
}

func (m *PrivateMongoMapper) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return consts.ErrInvalidObjectId
	}
	_, err = m.conn.DeleteOneNoCache(ctx, bson.M{consts.ID: oid})
	return err
}
