package feedback

import (
	"context"
	"errors"
	"learnhub/biz/infrastructure/config"
	"learnhub/biz/infrastructure/consts"
	"learnhub/biz/infrastructure/repository/mongox"
	"learnhub/biz/infrastructure/util/log"
	"learnhub/biz/infrastructure/util/page"
	"time"

	"github.com/zeromicro/go-zero/core/stores/monc"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	prefixFeedbackCacheKey = "cache:feedback:"
	CollectionName         = "feedback"
)

type MongoMapper struct {
	conn *monc.Model
}

func NewMongoMapper(config *config.Config) *MongoMapper {
	log.Info("NewFeedbackMongoMapper collection: %s", CollectionName)
	conn := monc.MustNewModel(config.Mongo.URL, config.Mongo.DB, CollectionName, config.Cache)
	mongox.MustEnsureUniqueIndex(config, CollectionName, "uniq_user_course", bson.D{
		{Key: consts.UserID, Value: 1},
		{Key: consts.CourseID, Value: 1},
	})
	return &MongoMapper{
		conn: conn,
	}
}

func (m *MongoMapper) Insert(ctx context.Context, f *Feedback) error {
	if f.ID.IsZero() {
		f.ID = primitive.NewObjectID()
		f.CreateTime = time.Now()
		f.UpdateTime = f.CreateTime
	}
	_, err := m.conn.InsertOneNoCache(ctx, f)
	if mongox.IsDuplicateKey(err) {
		return consts.ErrDuplicate
	}
	return err
}

func (m *MongoMapper) Update(ctx context.Context, f *Feedback) error {
	res, err := m.conn.UpdateByID(ctx, prefixFeedbackCacheKey+f.ID.Hex(), f.ID, bson.M{consts.Set: bson.M{
		"rating":          f.Rating,
		"comment":         f.Comment,
		consts.UpdateTime: time.Now(),
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return consts.ErrNotFound
	}
	return nil
}

func (m *MongoMapper) FindOne(ctx context.Context, id string) (*Feedback, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, consts.ErrInvalidObjectId
	}
	var f Feedback
	err = m.conn.FindOne(ctx, prefixFeedbackCacheKey+id, &f, bson.M{consts.ID: oid})
	switch {
	case err == nil:
		return &f, nil
	case errors.Is(err, monc.ErrNotFound):
		return nil, consts.ErrNotFound
	default:
		return nil, err
	}
}

func (m *MongoMapper) FindOneByUserAndCourse(ctx context.Context, userID, courseID string) (*Feedback, error) {
	var f Feedback
	err := m.conn.FindOneNoCache(ctx, &f, bson.M{consts.UserID: userID, consts.CourseID: courseID})
	switch {
	case err == nil:
		return &f, nil
	case errors.Is(err, monc.ErrNotFound):
		return nil, consts.ErrNotFound
	default:
		return nil, err
	}
}

func (m *MongoMapper) FindByCourse(ctx context.Context, courseID string, pageNum, pageSize int64) ([]*Feedback, int64, error) {
	var feedbacks []*Feedback
	filter := bson.M{consts.CourseID: courseID}

	total, err := m.conn.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	skip := page.Skip(pageNum, pageSize)
	err = m.conn.Find(ctx, &feedbacks, filter, &options.FindOptions{
		Skip:  &skip,
		Limit: &pageSize,
		Sort:  bson.M{consts.CreateTime: -1},
	})
	if err != nil {
		return nil, 0, err
	}
	return feedbacks, total, nil
}

func (m *MongoMapper) AverageRating(ctx context.Context, courseID string) (float64, error) {
	var res []struct {
		Avg float64 `bson:"avg"`
	}
	err := m.conn.Aggregate(ctx, &res, []bson.M{
		{"$match": bson.M{consts.CourseID: courseID}},
		{"$group": bson.M{consts.ID: nil, "avg": bson.M{"$avg": "$rating"}}},
	})
	if err != nil {
		return 0, err
	}
	if len(res) == 0 {
		return 0, nil
	}
	return res[0].Avg, nil
}

func (m *MongoMapper) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return consts.ErrInvalidObjectId
	}
	n, err := m.conn.DeleteOne(ctx, prefixFeedbackCacheKey+id, bson.M{consts.ID: oid})
	if err != nil {
		return err
	}
	if n == 0 {
		return consts.ErrNotFound
	}
	return nil
}

func (m *MongoMapper) DeleteByCourse(ctx context.Context, courseID string) (int64, error) {
	var affected []Feedback
	if err := m.conn.Find(ctx, &affected, bson.M{consts.CourseID: courseID}); err != nil {
		return 0, err
	}
	if len(affected) == 0 {
		return 0, nil
	}
	n, err := m.conn.DeleteMany(ctx, bson.M{consts.CourseID: courseID})
	if err != nil {
		return 0, err
	}
	keys := make([]string, 0, len(affected))
	for _, f := range affected {
		keys = append(keys, prefixFeedbackCacheKey+f.ID.Hex())
	}
	return n, m.conn.DelCache(ctx, keys...)
}
