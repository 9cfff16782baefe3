package purchase

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
	CollectionName         = "purchase"
	ProgressCollectionName = "progress"
)

type MongoMapper struct {
	conn *monc.Model
}

func NewMongoMapper(config *config.Config) *MongoMapper {
	log.Info("NewPurchaseMongoMapper collection: %s", CollectionName)
	conn := monc.MustNewModel(config.Mongo.URL, config.Mongo.DB, CollectionName, config.Cache)
	mongox.MustEnsureUniqueIndex(config, CollectionName, "uniq_user_course", bson.D{
		{Key: consts.UserID, Value: 1},
		{Key: consts.CourseID, Value: 1},
	})
	return &MongoMapper{
		conn: conn,
	}
}

func (m *MongoMapper) Insert(ctx context.Context, p *Purchase) error {
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
		p.CreateTime = time.Now()
		p.UpdateTime = p.CreateTime
	}
	_, err := m.conn.InsertOneNoCache(ctx, p)
	if mongox.IsDuplicateKey(err) {
		return consts.ErrDuplicate
	}
	return err
}

func (m *MongoMapper) FindOne(ctx context.Context, id string) (*Purchase, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, consts.ErrInvalidObjectId
	}
	return m.findOne(ctx, bson.M{consts.ID: oid})
}

func (m *MongoMapper) FindOneByUserAndCourse(ctx context.Context, userID, courseID string) (*Purchase, error) {
	return m.findOne(ctx, bson.M{consts.UserID: userID, consts.CourseID: courseID})
}

func (m *MongoMapper) findOne(ctx context.Context, filter bson.M) (*Purchase, error) {
	var p Purchase
	err := m.conn.FindOneNoCache(ctx, &p, filter)
	switch {
	case err == nil:
		return &p, nil
	case errors.Is(err, monc.ErrNotFound):
		return nil, consts.ErrNotFound
	default:
		return nil, err
	}
}

func (m *MongoMapper) FindByUser(ctx context.Context, userID string, pageNum, pageSize int64) ([]*Purchase, int64, error) {
	var purchases []*Purchase
	filter := bson.M{consts.UserID: userID}

	total, err := m.conn.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	skip := page.Skip(pageNum, pageSize)
	err = m.conn.Find(ctx, &purchases, filter, &options.FindOptions{
		Skip:  &skip,
		Limit: &pageSize,
		Sort:  bson.M{consts.CreateTime: -1},
	})
	if err != nil {
		return nil, 0, err
	}
	return purchases, total, nil
}

func (m *MongoMapper) FindUnfinished(ctx context.Context, before time.Time) ([]*Purchase, error) {
	var purchases []*Purchase
	err := m.conn.Find(ctx, &purchases, bson.M{
		consts.Status:     bson.M{consts.NotEqual: consts.PurchaseStatusComplete},
		consts.UpdateTime: bson.M{"$lt": before},
	})
	if err != nil {
		return nil, err
	}
	return purchases, nil
}

func (m *MongoMapper) TransitStatus(ctx context.Context, id, from, to string) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, consts.ErrInvalidObjectId
	}
	res, err := m.conn.UpdateOneNoCache(ctx, bson.M{consts.ID: oid, consts.Status: from}, bson.M{
		consts.Set: bson.M{consts.Status: to, consts.UpdateTime: time.Now()},
	})
	if err != nil {
		return false, err
	}
	return res.ModifiedCount == 1, nil
}

func (m *MongoMapper) DeleteByCourse(ctx context.Context, courseID string) (int64, error) {
	return m.conn.DeleteMany(ctx, bson.M{consts.CourseID: courseID})
}

type ProgressMongoMapper struct {
	conn *monc.Model
}

func NewProgressMongoMapper(config *config.Config) *ProgressMongoMapper {
	log.Info("NewProgressMongoMapper collection: %s", ProgressCollectionName)
	conn := monc.MustNewModel(config.Mongo.URL, config.Mongo.DB, ProgressCollectionName, config.Cache)
	return &ProgressMongoMapper{
		conn: conn,
	}
}

// Start 以 upsert 保证同一 (user, course) 只有一条进度
func (m *ProgressMongoMapper) Start(ctx context.Context, userID, courseID string) (*Progress, error) {
	var p Progress
	now := time.Now()
	err := m.conn.FindOneAndUpdateNoCache(ctx, &p,
		bson.M{consts.UserID: userID, consts.CourseID: courseID},
		bson.M{
			"$setOnInsert": bson.M{
				"completed_videos": []string{},
				"percent":          0,
				consts.CreateTime:  now,
			},
			consts.Set: bson.M{consts.UpdateTime: now},
		},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (m *ProgressMongoMapper) FindOne(ctx context.Context, userID, courseID string) (*Progress, error) {
	var p Progress
	err := m.conn.FindOneNoCache(ctx, &p, bson.M{consts.UserID: userID, consts.CourseID: courseID})
	switch {
	case err == nil:
		return &p, nil
	case errors.Is(err, monc.ErrNotFound):
		return nil, consts.ErrNotFound
	default:
		return nil, err
	}
}

func (m *ProgressMongoMapper) DeleteByCourse(ctx context.Context, courseID string) (int64, error) {
	return m.conn.DeleteMany(ctx, bson.M{consts.CourseID: courseID})
}
