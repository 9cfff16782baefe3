package user

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
	prefixUserCacheKey     = "cache:user:"
	CollectionName         = "user"
	fieldCreditedPurchases = "credited_purchases"
)

type MongoMapper struct {
	conn *monc.Model
}

func NewMongoMapper(config *config.Config) *MongoMapper {
	log.Info("NewUserMongoMapper collection: %s", CollectionName)
	conn := monc.MustNewModel(config.Mongo.URL, config.Mongo.DB, CollectionName, config.Cache)
	mongox.MustEnsureUniqueIndex(config, CollectionName, "uniq_external_id", bson.D{
		{Key: consts.ExternalID, Value: 1},
	})
	return &MongoMapper{
		conn: conn,
	}
}

func (m *MongoMapper) Insert(ctx context.Context, u *User) error {
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
		u.CreateTime = time.Now()
		u.UpdateTime = u.CreateTime
	}
	_, err := m.conn.InsertOneNoCache(ctx, u)
	if mongox.IsDuplicateKey(err) {
		return consts.ErrDuplicate
	}
	return err
}

func (m *MongoMapper) Update(ctx context.Context, u *User) error {
	u.UpdateTime = time.Now()
	_, err := m.conn.UpdateByID(ctx, prefixUserCacheKey+u.ID.Hex(), u.ID, bson.M{consts.Set: bson.M{
		"username":        u.Username,
		"email":           u.Email,
		"picture":         u.Picture,
		"role":            u.Role,
		"interests":       u.Interests,
		consts.UpdateTime: u.UpdateTime,
	}})
	return err
}

func (m *MongoMapper) FindOne(ctx context.Context, id string) (*User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, consts.ErrInvalidObjectId
	}
	var u User
	err = m.conn.FindOne(ctx, prefixUserCacheKey+id, &u, bson.M{consts.ID: oid})
	switch {
	case err == nil:
		return &u, nil
	case errors.Is(err, monc.ErrNotFound):
		return nil, consts.ErrNotFound
	default:
		return nil, err
	}
}

func (m *MongoMapper) FindOneByExternalID(ctx context.Context, externalID string) (*User, error) {
	var u User
	err := m.conn.FindOneNoCache(ctx, &u, bson.M{consts.ExternalID: externalID})
	switch {
	case err == nil:
		return &u, nil
	case errors.Is(err, monc.ErrNotFound):
		return nil, consts.ErrNotFound
	default:
		return nil, err
	}
}

func (m *MongoMapper) Push(ctx context.Context, id, field, ref string) error {
	return m.updateRefs(ctx, id, bson.M{
		consts.AddToSet: bson.M{field: ref},
		consts.Set:      bson.M{consts.UpdateTime: time.Now()},
	})
}

func (m *MongoMapper) Pull(ctx context.Context, id, field, ref string) error {
	return m.updateRefs(ctx, id, bson.M{
		consts.Pull: bson.M{field: ref},
		consts.Set:  bson.M{consts.UpdateTime: time.Now()},
	})
}

func (m *MongoMapper) PullFromAll(ctx context.Context, field, ref string) error {
	var affected []User
	if err := m.conn.Find(ctx, &affected, bson.M{field: ref}); err != nil {
		return err
	}
	if len(affected) == 0 {
		return nil
	}
	_, err := m.conn.UpdateManyNoCache(ctx, bson.M{field: ref}, bson.M{consts.Pull: bson.M{field: ref}})
	if err != nil {
		return err
	}
	keys := make([]string, 0, len(affected))
	for _, u := range affected {
		keys = append(keys, prefixUserCacheKey+u.ID.Hex())
	}
	return m.conn.DelCache(ctx, keys...)
}

func (m *MongoMapper) CreditWallet(ctx context.Context, id, purchaseID string, amount float64) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, consts.ErrInvalidObjectId
	}
	res, err := m.conn.UpdateOne(ctx, prefixUserCacheKey+id, bson.M{
		consts.ID:              oid,
		fieldCreditedPurchases: bson.M{consts.NotEqual: purchaseID},
	}, bson.M{
		consts.Inc:      bson.M{"wallet": amount},
		consts.AddToSet: bson.M{fieldCreditedPurchases: purchaseID},
		consts.Set:      bson.M{consts.UpdateTime: time.Now()},
	})
	if err != nil {
		return false, err
	}
	if res.MatchedCount == 1 {
		return true, nil
	}
	// 未命中：用户不存在或已入账
	if _, err = m.FindOne(ctx, id); err != nil {
		return false, err
	}
	return false, nil
}

func (m *MongoMapper) updateRefs(ctx context.Context, id string, update bson.M) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return consts.ErrInvalidObjectId
	}
	res, err := m.conn.UpdateByID(ctx, prefixUserCacheKey+id, oid, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return consts.ErrNotFound
	}
	return nil
}
