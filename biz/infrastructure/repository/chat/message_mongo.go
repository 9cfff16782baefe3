package chat

import (
	"context"
	"learnhub/biz/infrastructure/config"
	"learnhub/biz/infrastructure/util/log"
	"learnhub/biz/infrastructure/util/page"
	"time"

	"github.com/zeromicro/go-zero/core/stores/monc"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const MessageCollectionName = "message"

type MessageMongoMapper struct {
	conn *monc.Model
}

func NewMessageMongoMapper(config *config.Config) *MessageMongoMapper {
	log.Info("NewMessageMongoMapper collection: %s", MessageCollectionName)
	conn := monc.MustNewModel(config.Mongo.URL, config.Mongo.DB, MessageCollectionName, config.Cache)
	return &MessageMongoMapper{
		conn: conn,
	}
}

func (m *MessageMongoMapper) Insert(ctx context.Context, msg *Message) error {
	if msg.ID.IsZero() {
		msg.ID = primitive.NewObjectID()
		msg.CreateTime = time.Now()
	}
	_, err := m.conn.InsertOneNoCache(ctx, msg)
	return err
}

// FindByRoom 最新的消息在前
func (m *MessageMongoMapper) FindByRoom(ctx context.Context, roomID string, pageNum, pageSize int64) ([]*Message, int64, error) {
	var messages []*Message
	filter := bson.M{"room_id": roomID}

	total, err := m.conn.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	skip := page.Skip(pageNum, pageSize)
	err = m.conn.Find(ctx, &messages, filter, &options.FindOptions{
		Skip:  &skip,
		Limit: &pageSize,
		Sort:  bson.M{"create_time": -1},
	})
	if err != nil {
		return nil, 0, err
	}
	return messages, total, nil
}

func (m *MessageMongoMapper) DeleteByRoom(ctx context.Context, roomID string) (int64, error) {
	return m.conn.DeleteMany(ctx, bson.M{"room_id": roomID})
}
