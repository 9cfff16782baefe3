// Package mongox 补充 monc 不覆盖的 mongo 能力：索引与事务
package mongox

import (
	"context"
	"learnhub/biz/infrastructure/config"
	"learnhub/biz/infrastructure/util/log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MustEnsureUniqueIndex 启动时建立唯一复合索引，失败直接 panic
func MustEnsureUniqueIndex(config *config.Config, collection, name string, keys bson.D) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cli, err := mongo.Connect(ctx, options.Client().ApplyURI(config.Mongo.URL))
	if err != nil {
		panic(err)
	}
	defer func() {
		if err := cli.Disconnect(ctx); err != nil {
			log.Error("disconnect index client failed: %v", err)
		}
	}()

	_, err = cli.Database(config.Mongo.DB).Collection(collection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    keys,
		Options: options.Index().SetUnique(true).SetName(name),
	})
	if err != nil {
		panic(err)
	}
	log.Info("ensure unique index %s on %s", name, collection)
}

// IsDuplicateKey 判断是否命中唯一索引
func IsDuplicateKey(err error) bool {
	return mongo.IsDuplicateKeyError(err)
}
