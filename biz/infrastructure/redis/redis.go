package redis

import (
	"learnhub/biz/infrastructure/config"
	"sync"

	goredis "github.com/redis/go-redis/v9"
	"github.com/zeromicro/go-zero/core/stores/redis"
)

// Redis连接管理
// 缓存走 go-zero 客户端，发布订阅走 go-redis 客户端，两者共用同一份配置

var (
	instance *redis.Redis
	once     sync.Once

	pubSubClient *goredis.Client
	pubSubOnce   sync.Once
)

// GetRedis 构造一个Redis客户端
func GetRedis(config *config.Config) *redis.Redis {
	once.Do(func() {
		instance = redis.MustNewRedis(*config.Redis)
	})
	return instance
}

// GetPubSubClient 构造发布订阅用的客户端
func GetPubSubClient(config *config.Config) *goredis.Client {
	pubSubOnce.Do(func() {
		pubSubClient = goredis.NewClient(&goredis.Options{
			Addr:     config.Redis.Host,
			Password: config.Redis.Pass,
		})
	})
	return pubSubClient
}
