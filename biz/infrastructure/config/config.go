package config

import (
	_ "embed"
	"learnhub/biz/infrastructure/util/log"
	"os"

	"github.com/zeromicro/go-zero/core/conf"
	"github.com/zeromicro/go-zero/core/service"
	"github.com/zeromicro/go-zero/core/stores/cache"
	"github.com/zeromicro/go-zero/core/stores/redis"
)

// //go:embed config.local.yaml
var embeddedConfig []byte

var config *Config

const (
	StoreMongo  = "mongo"
	StoreMemory = "memory"
)

type Auth struct {
	PublicKey string
	// AdminIds 外部身份ID，拥有审核权限
	AdminIds []string `json:",optional"`
}

type Config struct {
	service.ServiceConf
	ListenOn   string
	WSListenOn string `json:",default=0.0.0.0:8081"`
	State      string
	Store      string `json:",default=mongo,options=mongo|memory"`
	Auth       Auth
	Mongo      struct {
		URL         string `json:",optional"`
		DB          string `json:",optional"`
		Transaction bool   `json:",default=false"`
	} `json:",optional"`
	MySQL struct {
		DSN string `json:",optional"`
	} `json:",optional"`
	Cache   cache.CacheConf  `json:",optional"`
	Redis   *redis.RedisConf `json:",optional"`
	PubSub  PubSubConfig     `json:",optional"`
	Email   EmailConfig      `json:",optional"`
	Storage StorageConfig    `json:",optional"`
	Job     JobConfig        `json:",optional"`
	Log     LogConfig        `json:",optional"`
}

type PubSubConfig struct {
	Prefix string `json:",default=learnhub"`
	// UnreadChannel 未读消息频道前缀，每个用户订阅自己的 UnreadChannel:<userId>
	UnreadChannel string `json:",default=unread-messages"`
}

func (c PubSubConfig) UnreadChannelOf(userID string) string {
	return c.UnreadChannel + ":" + userID
}

type EmailConfig struct {
	SendGridKey string `json:",optional"`
	AppName     string `json:",default=LearnHub"`
	From        string `json:",optional"`
}

type StorageConfig struct {
	Region   string `json:",optional"`
	Bucket   string `json:",optional"`
	Endpoint string `json:",optional"`
}

const defaultRecoverSpec = "@every 1m"

type JobConfig struct {
	// RecoverSpec cron 表达式，为空时使用 defaultRecoverSpec
	RecoverSpec string `json:",optional"`
	// RecoverAfter 秒，超过该时长仍未完成的购买会被恢复
	RecoverAfter int64 `json:",default=60"`
}

func (c JobConfig) Spec() string {
	if c.RecoverSpec == "" {
		return defaultRecoverSpec
	}
	return c.RecoverSpec
}

type LogConfig struct {
	NoLogPaths []string `json:",optional"`
}

func NewConfig() (*Config, error) {
	c := new(Config)

	if len(embeddedConfig) == 0 {
		path := os.Getenv("CONFIG_PATH")
		log.Info("NewConfig load config from path: %s", path)
		err := conf.Load(path, c)
		if err != nil {
			return nil, err
		}
	} else {
		err := conf.LoadFromYamlBytes(embeddedConfig, c)
		if err != nil {
			return nil, err
		}
	}

	err := c.SetUp()
	if err != nil {
		return nil, err
	}
	config = c
	return c, nil
}

func GetConfig() *Config {
	return config
}

// SetConfig 替换全局配置，用于本地启动与测试
func SetConfig(c *Config) {
	config = c
}

func (c *Config) IsMemory() bool {
	return c.Store == StoreMemory
}
