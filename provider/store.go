package provider

import (
	"learnhub/biz/infrastructure/cache"
	"learnhub/biz/infrastructure/config"
	"learnhub/biz/infrastructure/pubsub"
	"learnhub/biz/infrastructure/repository/category"
	"learnhub/biz/infrastructure/repository/chat"
	"learnhub/biz/infrastructure/repository/comment"
	"learnhub/biz/infrastructure/repository/content"
	"learnhub/biz/infrastructure/repository/course"
	"learnhub/biz/infrastructure/repository/feedback"
	"learnhub/biz/infrastructure/repository/purchase"
	"learnhub/biz/infrastructure/repository/user"
	"learnhub/biz/infrastructure/repository/wallet"
	"learnhub/biz/infrastructure/util/log"
	"learnhub/biz/infrastructure/ws"
)

// 按 Store 配置选择 mongo 或内存实现

func NewUserMapper(config *config.Config) user.IMongoMapper {
	if config.IsMemory() {
		return user.NewMemoryMapper()
	}
	return user.NewMongoMapper(config)
}

func NewCategoryMapper(config *config.Config) category.IMongoMapper {
	if config.IsMemory() {
		return category.NewMemoryMapper()
	}
	return category.NewMongoMapper(config)
}

func NewCourseMapper(config *config.Config) course.IMongoMapper {
	if config.IsMemory() {
		return course.NewMemoryMapper()
	}
	return course.NewMongoMapper(config)
}

func NewSectionMapper(config *config.Config) content.ISectionMapper {
	if config.IsMemory() {
		return content.NewSectionMemoryMapper()
	}
	return content.NewSectionMongoMapper(config)
}

func NewVideoMapper(config *config.Config) content.IVideoMapper {
	if config.IsMemory() {
		return content.NewVideoMemoryMapper()
	}
	return content.NewVideoMongoMapper(config)
}

func NewAttachmentMapper(config *config.Config) content.IAttachmentMapper {
	if config.IsMemory() {
		return content.NewAttachmentMemoryMapper()
	}
	return content.NewAttachmentMongoMapper(config)
}

func NewCommentMapper(config *config.Config) comment.IMongoMapper {
	if config.IsMemory() {
		return comment.NewMemoryMapper()
	}
	return comment.NewMongoMapper(config)
}

func NewReplyMapper(config *config.Config) comment.IReplyMongoMapper {
	if config.IsMemory() {
		return comment.NewReplyMemoryMapper()
	}
	return comment.NewReplyMongoMapper(config)
}

func NewRoomMapper(config *config.Config) chat.IRoomMongoMapper {
	if config.IsMemory() {
		return chat.NewRoomMemoryMapper()
	}
	return chat.NewRoomMongoMapper(config)
}

func NewPrivateRoomMapper(config *config.Config) chat.IPrivateMongoMapper {
	if config.IsMemory() {
		return chat.NewPrivateMemoryMapper()
	}
	return chat.NewPrivateMongoMapper(config)
}

func NewMessageMapper(config *config.Config) chat.IMessageMongoMapper {
	if config.IsMemory() {
		return chat.NewMessageMemoryMapper()
	}
	return chat.NewMessageMongoMapper(config)
}

func NewPurchaseMapper(config *config.Config) purchase.IMongoMapper {
	if config.IsMemory() {
		return purchase.NewMemoryMapper()
	}
	return purchase.NewMongoMapper(config)
}

func NewProgressMapper(config *config.Config) purchase.IProgressMongoMapper {
	if config.IsMemory() {
		return purchase.NewProgressMemoryMapper()
	}
	return purchase.NewProgressMongoMapper(config)
}

func NewFeedbackMapper(config *config.Config) feedback.IMongoMapper {
	if config.IsMemory() {
		return feedback.NewMemoryMapper()
	}
	return feedback.NewMongoMapper(config)
}

// NewWalletMapper 流水存 MySQL，未配置 DSN 时用内存
func NewWalletMapper(config *config.Config) (wallet.IMapper, error) {
	if config.IsMemory() || config.MySQL.DSN == "" {
		log.Info("NewWalletMapper: no mysql dsn, use memory ledger")
		return wallet.NewMemoryMapper(), nil
	}
	return wallet.NewMySQLMapperFromConfig(config)
}

// NewCoursePageCache 未配置 Redis 时用进程内缓存
func NewCoursePageCache(config *config.Config) cache.ICoursePageCache {
	if config.Redis == nil {
		return cache.NewLocalCoursePageCache()
	}
	return cache.NewCoursePageCache(config)
}

// NewPublisher 未配置 Redis 时直接投递给本进程的 hub
func NewPublisher(config *config.Config, hub *ws.Hub) pubsub.IPublisher {
	if config.Redis == nil {
		return pubsub.NewLocalPublisher(hub)
	}
	return pubsub.NewRedisPublisher(config)
}

func NewSubscriber(config *config.Config, hub *ws.Hub) *pubsub.RedisSubscriber {
	if config.Redis == nil {
		return nil
	}
	return pubsub.NewRedisSubscriber(config, hub)
}
