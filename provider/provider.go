package provider

import (
	"learnhub/biz/application/service"
	"learnhub/biz/infrastructure/config"
	"learnhub/biz/infrastructure/email"
	"learnhub/biz/infrastructure/job"
	"learnhub/biz/infrastructure/pubsub"
	"learnhub/biz/infrastructure/repository/mongox"
	"learnhub/biz/infrastructure/storage"
	"learnhub/biz/infrastructure/ws"

	"github.com/google/wire"
)

var provider *Provider

func Init() {
	var err error
	provider, err = NewProvider()
	if err != nil {
		panic(err)
	}
}

// Provider 提供controller依赖的对象
type Provider struct {
	Config          *config.Config
	UserService     service.IUserService
	CategoryService service.ICategoryService
	CourseService   service.ICourseService
	ContentService  service.IContentService
	CommentService  service.ICommentService
	ChatService     service.IChatService
	PurchaseService service.IPurchaseService
	FeedbackService service.IFeedbackService
	StsService      service.IStsService
	Gateway         *ws.Gateway
	Scheduler       *job.Scheduler
	// Subscriber 内存模式下为 nil
	Subscriber *pubsub.RedisSubscriber
}

func Get() *Provider {
	return provider
}

// Set 替换全局 Provider，本地启动与测试使用
func Set(p *Provider) {
	provider = p
}

var ApplicationSet = wire.NewSet(
	service.UserServiceSet,
	service.CategoryServiceSet,
	service.CourseServiceSet,
	service.ContentServiceSet,
	service.CommentServiceSet,
	service.ChatServiceSet,
	service.PurchaseServiceSet,
	service.FeedbackServiceSet,
	service.StsServiceSet,
	wire.Bind(new(ws.Authorizer), new(*service.ChatService)),
	wire.Bind(new(job.Recoverer), new(*service.PurchaseService)),
)

var StoreSet = wire.NewSet(
	NewUserMapper,
	NewCategoryMapper,
	NewCourseMapper,
	NewSectionMapper,
	NewVideoMapper,
	NewAttachmentMapper,
	NewCommentMapper,
	NewReplyMapper,
	NewRoomMapper,
	NewPrivateRoomMapper,
	NewMessageMapper,
	NewPurchaseMapper,
	NewProgressMapper,
	NewFeedbackMapper,
	NewWalletMapper,
	NewCoursePageCache,
	mongox.NewTransactor,
	wire.Bind(new(mongox.ITransactor), new(*mongox.Transactor)),
)

var InfrastructureSet = wire.NewSet(
	config.NewConfig,
	StoreSet,
	ws.NewHub,
	ws.NewGateway,
	NewPublisher,
	NewSubscriber,
	storage.NewStorage,
	email.NewSender,
	job.NewScheduler,
)

var AllProvider = wire.NewSet(
	ApplicationSet,
	InfrastructureSet,
)
