package service

import (
	"context"
	"sync"
	"testing"

	"learnhub/biz/adaptor"
	"learnhub/biz/application/dto/basic"
	"learnhub/biz/application/dto/learnhub/core"
	"learnhub/biz/infrastructure/cache"
	"learnhub/biz/infrastructure/config"
	"learnhub/biz/infrastructure/consts"
	"learnhub/biz/infrastructure/email"
	"learnhub/biz/infrastructure/pubsub"
	"learnhub/biz/infrastructure/repository/category"
	"learnhub/biz/infrastructure/repository/chat"
	"learnhub/biz/infrastructure/repository/comment"
	"learnhub/biz/infrastructure/repository/content"
	"learnhub/biz/infrastructure/repository/course"
	"learnhub/biz/infrastructure/repository/feedback"
	"learnhub/biz/infrastructure/repository/mongox"
	"learnhub/biz/infrastructure/repository/purchase"
	"learnhub/biz/infrastructure/repository/user"
	"learnhub/biz/infrastructure/repository/wallet"

	"github.com/stretchr/testify/require"
)

const adminExternalID = "admin-ext"

type sinkEvent struct {
	channel string
	event   string
	data    []byte
}

type recordSink struct {
	mu     sync.Mutex
	events []sinkEvent
}

func (s *recordSink) Dispatch(channel, event string, data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, sinkEvent{channel: channel, event: event, data: data})
}

func (s *recordSink) all() []sinkEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]sinkEvent(nil), s.events...)
}

type fakeStorage struct {
	mu      sync.Mutex
	deleted []string
}

func (f *fakeStorage) Delete(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, key)
	return nil
}

func (f *fakeStorage) PresignPut(_ context.Context, key string) (string, error) {
	return "https://upload.test/" + key, nil
}

func (f *fakeStorage) Deleted() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.deleted...)
}

type fakeSender struct {
	mu   sync.Mutex
	sent []*email.Message
}

func (f *fakeSender) Send(_ context.Context, msg *email.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, msg)
	return nil
}

func (f *fakeSender) Sent() []*email.Message {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*email.Message(nil), f.sent...)
}

type testEnv struct {
	cfg *config.Config

	users       *user.MemoryMapper
	courses     *course.MemoryMapper
	categories  *category.MemoryMapper
	sections    *content.SectionMemoryMapper
	videos      *content.VideoMemoryMapper
	attachments *content.AttachmentMemoryMapper
	comments    *comment.MemoryMapper
	replies     *comment.ReplyMemoryMapper
	feedbacks   *feedback.MemoryMapper
	purchases   *purchase.MemoryMapper
	progress    *purchase.ProgressMemoryMapper
	rooms       *chat.RoomMemoryMapper
	privates    *chat.PrivateMemoryMapper
	messages    *chat.MessageMemoryMapper
	wallet      *wallet.MemoryMapper
	pageCache   *cache.LocalCoursePageCache

	sink    *recordSink
	storage *fakeStorage
	sender  *fakeSender

	chat     *ChatService
	content  *ContentService
	comment  *CommentService
	course   *CourseService
	purchase *PurchaseService
	feedback *FeedbackService
	user     *UserService
	category *CategoryService
	sts      *StsService

	admin context.Context
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	cfg := &config.Config{
		State: "test",
		Store: config.StoreMemory,
		Auth:  config.Auth{AdminIds: []string{adminExternalID}},
		PubSub: config.PubSubConfig{
			Prefix:        "learnhub",
			UnreadChannel: "unread-messages",
		},
	}
	e := &testEnv{
		cfg:         cfg,
		users:       user.NewMemoryMapper(),
		courses:     course.NewMemoryMapper(),
		categories:  category.NewMemoryMapper(),
		sections:    content.NewSectionMemoryMapper(),
		videos:      content.NewVideoMemoryMapper(),
		attachments: content.NewAttachmentMemoryMapper(),
		comments:    comment.NewMemoryMapper(),
		replies:     comment.NewReplyMemoryMapper(),
		feedbacks:   feedback.NewMemoryMapper(),
		purchases:   purchase.NewMemoryMapper(),
		progress:    purchase.NewProgressMemoryMapper(),
		rooms:       chat.NewRoomMemoryMapper(),
		privates:    chat.NewPrivateMemoryMapper(),
		messages:    chat.NewMessageMemoryMapper(),
		wallet:      wallet.NewMemoryMapper(),
		pageCache:   cache.NewLocalCoursePageCache(),
		sink:        &recordSink{},
		storage:     &fakeStorage{},
		sender:      &fakeSender{},
	}
	tx := mongox.NewTransactor(cfg)

	e.chat = &ChatService{
		Config:        cfg,
		UserMapper:    e.users,
		CourseMapper:  e.courses,
		RoomMapper:    e.rooms,
		PrivateMapper: e.privates,
		MessageMapper: e.messages,
		Publisher:     pubsub.NewLocalPublisher(e.sink),
		Transactor:    tx,
	}
	e.content = &ContentService{
		UserMapper:       e.users,
		CourseMapper:     e.courses,
		SectionMapper:    e.sections,
		VideoMapper:      e.videos,
		AttachmentMapper: e.attachments,
		Storage:          e.storage,
		PageCache:        e.pageCache,
		Transactor:       tx,
	}
	e.comment = &CommentService{
		UserMapper:    e.users,
		CourseMapper:  e.courses,
		CommentMapper: e.comments,
		ReplyMapper:   e.replies,
		Transactor:    tx,
	}
	e.course = &CourseService{
		Config:         cfg,
		UserMapper:     e.users,
		CourseMapper:   e.courses,
		CategoryMapper: e.categories,
		FeedbackMapper: e.feedbacks,
		PurchaseMapper: e.purchases,
		ProgressMapper: e.progress,
		RoomMapper:     e.rooms,
		ChatService:    e.chat,
		ContentService: e.content,
		CommentService: e.comment,
		Storage:        e.storage,
		PageCache:      e.pageCache,
		Transactor:     tx,
	}
	e.purchase = &PurchaseService{
		UserMapper:     e.users,
		CourseMapper:   e.courses,
		PurchaseMapper: e.purchases,
		ProgressMapper: e.progress,
		WalletMapper:   e.wallet,
		CourseService:  e.course,
		ChatService:    e.chat,
		EmailSender:    e.sender,
		Transactor:     tx,
	}
	e.feedback = &FeedbackService{
		UserMapper:     e.users,
		CourseMapper:   e.courses,
		FeedbackMapper: e.feedbacks,
		PageCache:      e.pageCache,
		Transactor:     tx,
	}
	e.user = &UserService{UserMapper: e.users, WalletMapper: e.wallet}
	e.category = &CategoryService{Config: cfg, UserMapper: e.users, CategoryMapper: e.categories}
	e.sts = &StsService{Config: cfg, Storage: e.storage}

	_, e.admin = e.newUser(t, adminExternalID, consts.RoleStudent)
	return e
}

func userContext(externalID string) context.Context {
	return adaptor.WithUserMeta(context.Background(), &basic.UserMeta{UserId: externalID})
}

// newUser 直接写入用户并返回其请求上下文
func (e *testEnv) newUser(t *testing.T, externalID, role string) (*user.User, context.Context) {
	t.Helper()
	u := &user.User{
		ExternalID: externalID,
		Username:   externalID,
		Email:      externalID + "@learnhub.test",
		Role:       role,
	}
	require.NoError(t, e.users.Insert(context.Background(), u))
	return u, userContext(externalID)
}

func (e *testEnv) reloadUser(t *testing.T, id string) *user.User {
	t.Helper()
	u, err := e.users.FindOne(context.Background(), id)
	require.NoError(t, err)
	return u
}

func (e *testEnv) reloadCourse(t *testing.T, id string) *course.Course {
	t.Helper()
	c, err := e.courses.FindOne(context.Background(), id)
	require.NoError(t, err)
	return c
}

// publishedCourse 创建课程并走完提交、审核、上架
func (e *testEnv) publishedCourse(t *testing.T, ctx context.Context, courseType string, price float64) *core.Course {
	t.Helper()
	resp, err := e.course.CreateCourse(ctx, &core.CreateCourseReq{
		Title:      "Go in Practice",
		Price:      price,
		CourseType: courseType,
		ImageKey:   "images/cover.png",
	})
	require.NoError(t, err)
	id := resp.Course.ID

	_, err = e.course.SubmitCourse(ctx, &core.CourseIDReq{CourseID: id})
	require.NoError(t, err)
	_, err = e.course.ReviewCourse(e.admin, &core.ReviewCourseReq{CourseID: id, Approve: true})
	require.NoError(t, err)
	_, err = e.course.PublishCourse(ctx, &core.PublishCourseReq{CourseID: id, Publish: true})
	require.NoError(t, err)
	return resp.Course
}

// enrolled 准备一门已上架课程和一个完成购买的学生
func (e *testEnv) enrolled(t *testing.T, courseType string) (instructor, student *user.User, instructorCtx, studentCtx context.Context, c *core.Course) {
	t.Helper()
	instructor, instructorCtx = e.newUser(t, "instructor-ext", consts.RoleInstructor)
	student, studentCtx = e.newUser(t, "student-ext", consts.RoleStudent)
	c = e.publishedCourse(t, instructorCtx, courseType, 100)
	_, err := e.purchase.CreatePurchase(studentCtx, &core.CreatePurchaseReq{CourseID: c.ID})
	require.NoError(t, err)
	return
}
