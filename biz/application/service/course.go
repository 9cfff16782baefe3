package service

import (
	"context"
	"errors"
	"learnhub/biz/application/dto/learnhub/core"
	"learnhub/biz/infrastructure/cache"
	"learnhub/biz/infrastructure/config"
	"learnhub/biz/infrastructure/consts"
	"learnhub/biz/infrastructure/repository/category"
	"learnhub/biz/infrastructure/repository/chat"
	"learnhub/biz/infrastructure/repository/course"
	"learnhub/biz/infrastructure/repository/feedback"
	"learnhub/biz/infrastructure/repository/mongox"
	"learnhub/biz/infrastructure/repository/purchase"
	"learnhub/biz/infrastructure/repository/user"
	"learnhub/biz/infrastructure/storage"
	"learnhub/biz/infrastructure/util/log"

	"github.com/google/wire"
	"github.com/samber/lo"
)

type ICourseService interface {
	CreateCourse(ctx context.Context, req *core.CreateCourseReq) (*core.CreateCourseResp, error)
	UpdateCourse(ctx context.Context, req *core.UpdateCourseReq) (*core.UpdateCourseResp, error)
	DeleteCourse(ctx context.Context, req *core.CourseIDReq) error
	SubmitCourse(ctx context.Context, req *core.CourseIDReq) (*core.CourseStatusResp, error)
	ReviewCourse(ctx context.Context, req *core.ReviewCourseReq) (*core.CourseStatusResp, error)
	PublishCourse(ctx context.Context, req *core.PublishCourseReq) (*core.CourseStatusResp, error)
	GetCourse(ctx context.Context, req *core.CourseIDReq) (*core.GetCourseResp, error)
	ListInstructorCourses(ctx context.Context, req *core.ListInstructorCoursesReq) (*core.ListCoursesResp, error)
	ListPublishedCourses(ctx context.Context, req *core.ListPublishedCoursesReq) (*core.ListCoursesResp, error)
	// PushStudentToCourse 报名，普通课程同时加入群聊，群聊不存在时补建
	PushStudentToCourse(ctx context.Context, courseID, userID string) error
}

type CourseService struct {
	Config         *config.Config
	UserMapper     user.IMongoMapper
	CourseMapper   course.IMongoMapper
	CategoryMapper category.IMongoMapper
	FeedbackMapper feedback.IMongoMapper
	PurchaseMapper purchase.IMongoMapper
	ProgressMapper purchase.IProgressMongoMapper
	RoomMapper     chat.IRoomMongoMapper
	ChatService    IChatService
	ContentService IContentService
	CommentService ICommentService
	Storage        storage.IStorage
	PageCache      cache.ICoursePageCache
	Transactor     mongox.ITransactor
}

var CourseServiceSet = wire.NewSet(
	wire.Struct(new(CourseService), "*"),
	wire.Bind(new(ICourseService), new(*CourseService)),
)

func (s *CourseService) CreateCourse(ctx context.Context, req *core.CreateCourseReq) (*core.CreateCourseResp, error) {
	u, err := currentUser(ctx, s.UserMapper)
	if err != nil {
		return nil, err
	}
	if u.Role != consts.RoleInstructor && !isAdmin(s.Config, u) {
		return nil, consts.ErrForbidden
	}
	courseType := lo.Ternary(req.CourseType == "", consts.CourseTypeRegular, req.CourseType)
	if courseType != consts.CourseTypeRegular && courseType != consts.CourseTypeFAQ {
		return nil, consts.ErrInvalidType
	}
	if req.CategoryID != "" {
		if _, err = s.CategoryMapper.FindOne(ctx, req.CategoryID); err != nil {
			return nil, notFoundOr(err)
		}
	}

	c := &course.Course{
		Title:        req.Title,
		Subtitle:     req.Subtitle,
		Description:  req.Description,
		ImageKey:     req.ImageKey,
		Price:        req.Price,
		Currency:     lo.Ternary(req.Currency == "", consts.DefaultCurrency, req.Currency),
		Language:     req.Language,
		Level:        req.Level,
		Status:       consts.CourseStatusDraft,
		CourseType:   courseType,
		FaqVideoKey:  req.FaqVideoKey,
		CategoryID:   req.CategoryID,
		InstructorID: u.ID.Hex(),
		Sections:     []string{},
		Students:     []string{},
		Purchases:    []string{},
		Comments:     []string{},
		Feedbacks:    []string{},
	}
	err = s.Transactor.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.CourseMapper.Insert(ctx, c); err != nil {
			return err
		}
		if err := s.UserMapper.Push(ctx, c.InstructorID, user.FieldCreatedCourses, c.ID.Hex()); err != nil {
			return err
		}
		if c.CategoryID != "" {
			return s.CategoryMapper.PushCourse(ctx, c.CategoryID, c.ID.Hex())
		}
		return nil
	})
	if err != nil {
		log.CtxError(ctx, "创建课程失败, err=%v", err)
		return nil, consts.Upstream(err)
	}

	// FAQ 课程没有群聊
	if c.CourseType == consts.CourseTypeRegular {
		room, err := s.ChatService.CreateGroupChatRoom(ctx, c.ID.Hex(), c.InstructorID)
		if err != nil {
			return nil, err
		}
		c.ChatRoomID = room.ID.Hex()
	}
	return &core.CreateCourseResp{Course: toDTO[core.Course](c)}, nil
}

// UpdateCourse 任何修改都会下架，已通过审核的课程需重新审核
func (s *CourseService) UpdateCourse(ctx context.Context, req *core.UpdateCourseReq) (*core.UpdateCourseResp, error) {
	u, err := currentUser(ctx, s.UserMapper)
	if err != nil {
		return nil, err
	}
	c, err := ownCourse(ctx, s.CourseMapper, req.CourseID, u)
	if err != nil {
		return nil, err
	}
	if req.CategoryID != "" && req.CategoryID != c.CategoryID {
		if _, err = s.CategoryMapper.FindOne(ctx, req.CategoryID); err != nil {
			return nil, notFoundOr(err)
		}
	}

	oldCategory, oldFaqVideo, oldImage := c.CategoryID, c.FaqVideoKey, c.ImageKey
	c.Title = req.Title
	c.Subtitle = req.Subtitle
	c.Description = req.Description
	c.ImageKey = req.ImageKey
	c.Price = req.Price
	c.Currency = lo.Ternary(req.Currency == "", c.Currency, req.Currency)
	c.Language = req.Language
	c.Level = req.Level
	c.FaqVideoKey = req.FaqVideoKey
	c.CategoryID = req.CategoryID
	c.IsPublished = false
	if c.Status == consts.CourseStatusApproved {
		c.Status = consts.CourseStatusPending
	}

	err = s.Transactor.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.CourseMapper.Update(ctx, c); err != nil {
			return err
		}
		if oldCategory == c.CategoryID {
			return nil
		}
		if oldCategory != "" {
			if err := s.CategoryMapper.PullCourse(ctx, oldCategory, c.ID.Hex()); err != nil {
				return err
			}
		}
		if c.CategoryID != "" {
			return s.CategoryMapper.PushCourse(ctx, c.CategoryID, c.ID.Hex())
		}
		return nil
	})
	if err != nil {
		log.CtxError(ctx, "更新课程失败, courseId=%s, err=%v", req.CourseID, err)
		return nil, consts.Upstream(err)
	}

	if oldFaqVideo != c.FaqVideoKey {
		deleteAssets(ctx, s.Storage, oldFaqVideo)
	}
	if oldImage != c.ImageKey {
		deleteAssets(ctx, s.Storage, oldImage)
	}
	s.invalidate(ctx, c.ID.Hex())
	return &core.UpdateCourseResp{Course: toDTO[core.Course](c)}, nil
}

// DeleteCourse 有学生的课程不能删除，先解除外部引用再删除课程本身
func (s *CourseService) DeleteCourse(ctx context.Context, req *core.CourseIDReq) error {
	u, err := currentUser(ctx, s.UserMapper)
	if err != nil {
		return err
	}
	c, err := ownCourse(ctx, s.CourseMapper, req.CourseID, u)
	if err != nil {
		return err
	}
	if len(c.Students) > 0 {
		return consts.ErrCourseHasStudents
	}
	courseID := c.ID.Hex()

	err = s.Transactor.WithTransaction(ctx, func(ctx context.Context) error {
		if c.CategoryID != "" {
			if err := s.CategoryMapper.PullCourse(ctx, c.CategoryID, courseID); err != nil && !errors.Is(err, consts.ErrNotFound) {
				return err
			}
		}
		if err := s.UserMapper.Pull(ctx, c.InstructorID, user.FieldCreatedCourses, courseID); err != nil {
			return err
		}
		if err := s.ContentService.DeleteCourseContent(ctx, courseID); err != nil {
			return err
		}
		if err := s.CommentService.DeleteCourseComments(ctx, c); err != nil {
			return err
		}
		if _, err := s.FeedbackMapper.DeleteByCourse(ctx, courseID); err != nil {
			return err
		}
		if _, err := s.PurchaseMapper.DeleteByCourse(ctx, courseID); err != nil {
			return err
		}
		if _, err := s.ProgressMapper.DeleteByCourse(ctx, courseID); err != nil {
			return err
		}
		if err := s.ChatService.DeleteCourseChatRooms(ctx, courseID); err != nil {
			return err
		}
		return s.CourseMapper.Delete(ctx, courseID)
	})
	if err != nil {
		log.CtxError(ctx, "删除课程失败, courseId=%s, err=%v", courseID, err)
		return consts.Upstream(err)
	}

	deleteAssets(ctx, s.Storage, c.ImageKey, c.FaqVideoKey)
	s.invalidate(ctx, courseID)
	return nil
}

// SubmitCourse 草稿或被拒绝的课程提交审核
func (s *CourseService) SubmitCourse(ctx context.Context, req *core.CourseIDReq) (*core.CourseStatusResp, error) {
	u, err := currentUser(ctx, s.UserMapper)
	if err != nil {
		return nil, err
	}
	c, err := ownCourse(ctx, s.CourseMapper, req.CourseID, u)
	if err != nil {
		return nil, err
	}
	if c.Status != consts.CourseStatusDraft && c.Status != consts.CourseStatusRejected {
		return nil, consts.ErrCourseStatus
	}
	return s.setStatus(ctx, c, consts.CourseStatusPending, false)
}

func (s *CourseService) ReviewCourse(ctx context.Context, req *core.ReviewCourseReq) (*core.CourseStatusResp, error) {
	u, err := currentUser(ctx, s.UserMapper)
	if err != nil {
		return nil, err
	}
	if !isAdmin(s.Config, u) {
		return nil, consts.ErrNotAdmin
	}
	c, err := findCourse(ctx, s.CourseMapper, req.CourseID)
	if err != nil {
		return nil, err
	}
	if c.Status != consts.CourseStatusPending {
		return nil, consts.ErrCourseStatus
	}
	status := lo.Ternary(req.Approve, consts.CourseStatusApproved, consts.CourseStatusRejected)
	return s.setStatus(ctx, c, status, false)
}

// PublishCourse 上架要求审核通过，下架总是允许
func (s *CourseService) PublishCourse(ctx context.Context, req *core.PublishCourseReq) (*core.CourseStatusResp, error) {
	u, err := currentUser(ctx, s.UserMapper)
	if err != nil {
		return nil, err
	}
	c, err := ownCourse(ctx, s.CourseMapper, req.CourseID, u)
	if err != nil {
		return nil, err
	}
	if req.Publish && c.Status != consts.CourseStatusApproved {
		return nil, consts.ErrCourseNotApproved
	}
	return s.setStatus(ctx, c, c.Status, req.Publish)
}

func (s *CourseService) setStatus(ctx context.Context, c *course.Course, status string, isPublished bool) (*core.CourseStatusResp, error) {
	if err := s.CourseMapper.SetStatus(ctx, c.ID.Hex(), status, isPublished); err != nil {
		return nil, consts.Upstream(err)
	}
	c.Status, c.IsPublished = status, isPublished
	s.invalidate(ctx, c.ID.Hex())
	return &core.CourseStatusResp{Course: toDTO[core.Course](c)}, nil
}

// GetCourse 未上架的课程只有讲师本人和管理员可见
func (s *CourseService) GetCourse(ctx context.Context, req *core.CourseIDReq) (*core.GetCourseResp, error) {
	detail, err := s.PageCache.Get(ctx, req.CourseID)
	if err != nil {
		if detail, err = s.loadDetail(ctx, req.CourseID); err != nil {
			return nil, err
		}
		bestEffort(ctx, "cache course page", s.PageCache.Set(ctx, req.CourseID, detail))
	}

	if !detail.Course.IsPublished {
		u, err := currentUser(ctx, s.UserMapper)
		if err != nil {
			return nil, err
		}
		if detail.Course.InstructorID != u.ID.Hex() && !isAdmin(s.Config, u) {
			return nil, consts.ErrNotFound
		}
	}
	return &core.GetCourseResp{Detail: detail}, nil
}

func (s *CourseService) loadDetail(ctx context.Context, courseID string) (*core.CourseDetail, error) {
	c, err := findCourse(ctx, s.CourseMapper, courseID)
	if err != nil {
		return nil, err
	}
	sections, err := s.ContentService.LoadSections(ctx, courseID)
	if err != nil {
		return nil, err
	}
	avg, err := s.FeedbackMapper.AverageRating(ctx, courseID)
	if err != nil {
		return nil, consts.Upstream(err)
	}
	return &core.CourseDetail{
		Course:        toDTO[core.Course](c),
		Sections:      sections,
		AverageRating: avg,
	}, nil
}

func (s *CourseService) ListInstructorCourses(ctx context.Context, req *core.ListInstructorCoursesReq) (*core.ListCoursesResp, error) {
	u, err := currentUser(ctx, s.UserMapper)
	if err != nil {
		return nil, err
	}
	p := req.PaginationOptions
	courses, total, err := s.CourseMapper.FindByInstructor(ctx, u.ID.Hex(), p.GetPage(), p.GetLimit())
	if err != nil {
		return nil, consts.Upstream(err)
	}
	return &core.ListCoursesResp{Courses: toDTOs[core.Course](courses), Total: total}, nil
}

func (s *CourseService) ListPublishedCourses(ctx context.Context, req *core.ListPublishedCoursesReq) (*core.ListCoursesResp, error) {
	p := req.PaginationOptions
	courses, total, err := s.CourseMapper.FindPublished(ctx, req.CategoryID, p.GetPage(), p.GetLimit())
	if err != nil {
		return nil, consts.Upstream(err)
	}
	return &core.ListCoursesResp{Courses: toDTOs[core.Course](courses), Total: total}, nil
}

func (s *CourseService) PushStudentToCourse(ctx context.Context, courseID, userID string) error {
	c, err := findCourse(ctx, s.CourseMapper, courseID)
	if err != nil {
		return err
	}
	if err = s.CourseMapper.Push(ctx, courseID, course.FieldStudents, userID); err != nil {
		log.CtxError(ctx, "课程添加学生失败, courseId=%s, userId=%s, err=%v", courseID, userID, err)
		return consts.Upstream(err)
	}
	defer s.invalidate(ctx, courseID)
	if c.CourseType != consts.CourseTypeRegular {
		return nil
	}

	room, err := s.RoomMapper.FindOneByCourse(ctx, courseID)
	if errors.Is(err, consts.ErrNotFound) {
		log.CtxInfo(ctx, "课程缺少群聊，补建, courseId=%s", courseID)
		room, err = s.ChatService.CreateGroupChatRoom(ctx, courseID, c.InstructorID)
	}
	if err != nil {
		log.CtxError(ctx, "获取群聊失败, courseId=%s, err=%v", courseID, err)
		return consts.Upstream(err)
	}
	if err = s.ChatService.JoinChatRoom(ctx, userID, room.ID.Hex()); err != nil {
		log.CtxError(ctx, "加入群聊失败, roomId=%s, userId=%s, err=%v", room.ID.Hex(), userID, err)
		return consts.Upstream(err)
	}
	return nil
}

func (s *CourseService) invalidate(ctx context.Context, courseID string) {
	bestEffort(ctx, "invalidate course page", s.PageCache.Delete(ctx, courseID))
}
