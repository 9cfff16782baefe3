package service

import (
	"context"
	"errors"
	"learnhub/biz/application/dto/learnhub/core"
	"learnhub/biz/infrastructure/cache"
	"learnhub/biz/infrastructure/consts"
	"learnhub/biz/infrastructure/repository/course"
	"learnhub/biz/infrastructure/repository/feedback"
	"learnhub/biz/infrastructure/repository/mongox"
	"learnhub/biz/infrastructure/repository/user"
	"learnhub/biz/infrastructure/util/log"

	"github.com/google/wire"
	"github.com/samber/lo"
)

type IFeedbackService interface {
	CreateFeedback(ctx context.Context, req *core.CreateFeedbackReq) (*core.FeedbackResp, error)
	UpdateFeedback(ctx context.Context, req *core.UpdateFeedbackReq) (*core.FeedbackResp, error)
	DeleteFeedback(ctx context.Context, req *core.DeleteFeedbackReq) error
	ListFeedbacks(ctx context.Context, req *core.ListFeedbacksReq) (*core.ListFeedbacksResp, error)
}

type FeedbackService struct {
	UserMapper     user.IMongoMapper
	CourseMapper   course.IMongoMapper
	FeedbackMapper feedback.IMongoMapper
	PageCache      cache.ICoursePageCache
	Transactor     mongox.ITransactor
}

var FeedbackServiceSet = wire.NewSet(
	wire.Struct(new(FeedbackService), "*"),
	wire.Bind(new(IFeedbackService), new(*FeedbackService)),
)

func checkRating(rating int64) error {
	if rating < consts.MinRating || rating > consts.MaxRating {
		return consts.ErrInvalidRating
	}
	return nil
}

// CreateFeedback 只有已报名的学生可以评价，每人每门课一条
func (s *FeedbackService) CreateFeedback(ctx context.Context, req *core.CreateFeedbackReq) (*core.FeedbackResp, error) {
	if err := checkRating(req.Rating); err != nil {
		return nil, err
	}
	u, err := currentUser(ctx, s.UserMapper)
	if err != nil {
		return nil, err
	}
	c, err := findCourse(ctx, s.CourseMapper, req.CourseID)
	if err != nil {
		return nil, err
	}
	if !lo.Contains(c.Students, u.ID.Hex()) {
		return nil, consts.ErrNotEnrolled
	}

	_, err = s.FeedbackMapper.FindOneByUserAndCourse(ctx, u.ID.Hex(), req.CourseID)
	switch {
	case err == nil:
		return nil, consts.ErrRepeatFeedback
	case !errors.Is(err, consts.ErrNotFound):
		return nil, consts.Upstream(err)
	}

	f := &feedback.Feedback{
		UserID:   u.ID.Hex(),
		CourseID: req.CourseID,
		Rating:   req.Rating,
		Comment:  req.Comment,
	}
	err = s.Transactor.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.FeedbackMapper.Insert(ctx, f); err != nil {
			return err
		}
		return s.CourseMapper.Push(ctx, req.CourseID, course.FieldFeedbacks, f.ID.Hex())
	})
	if errors.Is(err, consts.ErrDuplicate) {
		return nil, consts.ErrRepeatFeedback
	}
	if err != nil {
		log.CtxError(ctx, "创建评价失败, courseId=%s, err=%v", req.CourseID, err)
		return nil, consts.Upstream(err)
	}
	s.invalidate(ctx, req.CourseID)
	return &core.FeedbackResp{Feedback: toDTO[core.Feedback](f)}, nil
}

func (s *FeedbackService) UpdateFeedback(ctx context.Context, req *core.UpdateFeedbackReq) (*core.FeedbackResp, error) {
	if err := checkRating(req.Rating); err != nil {
		return nil, err
	}
	f, err := s.ownFeedback(ctx, req.FeedbackID)
	if err != nil {
		return nil, err
	}
	f.Rating = req.Rating
	f.Comment = req.Comment
	if err = s.FeedbackMapper.Update(ctx, f); err != nil {
		return nil, consts.Upstream(err)
	}
	s.invalidate(ctx, f.CourseID)
	return &core.FeedbackResp{Feedback: toDTO[core.Feedback](f)}, nil
}

func (s *FeedbackService) DeleteFeedback(ctx context.Context, req *core.DeleteFeedbackReq) error {
	f, err := s.ownFeedback(ctx, req.FeedbackID)
	if err != nil {
		return err
	}
	err = s.Transactor.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.CourseMapper.Pull(ctx, f.CourseID, course.FieldFeedbacks, f.ID.Hex()); err != nil {
			return err
		}
		return s.FeedbackMapper.Delete(ctx, f.ID.Hex())
	})
	if err != nil {
		log.CtxError(ctx, "删除评价失败, feedbackId=%s, err=%v", req.FeedbackID, err)
		return consts.Upstream(err)
	}
	s.invalidate(ctx, f.CourseID)
	return nil
}

func (s *FeedbackService) ListFeedbacks(ctx context.Context, req *core.ListFeedbacksReq) (*core.ListFeedbacksResp, error) {
	p := req.PaginationOptions
	fs, total, err := s.FeedbackMapper.FindByCourse(ctx, req.CourseID, p.GetPage(), p.GetLimit())
	if err != nil {
		return nil, consts.Upstream(err)
	}
	avg, err := s.FeedbackMapper.AverageRating(ctx, req.CourseID)
	if err != nil {
		return nil, consts.Upstream(err)
	}
	return &core.ListFeedbacksResp{
		Feedbacks:     toDTOs[core.Feedback](fs),
		Total:         total,
		AverageRating: avg,
	}, nil
}

// ownFeedback 只有作者本人可以修改或删除
func (s *FeedbackService) ownFeedback(ctx context.Context, id string) (*feedback.Feedback, error) {
	u, err := currentUser(ctx, s.UserMapper)
	if err != nil {
		return nil, err
	}
	f, err := s.FeedbackMapper.FindOne(ctx, id)
	if err != nil {
		return nil, notFoundOr(err)
	}
	if f.UserID != u.ID.Hex() {
		return nil, consts.ErrNotAuthor
	}
	return f, nil
}

func (s *FeedbackService) invalidate(ctx context.Context, courseID string) {
	bestEffort(ctx, "invalidate course page", s.PageCache.Delete(ctx, courseID))
}
