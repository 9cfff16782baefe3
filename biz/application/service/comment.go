package service

import (
	"context"
	"learnhub/biz/application/dto/learnhub/core"
	"learnhub/biz/infrastructure/consts"
	"learnhub/biz/infrastructure/repository/comment"
	"learnhub/biz/infrastructure/repository/course"
	"learnhub/biz/infrastructure/repository/mongox"
	"learnhub/biz/infrastructure/repository/user"
	"learnhub/biz/infrastructure/util/log"

	"github.com/google/wire"
	"github.com/samber/lo"
)

type ICommentService interface {
	CreateComment(ctx context.Context, req *core.CreateCommentReq) (*core.CommentResp, error)
	UpdateComment(ctx context.Context, req *core.UpdateCommentReq) (*core.CommentResp, error)
	DeleteComment(ctx context.Context, req *core.DeleteCommentReq) error
	CreateReply(ctx context.Context, req *core.CreateReplyReq) (*core.ReplyResp, error)
	UpdateReply(ctx context.Context, req *core.UpdateReplyReq) (*core.ReplyResp, error)
	DeleteReply(ctx context.Context, req *core.DeleteReplyReq) error
	ListComments(ctx context.Context, req *core.ListCommentsReq) (*core.ListCommentsResp, error)
	// DeleteCourseComments 删除课程下全部问答
	DeleteCourseComments(ctx context.Context, c *course.Course) error
}

type CommentService struct {
	UserMapper    user.IMongoMapper
	CourseMapper  course.IMongoMapper
	CommentMapper comment.IMongoMapper
	ReplyMapper   comment.IReplyMongoMapper
	Transactor    mongox.ITransactor
}

var CommentServiceSet = wire.NewSet(
	wire.Struct(new(CommentService), "*"),
	wire.Bind(new(ICommentService), new(*CommentService)),
)

// canDiscuss 只有已报名的学生和讲师本人可以提问与回复
func canDiscuss(c *course.Course, userID string) bool {
	return c.InstructorID == userID || lo.Contains(c.Students, userID)
}

func (s *CommentService) CreateComment(ctx context.Context, req *core.CreateCommentReq) (*core.CommentResp, error) {
	u, err := currentUser(ctx, s.UserMapper)
	if err != nil {
		return nil, err
	}
	c, err := findCourse(ctx, s.CourseMapper, req.CourseID)
	if err != nil {
		return nil, err
	}
	if !canDiscuss(c, u.ID.Hex()) {
		return nil, consts.ErrNotAllowedComment
	}

	cm := &comment.Comment{
		Title:    req.Title,
		Content:  req.Content,
		UserID:   u.ID.Hex(),
		CourseID: c.ID.Hex(),
		Replies:  []string{},
	}
	err = s.Transactor.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.CommentMapper.Insert(ctx, cm); err != nil {
			return err
		}
		return s.CourseMapper.Push(ctx, cm.CourseID, course.FieldComments, cm.ID.Hex())
	})
	if err != nil {
		log.CtxError(ctx, "创建评论失败, courseId=%s, err=%v", req.CourseID, err)
		return nil, consts.Upstream(err)
	}
	return &core.CommentResp{Comment: toDTO[core.Comment](cm)}, nil
}

func (s *CommentService) UpdateComment(ctx context.Context, req *core.UpdateCommentReq) (*core.CommentResp, error) {
	u, err := currentUser(ctx, s.UserMapper)
	if err != nil {
		return nil, err
	}
	cm, err := s.CommentMapper.FindOne(ctx, req.CommentID)
	if err != nil {
		return nil, notFoundOr(err)
	}
	if cm.UserID != u.ID.Hex() {
		return nil, consts.ErrNotAuthor
	}
	cm.Title, cm.Content = req.Title, req.Content
	if err = s.CommentMapper.Update(ctx, cm); err != nil {
		return nil, consts.Upstream(err)
	}
	return &core.CommentResp{Comment: toDTO[core.Comment](cm)}, nil
}

// DeleteComment 作者或讲师可删除，回复一并删除
func (s *CommentService) DeleteComment(ctx context.Context, req *core.DeleteCommentReq) error {
	u, err := currentUser(ctx, s.UserMapper)
	if err != nil {
		return err
	}
	cm, err := s.CommentMapper.FindOne(ctx, req.CommentID)
	if err != nil {
		return notFoundOr(err)
	}
	if err = s.checkModerator(ctx, cm.CourseID, cm.UserID, u.ID.Hex()); err != nil {
		return err
	}

	err = s.Transactor.WithTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.ReplyMapper.DeleteByComment(ctx, cm.ID.Hex()); err != nil {
			return err
		}
		if err := s.CommentMapper.Delete(ctx, cm.ID.Hex()); err != nil {
			return err
		}
		return s.CourseMapper.Pull(ctx, cm.CourseID, course.FieldComments, cm.ID.Hex())
	})
	if err != nil {
		log.CtxError(ctx, "删除评论失败, commentId=%s, err=%v", req.CommentID, err)
		return consts.Upstream(err)
	}
	return nil
}

func (s *CommentService) CreateReply(ctx context.Context, req *core.CreateReplyReq) (*core.ReplyResp, error) {
	u, err := currentUser(ctx, s.UserMapper)
	if err != nil {
		return nil, err
	}
	cm, err := s.CommentMapper.FindOne(ctx, req.CommentID)
	if err != nil {
		return nil, notFoundOr(err)
	}
	c, err := findCourse(ctx, s.CourseMapper, cm.CourseID)
	if err != nil {
		return nil, err
	}
	if !canDiscuss(c, u.ID.Hex()) {
		return nil, consts.ErrNotAllowedComment
	}

	r := &comment.Reply{
		Title:     req.Title,
		Content:   req.Content,
		UserID:    u.ID.Hex(),
		CommentID: cm.ID.Hex(),
	}
	err = s.Transactor.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.ReplyMapper.Insert(ctx, r); err != nil {
			return err
		}
		return s.CommentMapper.PushReply(ctx, r.CommentID, r.ID.Hex())
	})
	if err != nil {
		return nil, consts.Upstream(err)
	}
	return &core.ReplyResp{Reply: toDTO[core.Reply](r)}, nil
}

func (s *CommentService) UpdateReply(ctx context.Context, req *core.UpdateReplyReq) (*core.ReplyResp, error) {
	u, err := currentUser(ctx, s.UserMapper)
	if err != nil {
		return nil, err
	}
	r, err := s.ReplyMapper.FindOne(ctx, req.ReplyID)
	if err != nil {
		return nil, notFoundOr(err)
	}
	if r.UserID != u.ID.Hex() {
		return nil, consts.ErrNotAuthor
	}
	r.Title, r.Content = req.Title, req.Content
	if err = s.ReplyMapper.Update(ctx, r); err != nil {
		return nil, consts.Upstream(err)
	}
	return &core.ReplyResp{Reply: toDTO[core.Reply](r)}, nil
}

func (s *CommentService) DeleteReply(ctx context.Context, req *core.DeleteReplyReq) error {
	u, err := currentUser(ctx, s.UserMapper)
	if err != nil {
		return err
	}
	r, err := s.ReplyMapper.FindOne(ctx, req.ReplyID)
	if err != nil {
		return notFoundOr(err)
	}
	cm, err := s.CommentMapper.FindOne(ctx, r.CommentID)
	if err != nil {
		return notFoundOr(err)
	}
	if err = s.checkModerator(ctx, cm.CourseID, r.UserID, u.ID.Hex()); err != nil {
		return err
	}

	err = s.Transactor.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.ReplyMapper.Delete(ctx, r.ID.Hex()); err != nil {
			return err
		}
		return s.CommentMapper.PullReply(ctx, cm.ID.Hex(), r.ID.Hex())
	})
	if err != nil {
		return consts.Upstream(err)
	}
	return nil
}

func (s *CommentService) ListComments(ctx context.Context, req *core.ListCommentsReq) (*core.ListCommentsResp, error) {
	p := req.PaginationOptions
	comments, total, err := s.CommentMapper.FindByCourse(ctx, req.CourseID, p.GetPage(), p.GetLimit())
	if err != nil {
		return nil, consts.Upstream(err)
	}
	details := make([]*core.CommentDetail, 0, len(comments))
	for _, cm := range comments {
		replies, err := s.ReplyMapper.FindByComment(ctx, cm.ID.Hex())
		if err != nil {
			return nil, consts.Upstream(err)
		}
		details = append(details, &core.CommentDetail{
			Comment: toDTO[core.Comment](cm),
			Replies: toDTOs[core.Reply](replies),
		})
	}
	return &core.ListCommentsResp{Comments: details, Total: total}, nil
}

func (s *CommentService) DeleteCourseComments(ctx context.Context, c *course.Course) error {
	// pageSize 为 0 表示不分页
	comments, _, err := s.CommentMapper.FindByCourse(ctx, c.ID.Hex(), 1, 0)
	if err != nil {
		return consts.Upstream(err)
	}
	ids := lo.Uniq(append(lo.Map(comments, func(cm *comment.Comment, _ int) string { return cm.ID.Hex() }), c.Comments...))
	for _, id := range ids {
		if _, err := s.ReplyMapper.DeleteByComment(ctx, id); err != nil {
			return consts.Upstream(err)
		}
	}
	if _, err := s.CommentMapper.DeleteByCourse(ctx, c.ID.Hex()); err != nil {
		return consts.Upstream(err)
	}
	return nil
}

// checkModerator 作者本人或课程讲师
func (s *CommentService) checkModerator(ctx context.Context, courseID, authorID, userID string) error {
	if authorID == userID {
		return nil
	}
	c, err := findCourse(ctx, s.CourseMapper, courseID)
	if err != nil {
		return err
	}
	if c.InstructorID != userID {
		return consts.ErrNotAuthor
	}
	return nil
}
