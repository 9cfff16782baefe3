package service

import (
	"context"
	"errors"
	"learnhub/biz/adaptor"
	"learnhub/biz/infrastructure/config"
	"learnhub/biz/infrastructure/consts"
	"learnhub/biz/infrastructure/repository/course"
	"learnhub/biz/infrastructure/repository/user"
	"learnhub/biz/infrastructure/util/log"

	"github.com/samber/lo"
)

// currentUser 将身份提供方的用户ID映射为内部用户
func currentUser(ctx context.Context, users user.IMongoMapper) (*user.User, error) {
	meta := adaptor.ExtractUserMeta(ctx)
	if meta.GetUserId() == "" {
		return nil, consts.ErrNotAuthentication
	}
	u, err := users.FindOneByExternalID(ctx, meta.GetUserId())
	switch {
	case err == nil:
		return u, nil
	case errors.Is(err, consts.ErrNotFound):
		return nil, consts.ErrNotAuthentication
	default:
		return nil, consts.Upstream(err)
	}
}

func isAdmin(c *config.Config, u *user.User) bool {
	if u.Role == consts.RoleAdmin {
		return true
	}
	return c != nil && lo.Contains(c.Auth.AdminIds, u.ExternalID)
}

// findCourse 课程不存在时返回 ErrNotFound
func findCourse(ctx context.Context, courses course.IMongoMapper, id string) (*course.Course, error) {
	c, err := courses.FindOne(ctx, id)
	if err != nil {
		return nil, notFoundOr(err)
	}
	return c, nil
}

// ownCourse 加载课程并校验操作者是讲师本人
func ownCourse(ctx context.Context, courses course.IMongoMapper, id string, u *user.User) (*course.Course, error) {
	c, err := findCourse(ctx, courses, id)
	if err != nil {
		return nil, err
	}
	if c.InstructorID != u.ID.Hex() {
		return nil, consts.ErrNotCourseOwner
	}
	return c, nil
}

// notFoundOr 保留业务错误，其余视为上游故障
func notFoundOr(err error) error {
	switch {
	case errors.Is(err, consts.ErrNotFound), errors.Is(err, consts.ErrInvalidObjectId):
		return consts.ErrNotFound
	default:
		return consts.Upstream(err)
	}
}

// bestEffort 失败不影响主流程，只记录错误
func bestEffort(ctx context.Context, what string, err error) {
	if err != nil {
		log.CtxError(ctx, "%s failed, err=%v", what, err)
	}
}
