package learnhub

import (
	"context"
	"learnhub/biz/adaptor"
	"learnhub/biz/application/dto/basic"
	"learnhub/biz/application/dto/learnhub/core"
	"learnhub/provider"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

// CreateCourse .
// @router /course/create [POST]
func CreateCourse(ctx context.Context, c *app.RequestContext) {
	var err error
	var req core.CreateCourseReq
	err = c.BindAndValidate(&req)
	if err != nil {
		c.String(consts.StatusBadRequest, err.Error())
		return
	}

	ctx = adaptor.InjectContext(ctx, c)
	p := provider.Get()
	resp, err := p.CourseService.CreateCourse(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

// UpdateCourse .
// @router /course/update [POST]
func UpdateCourse(ctx context.Context, c *app.RequestContext) {
	var err error
	var req core.UpdateCourseReq
	err = c.BindAndValidate(&req)
	if err != nil {
		c.String(consts.StatusBadRequest, err.Error())
		return
	}

	ctx = adaptor.InjectContext(ctx, c)
	p := provider.Get()
	resp, err := p.CourseService.UpdateCourse(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

// DeleteCourse .
// @router /course/delete [POST]
func DeleteCourse(ctx context.Context, c *app.RequestContext) {
	var err error
	var req core.CourseIDReq
	err = c.BindAndValidate(&req)
	if err != nil {
		c.String(consts.StatusBadRequest, err.Error())
		return
	}

	ctx = adaptor.InjectContext(ctx, c)
	p := provider.Get()
	err = p.CourseService.DeleteCourse(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, &basic.Response{Msg: "success"}, err)
}

// SubmitCourse .
// @router /course/submit [POST]
func SubmitCourse(ctx context.Context, c *app.RequestContext) {
	var err error
	var req core.CourseIDReq
	err = c.BindAndValidate(&req)
	if err != nil {
		c.String(consts.StatusBadRequest, err.Error())
		return
	}

	ctx = adaptor.InjectContext(ctx, c)
	p := provider.Get()
	resp, err := p.CourseService.SubmitCourse(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

// ReviewCourse .
// @router /course/review [POST]
func ReviewCourse(ctx context.Context, c *app.RequestContext) {
	var err error
	var req core.ReviewCourseReq
	err = c.BindAndValidate(&req)
	if err != nil {
		c.String(consts.StatusBadRequest, err.Error())
		return
	}

	ctx = adaptor.InjectContext(ctx, c)
	p := provider.Get()
	resp, err := p.CourseService.ReviewCourse(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

// PublishCourse .
// @router /course/publish [POST]
func PublishCourse(ctx context.Context, c *app.RequestContext) {
	var err error
	var req core.PublishCourseReq
	err = c.BindAndValidate(&req)
	if err != nil {
		c.String(consts.StatusBadRequest, err.Error())
		return
	}

	ctx = adaptor.InjectContext(ctx, c)
	p := provider.Get()
	resp, err := p.CourseService.PublishCourse(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

// GetCourse .
// @router /course/get [GET]
func GetCourse(ctx context.Context, c *app.RequestContext) {
	var err error
	var req core.CourseIDReq
	err = c.BindAndValidate(&req)
	if err != nil {
		c.String(consts.StatusBadRequest, err.Error())
		return
	}

	ctx = adaptor.InjectContext(ctx, c)
	p := provider.Get()
	resp, err := p.CourseService.GetCourse(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

// ListInstructorCourses .
// @router /course/list/instructor [POST]
func ListInstructorCourses(ctx context.Context, c *app.RequestContext) {
	var err error
	var req core.ListInstructorCoursesReq
	err = c.BindAndValidate(&req)
	if err != nil {
		c.String(consts.StatusBadRequest, err.Error())
		return
	}

	ctx = adaptor.InjectContext(ctx, c)
	p := provider.Get()
	resp, err := p.CourseService.ListInstructorCourses(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

// ListPublishedCourses .
// @router /course/list/published [POST]
func ListPublishedCourses(ctx context.Context, c *app.RequestContext) {
	var err error
	var req core.ListPublishedCoursesReq
	err = c.BindAndValidate(&req)
	if err != nil {
		c.String(consts.StatusBadRequest, err.Error())
		return
	}

	ctx = adaptor.InjectContext(ctx, c)
	p := provider.Get()
	resp, err := p.CourseService.ListPublishedCourses(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}
