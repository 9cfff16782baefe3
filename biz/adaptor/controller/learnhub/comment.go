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

// CreateComment .
// @router /comment/create [POST]
func CreateComment(ctx context.Context, c *app.RequestContext) {
	var err error
	var req core.CreateCommentReq
	err = c.BindAndValidate(&req)
	if err != nil {
		c.String(consts.StatusBadRequest, err.Error())
		return
	}

	ctx = adaptor.InjectContext(ctx, c)
	p := provider.Get()
	resp, err := p.CommentService.CreateComment(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

// UpdateComment .
// @router /comment/update [POST]
func UpdateComment(ctx context.Context, c *app.RequestContext) {
	var err error
	var req core.UpdateCommentReq
	err = c.BindAndValidate(&req)
	if err != nil {
		c.String(consts.StatusBadRequest, err.Error())
		return
	}

	ctx = adaptor.InjectContext(ctx, c)
	p := provider.Get()
	resp, err := p.CommentService.UpdateComment(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

// DeleteComment .
// @router /comment/delete [POST]
func DeleteComment(ctx context.Context, c *app.RequestContext) {
	var err error
	var req core.DeleteCommentReq
	err = c.BindAndValidate(&req)
	if err != nil {
		c.String(consts.StatusBadRequest, err.Error())
		return
	}

	ctx = adaptor.InjectContext(ctx, c)
	p := provider.Get()
	err = p.CommentService.DeleteComment(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, &basic.Response{Msg: "success"}, err)
}

// ListComments .
// @router /comment/list [POST]
func ListComments(ctx context.Context, c *app.RequestContext) {
	var err error
	var req core.ListCommentsReq
	err = c.BindAndValidate(&req)
	if err != nil {
		c.String(consts.StatusBadRequest, err.Error())
		return
	}

	ctx = adaptor.InjectContext(ctx, c)
	p := provider.Get()
	resp, err := p.CommentService.ListComments(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

// CreateReply .
// @router /reply/create [POST]
func CreateReply(ctx context.Context, c *app.RequestContext) {
	var err error
	var req core.CreateReplyReq
	err = c.BindAndValidate(&req)
	if err != nil {
		c.String(consts.StatusBadRequest, err.Error())
		return
	}

	ctx = adaptor.InjectContext(ctx, c)
	p := provider.Get()
	resp, err := p.CommentService.CreateReply(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

// UpdateReply .
// @router /reply/update [POST]
func UpdateReply(ctx context.Context, c *app.RequestContext) {
	var err error
	var req core.UpdateReplyReq
	err = c.BindAndValidate(&req)
	if err != nil {
		c.String(consts.StatusBadRequest, err.Error())
		return
	}

	ctx = adaptor.InjectContext(ctx, c)
	p := provider.Get()
	resp, err := p.CommentService.UpdateReply(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

// DeleteReply .
// @router /reply/delete [POST]
func DeleteReply(ctx context.Context, c *app.RequestContext) {
	var err error
	var req core.DeleteReplyReq
	err = c.BindAndValidate(&req)
	if err != nil {
		c.String(consts.StatusBadRequest, err.Error())
		return
	}

	ctx = adaptor.InjectContext(ctx, c)
	p := provider.Get()
	err = p.CommentService.DeleteReply(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, &basic.Response{Msg: "success"}, err)
}
