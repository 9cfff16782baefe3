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

// CreateSection .
// @router /section/create [POST]
func CreateSection(ctx context.Context, c *app.RequestContext) {
	var err error
	var req core.CreateSectionReq
	err = c.BindAndValidate(&req)
	if err != nil {
		c.String(consts.StatusBadRequest, err.Error())
		return
	}

	ctx = adaptor.InjectContext(ctx, c)
	p := provider.Get()
	resp, err := p.ContentService.CreateSection(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

// UpdateSection .
// @router /section/update [POST]
func UpdateSection(ctx context.Context, c *app.RequestContext) {
	var err error
	var req core.UpdateSectionReq
	err = c.BindAndValidate(&req)
	if err != nil {
		c.String(consts.StatusBadRequest, err.Error())
		return
	}

	ctx = adaptor.InjectContext(ctx, c)
	p := provider.Get()
	resp, err := p.ContentService.UpdateSection(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

// DeleteSection .
// @router /section/delete [POST]
func DeleteSection(ctx context.Context, c *app.RequestContext) {
	var err error
	var req core.ContentIDReq
	err = c.BindAndValidate(&req)
	if err != nil {
		c.String(consts.StatusBadRequest, err.Error())
		return
	}

	ctx = adaptor.InjectContext(ctx, c)
	p := provider.Get()
	err = p.ContentService.DeleteSection(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, &basic.Response{Msg: "success"}, err)
}

// ReorderSection .
// @router /section/reorder [POST]
func ReorderSection(ctx context.Context, c *app.RequestContext) {
	var err error
	var req core.ReorderReq
	err = c.BindAndValidate(&req)
	if err != nil {
		c.String(consts.StatusBadRequest, err.Error())
		return
	}

	ctx = adaptor.InjectContext(ctx, c)
	p := provider.Get()
	resp, err := p.ContentService.ReorderSection(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

// CreateVideo .
// @router /video/create [POST]
func CreateVideo(ctx context.Context, c *app.RequestContext) {
	var err error
	var req core.CreateVideoReq
	err = c.BindAndValidate(&req)
	if err != nil {
		c.String(consts.StatusBadRequest, err.Error())
		return
	}

	ctx = adaptor.InjectContext(ctx, c)
	p := provider.Get()
	resp, err := p.ContentService.CreateVideo(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

// UpdateVideo .
// @router /video/update [POST]
func UpdateVideo(ctx context.Context, c *app.RequestContext) {
	var err error
	var req core.UpdateVideoReq
	err = c.BindAndValidate(&req)
	if err != nil {
		c.String(consts.StatusBadRequest, err.Error())
		return
	}

	ctx = adaptor.InjectContext(ctx, c)
	p := provider.Get()
	resp, err := p.ContentService.UpdateVideo(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

// DeleteVideo .
// @router /video/delete [POST]
func DeleteVideo(ctx context.Context, c *app.RequestContext) {
	var err error
	var req core.ContentIDReq
	err = c.BindAndValidate(&req)
	if err != nil {
		c.String(consts.StatusBadRequest, err.Error())
		return
	}

	ctx = adaptor.InjectContext(ctx, c)
	p := provider.Get()
	err = p.ContentService.DeleteVideo(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, &basic.Response{Msg: "success"}, err)
}

// ReorderVideo .
// @router /video/reorder [POST]
func ReorderVideo(ctx context.Context, c *app.RequestContext) {
	var err error
	var req core.ReorderReq
	err = c.BindAndValidate(&req)
	if err != nil {
		c.String(consts.StatusBadRequest, err.Error())
		return
	}

	ctx = adaptor.InjectContext(ctx, c)
	p := provider.Get()
	resp, err := p.ContentService.ReorderVideo(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

// CreateAttachment .
// @router /attachment/create [POST]
func CreateAttachment(ctx context.Context, c *app.RequestContext) {
	var err error
	var req core.CreateAttachmentReq
	err = c.BindAndValidate(&req)
	if err != nil {
		c.String(consts.StatusBadRequest, err.Error())
		return
	}

	ctx = adaptor.InjectContext(ctx, c)
	p := provider.Get()
	resp, err := p.ContentService.CreateAttachment(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

// DeleteAttachment .
// @router /attachment/delete [POST]
func DeleteAttachment(ctx context.Context, c *app.RequestContext) {
	var err error
	var req core.ContentIDReq
	err = c.BindAndValidate(&req)
	if err != nil {
		c.String(consts.StatusBadRequest, err.Error())
		return
	}

	ctx = adaptor.InjectContext(ctx, c)
	p := provider.Get()
	err = p.ContentService.DeleteAttachment(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, &basic.Response{Msg: "success"}, err)
}

// ReorderAttachment .
// @router /attachment/reorder [POST]
func ReorderAttachment(ctx context.Context, c *app.RequestContext) {
	var err error
	var req core.ReorderReq
	err = c.BindAndValidate(&req)
	if err != nil {
		c.String(consts.StatusBadRequest, err.Error())
		return
	}

	ctx = adaptor.InjectContext(ctx, c)
	p := provider.Get()
	resp, err := p.ContentService.ReorderAttachment(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}
