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

// CreatePurchase .
// @router /purchase/create [POST]
func CreatePurchase(ctx context.Context, c *app.RequestContext) {
	var err error
	var req core.CreatePurchaseReq
	err = c.BindAndValidate(&req)
	if err != nil {
		c.String(consts.StatusBadRequest, err.Error())
		return
	}

	ctx = adaptor.InjectContext(ctx, c)
	p := provider.Get()
	resp, err := p.PurchaseService.CreatePurchase(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

// ListPurchases .
// @router /purchase/list [POST]
func ListPurchases(ctx context.Context, c *app.RequestContext) {
	var err error
	var req core.ListPurchasesReq
	err = c.BindAndValidate(&req)
	if err != nil {
		c.String(consts.StatusBadRequest, err.Error())
		return
	}

	ctx = adaptor.InjectContext(ctx, c)
	p := provider.Get()
	resp, err := p.PurchaseService.ListPurchases(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

// CreateFeedback .
// @router /feedback/create [POST]
func CreateFeedback(ctx context.Context, c *app.RequestContext) {
	var err error
	var req core.CreateFeedbackReq
	err = c.BindAndValidate(&req)
	if err != nil {
		c.String(consts.StatusBadRequest, err.Error())
		return
	}

	ctx = adaptor.InjectContext(ctx, c)
	p := provider.Get()
	resp, err := p.FeedbackService.CreateFeedback(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

// UpdateFeedback .
// @router /feedback/update [POST]
func UpdateFeedback(ctx context.Context, c *app.RequestContext) {
	var err error
	var req core.UpdateFeedbackReq
	err = c.BindAndValidate(&req)
	if err != nil {
		c.String(consts.StatusBadRequest, err.Error())
		return
	}

	ctx = adaptor.InjectContext(ctx, c)
	p := provider.Get()
	resp, err := p.FeedbackService.UpdateFeedback(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

// DeleteFeedback .
// @router /feedback/delete [POST]
func DeleteFeedback(ctx context.Context, c *app.RequestContext) {
	var err error
	var req core.DeleteFeedbackReq
	err = c.BindAndValidate(&req)
	if err != nil {
		c.String(consts.StatusBadRequest, err.Error())
		return
	}

	ctx = adaptor.InjectContext(ctx, c)
	p := provider.Get()
	err = p.FeedbackService.DeleteFeedback(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, &basic.Response{Msg: "success"}, err)
}

// ListFeedbacks .
// @router /feedback/list [POST]
func ListFeedbacks(ctx context.Context, c *app.RequestContext) {
	var err error
	var req core.ListFeedbacksReq
	err = c.BindAndValidate(&req)
	if err != nil {
		c.String(consts.StatusBadRequest, err.Error())
		return
	}

	ctx = adaptor.InjectContext(ctx, c)
	p := provider.Get()
	resp, err := p.FeedbackService.ListFeedbacks(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}
