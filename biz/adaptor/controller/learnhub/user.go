package learnhub

import (
	"context"
	"learnhub/biz/adaptor"
	"learnhub/biz/application/dto/learnhub/core"
	"learnhub/provider"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

// SyncUser .
// @router /user/sync [POST]
func SyncUser(ctx context.Context, c *app.RequestContext) {
	var err error
	var req core.SyncUserReq
	err = c.BindAndValidate(&req)
	if err != nil {
		c.String(consts.StatusBadRequest, err.Error())
		return
	}

	ctx = adaptor.InjectContext(ctx, c)
	p := provider.Get()
	resp, err := p.UserService.SyncUser(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

// GetUserInfo .
// @router /user/info [GET]
func GetUserInfo(ctx context.Context, c *app.RequestContext) {
	var err error
	var req core.GetUserInfoReq
	err = c.BindAndValidate(&req)
	if err != nil {
		c.String(consts.StatusBadRequest, err.Error())
		return
	}

	ctx = adaptor.InjectContext(ctx, c)
	p := provider.Get()
	resp, err := p.UserService.GetUserInfo(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

// UpdateInterests .
// @router /user/interests [POST]
func UpdateInterests(ctx context.Context, c *app.RequestContext) {
	var err error
	var req core.UpdateInterestsReq
	err = c.BindAndValidate(&req)
	if err != nil {
		c.String(consts.StatusBadRequest, err.Error())
		return
	}

	ctx = adaptor.InjectContext(ctx, c)
	p := provider.Get()
	resp, err := p.UserService.UpdateInterests(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

// BecomeInstructor .
// @router /user/instructor [POST]
func BecomeInstructor(ctx context.Context, c *app.RequestContext) {
	var err error
	var req core.BecomeInstructorReq
	err = c.BindAndValidate(&req)
	if err != nil {
		c.String(consts.StatusBadRequest, err.Error())
		return
	}

	ctx = adaptor.InjectContext(ctx, c)
	p := provider.Get()
	resp, err := p.UserService.BecomeInstructor(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

// ListWalletTransactions .
// @router /user/wallet/list [POST]
func ListWalletTransactions(ctx context.Context, c *app.RequestContext) {
	var err error
	var req core.ListWalletTransactionsReq
	err = c.BindAndValidate(&req)
	if err != nil {
		c.String(consts.StatusBadRequest, err.Error())
		return
	}

	ctx = adaptor.InjectContext(ctx, c)
	p := provider.Get()
	resp, err := p.UserService.ListWalletTransactions(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

// ApplySignedUrl .
// @router /sts/apply [POST]
func ApplySignedUrl(ctx context.Context, c *app.RequestContext) {
	var err error
	var req core.ApplySignedUrlReq
	err = c.BindAndValidate(&req)
	if err != nil {
		c.String(consts.StatusBadRequest, err.Error())
		return
	}

	ctx = adaptor.InjectContext(ctx, c)
	p := provider.Get()
	resp, err := p.StsService.ApplySignedUrl(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

// CreateCategory .
// @router /category/create [POST]
func CreateCategory(ctx context.Context, c *app.RequestContext) {
	var err error
	var req core.CreateCategoryReq
	err = c.BindAndValidate(&req)
	if err != nil {
		c.String(consts.StatusBadRequest, err.Error())
		return
	}

	ctx = adaptor.InjectContext(ctx, c)
	p := provider.Get()
	resp, err := p.CategoryService.CreateCategory(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

// ListCategories .
// @router /category/list [GET]
func ListCategories(ctx context.Context, c *app.RequestContext) {
	var err error
	var req core.ListCategoriesReq
	err = c.BindAndValidate(&req)
	if err != nil {
		c.String(consts.StatusBadRequest, err.Error())
		return
	}

	ctx = adaptor.InjectContext(ctx, c)
	p := provider.Get()
	resp, err := p.CategoryService.ListCategories(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}
