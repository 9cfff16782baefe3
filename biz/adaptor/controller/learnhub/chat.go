package learnhub

import (
	"context"
	"learnhub/biz/adaptor"
	"learnhub/biz/application/dto/learnhub/core"
	"learnhub/provider"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

// CreatePrivateChatRoom .
// @router /chat/private/create [POST]
func CreatePrivateChatRoom(ctx context.Context, c *app.RequestContext) {
	var err error
	var req core.CreatePrivateChatRoomReq
	err = c.BindAndValidate(&req)
	if err != nil {
		c.String(consts.StatusBadRequest, err.Error())
		return
	}

	ctx = adaptor.InjectContext(ctx, c)
	p := provider.Get()
	resp, err := p.ChatService.CreatePrivateChatRoom(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

// CreateMessage .
// @router /chat/message/create [POST]
func CreateMessage(ctx context.Context, c *app.RequestContext) {
	var err error
	var req core.CreateMessageReq
	err = c.BindAndValidate(&req)
	if err != nil {
		c.String(consts.StatusBadRequest, err.Error())
		return
	}

	ctx = adaptor.InjectContext(ctx, c)
	p := provider.Get()
	resp, err := p.ChatService.CreateMessage(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

// CreatePrivateMessage .
// @router /chat/private/message/create [POST]
func CreatePrivateMessage(ctx context.Context, c *app.RequestContext) {
	var err error
	var req core.CreateMessageReq
	err = c.BindAndValidate(&req)
	if err != nil {
		c.String(consts.StatusBadRequest, err.Error())
		return
	}

	ctx = adaptor.InjectContext(ctx, c)
	p := provider.Get()
	resp, err := p.ChatService.CreatePrivateMessage(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

// ListMessages .
// @router /chat/message/list [POST]
func ListMessages(ctx context.Context, c *app.RequestContext) {
	var err error
	var req core.ListMessagesReq
	err = c.BindAndValidate(&req)
	if err != nil {
		c.String(consts.StatusBadRequest, err.Error())
		return
	}

	ctx = adaptor.InjectContext(ctx, c)
	p := provider.Get()
	resp, err := p.ChatService.ListMessages(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

// ListMyChatRooms .
// @router /chat/rooms [GET]
func ListMyChatRooms(ctx context.Context, c *app.RequestContext) {
	var err error
	var req core.ListMyChatRoomsReq
	err = c.BindAndValidate(&req)
	if err != nil {
		c.String(consts.StatusBadRequest, err.Error())
		return
	}

	ctx = adaptor.InjectContext(ctx, c)
	p := provider.Get()
	resp, err := p.ChatService.ListMyChatRooms(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}
