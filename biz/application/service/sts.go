package service

import (
	"context"
	"fmt"
	"learnhub/biz/adaptor"
	"learnhub/biz/application/dto/learnhub/core"
	"learnhub/biz/infrastructure/config"
	"learnhub/biz/infrastructure/consts"
	"learnhub/biz/infrastructure/storage"
	"learnhub/biz/infrastructure/util/log"

	"github.com/google/uuid"
	"github.com/google/wire"
)

type IStsService interface {
	ApplySignedUrl(ctx context.Context, req *core.ApplySignedUrlReq) (*core.ApplySignedUrlResp, error)
}

type StsService struct {
	Config  *config.Config
	Storage storage.IStorage
}

var StsServiceSet = wire.NewSet(
	wire.Struct(new(StsService), "*"),
	wire.Bind(new(IStsService), new(*StsService)),
)

// ApplySignedUrl 申请素材直传的加签url，key 按环境和用户隔离
func (s *StsService) ApplySignedUrl(ctx context.Context, req *core.ApplySignedUrlReq) (*core.ApplySignedUrlResp, error) {
	// 获取用户信息
	aUser := adaptor.ExtractUserMeta(ctx)
	if aUser.GetUserId() == "" {
		return nil, consts.ErrNotAuthentication
	}

	prefix := req.GetPrefix()
	if prefix != "" {
		prefix += "/"
	}
	key := fmt.Sprintf("learnhub_%s/%s/%s%s%s", s.Config.State, aUser.GetUserId(), prefix, uuid.New().String(), req.GetSuffix())

	// 生成加签url
	url, err := s.Storage.PresignPut(ctx, key)
	if err != nil {
		log.CtxError(ctx, "生成加签url失败, key=%s, err=%v", key, err)
		return nil, consts.Upstream(err)
	}
	return &core.ApplySignedUrlResp{Url: url, Key: key}, nil
}
