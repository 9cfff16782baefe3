package service

import (
	"context"
	"errors"
	"learnhub/biz/adaptor"
	"learnhub/biz/application/dto/learnhub/core"
	"learnhub/biz/infrastructure/consts"
	"learnhub/biz/infrastructure/repository/user"
	"learnhub/biz/infrastructure/repository/wallet"
	"learnhub/biz/infrastructure/util/log"

	"github.com/google/wire"
	"github.com/samber/lo"
)

type IUserService interface {
	SyncUser(ctx context.Context, req *core.SyncUserReq) (*core.SyncUserResp, error)
	GetUserInfo(ctx context.Context, req *core.GetUserInfoReq) (*core.GetUserInfoResp, error)
	UpdateInterests(ctx context.Context, req *core.UpdateInterestsReq) (*core.GetUserInfoResp, error)
	BecomeInstructor(ctx context.Context, req *core.BecomeInstructorReq) (*core.GetUserInfoResp, error)
	ListWalletTransactions(ctx context.Context, req *core.ListWalletTransactionsReq) (*core.ListWalletTransactionsResp, error)
}

type UserService struct {
	UserMapper   user.IMongoMapper
	WalletMapper wallet.IMapper
}

var UserServiceSet = wire.NewSet(
	wire.Struct(new(UserService), "*"),
	wire.Bind(new(IUserService), new(*UserService)),
)

// SyncUser 首次出现的外部用户注册为学生，之后只同步资料
func (s *UserService) SyncUser(ctx context.Context, req *core.SyncUserReq) (*core.SyncUserResp, error) {
	meta := adaptor.ExtractUserMeta(ctx)
	if meta.GetUserId() == "" {
		return nil, consts.ErrNotAuthentication
	}
	if meta.GetUserId() != req.ExternalID {
		return nil, consts.ErrForbidden
	}

	u, err := s.UserMapper.FindOneByExternalID(ctx, req.ExternalID)
	switch {
	case err == nil:
		u.Username = lo.CoalesceOrEmpty(req.Username, u.Username)
		u.Email = lo.CoalesceOrEmpty(req.Email, u.Email)
		u.Picture = lo.CoalesceOrEmpty(req.Picture, u.Picture)
		if err = s.UserMapper.Update(ctx, u); err != nil {
			log.CtxError(ctx, "同步用户失败, externalId=%s, err=%v", req.ExternalID, err)
			return nil, consts.Upstream(err)
		}
	case errors.Is(err, consts.ErrNotFound):
		if u, err = s.register(ctx, req); err != nil {
			return nil, err
		}
	default:
		return nil, consts.Upstream(err)
	}
	return &core.SyncUserResp{User: toDTO[core.UserInfo](u)}, nil
}

func (s *UserService) register(ctx context.Context, req *core.SyncUserReq) (*user.User, error) {
	u := &user.User{
		ExternalID:       req.ExternalID,
		Username:         req.Username,
		Email:            req.Email,
		Picture:          req.Picture,
		Role:             consts.RoleStudent,
		Interests:        []string{},
		CreatedCourses:   []string{},
		EnrolledCourses:  []string{},
		OwnChatRooms:     []string{},
		JoinedChatRooms:  []string{},
		PrivateChatRooms: []string{},
		Purchases:        []string{},
	}
	err := s.UserMapper.Insert(ctx, u)
	if errors.Is(err, consts.ErrDuplicate) {
		// 并发注册，以已存在的为准
		u, err = s.UserMapper.FindOneByExternalID(ctx, req.ExternalID)
	}
	if err != nil {
		log.CtxError(ctx, "注册用户失败, externalId=%s, err=%v", req.ExternalID, err)
		return nil, consts.Upstream(err)
	}
	log.CtxInfo(ctx, "新用户注册, externalId=%s, userId=%s", req.ExternalID, u.ID.Hex())
	return u, nil
}

func (s *UserService) GetUserInfo(ctx context.Context, _ *core.GetUserInfoReq) (*core.GetUserInfoResp, error) {
	u, err := currentUser(ctx, s.UserMapper)
	if err != nil {
		return nil, err
	}
	return &core.GetUserInfoResp{User: toDTO[core.UserInfo](u)}, nil
}

func (s *UserService) UpdateInterests(ctx context.Context, req *core.UpdateInterestsReq) (*core.GetUserInfoResp, error) {
	u, err := currentUser(ctx, s.UserMapper)
	if err != nil {
		return nil, err
	}
	u.Interests = lo.Uniq(lo.Compact(req.Interests))
	if err = s.UserMapper.Update(ctx, u); err != nil {
		return nil, consts.Upstream(err)
	}
	return &core.GetUserInfoResp{User: toDTO[core.UserInfo](u)}, nil
}

// BecomeInstructor 学生开通讲师身份，管理员保持不变
func (s *UserService) BecomeInstructor(ctx context.Context, _ *core.BecomeInstructorReq) (*core.GetUserInfoResp, error) {
	u, err := currentUser(ctx, s.UserMapper)
	if err != nil {
		return nil, err
	}
	if u.Role == consts.RoleStudent {
		u.Role = consts.RoleInstructor
		if err = s.UserMapper.Update(ctx, u); err != nil {
			return nil, consts.Upstream(err)
		}
	}
	return &core.GetUserInfoResp{User: toDTO[core.UserInfo](u)}, nil
}

func (s *UserService) ListWalletTransactions(ctx context.Context, req *core.ListWalletTransactionsReq) (*core.ListWalletTransactionsResp, error) {
	u, err := currentUser(ctx, s.UserMapper)
	if err != nil {
		return nil, err
	}
	p := req.PaginationOptions
	txs, total, err := s.WalletMapper.ListByUser(ctx, u.ID.Hex(), p.GetPage(), p.GetLimit())
	if err != nil {
		return nil, consts.Upstream(err)
	}
	return &core.ListWalletTransactionsResp{
		Transactions: toDTOs[core.WalletTransaction](txs),
		Total:        total,
	}, nil
}
