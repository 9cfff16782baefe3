package service

import (
	"context"
	"learnhub/biz/application/dto/learnhub/core"
	"learnhub/biz/infrastructure/config"
	"learnhub/biz/infrastructure/consts"
	"learnhub/biz/infrastructure/repository/category"
	"learnhub/biz/infrastructure/repository/user"

	"github.com/google/wire"
)

type ICategoryService interface {
	CreateCategory(ctx context.Context, req *core.CreateCategoryReq) (*core.CreateCategoryResp, error)
	ListCategories(ctx context.Context, req *core.ListCategoriesReq) (*core.ListCategoriesResp, error)
}

type CategoryService struct {
	Config         *config.Config
	UserMapper     user.IMongoMapper
	CategoryMapper category.IMongoMapper
}

var CategoryServiceSet = wire.NewSet(
	wire.Struct(new(CategoryService), "*"),
	wire.Bind(new(ICategoryService), new(*CategoryService)),
)

func (s *CategoryService) CreateCategory(ctx context.Context, req *core.CreateCategoryReq) (*core.CreateCategoryResp, error) {
	u, err := currentUser(ctx, s.UserMapper)
	if err != nil {
		return nil, err
	}
	if !isAdmin(s.Config, u) {
		return nil, consts.ErrNotAdmin
	}
	c := &category.Category{Name: req.Name, Courses: []string{}}
	if err = s.CategoryMapper.Insert(ctx, c); err != nil {
		return nil, consts.Upstream(err)
	}
	return &core.CreateCategoryResp{Category: toDTO[core.Category](c)}, nil
}

func (s *CategoryService) ListCategories(ctx context.Context, _ *core.ListCategoriesReq) (*core.ListCategoriesResp, error) {
	cs, err := s.CategoryMapper.FindAll(ctx)
	if err != nil {
		return nil, consts.Upstream(err)
	}
	return &core.ListCategoriesResp{Categories: toDTOs[core.Category](cs)}, nil
}
