package cache

import (
	"context"
	"errors"
	"fmt"
	"learnhub/biz/application/dto/learnhub/core"
	"learnhub/biz/infrastructure/config"
	"learnhub/biz/infrastructure/redis"
	"time"

	"github.com/bytedance/sonic"
	"github.com/zeromicro/go-zero/core/collection"
	gozero_redis "github.com/zeromicro/go-zero/core/stores/redis"
)

const (
	coursePageCachePrefix = "course_page"
	coursePageCacheExpire = 600 // 10分钟
)

var ErrCacheMiss = errors.New("cache miss")

// ICoursePageCache 课程详情页缓存，任何课程相关写操作后都要 Delete
type ICoursePageCache interface {
	Get(ctx context.Context, courseID string) (*core.CourseDetail, error)
	Set(ctx context.Context, courseID string, data *core.CourseDetail) error
	Delete(ctx context.Context, courseID string) error
}

type CoursePageCache struct {
	rds *gozero_redis.Redis
}

func NewCoursePageCache(config *config.Config) *CoursePageCache {
	return &CoursePageCache{
		rds: redis.GetRedis(config),
	}
}

// Get 从缓存获取课程详情
func (m *CoursePageCache) Get(ctx context.Context, courseID string) (*core.CourseDetail, error) {
	cachedData, err := m.rds.GetCtx(ctx, buildCacheKey(courseID))
	if err != nil {
		return nil, err
	}

	if cachedData == "" {
		return nil, ErrCacheMiss
	}

	var result core.CourseDetail
	if err := sonic.UnmarshalString(cachedData, &result); err != nil {
		return nil, fmt.Errorf("unmarshal cached data failed: %w", err)
	}

	return &result, nil
}

// Set 将课程详情存入缓存
func (m *CoursePageCache) Set(ctx context.Context, courseID string, data *core.CourseDetail) error {
	resultBytes, err := sonic.MarshalString(data)
	if err != nil {
		return fmt.Errorf("marshal data failed: %w", err)
	}

	return m.rds.SetexCtx(ctx, buildCacheKey(courseID), resultBytes, coursePageCacheExpire)
}

// Delete 删除缓存
func (m *CoursePageCache) Delete(ctx context.Context, courseID string) error {
	_, err := m.rds.DelCtx(ctx, buildCacheKey(courseID))
	return err
}

// LocalCoursePageCache 进程内缓存，memory 模式使用
type LocalCoursePageCache struct {
	c *collection.Cache
}

func NewLocalCoursePageCache() *LocalCoursePageCache {
	c, err := collection.NewCache(coursePageCacheExpire*time.Second, collection.WithName(coursePageCachePrefix))
	if err != nil {
		panic(err)
	}
	return &LocalCoursePageCache{c: c}
}

func (m *LocalCoursePageCache) Get(_ context.Context, courseID string) (*core.CourseDetail, error) {
	v, ok := m.c.Get(buildCacheKey(courseID))
	if !ok {
		return nil, ErrCacheMiss
	}
	// 返回副本，避免调用方修改缓存内容
	var result core.CourseDetail
	if err := sonic.UnmarshalString(v.(string), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (m *LocalCoursePageCache) Set(_ context.Context, courseID string, data *core.CourseDetail) error {
	s, err := sonic.MarshalString(data)
	if err != nil {
		return err
	}
	m.c.Set(buildCacheKey(courseID), s)
	return nil
}

func (m *LocalCoursePageCache) Delete(_ context.Context, courseID string) error {
	m.c.Del(buildCacheKey(courseID))
	return nil
}

// buildCacheKey 构造缓存key
func buildCacheKey(id string) string {
	return fmt.Sprintf("%s:%s", coursePageCachePrefix, id)
}
