package service

import (
	"context"
	"learnhub/biz/application/dto/learnhub/core"
	"learnhub/biz/infrastructure/cache"
	"learnhub/biz/infrastructure/consts"
	"learnhub/biz/infrastructure/repository/content"
	"learnhub/biz/infrastructure/repository/course"
	"learnhub/biz/infrastructure/repository/mongox"
	"learnhub/biz/infrastructure/repository/user"
	"learnhub/biz/infrastructure/storage"
	"learnhub/biz/infrastructure/util/log"

	"github.com/bytedance/gopkg/util/gopool"
	"github.com/google/wire"
	"github.com/samber/lo"
)

type IContentService interface {
	CreateSection(ctx context.Context, req *core.CreateSectionReq) (*core.SectionResp, error)
	UpdateSection(ctx context.Context, req *core.UpdateSectionReq) (*core.SectionResp, error)
	DeleteSection(ctx context.Context, req *core.ContentIDReq) error
	ReorderSection(ctx context.Context, req *core.ReorderReq) (*core.SectionResp, error)

	CreateVideo(ctx context.Context, req *core.CreateVideoReq) (*core.VideoResp, error)
	UpdateVideo(ctx context.Context, req *core.UpdateVideoReq) (*core.VideoResp, error)
	DeleteVideo(ctx context.Context, req *core.ContentIDReq) error
	ReorderVideo(ctx context.Context, req *core.ReorderReq) (*core.VideoResp, error)

	CreateAttachment(ctx context.Context, req *core.CreateAttachmentReq) (*core.AttachmentResp, error)
	DeleteAttachment(ctx context.Context, req *core.ContentIDReq) error
	ReorderAttachment(ctx context.Context, req *core.ReorderReq) (*core.AttachmentResp, error)

	// LoadSections 课程详情页使用，按 position 排序
	LoadSections(ctx context.Context, courseID string) ([]*core.SectionDetail, error)
	// DeleteCourseContent 删除课程下全部章节、视频、附件及其素材
	DeleteCourseContent(ctx context.Context, courseID string) error
}

type ContentService struct {
	UserMapper       user.IMongoMapper
	CourseMapper     course.IMongoMapper
	SectionMapper    content.ISectionMapper
	VideoMapper      content.IVideoMapper
	AttachmentMapper content.IAttachmentMapper
	Storage          storage.IStorage
	PageCache        cache.ICoursePageCache
	Transactor       mongox.ITransactor
}

var ContentServiceSet = wire.NewSet(
	wire.Struct(new(ContentService), "*"),
	wire.Bind(new(IContentService), new(*ContentService)),
)

func (s *ContentService) CreateSection(ctx context.Context, req *core.CreateSectionReq) (*core.SectionResp, error) {
	c, err := s.ownedCourse(ctx, req.CourseID)
	if err != nil {
		return nil, err
	}
	sec := &content.Section{
		Title:       req.Title,
		Description: req.Description,
		CourseID:    c.ID.Hex(),
		Videos:      []string{},
		Attachments: []string{},
	}
	// 同一事务内写父文档，并发创建会冲突重试，position 不会重复
	err = s.Transactor.WithTransaction(ctx, func(ctx context.Context) error {
		if sec.Position, err = nextPosition[content.Section](ctx, s.SectionMapper, sec.CourseID); err != nil {
			return err
		}
		if err := s.SectionMapper.Insert(ctx, sec); err != nil {
			return err
		}
		return s.CourseMapper.Push(ctx, sec.CourseID, course.FieldSections, sec.ID.Hex())
	})
	if err != nil {
		log.CtxError(ctx, "创建章节失败, courseId=%s, err=%v", req.CourseID, err)
		return nil, consts.Upstream(err)
	}
	s.invalidate(ctx, sec.CourseID)
	return &core.SectionResp{Section: toDTO[core.Section](sec)}, nil
}

func (s *ContentService) UpdateSection(ctx context.Context, req *core.UpdateSectionReq) (*core.SectionResp, error) {
	sec, err := s.ownedSection(ctx, req.SectionID)
	if err != nil {
		return nil, err
	}
	if req.Title != nil {
		sec.Title = *req.Title
	}
	if req.Description != nil {
		sec.Description = *req.Description
	}
	if req.IsPublished != nil {
		sec.IsPublished = *req.IsPublished
	}
	if err = s.SectionMapper.Update(ctx, sec); err != nil {
		return nil, consts.Upstream(err)
	}
	s.invalidate(ctx, sec.CourseID)
	return &core.SectionResp{Section: toDTO[core.Section](sec)}, nil
}

func (s *ContentService) DeleteSection(ctx context.Context, req *core.ContentIDReq) error {
	sec, err := s.ownedSection(ctx, req.ID)
	if err != nil {
		return err
	}
	var keys []string
	err = s.Transactor.WithTransaction(ctx, func(ctx context.Context) error {
		var err error
		if keys, err = s.deleteSectionChildren(ctx, sec.ID.Hex()); err != nil {
			return err
		}
		if err = removeOrdered[content.Section](ctx, s.SectionMapper, sec.ID.Hex(), sec.CourseID, sec.Position); err != nil {
			return err
		}
		return s.CourseMapper.Pull(ctx, sec.CourseID, course.FieldSections, sec.ID.Hex())
	})
	if err != nil {
		log.CtxError(ctx, "删除章节失败, sectionId=%s, err=%v", req.ID, err)
		return consts.Upstream(err)
	}
	s.deleteAssets(ctx, keys...)
	s.invalidate(ctx, sec.CourseID)
	return nil
}

func (s *ContentService) ReorderSection(ctx context.Context, req *core.ReorderReq) (*core.SectionResp, error) {
	sec, err := s.ownedSection(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	position := sec.Position
	err = s.Transactor.WithTransaction(ctx, func(ctx context.Context) error {
		var err error
		position, err = reorder[content.Section](ctx, s.SectionMapper, sec.ID.Hex(), sec.CourseID, sec.Position, req.Position)
		return err
	})
	if err != nil {
		return nil, consts.Upstream(err)
	}
	sec.Position = position
	s.invalidate(ctx, sec.CourseID)
	return &core.SectionResp{Section: toDTO[core.Section](sec)}, nil
}

func (s *ContentService) CreateVideo(ctx context.Context, req *core.CreateVideoReq) (*core.VideoResp, error) {
	sec, err := s.ownedSection(ctx, req.SectionID)
	if err != nil {
		return nil, err
	}
	v := &content.Video{
		Title:       req.Title,
		Description: req.Description,
		SectionID:   sec.ID.Hex(),
		CourseID:    sec.CourseID,
		IsFree:      req.IsFree,
		AssetKey:    req.AssetKey,
		FilePacks:   []string{},
	}
	err = s.Transactor.WithTransaction(ctx, func(ctx context.Context) error {
		if v.Position, err = nextPosition[content.Video](ctx, s.VideoMapper, v.SectionID); err != nil {
			return err
		}
		if err := s.VideoMapper.Insert(ctx, v); err != nil {
			return err
		}
		return s.SectionMapper.Push(ctx, v.SectionID, content.FieldVideos, v.ID.Hex())
	})
	if err != nil {
		log.CtxError(ctx, "创建视频失败, sectionId=%s, err=%v", req.SectionID, err)
		return nil, consts.Upstream(err)
	}
	s.invalidate(ctx, v.CourseID)
	return &core.VideoResp{Video: toDTO[core.Video](v)}, nil
}

func (s *ContentService) UpdateVideo(ctx context.Context, req *core.UpdateVideoReq) (*core.VideoResp, error) {
	v, err := s.ownedVideo(ctx, req.VideoID)
	if err != nil {
		return nil, err
	}
	oldAsset := v.AssetKey
	if req.Title != nil {
		v.Title = *req.Title
	}
	if req.Description != nil {
		v.Description = *req.Description
	}
	if req.IsPublished != nil {
		v.IsPublished = *req.IsPublished
	}
	if req.IsFree != nil {
		v.IsFree = *req.IsFree
	}
	if req.AssetKey != nil {
		v.AssetKey = *req.AssetKey
	}
	if req.MuxData != nil {
		v.MuxData = &content.MuxData{AssetID: req.MuxData.AssetID, PlaybackID: req.MuxData.PlaybackID}
	}
	if err = s.VideoMapper.Update(ctx, v); err != nil {
		return nil, consts.Upstream(err)
	}
	if oldAsset != v.AssetKey {
		s.deleteAssets(ctx, oldAsset)
	}
	s.invalidate(ctx, v.CourseID)
	return &core.VideoResp{Video: toDTO[core.Video](v)}, nil
}

func (s *ContentService) DeleteVideo(ctx context.Context, req *core.ContentIDReq) error {
	v, err := s.ownedVideo(ctx, req.ID)
	if err != nil {
		return err
	}
	err = s.Transactor.WithTransaction(ctx, func(ctx context.Context) error {
		if err := removeOrdered[content.Video](ctx, s.VideoMapper, v.ID.Hex(), v.SectionID, v.Position); err != nil {
			return err
		}
		return s.SectionMapper.Pull(ctx, v.SectionID, content.FieldVideos, v.ID.Hex())
	})
	if err != nil {
		log.CtxError(ctx, "删除视频失败, videoId=%s, err=%v", req.ID, err)
		return consts.Upstream(err)
	}
	s.deleteAssets(ctx, v.AssetKey)
	s.invalidate(ctx, v.CourseID)
	return nil
}

func (s *ContentService) ReorderVideo(ctx context.Context, req *core.ReorderReq) (*core.VideoResp, error) {
	v, err := s.ownedVideo(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	position := v.Position
	err = s.Transactor.WithTransaction(ctx, func(ctx context.Context) error {
		var err error
		position, err = reorder[content.Video](ctx, s.VideoMapper, v.ID.Hex(), v.SectionID, v.Position, req.Position)
		return err
	})
	if err != nil {
		return nil, consts.Upstream(err)
	}
	v.Position = position
	s.invalidate(ctx, v.CourseID)
	return &core.VideoResp{Video: toDTO[core.Video](v)}, nil
}

func (s *ContentService) CreateAttachment(ctx context.Context, req *core.CreateAttachmentReq) (*core.AttachmentResp, error) {
	sec, err := s.ownedSection(ctx, req.SectionID)
	if err != nil {
		return nil, err
	}
	a := &content.Attachment{
		Name:      req.Name,
		AssetKey:  req.AssetKey,
		SectionID: sec.ID.Hex(),
		CourseID:  sec.CourseID,
	}
	err = s.Transactor.WithTransaction(ctx, func(ctx context.Context) error {
		if a.Position, err = nextPosition[content.Attachment](ctx, s.AttachmentMapper, a.SectionID); err != nil {
			return err
		}
		if err := s.AttachmentMapper.Insert(ctx, a); err != nil {
			return err
		}
		return s.SectionMapper.Push(ctx, a.SectionID, content.FieldAttachments, a.ID.Hex())
	})
	if err != nil {
		return nil, consts.Upstream(err)
	}
	s.invalidate(ctx, a.CourseID)
	return &core.AttachmentResp{Attachment: toDTO[core.Attachment](a)}, nil
}

func (s *ContentService) DeleteAttachment(ctx context.Context, req *core.ContentIDReq) error {
	a, err := s.ownedAttachment(ctx, req.ID)
	if err != nil {
		return err
	}
	err = s.Transactor.WithTransaction(ctx, func(ctx context.Context) error {
		if err := removeOrdered[content.Attachment](ctx, s.AttachmentMapper, a.ID.Hex(), a.SectionID, a.Position); err != nil {
			return err
		}
		return s.SectionMapper.Pull(ctx, a.SectionID, content.FieldAttachments, a.ID.Hex())
	})
	if err != nil {
		return consts.Upstream(err)
	}
	s.deleteAssets(ctx, a.AssetKey)
	s.invalidate(ctx, a.CourseID)
	return nil
}

func (s *ContentService) ReorderAttachment(ctx context.Context, req *core.ReorderReq) (*core.AttachmentResp, error) {
	a, err := s.ownedAttachment(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	position := a.Position
	err = s.Transactor.WithTransaction(ctx, func(ctx context.Context) error {
		var err error
		position, err = reorder[content.Attachment](ctx, s.AttachmentMapper, a.ID.Hex(), a.SectionID, a.Position, req.Position)
		return err
	})
	if err != nil {
		return nil, consts.Upstream(err)
	}
	a.Position = position
	s.invalidate(ctx, a.CourseID)
	return &core.AttachmentResp{Attachment: toDTO[core.Attachment](a)}, nil
}

func (s *ContentService) LoadSections(ctx context.Context, courseID string) ([]*core.SectionDetail, error) {
	sections, err := s.SectionMapper.FindByParent(ctx, courseID)
	if err != nil {
		return nil, consts.Upstream(err)
	}
	details := make([]*core.SectionDetail, 0, len(sections))
	for _, sec := range sections {
		videos, err := s.VideoMapper.FindByParent(ctx, sec.ID.Hex())
		if err != nil {
			return nil, consts.Upstream(err)
		}
		attachments, err := s.AttachmentMapper.FindByParent(ctx, sec.ID.Hex())
		if err != nil {
			return nil, consts.Upstream(err)
		}
		details = append(details, &core.SectionDetail{
			Section:     toDTO[core.Section](sec),
			Videos:      toDTOs[core.Video](videos),
			Attachments: toDTOs[core.Attachment](attachments),
		})
	}
	return details, nil
}

func (s *ContentService) DeleteCourseContent(ctx context.Context, courseID string) error {
	sections, err := s.SectionMapper.FindByParent(ctx, courseID)
	if err != nil {
		return consts.Upstream(err)
	}
	var keys []string
	for _, sec := range sections {
		children, err := s.deleteSectionChildren(ctx, sec.ID.Hex())
		if err != nil {
			return consts.Upstream(err)
		}
		keys = append(keys, children...)
	}
	if _, err = s.SectionMapper.DeleteByParent(ctx, courseID); err != nil {
		return consts.Upstream(err)
	}
	s.deleteAssets(ctx, keys...)
	return nil
}

// deleteSectionChildren 删除章节下的视频和附件，返回需要清理的素材
func (s *ContentService) deleteSectionChildren(ctx context.Context, sectionID string) ([]string, error) {
	videos, err := s.VideoMapper.FindByParent(ctx, sectionID)
	if err != nil {
		return nil, err
	}
	attachments, err := s.AttachmentMapper.FindByParent(ctx, sectionID)
	if err != nil {
		return nil, err
	}
	if _, err = s.VideoMapper.DeleteByParent(ctx, sectionID); err != nil {
		return nil, err
	}
	if _, err = s.AttachmentMapper.DeleteByParent(ctx, sectionID); err != nil {
		return nil, err
	}
	keys := lo.Map(videos, func(v *content.Video, _ int) string { return v.AssetKey })
	keys = append(keys, lo.Map(attachments, func(a *content.Attachment, _ int) string { return a.AssetKey })...)
	return keys, nil
}

func (s *ContentService) ownedCourse(ctx context.Context, courseID string) (*course.Course, error) {
	u, err := currentUser(ctx, s.UserMapper)
	if err != nil {
		return nil, err
	}
	return ownCourse(ctx, s.CourseMapper, courseID, u)
}

func (s *ContentService) ownedSection(ctx context.Context, id string) (*content.Section, error) {
	sec, err := s.SectionMapper.FindOne(ctx, id)
	if err != nil {
		return nil, notFoundOr(err)
	}
	if _, err = s.ownedCourse(ctx, sec.CourseID); err != nil {
		return nil, err
	}
	return sec, nil
}

func (s *ContentService) ownedVideo(ctx context.Context, id string) (*content.Video, error) {
	v, err := s.VideoMapper.FindOne(ctx, id)
	if err != nil {
		return nil, notFoundOr(err)
	}
	if _, err = s.ownedCourse(ctx, v.CourseID); err != nil {
		return nil, err
	}
	return v, nil
}

func (s *ContentService) ownedAttachment(ctx context.Context, id string) (*content.Attachment, error) {
	a, err := s.AttachmentMapper.FindOne(ctx, id)
	if err != nil {
		return nil, notFoundOr(err)
	}
	if _, err = s.ownedCourse(ctx, a.CourseID); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *ContentService) invalidate(ctx context.Context, courseID string) {
	bestEffort(ctx, "invalidate course page", s.PageCache.Delete(ctx, courseID))
}

// deleteAssets 异步删除素材，失败只记录
func (s *ContentService) deleteAssets(ctx context.Context, keys ...string) {
	deleteAssets(ctx, s.Storage, keys...)
}

func deleteAssets(ctx context.Context, st storage.IStorage, keys ...string) {
	keys = lo.Compact(keys)
	if len(keys) == 0 {
		return
	}
	ctx = context.WithoutCancel(ctx)
	gopool.Go(func() {
		for _, key := range keys {
			bestEffort(ctx, "delete asset "+key, st.Delete(ctx, key))
		}
	})
}

// nextPosition 新内容追加到末尾
func nextPosition[T any](ctx context.Context, m content.Ordered[T], parentID string) (int64, error) {
	n, err := m.Count(ctx, parentID)
	if err != nil {
		return 0, err
	}
	return n + 1, nil
}

// removeOrdered 删除后把后面的同级整体前移一位
func removeOrdered[T any](ctx context.Context, m content.Ordered[T], id, parentID string, position int64) error {
	if err := m.Delete(ctx, id); err != nil {
		return err
	}
	return m.Shift(ctx, parentID, position+1, 0, -1)
}

// reorder 目标位置限制在 [1, N]，中间的同级顺移一位，返回最终位置
func reorder[T any](ctx context.Context, m content.Ordered[T], id, parentID string, from, to int64) (int64, error) {
	n, err := m.Count(ctx, parentID)
	if err != nil {
		return from, err
	}
	to = lo.Clamp(to, 1, n)
	switch {
	case to == from:
		return from, nil
	case to < from:
		err = m.Shift(ctx, parentID, to, from-1, 1)
	default:
		err = m.Shift(ctx, parentID, from+1, to, -1)
	}
	if err != nil {
		return from, err
	}
	return to, m.SetPosition(ctx, id, to)
}
