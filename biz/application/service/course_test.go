package service

import (
	"context"
	"testing"
	"time"

	"learnhub/biz/application/dto/learnhub/core"
	"learnhub/biz/infrastructure/consts"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (e *testEnv) newCategory(t *testing.T, name string) string {
	t.Helper()
	resp, err := e.category.CreateCategory(e.admin, &core.CreateCategoryReq{Name: name})
	require.NoError(t, err)
	return resp.Category.ID
}

func TestCategoryRequiresAdmin(t *testing.T) {
	e := newTestEnv(t)
	_, ctx := e.newUser(t, "instructor-ext", consts.RoleInstructor)

	_, err := e.category.CreateCategory(ctx, &core.CreateCategoryReq{Name: "go"})
	assert.ErrorIs(t, err, consts.ErrNotAdmin)

	e.newCategory(t, "go")
	e.newCategory(t, "rust")
	list, err := e.category.ListCategories(ctx, &core.ListCategoriesReq{})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"go", "rust"}, lo.Map(list.Categories, func(c *core.Category, _ int) string { return c.Name }))
}

func TestCreateCourse(t *testing.T) {
	e := newTestEnv(t)
	instructor, ctx := e.newUser(t, "instructor-ext", consts.RoleInstructor)
	_, studentCtx := e.newUser(t, "student-ext", consts.RoleStudent)
	categoryID := e.newCategory(t, "go")

	_, err := e.course.CreateCourse(studentCtx, &core.CreateCourseReq{Title: "x"})
	assert.ErrorIs(t, err, consts.ErrForbidden)
	_, err = e.course.CreateCourse(ctx, &core.CreateCourseReq{Title: "x", CourseType: "webinar"})
	assert.ErrorIs(t, err, consts.ErrInvalidType)
	_, err = e.course.CreateCourse(ctx, &core.CreateCourseReq{Title: "x", CategoryID: "missing"})
	assert.ErrorIs(t, err, consts.ErrNotFound)

	regular, err := e.course.CreateCourse(ctx, &core.CreateCourseReq{Title: "regular", Price: 20, CategoryID: categoryID})
	require.NoError(t, err)
	assert.Equal(t, consts.CourseStatusDraft, regular.Course.Status)
	assert.Equal(t, consts.CourseTypeRegular, regular.Course.CourseType)
	assert.Equal(t, consts.DefaultCurrency, regular.Course.Currency)
	assert.False(t, regular.Course.IsPublished)
	assert.NotEmpty(t, regular.Course.ChatRoomID)
	assert.Equal(t, regular.Course.ChatRoomID, e.reloadCourse(t, regular.Course.ID).ChatRoomID)

	faq, err := e.course.CreateCourse(ctx, &core.CreateCourseReq{Title: "faq", CourseType: consts.CourseTypeFAQ, Currency: "EUR"})
	require.NoError(t, err)
	assert.Empty(t, faq.Course.ChatRoomID)
	assert.Equal(t, "EUR", faq.Course.Currency)

	u := e.reloadUser(t, instructor.ID.Hex())
	assert.Equal(t, []string{regular.Course.ID, faq.Course.ID}, u.CreatedCourses)
	assert.Equal(t, []string{regular.Course.ChatRoomID}, u.OwnChatRooms)

	cat, err := e.categories.FindOne(context.Background(), categoryID)
	require.NoError(t, err)
	assert.Equal(t, []string{regular.Course.ID}, cat.Courses)

	mine, err := e.course.ListInstructorCourses(ctx, &core.ListInstructorCoursesReq{})
	require.NoError(t, err)
	assert.EqualValues(t, 2, mine.Total)
}

func TestCourseReviewWorkflow(t *testing.T) {
	e := newTestEnv(t)
	_, ctx := e.newUser(t, "instructor-ext", consts.RoleInstructor)
	resp, err := e.course.CreateCourse(ctx, &core.CreateCourseReq{Title: "flow", Price: 10})
	require.NoError(t, err)
	id := resp.Course.ID

	_, err = e.course.PublishCourse(ctx, &core.PublishCourseReq{CourseID: id, Publish: true})
	assert.ErrorIs(t, err, consts.ErrCourseNotApproved)
	_, err = e.course.ReviewCourse(e.admin, &core.ReviewCourseReq{CourseID: id, Approve: true})
	assert.ErrorIs(t, err, consts.ErrCourseStatus)

	st, err := e.course.SubmitCourse(ctx, &core.CourseIDReq{CourseID: id})
	require.NoError(t, err)
	assert.Equal(t, consts.CourseStatusPending, st.Course.Status)
	_, err = e.course.SubmitCourse(ctx, &core.CourseIDReq{CourseID: id})
	assert.ErrorIs(t, err, consts.ErrCourseStatus)

	_, err = e.course.ReviewCourse(ctx, &core.ReviewCourseReq{CourseID: id, Approve: true})
	assert.ErrorIs(t, err, consts.ErrNotAdmin)

	st, err = e.course.ReviewCourse(e.admin, &core.ReviewCourseReq{CourseID: id, Approve: false})
	require.NoError(t, err)
	assert.Equal(t, consts.CourseStatusRejected, st.Course.Status)
	_, err = e.course.SubmitCourse(ctx, &core.CourseIDReq{CourseID: id})
	require.NoError(t, err)
	_, err = e.course.ReviewCourse(e.admin, &core.ReviewCourseReq{CourseID: id, Approve: true})
	require.NoError(t, err)

	st, err = e.course.PublishCourse(ctx, &core.PublishCourseReq{CourseID: id, Publish: true})
	require.NoError(t, err)
	assert.True(t, st.Course.IsPublished)

	published, err := e.course.ListPublishedCourses(context.Background(), &core.ListPublishedCoursesReq{})
	require.NoError(t, err)
	assert.EqualValues(t, 1, published.Total)

	// 修改后下架并重新进入审核
	updated, err := e.course.UpdateCourse(ctx, &core.UpdateCourseReq{CourseID: id, Title: "flow v2", Price: 12})
	require.NoError(t, err)
	assert.False(t, updated.Course.IsPublished)
	assert.Equal(t, consts.CourseStatusPending, updated.Course.Status)
	saved := e.reloadCourse(t, id)
	assert.Equal(t, "flow v2", saved.Title)
	assert.False(t, saved.IsPublished)

	st, err = e.course.PublishCourse(ctx, &core.PublishCourseReq{CourseID: id, Publish: false})
	require.NoError(t, err)
	assert.False(t, st.Course.IsPublished)
}

func TestUpdateCourseMovesCategoryAndAssets(t *testing.T) {
	e := newTestEnv(t)
	_, ctx := e.newUser(t, "instructor-ext", consts.RoleInstructor)
	_, otherCtx := e.newUser(t, "other-ext", consts.RoleInstructor)
	from, to := e.newCategory(t, "from"), e.newCategory(t, "to")

	resp, err := e.course.CreateCourse(ctx, &core.CreateCourseReq{
		Title:       "faq",
		CourseType:  consts.CourseTypeFAQ,
		CategoryID:  from,
		FaqVideoKey: "faq/old.mp4",
		ImageKey:    "img/cover.png",
	})
	require.NoError(t, err)
	id := resp.Course.ID

	req := &core.UpdateCourseReq{
		CourseID:    id,
		Title:       "faq",
		CategoryID:  to,
		FaqVideoKey: "faq/new.mp4",
		ImageKey:    "img/cover.png",
	}
	_, err = e.course.UpdateCourse(otherCtx, req)
	assert.ErrorIs(t, err, consts.ErrNotCourseOwner)

	_, err = e.course.UpdateCourse(ctx, req)
	require.NoError(t, err)

	oldCat, err := e.categories.FindOne(context.Background(), from)
	require.NoError(t, err)
	assert.Empty(t, oldCat.Courses)
	newCat, err := e.categories.FindOne(context.Background(), to)
	require.NoError(t, err)
	assert.Equal(t, []string{id}, newCat.Courses)

	require.Eventually(t, func() bool { return lo.Contains(e.storage.Deleted(), "faq/old.mp4") }, time.Second, 10*time.Millisecond)
	assert.NotContains(t, e.storage.Deleted(), "img/cover.png")
}

func TestDeleteCourseRefusesEnrolled(t *testing.T) {
	e := newTestEnv(t)
	_, student, instructorCtx, _, c := e.enrolled(t, consts.CourseTypeRegular)
	sec, err := e.content.CreateSection(instructorCtx, &core.CreateSectionReq{CourseID: c.ID, Title: "A"})
	require.NoError(t, err)

	err = e.course.DeleteCourse(instructorCtx, &core.CourseIDReq{CourseID: c.ID})
	assert.ErrorIs(t, err, consts.ErrCourseHasStudents)
	assert.Equal(t, consts.KindBusinessRule, consts.KindOf(err))

	// 拒绝删除时课程及其内容保持不变
	saved := e.reloadCourse(t, c.ID)
	assert.Equal(t, []string{student.ID.Hex()}, saved.Students)
	assert.Equal(t, []string{sec.Section.ID}, saved.Sections)
	_, err = e.sections.FindOne(context.Background(), sec.Section.ID)
	require.NoError(t, err)
	room, err := e.rooms.FindOne(context.Background(), saved.ChatRoomID)
	require.NoError(t, err)
	assert.Contains(t, room.Students, student.ID.Hex())
	assert.Empty(t, e.storage.Deleted())
}

func TestDeleteCourseCascades(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	instructor, instructorCtx := e.newUser(t, "instructor-ext", consts.RoleInstructor)
	_, otherCtx := e.newUser(t, "other-ext", consts.RoleInstructor)
	categoryID := e.newCategory(t, "go")

	resp, err := e.course.CreateCourse(instructorCtx, &core.CreateCourseReq{Title: "doomed", CategoryID: categoryID, ImageKey: "img/doomed.png"})
	require.NoError(t, err)
	id, roomID := resp.Course.ID, resp.Course.ChatRoomID

	sec, err := e.content.CreateSection(instructorCtx, &core.CreateSectionReq{CourseID: id, Title: "A"})
	require.NoError(t, err)
	_, err = e.content.CreateVideo(instructorCtx, &core.CreateVideoReq{SectionID: sec.Section.ID, Title: "v", AssetKey: "videos/doomed.mp4"})
	require.NoError(t, err)
	cm, err := e.comment.CreateComment(instructorCtx, &core.CreateCommentReq{CourseID: id, Content: "pinned"})
	require.NoError(t, err)
	_, err = e.comment.CreateReply(instructorCtx, &core.CreateReplyReq{CommentID: cm.Comment.ID, Content: "reply"})
	require.NoError(t, err)
	_, err = e.chat.CreateMessage(instructorCtx, &core.CreateMessageReq{RoomID: roomID, Content: "hi"})
	require.NoError(t, err)

	assert.ErrorIs(t, e.course.DeleteCourse(otherCtx, &core.CourseIDReq{CourseID: id}), consts.ErrNotCourseOwner)
	require.NoError(t, e.course.DeleteCourse(instructorCtx, &core.CourseIDReq{CourseID: id}))

	_, err = e.courses.FindOne(ctx, id)
	assert.ErrorIs(t, err, consts.ErrNotFound)
	sections, err := e.sections.FindByParent(ctx, id)
	require.NoError(t, err)
	assert.Empty(t, sections)
	videos, err := e.videos.FindByParent(ctx, sec.Section.ID)
	require.NoError(t, err)
	assert.Empty(t, videos)
	_, total, err := e.comments.FindByCourse(ctx, id, 1, 0)
	require.NoError(t, err)
	assert.Zero(t, total)
	replies, err := e.replies.FindByComment(ctx, cm.Comment.ID)
	require.NoError(t, err)
	assert.Empty(t, replies)
	_, err = e.rooms.FindOne(ctx, roomID)
	assert.ErrorIs(t, err, consts.ErrNotFound)
	_, msgTotal, err := e.messages.FindByRoom(ctx, roomID, 1, 10)
	require.NoError(t, err)
	assert.Zero(t, msgTotal)

	u := e.reloadUser(t, instructor.ID.Hex())
	assert.Empty(t, u.CreatedCourses)
	assert.Empty(t, u.OwnChatRooms)
	assert.Empty(t, u.JoinedChatRooms)
	cat, err := e.categories.FindOne(ctx, categoryID)
	require.NoError(t, err)
	assert.Empty(t, cat.Courses)

	require.Eventually(t, func() bool {
		deleted := e.storage.Deleted()
		return lo.Contains(deleted, "img/doomed.png") && lo.Contains(deleted, "videos/doomed.mp4")
	}, time.Second, 10*time.Millisecond)
}

func TestGetCourseVisibilityAndCache(t *testing.T) {
	e := newTestEnv(t)
	_, instructorCtx := e.newUser(t, "instructor-ext", consts.RoleInstructor)
	_, strangerCtx := e.newUser(t, "stranger-ext", consts.RoleStudent)

	draft, err := e.course.CreateCourse(instructorCtx, &core.CreateCourseReq{Title: "hidden"})
	require.NoError(t, err)
	_, err = e.course.GetCourse(strangerCtx, &core.CourseIDReq{CourseID: draft.Course.ID})
	assert.ErrorIs(t, err, consts.ErrNotFound)
	_, err = e.course.GetCourse(context.Background(), &core.CourseIDReq{CourseID: draft.Course.ID})
	assert.ErrorIs(t, err, consts.ErrNotAuthentication)
	_, err = e.course.GetCourse(instructorCtx, &core.CourseIDReq{CourseID: draft.Course.ID})
	require.NoError(t, err)
	_, err = e.course.GetCourse(e.admin, &core.CourseIDReq{CourseID: draft.Course.ID})
	require.NoError(t, err)

	c := e.publishedCourse(t, instructorCtx, consts.CourseTypeFAQ, 10)
	got, err := e.course.GetCourse(context.Background(), &core.CourseIDReq{CourseID: c.ID})
	require.NoError(t, err)
	assert.Empty(t, got.Detail.Sections)

	// 绕过服务直接改库，缓存命中时仍是旧数据
	saved := e.reloadCourse(t, c.ID)
	saved.Subtitle = "changed"
	require.NoError(t, e.courses.Update(context.Background(), saved))
	got, err = e.course.GetCourse(context.Background(), &core.CourseIDReq{CourseID: c.ID})
	require.NoError(t, err)
	assert.Empty(t, got.Detail.Course.Subtitle)

	_, err = e.content.CreateSection(instructorCtx, &core.CreateSectionReq{CourseID: c.ID, Title: "A"})
	require.NoError(t, err)
	got, err = e.course.GetCourse(context.Background(), &core.CourseIDReq{CourseID: c.ID})
	require.NoError(t, err)
	assert.Equal(t, "changed", got.Detail.Course.Subtitle)
	require.Len(t, got.Detail.Sections, 1)
	assert.Equal(t, "A", got.Detail.Sections[0].Section.Title)

	_, err = e.course.GetCourse(context.Background(), &core.CourseIDReq{CourseID: "missing"})
	assert.ErrorIs(t, err, consts.ErrNotFound)
}

func TestPushStudentRebuildsMissingRoom(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	instructor, instructorCtx := e.newUser(t, "instructor-ext", consts.RoleInstructor)
	student, _ := e.newUser(t, "student-ext", consts.RoleStudent)
	resp, err := e.course.CreateCourse(instructorCtx, &core.CreateCourseReq{Title: "lost room"})
	require.NoError(t, err)
	require.NoError(t, e.rooms.Delete(ctx, resp.Course.ChatRoomID))

	require.NoError(t, e.course.PushStudentToCourse(ctx, resp.Course.ID, student.ID.Hex()))
	require.NoError(t, e.course.PushStudentToCourse(ctx, resp.Course.ID, student.ID.Hex()))

	room, err := e.rooms.FindOneByCourse(ctx, resp.Course.ID)
	require.NoError(t, err)
	assert.NotEqual(t, resp.Course.ChatRoomID, room.ID.Hex())
	assert.ElementsMatch(t, []string{instructor.ID.Hex(), student.ID.Hex()}, room.Students)
	assert.Equal(t, room.ID.Hex(), e.reloadCourse(t, resp.Course.ID).ChatRoomID)
	assert.Equal(t, []string{student.ID.Hex()}, e.reloadCourse(t, resp.Course.ID).Students)
}
