package service

import (
	"context"
	"testing"

	"learnhub/biz/application/dto/learnhub/core"
	"learnhub/biz/infrastructure/consts"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeedbackRules(t *testing.T) {
	e := newTestEnv(t)
	_, _, instructorCtx, studentCtx, c := e.enrolled(t, consts.CourseTypeFAQ)

	_, err := e.feedback.CreateFeedback(studentCtx, &core.CreateFeedbackReq{CourseID: c.ID, Rating: 6})
	assert.ErrorIs(t, err, consts.ErrInvalidRating)
	_, err = e.feedback.CreateFeedback(studentCtx, &core.CreateFeedbackReq{CourseID: c.ID, Rating: -1})
	assert.ErrorIs(t, err, consts.ErrInvalidRating)
	_, err = e.feedback.CreateFeedback(instructorCtx, &core.CreateFeedbackReq{CourseID: c.ID, Rating: 5})
	assert.ErrorIs(t, err, consts.ErrNotEnrolled)

	f, err := e.feedback.CreateFeedback(studentCtx, &core.CreateFeedbackReq{CourseID: c.ID, Rating: 4, Comment: "good"})
	require.NoError(t, err)
	assert.Equal(t, []string{f.Feedback.ID}, e.reloadCourse(t, c.ID).Feedbacks)

	_, err = e.feedback.CreateFeedback(studentCtx, &core.CreateFeedbackReq{CourseID: c.ID, Rating: 5})
	assert.ErrorIs(t, err, consts.ErrRepeatFeedback)
	assert.Equal(t, consts.KindBusinessRule, consts.KindOf(err))

	_, err = e.feedback.UpdateFeedback(instructorCtx, &core.UpdateFeedbackReq{FeedbackID: f.Feedback.ID, Rating: 1})
	assert.ErrorIs(t, err, consts.ErrNotAuthor)
	updated, err := e.feedback.UpdateFeedback(studentCtx, &core.UpdateFeedbackReq{FeedbackID: f.Feedback.ID, Rating: 2, Comment: "meh"})
	require.NoError(t, err)
	assert.EqualValues(t, 2, updated.Feedback.Rating)

	assert.ErrorIs(t, e.feedback.DeleteFeedback(instructorCtx, &core.DeleteFeedbackReq{FeedbackID: f.Feedback.ID}), consts.ErrNotAuthor)
	require.NoError(t, e.feedback.DeleteFeedback(studentCtx, &core.DeleteFeedbackReq{FeedbackID: f.Feedback.ID}))
	assert.Empty(t, e.reloadCourse(t, c.ID).Feedbacks)

	// 删除后可以重新评价
	_, err = e.feedback.CreateFeedback(studentCtx, &core.CreateFeedbackReq{CourseID: c.ID, Rating: 3})
	require.NoError(t, err)
}

func TestListFeedbacksAverage(t *testing.T) {
	e := newTestEnv(t)
	_, instructorCtx := e.newUser(t, "instructor-ext", consts.RoleInstructor)
	c := e.publishedCourse(t, instructorCtx, consts.CourseTypeFAQ, 10)

	empty, err := e.feedback.ListFeedbacks(context.Background(), &core.ListFeedbacksReq{CourseID: c.ID})
	require.NoError(t, err)
	assert.Zero(t, empty.AverageRating)
	assert.Zero(t, empty.Total)

	for i, rating := range []int64{5, 2} {
		_, ctx := e.newUser(t, []string{"s1", "s2"}[i], consts.RoleStudent)
		_, err = e.purchase.CreatePurchase(ctx, &core.CreatePurchaseReq{CourseID: c.ID})
		require.NoError(t, err)
		_, err = e.feedback.CreateFeedback(ctx, &core.CreateFeedbackReq{CourseID: c.ID, Rating: rating})
		require.NoError(t, err)
	}

	list, err := e.feedback.ListFeedbacks(context.Background(), &core.ListFeedbacksReq{CourseID: c.ID})
	require.NoError(t, err)
	assert.EqualValues(t, 2, list.Total)
	assert.InDelta(t, 3.5, list.AverageRating, 1e-9)

	detail, err := e.course.GetCourse(context.Background(), &core.CourseIDReq{CourseID: c.ID})
	require.NoError(t, err)
	assert.InDelta(t, 3.5, detail.Detail.AverageRating, 1e-9)
}
