package service

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"learnhub/biz/application/dto/learnhub/core"
	"learnhub/biz/infrastructure/consts"
	"learnhub/biz/infrastructure/repository/purchase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCreatePurchaseIsIdempotent(t *testing.T) {
	e := newTestEnv(t)
	instructor, student, _, studentCtx, c := e.enrolled(t, consts.CourseTypeRegular)

	again, err := e.purchase.CreatePurchase(studentCtx, &core.CreatePurchaseReq{CourseID: c.ID})
	require.NoError(t, err)
	assert.Equal(t, consts.PurchaseStatusComplete, again.Purchase.Status)

	list, err := e.purchase.ListPurchases(studentCtx, &core.ListPurchasesReq{})
	require.NoError(t, err)
	assert.EqualValues(t, 1, list.Total)
	assert.Equal(t, again.Purchase.ID, list.Purchases[0].ID)

	// 讲师只入账一次
	assert.InDelta(t, 90, e.reloadUser(t, instructor.ID.Hex()).Wallet, 1e-9)
	rows, total, err := e.wallet.ListByUser(context.Background(), instructor.ID.Hex(), 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.InDelta(t, 90, rows[0].Amount, 1e-9)

	require.Eventually(t, func() bool { return len(e.sender.Sent()) > 0 }, time.Second, 10*time.Millisecond)
	sent := e.sender.Sent()
	assert.Len(t, sent, 1)
	assert.Equal(t, student.Email, sent[0].ToEmail)

	assert.Len(t, e.reloadCourse(t, c.ID).Students, 1)
}

func TestPurchaseEnrollsIntoRegularCourse(t *testing.T) {
	e := newTestEnv(t)
	instructor, student, _, studentCtx, c := e.enrolled(t, consts.CourseTypeRegular)

	p, err := e.purchases.FindOneByUserAndCourse(context.Background(), student.ID.Hex(), c.ID)
	require.NoError(t, err)
	assert.Equal(t, consts.PurchaseStatusComplete, p.Status)
	assert.Equal(t, 100.0, p.Amount)

	saved := e.reloadCourse(t, c.ID)
	assert.Contains(t, saved.Students, student.ID.Hex())
	assert.Contains(t, saved.Purchases, p.ID.Hex())

	s := e.reloadUser(t, student.ID.Hex())
	assert.Contains(t, s.EnrolledCourses, c.ID)
	assert.Contains(t, s.Purchases, p.ID.Hex())

	_, err = e.progress.FindOne(context.Background(), student.ID.Hex(), c.ID)
	require.NoError(t, err)

	// 群聊成员与用户引用双向一致
	room, err := e.rooms.FindOneByCourse(context.Background(), c.ID)
	require.NoError(t, err)
	assert.Equal(t, saved.ChatRoomID, room.ID.Hex())
	assert.ElementsMatch(t, []string{instructor.ID.Hex(), student.ID.Hex()}, room.Students)
	assert.Contains(t, s.JoinedChatRooms, room.ID.Hex())
	ins := e.reloadUser(t, instructor.ID.Hex())
	assert.Contains(t, ins.OwnChatRooms, room.ID.Hex())
	assert.Contains(t, ins.JoinedChatRooms, room.ID.Hex())

	private, err := e.privates.FindOneByTriple(context.Background(), c.ID, student.ID.Hex(), instructor.ID.Hex())
	require.NoError(t, err)
	assert.True(t, private.IsActive)
	assert.Contains(t, s.PrivateChatRooms, private.ID.Hex())
	assert.Contains(t, ins.PrivateChatRooms, private.ID.Hex())

	rooms, err := e.chat.ListMyChatRooms(studentCtx, &core.ListMyChatRoomsReq{})
	require.NoError(t, err)
	assert.Len(t, rooms.GroupRooms, 1)
	assert.Len(t, rooms.PrivateRooms, 1)
}

func TestPurchaseFAQCourseHasNoChat(t *testing.T) {
	e := newTestEnv(t)
	_, student, _, _, c := e.enrolled(t, consts.CourseTypeFAQ)

	p, err := e.purchases.FindOneByUserAndCourse(context.Background(), student.ID.Hex(), c.ID)
	require.NoError(t, err)
	assert.Equal(t, consts.PurchaseStatusComplete, p.Status)

	_, err = e.rooms.FindOneByCourse(context.Background(), c.ID)
	assert.ErrorIs(t, err, consts.ErrNotFound)
	privates, err := e.privates.FindByCourse(context.Background(), c.ID)
	require.NoError(t, err)
	assert.Empty(t, privates)

	s := e.reloadUser(t, student.ID.Hex())
	assert.Empty(t, s.JoinedChatRooms)
	assert.Empty(t, s.PrivateChatRooms)
	assert.Contains(t, s.EnrolledCourses, c.ID)
}

func TestCreatePurchaseRejections(t *testing.T) {
	e := newTestEnv(t)
	_, instructorCtx := e.newUser(t, "instructor-ext", consts.RoleInstructor)
	_, studentCtx := e.newUser(t, "student-ext", consts.RoleStudent)
	c := e.publishedCourse(t, instructorCtx, consts.CourseTypeRegular, 50)

	_, err := e.purchase.CreatePurchase(instructorCtx, &core.CreatePurchaseReq{CourseID: c.ID})
	assert.ErrorIs(t, err, consts.ErrPurchaseOwnCourse)

	draft, err := e.course.CreateCourse(instructorCtx, &core.CreateCourseReq{Title: "draft", Price: 10})
	require.NoError(t, err)
	_, err = e.purchase.CreatePurchase(studentCtx, &core.CreatePurchaseReq{CourseID: draft.Course.ID})
	assert.ErrorIs(t, err, consts.ErrNotFound)

	_, err = e.purchase.CreatePurchase(studentCtx, &core.CreatePurchaseReq{CourseID: primitive.NewObjectID().Hex()})
	assert.ErrorIs(t, err, consts.ErrNotFound)

	_, err = e.purchase.CreatePurchase(context.Background(), &core.CreatePurchaseReq{CourseID: c.ID})
	assert.ErrorIs(t, err, consts.ErrNotAuthentication)

	list, err := e.purchase.ListPurchases(studentCtx, &core.ListPurchasesReq{})
	require.NoError(t, err)
	assert.Zero(t, list.Total)
}

func TestRecoverPurchases(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	instructor, instructorCtx := e.newUser(t, "instructor-ext", consts.RoleInstructor)
	student, _ := e.newUser(t, "student-ext", consts.RoleStudent)
	c := e.publishedCourse(t, instructorCtx, consts.CourseTypeRegular, 200)

	stuck := &purchase.Purchase{
		UserID:   student.ID.Hex(),
		CourseID: c.ID,
		Amount:   200,
		Status:   consts.PurchaseStatusPending,
	}
	require.NoError(t, e.purchases.Insert(ctx, stuck))
	require.NoError(t, e.purchases.Touch(stuck.ID.Hex(), time.Now().Add(-time.Hour)))

	orphan := &purchase.Purchase{
		UserID:   student.ID.Hex(),
		CourseID: primitive.NewObjectID().Hex(),
		Status:   consts.PurchaseStatusPending,
	}
	require.NoError(t, e.purchases.Insert(ctx, orphan))
	require.NoError(t, e.purchases.Touch(orphan.ID.Hex(), time.Now().Add(-time.Hour)))

	n, err := e.purchase.RecoverPurchases(ctx, time.Now().Add(-time.Minute))
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	got, err := e.purchases.FindOne(ctx, stuck.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, consts.PurchaseStatusComplete, got.Status)
	assert.InDelta(t, 180, e.reloadUser(t, instructor.ID.Hex()).Wallet, 1e-9)
	assert.Contains(t, e.reloadCourse(t, c.ID).Students, student.ID.Hex())

	// 已完成的不会再被推进
	n, err = e.purchase.RecoverPurchases(ctx, time.Now().Add(time.Minute))
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.InDelta(t, 180, e.reloadUser(t, instructor.ID.Hex()).Wallet, 1e-9)
}

func TestRecoverPurchasesResumesFromChatStep(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	instructor, instructorCtx := e.newUser(t, "instructor-ext", consts.RoleInstructor)
	student, _ := e.newUser(t, "student-ext", consts.RoleStudent)
	c := e.publishedCourse(t, instructorCtx, consts.CourseTypeRegular, 100)

	// 报名已完成，私聊未建
	p := &purchase.Purchase{
		UserID:   student.ID.Hex(),
		CourseID: c.ID,
		Amount:   100,
		Status:   consts.PurchaseStatusEnrolled,
	}
	require.NoError(t, e.purchases.Insert(ctx, p))
	require.NoError(t, e.purchases.Touch(p.ID.Hex(), time.Now().Add(-time.Hour)))

	n, err := e.purchase.RecoverPurchases(ctx, time.Now().Add(-time.Minute))
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	_, err = e.privates.FindOneByTriple(ctx, c.ID, student.ID.Hex(), instructor.ID.Hex())
	require.NoError(t, err)
	// enroll 步骤已跳过，不重复入账
	assert.Zero(t, e.reloadUser(t, instructor.ID.Hex()).Wallet)
}

// flakyPurchases 第一次迁移到 failTo 时返回错误
type flakyPurchases struct {
	*purchase.MemoryMapper
	failTo string
	failed atomic.Bool
}

func (f *flakyPurchases) TransitStatus(ctx context.Context, id, from, to string) (bool, error) {
	if to == f.failTo && f.failed.CompareAndSwap(false, true) {
		return false, errors.New("i/o timeout")
	}
	return f.MemoryMapper.TransitStatus(ctx, id, from, to)
}

func TestRetriedPurchaseCreditsInstructorOnce(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	instructor, instructorCtx := e.newUser(t, "instructor-ext", consts.RoleInstructor)
	student, studentCtx := e.newUser(t, "student-ext", consts.RoleStudent)
	c := e.publishedCourse(t, instructorCtx, consts.CourseTypeFAQ, 100)
	e.purchase.PurchaseMapper = &flakyPurchases{MemoryMapper: e.purchases, failTo: consts.PurchaseStatusEnrolled}

	_, err := e.purchase.CreatePurchase(studentCtx, &core.CreatePurchaseReq{CourseID: c.ID})
	require.Error(t, err)
	assert.True(t, consts.IsRetryable(err))
	p, err := e.purchases.FindOneByUserAndCourse(ctx, student.ID.Hex(), c.ID)
	require.NoError(t, err)
	assert.Equal(t, consts.PurchaseStatusPending, p.Status)

	resp, err := e.purchase.CreatePurchase(studentCtx, &core.CreatePurchaseReq{CourseID: c.ID})
	require.NoError(t, err)
	assert.Equal(t, consts.PurchaseStatusComplete, resp.Purchase.Status)
	assert.InDelta(t, 90, e.reloadUser(t, instructor.ID.Hex()).Wallet, 1e-9)
	_, total, err := e.wallet.ListByUser(ctx, instructor.ID.Hex(), 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
}

func TestRecoveredPurchaseCreditsInstructorOnce(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	instructor, instructorCtx := e.newUser(t, "instructor-ext", consts.RoleInstructor)
	student, studentCtx := e.newUser(t, "student-ext", consts.RoleStudent)
	c := e.publishedCourse(t, instructorCtx, consts.CourseTypeRegular, 100)
	e.purchase.PurchaseMapper = &flakyPurchases{MemoryMapper: e.purchases, failTo: consts.PurchaseStatusEnrolled}

	_, err := e.purchase.CreatePurchase(studentCtx, &core.CreatePurchaseReq{CourseID: c.ID})
	require.Error(t, err)
	p, err := e.purchases.FindOneByUserAndCourse(ctx, student.ID.Hex(), c.ID)
	require.NoError(t, err)
	require.NoError(t, e.purchases.Touch(p.ID.Hex(), time.Now().Add(-time.Hour)))

	n, err := e.purchase.RecoverPurchases(ctx, time.Now().Add(-time.Minute))
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.InDelta(t, 90, e.reloadUser(t, instructor.ID.Hex()).Wallet, 1e-9)
	assert.Equal(t, []string{student.ID.Hex()}, e.reloadCourse(t, c.ID).Students)
}

func TestInstructorShare(t *testing.T) {
	assert.InDelta(t, 90, instructorShare(100), 1e-9)
	assert.InDelta(t, 0, instructorShare(0), 1e-9)
	assert.InDelta(t, 44.91, instructorShare(49.9), 1e-9)
}
