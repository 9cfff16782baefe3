package service

import (
	"context"
	"testing"

	"learnhub/biz/application/dto/learnhub/core"
	"learnhub/biz/infrastructure/consts"

	"github.com/bytedance/sonic"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJoinChatRoomIsSymmetricAndIdempotent(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	_, instructorCtx := e.newUser(t, "instructor-ext", consts.RoleInstructor)
	member, _ := e.newUser(t, "member-ext", consts.RoleStudent)

	resp, err := e.course.CreateCourse(instructorCtx, &core.CreateCourseReq{Title: "chat", Price: 1})
	require.NoError(t, err)
	roomID := resp.Course.ChatRoomID
	require.NotEmpty(t, roomID)

	require.NoError(t, e.chat.JoinChatRoom(ctx, member.ID.Hex(), roomID))
	require.NoError(t, e.chat.JoinChatRoom(ctx, member.ID.Hex(), roomID))

	room, err := e.rooms.FindOne(ctx, roomID)
	require.NoError(t, err)
	assert.Equal(t, 1, lo.Count(room.Students, member.ID.Hex()))
	assert.Equal(t, []string{roomID}, e.reloadUser(t, member.ID.Hex()).JoinedChatRooms)
}

func TestCreateGroupChatRoomReturnsExisting(t *testing.T) {
	e := newTestEnv(t)
	instructor, instructorCtx := e.newUser(t, "instructor-ext", consts.RoleInstructor)
	resp, err := e.course.CreateCourse(instructorCtx, &core.CreateCourseReq{Title: "chat", Price: 1})
	require.NoError(t, err)

	room, err := e.chat.CreateGroupChatRoom(context.Background(), resp.Course.ID, instructor.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, resp.Course.ChatRoomID, room.ID.Hex())
	assert.Equal(t, instructor.ID.Hex(), room.InstructorAdmin)
	assert.Equal(t, []string{room.ID.Hex()}, e.reloadUser(t, instructor.ID.Hex()).OwnChatRooms)
}

func TestCreatePrivateChatRoom(t *testing.T) {
	e := newTestEnv(t)
	instructor, student, _, studentCtx, c := e.enrolled(t, consts.CourseTypeRegular)
	_, outsiderCtx := e.newUser(t, "outsider-ext", consts.RoleStudent)

	_, err := e.chat.CreatePrivateChatRoom(outsiderCtx, &core.CreatePrivateChatRoomReq{CourseID: c.ID})
	assert.ErrorIs(t, err, consts.ErrNotEnrolled)

	first, err := e.chat.CreatePrivateChatRoom(studentCtx, &core.CreatePrivateChatRoomReq{CourseID: c.ID})
	require.NoError(t, err)
	second, err := e.chat.CreatePrivateChatRoom(studentCtx, &core.CreatePrivateChatRoomReq{CourseID: c.ID})
	require.NoError(t, err)
	assert.Equal(t, first.Room.ID, second.Room.ID)
	assert.Equal(t, instructor.ID.Hex(), first.Room.InstructorID)

	rooms, err := e.privates.FindByCourse(context.Background(), c.ID)
	require.NoError(t, err)
	assert.Len(t, rooms, 1)
	assert.Equal(t, []string{first.Room.ID}, e.reloadUser(t, student.ID.Hex()).PrivateChatRooms)
	assert.Equal(t, []string{first.Room.ID}, e.reloadUser(t, instructor.ID.Hex()).PrivateChatRooms)
}

func TestCreateMessagePublishesAfterAppend(t *testing.T) {
	e := newTestEnv(t)
	instructor, student, instructorCtx, studentCtx, c := e.enrolled(t, consts.CourseTypeRegular)
	_, outsiderCtx := e.newUser(t, "outsider-ext", consts.RoleStudent)
	roomID := e.reloadCourse(t, c.ID).ChatRoomID

	resp, err := e.chat.CreateMessage(studentCtx, &core.CreateMessageReq{RoomID: roomID, Content: "hello", ClientID: "c-1"})
	require.NoError(t, err)
	assert.Equal(t, student.ID.Hex(), resp.Message.SenderID)
	assert.Equal(t, consts.RoomTypeGroup, resp.Message.RoomType)
	assert.Equal(t, "c-1", resp.Message.ClientID)

	room, err := e.rooms.FindOne(context.Background(), roomID)
	require.NoError(t, err)
	assert.Equal(t, []string{resp.Message.ID}, room.Messages)

	events := e.sink.all()
	require.Len(t, events, 2)
	assert.Equal(t, roomID, events[0].channel)
	assert.Equal(t, consts.EventUpcomingMessage, events[0].event)
	var upcoming core.Message
	require.NoError(t, sonic.Unmarshal(events[0].data, &upcoming))
	assert.Equal(t, "hello", upcoming.Content)

	// 未读事件只发给发送者以外的成员
	assert.Equal(t, "unread-messages:"+instructor.ID.Hex(), events[1].channel)
	assert.Equal(t, consts.EventUnreadMessages, events[1].event)
	var unread core.UnreadMessage
	require.NoError(t, sonic.Unmarshal(events[1].data, &unread))
	assert.Equal(t, roomID, unread.RoomID)
	assert.Equal(t, resp.Message.ID, unread.UnreadMessage.ID)

	_, err = e.chat.CreateMessage(outsiderCtx, &core.CreateMessageReq{RoomID: roomID, Content: "spam"})
	assert.ErrorIs(t, err, consts.ErrNotRoomMember)
	assert.Len(t, e.sink.all(), 2)

	list, err := e.chat.ListMessages(instructorCtx, &core.ListMessagesReq{RoomID: roomID, RoomType: consts.RoomTypeGroup})
	require.NoError(t, err)
	assert.EqualValues(t, 1, list.Total)
	_, err = e.chat.ListMessages(outsiderCtx, &core.ListMessagesReq{RoomID: roomID})
	assert.ErrorIs(t, err, consts.ErrNotRoomMember)
}

func TestCreatePrivateMessage(t *testing.T) {
	e := newTestEnv(t)
	instructor, student, instructorCtx, studentCtx, c := e.enrolled(t, consts.CourseTypeRegular)
	_, outsiderCtx := e.newUser(t, "outsider-ext", consts.RoleStudent)
	private, err := e.privates.FindOneByTriple(context.Background(), c.ID, student.ID.Hex(), instructor.ID.Hex())
	require.NoError(t, err)
	roomID := private.ID.Hex()

	before := len(e.sink.all())
	resp, err := e.chat.CreatePrivateMessage(instructorCtx, &core.CreateMessageReq{RoomID: roomID, Content: "welcome"})
	require.NoError(t, err)
	assert.Equal(t, consts.RoomTypePrivate, resp.Message.RoomType)
	assert.NotEmpty(t, resp.Message.ClientID)

	events := e.sink.all()[before:]
	require.Len(t, events, 2)
	assert.Equal(t, roomID, events[0].channel)
	assert.Equal(t, "unread-messages:"+student.ID.Hex(), events[1].channel)

	_, err = e.chat.CreatePrivateMessage(outsiderCtx, &core.CreateMessageReq{RoomID: roomID, Content: "hi"})
	assert.ErrorIs(t, err, consts.ErrNotRoomMember)

	// 群聊ID不能当作私聊使用
	_, err = e.chat.CreatePrivateMessage(studentCtx, &core.CreateMessageReq{RoomID: e.reloadCourse(t, c.ID).ChatRoomID, Content: "hi"})
	assert.ErrorIs(t, err, consts.ErrNotFound)

	list, err := e.chat.ListMessages(studentCtx, &core.ListMessagesReq{RoomID: roomID})
	require.NoError(t, err)
	require.Len(t, list.Messages, 1)
	assert.Equal(t, "welcome", list.Messages[0].Content)

	assert.True(t, e.chat.CanSubscribe(context.Background(), student.ID.Hex(), roomID))
	assert.False(t, e.chat.CanSubscribe(context.Background(), "someone-else", roomID))
}
