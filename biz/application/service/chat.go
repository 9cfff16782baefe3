package service

import (
	"context"
	"errors"
	"learnhub/biz/adaptor"
	"learnhub/biz/application/dto/learnhub/core"
	"learnhub/biz/infrastructure/config"
	"learnhub/biz/infrastructure/consts"
	"learnhub/biz/infrastructure/pubsub"
	"learnhub/biz/infrastructure/repository/chat"
	"learnhub/biz/infrastructure/repository/course"
	"learnhub/biz/infrastructure/repository/mongox"
	"learnhub/biz/infrastructure/repository/user"
	"learnhub/biz/infrastructure/util/log"

	"github.com/google/uuid"
	"github.com/google/wire"
	"github.com/samber/lo"
)

type IChatService interface {
	// CreateGroupChatRoom 创建课程群聊，讲师同时是管理员和成员
	CreateGroupChatRoom(ctx context.Context, courseID, instructorID string) (*chat.CourseChatRoom, error)
	// JoinChatRoom 用户与群聊的双向引用在同一事务中写入
	JoinChatRoom(ctx context.Context, userID, roomID string) error
	// EnsurePrivateChatRoom 幂等，已存在时返回已有房间
	EnsurePrivateChatRoom(ctx context.Context, courseID, studentID, instructorID string) (*chat.PrivateChatRoom, error)
	DeleteCourseChatRooms(ctx context.Context, courseID string) error

	CreatePrivateChatRoom(ctx context.Context, req *core.CreatePrivateChatRoomReq) (*core.CreatePrivateChatRoomResp, error)
	CreateMessage(ctx context.Context, req *core.CreateMessageReq) (*core.CreateMessageResp, error)
	CreatePrivateMessage(ctx context.Context, req *core.CreateMessageReq) (*core.CreateMessageResp, error)
	ListMessages(ctx context.Context, req *core.ListMessagesReq) (*core.ListMessagesResp, error)
	ListMyChatRooms(ctx context.Context, req *core.ListMyChatRoomsReq) (*core.ListMyChatRoomsResp, error)

	Authenticate(ctx context.Context, token string) (string, error)
	CanSubscribe(ctx context.Context, userID, channel string) bool
}

type ChatService struct {
	Config        *config.Config
	UserMapper    user.IMongoMapper
	CourseMapper  course.IMongoMapper
	RoomMapper    chat.IRoomMongoMapper
	PrivateMapper chat.IPrivateMongoMapper
	MessageMapper chat.IMessageMongoMapper
	Publisher     pubsub.IPublisher
	Transactor    mongox.ITransactor
}

var ChatServiceSet = wire.NewSet(
	wire.Struct(new(ChatService), "*"),
	wire.Bind(new(IChatService), new(*ChatService)),
)

func (s *ChatService) CreateGroupChatRoom(ctx context.Context, courseID, instructorID string) (*chat.CourseChatRoom, error) {
	room := &chat.CourseChatRoom{
		CourseID:        courseID,
		InstructorAdmin: instructorID,
		Students:        []string{},
		Messages:        []string{},
	}
	err := s.RoomMapper.Insert(ctx, room)
	if errors.Is(err, consts.ErrDuplicate) {
		// 并发报名时另一请求已建好群聊
		room, err = s.RoomMapper.FindOneByCourse(ctx, courseID)
	}
	if err != nil {
		log.CtxError(ctx, "创建群聊失败, courseId=%s, err=%v", courseID, err)
		return nil, consts.Upstream(err)
	}
	roomID := room.ID.Hex()

	err = s.Transactor.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.CourseMapper.SetChatRoom(ctx, courseID, roomID); err != nil {
			return err
		}
		if err := s.UserMapper.Push(ctx, instructorID, user.FieldOwnChatRooms, roomID); err != nil {
			return err
		}
		return s.JoinChatRoom(ctx, instructorID, roomID)
	})
	if err != nil {
		log.CtxError(ctx, "关联群聊失败, courseId=%s, roomId=%s, err=%v", courseID, roomID, err)
		return nil, consts.Upstream(err)
	}
	room.Students = lo.Uniq(append(room.Students, instructorID))
	return room, nil
}

func (s *ChatService) JoinChatRoom(ctx context.Context, userID, roomID string) error {
	return s.Transactor.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.RoomMapper.PushStudent(ctx, roomID, userID); err != nil {
			return err
		}
		return s.UserMapper.Push(ctx, userID, user.FieldJoinedChatRooms, roomID)
	})
}

func (s *ChatService) EnsurePrivateChatRoom(ctx context.Context, courseID, studentID, instructorID string) (*chat.PrivateChatRoom, error) {
	room, err := s.PrivateMapper.FindOneByTriple(ctx, courseID, studentID, instructorID)
	if errors.Is(err, consts.ErrNotFound) {
		room = &chat.PrivateChatRoom{
			CourseID:     courseID,
			StudentID:    studentID,
			InstructorID: instructorID,
			IsActive:     true,
			Messages:     []string{},
		}
		err = s.PrivateMapper.Insert(ctx, room)
		if errors.Is(err, consts.ErrDuplicate) {
			room, err = s.PrivateMapper.FindOneByTriple(ctx, courseID, studentID, instructorID)
		}
	}
	if err != nil {
		return nil, consts.Upstream(err)
	}

	// 已存在时也补齐双方引用
	roomID := room.ID.Hex()
	err = s.Transactor.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.UserMapper.Push(ctx, studentID, user.FieldPrivateChatRooms, roomID); err != nil {
			return err
		}
		return s.UserMapper.Push(ctx, instructorID, user.FieldPrivateChatRooms, roomID)
	})
	if err != nil {
		return nil, consts.Upstream(err)
	}
	return room, nil
}

func (s *ChatService) DeleteCourseChatRooms(ctx context.Context, courseID string) error {
	room, err := s.RoomMapper.FindOneByCourse(ctx, courseID)
	switch {
	case err == nil:
		roomID := room.ID.Hex()
		if err = s.UserMapper.PullFromAll(ctx, user.FieldJoinedChatRooms, roomID); err != nil {
			return consts.Upstream(err)
		}
		if err = s.UserMapper.PullFromAll(ctx, user.FieldOwnChatRooms, roomID); err != nil {
			return consts.Upstream(err)
		}
		if _, err = s.MessageMapper.DeleteByRoom(ctx, roomID); err != nil {
			return consts.Upstream(err)
		}
		if err = s.RoomMapper.Delete(ctx, roomID); err != nil && !errors.Is(err, consts.ErrNotFound) {
			return consts.Upstream(err)
		}
	case !errors.Is(err, consts.ErrNotFound):
		return consts.Upstream(err)
	}

	rooms, err := s.PrivateMapper.FindByCourse(ctx, courseID)
	if err != nil {
		return consts.Upstream(err)
	}
	for _, r := range rooms {
		roomID := r.ID.Hex()
		if err = s.UserMapper.PullFromAll(ctx, user.FieldPrivateChatRooms, roomID); err != nil {
			return consts.Upstream(err)
		}
		if _, err = s.MessageMapper.DeleteByRoom(ctx, roomID); err != nil {
			return consts.Upstream(err)
		}
		if err = s.PrivateMapper.Delete(ctx, roomID); err != nil && !errors.Is(err, consts.ErrNotFound) {
			return consts.Upstream(err)
		}
	}
	return nil
}

// CreatePrivateChatRoom 已报名学生与讲师的私聊
func (s *ChatService) CreatePrivateChatRoom(ctx context.Context, req *core.CreatePrivateChatRoomReq) (*core.CreatePrivateChatRoomResp, error) {
	u, err := currentUser(ctx, s.UserMapper)
	if err != nil {
		return nil, err
	}
	c, err := findCourse(ctx, s.CourseMapper, req.CourseID)
	if err != nil {
		return nil, err
	}
	if !lo.Contains(c.Students, u.ID.Hex()) {
		return nil, consts.ErrNotEnrolled
	}
	room, err := s.EnsurePrivateChatRoom(ctx, c.ID.Hex(), u.ID.Hex(), c.InstructorID)
	if err != nil {
		return nil, err
	}
	return &core.CreatePrivateChatRoomResp{Room: toDTO[core.PrivateChatRoom](room)}, nil
}

func (s *ChatService) CreateMessage(ctx context.Context, req *core.CreateMessageReq) (*core.CreateMessageResp, error) {
	u, err := currentUser(ctx, s.UserMapper)
	if err != nil {
		return nil, err
	}
	room, err := s.RoomMapper.FindOne(ctx, req.RoomID)
	if err != nil {
		return nil, notFoundOr(err)
	}
	if !isGroupMember(room, u.ID.Hex()) {
		return nil, consts.ErrNotRoomMember
	}
	members := append([]string{room.InstructorAdmin}, room.Students...)
	msg, err := s.sendMessage(ctx, consts.RoomTypeGroup, u.ID.Hex(), members, req, s.RoomMapper.PushMessage)
	if err != nil {
		return nil, err
	}
	return &core.CreateMessageResp{Message: msg}, nil
}

func (s *ChatService) CreatePrivateMessage(ctx context.Context, req *core.CreateMessageReq) (*core.CreateMessageResp, error) {
	u, err := currentUser(ctx, s.UserMapper)
	if err != nil {
		return nil, err
	}
	room, err := s.PrivateMapper.FindOne(ctx, req.RoomID)
	if err != nil {
		return nil, notFoundOr(err)
	}
	if !isParticipant(room, u.ID.Hex()) {
		return nil, consts.ErrNotRoomMember
	}
	members := []string{room.StudentID, room.InstructorID}
	msg, err := s.sendMessage(ctx, consts.RoomTypePrivate, u.ID.Hex(), members, req, s.PrivateMapper.PushMessage)
	if err != nil {
		return nil, err
	}
	return &core.CreateMessageResp{Message: msg}, nil
}

// sendMessage 先写入消息并追加到房间历史，再推送到房间频道和除发送者外每个成员的未读频道
func (s *ChatService) sendMessage(ctx context.Context, roomType, senderID string, members []string, req *core.CreateMessageReq,
	appendToRoom func(ctx context.Context, roomID, messageID string) error) (*core.Message, error) {
	clientID := req.ClientID
	if clientID == "" {
		clientID = uuid.NewString()
	}
	msg := &chat.Message{
		RoomID:   req.RoomID,
		RoomType: roomType,
		SenderID: senderID,
		Content:  req.Content,
		ClientID: clientID,
	}
	err := s.Transactor.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.MessageMapper.Insert(ctx, msg); err != nil {
			return err
		}
		return appendToRoom(ctx, req.RoomID, msg.ID.Hex())
	})
	if err != nil {
		log.CtxError(ctx, "保存消息失败, roomId=%s, err=%v", req.RoomID, err)
		return nil, consts.Upstream(err)
	}

	dto := toDTO[core.Message](msg)
	bestEffort(ctx, "publish upcoming message",
		s.Publisher.Publish(ctx, req.RoomID, consts.EventUpcomingMessage, dto))
	unread := &core.UnreadMessage{UnreadMessage: dto, RoomID: req.RoomID}
	for _, member := range lo.Uniq(lo.Without(members, senderID, "")) {
		bestEffort(ctx, "publish unread message",
			s.Publisher.Publish(ctx, s.Config.PubSub.UnreadChannelOf(member), consts.EventUnreadMessages, unread))
	}
	return dto, nil
}

func (s *ChatService) ListMessages(ctx context.Context, req *core.ListMessagesReq) (*core.ListMessagesResp, error) {
	u, err := currentUser(ctx, s.UserMapper)
	if err != nil {
		return nil, err
	}
	if !s.isMember(ctx, u.ID.Hex(), req.RoomID, req.RoomType) {
		return nil, consts.ErrNotRoomMember
	}
	p := req.PaginationOptions
	messages, total, err := s.MessageMapper.FindByRoom(ctx, req.RoomID, p.GetPage(), p.GetLimit())
	if err != nil {
		return nil, consts.Upstream(err)
	}
	return &core.ListMessagesResp{
		Messages: toDTOs[core.Message](messages),
		Total:    total,
	}, nil
}

func (s *ChatService) ListMyChatRooms(ctx context.Context, _ *core.ListMyChatRoomsReq) (*core.ListMyChatRoomsResp, error) {
	u, err := currentUser(ctx, s.UserMapper)
	if err != nil {
		return nil, err
	}
	resp := &core.ListMyChatRoomsResp{
		GroupRooms:   make([]*core.ChatRoom, 0),
		PrivateRooms: make([]*core.PrivateChatRoom, 0),
	}
	for _, id := range lo.Uniq(append(append([]string{}, u.OwnChatRooms...), u.JoinedChatRooms...)) {
		room, err := s.RoomMapper.FindOne(ctx, id)
		if err != nil {
			log.CtxInfo(ctx, "skip group room %s, err=%v", id, err)
			continue
		}
		resp.GroupRooms = append(resp.GroupRooms, toDTO[core.ChatRoom](room))
	}
	for _, id := range u.PrivateChatRooms {
		room, err := s.PrivateMapper.FindOne(ctx, id)
		if err != nil {
			log.CtxInfo(ctx, "skip private room %s, err=%v", id, err)
			continue
		}
		resp.PrivateRooms = append(resp.PrivateRooms, toDTO[core.PrivateChatRoom](room))
	}
	return resp, nil
}

// Authenticate websocket 连接鉴权，返回内部用户ID
func (s *ChatService) Authenticate(ctx context.Context, token string) (string, error) {
	meta, err := adaptor.ParseUserMeta(token)
	if err != nil {
		return "", err
	}
	u, err := currentUser(adaptor.WithUserMeta(ctx, meta), s.UserMapper)
	if err != nil {
		return "", err
	}
	return u.ID.Hex(), nil
}

// CanSubscribe 频道名即房间ID，群聊和私聊都要求是成员
func (s *ChatService) CanSubscribe(ctx context.Context, userID, channel string) bool {
	return s.isMember(ctx, userID, channel, "")
}

// isMember roomType 为空时两类房间都尝试
func (s *ChatService) isMember(ctx context.Context, userID, roomID, roomType string) bool {
	if roomType != consts.RoomTypePrivate {
		if room, err := s.RoomMapper.FindOne(ctx, roomID); err == nil {
			return isGroupMember(room, userID)
		}
	}
	if roomType != consts.RoomTypeGroup {
		if room, err := s.PrivateMapper.FindOne(ctx, roomID); err == nil {
			return isParticipant(room, userID)
		}
	}
	return false
}

func isGroupMember(room *chat.CourseChatRoom, userID string) bool {
	return room.InstructorAdmin == userID || lo.Contains(room.Students, userID)
}

func isParticipant(room *chat.PrivateChatRoom, userID string) bool {
	return room.StudentID == userID || room.InstructorID == userID
}
