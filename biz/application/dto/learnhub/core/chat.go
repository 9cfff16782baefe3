package core

import "learnhub/biz/application/dto/basic"

type CreatePrivateChatRoomReq struct {
	CourseID string `json:"courseId" vd:"len($)>0"`
}

type CreatePrivateChatRoomResp struct {
	Room *PrivateChatRoom `json:"room"`
}

type CreateMessageReq struct {
	RoomID   string `json:"roomId" vd:"len($)>0"`
	Content  string `json:"content" vd:"len($)>0"`
	ClientID string `json:"clientId"`
}

type CreateMessageResp struct {
	Message *Message `json:"message"`
}

type ListMessagesReq struct {
	RoomID            string                   `json:"roomId" query:"roomId" vd:"len($)>0"`
	RoomType          string                   `json:"roomType" query:"roomType"`
	PaginationOptions *basic.PaginationOptions `json:"paginationOptions"`
}

type ListMessagesResp struct {
	Messages []*Message `json:"messages"`
	Total    int64      `json:"total"`
}

type ListMyChatRoomsReq struct{}

type ListMyChatRoomsResp struct {
	GroupRooms   []*ChatRoom        `json:"groupRooms"`
	PrivateRooms []*PrivateChatRoom `json:"privateRooms"`
}

// UnreadMessage 全局未读频道中的事件数据
type UnreadMessage struct {
	UnreadMessage *Message `json:"unreadMessage"`
	RoomID        string   `json:"roomId"`
}
