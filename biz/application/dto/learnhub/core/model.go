// Package core 对外接口的请求与响应
package core

type UserInfo struct {
	ID               string   `json:"id"`
	ExternalID       string   `json:"externalId"`
	Username         string   `json:"username"`
	Email            string   `json:"email"`
	Picture          string   `json:"picture"`
	Role             string   `json:"role"`
	Wallet           float64  `json:"wallet"`
	Interests        []string `json:"interests"`
	CreatedCourses   []string `json:"createdCourses"`
	EnrolledCourses  []string `json:"enrolledCourses"`
	OwnChatRooms     []string `json:"ownChatRooms"`
	JoinedChatRooms  []string `json:"joinedChatRooms"`
	PrivateChatRooms []string `json:"privateChatRooms"`
	Purchases        []string `json:"purchases"`
	CreateTime       int64    `json:"createTime"`
}

type Category struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Courses    []string `json:"courses"`
	CreateTime int64    `json:"createTime"`
}

type Course struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Subtitle     string   `json:"subtitle"`
	Description  string   `json:"description"`
	ImageKey     string   `json:"imageKey"`
	Price        float64  `json:"price"`
	Currency     string   `json:"currency"`
	Language     string   `json:"language"`
	Level        string   `json:"level"`
	Status       string   `json:"status"`
	CourseType   string   `json:"courseType"`
	IsPublished  bool     `json:"isPublished"`
	FaqVideoKey  string   `json:"faqVideoKey"`
	CategoryID   string   `json:"categoryId"`
	InstructorID string   `json:"instructorId"`
	Sections     []string `json:"sections"`
	Students     []string `json:"students"`
	Comments     []string `json:"comments"`
	Feedbacks    []string `json:"feedbacks"`
	ChatRoomID   string   `json:"chatRoomId,omitempty"`
	CreateTime   int64    `json:"createTime"`
	UpdateTime   int64    `json:"updateTime"`
}

type Section struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Position    int64    `json:"position"`
	CourseID    string   `json:"courseId"`
	IsPublished bool     `json:"isPublished"`
	Videos      []string `json:"videos"`
	Attachments []string `json:"attachments"`
}

type MuxData struct {
	AssetID    string `json:"assetId"`
	PlaybackID string `json:"playbackId"`
}

type Video struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Position    int64    `json:"position"`
	SectionID   string   `json:"sectionId"`
	CourseID    string   `json:"courseId"`
	IsPublished bool     `json:"isPublished"`
	IsFree      bool     `json:"isFree"`
	AssetKey    string   `json:"assetKey"`
	MuxData     *MuxData `json:"muxData,omitempty"`
}

type Attachment struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	AssetKey  string `json:"assetKey"`
	Position  int64  `json:"position"`
	SectionID string `json:"sectionId"`
}

// SectionDetail 章节及其下按 position 排好序的内容
type SectionDetail struct {
	Section     *Section      `json:"section"`
	Videos      []*Video      `json:"videos"`
	Attachments []*Attachment `json:"attachments"`
}

// CourseDetail 课程详情页，整体缓存
type CourseDetail struct {
	Course        *Course          `json:"course"`
	Sections      []*SectionDetail `json:"sections"`
	AverageRating float64          `json:"averageRating"`
}

type Comment struct {
	ID         string   `json:"id"`
	Title      string   `json:"title"`
	Content    string   `json:"content"`
	UserID     string   `json:"userId"`
	CourseID   string   `json:"courseId"`
	Replies    []string `json:"replies"`
	CreateTime int64    `json:"createTime"`
}

type Reply struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Content    string `json:"content"`
	UserID     string `json:"userId"`
	CommentID  string `json:"commentId"`
	CreateTime int64  `json:"createTime"`
}

type CommentDetail struct {
	Comment *Comment `json:"comment"`
	Replies []*Reply `json:"replies"`
}

type ChatRoom struct {
	ID              string   `json:"id"`
	CourseID        string   `json:"courseId"`
	InstructorAdmin string   `json:"instructorAdmin"`
	Students        []string `json:"students"`
	CreateTime      int64    `json:"createTime"`
}

type PrivateChatRoom struct {
	ID           string `json:"id"`
	CourseID     string `json:"courseId"`
	StudentID    string `json:"studentId"`
	InstructorID string `json:"instructorId"`
	IsActive     bool   `json:"isActive"`
	CreateTime   int64  `json:"createTime"`
}

type Message struct {
	ID         string `json:"id"`
	RoomID     string `json:"roomId"`
	RoomType   string `json:"roomType"`
	SenderID   string `json:"senderId"`
	Content    string `json:"content"`
	ClientID   string `json:"clientId"`
	CreateTime int64  `json:"createTime"`
}

type Purchase struct {
	ID         string  `json:"id"`
	UserID     string  `json:"userId"`
	CourseID   string  `json:"courseId"`
	Amount     float64 `json:"amount"`
	Currency   string  `json:"currency"`
	Status     string  `json:"status"`
	CreateTime int64   `json:"createTime"`
}

type Feedback struct {
	ID         string `json:"id"`
	UserID     string `json:"userId"`
	CourseID   string `json:"courseId"`
	Rating     int64  `json:"rating"`
	Comment    string `json:"comment"`
	CreateTime int64  `json:"createTime"`
}

type WalletTransaction struct {
	ID         int64   `json:"id"`
	PurchaseID string  `json:"purchaseId"`
	CourseID   string  `json:"courseId"`
	Amount     float64 `json:"amount"`
	Currency   string  `json:"currency"`
	CreateTime int64   `json:"createTime"`
}
