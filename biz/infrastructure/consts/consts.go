package consts

var PageSize int64 = 10

// 数据库相关
const (
	ID         = "_id"
	UserID     = "user_id"
	CourseID   = "course_id"
	ExternalID = "external_id"
	Status     = "status"
	Position   = "position"
	CreateTime = "create_time"
	UpdateTime = "update_time"
	NotEqual   = "$ne"
	AddToSet   = "$addToSet"
	Pull       = "$pull"
	Set        = "$set"
	Inc        = "$inc"
)

// 用户角色
const (
	RoleStudent    = "student"
	RoleInstructor = "instructor"
	RoleAdmin      = "admin"
)

// 课程状态
const (
	CourseStatusDraft    = "draft"
	CourseStatusPending  = "pending"
	CourseStatusApproved = "approved"
	CourseStatusRejected = "rejected"
)

// 课程类型, FAQ 类型没有群聊
const (
	CourseTypeRegular = "regular"
	CourseTypeFAQ     = "faq"
)

// 购买流程状态
const (
	PurchaseStatusPending         = "pending"
	PurchaseStatusEnrolled        = "enrolled"
	PurchaseStatusChatProvisioned = "chat_provisioned"
	PurchaseStatusComplete        = "complete"
)

// 消息所属房间类型
const (
	RoomTypeGroup   = "group"
	RoomTypePrivate = "private"
)

// 推送事件
const (
	EventUpcomingMessage = "upcoming-message"
	EventUnreadMessages  = "unread-messages"
)

// 默认值
const (
	// PlatformFeeRate 平台抽成比例
	PlatformFeeRate = 0.1
	MaxRating       = 5
	MinRating       = 0
	DefaultCurrency = "USD"
)

// http
const (
	ContentTypeJson = "application/json"
	CharSetUTF8     = "UTF-8"
)
