package user

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// 反向引用字段
const (
	FieldCreatedCourses   = "created_courses"
	FieldEnrolledCourses  = "enrolled_courses"
	FieldOwnChatRooms     = "own_chat_rooms"
	FieldJoinedChatRooms  = "joined_chat_rooms"
	FieldPrivateChatRooms = "private_chat_rooms"
	FieldPurchases        = "purchases"
)

type User struct {
	ID primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	// ExternalID 身份提供方的用户ID
	ExternalID string   `bson:"external_id" json:"externalId"`
	Username   string   `bson:"username" json:"username"`
	Email      string   `bson:"email" json:"email"`
	Picture    string   `bson:"picture" json:"picture"`
	Role       string   `bson:"role" json:"role"`
	Wallet     float64  `bson:"wallet" json:"wallet"`
	Interests  []string `bson:"interests" json:"interests"`

	CreatedCourses   []string `bson:"created_courses" json:"createdCourses"`
	EnrolledCourses  []string `bson:"enrolled_courses" json:"enrolledCourses"`
	OwnChatRooms     []string `bson:"own_chat_rooms" json:"ownChatRooms"`
	JoinedChatRooms  []string `bson:"joined_chat_rooms" json:"joinedChatRooms"`
	PrivateChatRooms []string `bson:"private_chat_rooms" json:"privateChatRooms"`
	Purchases        []string `bson:"purchases" json:"purchases"`
	// CreditedPurchases 已入账的购买ID，保证同一笔购买只入账一次
	CreditedPurchases []string `bson:"credited_purchases" json:"-"`

	CreateTime time.Time `bson:"create_time" json:"createTime"`
	UpdateTime time.Time `bson:"update_time" json:"updateTime"`
}

// Refs 返回字段对应的引用列表，未知字段返回 nil
func (u *User) Refs(field string) *[]string {
	switch field {
	case FieldCreatedCourses:
		return &u.CreatedCourses
	case FieldEnrolledCourses:
		return &u.EnrolledCourses
	case FieldOwnChatRooms:
		return &u.OwnChatRooms
	case FieldJoinedChatRooms:
		return &u.JoinedChatRooms
	case FieldPrivateChatRooms:
		return &u.PrivateChatRooms
	case FieldPurchases:
		return &u.Purchases
	}
	return nil
}

type IMongoMapper interface {
	Insert(ctx context.Context, u *User) error
	// Update 只写资料字段，钱包与引用数组由各自的原子操作维护
	Update(ctx context.Context, u *User) error
	FindOne(ctx context.Context, id string) (*User, error)
	FindOneByExternalID(ctx context.Context, externalID string) (*User, error)
	// Push 以 $addToSet 追加引用
	Push(ctx context.Context, id, field, ref string) error
	Pull(ctx context.Context, id, field, ref string) error
	// PullFromAll 从所有用户的引用列表中移除 ref
	PullFromAll(ctx context.Context, field, ref string) error
	// CreditWallet 按购买入账，同一 purchaseID 只生效一次，重复调用返回 false
	CreditWallet(ctx context.Context, id, purchaseID string, amount float64) (bool, error)
}
