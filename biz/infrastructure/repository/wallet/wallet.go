package wallet

import (
	"context"
	"time"
)

// Transaction 讲师钱包流水，每笔购买最多一条
type Transaction struct {
	ID         int64     `db:"id" json:"id"`
	UserID     string    `db:"user_id" json:"userId"`
	PurchaseID string    `db:"purchase_id" json:"purchaseId"`
	CourseID   string    `db:"course_id" json:"courseId"`
	Amount     float64   `db:"amount" json:"amount"`
	Currency   string    `db:"currency" json:"currency"`
	CreateTime time.Time `db:"create_time" json:"createTime"`
}

type IMapper interface {
	// Insert 同一 purchase 重复写入时忽略，返回是否新写入
	Insert(ctx context.Context, t *Transaction) (bool, error)
	ListByUser(ctx context.Context, userID string, page, pageSize int64) ([]*Transaction, int64, error)
}
