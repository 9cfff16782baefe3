package wallet

import (
	"context"
	"sync"
	"time"

	"github.com/samber/lo"
)

type MemoryMapper struct {
	mu   sync.Mutex
	rows []*Transaction
}

func NewMemoryMapper() *MemoryMapper {
	return &MemoryMapper{}
}

func (m *MemoryMapper) Insert(_ context.Context, t *Transaction) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if lo.ContainsBy(m.rows, func(r *Transaction) bool { return r.PurchaseID == t.PurchaseID }) {
		return false, nil
	}
	if t.CreateTime.IsZero() {
		t.CreateTime = time.Now()
	}
	t.ID = int64(len(m.rows) + 1)
	row := *t
	m.rows = append(m.rows, &row)
	return true, nil
}

func (m *MemoryMapper) ListByUser(_ context.Context, userID string, page, pageSize int64) ([]*Transaction, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	mine := lo.Reverse(lo.Filter(m.rows, func(r *Transaction, _ int) bool { return r.UserID == userID }))
	total := int64(len(mine))
	chunk := lo.Subset(mine, int((page-1)*pageSize), uint(pageSize))
	return lo.Map(chunk, func(r *Transaction, _ int) *Transaction {
		c := *r
		return &c
	}), total, nil
}
