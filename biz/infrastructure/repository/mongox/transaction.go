package mongox

import (
	"context"
	"learnhub/biz/infrastructure/config"

	"github.com/zeromicro/go-zero/core/stores/mon"
	"go.mongodb.org/mongo-driver/mongo"
)

// ITransactor 在一个事务内执行多文档写入
type ITransactor interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// Transactor 基于 mongo 会话的多文档事务，要求副本集部署；
// 未开启时直接执行 fn，此时多文档写入不具备原子性
type Transactor struct {
	model   *mon.Model
	enabled bool
}

func NewTransactor(config *config.Config) *Transactor {
	if config.IsMemory() || !config.Mongo.Transaction {
		return &Transactor{}
	}
	// mon 按 URL 复用同一个 client，会话对所有 monc.Model 都有效
	return &Transactor{
		model:   mon.MustNewModel(config.Mongo.URL, config.Mongo.DB, "user"),
		enabled: true,
	}
}

func (t *Transactor) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	// 已在事务中时复用外层事务
	if !t.enabled || mongo.SessionFromContext(ctx) != nil {
		return fn(ctx)
	}
	sess, err := t.model.StartSession()
	if err != nil {
		return err
	}
	defer sess.EndSession(ctx)

	_, err = sess.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (any, error) {
		return nil, fn(sessCtx)
	})
	return err
}
