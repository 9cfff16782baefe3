// Package job 定时任务
package job

import (
	"context"
	"learnhub/biz/infrastructure/config"
	"learnhub/biz/infrastructure/util/log"
	"time"

	"github.com/robfig/cron/v3"
)

// Recoverer 恢复停在中间状态的购买
type Recoverer interface {
	RecoverPurchases(ctx context.Context, before time.Time) (int, error)
}

type Scheduler struct {
	cron *cron.Cron
}

func NewScheduler(config *config.Config, r Recoverer) (*Scheduler, error) {
	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)))
	after := time.Duration(config.Job.RecoverAfter) * time.Second
	_, err := c.AddFunc(config.Job.Spec(), func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		n, err := r.RecoverPurchases(ctx, time.Now().Add(-after))
		if err != nil {
			log.Error("recover purchases failed: %v", err)
			return
		}
		if n > 0 {
			log.Info("recovered %d purchases", n)
		}
	})
	if err != nil {
		return nil, err
	}
	return &Scheduler{cron: c}, nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop 等待正在执行的任务结束
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}
