package job

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"learnhub/biz/infrastructure/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingRecoverer struct {
	calls  atomic.Int32
	before atomic.Value
}

func (r *countingRecoverer) RecoverPurchases(_ context.Context, before time.Time) (int, error) {
	r.calls.Add(1)
	r.before.Store(before)
	return 1, nil
}

func TestNewSchedulerRejectsBadSpec(t *testing.T) {
	c := &config.Config{Job: config.JobConfig{RecoverSpec: "not a spec", RecoverAfter: 60}}
	_, err := NewScheduler(c, &countingRecoverer{})
	assert.Error(t, err)
}

func TestNewSchedulerDefaultSpec(t *testing.T) {
	c := &config.Config{Job: config.JobConfig{RecoverAfter: 60}}
	assert.Equal(t, "@every 1m", c.Job.Spec())
	_, err := NewScheduler(c, &countingRecoverer{})
	require.NoError(t, err)
}

func TestSchedulerRunsRecovery(t *testing.T) {
	r := &countingRecoverer{}
	c := &config.Config{Job: config.JobConfig{RecoverSpec: "@every 1s", RecoverAfter: 60}}
	s, err := NewScheduler(c, r)
	require.NoError(t, err)

	s.Start()
	defer s.Stop()
	require.Eventually(t, func() bool { return r.calls.Load() > 0 }, 3*time.Second, 50*time.Millisecond)

	// 只恢复超过 RecoverAfter 的购买
	before := r.before.Load().(time.Time)
	assert.WithinDuration(t, time.Now().Add(-time.Minute), before, 5*time.Second)
}
