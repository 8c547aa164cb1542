package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/hugohenrick/erp-condominio/pkg/logger"
	"github.com/stretchr/testify/assert"
)

type countingSweeper struct {
	calls atomic.Int32
	err   error
}

func (s *countingSweeper) SweepOverdue(_ context.Context, asOf time.Time) (int64, error) {
	s.calls.Add(1)
	if !asOf.IsZero() {
		return 0, errors.New("asOf deveria ser zero")
	}
	return 1, s.err
}

func TestAgingWorkerSweepsOnStartAndOnTick(t *testing.T) {
	s := &countingSweeper{}
	w := NewAgingWorker(s, 10*time.Millisecond, logger.NewNop())
	w.Start()

	assert.Eventually(t, func() bool { return s.calls.Load() >= 3 }, time.Second, 5*time.Millisecond)
	w.Shutdown()

	stopped := s.calls.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, stopped, s.calls.Load())
}

func TestAgingWorkerKeepsRunningAfterError(t *testing.T) {
	s := &countingSweeper{err: errors.New("banco indisponível")}
	w := NewAgingWorker(s, 10*time.Millisecond, logger.NewNop())
	w.Start()
	defer w.Shutdown()

	assert.Eventually(t, func() bool { return s.calls.Load() >= 2 }, time.Second, 5*time.Millisecond)
}

func TestAgingWorkerDefaultInterval(t *testing.T) {
	w := NewAgingWorker(&countingSweeper{}, 0, logger.NewNop())
	assert.Equal(t, time.Hour, w.interval)
}
