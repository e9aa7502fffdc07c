package scheduler

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

type Promoter interface {
	PromoteAssignedOrders(ctx context.Context) (int, error)
}

// Scheduler periodically promotes assigned orders to cooking.
type Scheduler struct {
	promoter Promoter
	interval time.Duration
	log      *zap.Logger
	stopCh   chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

func NewScheduler(promoter Promoter, interval time.Duration, log *zap.Logger) *Scheduler {
	return &Scheduler{
		promoter: promoter,
		interval: interval,
		log:      log,
		stopCh:   make(chan struct{}),
	}
}

// Start запускает планировщик; интервал <= 0 отключает его
func (s *Scheduler) Start(ctx context.Context) {
	if s.interval <= 0 {
		s.log.Info("status promoter disabled")
		return
	}
	s.log.Info("starting status promoter", zap.Duration("interval", s.interval))

	s.wg.Add(1)
	go s.runPromotion(ctx)
}

// Stop останавливает планировщик и ждёт завершения текущего прохода
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		s.log.Info("stopping status promoter")
		close(s.stopCh)
	})
	s.wg.Wait()
}

func (s *Scheduler) runPromotion(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	// Выполняем сразу при старте
	s.RunOnceNow(ctx)

	for {
		select {
		case <-ticker.C:
			s.RunOnceNow(ctx)
		case <-s.stopCh:
			s.log.Info("status promoter stopped")
			return
		case <-ctx.Done():
			s.log.Info("status promoter cancelled")
			return
		}
	}
}

// RunOnceNow выполняет один проход немедленно
func (s *Scheduler) RunOnceNow(ctx context.Context) int {
	n, err := s.promoter.PromoteAssignedOrders(ctx)
	if err != nil {
		s.log.Error("order promotion failed", zap.Int("promoted", n), zap.Error(err))
	}
	if n > 0 {
		s.log.Info("orders promoted to cooking", zap.Int("count", n))
	}
	return n
}
