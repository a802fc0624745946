package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// RatingReconciler 定时全量校准课程平均分，修正并发写入留下的过期值
type RatingReconciler struct {
	rating   *RatingService
	schedule string
	cron     *cron.Cron
	logger   *zap.Logger
	mu       sync.Mutex
	running  bool
}

func NewRatingReconciler(rating *RatingService, schedule string, logger *zap.Logger) *RatingReconciler {
	return &RatingReconciler{
		rating:   rating,
		schedule: schedule,
		cron:     cron.New(cron.WithLocation(time.UTC)),
		logger:   logger,
	}
}

// Start schedule 为空时不启动
func (r *RatingReconciler) Start() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.schedule == "" {
		r.logger.Info("rating reconciler disabled")
		return nil
	}
	if r.running {
		return fmt.Errorf("rating reconciler is already running")
	}

	if _, err := r.cron.AddFunc(r.schedule, func() {
		if _, err := r.RunOnce(context.Background()); err != nil {
			r.logger.Error("rating reconcile failed", zap.Error(err))
		}
	}); err != nil {
		return fmt.Errorf("invalid reconcile schedule %q: %w", r.schedule, err)
	}

	r.cron.Start()
	r.running = true
	r.logger.Info("rating reconciler started", zap.String("schedule", r.schedule))
	return nil
}

// Stop 等待正在执行的任务结束
func (r *RatingReconciler) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.running {
		return
	}
	<-r.cron.Stop().Done()
	r.running = false
}

func (r *RatingReconciler) RunOnce(ctx context.Context) (int, error) {
	start := time.Now()
	n, err := r.rating.RecomputeAll(ctx)
	if err != nil {
		return n, err
	}
	r.logger.Info("rating reconcile finished",
		zap.Int("courses", n),
		zap.Duration("took", time.Since(start)),
	)
	return n, nil
}
