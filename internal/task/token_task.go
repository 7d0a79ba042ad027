package task

import (
	"context"
	"time"

	"bookstore_api/internal/repository"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// ==================== TokenTask 令牌清理任务 ====================

// TokenTask 定时清理已过期的访问令牌行
// 过期令牌在中间件里已经拒绝，这里只负责回收存储
type TokenTask struct {
	TokenRepo repository.TokenRepository
	Cron      *cron.Cron
}

func NewTokenTask(tokenRepo repository.TokenRepository) *TokenTask {
	return &TokenTask{
		TokenRepo: tokenRepo,
		Cron:      cron.New(cron.WithSeconds()), // 支持秒级控制
	}
}

// Start 启动定时任务
func (t *TokenTask) Start() error {
	// 首次执行
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		t.purgeJob(ctx)
	}()

	// 每小时整点清理一次
	if _, err := t.Cron.AddFunc("0 0 * * * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		t.purgeJob(ctx)
	}); err != nil {
		return err
	}

	t.Cron.Start()
	zap.L().Info("令牌清理任务已启动 (每小时一次)")
	return nil
}

// Stop 停止调度器，等待进行中的任务结束
func (t *TokenTask) Stop() {
	ctx := t.Cron.Stop()
	<-ctx.Done()
}

func (t *TokenTask) purgeJob(ctx context.Context) {
	removed, err := t.TokenRepo.DeleteExpired(ctx, time.Now())
	if err != nil {
		zap.L().Error("过期令牌清理失败", zap.Error(err))
		return
	}
	if removed > 0 {
		zap.L().Info("过期令牌清理完成", zap.Int64("removed", removed))
	}
}
