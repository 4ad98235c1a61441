package retentionworker

import (
	"context"
	"time"

	"ai-interviewer-backend/db"
	ailogstore "ai-interviewer-backend/lib/gpt/store"
	turnstore "ai-interviewer-backend/lib/interview/turn-store"
	baseworker "ai-interviewer-backend/lib/utils/base-worker"
	"ai-interviewer-backend/lib/utils/helpers"
)

// StartWorker удаляет журналы интервью и запросов к ИИ старше retention
func StartWorker(ctx context.Context, retention time.Duration) {
	i := newWorker(turnstore.NewInstance(db.DB), ailogstore.NewInstance(db.DB), retention)
	go i.Run(ctx, i.handle)
}

func newWorker(turns turnstore.Provider, aiLogs ailogstore.Provider, retention time.Duration) *impl {
	return &impl{
		BaseImpl:  *baseworker.NewInstance("RetentionWorker", 30*time.Second, 12*time.Hour),
		turns:     turns,
		aiLogs:    aiLogs,
		retention: retention,
	}
}

type impl struct {
	baseworker.BaseImpl
	turns     turnstore.Provider
	aiLogs    ailogstore.Provider
	retention time.Duration
}

func (i impl) handle(ctx context.Context) {
	logger := i.GetLogger()
	before := time.Now().Add(-i.retention)

	count, err := i.turns.DeleteOlderThan(before)
	if err != nil {
		logger.WithError(err).Error("Ошибка удаления устаревших ходов интервью")
	} else if count > 0 {
		logger.WithField("count", count).Info("Удалены устаревшие ходы интервью")
	}
	if helpers.IsContextDone(ctx) {
		return
	}
	count, err = i.aiLogs.DeleteOlderThan(before)
	if err != nil {
		logger.WithError(err).Error("Ошибка удаления устаревших запросов к ИИ")
		return
	}
	if count > 0 {
		logger.WithField("count", count).Info("Удалены устаревшие запросы к ИИ")
	}
}
