package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gidia-app/nutricoach/internal/repository"
)

type AlertCleanup struct {
	alerts    repository.AlertRepository
	retention time.Duration
	now       func() time.Time
}

func NewAlertCleanup(alerts repository.AlertRepository, retention time.Duration) *AlertCleanup {
	return &AlertCleanup{alerts: alerts, retention: retention, now: time.Now}
}

func (j *AlertCleanup) Run(ctx context.Context) error {
	deleted, err := j.alerts.DeleteOlderThan(ctx, j.now().Add(-j.retention))
	if err != nil {
		return fmt.Errorf("failed to delete old alerts: %w", err)
	}
	if deleted > 0 {
		slog.Info("alert cleanup completed", "job", AlertsCleanup, "deleted", deleted)
	}
	return nil
}

// LogCleanup deletes persisted system logs past the retention period.
type LogCleanup struct {
	logs      repository.SystemLogRepository
	retention time.Duration
	now       func() time.Time
}

func NewLogCleanup(logs repository.SystemLogRepository, retention time.Duration) *LogCleanup {
	return &LogCleanup{logs: logs, retention: retention, now: time.Now}
}

func (j *LogCleanup) Run(ctx context.Context) error {
	deleted, err := j.logs.DeleteOlderThan(ctx, j.now().Add(-j.retention))
	if err != nil {
		return fmt.Errorf("log cleanup failed: %w", err)
	}
	if deleted > 0 {
		slog.Info("log cleanup completed", "job", LogsCleanup, "deleted", deleted)
	}
	return nil
}
