package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gidia-app/nutricoach/internal/models"
	"github.com/gidia-app/nutricoach/internal/repository"
)

// InactivityDetector raises an alert for users who have not been active
// within the window. A user gets at most one such alert per window.
type InactivityDetector struct {
	users  repository.UserRepository
	alerts repository.AlertRepository
	window time.Duration
	now    func() time.Time
}

func NewInactivityDetector(users repository.UserRepository, alerts repository.AlertRepository, window time.Duration) *InactivityDetector {
	return &InactivityDetector{users: users, alerts: alerts, window: window, now: time.Now}
}

func (j *InactivityDetector) Run(ctx context.Context) error {
	since := j.now().Add(-j.window)

	users, err := j.users.ListInactiveSince(ctx, since)
	if err != nil {
		return fmt.Errorf("failed to list inactive users: %w", err)
	}

	created := 0
	for _, u := range users {
		if err := ctx.Err(); err != nil {
			return err
		}

		exists, err := j.alerts.ExistsSince(ctx, u.ID, models.AlertTypeInactivity, since)
		if err != nil {
			slog.Error("inactivity alert lookup failed", "job", InactivityDetect, "user_id", u.ID.String(), "error", err)
			continue
		}
		if exists {
			continue
		}

		days := int(j.window.Hours() / 24)
		alert := &models.Alert{
			UserID:  u.ID,
			Type:    models.AlertTypeInactivity,
			Title:   "We miss you",
			Message: fmt.Sprintf("You haven't logged anything in %d days. A quick check-in keeps your goals on track.", days),
		}
		if err := j.alerts.Create(ctx, alert); err != nil {
			slog.Error("inactivity alert not created", "job", InactivityDetect, "user_id", u.ID.String(), "error", err)
			continue
		}
		created++
	}

	slog.Info("inactivity scan completed", "job", InactivityDetect, "inactive", len(users), "alerted", created)
	return nil
}
