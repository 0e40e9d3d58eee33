// Package jobs holds the periodic maintenance and engagement tasks run by the
// scheduler.
package jobs

import (
	"time"

	"github.com/gidia-app/nutricoach/internal/config"
	"github.com/gidia-app/nutricoach/internal/repository"
	"github.com/gidia-app/nutricoach/internal/scheduler"
	"github.com/gidia-app/nutricoach/internal/services"
)

const (
	InactivityDetect = "inactivity:detect"
	AlertsCleanup    = "alerts:cleanup"
	ProgressWeekly   = "progress:weekly"
	LogsCleanup      = "logs:cleanup"
)

const logRetention = 30 * 24 * time.Hour

type Deps struct {
	Users    repository.UserRepository
	Alerts   repository.AlertRepository
	Profiles repository.ProfileRepository
	Progress repository.ProgressRepository
	Logs     repository.SystemLogRepository
	Mailer   services.Mailer
}

// Register adds every job to s with its production schedule.
func Register(s *scheduler.Scheduler, d Deps, cfg *config.Config) {
	s.Add(scheduler.Job{
		Name:     InactivityDetect,
		Schedule: scheduler.DailyAt(9, 0),
		Run:      NewInactivityDetector(d.Users, d.Alerts, cfg.InactivityWindow).Run,
	})
	s.Add(scheduler.Job{
		Name:     AlertsCleanup,
		Schedule: scheduler.MonthlyOn(1, 3, 0),
		Run:      NewAlertCleanup(d.Alerts, cfg.AlertRetention).Run,
	})
	s.Add(scheduler.Job{
		Name:     ProgressWeekly,
		Schedule: scheduler.WeeklyOn(time.Monday, 8, 0),
		Run:      NewWeeklyProgress(d.Profiles, d.Progress, d.Mailer).Run,
		LockTTL:  2 * time.Hour,
	})
	s.Add(scheduler.Job{
		Name:     LogsCleanup,
		Schedule: scheduler.DailyAt(4, 0),
		Run:      NewLogCleanup(d.Logs, logRetention).Run,
	})
}
