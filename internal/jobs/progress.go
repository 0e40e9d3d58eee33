package jobs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gidia-app/nutricoach/internal/mail"
	"github.com/gidia-app/nutricoach/internal/models"
	"github.com/gidia-app/nutricoach/internal/repository"
	"github.com/gidia-app/nutricoach/internal/services"
)

const (
	progressDays      = 7
	progressBatchSize = 200
)

// WeeklyProgress mails every user with a nutritional profile their averages
// over the last seven full days. A full mail queue is waited out rather than
// skipping the user.
type WeeklyProgress struct {
	profiles repository.ProfileRepository
	progress repository.ProgressRepository
	mailer   services.Mailer
	now      func() time.Time
}

func NewWeeklyProgress(profiles repository.ProfileRepository, progress repository.ProgressRepository, mailer services.Mailer) *WeeklyProgress {
	return &WeeklyProgress{
		profiles: profiles,
		progress: progress,
		mailer:   mail.NewPatient(mailer, mail.FullQueueWait, mail.FullQueueWaits),
		now:      time.Now,
	}
}

func (j *WeeklyProgress) Run(ctx context.Context) error {
	now := j.now().UTC()
	end := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	start := end.AddDate(0, 0, -progressDays)

	queued, failed := 0, 0
	err := j.profiles.EachBatch(ctx, progressBatchSize, func(batch []models.NutritionalProfile) error {
		for i := range batch {
			if err := ctx.Err(); err != nil {
				return err
			}
			p := &batch[i]

			m, err := j.summarize(ctx, p, start, end)
			if err != nil {
				failed++
				slog.Error("weekly progress not computed", "job", ProgressWeekly, "user_id", p.UserID.String(), "error", err)
				continue
			}

			if err := j.mailer.Queue(ctx, p.User.Email, m); err != nil {
				failed++
				slog.Warn("weekly progress mail not queued", "job", ProgressWeekly, "user_id", p.UserID.String(), "error", err)
				if errors.Is(err, mail.ErrQueueClosed) {
					return err
				}
				continue
			}
			queued++
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("weekly progress aborted after %d mails: %w", queued, err)
	}

	slog.Info("weekly progress queued", "job", ProgressWeekly, "queued", queued, "failed", failed)
	return nil
}

func (j *WeeklyProgress) summarize(ctx context.Context, p *models.NutritionalProfile, start, end time.Time) (mail.ProgressUpdate, error) {
	intake, err := j.progress.Intake(ctx, p.UserID, start, end)
	if err != nil {
		return mail.ProgressUpdate{}, err
	}
	change, err := j.progress.WeightChange(ctx, p.UserID, start, end)
	if err != nil {
		return mail.ProgressUpdate{}, err
	}

	m := mail.ProgressUpdate{
		Name:         p.User.Name,
		PeriodStart:  start,
		PeriodEnd:    end.AddDate(0, 0, -1),
		DaysLogged:   intake.DaysLogged,
		AvgCalories:  int(intake.Calories / progressDays),
		AvgWaterML:   intake.WaterML / progressDays,
		WaterGoal:    p.WaterGoal,
		WeightChange: change,
	}
	if p.DailyCalorieGoal != nil {
		m.CalorieGoal = *p.DailyCalorieGoal
	}
	return m, nil
}
