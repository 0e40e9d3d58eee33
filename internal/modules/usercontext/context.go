// Package usercontext serves a single snapshot of the user's state for the
// mobile assistant.
package usercontext

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/gidia-app/nutricoach/internal/dto"
	"github.com/gidia-app/nutricoach/internal/models"
	"github.com/gidia-app/nutricoach/internal/modules"
	"github.com/gidia-app/nutricoach/internal/nutrition"
	"github.com/gidia-app/nutricoach/internal/repository"
	"github.com/gidia-app/nutricoach/internal/services"
	"github.com/google/uuid"
)

type Today struct {
	Date        string  `json:"date"`
	Calories    float64 `json:"calories"`
	Protein     float64 `json:"protein"`
	Carbs       float64 `json:"carbs"`
	Fat         float64 `json:"fat"`
	CalorieGoal *int    `json:"calorie_goal"`
	WaterML     int     `json:"water_ml"`
	WaterGoal   int     `json:"water_goal"`
}

type Snapshot struct {
	User         dto.UserResponse           `json:"user"`
	Profile      *models.NutritionalProfile `json:"profile"`
	Metrics      *nutrition.Metrics         `json:"metrics"`
	Today        Today                      `json:"today"`
	UnreadAlerts int64                      `json:"unread_alerts"`
}

type Builder struct {
	accounts *services.ProfileService
	profiles *services.NutritionalProfileService
	progress repository.ProgressRepository
	alerts   repository.AlertRepository
	now      func() time.Time
}

func NewBuilder(accounts *services.ProfileService, profiles *services.NutritionalProfileService, progress repository.ProgressRepository, alerts repository.AlertRepository) *Builder {
	return &Builder{accounts: accounts, profiles: profiles, progress: progress, alerts: alerts, now: time.Now}
}

func (b *Builder) Build(ctx context.Context, userID uuid.UUID) (*Snapshot, error) {
	user, err := b.accounts.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	snap := &Snapshot{User: services.UserResponse(user)}
	snap.Today.WaterGoal = nutrition.DefaultWaterGoal

	view, err := b.profiles.Get(ctx, userID)
	switch {
	case errors.Is(err, services.ErrProfileNotFound):
	case err != nil:
		return nil, err
	default:
		snap.Profile = view.Profile
		snap.Metrics = view.Metrics
		snap.Today.CalorieGoal = view.Profile.DailyCalorieGoal
		if view.Profile.WaterGoal > 0 {
			snap.Today.WaterGoal = view.Profile.WaterGoal
		}
	}

	day := modules.DayStart(b.now())
	intake, err := b.progress.Intake(ctx, userID, day, day.AddDate(0, 0, 1))
	if err != nil {
		return nil, fmt.Errorf("failed to load today's intake: %w", err)
	}
	snap.Today.Date = day.Format("2006-01-02")
	snap.Today.Calories = round1(intake.Calories)
	snap.Today.Protein = round1(intake.Protein)
	snap.Today.Carbs = round1(intake.Carbs)
	snap.Today.Fat = round1(intake.Fat)
	snap.Today.WaterML = intake.WaterML

	snap.UnreadAlerts, err = b.alerts.CountUnread(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count alerts: %w", err)
	}

	return snap, nil
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
