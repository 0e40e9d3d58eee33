package hydration

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/gidia-app/nutricoach/internal/models"
	"github.com/gidia-app/nutricoach/internal/modules"
	"github.com/gidia-app/nutricoach/internal/nutrition"
	"github.com/gidia-app/nutricoach/internal/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrLogNotFound = errors.New("hydration log not found")

type HydrationService struct {
	db       *gorm.DB
	profiles repository.ProfileRepository
	notifier *GoalNotifier
	now      func() time.Time
}

func NewHydrationService(db *gorm.DB, profiles repository.ProfileRepository, notifier *GoalNotifier) *HydrationService {
	return &HydrationService{db: db, profiles: profiles, notifier: notifier, now: time.Now}
}

func (s *HydrationService) List(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]models.HydrationLog, error) {
	var logs []models.HydrationLog
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND logged_at >= ? AND logged_at < ?", userID, from, to).
		Order("logged_at ASC").
		Find(&logs).Error
	return logs, err
}

func (s *HydrationService) Create(ctx context.Context, userID uuid.UUID, req LogWaterRequest) (*CreateResponse, error) {
	now := s.now().UTC()
	loggedAt := now
	if req.LoggedAt != nil {
		t, err := time.Parse(time.RFC3339, *req.LoggedAt)
		if err != nil {
			return nil, fmt.Errorf("invalid logged_at: %w", err)
		}
		loggedAt = t.UTC()
	}

	day := modules.DayStart(loggedAt)
	before, err := s.total(ctx, userID, day, day.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}

	entry := models.HydrationLog{ID: uuid.New(), UserID: userID, AmountML: req.AmountML, LoggedAt: loggedAt}
	if err := s.db.WithContext(ctx).Create(&entry).Error; err != nil {
		return nil, err
	}

	goal, err := s.goal(ctx, userID)
	if err != nil {
		return nil, err
	}

	after := before + req.AmountML
	resp := &CreateResponse{Log: entry, TotalML: after, GoalML: goal}

	// only today's total triggers the congratulation
	if Crossed(before, after, goal) && day.Equal(modules.DayStart(now)) {
		resp.GoalReached = true
		if err := s.notifier.Reached(ctx, userID, after, goal, day); err != nil {
			slog.Error("water goal notification failed", "user_id", userID.String(), "error", err)
		}
	}
	return resp, nil
}

func (s *HydrationService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	res := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&models.HydrationLog{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrLogNotFound
	}
	return nil
}

func (s *HydrationService) Summary(ctx context.Context, userID uuid.UUID, from, to time.Time) (*Summary, error) {
	total, err := s.total(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}
	goal, err := s.goal(ctx, userID)
	if err != nil {
		return nil, err
	}
	return summarize(from, total, goal), nil
}

func summarize(day time.Time, total, goal int) *Summary {
	out := &Summary{
		Date:        day.Format("2006-01-02"),
		TotalML:     total,
		GoalML:      goal,
		RemainingML: max(goal-total, 0),
	}
	if goal > 0 {
		out.Percent = math.Round(math.Min(float64(total)/float64(goal), 1)*100) / 100
	}
	return out
}

func (s *HydrationService) total(ctx context.Context, userID uuid.UUID, from, to time.Time) (int, error) {
	var total int
	err := s.db.WithContext(ctx).Model(&models.HydrationLog{}).
		Select("COALESCE(SUM(amount_ml),0)").
		Where("user_id = ? AND logged_at >= ? AND logged_at < ?", userID, from, to).
		Scan(&total).Error
	return total, err
}

// goal is the profile's water goal, the default without a profile.
func (s *HydrationService) goal(ctx context.Context, userID uuid.UUID) (int, error) {
	p, err := s.profiles.Get(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nutrition.DefaultWaterGoal, nil
	}
	if err != nil {
		return 0, err
	}
	if p.WaterGoal <= 0 {
		return nutrition.DefaultWaterGoal, nil
	}
	return p.WaterGoal, nil
}
