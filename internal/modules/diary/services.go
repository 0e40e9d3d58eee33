package diary

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/gidia-app/nutricoach/internal/models"
	"github.com/gidia-app/nutricoach/internal/modules/foods"
	"github.com/gidia-app/nutricoach/internal/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrLogNotFound = errors.New("food log not found")

type DiaryService struct {
	db       *gorm.DB
	foods    *foods.FoodService
	profiles repository.ProfileRepository
	progress repository.ProgressRepository
	now      func() time.Time
}

func NewDiaryService(db *gorm.DB, foodService *foods.FoodService, profiles repository.ProfileRepository, progress repository.ProgressRepository) *DiaryService {
	return &DiaryService{db: db, foods: foodService, profiles: profiles, progress: progress, now: time.Now}
}

func (s *DiaryService) List(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]models.FoodLog, error) {
	var logs []models.FoodLog
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND logged_at >= ? AND logged_at < ?", userID, from, to).
		Order("logged_at ASC").
		Find(&logs).Error
	return logs, err
}

// Create stores a log. With a food_id the nutrients come from the catalogue
// scaled to the grams eaten; otherwise the submitted values are used.
func (s *DiaryService) Create(ctx context.Context, userID uuid.UUID, req LogFoodRequest) (*models.FoodLog, error) {
	loggedAt := s.now().UTC()
	if req.LoggedAt != nil {
		t, err := time.Parse(time.RFC3339, *req.LoggedAt)
		if err != nil {
			return nil, fmt.Errorf("invalid logged_at: %w", err)
		}
		loggedAt = t.UTC()
	}

	entry := models.FoodLog{
		ID:       uuid.New(),
		UserID:   userID,
		MealType: req.MealType,
		LoggedAt: loggedAt,
	}

	if req.FoodID != nil {
		foodID, err := uuid.Parse(*req.FoodID)
		if err != nil {
			return nil, foods.ErrFoodNotFound
		}
		food, err := s.foods.Get(ctx, foodID)
		if err != nil {
			return nil, err
		}
		portion := food.Portion(*req.Grams)
		entry.FoodID = &food.ID
		entry.Name = food.Name
		entry.Grams = *req.Grams
		entry.Calories = portion.Calories
		entry.Protein = portion.Protein
		entry.Carbs = portion.Carbs
		entry.Fat = portion.Fat
	} else {
		entry.Name = strings.TrimSpace(req.Name)
		if req.Grams != nil {
			entry.Grams = *req.Grams
		}
		entry.Calories = *req.Calories
		entry.Protein = req.Protein
		entry.Carbs = req.Carbs
		entry.Fat = req.Fat
	}

	if err := s.db.WithContext(ctx).Create(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

func (s *DiaryService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	res := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&models.FoodLog{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrLogNotFound
	}
	return nil
}

// Summary totals the day against the profile goals.
func (s *DiaryService) Summary(ctx context.Context, userID uuid.UUID, from, to time.Time) (*Summary, error) {
	intake, err := s.progress.Intake(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}

	var entries int64
	err = s.db.WithContext(ctx).Model(&models.FoodLog{}).
		Where("user_id = ? AND logged_at >= ? AND logged_at < ?", userID, from, to).
		Count(&entries).Error
	if err != nil {
		return nil, err
	}

	var calorieGoal, proteinGoal, carbsGoal, fatGoal *int
	p, err := s.profiles.Get(ctx, userID)
	switch {
	case errors.Is(err, repository.ErrNotFound):
	case err != nil:
		return nil, err
	default:
		calorieGoal, proteinGoal, carbsGoal, fatGoal = p.DailyCalorieGoal, p.ProteinGoal, p.CarbsGoal, p.FatGoal
	}

	return &Summary{
		Date:     from.Format("2006-01-02"),
		Calories: nutrient(intake.Calories, calorieGoal),
		Protein:  nutrient(intake.Protein, proteinGoal),
		Carbs:    nutrient(intake.Carbs, carbsGoal),
		Fat:      nutrient(intake.Fat, fatGoal),
		Entries:  int(entries),
	}, nil
}

func nutrient(total float64, goal *int) Nutrient {
	n := Nutrient{Total: math.Round(total*10) / 10, Goal: goal}
	if goal != nil && *goal > 0 {
		pct := math.Min(total/float64(*goal), 1)
		pct = math.Round(pct*100) / 100
		n.Percent = &pct
	}
	return n
}
