package mealplans

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/gidia-app/nutricoach/internal/validation"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrPlanNotFound = errors.New("meal plan not found")
	ErrInvalidMeals = errors.New("meals must be a non-empty JSON array")
)

type MealPlanService struct {
	db *gorm.DB
}

func NewMealPlanService(db *gorm.DB) *MealPlanService {
	return &MealPlanService{db: db}
}

// CheckMeals accepts a non-empty JSON array.
func CheckMeals(raw json.RawMessage) error {
	var meals []json.RawMessage
	if err := json.Unmarshal(raw, &meals); err != nil || len(meals) == 0 {
		return ErrInvalidMeals
	}
	return nil
}

func (s *MealPlanService) Create(ctx context.Context, userID uuid.UUID, req CreateMealPlanRequest) (*MealPlan, error) {
	if err := CheckMeals(req.Meals); err != nil {
		return nil, err
	}
	start, err := time.Parse(validation.DateLayout, req.StartDate)
	if err != nil {
		return nil, err
	}

	plan := MealPlan{
		ID:             uuid.New(),
		UserID:         userID,
		Name:           strings.TrimSpace(req.Name),
		StartDate:      datatypes.Date(start),
		Days:           req.Days,
		TargetCalories: req.TargetCalories,
		Meals:          datatypes.JSON(req.Meals),
	}
	if err := s.db.WithContext(ctx).Create(&plan).Error; err != nil {
		return nil, err
	}
	return &plan, nil
}

func (s *MealPlanService) List(ctx context.Context, userID uuid.UUID, limit, offset int) ([]MealPlanSummary, int64, error) {
	query := s.db.WithContext(ctx).Model(&MealPlan{}).Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	plans := []MealPlanSummary{}
	err := query.Select("id, name, start_date, days, target_calories, created_at").
		Order("created_at DESC").Limit(limit).Offset(offset).
		Scan(&plans).Error
	return plans, total, err
}

func (s *MealPlanService) Get(ctx context.Context, userID, id uuid.UUID) (*MealPlan, error) {
	var plan MealPlan
	if err := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&plan).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	return &plan, nil
}

func (s *MealPlanService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	res := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&MealPlan{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrPlanNotFound
	}
	return nil
}
