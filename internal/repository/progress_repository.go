package repository

import (
	"context"
	"time"

	"github.com/gidia-app/nutricoach/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Intake is what a user logged over a period.
type Intake struct {
	Calories   float64
	Protein    float64
	Carbs      float64
	Fat        float64
	WaterML    int
	DaysLogged int
}

type ProgressRepository interface {
	// Intake sums food and water logged in [from, to).
	Intake(ctx context.Context, userID uuid.UUID, from, to time.Time) (Intake, error)
	// WeightChange is the last check-in weight minus the first in [from, to),
	// nil with fewer than two check-ins.
	WeightChange(ctx context.Context, userID uuid.UUID, from, to time.Time) (*float64, error)
}

type gormProgressRepository struct {
	db *gorm.DB
}

func NewProgressRepository(db *gorm.DB) ProgressRepository {
	return &gormProgressRepository{db: db}
}

func (r *gormProgressRepository) Intake(ctx context.Context, userID uuid.UUID, from, to time.Time) (Intake, error) {
	var out Intake

	var food struct {
		Calories float64
		Protein  float64
		Carbs    float64
		Fat      float64
		Days     int
	}
	err := r.db.WithContext(ctx).Model(&models.FoodLog{}).
		Select("COALESCE(SUM(calories),0) AS calories, COALESCE(SUM(protein),0) AS protein, "+
			"COALESCE(SUM(carbs),0) AS carbs, COALESCE(SUM(fat),0) AS fat, "+
			"COUNT(DISTINCT DATE(logged_at)) AS days").
		Where("user_id = ? AND logged_at >= ? AND logged_at < ?", userID, from, to).
		Scan(&food).Error
	if err != nil {
		return out, err
	}

	var water int
	err = r.db.WithContext(ctx).Model(&models.HydrationLog{}).
		Select("COALESCE(SUM(amount_ml),0)").
		Where("user_id = ? AND logged_at >= ? AND logged_at < ?", userID, from, to).
		Scan(&water).Error
	if err != nil {
		return out, err
	}

	out = Intake{
		Calories:   food.Calories,
		Protein:    food.Protein,
		Carbs:      food.Carbs,
		Fat:        food.Fat,
		WaterML:    water,
		DaysLogged: food.Days,
	}
	return out, nil
}

func (r *gormProgressRepository) WeightChange(ctx context.Context, userID uuid.UUID, from, to time.Time) (*float64, error) {
	var checkIns []models.CoachingCheckIn
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND created_at >= ? AND created_at < ?", userID, from, to).
		Order("created_at ASC").
		Find(&checkIns).Error
	if err != nil {
		return nil, err
	}
	if len(checkIns) < 2 {
		return nil, nil
	}
	change := checkIns[len(checkIns)-1].Weight - checkIns[0].Weight
	return &change, nil
}
