package mealplans

import (
	"encoding/json"
	"time"

	"github.com/gidia-app/nutricoach/internal/models"
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// MealPlan is a generated plan the client stores for later. Meals is kept as
// the client sent it.
type MealPlan struct {
	ID             uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID         uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	Name           string         `gorm:"size:255;not null" json:"name"`
	StartDate      datatypes.Date `json:"start_date"`
	Days           int            `gorm:"not null" json:"days"`
	TargetCalories *int           `json:"target_calories"`
	Meals          datatypes.JSON `gorm:"type:jsonb;not null" json:"meals"`
	CreatedAt      time.Time      `json:"created_at"`
	User           models.User    `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

type CreateMealPlanRequest struct {
	Name           string          `json:"name" validate:"required,max=255"`
	StartDate      string          `json:"start_date" validate:"required,datetime=2006-01-02"`
	Days           int             `json:"days" validate:"required,gte=1,lte=28"`
	TargetCalories *int            `json:"target_calories" validate:"omitnil,gte=800,lte=5000"`
	Meals          json.RawMessage `json:"meals" validate:"required"`
}

// MealPlanSummary is a list row without the meals payload.
type MealPlanSummary struct {
	ID             uuid.UUID      `json:"id"`
	Name           string         `json:"name"`
	StartDate      datatypes.Date `json:"start_date"`
	Days           int            `json:"days"`
	TargetCalories *int           `json:"target_calories"`
	CreatedAt      time.Time      `json:"created_at"`
}

type MealPlanListResponse struct {
	Plans  []MealPlanSummary `json:"plans"`
	Total  int64             `json:"total"`
	Limit  int               `json:"limit"`
	Offset int               `json:"offset"`
}
