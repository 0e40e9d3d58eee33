package models

import (
	"time"

	"github.com/google/uuid"
)

var MealTypes = []string{"breakfast", "lunch", "dinner", "snack"}

type FoodLog struct {
	ID        uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID    uuid.UUID  `gorm:"type:uuid;not null;index:idx_food_logs_user_logged" json:"user_id"`
	FoodID    *uuid.UUID `gorm:"type:uuid;index" json:"food_id"`
	Name      string     `gorm:"size:255;not null" json:"name"`
	Grams     float64    `json:"grams"`
	Calories  float64    `json:"calories"`
	Protein   float64    `json:"protein"`
	Carbs     float64    `json:"carbs"`
	Fat       float64    `json:"fat"`
	MealType  string     `gorm:"size:20" json:"meal_type"`
	LoggedAt  time.Time  `gorm:"not null;index:idx_food_logs_user_logged" json:"logged_at"`
	CreatedAt time.Time  `json:"created_at"`
	User      User       `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}
