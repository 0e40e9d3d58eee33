package diary

import "github.com/gidia-app/nutricoach/internal/models"

// LogFoodRequest logs either a catalogue food by weight or a manual entry.
type LogFoodRequest struct {
	FoodID   *string  `json:"food_id" validate:"omitnil,uuid"`
	Grams    *float64 `json:"grams" validate:"required_with=FoodID,omitnil,gt=0,lte=5000"`
	Name     string   `json:"name" validate:"required_without=FoodID,max=255"`
	Calories *float64 `json:"calories" validate:"required_without=FoodID,omitnil,gte=0,lte=10000"`
	Protein  float64  `json:"protein" validate:"gte=0,lte=1000"`
	Carbs    float64  `json:"carbs" validate:"gte=0,lte=1000"`
	Fat      float64  `json:"fat" validate:"gte=0,lte=1000"`
	MealType string   `json:"meal_type" validate:"required,oneof=breakfast lunch dinner snack"`
	LoggedAt *string  `json:"logged_at" validate:"omitnil,datetime=2006-01-02T15:04:05Z07:00"`
}

type LogListResponse struct {
	Date string           `json:"date"`
	Logs []models.FoodLog `json:"logs"`
}

// Nutrient is one line of the daily summary. Percent is total over goal,
// capped at 1, and nil without a goal.
type Nutrient struct {
	Total   float64  `json:"total"`
	Goal    *int     `json:"goal"`
	Percent *float64 `json:"percent"`
}

type Summary struct {
	Date     string   `json:"date"`
	Calories Nutrient `json:"calories"`
	Protein  Nutrient `json:"protein"`
	Carbs    Nutrient `json:"carbs"`
	Fat      Nutrient `json:"fat"`
	Entries  int      `json:"entries"`
}
