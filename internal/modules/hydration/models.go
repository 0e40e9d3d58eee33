package hydration

import "github.com/gidia-app/nutricoach/internal/models"

type LogWaterRequest struct {
	AmountML int     `json:"amount_ml" validate:"required,gte=1,lte=5000"`
	LoggedAt *string `json:"logged_at" validate:"omitnil,datetime=2006-01-02T15:04:05Z07:00"`
}

type LogListResponse struct {
	Date string                `json:"date"`
	Logs []models.HydrationLog `json:"logs"`
}

type Summary struct {
	Date        string  `json:"date"`
	TotalML     int     `json:"total_ml"`
	GoalML      int     `json:"goal_ml"`
	RemainingML int     `json:"remaining_ml"`
	Percent     float64 `json:"percent"`
}

// CreateResponse reports whether this entry completed the day's goal.
type CreateResponse struct {
	Log         models.HydrationLog `json:"log"`
	TotalML     int                 `json:"total_ml"`
	GoalML      int                 `json:"goal_ml"`
	GoalReached bool                `json:"goal_reached"`
}
