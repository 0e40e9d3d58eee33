package coaching

import "github.com/gidia-app/nutricoach/internal/models"

type CheckInRequest struct {
	Weight *float64 `json:"weight" validate:"required,gte=30,lte=300"`
	Energy int      `json:"energy" validate:"required,gte=1,lte=5"`
	Notes  string   `json:"notes" validate:"max=1000"`
}

type CheckInListResponse struct {
	CheckIns []models.CoachingCheckIn `json:"check_ins"`
	Total    int64                    `json:"total"`
	Limit    int                      `json:"limit"`
	Offset   int                      `json:"offset"`
}

// Summary compares the first and latest check-ins, and the latest against
// the profile's target weight when one is set.
type Summary struct {
	CheckIns      int      `json:"check_ins"`
	StartWeight   *float64 `json:"start_weight"`
	CurrentWeight *float64 `json:"current_weight"`
	WeightChange  *float64 `json:"weight_change"`
	TargetWeight  *float64 `json:"target_weight"`
	ToTarget      *float64 `json:"to_target"`
	AverageEnergy *float64 `json:"average_energy"`
}
