package foods

import (
	"time"

	"github.com/google/uuid"
)

// Food is a catalogue entry. Nutrient values are per 100 g.
type Food struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name      string    `gorm:"size:255;not null;index" json:"name"`
	Brand     string    `gorm:"size:255" json:"brand"`
	Calories  float64   `gorm:"not null" json:"calories"`
	Protein   float64   `json:"protein"`
	Carbs     float64   `json:"carbs"`
	Fat       float64   `json:"fat"`
	Verified  bool      `gorm:"default:false" json:"verified"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Portion scales the per-100 g values to grams.
type Portion struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

func (f *Food) Portion(grams float64) Portion {
	k := grams / 100
	return Portion{
		Calories: round1(f.Calories * k),
		Protein:  round1(f.Protein * k),
		Carbs:    round1(f.Carbs * k),
		Fat:      round1(f.Fat * k),
	}
}

type FoodRequest struct {
	Name     string   `json:"name" validate:"required,max=255"`
	Brand    string   `json:"brand" validate:"max=255"`
	Calories *float64 `json:"calories" validate:"required,gte=0,lte=900"`
	Protein  float64  `json:"protein" validate:"gte=0,lte=100"`
	Carbs    float64  `json:"carbs" validate:"gte=0,lte=100"`
	Fat      float64  `json:"fat" validate:"gte=0,lte=100"`
	Verified bool     `json:"verified"`
}

type FoodListResponse struct {
	Foods  []Food `json:"foods"`
	Total  int64  `json:"total"`
	Limit  int    `json:"limit"`
	Offset int    `json:"offset"`
}
