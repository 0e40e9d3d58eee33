package models

import (
	"time"

	"github.com/google/uuid"
)

// NutritionalProfile is the per-user body and goal record. Derived values
// (BMI, TDEE...) are computed by the nutrition package, never stored here.
type NutritionalProfile struct {
	ID     uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`

	Height        float64 `gorm:"type:numeric(5,2);not null" json:"height"`
	Weight        float64 `gorm:"type:numeric(5,2);not null" json:"weight"`
	Age           int     `gorm:"not null" json:"age"`
	Gender        string  `gorm:"size:10;not null" json:"gender"`
	ActivityLevel string  `gorm:"size:20;not null" json:"activity_level"`

	WristCircumference   *float64 `gorm:"type:numeric(5,2)" json:"wrist_circumference"`
	WaistCircumference   *float64 `gorm:"type:numeric(5,2)" json:"waist_circumference"`
	HipCircumference     *float64 `gorm:"type:numeric(5,2)" json:"hip_circumference"`
	NeckCircumference    *float64 `gorm:"type:numeric(5,2)" json:"neck_circumference"`
	BodyFatPercentage    *float64 `gorm:"type:numeric(4,1)" json:"body_fat_percentage"`
	MuscleMassPercentage *float64 `gorm:"type:numeric(4,1)" json:"muscle_mass_percentage"`
	BodyFrame            *string  `gorm:"size:10" json:"body_frame"`
	BodyType             *string  `gorm:"size:10" json:"body_type"`

	TargetWeight     *float64   `gorm:"type:numeric(5,2)" json:"target_weight"`
	TargetDate       *time.Time `gorm:"type:date" json:"target_date"`
	DailyCalorieGoal *int       `json:"daily_calorie_goal"`
	ProteinGoal      *int       `json:"protein_goal"`
	CarbsGoal        *int       `json:"carbs_goal"`
	FatGoal          *int       `json:"fat_goal"`
	WaterGoal        int        `gorm:"not null;default:4000" json:"water_goal"`

	MedicalConditions     *string `gorm:"type:text" json:"medical_conditions"`
	DietaryRestrictions   *string `gorm:"type:text" json:"dietary_restrictions"`
	IsMedicallySupervised bool    `gorm:"default:false" json:"is_medically_supervised"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}
