package dto

import "strings"

type UpdateProfileRequest struct {
	Name  string `json:"name" validate:"required,max=255"`
	Email string `json:"email" validate:"required,email,max=255"`
}

type UpdatePasswordRequest struct {
	CurrentPassword      string `json:"current_password" validate:"required"`
	Password             string `json:"password" validate:"required,min=8"`
	PasswordConfirmation string `json:"password_confirmation" validate:"required,eqfield=Password"`
}

type UpdateSpotifyRequest struct {
	ShareListening *bool `json:"share_listening" validate:"required"`
}

// NutritionalProfileRequest is the form contract for creating or replacing a
// nutritional profile. Pointer fields are nullable.
type NutritionalProfileRequest struct {
	Height        *float64 `json:"height" validate:"required,gte=100,lte=250"`
	Weight        *float64 `json:"weight" validate:"required,gte=30,lte=300"`
	Age           *int     `json:"age" validate:"required,gte=16,lte=100"`
	Gender        string   `json:"gender" validate:"required,oneof=male female other"`
	ActivityLevel string   `json:"activity_level" validate:"required,oneof=sedentary light moderate active very_active"`

	BodyFrame            *string  `json:"body_frame" validate:"omitnil,oneof=small medium large"`
	BodyType             *string  `json:"body_type" validate:"omitnil,oneof=ectomorph mesomorph endomorph"`
	WristCircumference   *float64 `json:"wrist_circumference" validate:"omitnil,gte=10,lte=30"`
	WaistCircumference   *float64 `json:"waist_circumference" validate:"omitnil,gte=40,lte=200"`
	HipCircumference     *float64 `json:"hip_circumference" validate:"omitnil,gte=50,lte=200"`
	NeckCircumference    *float64 `json:"neck_circumference" validate:"omitnil,gte=20,lte=60"`
	BodyFatPercentage    *float64 `json:"body_fat_percentage" validate:"omitnil,gte=3,lte=60"`
	MuscleMassPercentage *float64 `json:"muscle_mass_percentage" validate:"omitnil,gte=10,lte=70"`

	DailyCalorieGoal *int     `json:"daily_calorie_goal" validate:"omitnil,gte=800,lte=5000"`
	ProteinGoal      *int     `json:"protein_goal" validate:"omitnil,gte=10,lte=500"`
	CarbsGoal        *int     `json:"carbs_goal" validate:"omitnil,gte=20,lte=800"`
	FatGoal          *int     `json:"fat_goal" validate:"omitnil,gte=10,lte=300"`
	WaterGoal        *int     `json:"water_goal" validate:"omitnil,gte=500,lte=10000"`
	TargetWeight     *float64 `json:"target_weight" validate:"omitnil,gte=30,lte=300"`
	TargetDate       *string  `json:"target_date" validate:"omitnil,datetime=2006-01-02,after_today"`

	MedicalConditions     *string `json:"medical_conditions" validate:"omitnil,max=1000"`
	DietaryRestrictions   *string `json:"dietary_restrictions" validate:"omitnil,max=1000"`
	IsMedicallySupervised *bool   `json:"is_medically_supervised"`
}

// Normalize turns blank optional strings into nil, the way an HTML form
// submits an untouched input.
func (r *NutritionalProfileRequest) Normalize() {
	for _, s := range []**string{&r.BodyFrame, &r.BodyType, &r.TargetDate, &r.MedicalConditions, &r.DietaryRestrictions} {
		if *s != nil && strings.TrimSpace(**s) == "" {
			*s = nil
		}
	}
	r.Gender = strings.TrimSpace(r.Gender)
	r.ActivityLevel = strings.TrimSpace(r.ActivityLevel)
}
