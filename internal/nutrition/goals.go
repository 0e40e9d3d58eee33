// Package nutrition holds the energy and body-composition calculations used by
// the nutritional profile. Everything here is a pure function over plain values
// so the persisted record stays free of computed state.
package nutrition

import (
	"math"
	"time"
)

const (
	GenderMale   = "male"
	GenderFemale = "female"
	GenderOther  = "other"
)

// DefaultWaterGoal is the daily water target in millilitres used when the user
// does not provide one.
const DefaultWaterGoal = 4000

const (
	kcalPerKg            = 7700.0
	defaultWeeksToTarget = 52
	defaultMultiplier    = 1.55
	minGoalOverBMR       = 1.1
	proteinShare         = 0.30
	carbsShare           = 0.40
	fatShare             = 0.30
	kcalPerGramProtein   = 4.0
	kcalPerGramCarbs     = 4.0
	kcalPerGramFat       = 9.0
	hoursPerWeek         = 24 * 7
)

// ActivityMultipliers maps an activity level to its TDEE factor. It doubles as
// the list of accepted activity levels.
var ActivityMultipliers = map[string]float64{
	"sedentary":   1.2,
	"light":       1.375,
	"moderate":    1.55,
	"active":      1.725,
	"very_active": 1.9,
}

// BMR returns the Mifflin-St Jeor basal metabolic rate, truncated. Any gender
// other than male uses the female constant.
func BMR(weightKg, heightCm float64, age int, gender string) int {
	base := 10*weightKg + 6.25*heightCm - 5*float64(age)
	if gender == GenderMale {
		return int(base + 5)
	}
	return int(base - 161)
}

// ActivityMultiplier returns the factor for level, falling back to moderate.
func ActivityMultiplier(level string) float64 {
	if m, ok := ActivityMultipliers[level]; ok {
		return m
	}
	return defaultMultiplier
}

// TDEE scales bmr by the activity multiplier, truncated.
func TDEE(bmr int, activityLevel string) int {
	return int(float64(bmr) * ActivityMultiplier(activityLevel))
}

// WeeksToTarget is ceil((target - now) / 7 days). A nil target means the
// default one-year horizon.
func WeeksToTarget(target *time.Time, now time.Time) int {
	if target == nil {
		return defaultWeeksToTarget
	}
	return int(math.Ceil(target.Sub(now).Hours() / hoursPerWeek))
}

// CalorieGoal adjusts tdee for a weight target. It reports adjusted=false when
// a differing target exists but the horizon is zero or negative weeks; the
// goal then stays at tdee.
func CalorieGoal(bmr, tdee int, weightKg float64, targetWeight *float64, targetDate *time.Time, now time.Time) (goal int, adjusted bool) {
	if targetWeight == nil || *targetWeight == weightKg {
		return tdee, true
	}

	weeks := WeeksToTarget(targetDate, now)
	if weeks <= 0 {
		return tdee, false
	}

	delta := math.Abs(weightKg - *targetWeight)
	daily := delta * kcalPerKg / float64(weeks) / 7

	if *targetWeight < weightKg {
		return int(math.Max(float64(tdee)-daily, float64(bmr)*minGoalOverBMR)), true
	}
	return int(float64(tdee) + daily), true
}

// Macros is a daily macronutrient split in grams.
type Macros struct {
	Protein int `json:"protein"`
	Carbs   int `json:"carbs"`
	Fat     int `json:"fat"`
}

// MacroSplit divides calories 30/40/30 across protein, carbs and fat.
func MacroSplit(calories int) Macros {
	c := float64(calories)
	return Macros{
		Protein: int(c * proteinShare / kcalPerGramProtein),
		Carbs:   int(c * carbsShare / kcalPerGramCarbs),
		Fat:     int(c * fatShare / kcalPerGramFat),
	}
}

// GoalInput is the validated subset of a profile submission that goal
// derivation reads. Nil pointers are fields the user left empty.
type GoalInput struct {
	Height        float64
	Weight        float64
	Age           int
	Gender        string
	ActivityLevel string

	TargetWeight *float64
	TargetDate   *time.Time

	DailyCalorieGoal *int
	ProteinGoal      *int
	CarbsGoal        *int
	FatGoal          *int
	WaterGoal        *int
}

// Goals is what gets merged into the persisted profile.
type Goals struct {
	DailyCalorieGoal *int
	ProteinGoal      *int
	CarbsGoal        *int
	FatGoal          *int
	WaterGoal        int

	BMR  int
	TDEE int

	// Derived is set when the calorie goal was computed rather than supplied.
	Derived bool
	// TargetIgnored is set when a weight target exists but its date yields no
	// remaining weeks, leaving the goal at TDEE.
	TargetIgnored bool
}

// DeriveGoals fills in the calorie and macro goals when the user did not set a
// daily calorie goal. User-supplied values are never overwritten.
func DeriveGoals(in GoalInput, now time.Time) Goals {
	bmr := BMR(in.Weight, in.Height, in.Age, in.Gender)
	tdee := TDEE(bmr, in.ActivityLevel)

	out := Goals{
		DailyCalorieGoal: in.DailyCalorieGoal,
		ProteinGoal:      in.ProteinGoal,
		CarbsGoal:        in.CarbsGoal,
		FatGoal:          in.FatGoal,
		WaterGoal:        DefaultWaterGoal,
		BMR:              bmr,
		TDEE:             tdee,
	}
	if in.WaterGoal != nil {
		out.WaterGoal = *in.WaterGoal
	}

	if in.DailyCalorieGoal != nil {
		return out
	}

	goal, adjusted := CalorieGoal(bmr, tdee, in.Weight, in.TargetWeight, in.TargetDate, now)
	out.DailyCalorieGoal = &goal
	out.Derived = true
	out.TargetIgnored = !adjusted

	split := MacroSplit(goal)
	if out.ProteinGoal == nil {
		out.ProteinGoal = &split.Protein
	}
	if out.CarbsGoal == nil {
		out.CarbsGoal = &split.Carbs
	}
	if out.FatGoal == nil {
		out.FatGoal = &split.Fat
	}

	return out
}
