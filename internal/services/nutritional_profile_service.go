package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gidia-app/nutricoach/internal/dto"
	"github.com/gidia-app/nutricoach/internal/metrics"
	"github.com/gidia-app/nutricoach/internal/models"
	"github.com/gidia-app/nutricoach/internal/nutrition"
	"github.com/gidia-app/nutricoach/internal/repository"
	"github.com/gidia-app/nutricoach/internal/validation"
	"github.com/google/uuid"
)

var ErrProfileNotFound = errors.New("nutritional profile not found")

type NutritionalProfileService struct {
	profiles repository.ProfileRepository
	now      func() time.Time
}

func NewNutritionalProfileService(profiles repository.ProfileRepository) *NutritionalProfileService {
	return &NutritionalProfileService{profiles: profiles, now: time.Now}
}

// ProfileView is a stored profile with its derived read-model fields.
type ProfileView struct {
	Profile *models.NutritionalProfile `json:"profile"`
	Metrics *nutrition.Metrics         `json:"metrics"`
}

func (s *NutritionalProfileService) Get(ctx context.Context, userID uuid.UUID) (*ProfileView, error) {
	p, err := s.profiles.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}

	m := nutrition.ComputeMetrics(BodyOf(p))
	return &ProfileView{Profile: p, Metrics: &m}, nil
}

// Save derives any missing goals from req and upserts the user's profile.
// req must already have passed validation.
func (s *NutritionalProfileService) Save(ctx context.Context, userID uuid.UUID, req *dto.NutritionalProfileRequest) (*ProfileView, error) {
	now := s.now()

	var targetDate *time.Time
	if req.TargetDate != nil {
		d, err := time.Parse(validation.DateLayout, *req.TargetDate)
		if err != nil {
			return nil, fmt.Errorf("invalid target date: %w", err)
		}
		targetDate = &d
	}

	goals := nutrition.DeriveGoals(nutrition.GoalInput{
		Height:           *req.Height,
		Weight:           *req.Weight,
		Age:              *req.Age,
		Gender:           req.Gender,
		ActivityLevel:    req.ActivityLevel,
		TargetWeight:     req.TargetWeight,
		TargetDate:       targetDate,
		DailyCalorieGoal: req.DailyCalorieGoal,
		ProteinGoal:      req.ProteinGoal,
		CarbsGoal:        req.CarbsGoal,
		FatGoal:          req.FatGoal,
		WaterGoal:        req.WaterGoal,
	}, now)

	switch {
	case goals.TargetIgnored:
		metrics.ProfileGoalsDerived.WithLabelValues("target_ignored").Inc()
		slog.Warn("target date leaves no weeks, calorie goal kept at TDEE",
			"user_id", userID.String(),
			"target_date", *req.TargetDate,
			"tdee", goals.TDEE,
		)
	case goals.Derived:
		metrics.ProfileGoalsDerived.WithLabelValues("derived").Inc()
	default:
		metrics.ProfileGoalsDerived.WithLabelValues("supplied").Inc()
	}

	p := &models.NutritionalProfile{
		UserID:                userID,
		Height:                *req.Height,
		Weight:                *req.Weight,
		Age:                   *req.Age,
		Gender:                req.Gender,
		ActivityLevel:         req.ActivityLevel,
		WristCircumference:    req.WristCircumference,
		WaistCircumference:    req.WaistCircumference,
		HipCircumference:      req.HipCircumference,
		NeckCircumference:     req.NeckCircumference,
		BodyFatPercentage:     req.BodyFatPercentage,
		MuscleMassPercentage:  req.MuscleMassPercentage,
		BodyFrame:             req.BodyFrame,
		BodyType:              req.BodyType,
		TargetWeight:          req.TargetWeight,
		TargetDate:            targetDate,
		DailyCalorieGoal:      goals.DailyCalorieGoal,
		ProteinGoal:           goals.ProteinGoal,
		CarbsGoal:             goals.CarbsGoal,
		FatGoal:               goals.FatGoal,
		WaterGoal:             goals.WaterGoal,
		MedicalConditions:     req.MedicalConditions,
		DietaryRestrictions:   req.DietaryRestrictions,
		IsMedicallySupervised: req.IsMedicallySupervised != nil && *req.IsMedicallySupervised,
	}

	if err := s.profiles.Upsert(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to save profile: %w", err)
	}

	return s.Get(ctx, userID)
}

func (s *NutritionalProfileService) Delete(ctx context.Context, userID uuid.UUID) error {
	if err := s.profiles.Delete(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrProfileNotFound
		}
		return fmt.Errorf("failed to delete profile: %w", err)
	}
	return nil
}

// BodyOf maps a stored profile onto the metric calculator's input.
func BodyOf(p *models.NutritionalProfile) nutrition.Body {
	return nutrition.Body{
		Height:            p.Height,
		Weight:            p.Weight,
		Age:               p.Age,
		Gender:            p.Gender,
		ActivityLevel:     p.ActivityLevel,
		Wrist:             p.WristCircumference,
		Waist:             p.WaistCircumference,
		Hip:               p.HipCircumference,
		Neck:              p.NeckCircumference,
		BodyFatPercentage: p.BodyFatPercentage,
		BodyFrame:         p.BodyFrame,
		BodyType:          p.BodyType,
	}
}
