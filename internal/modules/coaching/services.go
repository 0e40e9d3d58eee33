package coaching

import (
	"context"
	"errors"
	"math"
	"strings"

	"github.com/gidia-app/nutricoach/internal/models"
	"github.com/gidia-app/nutricoach/internal/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CoachingService struct {
	db       *gorm.DB
	profiles repository.ProfileRepository
}

func NewCoachingService(db *gorm.DB, profiles repository.ProfileRepository) *CoachingService {
	return &CoachingService{db: db, profiles: profiles}
}

func (s *CoachingService) Create(ctx context.Context, userID uuid.UUID, req CheckInRequest) (*models.CoachingCheckIn, error) {
	checkIn := models.CoachingCheckIn{
		ID:     uuid.New(),
		UserID: userID,
		Weight: *req.Weight,
		Energy: req.Energy,
		Notes:  strings.TrimSpace(req.Notes),
	}
	if err := s.db.WithContext(ctx).Create(&checkIn).Error; err != nil {
		return nil, err
	}
	return &checkIn, nil
}

func (s *CoachingService) List(ctx context.Context, userID uuid.UUID, limit, offset int) ([]models.CoachingCheckIn, int64, error) {
	query := s.db.WithContext(ctx).Model(&models.CoachingCheckIn{}).Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var checkIns []models.CoachingCheckIn
	err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&checkIns).Error
	return checkIns, total, err
}

func (s *CoachingService) Summary(ctx context.Context, userID uuid.UUID) (*Summary, error) {
	var checkIns []models.CoachingCheckIn
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at ASC").Find(&checkIns).Error
	if err != nil {
		return nil, err
	}

	var target *float64
	p, err := s.profiles.Get(ctx, userID)
	switch {
	case errors.Is(err, repository.ErrNotFound):
	case err != nil:
		return nil, err
	default:
		target = p.TargetWeight
	}

	return Summarize(checkIns, target), nil
}

// Summarize expects check-ins oldest first.
func Summarize(checkIns []models.CoachingCheckIn, target *float64) *Summary {
	out := &Summary{CheckIns: len(checkIns), TargetWeight: target}
	if len(checkIns) == 0 {
		return out
	}

	first := checkIns[0].Weight
	last := checkIns[len(checkIns)-1].Weight
	change := round1(last - first)
	out.StartWeight = &first
	out.CurrentWeight = &last
	out.WeightChange = &change

	if target != nil {
		to := round1(last - *target)
		out.ToTarget = &to
	}

	energy := 0
	for _, c := range checkIns {
		energy += c.Energy
	}
	avg := round1(float64(energy) / float64(len(checkIns)))
	out.AverageEnergy = &avg

	return out
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
