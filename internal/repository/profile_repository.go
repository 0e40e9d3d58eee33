package repository

import (
	"context"

	"github.com/gidia-app/nutricoach/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProfileRepository interface {
	Get(ctx context.Context, userID uuid.UUID) (*models.NutritionalProfile, error)
	// Upsert inserts the profile or replaces every column of the user's
	// existing row.
	Upsert(ctx context.Context, profile *models.NutritionalProfile) error
	Delete(ctx context.Context, userID uuid.UUID) error
	EachBatch(ctx context.Context, size int, fn func([]models.NutritionalProfile) error) error
}

type gormProfileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &gormProfileRepository{db: db}
}

func (r *gormProfileRepository) Get(ctx context.Context, userID uuid.UUID) (*models.NutritionalProfile, error) {
	var p models.NutritionalProfile
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&p).Error; err != nil {
		return nil, notFound(err)
	}
	return &p, nil
}

func (r *gormProfileRepository) Upsert(ctx context.Context, profile *models.NutritionalProfile) error {
	if profile.ID == uuid.Nil {
		profile.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"height", "weight", "age", "gender", "activity_level",
			"wrist_circumference", "waist_circumference", "hip_circumference", "neck_circumference",
			"body_fat_percentage", "muscle_mass_percentage", "body_frame", "body_type",
			"target_weight", "target_date", "daily_calorie_goal", "protein_goal", "carbs_goal",
			"fat_goal", "water_goal", "medical_conditions", "dietary_restrictions",
			"is_medically_supervised", "updated_at",
		}),
	}).Create(profile).Error
}

func (r *gormProfileRepository) Delete(ctx context.Context, userID uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.NutritionalProfile{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *gormProfileRepository) EachBatch(ctx context.Context, size int, fn func([]models.NutritionalProfile) error) error {
	var batch []models.NutritionalProfile
	return r.db.WithContext(ctx).Preload("User").
		FindInBatches(&batch, size, func(_ *gorm.DB, _ int) error {
			return fn(batch)
		}).Error
}
