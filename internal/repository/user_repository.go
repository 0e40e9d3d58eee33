package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/gidia-app/nutricoach/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	EmailTaken(ctx context.Context, email string, except uuid.UUID) (bool, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, id uuid.UUID, fields map[string]any) error
	TouchLastActive(ctx context.Context, id uuid.UUID, at time.Time) error
	// DeleteWithOwnedRows hard-deletes the user and every row it owns in one
	// transaction.
	DeleteWithOwnedRows(ctx context.Context, id uuid.UUID) error
	// ListInactiveSince treats a user who never logged anything as last
	// active at sign-up.
	ListInactiveSince(ctx context.Context, before time.Time) ([]models.User, error)
	// EachBatch walks every user in primary key order.
	EachBatch(ctx context.Context, size int, fn func([]models.User) error) error
}

type gormUserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &gormUserRepository{db: db}
}

func (r *gormUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

func (r *gormUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("LOWER(email) = LOWER(?)", email).First(&user).Error; err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

func (r *gormUserRepository) EmailTaken(ctx context.Context, email string, except uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.User{}).
		Where("LOWER(email) = LOWER(?) AND id <> ?", email, except).
		Count(&count).Error
	return count > 0, err
}

func (r *gormUserRepository) Create(ctx context.Context, user *models.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	return duplicate(r.db.WithContext(ctx).Create(user).Error)
}

func (r *gormUserRepository) Update(ctx context.Context, id uuid.UUID, fields map[string]any) error {
	res := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return duplicate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *gormUserRepository) TouchLastActive(ctx context.Context, id uuid.UUID, at time.Time) error {
	return r.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", id).
		UpdateColumn("last_active_at", at).Error
}

func (r *gormUserRepository) DeleteWithOwnedRows(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		owned := []any{
			&models.RefreshToken{},
			&models.NutritionalProfile{},
			&models.SpotifyConnection{},
			&models.Alert{},
			&models.FoodLog{},
			&models.HydrationLog{},
			&models.CoachingCheckIn{},
			&models.UserDevice{},
		}
		for _, m := range owned {
			if err := tx.Where("user_id = ?", id).Delete(m).Error; err != nil {
				return fmt.Errorf("failed to delete %T: %w", m, err)
			}
		}

		res := tx.Unscoped().Delete(&models.User{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

func (r *gormUserRepository) ListInactiveSince(ctx context.Context, before time.Time) ([]models.User, error) {
	var users []models.User
	err := r.db.WithContext(ctx).
		Where("COALESCE(last_active_at, created_at) < ?", before).
		Order("COALESCE(last_active_at, created_at)").
		Find(&users).Error
	return users, err
}

func (r *gormUserRepository) EachBatch(ctx context.Context, size int, fn func([]models.User) error) error {
	var batch []models.User
	return r.db.WithContext(ctx).FindInBatches(&batch, size, func(_ *gorm.DB, _ int) error {
		return fn(batch)
	}).Error
}
