package repository

import (
	"context"

	"github.com/gidia-app/nutricoach/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DeviceRepository interface {
	// Upsert stores the device, refreshing the endpoint of a token the user
	// already registered.
	Upsert(ctx context.Context, device *models.UserDevice) error
	ListEnabled(ctx context.Context, userID uuid.UUID) ([]models.UserDevice, error)
	Disable(ctx context.Context, id uuid.UUID) error
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

type gormDeviceRepository struct {
	db *gorm.DB
}

func NewDeviceRepository(db *gorm.DB) DeviceRepository {
	return &gormDeviceRepository{db: db}
}

func (r *gormDeviceRepository) Upsert(ctx context.Context, device *models.UserDevice) error {
	if device.ID == uuid.Nil {
		device.ID = uuid.New()
	}
	device.Enabled = true
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "token_hash"}},
		DoUpdates: clause.AssignmentColumns([]string{"platform", "endpoint_arn", "enabled", "updated_at"}),
	}).Create(device).Error
}

func (r *gormDeviceRepository) ListEnabled(ctx context.Context, userID uuid.UUID) ([]models.UserDevice, error) {
	var devices []models.UserDevice
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND enabled = ?", userID, true).
		Order("created_at ASC").
		Find(&devices).Error
	return devices, err
}

func (r *gormDeviceRepository) Disable(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&models.UserDevice{}).
		Where("id = ?", id).
		UpdateColumn("enabled", false).Error
}

func (r *gormDeviceRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&models.UserDevice{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
