package repository

import (
	"context"
	"time"

	"github.com/gidia-app/nutricoach/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AlertRepository interface {
	Create(ctx context.Context, alert *models.Alert) error
	List(ctx context.Context, userID uuid.UUID, unreadOnly bool, limit int) ([]models.Alert, error)
	CountUnread(ctx context.Context, userID uuid.UUID) (int64, error)
	MarkRead(ctx context.Context, userID, id uuid.UUID, at time.Time) error
	MarkAllRead(ctx context.Context, userID uuid.UUID, at time.Time) (int64, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
	// ExistsSince reports whether the user already got an alert of kind at or
	// after since.
	ExistsSince(ctx context.Context, userID uuid.UUID, kind string, since time.Time) (bool, error)
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

type gormAlertRepository struct {
	db *gorm.DB
}

func NewAlertRepository(db *gorm.DB) AlertRepository {
	return &gormAlertRepository{db: db}
}

func (r *gormAlertRepository) Create(ctx context.Context, alert *models.Alert) error {
	if alert.ID == uuid.Nil {
		alert.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(alert).Error
}

func (r *gormAlertRepository) List(ctx context.Context, userID uuid.UUID, unreadOnly bool, limit int) ([]models.Alert, error) {
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if unreadOnly {
		q = q.Where("read_at IS NULL")
	}
	var alerts []models.Alert
	err := q.Order("created_at DESC").Limit(limit).Find(&alerts).Error
	return alerts, err
}

func (r *gormAlertRepository) CountUnread(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Alert{}).
		Where("user_id = ? AND read_at IS NULL", userID).
		Count(&count).Error
	return count, err
}

func (r *gormAlertRepository) MarkRead(ctx context.Context, userID, id uuid.UUID, at time.Time) error {
	var alert models.Alert
	if err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&alert).Error; err != nil {
		return notFound(err)
	}
	if alert.ReadAt != nil {
		return nil
	}
	return r.db.WithContext(ctx).Model(&alert).Update("read_at", at).Error
}

func (r *gormAlertRepository) MarkAllRead(ctx context.Context, userID uuid.UUID, at time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Model(&models.Alert{}).
		Where("user_id = ? AND read_at IS NULL", userID).
		Update("read_at", at)
	return res.RowsAffected, res.Error
}

func (r *gormAlertRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&models.Alert{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *gormAlertRepository) ExistsSince(ctx context.Context, userID uuid.UUID, kind string, since time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Alert{}).
		Where("user_id = ? AND type = ? AND created_at >= ?", userID, kind, since).
		Count(&count).Error
	return count > 0, err
}

func (r *gormAlertRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Where("created_at < ?", cutoff).Delete(&models.Alert{})
	return res.RowsAffected, res.Error
}
