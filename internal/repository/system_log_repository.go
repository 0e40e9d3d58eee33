package repository

import (
	"context"
	"time"

	"github.com/gidia-app/nutricoach/internal/models"
	"gorm.io/gorm"
)

type SystemLogRepository interface {
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

type gormSystemLogRepository struct {
	db *gorm.DB
}

func NewSystemLogRepository(db *gorm.DB) SystemLogRepository {
	return &gormSystemLogRepository{db: db}
}

func (r *gormSystemLogRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Where("timestamp < ?", cutoff).Delete(&models.SystemLog{})
	return res.RowsAffected, res.Error
}
