package repository

import (
	"context"

	"github.com/gidia-app/nutricoach/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type IntegrationRepository interface {
	Spotify(ctx context.Context, userID uuid.UUID) (*models.SpotifyConnection, error)
	SetShareListening(ctx context.Context, userID uuid.UUID, share bool) error
	DeleteSpotify(ctx context.Context, userID uuid.UUID) error
}

type gormIntegrationRepository struct {
	db *gorm.DB
}

func NewIntegrationRepository(db *gorm.DB) IntegrationRepository {
	return &gormIntegrationRepository{db: db}
}

func (r *gormIntegrationRepository) Spotify(ctx context.Context, userID uuid.UUID) (*models.SpotifyConnection, error) {
	var conn models.SpotifyConnection
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&conn).Error; err != nil {
		return nil, notFound(err)
	}
	return &conn, nil
}

func (r *gormIntegrationRepository) SetShareListening(ctx context.Context, userID uuid.UUID, share bool) error {
	res := r.db.WithContext(ctx).Model(&models.SpotifyConnection{}).
		Where("user_id = ?", userID).
		Update("share_listening", share)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *gormIntegrationRepository) DeleteSpotify(ctx context.Context, userID uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.SpotifyConnection{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
