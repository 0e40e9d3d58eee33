package models

import (
	"time"

	"github.com/google/uuid"
)

// CoachingCheckIn is a self-reported weigh-in with how the user feels.
type CoachingCheckIn struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index:idx_checkins_user_created" json:"user_id"`
	Weight    float64   `gorm:"not null" json:"weight"`
	Energy    int       `gorm:"not null" json:"energy"`
	Notes     string    `gorm:"type:text" json:"notes"`
	CreatedAt time.Time `gorm:"index:idx_checkins_user_created" json:"created_at"`
	User      User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}
