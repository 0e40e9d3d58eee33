package models

import (
	"time"

	"github.com/google/uuid"
)

type HydrationLog struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index:idx_hydration_logs_user_logged" json:"user_id"`
	AmountML  int       `gorm:"not null" json:"amount_ml"`
	LoggedAt  time.Time `gorm:"not null;index:idx_hydration_logs_user_logged" json:"logged_at"`
	CreatedAt time.Time `json:"created_at"`
	User      User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}
