package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	PlatformAndroid = "android"
	PlatformIOS     = "ios"
)

// UserDevice is a mobile device registered for push notifications. The raw
// device token is never stored, only its hash.
type UserDevice struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_devices_token" json:"user_id"`
	Platform    string    `gorm:"size:16;not null" json:"platform"`
	TokenHash   string    `gorm:"size:64;not null;uniqueIndex:idx_user_devices_token" json:"-"`
	EndpointARN string    `gorm:"size:256;not null" json:"-"`
	Enabled     bool      `gorm:"not null;default:true" json:"enabled"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	User        User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}
