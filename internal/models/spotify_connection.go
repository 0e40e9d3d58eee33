package models

import (
	"time"

	"github.com/google/uuid"
)

// SpotifyConnection records a linked Spotify account. Token exchange lives in
// the OAuth flow, which this service does not own.
type SpotifyConnection struct {
	ID             uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID         uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	SpotifyUserID  string    `gorm:"size:255;not null" json:"spotify_user_id"`
	DisplayName    string    `gorm:"size:255" json:"display_name"`
	ShareListening bool      `gorm:"default:false" json:"share_listening"`
	ConnectedAt    time.Time `json:"connected_at"`
	UpdatedAt      time.Time `json:"updated_at"`
	User           User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}
