package devices

import (
	"time"

	"github.com/google/uuid"
)

type RegisterDeviceRequest struct {
	Platform string `json:"platform" validate:"required,oneof=android ios"`
	Token    string `json:"token" validate:"required,max=4096"`
}

type DeviceResponse struct {
	ID        uuid.UUID `json:"id"`
	Platform  string    `json:"platform"`
	Enabled   bool      `json:"enabled"`
	CreatedAt time.Time `json:"created_at"`
}
