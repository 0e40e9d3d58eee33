package devices

import (
	"context"
	"errors"
	"log/slog"

	"github.com/gidia-app/nutricoach/internal/dto"
	"github.com/gidia-app/nutricoach/internal/models"
	"github.com/gidia-app/nutricoach/internal/modules"
	"github.com/gidia-app/nutricoach/internal/push"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Registrar is the part of the push service the endpoints use.
type Registrar interface {
	Register(ctx context.Context, userID uuid.UUID, platform, token string) (*models.UserDevice, error)
	Unregister(ctx context.Context, userID, id uuid.UUID) error
}

type DeviceHandler struct {
	devices Registrar
}

func NewDeviceHandler(devices Registrar) *DeviceHandler {
	return &DeviceHandler{devices: devices}
}

func (h *DeviceHandler) Register(c *fiber.Ctx) error {
	userID, ok := modules.UserID(c)
	if !ok {
		return modules.Unauthorized(c)
	}

	var req RegisterDeviceRequest
	if ok, err := modules.Bind(c, &req); !ok {
		return err
	}

	device, err := h.devices.Register(c.UserContext(), userID, req.Platform, req.Token)
	if err != nil {
		if errors.Is(err, push.ErrPlatformNotConfigured) || errors.Is(err, push.ErrUnknownPlatform) {
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
				Error: true, Message: "Push notifications are not available for this platform",
			})
		}
		slog.Error("device registration failed", "user_id", userID.String(), "error", err)
		return modules.ServerError(c, "Failed to register device")
	}

	return c.Status(fiber.StatusCreated).JSON(DeviceResponse{
		ID:        device.ID,
		Platform:  device.Platform,
		Enabled:   device.Enabled,
		CreatedAt: device.CreatedAt,
	})
}

func (h *DeviceHandler) Delete(c *fiber.Ctx) error {
	userID, ok := modules.UserID(c)
	if !ok {
		return modules.Unauthorized(c)
	}

	id, err := modules.ParamID(c)
	if err != nil {
		return modules.BadRequest(c, "Invalid device ID")
	}

	if err := h.devices.Unregister(c.UserContext(), userID, id); err != nil {
		if errors.Is(err, push.ErrDeviceNotFound) {
			return modules.NotFound(c, "Device not found")
		}
		return modules.ServerError(c, "Failed to remove device")
	}

	return c.SendStatus(fiber.StatusNoContent)
}
