package devices

import (
	"github.com/gidia-app/nutricoach/internal/config"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type DevicesModule struct {
	registrar Registrar
}

func New(registrar Registrar) *DevicesModule {
	return &DevicesModule{registrar: registrar}
}

func (m *DevicesModule) ID() string { return "devices" }

func (m *DevicesModule) Models() []interface{} {
	return nil
}

func (m *DevicesModule) RegisterRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config) {
	handler := NewDeviceHandler(m.registrar)

	router.Post("/devices", handler.Register)
	router.Delete("/devices/:id", handler.Delete)
}
