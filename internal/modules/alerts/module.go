package alerts

import (
	"github.com/gidia-app/nutricoach/internal/config"
	"github.com/gidia-app/nutricoach/internal/repository"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type AlertsModule struct{}

func New() *AlertsModule {
	return &AlertsModule{}
}

func (m *AlertsModule) ID() string { return "alerts" }

func (m *AlertsModule) Models() []interface{} {
	return nil
}

func (m *AlertsModule) RegisterRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config) {
	handler := NewAlertHandler(repository.NewAlertRepository(db))

	router.Get("/alerts", handler.List)
	router.Post("/alerts/read-all", handler.MarkAllRead)
	router.Post("/alerts/:id/read", handler.MarkRead)
	router.Delete("/alerts/:id", handler.Delete)
}
