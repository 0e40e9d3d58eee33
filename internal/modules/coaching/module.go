package coaching

import (
	"github.com/gidia-app/nutricoach/internal/config"
	"github.com/gidia-app/nutricoach/internal/repository"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type CoachingModule struct{}

func New() *CoachingModule {
	return &CoachingModule{}
}

func (m *CoachingModule) ID() string { return "coaching" }

func (m *CoachingModule) Models() []interface{} {
	return nil
}

func (m *CoachingModule) RegisterRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config) {
	handler := NewCoachingHandler(NewCoachingService(db, repository.NewProfileRepository(db)))

	router.Get("/coaching/check-ins", handler.List)
	router.Post("/coaching/check-ins", handler.Create)
	router.Get("/coaching/summary", handler.Summary)
}
