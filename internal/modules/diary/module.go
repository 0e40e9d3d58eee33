// Package diary is the food log of the mobile API, served under /nutrition.
package diary

import (
	"github.com/gidia-app/nutricoach/internal/config"
	"github.com/gidia-app/nutricoach/internal/modules/foods"
	"github.com/gidia-app/nutricoach/internal/repository"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type DiaryModule struct{}

func New() *DiaryModule {
	return &DiaryModule{}
}

func (m *DiaryModule) ID() string { return "nutrition" }

// Models is empty: food logs are core models, migrated with the user tables.
func (m *DiaryModule) Models() []interface{} {
	return nil
}

func (m *DiaryModule) RegisterRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config) {
	svc := NewDiaryService(db, foods.NewFoodService(db), repository.NewProfileRepository(db), repository.NewProgressRepository(db))
	handler := NewDiaryHandler(svc)

	router.Get("/nutrition/logs", handler.List)
	router.Post("/nutrition/logs", handler.Create)
	router.Delete("/nutrition/logs/:id", handler.Delete)
	router.Get("/nutrition/summary", handler.Summary)
}
