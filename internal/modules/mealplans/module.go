package mealplans

import (
	"github.com/gidia-app/nutricoach/internal/config"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type MealPlansModule struct{}

func New() *MealPlansModule {
	return &MealPlansModule{}
}

func (m *MealPlansModule) ID() string { return "meal-plans" }

func (m *MealPlansModule) Models() []interface{} {
	return []interface{}{&MealPlan{}}
}

func (m *MealPlansModule) RegisterRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config) {
	handler := NewMealPlanHandler(NewMealPlanService(db))

	router.Get("/meal-plans", handler.List)
	router.Post("/meal-plans", handler.Create)
	router.Get("/meal-plans/:id", handler.Get)
	router.Delete("/meal-plans/:id", handler.Delete)
}
