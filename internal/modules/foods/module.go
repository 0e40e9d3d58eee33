package foods

import (
	"github.com/gidia-app/nutricoach/internal/config"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type FoodsModule struct{}

func New() *FoodsModule {
	return &FoodsModule{}
}

func (m *FoodsModule) ID() string { return "foods" }

func (m *FoodsModule) Models() []interface{} {
	return []interface{}{&Food{}}
}

func (m *FoodsModule) RegisterRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config) {
	handler := NewFoodHandler(NewFoodService(db))

	router.Get("/foods", handler.List)
	router.Get("/foods/:id", handler.Get)
}

// RegisterAdminRoutes mounts catalogue maintenance.
func (m *FoodsModule) RegisterAdminRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config) {
	handler := NewFoodHandler(NewFoodService(db))

	router.Post("/foods", handler.Create)
	router.Put("/foods/:id", handler.Update)
	router.Delete("/foods/:id", handler.Delete)
}
