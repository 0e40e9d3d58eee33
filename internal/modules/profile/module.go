package profile

import (
	"github.com/gidia-app/nutricoach/internal/config"
	"github.com/gidia-app/nutricoach/internal/services"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type ProfileModule struct {
	accounts *services.ProfileService
	profiles *services.NutritionalProfileService
}

func New(accounts *services.ProfileService, profiles *services.NutritionalProfileService) *ProfileModule {
	return &ProfileModule{accounts: accounts, profiles: profiles}
}

func (m *ProfileModule) ID() string { return "profile" }

func (m *ProfileModule) Models() []interface{} {
	return nil
}

func (m *ProfileModule) RegisterRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config) {
	handler := NewProfileHandler(m.accounts, m.profiles)

	router.Get("/profile", handler.Get)
	router.Put("/profile/nutritional", handler.UpdateNutritional)
}
