package usercontext

import (
	"errors"
	"log/slog"

	"github.com/gidia-app/nutricoach/internal/config"
	"github.com/gidia-app/nutricoach/internal/modules"
	"github.com/gidia-app/nutricoach/internal/repository"
	"github.com/gidia-app/nutricoach/internal/services"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type ContextModule struct {
	accounts *services.ProfileService
	profiles *services.NutritionalProfileService
}

func New(accounts *services.ProfileService, profiles *services.NutritionalProfileService) *ContextModule {
	return &ContextModule{accounts: accounts, profiles: profiles}
}

func (m *ContextModule) ID() string { return "context" }

func (m *ContextModule) Models() []interface{} {
	return nil
}

func (m *ContextModule) RegisterRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config) {
	b := NewBuilder(m.accounts, m.profiles, repository.NewProgressRepository(db), repository.NewAlertRepository(db))
	router.Get("/context", Handler(b))
}

func Handler(b *Builder) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := modules.UserID(c)
		if !ok {
			return modules.Unauthorized(c)
		}

		snap, err := b.Build(c.UserContext(), userID)
		if err != nil {
			if errors.Is(err, services.ErrUserNotFound) {
				return modules.NotFound(c, "User not found")
			}
			slog.Error("context snapshot failed", "user_id", userID.String(), "error", err)
			return modules.ServerError(c, "Failed to build context")
		}
		return c.JSON(snap)
	}
}
