package announcements

import (
	"github.com/gidia-app/nutricoach/internal/config"
	"github.com/gidia-app/nutricoach/internal/modules"
	"github.com/gidia-app/nutricoach/internal/repository"
	"github.com/gidia-app/nutricoach/internal/services"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type AnnouncementsModule struct {
	mailer services.Mailer
}

func New(mailer services.Mailer) *AnnouncementsModule {
	return &AnnouncementsModule{mailer: mailer}
}

func (m *AnnouncementsModule) ID() string { return "announcements" }

func (m *AnnouncementsModule) Models() []interface{} {
	return nil
}

// RegisterRoutes has nothing for regular users.
func (m *AnnouncementsModule) RegisterRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config) {}

func (m *AnnouncementsModule) RegisterAdminRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config) {
	b := NewBroadcaster(repository.NewUserRepository(db), m.mailer)
	router.Post("/platform-updates", Handler(b))
}

func Handler(b *Broadcaster) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req PlatformUpdateRequest
		if ok, err := modules.Bind(c, &req); !ok {
			return err
		}

		b.Start(c.UserContext(), req)
		return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"message": "Platform update is being queued"})
	}
}
