package hydration

import (
	"github.com/gidia-app/nutricoach/internal/config"
	"github.com/gidia-app/nutricoach/internal/repository"
	"github.com/gidia-app/nutricoach/internal/services"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type HydrationModule struct {
	mailer services.Mailer
	alerts repository.AlertRepository
}

// New takes the alert store goal alerts are written to, so alerts created
// here reach the same push fan-out as scheduled ones.
func New(mailer services.Mailer, alerts repository.AlertRepository) *HydrationModule {
	return &HydrationModule{mailer: mailer, alerts: alerts}
}

func (m *HydrationModule) ID() string { return "hydration" }

func (m *HydrationModule) Models() []interface{} {
	return nil
}

func (m *HydrationModule) RegisterRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config) {
	notifier := NewGoalNotifier(m.alerts, repository.NewUserRepository(db), m.mailer)
	svc := NewHydrationService(db, repository.NewProfileRepository(db), notifier)
	handler := NewHydrationHandler(svc)

	router.Get("/hydration", handler.List)
	router.Post("/hydration", handler.Create)
	router.Get("/hydration/summary", handler.Summary)
	router.Delete("/hydration/:id", handler.Delete)
}
