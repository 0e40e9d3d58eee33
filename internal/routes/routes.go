package routes

import (
	"time"

	"github.com/gidia-app/nutricoach/internal/config"
	"github.com/gidia-app/nutricoach/internal/handlers"
	"github.com/gidia-app/nutricoach/internal/metrics"
	"github.com/gidia-app/nutricoach/internal/middleware"
	"github.com/gidia-app/nutricoach/internal/modules"
	"github.com/gidia-app/nutricoach/internal/repository"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"gorm.io/gorm"
)

// Handlers groups the controllers that live outside the API modules.
type Handlers struct {
	Auth                *handlers.AuthHandler
	Health              *handlers.HealthHandler
	Jobs                *handlers.JobsHandler
	SettingsProfile     *handlers.SettingsProfileHandler
	SettingsPassword    *handlers.SettingsPasswordHandler
	SettingsNutrition   *handlers.SettingsNutritionalProfileHandler
	SettingsIntegration *handlers.SettingsIntegrationsHandler
	SettingsAccount     *handlers.SettingsAccountHandler
}

func Setup(
	app *fiber.App,
	cfg *config.Config,
	db *gorm.DB,
	h Handlers,
	users repository.UserRepository,
	mods []modules.Module,
) {
	app.Get("/metrics", metrics.Handler())

	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", h.Health.Check)

	// Auth-specific rate limit: 10 req/min per IP (stricter)
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/register", h.Auth.Register)
	auth.Post("/login", h.Auth.Login)
	auth.Post("/refresh", h.Auth.Refresh)

	// Protected auth routes get JWT per route so the group above stays public
	api.Post("/auth/logout", middleware.JWTProtected(cfg), h.Auth.Logout)
	api.Delete("/auth/account", middleware.JWTProtected(cfg), h.Auth.DeleteAccount)

	admin := api.Group("/admin", middleware.JWTProtected(cfg), middleware.AdminRequired(users, cfg))
	admin.Get("/jobs", h.Jobs.List)
	admin.Post("/jobs/:name/run", h.Jobs.Run)

	protected := api.Group("", middleware.JWTProtected(cfg), middleware.TrackActivity(users))
	for _, m := range mods {
		m.RegisterRoutes(protected, db, cfg)
		if am, ok := m.(modules.AdminModule); ok {
			am.RegisterAdminRoutes(admin, db, cfg)
		}
	}

	web(app, cfg, h, users)
}

func web(app *fiber.App, cfg *config.Config, h Handlers, users repository.UserRepository) {
	app.Get("/login", h.Auth.LoginPage)
	app.Post("/login", limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}), h.Auth.WebLogin)
	app.Post("/logout", middleware.WebProtected(cfg), h.Auth.WebLogout)

	settings := app.Group("/settings", middleware.WebProtected(cfg), middleware.TrackActivity(users))
	settings.Get("/", func(c *fiber.Ctx) error {
		return c.Redirect("/settings/profile", fiber.StatusFound)
	})

	settings.Get("/profile", h.SettingsProfile.Edit)
	settings.Patch("/profile", h.SettingsProfile.Update)
	settings.Post("/profile/avatar", h.SettingsProfile.UploadAvatar)

	settings.Get("/password", h.SettingsPassword.Edit)
	settings.Put("/password", h.SettingsPassword.Update)

	settings.Get("/nutritional-profile", h.SettingsNutrition.Edit)
	settings.Post("/nutritional-profile", h.SettingsNutrition.Update)
	settings.Delete("/nutritional-profile", h.SettingsNutrition.Destroy)

	settings.Get("/integrations", h.SettingsIntegration.Edit)
	settings.Patch("/integrations/spotify", h.SettingsIntegration.UpdateSpotify)
	settings.Delete("/integrations/spotify", h.SettingsIntegration.DisconnectSpotify)

	settings.Delete("/account", h.SettingsAccount.Destroy)
}
