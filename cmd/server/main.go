package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/gidia-app/nutricoach/internal/authctx"
	"github.com/gidia-app/nutricoach/internal/config"
	"github.com/gidia-app/nutricoach/internal/database"
	"github.com/gidia-app/nutricoach/internal/handlers"
	"github.com/gidia-app/nutricoach/internal/inertia"
	"github.com/gidia-app/nutricoach/internal/jobs"
	"github.com/gidia-app/nutricoach/internal/logging"
	"github.com/gidia-app/nutricoach/internal/mail"
	"github.com/gidia-app/nutricoach/internal/metrics"
	"github.com/gidia-app/nutricoach/internal/middleware"
	"github.com/gidia-app/nutricoach/internal/modules"
	"github.com/gidia-app/nutricoach/internal/modules/alerts"
	"github.com/gidia-app/nutricoach/internal/modules/announcements"
	"github.com/gidia-app/nutricoach/internal/modules/coaching"
	"github.com/gidia-app/nutricoach/internal/modules/devices"
	"github.com/gidia-app/nutricoach/internal/modules/diary"
	"github.com/gidia-app/nutricoach/internal/modules/foods"
	"github.com/gidia-app/nutricoach/internal/modules/hydration"
	"github.com/gidia-app/nutricoach/internal/modules/mealplans"
	"github.com/gidia-app/nutricoach/internal/modules/profile"
	"github.com/gidia-app/nutricoach/internal/modules/usercontext"
	"github.com/gidia-app/nutricoach/internal/push"
	"github.com/gidia-app/nutricoach/internal/repository"
	"github.com/gidia-app/nutricoach/internal/routes"
	"github.com/gidia-app/nutricoach/internal/scheduler"
	"github.com/gidia-app/nutricoach/internal/services"
	"github.com/gidia-app/nutricoach/internal/storage"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/fiber/v2/middleware/session"
)

func main() {
	// .env is optional; real environments set variables directly
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logging.Setup("info")
		slog.Error("config load failed", "error", err)
		os.Exit(1)
	}

	// Structured logging (JSON to stdout)
	stdout := logging.Setup(cfg.LogLevel)

	ctx := context.Background()

	// Database
	if err := database.Connect(cfg); err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}

	if err := database.MigrateShared(); err != nil {
		slog.Error("shared migration failed", "error", err)
		os.Exit(1)
	}

	// PostgreSQL log handler (ERROR+ async batch)
	pgLogHandler := logging.NewPGHandler(database.DB)
	slog.SetDefault(slog.New(logging.NewMultiHandler(stdout, pgLogHandler)))

	// Redis (scheduler locks)
	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			slog.Warn("redis unreachable, scheduler locks will fail until it recovers", "addr", cfg.RedisAddr, "error", err)
		}
		cancel()
	}

	// AWS
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWSRegion))
	if err != nil {
		slog.Error("aws config load failed", "error", err)
		os.Exit(1)
	}

	var sender mail.Sender = mail.LogSender{}
	if cfg.MailDriver == "ses" {
		sender = mail.NewSESSender(ses.NewFromConfig(awsCfg), cfg.MailFrom)
	}

	var avatars services.AvatarStore
	if cfg.S3Bucket != "" {
		avatars = storage.NewS3Store(s3.NewFromConfig(awsCfg), cfg.S3Bucket, cfg.S3PublicURL)
	} else {
		slog.Warn("S3_BUCKET not set, avatar uploads disabled")
	}

	// Mail
	renderer, err := mail.NewRenderer(cfg.AppURL)
	if err != nil {
		slog.Error("mail templates failed to parse", "error", err)
		os.Exit(1)
	}
	mailer := mail.NewQueue(renderer, sender, cfg.MailWorkers, cfg.MailQueueSize)

	// Repositories
	userRepo := repository.NewUserRepository(database.DB)
	tokenRepo := repository.NewTokenRepository(database.DB)
	profileRepo := repository.NewProfileRepository(database.DB)
	integrationRepo := repository.NewIntegrationRepository(database.DB)
	alertRepo := repository.NewAlertRepository(database.DB)
	progressRepo := repository.NewProgressRepository(database.DB)
	logRepo := repository.NewSystemLogRepository(database.DB)
	deviceRepo := repository.NewDeviceRepository(database.DB)

	// Push: alerts created by modules and jobs fan out to devices
	pushService := push.NewService(deviceRepo, sns.NewFromConfig(awsCfg), cfg.SNSAndroidARN, cfg.SNSIOSARN)
	alertPub := push.NewAlertPublisher(alertRepo, pushService)

	// Services
	authService := services.NewAuthService(userRepo, tokenRepo, mailer, cfg)
	accountService := services.NewAccountService(userRepo, tokenRepo, mailer)
	profileService := services.NewProfileService(userRepo, avatars, cfg.MaxAvatarSize)
	nutritionService := services.NewNutritionalProfileService(profileRepo)
	integrationService := services.NewIntegrationService(integrationRepo)

	// Modules
	mods := []modules.Module{
		profile.New(profileService, nutritionService),
		foods.New(),
		diary.New(),
		hydration.New(mailer, alertPub),
		coaching.New(),
		alerts.New(),
		usercontext.New(profileService, nutritionService),
		mealplans.New(),
		announcements.New(mailer),
		devices.New(pushService),
	}

	for _, m := range mods {
		if models := m.Models(); len(models) > 0 {
			if err := database.MigrateModels(models); err != nil {
				slog.Error("module migration failed", "module", m.ID(), "error", err)
				os.Exit(1)
			}
			slog.Info("module migrated", "module", m.ID(), "models", len(models))
		}
	}

	// Scheduler
	var locker scheduler.Locker = scheduler.LocalLocker{}
	if rdb != nil {
		locker = scheduler.NewRedisLocker(rdb, "nutricoach:")
	}
	sched := scheduler.New(locker)
	jobs.Register(sched, jobs.Deps{
		Users:    userRepo,
		Alerts:   alertPub,
		Profiles: profileRepo,
		Progress: progressRepo,
		Logs:     logRepo,
		Mailer:   mailer,
	}, cfg)

	if cfg.SchedulerEnabled {
		sched.Start(ctx)
	}

	// Handlers
	pages := inertia.New(cfg.AssetVersion, session.New(), func(c *fiber.Ctx) fiber.Map {
		return fiber.Map{"auth": fiber.Map{"email": authctx.GetEmail(c)}}
	})
	h := routes.Handlers{
		Auth:                handlers.NewAuthHandler(authService, accountService, pages, cfg),
		Health:              handlers.NewHealthHandler(rdb),
		Jobs:                handlers.NewJobsHandler(sched),
		SettingsProfile:     handlers.NewSettingsProfileHandler(profileService, pages),
		SettingsPassword:    handlers.NewSettingsPasswordHandler(profileService, pages),
		SettingsNutrition:   handlers.NewSettingsNutritionalProfileHandler(nutritionService, pages),
		SettingsIntegration: handlers.NewSettingsIntegrationsHandler(integrationService, pages),
		SettingsAccount:     handlers.NewSettingsAccountHandler(accountService, pages, cfg.AuthCookieName),
	}

	// Sentry error tracking
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      cfg.AppEnv,
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
		}
	}

	// Fiber app
	app := fiber.New(fiber.Config{
		BodyLimit:    4 * 1024 * 1024,
		ErrorHandler: customErrorHandler,
	})

	app.Use(sentryfiber.New(sentryfiber.Options{
		Repanic:         true,
		WaitForDelivery: false,
	}))

	// Global middleware
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path}\n",
	}))
	app.Use(metrics.Middleware())
	app.Use(middleware.CORS(cfg))
	app.Use(middleware.SecurityHeaders())

	routes.Setup(app, cfg, database.DB, h, userRepo, mods)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "port", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-quit
	slog.Info("shutting down server...")

	if err := app.Shutdown(); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	sched.Stop()

	drainCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	if err := mailer.Close(drainCtx); err != nil {
		slog.Warn("mail queue not drained", "error", err)
	}
	cancel()

	alertPub.Wait()
	pgLogHandler.Stop()
	sentry.Flush(2 * time.Second)

	if rdb != nil {
		if err := rdb.Close(); err != nil {
			slog.Error("redis close error", "error", err)
		}
	}

	if sqlDB, err := database.DB.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			slog.Error("database close error", "error", err)
		}
	}

	slog.Info("server stopped")
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	// Only expose error details for client errors (4xx), not server errors (5xx)
	if code >= 500 {
		slog.Error("unhandled server error",
			"request_id", c.GetRespHeader(fiber.HeaderXRequestID),
			"method", c.Method(), "path", c.Path(), "error", err.Error())
		message = "Internal server error"
	}

	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": message,
	})
}
