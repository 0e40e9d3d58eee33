package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	AppEnv string `env:"APP_ENV" env-default:"local"`
	AppURL string `env:"APP_URL" env-default:"http://localhost:8080"`

	// Database
	DBHost     string `env:"DB_HOST" env-default:"localhost"`
	DBPort     string `env:"DB_PORT" env-default:"5432"`
	DBUser     string `env:"DB_USER" env-default:"postgres"`
	DBPassword string `env:"DB_PASSWORD" env-required:"true"`
	DBName     string `env:"DB_NAME" env-default:"nutricoach"`
	DBSSLMode  string `env:"DB_SSLMODE" env-default:"disable"`

	// Redis (scheduler locks)
	RedisAddr     string `env:"REDIS_ADDR" env-default:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" env-default:"0"`

	// JWT
	JWTSecret        string        `env:"JWT_SECRET" env-required:"true"`
	JWTAccessExpiry  time.Duration `env:"JWT_ACCESS_EXPIRY" env-default:"15m"`
	JWTRefreshExpiry time.Duration `env:"JWT_REFRESH_EXPIRY" env-default:"168h"`
	AuthCookieName   string        `env:"AUTH_COOKIE_NAME" env-default:"nutricoach_token"`

	// Mail
	MailDriver    string `env:"MAIL_DRIVER" env-default:"log"` // log, ses
	MailFrom      string `env:"MAIL_FROM" env-default:"Gidia <hello@gidia.app>"`
	MailWorkers   int    `env:"MAIL_WORKERS" env-default:"2"`
	MailQueueSize int    `env:"MAIL_QUEUE_SIZE" env-default:"256"`

	// AWS
	AWSRegion     string `env:"AWS_REGION" env-default:"eu-central-1"`
	S3Bucket      string `env:"S3_BUCKET"`
	S3PublicURL   string `env:"S3_PUBLIC_URL"`
	MaxAvatarSize int64  `env:"MAX_AVATAR_SIZE" env-default:"2097152"`

	// Push (SNS platform applications)
	SNSAndroidARN string `env:"SNS_ANDROID_ARN"`
	SNSIOSARN     string `env:"SNS_IOS_ARN"`

	// Scheduler
	SchedulerEnabled bool          `env:"SCHEDULER_ENABLED" env-default:"true"`
	InactivityWindow time.Duration `env:"INACTIVITY_WINDOW" env-default:"72h"`
	AlertRetention   time.Duration `env:"ALERT_RETENTION" env-default:"720h"`

	// Admin
	AdminEmails string `env:"ADMIN_EMAILS"`
	AdminToken  string `env:"ADMIN_TOKEN"`

	// Logging
	LogLevel  string `env:"LOG_LEVEL" env-default:"info"`
	SentryDSN string `env:"SENTRY_DSN"`

	// Server
	Port         string `env:"PORT" env-default:"8080"`
	CORSOrigins  string `env:"CORS_ORIGINS" env-default:"*"`
	AssetVersion string `env:"ASSET_VERSION" env-default:"1"`
}

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) DSN() string {
	return "host=" + c.DBHost +
		" user=" + c.DBUser +
		" password=" + c.DBPassword +
		" dbname=" + c.DBName +
		" port=" + c.DBPort +
		" sslmode=" + c.DBSSLMode +
		" TimeZone=UTC"
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}
