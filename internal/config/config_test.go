package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("JWT_SECRET", "jwt-secret")

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "localhost", cfg.DBHost)
	require.Equal(t, "5432", cfg.DBPort)
	require.Equal(t, 15*time.Minute, cfg.JWTAccessExpiry)
	require.Equal(t, 168*time.Hour, cfg.JWTRefreshExpiry)
	require.Equal(t, "log", cfg.MailDriver)
	require.Equal(t, 2, cfg.MailWorkers)
	require.Equal(t, 72*time.Hour, cfg.InactivityWindow)
	require.True(t, cfg.SchedulerEnabled)
	require.False(t, cfg.IsProduction())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("JWT_SECRET", "jwt-secret")
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_ACCESS_EXPIRY", "5m")
	t.Setenv("MAIL_DRIVER", "ses")
	t.Setenv("REDIS_DB", "3")

	cfg, err := Load()
	require.NoError(t, err)

	require.True(t, cfg.IsProduction())
	require.Equal(t, 5*time.Minute, cfg.JWTAccessExpiry)
	require.Equal(t, "ses", cfg.MailDriver)
	require.Equal(t, 3, cfg.RedisDB)
}

func TestLoad_MissingRequired(t *testing.T) {
	// register restore, then remove entirely so the required check fires
	t.Setenv("DB_PASSWORD", "")
	t.Setenv("JWT_SECRET", "")
	require.NoError(t, os.Unsetenv("DB_PASSWORD"))
	require.NoError(t, os.Unsetenv("JWT_SECRET"))

	_, err := Load()
	require.Error(t, err)
}

func TestDSN(t *testing.T) {
	cfg := &Config{DBHost: "db", DBUser: "u", DBPassword: "p", DBName: "n", DBPort: "5433", DBSSLMode: "require"}
	require.Equal(t, "host=db user=u password=p dbname=n port=5433 sslmode=require TimeZone=UTC", cfg.DSN())
}
