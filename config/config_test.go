package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-playground/assert/v2"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(t.TempDir())

	assert.Equal(t, nil, err)
	assert.Equal(t, ":5000", cfg.App.Port)
	assert.Equal(t, []string{"*"}, cfg.App.AllowedOrigins)
	assert.Equal(t, "real-time-finance-data.p.rapidapi.com", cfg.Provider.Host)
	assert.Equal(t, 15*time.Second, cfg.Provider.Timeout)
	assert.Equal(t, false, cfg.Notifier.Enabled)
	assert.Equal(t, "0 8 * * *", cfg.Notifier.Schedule)
	assert.Equal(t, 6, cfg.Digest.MaxArticles)
	assert.Equal(t, "Your Daily Article Digest for stocks", cfg.Digest.Subject)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("DATABASE_URL", "postgres://digest:secret@db:5432/digest")
	t.Setenv("BULK_EMAIL_ENABLED", "true")
	t.Setenv("EMAIL_USER", "digest@example.com")
	t.Setenv("RAPIDAPI_KEY", "key-123")
	t.Setenv("FRONTEND_ORIGINS", "http://localhost:3000, https://digest.example.com")

	cfg, err := Load(t.TempDir())

	assert.Equal(t, nil, err)
	assert.Equal(t, ":8080", cfg.App.Port)
	assert.Equal(t, "postgres://digest:secret@db:5432/digest", cfg.DSN())
	assert.Equal(t, true, cfg.Notifier.Enabled)
	assert.Equal(t, "digest@example.com", cfg.Mail.From)
	assert.Equal(t, "key-123", cfg.Provider.Key)
	assert.Equal(t, []string{"http://localhost:3000", "https://digest.example.com"}, cfg.App.AllowedOrigins)
}

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	yaml := "notifier:\n  concurrency: 8\n  schedule: \"30 7 * * 1-5\"\ndigest:\n  cta_url: https://markets.example.com\n"
	err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o600)
	assert.Equal(t, nil, err)

	cfg, err := Load(dir)

	assert.Equal(t, nil, err)
	assert.Equal(t, 8, cfg.Notifier.Concurrency)
	assert.Equal(t, "30 7 * * 1-5", cfg.Notifier.Schedule)
	assert.Equal(t, "https://markets.example.com", cfg.Digest.CTAURL)
}

func TestDSN_FromFields(t *testing.T) {
	cfg := &Config{}
	cfg.Database.Host = "localhost"
	cfg.Database.Port = "5432"
	cfg.Database.User = "postgres"
	cfg.Database.Password = "pw"
	cfg.Database.Name = "marketdigest"
	cfg.Database.Sslmode = "disable"
	cfg.Database.Timezone = "UTC"

	assert.Equal(t, "host=localhost port=5432 user=postgres password=pw dbname=marketdigest sslmode=disable TimeZone=UTC", cfg.DSN())
}
