package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	App struct {
		Name           string   `mapstructure:"name"`
		Port           string   `mapstructure:"port"`
		AllowedOrigins []string `mapstructure:"allowed_origins"`
	} `mapstructure:"app"`
	Database struct {
		URL          string `mapstructure:"url"`
		Host         string `mapstructure:"host"`
		Port         string `mapstructure:"port"`
		User         string `mapstructure:"user"`
		Password     string `mapstructure:"password"`
		Name         string `mapstructure:"name"`
		Sslmode      string `mapstructure:"sslmode"`
		Timezone     string `mapstructure:"timezone"`
		MaxIdleConns int    `mapstructure:"max_idle_conns"`
		MaxOpenConns int    `mapstructure:"max_open_conns"`
	} `mapstructure:"database"`
	Redis struct {
		Addr     string `mapstructure:"addr"`
		Password string `mapstructure:"password"`
		DB       int    `mapstructure:"db"`
	} `mapstructure:"redis"`
	Cache struct {
		TTL time.Duration `mapstructure:"ttl"`
	} `mapstructure:"cache"`
	Provider struct {
		Host      string        `mapstructure:"host"`
		Key       string        `mapstructure:"key"`
		TrendType string        `mapstructure:"trend_type"`
		Country   string        `mapstructure:"country"`
		Language  string        `mapstructure:"language"`
		Timeout   time.Duration `mapstructure:"timeout"`
	} `mapstructure:"provider"`
	Mail struct {
		Host     string        `mapstructure:"host"`
		Port     int           `mapstructure:"port"`
		Username string        `mapstructure:"username"`
		Password string        `mapstructure:"password"`
		From     string        `mapstructure:"from"`
		Timeout  time.Duration `mapstructure:"timeout"`
	} `mapstructure:"mail"`
	Digest struct {
		Subject     string `mapstructure:"subject"`
		CTAURL      string `mapstructure:"cta_url"`
		MaxArticles int    `mapstructure:"max_articles"`
	} `mapstructure:"digest"`
	Notifier struct {
		Enabled     bool          `mapstructure:"enabled"`
		Schedule    string        `mapstructure:"schedule"`
		Timezone    string        `mapstructure:"timezone"`
		Concurrency int           `mapstructure:"concurrency"`
		SendTimeout time.Duration `mapstructure:"send_timeout"`
		RunTimeout  time.Duration `mapstructure:"run_timeout"`
	} `mapstructure:"notifier"`
	Auth struct {
		JWTSecret string        `mapstructure:"jwt_secret"`
		TokenTTL  time.Duration `mapstructure:"token_ttl"`
	} `mapstructure:"auth"`
}

// envBindings maps config keys to the environment variables operators already use.
var envBindings = map[string]string{
	"app.name":            "APP_NAME",
	"app.port":            "PORT",
	"app.allowed_origins": "FRONTEND_ORIGINS",
	"database.url":        "DATABASE_URL",
	"redis.addr":          "REDIS_ADDR",
	"redis.password":      "REDIS_PASSWORD",
	"redis.db":            "REDIS_DB",
	"cache.ttl":           "NEWS_CACHE_TTL",
	"provider.host":       "RAPIDAPI_HOST",
	"provider.key":        "RAPIDAPI_KEY",
	"mail.host":           "SMTP_HOST",
	"mail.port":           "SMTP_PORT",
	"mail.username":       "EMAIL_USER",
	"mail.password":       "EMAIL_PASS",
	"mail.from":           "EMAIL_FROM",
	"digest.subject":      "DIGEST_SUBJECT",
	"digest.cta_url":      "DIGEST_CTA_URL",
	"notifier.enabled":    "BULK_EMAIL_ENABLED",
	"notifier.schedule":   "NOTIFY_SCHEDULE",
	"notifier.timezone":   "NOTIFY_TZ",
	"auth.jwt_secret":     "JWT_SECRET",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "MarketDigest")
	v.SetDefault("app.port", "5000")
	v.SetDefault("app.allowed_origins", []string{"*"})

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.name", "marketdigest")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.timezone", "UTC")
	v.SetDefault("database.max_idle_conns", 10)
	v.SetDefault("database.max_open_conns", 25)

	v.SetDefault("cache.ttl", 10*time.Minute)

	v.SetDefault("provider.host", "real-time-finance-data.p.rapidapi.com")
	v.SetDefault("provider.trend_type", "MARKET_INDEXES")
	v.SetDefault("provider.country", "us")
	v.SetDefault("provider.language", "en")
	v.SetDefault("provider.timeout", 15*time.Second)

	v.SetDefault("mail.host", "smtp.gmail.com")
	v.SetDefault("mail.port", 587)
	v.SetDefault("mail.timeout", 20*time.Second)

	v.SetDefault("digest.subject", "Your Daily Article Digest for stocks")
	v.SetDefault("digest.cta_url", "https://finance.yahoo.com")
	v.SetDefault("digest.max_articles", 6)

	v.SetDefault("notifier.enabled", false)
	v.SetDefault("notifier.schedule", "0 8 * * *")
	v.SetDefault("notifier.timezone", "UTC")
	v.SetDefault("notifier.concurrency", 4)
	v.SetDefault("notifier.send_timeout", 30*time.Second)
	v.SetDefault("notifier.run_timeout", 10*time.Minute)

	v.SetDefault("auth.token_ttl", 24*time.Hour)
}

// Load reads ./config/config.yaml (if present), a .env file (if present) and
// the environment, in increasing order of precedence.
func Load(paths ...string) (*Config, error) {
	// a missing .env is the normal case outside local development
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if len(paths) == 0 {
		paths = []string{"./config"}
	}
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	setDefaults(v)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", env, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.normalize()
	return cfg, nil
}

func (c *Config) normalize() {
	if c.App.Port != "" && !strings.HasPrefix(c.App.Port, ":") {
		c.App.Port = ":" + c.App.Port
	}

	// FRONTEND_ORIGINS arrives as a single comma-separated value
	origins := make([]string, 0, len(c.App.AllowedOrigins))
	for _, raw := range c.App.AllowedOrigins {
		for _, o := range strings.Split(raw, ",") {
			if trimmed := strings.TrimSpace(o); trimmed != "" {
				origins = append(origins, trimmed)
			}
		}
	}
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	c.App.AllowedOrigins = origins

	if c.Mail.From == "" {
		c.Mail.From = c.Mail.Username
	}
	if c.Notifier.Concurrency < 1 {
		c.Notifier.Concurrency = 1
	}
}

// DSN returns database.url when set, otherwise a key/value DSN built from the
// individual database fields.
func (c *Config) DSN() string {
	if c.Database.URL != "" {
		return c.Database.URL
	}
	d := c.Database
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.Sslmode, d.Timezone,
	)
}
