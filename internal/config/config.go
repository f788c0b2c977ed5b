// internal/config/config.go
package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	BaseURL  string `mapstructure:"base_url"`
	Listen   string `mapstructure:"listen"`
	Database struct {
		URL string `mapstructure:"url"`
	} `mapstructure:"database"`
	Logging struct {
		Level  string `mapstructure:"level"`
		Format string `mapstructure:"format"`
	} `mapstructure:"logging"`
	Photos struct {
		Backend string `mapstructure:"backend"` // "local" or "s3"
		Dir     string `mapstructure:"dir"`
		BaseURL string `mapstructure:"base_url"`
		S3      struct {
			Bucket    string `mapstructure:"bucket"`
			Region    string `mapstructure:"region"`
			Prefix    string `mapstructure:"prefix"`
			AccessKey string `mapstructure:"access_key"`
			SecretKey string `mapstructure:"secret_key"`
		} `mapstructure:"s3"`
	} `mapstructure:"photos"`
	Security struct {
		RequestID struct {
			TrustHeader bool `mapstructure:"trust_header"`
		} `mapstructure:"request_id"`
		Session struct {
			SweeperInterval time.Duration `mapstructure:"sweeper_interval"`
			CookieSecure    bool          `mapstructure:"cookie_secure"`
			SameSite        string        `mapstructure:"same_site"`
		} `mapstructure:"session"`
		RateLimit struct {
			Enabled           bool          `mapstructure:"enabled"`
			RequestsPerMinute int           `mapstructure:"rpm"`
			Burst             int           `mapstructure:"burst"`
			TTL               time.Duration `mapstructure:"ttl"`
		} `mapstructure:"rate_limit"`
	} `mapstructure:"security"`
	CORS struct {
		AllowedOrigins []string `mapstructure:"allowed_origins"`
	} `mapstructure:"cors"`
}

func Load() Config {
	viper.SetDefault("listen", "127.0.0.1:8080")
	// Sensible logging defaults
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "text")
	// Photo storage defaults
	viper.SetDefault("photos.backend", "local")
	viper.SetDefault("photos.dir", "./uploads")
	viper.SetDefault("photos.base_url", "/static/uploads")
	// Security defaults
	viper.SetDefault("security.request_id.trust_header", false)
	viper.SetDefault("security.session.sweeper_interval", "5m")
	viper.SetDefault("security.session.cookie_secure", false)
	viper.SetDefault("security.session.same_site", "lax")
	viper.SetDefault("security.rate_limit.enabled", true)
	viper.SetDefault("security.rate_limit.rpm", 120)
	viper.SetDefault("security.rate_limit.burst", 60)
	viper.SetDefault("security.rate_limit.ttl", "30m")
	viper.SetDefault("cors.allowed_origins", []string{
		"http://localhost:3000", "http://localhost:5173",
		"http://127.0.0.1:3000", "http://127.0.0.1:5173",
	})

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")
	_ = viper.ReadInConfig()

	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// explicit bindings
	_ = viper.BindEnv("base_url", "BASE_URL")
	_ = viper.BindEnv("listen", "LISTEN_ADDR")
	_ = viper.BindEnv("database.url", "DATABASE_URL")
	_ = viper.BindEnv("logging.level", "LOG_LEVEL")
	_ = viper.BindEnv("logging.format", "LOG_FORMAT")
	_ = viper.BindEnv("photos.backend", "PHOTOS_BACKEND")
	_ = viper.BindEnv("photos.dir", "PHOTOS_DIR")
	_ = viper.BindEnv("photos.base_url", "PHOTOS_BASE_URL")
	_ = viper.BindEnv("photos.s3.bucket", "PHOTOS_S3_BUCKET")
	_ = viper.BindEnv("photos.s3.region", "PHOTOS_S3_REGION")
	_ = viper.BindEnv("photos.s3.prefix", "PHOTOS_S3_PREFIX")
	_ = viper.BindEnv("photos.s3.access_key", "PHOTOS_S3_ACCESS_KEY")
	_ = viper.BindEnv("photos.s3.secret_key", "PHOTOS_S3_SECRET_KEY")
	_ = viper.BindEnv("security.request_id.trust_header", "REQUEST_ID_TRUST_HEADER")
	_ = viper.BindEnv("security.session.sweeper_interval", "SESSION_SWEEPER_INTERVAL")
	_ = viper.BindEnv("security.session.cookie_secure", "SESSION_COOKIE_SECURE")
	_ = viper.BindEnv("security.session.same_site", "SESSION_SAME_SITE")
	_ = viper.BindEnv("security.rate_limit.enabled", "RATE_LIMIT_ENABLED")
	_ = viper.BindEnv("security.rate_limit.rpm", "RATE_LIMIT_RPM")
	_ = viper.BindEnv("security.rate_limit.burst", "RATE_LIMIT_BURST")
	_ = viper.BindEnv("security.rate_limit.ttl", "RATE_LIMIT_TTL")

	var c Config
	if err := viper.Unmarshal(&c); err != nil {
		panic("config error: " + err.Error())
	}
	if c.Database.URL == "" {
		panic("config error: database.url/DATABASE_URL required")
	}
	return c
}
