package app

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
	"golang.org/x/text/language"
)

// Config holds runtime configuration for the application.
type Config struct {
	AppEnv            string        `envconfig:"APP_ENV" default:"development"`
	AppAddr           string        `envconfig:"APP_ADDR" default:":8080"`
	AppReadTimeout    time.Duration `envconfig:"APP_READ_TIMEOUT" default:"15s"`
	AppWriteTimeout   time.Duration `envconfig:"APP_WRITE_TIMEOUT" default:"15s"`
	AppRequestTimeout time.Duration `envconfig:"APP_REQUEST_TIMEOUT" default:"30s"`

	LogFormat string `envconfig:"LOG_FORMAT" default:"pretty"`

	PageTitle string `envconfig:"PAGE_TITLE" default:"Amazing Dashboard"`
	Locale    string `envconfig:"APP_LOCALE" default:"en-US"`

	CSRFSecret string `envconfig:"CSRF_SECRET"`

	UploadMaxBytes  int64 `envconfig:"UPLOAD_MAX_BYTES" default:"10485760"`
	RateLimitPerMin int   `envconfig:"RATE_LIMIT_PER_MIN" default:"60"`

	EChartsAssetsHost string `envconfig:"ECHARTS_ASSETS_HOST" default:"https://go-echarts.github.io/go-echarts-assets/assets/"`
}

// LoadConfig reads configuration from environment variables.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if cfg.CSRFSecret == "" {
		if cfg.IsProduction() {
			return nil, errors.New("csrf secret must be provided")
		}
		secret, err := randomSecret()
		if err != nil {
			return nil, err
		}
		cfg.CSRFSecret = secret
	}
	if cfg.UploadMaxBytes <= 0 {
		return nil, errors.New("upload max bytes must be positive")
	}
	if cfg.RateLimitPerMin <= 0 {
		cfg.RateLimitPerMin = 60
	}
	if _, err := language.Parse(cfg.Locale); err != nil {
		return nil, fmt.Errorf("invalid APP_LOCALE %q: %w", cfg.Locale, err)
	}
	return &cfg, nil
}

// LocaleTag returns the configured number formatting locale.
func (c *Config) LocaleTag() language.Tag {
	if c == nil {
		return language.English
	}
	tag, err := language.Parse(c.Locale)
	if err != nil {
		return language.English
	}
	return tag
}

// IsProduction returns true when the application runs in production.
func (c *Config) IsProduction() bool {
	return c != nil && c.AppEnv == "production"
}

func randomSecret() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
