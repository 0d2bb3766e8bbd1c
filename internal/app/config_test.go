package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("CSRF_SECRET", "")
	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.AppAddr)
	assert.Equal(t, int64(10<<20), cfg.UploadMaxBytes)
	assert.Equal(t, 60, cfg.RateLimitPerMin)
	assert.NotEmpty(t, cfg.CSRFSecret)
	assert.Equal(t, language.AmericanEnglish, cfg.LocaleTag())
	assert.False(t, cfg.IsProduction())
}

func TestLoadConfigRequiresSecretInProduction(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("CSRF_SECRET", "")
	_, err := LoadConfig()
	assert.Error(t, err)

	t.Setenv("CSRF_SECRET", "s3cret")
	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "s3cret", cfg.CSRFSecret)
}

func TestLoadConfigRejectsBadValues(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("UPLOAD_MAX_BYTES", "0")
	_, err := LoadConfig()
	assert.Error(t, err)

	t.Setenv("UPLOAD_MAX_BYTES", "1024")
	t.Setenv("APP_LOCALE", "not a locale!")
	_, err = LoadConfig()
	assert.Error(t, err)
}
