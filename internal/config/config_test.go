package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("SUPPORTED_LOCALES", "")
	t.Setenv("ADVANCED_PERMISSIONS_ENABLED", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Contains(t, cfg.DatabaseURL, "postgres://")
	assert.Equal(t, DefaultSupportedLocales, cfg.SupportedLocales)
	assert.False(t, cfg.Features.AdvancedPermissionsEnabled())
	assert.False(t, cfg.SMTP.Enabled())
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("DATABASE_URL", ":memory:")
	t.Setenv("SUPPORTED_LOCALES", "en, fr ,pt_BR,")
	t.Setenv("ADVANCED_PERMISSIONS_ENABLED", "yes")
	t.Setenv("SMTP_HOST", "smtp.example.com")
	t.Setenv("SMTP_PORT", "2525")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":memory:", cfg.DatabaseURL)
	assert.Equal(t, []string{"en", "fr", "pt_BR"}, cfg.SupportedLocales)
	assert.True(t, cfg.Features.AdvancedPermissionsEnabled())
	assert.True(t, cfg.SMTP.Enabled())
	assert.Equal(t, 2525, cfg.SMTP.Port)
}

func TestLoadRejectsEmptyLocaleList(t *testing.T) {
	t.Setenv("SUPPORTED_LOCALES", " , ,")

	_, err := Load()
	require.ErrorContains(t, err, "SUPPORTED_LOCALES")
}
