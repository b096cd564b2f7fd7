package config

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDemoDefaults(t *testing.T) {
	cfg, err := Load("testdata/nonexistent.env")
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, StoreModeDemo, cfg.Store.Mode)
	assert.NotEmpty(t, cfg.Auth.JWTSecret)
	assert.False(t, cfg.Sheets.Enabled())
}

func TestValidateMongoModeRequiresBackendSettings(t *testing.T) {
	cfg := &Config{
		Server:    ServerConfig{Port: "8080"},
		Store:     StoreConfig{Mode: StoreModeMongoDB},
		Reporting: ReportingConfig{CronSchedule: "0 20 * * *", Timezone: "Africa/Lagos"},
	}

	err := cfg.Validate()
	var cerr *ConfigurationError
	require.True(t, errors.As(err, &cerr))
	assert.ElementsMatch(t, []string{"MONGODB_URI", "JWT_SECRET"}, cerr.Missing)
	assert.Contains(t, cerr.Error(), "MONGODB_URI")
}

func TestValidateRejectsUnknownStoreMode(t *testing.T) {
	cfg := &Config{
		Server:    ServerConfig{Port: "8080"},
		Store:     StoreConfig{Mode: "postgres"},
		Reporting: ReportingConfig{CronSchedule: "0 20 * * *", Timezone: "Africa/Lagos"},
	}

	err := cfg.Validate()
	require.Error(t, err)
	var cerr *ConfigurationError
	assert.False(t, errors.As(err, &cerr))
}
