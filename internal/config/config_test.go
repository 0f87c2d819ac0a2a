package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setDatabaseEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_PORT", "3306")
	t.Setenv("DB_USER", "vet")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_NAME", "veterinaria")
}

func TestLoadConfigDefaults(t *testing.T) {
	setDatabaseEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 3306, cfg.Database.Port)
	assert.Equal(t, 10, cfg.Database.ConnectionLimit)
	assert.Equal(t, time.Hour, cfg.Database.ConnMaxLifetime)
	assert.False(t, cfg.Database.AutoMigrate)
	assert.Equal(t, "3000", cfg.Server.Port)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "America/Panama", cfg.Clinic.Timezone)
	assert.Equal(t, 5.0, cfg.RateLimit.RequestsPerSecond)
	assert.Equal(t, "@every 30s", cfg.Monitor.HealthcheckSchedule)
}

func TestLoadConfigOverrides(t *testing.T) {
	setDatabaseEnv(t)
	t.Setenv("DB_CONNECTION_LIMIT", "25")
	t.Setenv("PORT", "8080")
	t.Setenv("ALLOWED_ORIGINS", "http://a.test, http://b.test,,")
	t.Setenv("LOG_FORMAT", "json")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 25, cfg.Database.ConnectionLimit)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORS.Origins())
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadConfigMissingDatabaseVariable(t *testing.T) {
	setDatabaseEnv(t)
	t.Setenv("DB_HOST", "")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_HOST")
}

func TestLoadConfigRejectsBadValues(t *testing.T) {
	cases := map[string][2]string{
		"pool size": {"DB_CONNECTION_LIMIT", "0"},
		"timezone":  {"CLINIC_TIMEZONE", "Mars/Olympus"},
		"log level": {"LOG_LEVEL", "chatty"},
		"rate":      {"RATE_LIMIT_RPS", "-1"},
	}
	for name, kv := range cases {
		t.Run(name, func(t *testing.T) {
			setDatabaseEnv(t)
			t.Setenv(kv[0], kv[1])

			_, err := LoadConfig()
			assert.Error(t, err)
		})
	}
}

func TestClinicLocation(t *testing.T) {
	loc := ClinicConfig{Timezone: "America/Panama"}.Location()
	assert.Equal(t, "America/Panama", loc.String())

	assert.Equal(t, time.UTC, ClinicConfig{Timezone: "nowhere"}.Location())
}
