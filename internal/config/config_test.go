package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(New())
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Environment)
	assert.Equal(t, DriverPostgres, cfg.Database.Driver)
	assert.Equal(t, 5*time.Minute, cfg.JWT.TokenTTL)
	assert.Equal(t, 6, cfg.Auth.PasswordMinLength)
	assert.Equal(t, 15, cfg.Auth.PasswordMaxLength)
	assert.Equal(t, 12, cfg.Auth.BcryptCost)
	assert.False(t, cfg.Redis.Enabled)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("DB_DRIVER", "SQLite")
	t.Setenv("DB_SQLITE_PATH", "/tmp/x.db")
	t.Setenv("JWT_TOKEN_TTL", "30m")
	t.Setenv("REDIS_ENABLED", "true")
	t.Setenv("AUTH_PASSWORD_MAX_LENGTH", "18")

	cfg, err := Load(New())
	require.NoError(t, err)

	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, "/tmp/x.db", cfg.Database.SQLitePath)
	assert.Equal(t, 30*time.Minute, cfg.JWT.TokenTTL)
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, 18, cfg.Auth.PasswordMaxLength)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"unknown driver", map[string]string{"DB_DRIVER": "mysql"}},
		{"zero token ttl", map[string]string{"JWT_TOKEN_TTL": "0s"}},
		{"inverted password bounds", map[string]string{"AUTH_PASSWORD_MIN_LENGTH": "10", "AUTH_PASSWORD_MAX_LENGTH": "8"}},
		{"password max beyond bcrypt input", map[string]string{"AUTH_PASSWORD_MAX_LENGTH": "19"}},
		{"production default secret", map[string]string{"APP_ENV": "production", "DB_PASSWORD": "pw"}},
		{"production empty db password", map[string]string{"APP_ENV": "production", "JWT_SECRET": "real-secret"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load(New())
			assert.Error(t, err)
		})
	}
}

func TestProductionSQLiteNeedsNoDBPassword(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "real-secret")
	t.Setenv("DB_DRIVER", "sqlite")

	cfg, err := Load(New())
	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())
}

func TestLoadEnvFiles(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("APP_NAME=FromDotEnv\n"), 0o600))
	t.Setenv("APP_NAME", "")
	os.Unsetenv("APP_NAME")

	require.NoError(t, LoadEnvFiles(path, filepath.Join(t.TempDir(), "missing.env")))
	t.Cleanup(func() { os.Unsetenv("APP_NAME") })

	cfg, err := Load(New())
	require.NoError(t, err)
	assert.Equal(t, "FromDotEnv", cfg.App.Name)
}

func TestPostgresConfig(t *testing.T) {
	cfg, err := Load(New())
	require.NoError(t, err)

	pg := cfg.Database.PostgresConfig()
	assert.Equal(t, "localhost", pg.Host)
	assert.Equal(t, int32(25), pg.MaxConns)
	assert.Equal(t, 10*time.Second, pg.ConnectTimeout)
}
