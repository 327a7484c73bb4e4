package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 5000, cfg.Server.Port)
	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, "healthdb.db", cfg.Database.Path)
	assert.Equal(t, 15, cfg.JWT.ExpireMinutes)
	assert.False(t, cfg.Redis.Enabled())
	assert.False(t, cfg.Retention.DeleteMentalHealthNotes)
}

func TestLoad_FileAndEnvOverride(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 8081
  mode: release
database:
  driver: postgres
  host: db.internal
  user: health
  password: secret
  dbname: health
jwt:
  secret: from-file
  expire_minutes: 60
predictor:
  url: http://predictor.local/predict
redis:
  host: cache.internal
`)
	t.Setenv("JWT_SECRET", "from-env")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DELETE_MENTAL_HEALTH_NOTES", "true")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "release", cfg.Server.Mode)
	assert.Equal(t, "from-env", cfg.JWT.Secret)
	assert.Equal(t, 60, cfg.JWT.ExpireMinutes)
	assert.Equal(t, "http://predictor.local/predict", cfg.Predictor.URL)
	assert.True(t, cfg.Retention.DeleteMentalHealthNotes)
	assert.True(t, cfg.Redis.Enabled())
	assert.Equal(t, "cache.internal:6379", cfg.Redis.Addr())
	assert.Equal(t, "", cfg.Database.Path)
	assert.Equal(t,
		"host=db.internal port=5432 user=health password=secret dbname=health sslmode=disable",
		cfg.Database.DSN())
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "server: [unterminated")

	_, err := Load(path)
	assert.Error(t, err)
}
