package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfigFile(t, `
database:
  url: "postgres://localhost:5432/campusdir?sslmode=disable"
auth:
  jwt_secret: "test-secret"
  token_ttl_minutes: 30
server:
  port: ":9090"
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, "postgres://localhost:5432/campusdir?sslmode=disable", cfg.Database.URL)
	require.Equal(t, "test-secret", cfg.Auth.JWTSecret)
	require.Equal(t, ":9090", cfg.Server.Port)
	require.Equal(t, 30*time.Minute, cfg.TokenTTL())
}

func TestLoadConfig_DefaultTokenTTL(t *testing.T) {
	path := writeConfigFile(t, `
database:
  url: "postgres://localhost/campusdir"
auth:
  jwt_secret: "test-secret"
server:
  port: ":8080"
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, time.Hour, cfg.TokenTTL())
}

func TestLoadConfig_MissingSecret(t *testing.T) {
	path := writeConfigFile(t, `
database:
  url: "postgres://localhost/campusdir"
server:
  port: ":8080"
`)

	_, err := LoadConfig(path)
	require.Error(t, err)
	require.Contains(t, err.Error(), "jwt_secret")
}

func TestLoadConfig_FileMissing(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yml"))
	require.Error(t, err)
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	path := writeConfigFile(t, "database: [")

	_, err := LoadConfig(path)
	require.Error(t, err)
}
