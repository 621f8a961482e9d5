package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestFromFile(t *testing.T) {
	path := writeConfig(t, `{
		"server": {"port": "8080", "origins": ["https://artopia.example"]},
		"mongo": {"uri": "mongodb://localhost:27017", "default_db": "artopia_test"},
		"firebase": {"project_id": "artopia"},
		"sentry": "https://key@sentry.example/1"
	}`)

	cfg, err := FromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, []string{"https://artopia.example"}, cfg.Server.Origins)
	assert.Equal(t, "mongodb://localhost:27017", cfg.Mongo.URI)
	assert.Equal(t, "artopia_test", cfg.Mongo.Database)
	assert.Equal(t, "artopia", cfg.Firebase.ProjectID)
	assert.Equal(t, "https://key@sentry.example/1", cfg.Sentry)
}

func TestFromFileDefaults(t *testing.T) {
	cfg, err := FromFile(writeConfig(t, `{}`))
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Server.Port)
	assert.Equal(t, "artopia_db", cfg.Mongo.Database)
	assert.Empty(t, cfg.Mongo.URI)
	assert.Empty(t, cfg.Firebase.ProjectID)
}

func TestEnvOverridesFile(t *testing.T) {
	t.Setenv("PORT", "9999")
	t.Setenv("MONGO_URI", "mongodb://env:27017")

	cfg, err := FromFile(writeConfig(t, `{
		"server": {"port": "8080"},
		"mongo": {"uri": "mongodb://file:27017"}
	}`))
	require.NoError(t, err)

	assert.Equal(t, "9999", cfg.Server.Port)
	assert.Equal(t, "mongodb://env:27017", cfg.Mongo.URI)
}

func TestFromFileMissing(t *testing.T) {
	_, err := FromFile(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}
