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
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, `
session_key: test-secret
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:3003", cfg.Listen)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "./data/fridgekeep.db", cfg.Database.Path)
	assert.Equal(t, 172800, cfg.SessionMaxAge)
	assert.Equal(t, "Default Fridge", cfg.FridgeName)
	assert.Empty(t, cfg.Categories)
	assert.Empty(t, cfg.IssueTypes)
	assert.Empty(t, cfg.BootstrapAdmin)
}

func TestLoad_FullConfig(t *testing.T) {
	path := writeConfig(t, `
listen: 127.0.0.1:8080
log_level: debug
session_key: test-secret
session_max_age: 3600
fridge_name: Kitchen Fridge
bootstrap_admin: alice
database:
  path: /tmp/fridge.db
categories:
  - dairy
  - fruit
issue_types:
  - temperature
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:8080", cfg.Listen)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 3600, cfg.SessionMaxAge)
	assert.Equal(t, "Kitchen Fridge", cfg.FridgeName)
	assert.Equal(t, "alice", cfg.BootstrapAdmin)
	assert.Equal(t, "/tmp/fridge.db", cfg.Database.Path)
	assert.Equal(t, []string{"dairy", "fruit"}, cfg.Categories)
	assert.Equal(t, []string{"temperature"}, cfg.IssueTypes)
}

func TestLoad_MissingSessionKey(t *testing.T) {
	path := writeConfig(t, `
listen: 127.0.0.1:8080
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "session_key")
}

func TestLoad_EmptyFridgeName(t *testing.T) {
	path := writeConfig(t, `
session_key: test-secret
fridge_name: ""
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fridge_name")
}
