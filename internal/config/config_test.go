// Package config tests layered settings resolution.
package config

// file: internal/config/config_test.go

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "eva-mcp", cfg.Server.Name)
	assert.Equal(t, "", cfg.Workspace.Root, "The root defaults to empty; the sandbox resolves the fallback.")
	assert.Equal(t, 1000, cfg.Workspace.MaxList)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "server:\n  name: custom-server\nworkspace:\n  root: /srv/data\n  max_list: 25\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "custom-server", cfg.Server.Name)
	assert.Equal(t, "/srv/data", cfg.Workspace.Root)
	assert.Equal(t, 25, cfg.Workspace.MaxList)
}

func TestMissingFileIsAnError(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestEnvironmentOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("workspace:\n  root: /from/file\n"), 0o600))

	t.Setenv("EVA_MCP_WORKSPACE", "/from/env")
	t.Setenv("EVA_MCP_MAX_LIST", "7")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/from/env", cfg.Workspace.Root, "Environment must win over the file.")
	assert.Equal(t, 7, cfg.Workspace.MaxList)
}

func TestEnvironmentLongFormKeys(t *testing.T) {
	t.Setenv("EVA_MCP_SERVER_NAME", "env-named")
	t.Setenv("EVA_MCP_SERVER_VERSION", "9.9.9")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "env-named", cfg.Server.Name)
	assert.Equal(t, "9.9.9", cfg.Server.Version)
}
