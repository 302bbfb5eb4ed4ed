// Package config handles application configuration.
// Settings are resolved from three layers with increasing precedence:
// built-in defaults, an optional YAML file, and EVA_MCP_* environment
// variables.
package config

// file: internal/config/config.go

import (
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

// envPrefix is the prefix shared by all environment overrides,
// e.g. EVA_MCP_WORKSPACE_ROOT -> workspace.root.
const envPrefix = "EVA_MCP_"

// Settings represents the application configuration.
type Settings struct {
	Server    ServerConfig    `koanf:"server"`
	Workspace WorkspaceConfig `koanf:"workspace"`
}

// ServerConfig contains identity reported to clients on initialize.
type ServerConfig struct {
	Name    string `koanf:"name"`
	Version string `koanf:"version"`
}

// WorkspaceConfig contains settings for the file resource provider.
type WorkspaceConfig struct {
	// Root is the directory that bounds all file resource access.
	// Empty means the process working directory.
	Root string `koanf:"root"`
	// MaxList caps the number of entries a workspace listing may return.
	MaxList int `koanf:"max_list"`
}

// New creates a new configuration with default values.
func New() *Settings {
	return &Settings{
		Server: ServerConfig{
			Name:    "eva-mcp",
			Version: "",
		},
		Workspace: WorkspaceConfig{
			Root:    "",
			MaxList: 1000,
		},
	}
}

// Load resolves the effective settings. A non-empty path names a YAML file
// to layer over the defaults; a missing file at that path is an error, but
// an empty path skips the file layer entirely. Environment variables are
// applied last:
//
//	EVA_MCP_WORKSPACE       -> workspace.root
//	EVA_MCP_MAX_LIST        -> workspace.max_list
//	EVA_MCP_SERVER_NAME     -> server.name
//	EVA_MCP_SERVER_VERSION  -> server.version
func Load(path string) (*Settings, error) {
	k := koanf.New(".")

	if path != "" {
		content, err := os.ReadFile(path) // #nosec G304 -- path is operator-supplied.
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read config file %s", path)
		}
		if err := k.Load(rawbytes.Provider(content), yaml.Parser()); err != nil {
			return nil, errors.Wrapf(err, "failed to parse config file %s", path)
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", envKeyMapper), nil); err != nil {
		return nil, errors.Wrap(err, "failed to load environment overrides")
	}

	settings := New()
	if err := k.Unmarshal("", settings); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal configuration")
	}
	return settings, nil
}

// envKeyMapper translates an environment variable name to a config key.
// The two documented workspace variables keep their historical short names;
// everything else maps FOO_BAR -> foo.bar under the prefix.
func envKeyMapper(name string) string {
	trimmed := strings.TrimPrefix(name, envPrefix)
	switch trimmed {
	case "WORKSPACE":
		return "workspace.root"
	case "MAX_LIST":
		return "workspace.max_list"
	}
	return strings.ReplaceAll(strings.ToLower(trimmed), "_", ".")
}
