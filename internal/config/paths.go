package config

import (
	"os"
	"path/filepath"

	"github.com/xdg/cmdgate/internal/pathutil"
)

// ProjectConfigName is the per-project configuration file, looked up in the
// working directory.
const ProjectConfigName = ".cmdgate.yaml"

// Dir returns the cmdgate configuration directory path. By default this is
// ~/.config/cmdgate. If the XDG_CONFIG_HOME environment variable is set, it
// uses $XDG_CONFIG_HOME/cmdgate instead.
func Dir() string {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		base = "~/.config"
	}
	return filepath.Join(pathutil.ExpandHome(base), "cmdgate")
}

// GlobalConfigPath returns the full path to the global configuration file.
func GlobalConfigPath() string {
	return filepath.Join(Dir(), "config.yaml")
}

// ProjectConfigPath returns the path to the project configuration file for
// the given working directory.
func ProjectConfigPath(dir string) string {
	return filepath.Join(dir, ProjectConfigName)
}

// AgentSettingsPaths returns the agent-native settings files for the given
// working directory, most specific first.
func AgentSettingsPaths(dir string) []string {
	return []string{
		filepath.Join(dir, ".claude", "settings.local.json"),
		filepath.Join(dir, ".claude", "settings.json"),
	}
}
