// Package config loads and merges cmdgate configuration from layered
// sources: a project file, agent-native settings files, and a global file.
// These types map to the YAML configuration schema.
package config

// Config is the configuration schema shared by the project file
// (.cmdgate.yaml in the working directory) and the global file
// (~/.config/cmdgate/config.yaml).
type Config struct {
	Engine      EngineConfig      `yaml:"engine,omitempty"`
	Permissions PermissionsConfig `yaml:"permissions,omitempty"`
	Log         LogConfig         `yaml:"log,omitempty"`
	Audit       AuditConfig       `yaml:"audit,omitempty"`
}

// EngineConfig controls whether the engine runs at all. Enabled is a
// pointer so that "not set" is distinguishable from an explicit false:
// the most specific source that sets it wins.
type EngineConfig struct {
	Enabled *bool `yaml:"enabled,omitempty"`
	Debug   bool  `yaml:"debug,omitempty"`
}

// PermissionsConfig holds allow and deny rule strings in the
// Category(body) textual form, for example "Bash(npm test:*)".
type PermissionsConfig struct {
	Allow []string `yaml:"allow,omitempty"`
	Deny  []string `yaml:"deny,omitempty"`
}

// LogConfig contains operational logging settings.
type LogConfig struct {
	File  string `yaml:"file,omitempty"`
	Level string `yaml:"level,omitempty"`
}

// AuditConfig contains decision audit trail settings. An empty File
// disables the audit trail.
type AuditConfig struct {
	File string `yaml:"file,omitempty"`
}
