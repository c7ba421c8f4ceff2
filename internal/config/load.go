package config

import (
	"errors"
	"os"

	"github.com/xdg/cmdgate/internal/clog"
	"github.com/xdg/cmdgate/internal/pattern"
)

// Env vars honored before any parsing begins.
const (
	// EnvDisable bypasses the engine entirely when set to a truthy value.
	EnvDisable = "CMDGATE_DISABLE"
	// EnvDebug raises logging to debug level.
	EnvDebug = "CMDGATE_DEBUG"
)

// Source is one configuration source's contribution to the pattern store,
// kept for diagnostics (cmdgate patterns).
type Source struct {
	Path  string
	Allow []string
	Deny  []string
}

// LoadSources reads every configuration source for the given working
// directory in precedence order (most specific first): the project file,
// agent settings files, then the global file. A source that is missing or
// fails to parse contributes nothing and is skipped; missing allow entries
// only reduce the authorization surface, so this never needs to be fatal.
func LoadSources(dir string) []Source {
	var sources []Source

	if src, ok := loadYAMLSource(ProjectConfigPath(dir)); ok {
		sources = append(sources, src)
	}
	for _, path := range AgentSettingsPaths(dir) {
		if src, ok := loadSettingsSource(path); ok {
			sources = append(sources, src)
		}
	}
	if src, ok := loadYAMLSource(GlobalConfigPath()); ok {
		sources = append(sources, src)
	}

	return sources
}

// LoadStore builds the merged pattern store for one invocation from all
// configuration sources. The store is rebuilt fresh on every call: the user
// may edit configuration mid-session, and there is no cross-invocation
// cache to go stale.
func LoadStore(dir string) *pattern.Store {
	store := &pattern.Store{}
	for _, src := range LoadSources(dir) {
		store.Merge(pattern.Store{
			Allow: pattern.ParseAll(src.Allow, src.Path),
			Deny:  pattern.ParseAll(src.Deny, src.Path),
		})
	}
	clog.Debug("loaded pattern store: %d allow, %d deny", len(store.Allow), len(store.Deny))
	return store
}

func loadYAMLSource(path string) (Source, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			clog.Warn("config: read %s: %v (skipped)", path, err)
		}
		return Source{}, false
	}

	cfg, err := ParseConfig(data)
	if err != nil {
		clog.Warn("config: %s: %v (skipped)", path, err)
		return Source{}, false
	}

	clog.Debug("config: loaded %s", path)
	return Source{
		Path:  path,
		Allow: cfg.Permissions.Allow,
		Deny:  cfg.Permissions.Deny,
	}, true
}

func loadSettingsSource(path string) (Source, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			clog.Warn("config: read %s: %v (skipped)", path, err)
		}
		return Source{}, false
	}

	perms, err := ParseAgentSettings(data)
	if err != nil {
		clog.Warn("config: %s: %v (skipped)", path, err)
		return Source{}, false
	}

	clog.Debug("config: loaded %s", path)
	return Source{
		Path:  path,
		Allow: perms.Allow,
		Deny:  perms.Deny,
	}, true
}

// Settings is the engine's resolved operational configuration: the enable
// and debug flags plus logging destinations. The most specific file that
// sets a field wins; environment variables override everything.
type Settings struct {
	Enabled   bool
	Debug     bool
	LogFile   string
	LogLevel  string
	AuditFile string
}

// LoadSettings resolves operational settings for the given working
// directory from the project file and the global file. Agent settings files
// carry only permissions, not engine settings. Missing files leave the
// defaults: enabled, info level, default log path, audit disabled.
func LoadSettings(dir string) Settings {
	s := Settings{Enabled: true}

	resolved := false
	for _, path := range []string{ProjectConfigPath(dir), GlobalConfigPath()} {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		cfg, err := ParseConfig(data)
		if err != nil {
			clog.Warn("config: %s: %v (skipped)", path, err)
			continue
		}

		if cfg.Engine.Enabled != nil && !resolved {
			s.Enabled = *cfg.Engine.Enabled
			resolved = true
		}
		if cfg.Engine.Debug {
			s.Debug = true
		}
		if s.LogFile == "" {
			s.LogFile = cfg.Log.File
		}
		if s.LogLevel == "" {
			s.LogLevel = cfg.Log.Level
		}
		if s.AuditFile == "" {
			s.AuditFile = cfg.Audit.File
		}
	}

	if envTruthy(os.Getenv(EnvDisable)) {
		s.Enabled = false
	}
	if envTruthy(os.Getenv(EnvDebug)) {
		s.Debug = true
	}

	if s.LogFile == "" {
		s.LogFile = clog.DefaultLogPath()
	}

	return s
}

func envTruthy(v string) bool {
	switch v {
	case "1", "true", "yes":
		return true
	}
	return false
}
