package config

import (
	"strings"
	"testing"
)

func TestParseConfig_Full(t *testing.T) {
	data := []byte(`
engine:
  enabled: true
  debug: true
permissions:
  allow:
    - "Bash(npm test:*)"
    - "Bash(git status)"
  deny:
    - "Bash(rm -rf:*)"
log:
  file: /tmp/cmdgate.log
  level: debug
audit:
  file: /tmp/audit.log
`)

	cfg, err := ParseConfig(data)
	if err != nil {
		t.Fatalf("ParseConfig returned error: %v", err)
	}

	if cfg.Engine.Enabled == nil || !*cfg.Engine.Enabled {
		t.Error("Engine.Enabled should be explicitly true")
	}
	if !cfg.Engine.Debug {
		t.Error("Engine.Debug should be true")
	}
	if len(cfg.Permissions.Allow) != 2 {
		t.Errorf("len(Allow) = %d, want 2", len(cfg.Permissions.Allow))
	}
	if len(cfg.Permissions.Deny) != 1 {
		t.Errorf("len(Deny) = %d, want 1", len(cfg.Permissions.Deny))
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, want %q", cfg.Log.Level, "debug")
	}
	if cfg.Audit.File != "/tmp/audit.log" {
		t.Errorf("Audit.File = %q, want %q", cfg.Audit.File, "/tmp/audit.log")
	}
}

func TestParseConfig_Empty(t *testing.T) {
	cfg, err := ParseConfig(nil)
	if err != nil {
		t.Fatalf("ParseConfig(nil) returned error: %v", err)
	}
	if cfg.Engine.Enabled != nil {
		t.Error("Engine.Enabled should be unset for empty config")
	}
	if len(cfg.Permissions.Allow) != 0 {
		t.Errorf("Allow = %v, want empty", cfg.Permissions.Allow)
	}
}

func TestParseConfig_UnknownFieldRejected(t *testing.T) {
	data := []byte("permisions:\n  allow: []\n")

	_, err := ParseConfig(data)
	if err == nil {
		t.Fatal("ParseConfig should reject unknown fields")
	}
	if !strings.Contains(err.Error(), "parse config") {
		t.Errorf("error should be wrapped with context, got: %v", err)
	}
}

func TestParseConfig_Malformed(t *testing.T) {
	data := []byte("permissions: [not: a: mapping\n")

	if _, err := ParseConfig(data); err == nil {
		t.Fatal("ParseConfig should reject malformed YAML")
	}
}

func TestParseConfig_ExplicitDisable(t *testing.T) {
	cfg, err := ParseConfig([]byte("engine:\n  enabled: false\n"))
	if err != nil {
		t.Fatalf("ParseConfig returned error: %v", err)
	}
	if cfg.Engine.Enabled == nil {
		t.Fatal("Engine.Enabled should be set")
	}
	if *cfg.Engine.Enabled {
		t.Error("Engine.Enabled = true, want false")
	}
}
