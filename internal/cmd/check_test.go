package cmd

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xdg/cmdgate/internal/clog"
	"github.com/xdg/cmdgate/internal/config"
	"github.com/xdg/cmdgate/internal/term"
)

// checkSetup isolates config sources, moves into a project directory with
// the given config, and captures term output.
func checkSetup(t *testing.T, projectYAML string) *bytes.Buffer {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	clog.Discard()
	t.Cleanup(clog.Reset)

	dir := t.TempDir()
	if projectYAML != "" {
		path := filepath.Join(dir, config.ProjectConfigName)
		if err := os.WriteFile(path, []byte(projectYAML), 0o644); err != nil {
			t.Fatalf("write project config: %v", err)
		}
	}
	oldWD, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(oldWD); err != nil {
			t.Fatalf("restore wd: %v", err)
		}
	})

	var buf bytes.Buffer
	term.SetOutput(&buf)
	term.SetErrOutput(&buf)
	t.Cleanup(term.Reset)
	return &buf
}

const allowNpmYAML = `
permissions:
  allow: ["Bash(npm test:*)"]
`

func TestRunCheck_Authorized(t *testing.T) {
	buf := checkSetup(t, allowNpmYAML)

	err := runCheck(checkCmd, []string{"npm", "test"})
	if err != nil {
		t.Fatalf("runCheck returned error for authorized command: %v", err)
	}
	if !strings.Contains(buf.String(), "authorized") {
		t.Errorf("output = %q, want mention of authorized", buf.String())
	}
}

func TestRunCheck_DeferredExitsOne(t *testing.T) {
	buf := checkSetup(t, allowNpmYAML)

	err := runCheck(checkCmd, []string{"curl", "evil.example"})
	var exitErr *ExitCodeError
	if !errors.As(err, &exitErr) {
		t.Fatalf("runCheck error = %v, want ExitCodeError", err)
	}
	if exitErr.Code != 1 {
		t.Errorf("exit code = %d, want 1", exitErr.Code)
	}
	if !strings.Contains(buf.String(), "deferred") {
		t.Errorf("output = %q, want mention of deferred", buf.String())
	}
}

func TestRunCheck_UnsafeExitsOne(t *testing.T) {
	buf := checkSetup(t, allowNpmYAML)

	err := runCheck(checkCmd, []string{"echo", "$(whoami)"})
	var exitErr *ExitCodeError
	if !errors.As(err, &exitErr) {
		t.Fatalf("runCheck error = %v, want ExitCodeError", err)
	}
	if !strings.Contains(buf.String(), "unsafe") {
		t.Errorf("output = %q, want mention of unsafe", buf.String())
	}
}

func TestRunCheck_DebugPrintsTrace(t *testing.T) {
	buf := checkSetup(t, allowNpmYAML)
	debugFlag = true
	t.Cleanup(func() { debugFlag = false })

	if err := runCheck(checkCmd, []string{"npm", "test"}); err != nil {
		t.Fatalf("runCheck returned error: %v", err)
	}
	if !strings.Contains(buf.String(), "segment 1") {
		t.Errorf("debug output should include trace, got %q", buf.String())
	}
}

func TestRunPatterns_ListsSources(t *testing.T) {
	buf := checkSetup(t, allowNpmYAML)

	if err := runPatterns(patternsCmd, nil); err != nil {
		t.Fatalf("runPatterns returned error: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, config.ProjectConfigName) {
		t.Errorf("output should list the project source, got %q", out)
	}
	if !strings.Contains(out, "Bash(npm test:*)") {
		t.Errorf("output should list the merged rule, got %q", out)
	}
}

func TestRunPatterns_NoSources(t *testing.T) {
	buf := checkSetup(t, "")

	if err := runPatterns(patternsCmd, nil); err != nil {
		t.Fatalf("runPatterns returned error: %v", err)
	}
	if !strings.Contains(buf.String(), "No configuration sources") {
		t.Errorf("output = %q, want no-sources message", buf.String())
	}
}
