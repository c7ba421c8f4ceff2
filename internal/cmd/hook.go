package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/xdg/cmdgate/internal/audit"
	"github.com/xdg/cmdgate/internal/clog"
	"github.com/xdg/cmdgate/internal/config"
	"github.com/xdg/cmdgate/internal/hook"
)

var hookCmd = &cobra.Command{
	Use:   "hook",
	Short: "Run as a pre-tool-use hook (JSON on stdin, JSON on stdout)",
	Long: `Read one hook request from stdin and write one response to stdout.

Register this command as the agent's pre-tool-use hook for the Bash tool.
Commands that match the configured allow rules and no deny rule are
approved; everything else gets an empty response and the agent falls back
to its normal confirmation flow. The hook always exits 0 so that a cmdgate
failure can never block the agent.`,
	RunE: runHook,
}

func init() {
	rootCmd.AddCommand(hookCmd)
}

func runHook(cmd *cobra.Command, args []string) error {
	dir, err := os.Getwd()
	if err != nil {
		dir = "."
	}

	settings := config.LoadSettings(dir)

	// Stdout carries the protocol, so logs go to file only.
	if err := clog.Configure(settings.LogFile, debugFlag || settings.Debug, true); err != nil {
		// A broken log path must not break the hook.
		clog.SetFileOutput(nil)
	}
	defer clog.Close()

	runner := &hook.Runner{
		Dir:      dir,
		Settings: settings,
		Audit:    openAudit(settings.AuditFile),
	}

	if err := runner.Run(os.Stdin, os.Stdout); err != nil {
		return fmt.Errorf("hook: %w", err)
	}
	return nil
}

// openAudit opens the decision audit trail, or returns a nil-writer logger
// when auditing is disabled or the file cannot be opened.
func openAudit(path string) *audit.Logger {
	if path == "" {
		return audit.NewLogger(nil)
	}
	f, err := clog.OpenLogFile(path)
	if err != nil {
		clog.Warn("audit: %v (disabled)", err)
		return audit.NewLogger(nil)
	}
	return audit.NewLogger(f)
}
