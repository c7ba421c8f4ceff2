package cmd

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/xdg/cmdgate/internal/clog"
	"github.com/xdg/cmdgate/internal/config"
	"github.com/xdg/cmdgate/internal/engine"
	"github.com/xdg/cmdgate/internal/term"
)

var checkCmd = &cobra.Command{
	Use:   "check [--] <command>...",
	Short: "Evaluate one command against the configured rules",
	Long: `Evaluate a command string against the merged allow/deny rules and print
the decision.

The arguments are joined with spaces and evaluated exactly as the hook
would evaluate them. Exits 0 when the command is authorized and 1 when it
is deferred or denied. With --debug, the full decision trace is printed.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	raw := strings.Join(args, " ")

	dir, err := os.Getwd()
	if err != nil {
		dir = "."
	}

	settings := config.LoadSettings(dir)
	debug := debugFlag || settings.Debug
	if debug {
		clog.SetLevel(clog.LevelDebug)
	}

	store := config.LoadStore(dir)
	decision := engine.Decide(raw, store)

	printDecision(raw, decision, debug)

	if !decision.Authorized {
		return NewExitCodeError(1)
	}
	return nil
}

func printDecision(raw string, d engine.Decision, debug bool) {
	if term.IsTTY() {
		if d.Authorized {
			term.Printf("authorized: %s\n", raw)
		} else {
			term.Printf("%s: %s\n", d.Outcome, raw)
		}
	} else {
		// Plain single-token output for scripts.
		term.Println(d.Outcome)
	}

	if debug {
		for _, line := range d.Trace {
			term.Printf("  %s\n", line)
		}
	}
}
