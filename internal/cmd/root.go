// Package cmd implements the CLI commands for cmdgate.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/xdg/cmdgate/internal/term"
	"github.com/xdg/cmdgate/internal/version"
)

var (
	debugFlag  bool
	silentFlag bool
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "cmdgate",
	Short: "Shell command authorization engine for AI coding agents",
	Long: `Cmdgate decides whether a shell command proposed by an AI coding agent may
run without a human confirmation prompt.

It parses the command the way a POSIX shell would (quoting, operator
chaining, wrappers, one level of sh -c), reduces each segment to the command
that will actually run, and checks it against layered allow/deny rule lists.
Anything it cannot positively authorize is deferred to the agent's normal
confirmation flow: the engine fails closed and never executes anything
itself.`,
	Version:       version.Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		term.SetSilent(silentFlag)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&silentFlag, "silent", false, "suppress normal output")
}

// Execute runs the root command and returns any error.
func Execute() error {
	return rootCmd.Execute()
}
