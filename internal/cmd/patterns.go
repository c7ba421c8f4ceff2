package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/xdg/cmdgate/internal/config"
	"github.com/xdg/cmdgate/internal/pattern"
	"github.com/xdg/cmdgate/internal/term"
)

var patternsCmd = &cobra.Command{
	Use:   "patterns",
	Short: "Show the merged allow/deny rules and their sources",
	Long: `Show every configuration source that contributes rules for the current
directory, in precedence order, followed by the merged rule store the
engine would use.

Useful for debugging configuration layering: a source that is missing or
fails to parse contributes nothing and does not appear.`,
	RunE: runPatterns,
}

func init() {
	rootCmd.AddCommand(patternsCmd)
}

func runPatterns(cmd *cobra.Command, args []string) error {
	dir, err := os.Getwd()
	if err != nil {
		dir = "."
	}

	sources := config.LoadSources(dir)
	if len(sources) == 0 {
		term.Println("No configuration sources found.")
		return nil
	}

	w := tabwriter.NewWriter(term.Stdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SOURCE\tALLOW\tDENY")
	for _, src := range sources {
		fmt.Fprintf(w, "%s\t%d\t%d\n", src.Path, len(src.Allow), len(src.Deny))
	}
	w.Flush()

	store := config.LoadStore(dir)
	term.Println()
	printRules("Allow rules:", store.Allow)
	printRules("Deny rules:", store.Deny)
	return nil
}

func printRules(header string, rules []pattern.Pattern) {
	term.Println(header)
	if len(rules) == 0 {
		term.Println("  (none)")
		return
	}
	for _, p := range rules {
		term.Printf("  %s [%s]\n", p, p.Kind)
	}
}
