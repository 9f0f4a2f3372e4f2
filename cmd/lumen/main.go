// Command lumen is the CLI front end over the semantic-analysis core: it
// wires configuration, the driver pipeline, diagnostic rendering, and the
// editor protocol into three subcommands (SPEC_FULL.md §12).
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "lumen",
	Short: "Semantic analysis core for a statically typed systems language",
	Long:  `lumen resolves names, infers and checks types, and folds compile-time constants over an already-parsed module set.`,
}

func main() {
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(ideCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize diagnostics (auto|always|never)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().String("config", "", "path to lumen.toml (defaults to walking up from the input directory)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
