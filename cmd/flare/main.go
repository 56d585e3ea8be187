package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"flare/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "flare",
	Short: "Build failure report renderer",
	Long:  `Flare turns causal failure trees from build runs into deduplicated, human-readable reports`,
}

func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Bool("timings", false, "show timing information")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// isTerminal checks whether the file is attached to a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
