package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version information, set by build flags.
var (
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "tpcc [file]...",
	Short: "Quaternion-generating compiler front end",
	Long: `tpcc is a front end for a minimal block-structured language
(PROGRAM / PROCEDURE / VAR / BEGIN..END / IF..THEN..ELSE / WHILE..DO /
REPEAT..UNTIL / READ / WRITE over integer arithmetic).

Running it with one or more file arguments and no subcommand lexes,
parses and quaternizes each file in turn and prints the resulting
quaternion stream — the same pipeline the "compile" subcommand runs.
Use "lex" or "parse" to stop early and inspect an earlier stage.`,
	Version:      Version,
	Args:         cobra.MinimumNArgs(1),
	RunE:         compileFiles,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf("tpcc version {{.Version}}\nCommit: %s\n", GitCommit))
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
	rootCmd.Flags().StringVarP(&outputFile, "output", "o", "", "output file (default: standard output)")
}
