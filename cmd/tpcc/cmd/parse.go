package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var parseCmd = &cobra.Command{
	Use:   "parse [file]...",
	Short: "Run the lexer and parser stages and print the resulting statement list",
	Args:  cobra.MinimumNArgs(1),
	RunE:  parseFiles,
}

func init() {
	rootCmd.AddCommand(parseCmd)
}

func parseFiles(cmd *cobra.Command, args []string) error {
	for _, filename := range args {
		if err := parseOne(filename); err != nil {
			return err
		}
	}
	return nil
}

func parseOne(filename string) error {
	content, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	source := string(content)

	statements, err := parseSource(source, filename)
	if err != nil {
		return err
	}

	for i, stmt := range statements {
		fmt.Printf("%3d: %s\n", i, stmt.String())
	}
	return nil
}
