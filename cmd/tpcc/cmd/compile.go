package cmd

import (
	"fmt"
	"os"

	"github.com/cwbudde/go-tpcc/internal/ast"
	cerrors "github.com/cwbudde/go-tpcc/internal/errors"
	"github.com/cwbudde/go-tpcc/internal/lexer"
	"github.com/cwbudde/go-tpcc/internal/parser"
	"github.com/cwbudde/go-tpcc/internal/quaternion"
	"github.com/spf13/cobra"
)

var outputFile string

var compileCmd = &cobra.Command{
	Use:   "compile [file]...",
	Short: "Run all three stages and print the resulting quaternions",
	Args:  cobra.MinimumNArgs(1),
	RunE:  compileFiles,
}

func init() {
	rootCmd.AddCommand(compileCmd)
	compileCmd.Flags().StringVarP(&outputFile, "output", "o", "", "output file (default: standard output)")
}

// compileFiles runs the full pipeline over each file in turn, stopping at
// the first file that fails. Each file is compiled independently
// (spec.md §6): no state carries over from one file to the next.
func compileFiles(cmd *cobra.Command, args []string) error {
	out := os.Stdout
	if outputFile != "" {
		f, err := os.Create(outputFile)
		if err != nil {
			return fmt.Errorf("failed to create output file %s: %w", outputFile, err)
		}
		defer f.Close()
		out = f
	}

	verbose, _ := cmd.Flags().GetBool("verbose")

	for _, filename := range args {
		if err := compileOne(filename, out, verbose); err != nil {
			return err
		}
	}
	return nil
}

func compileOne(filename string, out *os.File, verbose bool) error {
	content, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	source := string(content)

	if verbose {
		fmt.Fprintf(os.Stderr, "Compiling %s...\n", filename)
	}

	statements, err := parseSource(source, filename)
	if err != nil {
		return err
	}

	gen := quaternion.New()
	quaternions, err := gen.Generate(statements)
	if err != nil {
		if qerr, ok := err.(cerrors.Positioned); ok {
			ce := cerrors.FromPositioned(qerr, source, filename)
			fmt.Fprintln(os.Stderr, ce.Format(true))
			return fmt.Errorf("quaternization failed")
		}
		return err
	}

	fmt.Fprint(out, quaternion.Render(quaternions))
	return nil
}

// parseSource runs the lexer and parser stages and reports a stage error
// (if any) formatted with source context, matching compile's error
// presentation.
func parseSource(source, filename string) ([]ast.Statement, error) {
	l := lexer.New(source)
	p, err := parser.New(l)
	if err != nil {
		reportStageError(err, source, filename)
		return nil, fmt.Errorf("lexing failed")
	}

	statements, err := p.Parse()
	if err != nil {
		reportStageError(err, source, filename)
		return nil, fmt.Errorf("parsing failed")
	}
	return statements, nil
}

func reportStageError(err error, source, filename string) {
	if positioned, ok := err.(cerrors.Positioned); ok {
		ce := cerrors.FromPositioned(positioned, source, filename)
		fmt.Fprintln(os.Stderr, ce.Format(true))
		return
	}
	fmt.Fprintln(os.Stderr, err)
}
