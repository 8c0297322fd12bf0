// Command tpcc is the reference driver for the quaternion-generating
// compiler front end: it wires source files to the lexer, parser and
// quaternizer stages and prints their output. Command-line parsing, file
// I/O and output formatting live here deliberately — the core pipeline
// packages under internal/ never touch the filesystem or flags.
package main

import (
	"fmt"
	"os"

	"github.com/cwbudde/go-tpcc/cmd/tpcc/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
