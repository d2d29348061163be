/*
Command opg generates operator precedence tables for context-free grammars.

Grammars are read from text files, one production per line:

    E  -> E + T | T
    T  -> T * F | F
    F  -> ( E ) | id

The left side of the first production is the start symbol. Every symbol
appearing on a left side is a non-terminal, all other symbols are terminals.

Usage

    opg table [flags] <grammar-file>   print the precedence table and write it to a file
    opg vt [flags] <grammar-file>      print FIRSTVT and LASTVT sets
    opg repl                           interactive session

Global flags are --trace <level> and --config <file>. Configuration files
are YAML, see package config.

Exit codes are 0 for success, 1 for malformed grammars or I/O errors and 2 for
grammars which are not operator precedence grammars.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/npillmayer/opg"
	"github.com/npillmayer/schuko/tracing"
	"github.com/pterm/pterm"
)

// tracer traces with key 'opg.cli'
func tracer() tracing.Trace {
	return tracing.Select("opg.cli")
}

func main() {
	initDisplay()
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the command line args and returns the exit code.
func run(args []string, stdout, stderr io.Writer) int {
	cmd := newRootCmd(&app{})
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	err := cmd.Execute()
	if err != nil {
		fmt.Fprint(stderr, pterm.Error.Sprintln(err.Error()))
	}
	return exitCode(err)
}

func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, opg.ErrAmbiguousGrammar):
		return 2
	}
	return 1
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.Info.Prefix = pterm.Prefix{
		Text:  "  >>",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "  Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}
