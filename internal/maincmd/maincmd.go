// Package maincmd implements the CLI surface exposed by cmd/loxi: parse
// flags and arguments, then run a single Lox source file end to end
// through the scanner, parser, resolver and interpreter.
package maincmd

import (
	"context"
	"fmt"
	"os"

	"github.com/mna/mainer"
)

const binName = "loxi"

var (
	shortUsage = fmt.Sprintf(`
usage: %s [<option>...] <path.lox>
Run '%[1]s --help' for details.
`, binName)

	longUsage = fmt.Sprintf(`usage: %s [<option>...] <path.lox>
       %[1]s -h|--help
       %[1]s -v|--version

Tree-walking interpreter for the Lox programming language.

Valid flag options are:
       -h --help                 Show this help and exit.
       -v --version              Print version and exit.
       --print-ast               Print the AST of each top-level expression
                                  statement to stderr before evaluating;
                                  other statements are not printed.

More information on the %[1]s repository:
       https://github.com/mna/loxi
`, binName)
)

// exitDataErr is the exit code used for any lexical, parse, resolver or
// runtime error, matching the sysexits.h EX_DATAERR convention the
// specification borrows (65).
const exitDataErr mainer.ExitCode = 65

// Cmd holds the parsed command-line invocation.
type Cmd struct {
	BuildVersion string
	BuildDate    string

	Help     bool `flag:"h,help"`
	Version  bool `flag:"v,version"`
	PrintAST bool `flag:"print-ast"`

	args []string
}

func (c *Cmd) SetArgs(args []string) {
	c.args = args
}

func (c *Cmd) SetFlags(map[string]bool) {}

func (c *Cmd) Validate() error {
	if c.Help || c.Version {
		return nil
	}
	if len(c.args) != 1 {
		return fmt.Errorf("expected exactly one source file argument, got %d", len(c.args))
	}
	return nil
}

func (c *Cmd) Main(args []string, stdio mainer.Stdio) mainer.ExitCode {
	p := mainer.Parser{
		EnvVars:   false,
		EnvPrefix: binName + "_",
	}
	if err := p.Parse(args, c); err != nil {
		fmt.Fprintf(stdio.Stderr, "invalid arguments: %s\n%s", err, shortUsage)
		return mainer.InvalidArgs
	}

	switch {
	case c.Help:
		fmt.Fprint(stdio.Stdout, longUsage)
		return mainer.Success
	case c.Version:
		fmt.Fprintf(stdio.Stdout, "%s %s %s\n", binName, c.BuildVersion, c.BuildDate)
		return mainer.Success
	}

	ctx := mainer.CancelOnSignal(context.Background(), os.Interrupt)
	if err := RunFile(ctx, stdio, c.PrintAST, c.args[0]); err != nil {
		return exitDataErr
	}
	return mainer.Success
}
