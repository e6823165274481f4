package maincmd

import (
	"context"
	"fmt"
	"os"

	"github.com/mna/mainer"

	"github.com/mna/loxi/lang/ast"
	"github.com/mna/loxi/lang/interp"
	"github.com/mna/loxi/lang/parser"
	"github.com/mna/loxi/lang/resolver"
)

// RunFile reads the source file at path, runs it through the full
// scanner/parser/resolver/interpreter pipeline, and writes `print` output
// to stdio.Stdout. Any error is printed to stdio.Stderr and also returned,
// so the caller (Cmd.Main, or a test harness) can decide what exit code
// that implies. ctx is currently unused by the interpreter itself — Lox has
// no suspension points — but is threaded through so a future native
// function (or a host embedding this pipeline) can observe cancellation.
func RunFile(ctx context.Context, stdio mainer.Stdio, printAST bool, path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintln(stdio.Stderr, err)
		return err
	}

	stmts, err := parser.Parse(src)
	if err != nil {
		printErrors(stdio, err)
		return err
	}

	locals, err := resolver.Resolve(stmts)
	if err != nil {
		printErrors(stdio, err)
		return err
	}

	if printAST {
		for _, s := range stmts {
			if es, ok := s.(*ast.Expression); ok {
				fmt.Fprintln(stdio.Stderr, ast.Print(es.Expr))
			}
		}
	}

	in := interp.New(stdio.Stdout)
	if err := in.Interpret(stmts, locals); err != nil {
		printErrors(stdio, err)
		return err
	}
	return nil
}

// printErrors writes one diagnostic per line, matching the wire contract's
// "[line N] Error: message" shape exactly. The scanner and parser may
// return an aggregate of several independent errors (go-multierror); each
// one is unwrapped and printed on its own line rather than through
// multierror's default "N errors occurred" wrapper.
func printErrors(stdio mainer.Stdio, err error) {
	if multi, ok := err.(interface{ Unwrap() []error }); ok {
		for _, e := range multi.Unwrap() {
			fmt.Fprintln(stdio.Stderr, e)
		}
		return
	}
	fmt.Fprintln(stdio.Stderr, err)
}
