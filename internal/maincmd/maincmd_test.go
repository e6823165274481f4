package maincmd_test

import (
	"bytes"
	"context"
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/kylelemons/godebug/diff"
	"github.com/mna/mainer"

	"github.com/mna/loxi/internal/maincmd"
)

var updateGoldenFiles = flag.Bool("test.update-maincmd-tests", false, "If set, replace expected maincmd test results with actual results.")

// TestRunFile drives the whole scanner/parser/resolver/interpreter pipeline
// against the scenario and error fixtures lifted directly from the
// specification's testable-properties tables, diffing stdout and stderr
// against golden files.
func TestRunFile(t *testing.T) {
	ctx := context.Background()
	srcDir, resultDir := filepath.Join("testdata", "in"), filepath.Join("testdata", "out")

	dents, err := os.ReadDir(srcDir)
	if err != nil {
		t.Fatal(err)
	}

	for _, dent := range dents {
		if dent.IsDir() || filepath.Ext(dent.Name()) != ".lox" {
			continue
		}
		name := dent.Name()

		t.Run(name, func(t *testing.T) {
			var out, errOut bytes.Buffer
			stdio := mainer.Stdio{Stdout: &out, Stderr: &errOut}

			// the error is ignored here; we only care that it was printed to
			// errOut, which the golden file comparison below verifies.
			_ = maincmd.RunFile(ctx, stdio, false, filepath.Join(srcDir, name))

			diffGolden(t, "stdout", filepath.Join(resultDir, name+".out"), out.String())
			diffGolden(t, "stderr", filepath.Join(resultDir, name+".err"), errOut.String())
		})
	}
}

// diffGolden compares got against the contents of goldFile, failing the test
// and logging a unified diff on mismatch. Run with -test.update-maincmd-tests
// to rewrite the golden file with got instead of comparing.
func diffGolden(t *testing.T, label, goldFile, got string) {
	t.Helper()

	if *updateGoldenFiles {
		if err := os.WriteFile(goldFile, []byte(got), 0o600); err != nil {
			t.Fatal(err)
		}
		return
	}

	wantb, err := os.ReadFile(goldFile)
	if err != nil && !os.IsNotExist(err) {
		t.Fatal(err)
	}
	want := string(wantb)
	if patch := diff.Diff(want, got); patch != "" {
		t.Errorf("diff %s:\n%s\n", label, patch)
	}
}
