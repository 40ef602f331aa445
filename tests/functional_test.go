package tests

import (
	"bytes"
	"os/exec"
	"path/filepath"
	"testing"
)

// TestFunctional builds the dj binary once and runs spec.md §8's concrete
// end-to-end scenarios 1-4 through it, comparing stdout byte-for-byte (the
// named-list and restart scenarios are tested in internal/evaluator).
// Grounded on the teacher's tests/functional_test.go, which built
// cmd/funxy and fed it .lang/.want fixture pairs from disk; here the
// fixtures are inlined as a table since the full scenario set is small
// and fixed rather than an open-ended fixture directory.
func TestFunctional(t *testing.T) {
	dir := t.TempDir()
	binaryPath := filepath.Join(dir, "dj-test-binary")

	build := exec.Command("go", "build", "-o", binaryPath, "./cmd/dj")
	build.Dir = projectRoot(t)
	if out, err := build.CombinedOutput(); err != nil {
		t.Fatalf("building dj binary: %v\n%s", err, out)
	}

	cases := []struct {
		name   string
		script string
		input  string
		want   string
	}{
		{
			name:   "split_report",
			script: `split " " report`,
			input:  "A Test\n",
			want:   "A\nTest\n",
		},
		{
			name:   "remove_ws_drops_na",
			script: `remove_ws report`,
			input:  "abc\na b c\n",
			want:   "abc\n",
		},
		{
			name:   "find_all_classify",
			script: `find_all "^[0-9]+$" classify "number, " result`,
			input:  "2024\n",
			want:   "number, 2024\n",
		},
		{
			name:   "find_all_no_match",
			script: `find_all "^[0-9]+$" classify "number, " result`,
			input:  "abc\n",
			want:   "",
		},
		{
			name:   "split_remove_ws_map_lower_variants",
			script: `+split " " +remove_ws *map " " "-_" +lower report`,
			input:  "Audi RS\n",
			want: "Audi RS\nAudi\nRS\nAudiRS\nAudi-RS\nAudi_RS\n" +
				"audi rs\naudi\nrs\naudirs\naudi-rs\naudi_rs\n",
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			cmd := exec.Command(binaryPath, "-e", tc.script)
			cmd.Stdin = bytes.NewBufferString(tc.input)
			var stdout, stderr bytes.Buffer
			cmd.Stdout = &stdout
			cmd.Stderr = &stderr

			if err := cmd.Run(); err != nil {
				t.Fatalf("dj exited with error: %v\nstderr: %s", err, stderr.String())
			}
			if got := stdout.String(); got != tc.want {
				t.Errorf("output mismatch:\n--- want ---\n%q\n--- got ---\n%q", tc.want, got)
			}
		})
	}
}

func projectRoot(t *testing.T) string {
	t.Helper()
	root, err := filepath.Abs("..")
	if err != nil {
		t.Fatalf("resolving project root: %v", err)
	}
	return root
}
