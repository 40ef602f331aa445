package evaluator_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/funvibe/dj/internal/evaluator"
	"github.com/funvibe/dj/internal/leaves"
	"github.com/funvibe/dj/internal/parser"
	"github.com/funvibe/dj/internal/resolver"
	"github.com/funvibe/dj/internal/runtime"
)

// run parses, resolves, and evaluates script against every line of input in
// one environment, returning everything written to `report`/`result` sinks.
// Grounded on spec.md §8's "concrete end-to-end scenarios," which are
// specified exactly this way: a script, literal input lines, literal output.
func run(t *testing.T, script string, input []string) string {
	t.Helper()
	catalog := leaves.NewRegistry()

	ast, errs := parser.New(script).ParseScript()
	if len(errs) > 0 {
		t.Fatalf("parse errors: %v", errs)
	}
	resolved, errs := resolver.Resolve(ast, catalog)
	if len(errs) > 0 {
		t.Fatalf("resolve errors: %v", errs)
	}

	env := runtime.NewEnvironment(resolved.Config, "test-run")
	var buf bytes.Buffer
	env.Report = &buf
	defer env.Close()

	ev := evaluator.New(env, catalog, resolved)
	for _, line := range input {
		if err := ev.RunEntry(line); err != nil {
			t.Fatalf("evaluating %q: %v", line, err)
		}
	}
	return buf.String()
}

func TestEndToEndScenarios(t *testing.T) {
	cases := []struct {
		name   string
		script string
		input  []string
		want   string
	}{
		{
			name:   "split_on_space",
			script: `split " " report`,
			input:  []string{"A Test"},
			want:   "A\nTest\n",
		},
		{
			name:   "remove_ws_drops_na_entries",
			script: `remove_ws report`,
			input:  []string{"abc", "a b c"},
			want:   "abc\n",
		},
		{
			name:   "find_all_classify_match",
			script: `find_all "^[0-9]+$" classify "number, " result`,
			input:  []string{"2024"},
			want:   "number, 2024\n",
		},
		{
			name:   "find_all_classify_no_match",
			script: `find_all "^[0-9]+$" classify "number, " result`,
			input:  []string{"abc"},
			want:   "",
		},
		{
			name:   "split_remove_ws_map_lower_variants",
			script: `+split " " +remove_ws *map " " "-_" +lower report`,
			input:  []string{"Audi RS"},
			want: "Audi RS\nAudi\nRS\nAudiRS\nAudi-RS\nAudi_RS\n" +
				"audi rs\naudi\nrs\naudirs\naudi-rs\naudi_rs\n",
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			got := run(t, tc.script, tc.input)
			if got != tc.want {
				t.Errorf("output mismatch:\nwant %q\ngot  %q", tc.want, got)
			}
		})
	}
}

func TestNamedListUseChain(t *testing.T) {
	script := "list L { find_all \"[A-Z][a-z]+\" }> L\n" +
		"use L prepend each \"$\" report\n"
	got := run(t, script, []string{"AudiRSModel"})
	want := "$Audi\n$RSModel\n"
	if got != want {
		t.Errorf("named-list use chain mismatch:\nwant %q\ngot  %q", want, got)
	}
}

func TestEntryStateResetsBetweenEntries(t *testing.T) {
	script := "list L { find_all \"[A-Z][a-z]+\" }> L\n" +
		"use L prepend each \"$\" report\n"
	got := run(t, script, []string{"AudiRS", "bmw"})
	lines := strings.Split(strings.TrimRight(got, "\n"), "\n")
	if len(lines) != 1 || lines[0] != "$Audi" {
		t.Errorf("expected named list L to be empty for the second entry (no extracted tokens), got lines: %v", lines)
	}
}

func TestRestartStopsAsSoonAsFilterRejects(t *testing.T) {
	script := `restart 3 ( min length 8 , deduplicate ) report`
	got := run(t, script, []string{"aaabbbccc"})
	want := "abc\n"
	if got != want {
		t.Errorf("restart output mismatch:\nwant %q\ngot  %q", want, got)
	}
}

func TestIgnoreEntrySkipsAllChains(t *testing.T) {
	catalog := leaves.NewRegistry()
	scriptAST, errs := parser.New(`upper report`).ParseScript()
	if len(errs) > 0 {
		t.Fatalf("parse errors: %v", errs)
	}
	resolved, errs := resolver.Resolve(scriptAST, catalog)
	if len(errs) > 0 {
		t.Fatalf("resolve errors: %v", errs)
	}

	env := runtime.NewEnvironment(resolved.Config, "test-run")
	env.Ignore["skip"] = struct{}{}
	var buf bytes.Buffer
	env.Report = &buf
	defer env.Close()

	ev := evaluator.New(env, catalog, resolved)
	if err := ev.RunEntry("skip"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if buf.String() != "" {
		t.Errorf("expected an ignored entry to produce no output, got %q", buf.String())
	}
}
