package runtime_test

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/funvibe/dj/internal/runtime"
)

func TestDedupSetSeenOrAdd(t *testing.T) {
	d := runtime.NewDedupSet()
	if d.SeenOrAdd("a") {
		t.Fatalf("expected first sighting of \"a\" to report false")
	}
	if !d.SeenOrAdd("a") {
		t.Fatalf("expected second sighting of \"a\" to report true")
	}
	if d.SeenOrAdd("b") {
		t.Fatalf("expected first sighting of \"b\" to report false")
	}
	if d.Len() != 2 {
		t.Fatalf("expected 2 distinct entries, got %d", d.Len())
	}
}

func TestNamedListOrderedAllowsDuplicates(t *testing.T) {
	nl := runtime.NewNamedList(runtime.KindOrderedList)
	nl.Append([]string{"a", "a", "b"})
	if !reflect.DeepEqual(nl.Values, []string{"a", "a", "b"}) {
		t.Fatalf("got %#v", nl.Values)
	}
}

func TestNamedListSetDeduplicates(t *testing.T) {
	nl := runtime.NewNamedList(runtime.KindDedupSet)
	nl.Append([]string{"a", "a", "b"})
	if !reflect.DeepEqual(nl.Values, []string{"a", "b"}) {
		t.Fatalf("got %#v", nl.Values)
	}
}

func TestNamedListDropsEmptyStrings(t *testing.T) {
	nl := runtime.NewNamedList(runtime.KindOrderedList)
	nl.Append([]string{"a", "", "b"})
	if !reflect.DeepEqual(nl.Values, []string{"a", "b"}) {
		t.Fatalf("got %#v", nl.Values)
	}
}

func TestEntryStateResetEmptiesAllLists(t *testing.T) {
	es := runtime.NewEntryState([]string{"L"}, []string{"S"})
	l, _ := es.List("L")
	l.Append([]string{"x", "y"})
	s, _ := es.List("S")
	s.Append([]string{"x", "x"})

	es.Reset()

	if len(l.Values) != 0 {
		t.Fatalf("expected L empty after reset, got %#v", l.Values)
	}
	if len(s.Values) != 0 {
		t.Fatalf("expected S empty after reset, got %#v", s.Values)
	}

	s.Append([]string{"x"})
	if !reflect.DeepEqual(s.Values, []string{"x"}) {
		t.Fatalf("expected set dedup index to also be cleared by reset, got %#v", s.Values)
	}
}

func TestLoadGlobalListSkipsBlankLinesAndDeduplicatesSets(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "words.txt")
	if err := os.WriteFile(path, []byte("alpha\n\nbeta\nalpha\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	gl, err := runtime.LoadGlobalList("W", path, true, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(gl.Values, []string{"alpha", "beta"}) {
		t.Fatalf("got %#v", gl.Values)
	}
	if !gl.Contains("alpha") || gl.Contains("gamma") {
		t.Fatalf("Contains behaved unexpectedly: %#v", gl)
	}
}

func TestLoadGlobalListAppliesFilter(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "words.txt")
	if err := os.WriteFile(path, []byte("Alpha\nBeta\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	gl, err := runtime.LoadGlobalList("W", path, false, func(line string) []string {
		return []string{line + "!"}
	})
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(gl.Values, []string{"Alpha!", "Beta!"}) {
		t.Fatalf("got %#v", gl.Values)
	}
}

func TestLoadGlobalListReadsYAMLSequence(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "words.yaml")
	if err := os.WriteFile(path, []byte("- alpha\n- beta\n- alpha\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	gl, err := runtime.LoadGlobalList("W", path, true, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(gl.Values, []string{"alpha", "beta"}) {
		t.Fatalf("got %#v", gl.Values)
	}
}

func TestLoadGlobalListReadsYAMLValuesMapping(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "words.yml")
	if err := os.WriteFile(path, []byte("values:\n  - gamma\n  - delta\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	gl, err := runtime.LoadGlobalList("W", path, false, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(gl.Values, []string{"gamma", "delta"}) {
		t.Fatalf("got %#v", gl.Values)
	}
}

func TestOutputRegistryCreateTruncatesThenWriteAppends(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.txt")
	reg := runtime.NewOutputRegistry("test-run")
	defer reg.Close()

	if err := os.WriteFile(path, []byte("stale\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := reg.Create(path); err != nil {
		t.Fatal(err)
	}
	if err := reg.Write(path, []string{"a", "b"}); err != nil {
		t.Fatal(err)
	}
	if err := reg.Close(); err != nil {
		t.Fatal(err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "a\nb\n" {
		t.Fatalf("got %q", got)
	}
}
