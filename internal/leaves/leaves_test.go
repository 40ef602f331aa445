package leaves_test

import (
	"reflect"
	"testing"

	"github.com/funvibe/dj/internal/ast"
	"github.com/funvibe/dj/internal/config"
	"github.com/funvibe/dj/internal/leaves"
	"github.com/funvibe/dj/internal/ops"
)

// testEnv implements ops.Env for leaf tests, backed by a config.Table.
type testEnv struct {
	cfg *config.Table
}

func (e testEnv) ConfigString(op, param, fallback string) string {
	return e.cfg.GetString(op, param, fallback)
}
func (e testEnv) ConfigList(op, param string) []string { return e.cfg.GetList(op, param) }
func (e testEnv) GlobalList(name string) ([]string, bool) { return nil, false }

func newEnv() testEnv { return testEnv{cfg: config.NewTable()} }

func str(s string) ast.Arg  { return ast.StringArg{Value: s} }
func num(n int) ast.Arg     { return ast.IntArg{Value: n} }

func TestTransformers(t *testing.T) {
	reg := leaves.NewRegistry()
	env := newEnv()

	cases := []struct {
		name  string
		input string
		args  []ast.Arg
		want  []string // nil: output equals input, so the leaf reports N/A
	}{
		{"lower", "ABC", nil, []string{"abc"}},
		{"upper", "abc", nil, []string{"ABC"}},
		{"capitalize", "hELLO", nil, []string{"Hello"}},
		{"reverse", "abc", nil, []string{"cba"}},
		{"remove", "a-b-c", []ast.Arg{str("-")}, []string{"abc"}},
		{"remove_ws", "a b\tc", nil, []string{"abc"}},
		{"prepend", "word", []ast.Arg{str("$")}, []string{"$word"}},
		{"append", "word", []ast.Arg{str("!")}, []string{"word!"}},
		{"dedup", "aabbcc", nil, []string{"abc"}},
		{"deduplicate", "aabbcc", nil, []string{"abc"}},
		{"deleetify", "p4ssw0rd", nil, []string{"password"}},
		{"correct_spelling", "wrod", nil, nil},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			op, ok := reg.Lookup(c.name)
			if !ok {
				t.Fatalf("leaf %q not registered", c.name)
			}
			got := op.Eval(env, c.input, c.args)
			if c.want == nil {
				if !got.NA {
					t.Fatalf("expected N/A for %q(%q), got %#v", c.name, c.input, got.Values)
				}
				return
			}
			if got.NA {
				t.Fatalf("unexpected N/A for %q(%q)", c.name, c.input)
			}
			if !reflect.DeepEqual(got.Values, c.want) {
				t.Fatalf("%s(%q) = %#v, want %#v", c.name, c.input, got.Values, c.want)
			}
		})
	}
}

// TestMapProducesOneVariantPerToChar matches spec.md §8 scenario 3: `map
// " " "-_"` on `Audi RS` yields both `Audi-RS` and `Audi_RS`, one variant
// per character of the second argument, not a single tr(1)-style
// transliteration.
func TestMapProducesOneVariantPerToChar(t *testing.T) {
	reg := leaves.NewRegistry()
	env := newEnv()
	op, ok := reg.Lookup("map")
	if !ok {
		t.Fatal("leaf \"map\" not registered")
	}
	got := op.Eval(env, "Audi RS", []ast.Arg{str(" "), str("-_")})
	if got.NA {
		t.Fatal("unexpected N/A for map(\"Audi RS\")")
	}
	want := []string{"Audi-RS", "Audi_RS"}
	if !reflect.DeepEqual(got.Values, want) {
		t.Fatalf("map(%q) = %#v, want %#v", "Audi RS", got.Values, want)
	}
}

func TestMapNAWhenNoMatch(t *testing.T) {
	reg := leaves.NewRegistry()
	env := newEnv()
	op, _ := reg.Lookup("map")
	got := op.Eval(env, "Audi", []ast.Arg{str(" "), str("-_")})
	if !got.NA {
		t.Fatalf("expected N/A when no \"from\" character matches, got %#v", got.Values)
	}
}

func TestDedupIdempotent(t *testing.T) {
	reg := leaves.NewRegistry()
	env := newEnv()
	op, _ := reg.Lookup("deduplicate")
	once := op.Eval(env, "aaabbbccc", nil)
	twice := op.Eval(env, once.Values[0], nil)
	// A second application changes nothing, which a Transformer reports as N/A.
	if !reflect.DeepEqual(once.Values, []string{"abc"}) || !twice.NA {
		t.Fatalf("deduplicate not idempotent: once=%v twice=%v", once.Values, twice.Values)
	}
}

func TestReverseInvolution(t *testing.T) {
	reg := leaves.NewRegistry()
	env := newEnv()
	op, _ := reg.Lookup("reverse")
	once := op.Eval(env, "hello", nil)
	twice := op.Eval(env, once.Values[0], nil)
	if twice.Values[0] != "hello" {
		t.Fatalf("reverse twice != identity: got %q", twice.Values[0])
	}
}

func TestSplitExtractor(t *testing.T) {
	reg := leaves.NewRegistry()
	env := newEnv()
	op, _ := reg.Lookup("split")
	got := op.Eval(env, "a-b-c", []ast.Arg{str("-")})
	if !reflect.DeepEqual(got.Values, []string{"a", "b", "c"}) {
		t.Fatalf("split = %#v", got.Values)
	}
	if na := op.Eval(env, "abc", []ast.Arg{str("-")}); !na.NA {
		t.Fatalf("expected N/A when separator absent, got %#v", na)
	}
}

func TestFindAllExtractor(t *testing.T) {
	reg := leaves.NewRegistry()
	env := newEnv()
	op, _ := reg.Lookup("find_all")
	got := op.Eval(env, "John Smith", []ast.Arg{str(`[A-Z][a-z]+`)})
	if !reflect.DeepEqual(got.Values, []string{"John", "Smith"}) {
		t.Fatalf("find_all = %#v", got.Values)
	}
}

func TestGetNoExtractor(t *testing.T) {
	reg := leaves.NewRegistry()
	env := newEnv()
	op, _ := reg.Lookup("get_no")
	got := op.Eval(env, "abc123def45", nil)
	if !reflect.DeepEqual(got.Values, []string{"123", "45"}) {
		t.Fatalf("get_no = %#v", got.Values)
	}
	if na := op.Eval(env, "abcdef", nil); !na.NA {
		t.Fatalf("expected N/A with no digits, got %#v", na)
	}
}

func TestMangleDates(t *testing.T) {
	reg := leaves.NewRegistry()
	env := newEnv()
	op, _ := reg.Lookup("mangle_dates")
	got := op.Eval(env, "born 04-07-1990 ok", nil)
	if got.NA || len(got.Values) == 0 {
		t.Fatalf("expected date variants, got %#v", got)
	}
}

func TestRelatedStub(t *testing.T) {
	reg := leaves.NewRegistry()
	env := newEnv()
	op, _ := reg.Lookup("related")
	if got := op.Eval(env, "word", []ast.Arg{num(5)}); !got.NA {
		t.Fatalf("expected related stub to always return N/A, got %#v", got)
	}
}

func TestFilters(t *testing.T) {
	reg := leaves.NewRegistry()
	env := newEnv()

	minOp, _ := reg.Lookup("min_length")
	if r := minOp.Eval(env, "abc", []ast.Arg{num(3)}); r.NA {
		t.Fatalf("expected min_length 3 to pass \"abc\"")
	}
	if r := minOp.Eval(env, "ab", []ast.Arg{num(3)}); !r.NA {
		t.Fatalf("expected min_length 3 to reject \"ab\"")
	}

	maxOp, _ := reg.Lookup("max_length")
	if r := maxOp.Eval(env, "abc", []ast.Arg{num(3)}); r.NA {
		t.Fatalf("expected max_length 3 to pass \"abc\"")
	}
	if r := maxOp.Eval(env, "abcd", []ast.Arg{num(3)}); !r.NA {
		t.Fatalf("expected max_length 3 to reject \"abcd\"")
	}

	patOp, _ := reg.Lookup("is_pattern")
	if r := patOp.Eval(env, "abc123", nil); r.NA {
		t.Fatalf("expected is_pattern to pass \"abc123\"")
	}
	if r := patOp.Eval(env, "abcdef", nil); !r.NA {
		t.Fatalf("expected is_pattern to reject plain word \"abcdef\"")
	}
}

func TestIsRegularWordRequiresConfig(t *testing.T) {
	reg := leaves.NewRegistry()
	op, _ := reg.Lookup("is_regular_word")

	noConfig := newEnv()
	if r := op.Eval(noConfig, "hello", nil); !r.NA {
		t.Fatalf("expected N/A without a configured DICTIONARIES list, got %#v", r)
	}

	withConfig := newEnv()
	withConfig.cfg.Set("is_regular_word", "DICTIONARIES", config.ListLiteral([]string{"en"}))
	if r := op.Eval(withConfig, "hello", nil); r.NA {
		t.Fatalf("expected \"hello\" to pass once DICTIONARIES is configured")
	}
	if r := op.Eval(withConfig, "h3ll0", nil); !r.NA {
		t.Fatalf("expected non-alphabetic input to be rejected")
	}
}
