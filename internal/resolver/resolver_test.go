package resolver_test

import (
	"strings"
	"testing"

	"github.com/funvibe/dj/internal/ops"
	"github.com/funvibe/dj/internal/parser"
	"github.com/funvibe/dj/internal/resolver"
)

type fakeCatalog map[string]ops.Kind

func (c fakeCatalog) KindOf(name string) (ops.Kind, bool) {
	k, ok := c[name]
	return k, ok
}

var catalog = fakeCatalog{
	"lower":          ops.KindTransformer,
	"upper":          ops.KindTransformer,
	"remove_ws":      ops.KindTransformer,
	"split":          ops.KindExtractor,
	"find_all":       ops.KindExtractor,
	"min_length":     ops.KindFilter,
	"is_pattern":     ops.KindFilter,
	"is_regular_word": ops.KindFilter,
}

func parse(t *testing.T, src string) *resolver.Resolved {
	t.Helper()
	p := parser.New(src)
	script, perrs := p.ParseScript()
	if len(perrs) != 0 {
		t.Fatalf("unexpected parse errors: %v", perrs)
	}
	resolved, rerrs := resolver.Resolve(script, catalog)
	if len(rerrs) != 0 {
		t.Fatalf("unexpected resolver errors: %v", rerrs)
	}
	return resolved
}

func TestMacroExpansionInline(t *testing.T) {
	r := parse(t, "def CLEAN lower remove_ws\ndo CLEAN report")
	chain := r.Statements[0].Chain
	if len(chain.Ops) != 3 {
		t.Fatalf("expected macro body (2 ops) + report to yield 3 ops, got %d: %#v", len(chain.Ops), chain.Ops)
	}
}

func TestMacroExpansionAppliesInvocationModifier(t *testing.T) {
	r := parse(t, "def CLEAN lower\n+do CLEAN report")
	chain := r.Statements[0].Chain
	if chain.Ops[0].Modifier().String() != "+" {
		t.Fatalf("expected invocation modifier to override expanded op's modifier, got %q", chain.Ops[0].Modifier())
	}
}

func TestUndefinedMacroIsResolverError(t *testing.T) {
	p := parser.New("do MISSING report")
	script, _ := p.ParseScript()
	_, errs := resolver.Resolve(script, catalog)
	if len(errs) == 0 || !strings.Contains(errs[0].Message, "undefined macro") {
		t.Fatalf("expected undefined macro error, got %v", errs)
	}
}

func TestCyclicMacroIsResolverError(t *testing.T) {
	p := parser.New("def A do B\ndef B do A\ndo A report")
	script, _ := p.ParseScript()
	_, errs := resolver.Resolve(script, catalog)
	found := false
	for _, e := range errs {
		if strings.Contains(e.Message, "cyclic macro") {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a cyclic macro error, got %v", errs)
	}
}

func TestIllegalModifierIsResolverError(t *testing.T) {
	p := parser.New("!lower report")
	script, _ := p.ParseScript()
	_, errs := resolver.Resolve(script, catalog)
	if len(errs) == 0 || !strings.Contains(errs[0].Message, "not legal") {
		t.Fatalf("expected illegal-modifier error, got %v", errs)
	}
}

func TestUnknownLeafIsResolverError(t *testing.T) {
	p := parser.New("frobnicate report")
	script, _ := p.ParseScript()
	_, errs := resolver.Resolve(script, catalog)
	if len(errs) == 0 || !strings.Contains(errs[0].Message, "unknown leaf operation") {
		t.Fatalf("expected unknown-leaf error, got %v", errs)
	}
}

func TestUndeclaredNamedListUseIsResolverError(t *testing.T) {
	p := parser.New("use MISSING lower report")
	script, _ := p.ParseScript()
	_, errs := resolver.Resolve(script, catalog)
	if len(errs) == 0 || !strings.Contains(errs[0].Message, "undeclared named list") {
		t.Fatalf("expected undeclared-named-list error, got %v", errs)
	}
}

func TestBlockSinkToUndeclaredListIsResolverError(t *testing.T) {
	p := parser.New("{ lower }> MISSING report")
	script, _ := p.ParseScript()
	_, errs := resolver.Resolve(script, catalog)
	if len(errs) == 0 || !strings.Contains(errs[0].Message, "undeclared named list") {
		t.Fatalf("expected undeclared-named-list error from block sink, got %v", errs)
	}
}

func TestBlockSinkToDeclaredListResolvesCleanly(t *testing.T) {
	r := parse(t, "list L\n{ lower }> L\nuse L report")
	if len(r.Lists) != 1 || r.Lists[0] != "L" {
		t.Fatalf("expected declared list L, got %#v", r.Lists)
	}
}

func TestDuplicateConfigDirectiveIsError(t *testing.T) {
	p := parser.New("config is_regular_word DICTIONARIES [ \"en\" ]\nconfig is_regular_word DICTIONARIES [ \"de\" ]\nreport")
	script, _ := p.ParseScript()
	_, errs := resolver.Resolve(script, catalog)
	if len(errs) == 0 || !strings.Contains(errs[0].Message, "duplicate config directive") {
		t.Fatalf("expected duplicate config directive error, got %v", errs)
	}
}

func TestConfigTableBinding(t *testing.T) {
	r := parse(t, "config is_regular_word DICTIONARIES [ \"en\", \"de\" ]\nreport")
	list := r.Config.GetList("is_regular_word", "DICTIONARIES")
	if len(list) != 2 || list[0] != "en" || list[1] != "de" {
		t.Fatalf("got %#v", list)
	}
}
