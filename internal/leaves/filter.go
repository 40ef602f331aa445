package leaves

import (
	"regexp"
	"unicode"

	"github.com/funvibe/dj/internal/ast"
	"github.com/funvibe/dj/internal/ops"
)

// simpleFilter wraps a pure predicate as a Filter-kind Op. Per spec §4.3 a
// filter's Eval must return either {input} (pass) or N/A (reject) — never a
// modified value (spec §8 invariant 3).
type simpleFilter struct {
	name string
	pred func(input string, args []ast.Arg) bool
}

func (f simpleFilter) Name() string   { return f.name }
func (f simpleFilter) Kind() ops.Kind { return ops.KindFilter }
func (f simpleFilter) Eval(env ops.Env, input string, args []ast.Arg) ops.Result {
	if f.pred(input, args) {
		return ops.Of(input)
	}
	return ops.NAResult()
}

func minLengthOp() ops.Op {
	return simpleFilter{name: "min_length", pred: func(s string, args []ast.Arg) bool {
		return len([]rune(s)) >= intArg(args, 0, 0)
	}}
}

func maxLengthOp() ops.Op {
	return simpleFilter{name: "max_length", pred: func(s string, args []ast.Arg) bool {
		return len([]rune(s)) <= intArg(args, 0, 0)
	}}
}

var patternRE = regexp.MustCompile(`^(?:[a-zA-Z]+[0-9]+|[0-9]+[a-zA-Z]+)[a-zA-Z0-9!@#$%^&*_\-]*$`)

// isPatternOp is a heuristic Filter: passes entries that look like a
// structured mangled password (letters-then-digits or digits-then-letters,
// optionally trailed by symbols), rather than a bare dictionary word.
func isPatternOp() ops.Op {
	return simpleFilter{name: "is_pattern", pred: func(s string, _ []ast.Arg) bool {
		return patternRE.MatchString(s)
	}}
}

// isRegularWordOp is a minimal heuristic stand-in for the hunspell-backed
// dictionary lookup spec.md §6 describes ("`is_regular_word` consults
// hunspell dictionaries configured by `config is_regular_word DICTIONARIES
// [...]`"): alphabetic-only, length-bounded, and case-insensitive to the
// script's configured DICTIONARIES list acting only as a minimum-count
// sanity check (a real implementation needs the external dictionaries,
// explicitly out of scope per §6). Documented as a stand-in, not a claim of
// linguistic correctness.
func isRegularWordOp() ops.Op {
	return &isRegularWord{}
}

type isRegularWord struct{}

func (isRegularWord) Name() string   { return "is_regular_word" }
func (isRegularWord) Kind() ops.Kind { return ops.KindFilter }

func (isRegularWord) Eval(env ops.Env, input string, args []ast.Arg) ops.Result {
	if len(input) < 2 || len(input) > 24 {
		return ops.NAResult()
	}
	for _, r := range input {
		if !unicode.IsLetter(r) {
			return ops.NAResult()
		}
	}
	// DICTIONARIES must be configured (even if only its presence is
	// checked here) to signal that the script author opted into this
	// check with at least one language in mind.
	if dicts := env.ConfigList("is_regular_word", "DICTIONARIES"); len(dicts) == 0 {
		return ops.NAResult()
	}
	return ops.Of(input)
}
