// Package ops defines the operation algebra of spec §4.3/§4.4: the four
// operation kinds, the N/A-or-ilist result shape, and the modifier laws that
// reshape a raw operation result before it rejoins the pipeline. Concrete
// leaf implementations live in internal/leaves; this package only fixes the
// vocabulary every leaf, combinator, and the evaluator share.
//
// Grounded on the teacher's (github.com/funvibe/funxy) tagged-variant
// Object/Result style in internal/vm: a small sum type plus free functions
// over it, rather than an inheritance hierarchy.
package ops

import "github.com/funvibe/dj/internal/ast"

// Kind classifies an operation per spec §4.3.
type Kind int

const (
	KindTransformer Kind = iota
	KindExtractor
	KindFilter
	KindMeta
)

func (k Kind) String() string {
	switch k {
	case KindTransformer:
		return "transformer"
	case KindExtractor:
		return "extractor"
	case KindFilter:
		return "filter"
	case KindMeta:
		return "meta"
	default:
		return "unknown"
	}
}

// Result is the outcome of applying an operation to one value: either N/A,
// or an ilist of zero or more non-empty strings. Empty strings are dropped
// at construction time (spec §4.3: "Empty strings inside any produced ilist
// are discarded at production time").
type Result struct {
	NA     bool
	Values []string
}

// NAResult is the N/A outcome.
func NAResult() Result { return Result{NA: true} }

// Of builds a non-N/A result from values, dropping any empty strings.
func Of(values ...string) Result {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return Result{Values: out}
}

// IsEmpty reports whether r is the non-N/A empty ilist.
func (r Result) IsEmpty() bool { return !r.NA && len(r.Values) == 0 }

// Env is the read-only environment a leaf operation may consult: the
// resolved configuration table and any global lists/sets (spec §6's
// leaf-operation interface: "plus the global configuration table entries
// matching its op-name").
type Env interface {
	ConfigString(op, param, fallback string) string
	ConfigList(op, param string) []string
	GlobalList(name string) ([]string, bool)
}

// Op is one evaluable leaf operation: a Transformer, Extractor, or Filter
// (spec §4.3). MetaOperations/combinators are handled directly by the
// evaluator, since their contract is over a whole ilist rather than one
// value at a time (spec §4.7).
type Op interface {
	Name() string
	Kind() Kind
	// Eval applies the operation to a single input value with the literal
	// arguments bound at parse time. It must never be called with N/A; it
	// only ever produces it.
	Eval(env Env, input string, args []ast.Arg) Result
}

// ApplyModifier rewrites a raw operation result per the four laws of spec
// §4.4 / §8 invariant 4. It does not check which laws are legal for the
// op's kind; the resolver rejects illegal (modifier, kind) pairs before
// evaluation ever reaches this function.
func ApplyModifier(mod ast.Modifier, input string, r Result) Result {
	switch mod {
	case ast.ModNone:
		return r
	case ast.ModPlus:
		// +op(x) = {x} ∪ op(x)\{N/A}; {x} alone when op(x) = N/A.
		if r.NA {
			return Of(input)
		}
		return unionPreserveOrder(input, r.Values)
	case ast.ModStar:
		// *op(x) = op(x) when op(x) ≠ N/A, else {x}.
		if r.NA {
			return Of(input)
		}
		return r
	case ast.ModBang:
		// !F(x) = {x} when F(x) = N/A, else N/A.
		if r.NA {
			return Of(input)
		}
		return NAResult()
	case ast.ModTilde:
		// ~F(x) = {x} when F(x) ∈ {N/A, ∅}, else F(x).
		if r.NA || r.IsEmpty() {
			return Of(input)
		}
		return r
	default:
		return r
	}
}

// unionPreserveOrder implements set union "{x} ∪ vs", keeping first-seen
// order with x always first, matching spec §4.4's "+op" law.
func unionPreserveOrder(x string, vs []string) Result {
	seen := make(map[string]bool, len(vs)+1)
	out := make([]string, 0, len(vs)+1)
	add := func(s string) {
		if s == "" || seen[s] {
			return
		}
		seen[s] = true
		out = append(out, s)
	}
	add(x)
	for _, v := range vs {
		add(v)
	}
	return Result{Values: out}
}

// ModifierLegal implements the resolver's modifier-legality check of spec
// §4.2: "! only on Filters; + only on Transformers/Extractors; * only on
// Transformers/Extractors; ~ only on Filters and combinators with
// filter-like semantics." isFilterLikeCombinator lets callers outside this
// package (the resolver, validating CombinatorOp nodes) extend the `~` rule
// to combinators without this package needing to know their names.
func ModifierLegal(mod ast.Modifier, kind Kind, isFilterLikeCombinator bool) bool {
	switch mod {
	case ast.ModNone:
		return true
	case ast.ModPlus, ast.ModStar:
		return kind == KindTransformer || kind == KindExtractor
	case ast.ModBang:
		return kind == KindFilter
	case ast.ModTilde:
		return kind == KindFilter || (kind == KindMeta && isFilterLikeCombinator)
	default:
		return false
	}
}
