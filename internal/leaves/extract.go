package leaves

import (
	"regexp"
	"strings"
	"sync"

	"github.com/funvibe/dj/internal/ast"
	"github.com/funvibe/dj/internal/ops"
)

// splitOp is the core Extractor: split "sep" (spec §4.3 example).
func splitOp() ops.Op {
	return simpleExtractor{name: "split", fn: func(s string, args []ast.Arg) ops.Result {
		sep := stringArg(args, 0, " ")
		if sep == "" {
			return ops.NAResult()
		}
		parts := strings.Split(s, sep)
		if len(parts) <= 1 {
			return ops.NAResult()
		}
		return ops.Of(parts...)
	}}
}

type simpleExtractor struct {
	name string
	fn   func(input string, args []ast.Arg) ops.Result
}

func (e simpleExtractor) Name() string   { return e.name }
func (e simpleExtractor) Kind() ops.Kind { return ops.KindExtractor }
func (e simpleExtractor) Eval(env ops.Env, input string, args []ast.Arg) ops.Result {
	return e.fn(input, args)
}

// regexExtractor caches one compiled *regexp.Regexp per distinct pattern
// string seen across a run (scripts reuse the same literal across many
// entries), avoiding recompilation per entry.
type regexExtractor struct {
	name string
	mu   sync.Mutex
	cache map[string]*regexp.Regexp
	fn    func(re *regexp.Regexp, input string) ops.Result
}

func newRegexExtractor(name string, fn func(re *regexp.Regexp, input string) ops.Result) *regexExtractor {
	return &regexExtractor{name: name, cache: make(map[string]*regexp.Regexp), fn: fn}
}

func (e *regexExtractor) Name() string   { return e.name }
func (e *regexExtractor) Kind() ops.Kind { return ops.KindExtractor }

func (e *regexExtractor) compile(pattern string) (*regexp.Regexp, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if re, ok := e.cache[pattern]; ok {
		return re, nil
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, err
	}
	e.cache[pattern] = re
	return re, nil
}

func (e *regexExtractor) Eval(env ops.Env, input string, args []ast.Arg) ops.Result {
	pattern := stringArg(args, 0, "")
	if pattern == "" {
		return ops.NAResult()
	}
	re, err := e.compile(pattern)
	if err != nil {
		return ops.NAResult()
	}
	return e.fn(re, input)
}

// findAllOp is `find_all "regex"` (spec §4.3 example): the matches become
// the ilist, N/A when none match.
func findAllOp() ops.Op {
	return newRegexExtractor("find_all", func(re *regexp.Regexp, input string) ops.Result {
		matches := re.FindAllString(input, -1)
		if len(matches) == 0 {
			return ops.NAResult()
		}
		return ops.Of(matches...)
	})
}

var digitsRE = regexp.MustCompile(`[0-9]+`)

// getNoOp extracts every run of digits in the entry as a separate ilist
// element (spec §6 names `get_no` as an example of the leaf catalog without
// defining it further; this is DJ's concrete numeric-suffix/number extractor).
func getNoOp() ops.Op {
	return simpleExtractor{name: "get_no", fn: func(s string, _ []ast.Arg) ops.Result {
		matches := digitsRE.FindAllString(s, -1)
		if len(matches) == 0 {
			return ops.NAResult()
		}
		return ops.Of(matches...)
	}}
}

var dateDigitsRE = regexp.MustCompile(`\b(\d{1,2})[-/.](\d{1,2})[-/.](\d{2,4})\b`)

// mangleDatesOp finds date-like digit groups (two 1-2 digit fields, then a
// 2-4 digit year, separated by `-`, `/` or `.`; a year-first date is not
// matched) and emits common password-mangling reorderings of them: DDMMYYYY,
// MMDDYYYY, YYYYMMDD, and the two-digit-year variants. N/A when no
// date-like substring is present.
func mangleDatesOp() ops.Op {
	return simpleExtractor{name: "mangle_dates", fn: func(s string, _ []ast.Arg) ops.Result {
		m := dateDigitsRE.FindStringSubmatch(s)
		if m == nil {
			return ops.NAResult()
		}
		a, b, y := m[1], m[2], m[3]
		y2 := y
		if len(y) == 4 {
			y2 = y[2:]
		}
		variants := []string{
			a + b + y,
			b + a + y,
			y + a + b,
			a + b + y2,
			b + a + y2,
		}
		return ops.Of(variants...)
	}}
}

// mapOp is `map "from" "to"`: every character of the entry matching any
// character in "from" is substituted, producing one variant per character
// of "to" (spec §8 scenario 3: `map " " "-_"` on `Audi RS` yields both
// `Audi-RS` and `Audi_RS`, not a single tr(1)-style transliteration).
// N/A when no character of "from" occurs in the input.
func mapOp() ops.Op {
	return simpleExtractor{name: "map", fn: func(s string, args []ast.Arg) ops.Result {
		from := []rune(stringArg(args, 0, ""))
		to := []rune(stringArg(args, 1, ""))
		if len(from) == 0 || len(to) == 0 || !strings.ContainsAny(s, string(from)) {
			return ops.NAResult()
		}
		variants := make([]string, len(to))
		for i, t := range to {
			variants[i] = strings.Map(func(r rune) rune {
				for _, f := range from {
					if f == r {
						return t
					}
				}
				return r
			}, s)
		}
		return ops.Of(variants...)
	}}
}

// relatedOp is the pluggable word-vector-model leaf of spec §6
// ("`related R` consults a pretrained word-vector model with parameters K
// and KEEP_ALL_RELATEDNESS"). No such model ships with DJ; this is a
// documented stub that always returns N/A, matching §6's "implementations
// are pluggable and out of scope here; only this interface is part of the
// core".
func relatedOp() ops.Op {
	return simpleExtractor{name: "related", fn: func(s string, args []ast.Arg) ops.Result {
		return ops.NAResult()
	}}
}
