// Package leaves provides concrete implementations of DJ's leaf-operation
// catalog (spec.md §6's "external collaborators" interface): the linguistic
// Transformers, Extractors, and Filters a ComplexOperation chain is built
// from. spec.md deliberately leaves this catalog's internals out of scope;
// SPEC_FULL.md §7 supplements it with minimal, honest implementations so
// the interpreter is runnable end-to-end.
//
// Grounded on the teacher's builtins registration style
// (internal/evaluator/builtins.go: a package-level map from name to
// implementation, populated by init-time registration functions), adapted
// from a dynamically-typed builtin table to ops.Op's tagged Kind.
package leaves

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/funvibe/dj/internal/ops"
)

// Registry looks up a leaf operation by name.
type Registry struct {
	byName map[string]ops.Op
}

// NewRegistry builds the standard catalog of SPEC_FULL.md §7.
func NewRegistry() *Registry {
	r := &Registry{byName: make(map[string]ops.Op)}
	for _, op := range []ops.Op{
		lowerOp(),
		upperOp(),
		capitalizeOp(),
		reverseOp(),
		removeOp(),
		removeWsOp(),
		prependOp(),
		appendOp(),
		mapOp(),
		dedupOp("dedup"),
		dedupOp("deduplicate"),
		unormalizeOp(),
		correctSpellingOp(),
		deleetifyOp(),
		newReplaceOp(loadReplaceTable),
		splitOp(),
		findAllOp(),
		getNoOp(),
		mangleDatesOp(),
		relatedOp(),
		minLengthOp(),
		maxLengthOp(),
		isPatternOp(),
		isRegularWordOp(),
	} {
		r.byName[op.Name()] = op
	}
	return r
}

// Lookup returns the registered Op for name, if any.
func (r *Registry) Lookup(name string) (ops.Op, bool) {
	op, ok := r.byName[name]
	return op, ok
}

// KindOf reports the Kind of a registered leaf, used by the resolver for
// modifier-legality checks (spec §4.2).
func (r *Registry) KindOf(name string) (ops.Kind, bool) {
	op, ok := r.byName[name]
	if !ok {
		return 0, false
	}
	return op.Kind(), true
}

// loadReplaceTable reads a whitespace-separated two-column mapping file
// (spec §6: "`replace "table.txt"` loads a two-column mapping and applies
// it"). Blank lines and `#`-comments are skipped, matching the script-file
// comment convention (spec §4.1) for consistency.
func loadReplaceTable(path string) (map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("loading replace table %s: %w", path, err)
	}
	defer f.Close()

	table := make(map[string]string)
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		table[fields[0]] = fields[1]
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading replace table %s: %w", path, err)
	}
	return table, nil
}
