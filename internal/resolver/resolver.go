// Package resolver implements the semantic-resolution pass of spec.md §4.2:
// macro expansion, modifier-legality checks, named-list/sink validation,
// and config-table construction. It never evaluates a script; it only
// decides whether the AST is legal and, if so, produces a Resolved form the
// evaluator can run directly (with every `do NAME` already expanded).
//
// Split the way the teacher's internal/analyzer is split across
// declarations_*.go / inference_*.go files (github.com/funvibe/funxy):
// resolver.go (entry point + Resolved), resolver_macros.go,
// resolver_modifiers.go, resolver_namedlists.go, resolver_config.go.
package resolver

import (
	"github.com/funvibe/dj/internal/ast"
	"github.com/funvibe/dj/internal/config"
	"github.com/funvibe/dj/internal/diagnostics"
	"github.com/funvibe/dj/internal/ops"
)

// LeafCatalog reports the Kind of a registered leaf operation, satisfied by
// *leaves.Registry. Declared here rather than importing internal/leaves
// directly so resolver has no dependency on the concrete leaf catalog.
type LeafCatalog interface {
	KindOf(name string) (ops.Kind, bool)
}

// outputSinkNames are the leaf-shaped names of spec §4.8's output sinks.
// They are not part of the leaf catalog (they have side effects and are
// implemented by the evaluator directly) and never take a modifier.
var outputSinkNames = map[string]bool{
	"report":   true,
	"write":    true,
	"classify": true,
	"result":   true,
}

// filterLikeCombinators are the MetaOperations whose contract is to
// test-and-pass-or-reject a whole ilist, qualifying them for `~` under
// spec §4.2's "~ only on Filters and combinators with filter-like
// semantics" rule.
var filterLikeCombinators = map[ast.CombinatorName]bool{
	ast.CombIfAll:   true,
	ast.CombIfAny:   true,
	ast.CombRatio:   true,
	ast.CombMax:     true,
	ast.CombRestart: true,
}

// Resolved is the output of a successful resolution pass: everything the
// evaluator needs, with macros already expanded and config already bound.
type Resolved struct {
	Lists       []string
	Sets        []string
	Ignores     []string
	Creates     []string
	GlobalLists []*ast.GlobalDecl
	Config      *config.Table
	Statements  []*ast.Statement
}

// Resolve validates script against spec.md §4.2's rules and, if there are
// no fatal errors, returns the Resolved form. Errors are always returned
// alongside whatever partial Resolved could be built, so callers can choose
// whether a given error class is fatal (per spec §7, all ResolverErrors
// are fatal, but collecting every one in a single pass gives better
// diagnostics than stopping at the first).
func Resolve(script *ast.Script, catalog LeafCatalog) (*Resolved, []*diagnostics.Error) {
	var errs []*diagnostics.Error

	expanded, macroErrs := expandMacros(script)
	errs = append(errs, macroErrs...)

	declared := declaredNames(script.Header)
	errs = append(errs, checkNamedLists(expanded, declared)...)
	errs = append(errs, checkModifiers(expanded, catalog)...)

	cfg, cfgErrs := buildConfigTable(script.Header)
	errs = append(errs, cfgErrs...)

	r := &Resolved{
		Lists:       script.Header.Lists,
		Sets:        script.Header.Sets,
		Ignores:     script.Header.Ignores,
		Creates:     script.Header.Creates,
		GlobalLists: append(append([]*ast.GlobalDecl{}, script.Header.GlobalLists...), script.Header.GlobalSets...),
		Config:      cfg,
		Statements:  expanded,
	}
	return r, errs
}

func declaredNames(h *ast.Header) map[string]bool {
	names := make(map[string]bool, len(h.Lists)+len(h.Sets))
	for _, n := range h.Lists {
		names[n] = true
	}
	for _, n := range h.Sets {
		names[n] = true
	}
	return names
}
