// Package evaluator drives an input entry through a resolved script (spec
// §2 "Evaluator (~55%)"): the two-level pipeline semantics of §4.5, the
// operation algebra of §4.3/§4.4, the combinators of §4.7, and the output
// sinks of §4.8. It is the only package that understands a resolver.Resolved
// script as a whole; ops and leaves only know how to evaluate one operation.
//
// Grounded on the teacher's (github.com/funvibe/funxy) evaluator/processor
// split: a driver type (Evaluator here, *Evaluator there) holds run-wide
// state, while processor.go adapts it into the pipeline.Processor interface
// for internal/pipeline.
package evaluator

import (
	"github.com/funvibe/dj/internal/ast"
	"github.com/funvibe/dj/internal/leaves"
	"github.com/funvibe/dj/internal/resolver"
	"github.com/funvibe/dj/internal/runtime"
)

// Evaluator runs a single resolved script against a stream of input
// entries, reusing one Environment and leaf Registry across every entry
// (spec §5 "Shared-resource policy": config and global lists are read-only
// after startup).
type Evaluator struct {
	Env      *runtime.Environment
	Catalog  *leaves.Registry
	Resolved *resolver.Resolved
}

// New builds an Evaluator ready to run entries against resolved.
func New(env *runtime.Environment, catalog *leaves.Registry, resolved *resolver.Resolved) *Evaluator {
	return &Evaluator{Env: env, Catalog: catalog, Resolved: resolved}
}

// RunEntry drives one input entry through the per-entry state machine of
// spec §4.9: Ignoring check, Executing every top-level statement in
// textual order (use-statements after the statements that populate their
// named lists, per §4.5's "use chains run after" rule), implicit Emitting
// via output-sink leaves as the chains run, and Resetting named lists on
// return. It returns the first IO/runtime error encountered (spec §7:
// such errors are fatal); a per-entry chain reaching N/A or an empty ilist
// is not an error and is not reported.
func (e *Evaluator) RunEntry(entry string) error {
	if entry == "" {
		return nil
	}
	if e.Env.IsIgnored(entry) {
		return nil
	}

	es := runtime.NewEntryState(e.Resolved.Lists, e.Resolved.Sets)
	ee := &entryEval{env: e.Env, catalog: e.Catalog, entryState: es}

	var normal, useStmts []*ast.Statement
	for _, stmt := range e.Resolved.Statements {
		if len(stmt.Use) > 0 {
			useStmts = append(useStmts, stmt)
		} else {
			normal = append(normal, stmt)
		}
	}

	for _, stmt := range normal {
		if ee.err != nil {
			break
		}
		ee.runChain(&chainState{}, stmt.Chain, []string{entry})
	}
	for _, stmt := range useStmts {
		if ee.err != nil {
			break
		}
		var ilist []string
		for _, name := range stmt.Use {
			if nl, ok := es.List(name); ok {
				ilist = append(ilist, nl.Values...)
			}
		}
		ee.runChain(&chainState{}, stmt.Chain, ilist)
	}

	return ee.err
}

// RunFilterChain runs chain once against a single value, outside of any
// entry's state machine (spec §3 "`global_list`/`global_set` NAME string
// ('(' operations ')')?"): the loading sub-pipeline for a global list or
// set. It shares env and catalog with regular entry evaluation but gets a
// throwaway EntryState, since a loading filter has no named lists of its
// own to populate or `use`.
func RunFilterChain(env *runtime.Environment, catalog *leaves.Registry, chain *ast.ComplexOperation, value string) ([]string, error) {
	if chain == nil {
		return []string{value}, nil
	}
	ee := &entryEval{env: env, catalog: catalog, entryState: runtime.NewEntryState(nil, nil)}
	out := ee.runChain(&chainState{}, chain, []string{value})
	return out, ee.err
}
