package evaluator

import (
	"strings"

	"github.com/funvibe/dj/internal/ast"
	"github.com/funvibe/dj/internal/config"
	"github.com/funvibe/dj/internal/ops"
)

// restartFrame is one entry of the per-entry restart re-entry stack (spec
// §3 "Restart context stack"), pushed on entering a restart combinator and
// popped on exit. The evaluator enforces the bound directly via a loop
// counter; the stack exists so nested restarts can be inspected and so a
// future debugger/progress view has something to walk.
type restartFrame struct {
	original []string
	bound    int
}

// applyCombinator evaluates a MetaOperation over the whole current ilist
// (spec §4.7: "composes sub-chains and folds their ilists per its own
// contract" — unlike a LeafOp, a combinator is not applied element-wise).
// Only ModNone and ModTilde ever reach here (resolver_modifiers.go rejects
// any other modifier on a combinator).
func (ee *entryEval) applyCombinator(st *chainState, o *ast.CombinatorOp, ilist []string) []string {
	var raw []string
	switch o.Name {
	case ast.CombOr:
		raw = ee.evalOr(st, o, ilist)
	case ast.CombIfAll:
		raw = ee.evalQuantifier(o, ilist, true)
	case ast.CombIfAny:
		raw = ee.evalQuantifier(o, ilist, false)
	case ast.CombForeach:
		if len(o.Branches) == 1 {
			raw = ee.runChain(st, o.Branches[0], ilist)
		}
	case ast.CombRatio:
		raw = ee.evalRatio(st, o, ilist)
	case ast.CombConcat:
		raw = ee.evalConcat(o, ilist)
	case ast.CombUnique:
		raw = uniquePreserveOrder(ilist)
	case ast.CombMax:
		raw = ee.evalMax(o, ilist)
	case ast.CombRestart:
		raw = ee.evalRestart(st, o, ilist)
	}
	if o.Mod == ast.ModTilde && len(raw) == 0 {
		return ilist
	}
	return raw
}

// evalOr implements spec §4.7 `or`: first-match, not union.
func (ee *entryEval) evalOr(st *chainState, o *ast.CombinatorOp, ilist []string) []string {
	for _, branch := range o.Branches {
		res := ee.runChain(st, branch, ilist)
		if len(res) > 0 {
			return res
		}
	}
	return nil
}

// evalQuantifier implements ilist_if_all/ilist_if_any. all selects the
// universal quantifier; otherwise existential.
func (ee *entryEval) evalQuantifier(o *ast.CombinatorOp, ilist []string, all bool) []string {
	if len(o.Branches) == 0 {
		return nil
	}
	branch := o.Branches[0]
	any := false
	for _, x := range ilist {
		truth := ee.elementTruth(branch, x, o.NAIsFalse, o.EmptyIsFalse)
		if all && !truth {
			return nil
		}
		if truth {
			any = true
		}
	}
	if all {
		return append([]string(nil), ilist...)
	}
	if any {
		return append([]string(nil), ilist...)
	}
	return nil
}

// elementTruth tests branch against a single element x, applying the
// sentinel clauses that decide whether N/A and an empty ilist count as
// false (spec §4.7's "N/A = False" / "[] = False" clauses).
func (ee *entryEval) elementTruth(branch *ast.ComplexOperation, x string, naIsFalse, emptyIsFalse bool) bool {
	na, values := ee.quantifierElementResult(branch, x)
	if na {
		return !naIsFalse
	}
	if len(values) == 0 {
		return !emptyIsFalse
	}
	return true
}

// quantifierElementResult runs branch against one element, preserving the
// N/A-vs-empty distinction a single leaf's raw result carries. For a
// single-leaf branch (the common case: `ilist_if_all(min_length 3)`) this
// reads the leaf's own N/A flag directly; for a longer branch chain, N/A
// and a legitimately empty result are indistinguishable once several ops
// have combined (spec §4.5 already collapses them at that point), so such
// branches are only ever "empty" or "non-empty" here.
func (ee *entryEval) quantifierElementResult(branch *ast.ComplexOperation, x string) (na bool, values []string) {
	if len(branch.Ops) == 1 {
		if leaf, ok := branch.Ops[0].(*ast.LeafOp); ok && !outputSinkNames[leaf.Name] {
			if op, found := ee.catalog.Lookup(leaf.Name); found {
				raw := op.Eval(ee.env, x, leaf.Args)
				res := ops.ApplyModifier(leaf.Mod, x, raw)
				return res.NA, res.Values
			}
		}
	}
	values = ee.runChain(&chainState{}, branch, []string{x})
	return false, values
}

// evalRatio implements ilist_ratio joined? < r (chainA, chainB).
func (ee *entryEval) evalRatio(st *chainState, o *ast.CombinatorOp, ilist []string) []string {
	if len(o.Branches) != 2 {
		return nil
	}
	a := ee.runChain(st, o.Branches[0], ilist)
	b := ee.runChain(st, o.Branches[1], ilist)
	var num, den float64
	if o.RatioJoined {
		num = float64(len(strings.Join(a, "")))
		den = float64(len(strings.Join(b, "")))
	} else {
		num = float64(len(a))
		den = float64(len(b))
	}
	if den == 0 {
		return nil
	}
	if num/den < o.RatioThreshold {
		return b
	}
	return nil
}

// evalConcat implements ilist_concat sep?. An empty incoming ilist produces
// an empty ilist, not a single empty string (spec §8 boundary case).
func (ee *entryEval) evalConcat(o *ast.CombinatorOp, ilist []string) []string {
	if len(ilist) == 0 {
		return nil
	}
	sep := ""
	if len(o.Args) > 0 {
		sep = argString(o.Args[0], "")
	}
	return []string{strings.Join(ilist, sep)}
}

// evalMax implements ilist_max length N / ilist_max length < N as a
// threshold filter over the current ilist's element count.
func (ee *entryEval) evalMax(o *ast.CombinatorOp, ilist []string) []string {
	n := 0
	if len(o.Args) > 0 {
		n = argInt(o.Args[0], 0)
	}
	count := len(ilist)
	pass := count <= n
	if o.Strict {
		pass = count < n
	}
	if pass {
		return append([]string(nil), ilist...)
	}
	return nil
}

// evalRestart implements restart N? (filter, body) (spec §4.7, §8 scenario
// 6): the filter is tested against the current ilist before every body
// application (including the first, on the original entry); the moment it
// fails, or the bound is reached, the loop stops and the last body output
// (or the original ilist, if the filter never passed) is returned.
func (ee *entryEval) evalRestart(st *chainState, o *ast.CombinatorOp, ilist []string) []string {
	if len(o.Branches) != 2 {
		return nil
	}
	filterChain, bodyChain := o.Branches[0], o.Branches[1]
	bound := o.RestartBound
	if bound <= 0 {
		bound = config.DefaultRestartBound
	}
	ee.restarts = append(ee.restarts, restartFrame{original: ilist, bound: bound})
	defer func() { ee.restarts = ee.restarts[:len(ee.restarts)-1] }()

	current := append([]string(nil), ilist...)
	iterations := 0
	for ee.quantifierAllPass(filterChain, current) {
		if iterations >= bound {
			break
		}
		current = ee.runChain(st, bodyChain, current)
		iterations++
		if len(current) == 0 {
			break
		}
	}
	return current
}

func (ee *entryEval) quantifierAllPass(chain *ast.ComplexOperation, ilist []string) bool {
	if len(ilist) == 0 {
		return false
	}
	for _, x := range ilist {
		if !ee.elementTruth(chain, x, true, true) {
			return false
		}
	}
	return true
}

func uniquePreserveOrder(ilist []string) []string {
	seen := make(map[string]bool, len(ilist))
	out := make([]string, 0, len(ilist))
	for _, v := range ilist {
		if seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}
