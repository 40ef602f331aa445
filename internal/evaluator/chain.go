package evaluator

import (
	"fmt"
	"io"
	"strings"

	"github.com/funvibe/dj/internal/ast"
	"github.com/funvibe/dj/internal/leaves"
	"github.com/funvibe/dj/internal/ops"
	"github.com/funvibe/dj/internal/runtime"
)

// outputSinkNames mirrors internal/resolver's set: the leaf-shaped names
// that are evaluator builtins rather than catalog leaves (spec §4.8). Kept
// local rather than exported from resolver, since the evaluator's only
// dependency on the resolver package is its Resolved output type.
var outputSinkNames = map[string]bool{
	"report":   true,
	"write":    true,
	"classify": true,
	"result":   true,
}

// chainState threads the classify tag accumulator through one top-level
// statement's evaluation (spec §4.8: "tags accumulate across the chain"),
// including into any nested block/combinator sub-chains of that statement.
type chainState struct {
	tag strings.Builder
}

// entryEval holds everything local to evaluating one input entry: the
// shared environment, the leaf catalog, this entry's named lists, the
// restart re-entry stack, and the first IO/runtime error encountered
// (spec §7: IOError is fatal, so evaluation of the current entry stops as
// soon as one occurs).
type entryEval struct {
	env        *runtime.Environment
	catalog    *leaves.Registry
	entryState *runtime.EntryState
	restarts   []restartFrame
	err        error
}

// runChain applies chain's operations in order to ilist, per spec §4.5: each
// op runs over every element of the current ilist, results are concatenated
// preserving order, and the chain stops early once the ilist is empty (an
// all-N/A step and a step that legitimately produced nothing collapse to
// the same empty-ilist state, matching "if at any point the ilist becomes
// empty or every call returned N/A, the chain terminates").
func (ee *entryEval) runChain(st *chainState, chain *ast.ComplexOperation, ilist []string) []string {
	if chain == nil {
		return ilist
	}
	cur := ilist
	for _, op := range chain.Ops {
		if len(cur) == 0 || ee.err != nil {
			break
		}
		cur = ee.step(st, op, cur)
	}
	return cur
}

func (ee *entryEval) step(st *chainState, op ast.Op, ilist []string) []string {
	switch o := op.(type) {
	case *ast.LeafOp:
		if outputSinkNames[o.Name] {
			return ee.applySink(st, o, ilist)
		}
		return ee.applyLeaf(o, ilist)
	case *ast.BlockOp:
		return ee.applyBlock(st, o, ilist)
	case *ast.CombinatorOp:
		return ee.applyCombinator(st, o, ilist)
	default:
		return nil
	}
}

// applyLeaf runs a single catalog leaf element-wise over ilist (spec §4.3,
// §4.4). The resolver guarantees o.Name is registered, so a missing lookup
// here would be an evaluator/resolver inconsistency rather than a script
// error; it is treated as N/A for that element rather than panicking.
func (ee *entryEval) applyLeaf(o *ast.LeafOp, ilist []string) []string {
	leaf, ok := ee.catalog.Lookup(o.Name)
	if !ok {
		return nil
	}
	if o.Mod == ast.ModPlus || o.Mod == ast.ModStar {
		return ee.applyLeafGrow(leaf, o, ilist)
	}
	out := make([]string, 0, len(ilist))
	for _, x := range ilist {
		raw := leaf.Eval(ee.env, x, o.Args)
		res := ops.ApplyModifier(o.Mod, x, raw)
		if !res.NA {
			out = append(out, res.Values...)
		}
	}
	return out
}

// applyLeafGrow implements `+`/`*` across a multi-element ilist (spec §4.5's
// "every element of the current ilist, concatenated preserving order", read
// together with §8 invariant 4's per-call laws). The whole incoming ilist
// is retained, in order, and every non-N/A call's produced values are
// appended afterward, each at most once. `+` and `*` behave identically
// here, on an ilist of any length: both keep every incoming x, so `*`
// keeps x even when the call on x is not N/A (unlike ops.ApplyModifier's
// scalar `*` law, which then yields only op(x)). This is what lets
// `*map " " "-_"` keep `Audi RS` alongside its two map variants. Both
// grow the ilist, neither shrinks it.
func (ee *entryEval) applyLeafGrow(leaf ops.Op, o *ast.LeafOp, ilist []string) []string {
	seen := make(map[string]bool, len(ilist))
	out := make([]string, 0, len(ilist))
	for _, x := range ilist {
		if !seen[x] {
			seen[x] = true
			out = append(out, x)
		}
	}
	for _, x := range ilist {
		raw := leaf.Eval(ee.env, x, o.Args)
		if raw.NA {
			continue
		}
		for _, v := range raw.Values {
			if !seen[v] {
				seen[v] = true
				out = append(out, v)
			}
		}
	}
	return out
}

// applySink dispatches the four output-sink builtins of spec §4.8. All four
// are pass-through: the incoming ilist continues downstream unchanged.
func (ee *entryEval) applySink(st *chainState, o *ast.LeafOp, ilist []string) []string {
	switch o.Name {
	case "report":
		ee.writeLines(ee.env.Report, ilist)
	case "write":
		path := firstString(o.Args, "")
		lines := ee.dedupeLines(ilist)
		if len(lines) > 0 {
			if err := ee.env.Output.Write(path, lines); err != nil {
				ee.fail(err)
			}
		}
	case "classify":
		st.tag.WriteString(firstString(o.Args, ""))
	case "result":
		tag := st.tag.String()
		tagged := make([]string, len(ilist))
		for i, v := range ilist {
			tagged[i] = tag + v
		}
		ee.writeLines(ee.env.Report, tagged)
	}
	return ilist
}

func (ee *entryEval) fail(err error) {
	if ee.err == nil {
		ee.err = err
	}
}

// dedupeLines filters lines already seen process-wide when the -u flag is
// active (spec §6 "deduplicate all emissions globally"); nil Dedup means
// -u was not given and every line passes through unchanged.
func (ee *entryEval) dedupeLines(lines []string) []string {
	if ee.env.Dedup == nil {
		return lines
	}
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		if !ee.env.Dedup.SeenOrAdd(l) {
			out = append(out, l)
		}
	}
	return out
}

func (ee *entryEval) writeLines(w io.Writer, lines []string) {
	for _, l := range ee.dedupeLines(lines) {
		if _, err := fmt.Fprintln(w, l); err != nil {
			ee.fail(err)
			return
		}
	}
}

// applyBlock runs o.Body once per element of ilist (rather than over the
// flattened union) so `[]>`/`/[]>` sinks can correlate each produced
// sub-ilist back to the single original entry that produced it (spec
// §4.6). The resolver rejects any modifier on a BlockOp (see
// resolver_modifiers.go), so Mod never needs to be applied here.
func (ee *entryEval) applyBlock(st *chainState, o *ast.BlockOp, ilist []string) []string {
	lst, ok := ee.entryState.List(o.Target)
	if !ok {
		return nil
	}
	var forward []string
	for _, x := range ilist {
		sub := ee.runChain(st, o.Body, []string{x})
		switch o.Sink {
		case ast.SinkAppend:
			lst.Append(sub)
		case ast.SinkListSurvive:
			if len(sub) > 0 {
				lst.Append([]string{x})
			}
		case ast.SinkForward:
			lst.Append(sub)
			forward = append(forward, sub...)
		case ast.SinkForwardListSurvive:
			if len(sub) > 0 {
				lst.Append([]string{x})
			}
			forward = append(forward, sub...)
		}
	}
	return forward
}
