package resolver

import (
	"github.com/funvibe/dj/internal/ast"
	"github.com/funvibe/dj/internal/diagnostics"
	"github.com/funvibe/dj/internal/token"
)

// expandMacros replaces every `do NAME` in script's body with a deep clone
// of NAME's body (spec §4.2 "Expands every `do NAME` to a clone of the
// macro body (preserving modifier on the invocation)"), detecting undefined
// and cyclic macros. Returns the expanded top-level statements; the
// evaluator never sees a MacroInvocationOp.
func expandMacros(script *ast.Script) ([]*ast.Statement, []*diagnostics.Error) {
	var errs []*diagnostics.Error
	expander := &macroExpander{macros: script.Header.Macros}

	out := make([]*ast.Statement, 0, len(script.Statements))
	for _, stmt := range script.Statements {
		chain, cerrs := expander.expandChain(stmt.Chain, nil)
		errs = append(errs, cerrs...)
		out = append(out, &ast.Statement{TokLexeme: stmt.TokLexeme, Use: stmt.Use, Chain: chain})
	}
	return out, errs
}

type macroExpander struct {
	macros map[string]*ast.ComplexOperation
}

// expandChain returns a chain with every op macro-expanded and every
// Block/Combinator sub-chain recursively expanded too. stack holds the
// macro names currently being expanded, for cycle detection.
func (m *macroExpander) expandChain(chain *ast.ComplexOperation, stack map[string]bool) (*ast.ComplexOperation, []*diagnostics.Error) {
	if chain == nil {
		return nil, nil
	}
	var errs []*diagnostics.Error
	var out []ast.Op
	for _, op := range chain.Ops {
		expanded, oerrs := m.expandOp(op, stack)
		errs = append(errs, oerrs...)
		out = append(out, expanded...)
	}
	return &ast.ComplexOperation{Ops: out}, errs
}

func (m *macroExpander) expandOp(op ast.Op, stack map[string]bool) ([]ast.Op, []*diagnostics.Error) {
	switch o := op.(type) {
	case *ast.MacroInvocationOp:
		return m.expandInvocation(o, stack)
	case *ast.BlockOp:
		body, errs := m.expandChain(o.Body, stack)
		return []ast.Op{&ast.BlockOp{TokLexeme: o.TokLexeme, Body: body, Sink: o.Sink, Target: o.Target, Mod: o.Mod}}, errs
	case *ast.CombinatorOp:
		clone := *o
		clone.Branches = make([]*ast.ComplexOperation, len(o.Branches))
		var errs []*diagnostics.Error
		for i, b := range o.Branches {
			expanded, berrs := m.expandChain(b, stack)
			clone.Branches[i] = expanded
			errs = append(errs, berrs...)
		}
		return []ast.Op{&clone}, errs
	default:
		return []ast.Op{op}, nil
	}
}

func (m *macroExpander) expandInvocation(inv *ast.MacroInvocationOp, stack map[string]bool) ([]ast.Op, []*diagnostics.Error) {
	body, ok := m.macros[inv.Name]
	if !ok {
		return nil, []*diagnostics.Error{diagnostics.NewErrorAt("R010", token.Position{}, "undefined macro %q", inv.Name)}
	}
	if stack[inv.Name] {
		return nil, []*diagnostics.Error{diagnostics.NewErrorAt("R011", token.Position{}, "cyclic macro expansion involving %q", inv.Name)}
	}
	nextStack := make(map[string]bool, len(stack)+1)
	for k := range stack {
		nextStack[k] = true
	}
	nextStack[inv.Name] = true

	expanded, errs := m.expandChain(body, nextStack)
	clones := cloneOps(expanded.Ops)
	if inv.Mod != ast.ModNone && len(clones) > 0 {
		clones[0] = withModifier(clones[0], inv.Mod)
	}
	return clones, errs
}

// withModifier returns a shallow clone of op with its modifier overridden,
// used to apply a macro invocation's own modifier to the first expanded op
// (spec §4.2: "preserving modifier on the invocation").
func withModifier(op ast.Op, mod ast.Modifier) ast.Op {
	switch o := op.(type) {
	case *ast.LeafOp:
		clone := *o
		clone.Mod = mod
		return &clone
	case *ast.BlockOp:
		clone := *o
		clone.Mod = mod
		return &clone
	case *ast.CombinatorOp:
		clone := *o
		clone.Mod = mod
		return &clone
	default:
		return op
	}
}

func cloneOps(ops []ast.Op) []ast.Op {
	out := make([]ast.Op, len(ops))
	for i, op := range ops {
		out[i] = cloneOp(op)
	}
	return out
}

func cloneOp(op ast.Op) ast.Op {
	switch o := op.(type) {
	case *ast.LeafOp:
		clone := *o
		clone.Args = append([]ast.Arg{}, o.Args...)
		return &clone
	case *ast.BlockOp:
		clone := *o
		return &clone
	case *ast.CombinatorOp:
		clone := *o
		clone.Args = append([]ast.Arg{}, o.Args...)
		clone.Branches = append([]*ast.ComplexOperation{}, o.Branches...)
		return &clone
	default:
		return op
	}
}
