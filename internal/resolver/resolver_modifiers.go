package resolver

import (
	"github.com/funvibe/dj/internal/ast"
	"github.com/funvibe/dj/internal/diagnostics"
	"github.com/funvibe/dj/internal/ops"
	"github.com/funvibe/dj/internal/token"
)

// checkModifiers validates modifier legality per operation kind (spec §4.2:
// "! only on Filters; + only on Transformers/Extractors; * only on
// Transformers/Extractors; ~ only on Filters and combinators with
// filter-like semantics"), walking every statement's (already
// macro-expanded) chain, including nested block bodies and combinator
// branches.
func checkModifiers(stmts []*ast.Statement, catalog LeafCatalog) []*diagnostics.Error {
	var errs []*diagnostics.Error
	for _, stmt := range stmts {
		errs = append(errs, checkModifiersInChain(stmt.Chain, catalog)...)
	}
	return errs
}

func checkModifiersInChain(chain *ast.ComplexOperation, catalog LeafCatalog) []*diagnostics.Error {
	if chain == nil {
		return nil
	}
	var errs []*diagnostics.Error
	for _, op := range chain.Ops {
		errs = append(errs, checkModifiersInOp(op, catalog)...)
	}
	return errs
}

func checkModifiersInOp(op ast.Op, catalog LeafCatalog) []*diagnostics.Error {
	switch o := op.(type) {
	case *ast.LeafOp:
		if outputSinkNames[o.Name] {
			if o.Mod != ast.ModNone {
				return []*diagnostics.Error{diagnostics.NewErrorAt("R020", token.Position{},
					"output sink %q does not accept a modifier", o.Name)}
			}
			return nil
		}
		kind, ok := catalog.KindOf(o.Name)
		if !ok {
			return []*diagnostics.Error{diagnostics.NewErrorAt("R021", token.Position{}, "unknown leaf operation %q", o.Name)}
		}
		if !ops.ModifierLegal(o.Mod, kind, false) {
			return []*diagnostics.Error{diagnostics.NewErrorAt("R022", token.Position{},
				"modifier %q is not legal on %s operation %q", o.Mod.String(), kind.String(), o.Name)}
		}
		return nil
	case *ast.BlockOp:
		var errs []*diagnostics.Error
		if o.Mod != ast.ModNone {
			errs = append(errs, diagnostics.NewErrorAt("R024", token.Position{},
				"a block does not accept a modifier, got %q", o.Mod.String()))
		}
		errs = append(errs, checkModifiersInChain(o.Body, catalog)...)
		return errs
	case *ast.CombinatorOp:
		var errs []*diagnostics.Error
		if !modifierLegalForCombinator(o.Mod, o.Name) {
			errs = append(errs, diagnostics.NewErrorAt("R023", token.Position{},
				"modifier %q is not legal on combinator %q", o.Mod.String(), string(o.Name)))
		}
		for _, b := range o.Branches {
			errs = append(errs, checkModifiersInChain(b, catalog)...)
		}
		return errs
	default:
		return nil
	}
}

func modifierLegalForCombinator(mod ast.Modifier, name ast.CombinatorName) bool {
	switch mod {
	case ast.ModNone:
		return true
	case ast.ModTilde:
		return filterLikeCombinators[name]
	default:
		// + / * / ! never apply to a combinator as a whole.
		return false
	}
}
