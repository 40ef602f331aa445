package resolver

import (
	"github.com/funvibe/dj/internal/ast"
	"github.com/funvibe/dj/internal/diagnostics"
	"github.com/funvibe/dj/internal/token"
)

// checkNamedLists validates that every `use L...` reference and every block
// sink target refers to a `list`/`set` declared in the header (spec §4.6).
func checkNamedLists(stmts []*ast.Statement, declared map[string]bool) []*diagnostics.Error {
	var errs []*diagnostics.Error
	for _, stmt := range stmts {
		for _, name := range stmt.Use {
			if !declared[name] {
				errs = append(errs, diagnostics.NewErrorAt("R030", token.Position{}, "use of undeclared named list %q", name))
			}
		}
		errs = append(errs, checkSinksInChain(stmt.Chain, declared)...)
	}
	return errs
}

func checkSinksInChain(chain *ast.ComplexOperation, declared map[string]bool) []*diagnostics.Error {
	if chain == nil {
		return nil
	}
	var errs []*diagnostics.Error
	for _, op := range chain.Ops {
		switch o := op.(type) {
		case *ast.BlockOp:
			if !declared[o.Target] {
				errs = append(errs, diagnostics.NewErrorAt("R031", token.Position{},
					"block sink targets undeclared named list %q", o.Target))
			}
			errs = append(errs, checkSinksInChain(o.Body, declared)...)
		case *ast.CombinatorOp:
			for _, b := range o.Branches {
				errs = append(errs, checkSinksInChain(b, declared)...)
			}
		}
	}
	return errs
}
