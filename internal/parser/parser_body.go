package parser

import (
	"github.com/funvibe/dj/internal/ast"
	"github.com/funvibe/dj/internal/token"
)

func (p *Parser) parseStatement() *ast.Statement {
	tok := p.cur()
	var use []string
	if p.cur().Type == token.USE {
		p.next()
		for p.cur().Type == token.IDENT {
			use = append(use, p.cur().Lexeme)
			p.next()
		}
		if len(use) == 0 {
			p.errorf("P030", "`use` requires at least one named list")
		}
	}
	chain := p.parseComplexOperation()
	return &ast.Statement{TokLexeme: tok.Lexeme, Use: use, Chain: chain}
}

// parseComplexOperation parses a chain of operations, stopping at NEWLINE,
// EOF, or any of the supplied extra terminator token types (used for
// parenthesized/braced sub-chains).
func (p *Parser) parseComplexOperation(extraStop ...token.Type) *ast.ComplexOperation {
	var ops []ast.Op
	for !p.atChainEnd(extraStop) {
		op := p.parseOperation()
		if op == nil {
			break
		}
		ops = append(ops, op)
	}
	return &ast.ComplexOperation{Ops: ops}
}

func (p *Parser) atChainEnd(extraStop []token.Type) bool {
	tt := p.cur().Type
	if tt == token.NEWLINE || tt == token.EOF {
		return true
	}
	for _, s := range extraStop {
		if tt == s {
			return true
		}
	}
	return false
}
