package parser

import (
	"strconv"

	"github.com/funvibe/dj/internal/ast"
	"github.com/funvibe/dj/internal/token"
)

func isCombinatorName(name string) bool {
	switch name {
	case "or", "ilist_if_all", "ilist_if_any", "ilist_foreach",
		"ilist_ratio", "ilist_concat", "ilist_unique", "ilist_max", "restart":
		return true
	}
	return false
}

func (p *Parser) parseCombinator(mod ast.Modifier) ast.Op {
	tok := p.cur()
	name := tok.Lexeme
	p.next()

	switch name {
	case "or":
		branches := p.parseParenBranchList(1, -1)
		return &ast.CombinatorOp{TokLexeme: tok.Lexeme, Name: ast.CombOr, Branches: branches, Mod: mod}
	case "ilist_if_all", "ilist_if_any":
		return p.parseQuantifier(tok, name, mod)
	case "ilist_foreach":
		branches := p.parseParenBranchList(1, 1)
		return &ast.CombinatorOp{TokLexeme: tok.Lexeme, Name: ast.CombForeach, Branches: branches, Mod: mod}
	case "ilist_ratio":
		return p.parseRatio(tok, mod)
	case "ilist_concat":
		var args []ast.Arg
		if a, ok := p.tryParseLiteralArg(); ok {
			args = append(args, a)
		}
		return &ast.CombinatorOp{TokLexeme: tok.Lexeme, Name: ast.CombConcat, Args: args, Mod: mod}
	case "ilist_unique":
		return &ast.CombinatorOp{TokLexeme: tok.Lexeme, Name: ast.CombUnique, Mod: mod}
	case "ilist_max":
		return p.parseMax(tok, mod)
	case "restart":
		return p.parseRestart(tok, mod)
	default:
		p.errorf("P050", "unknown combinator %q", name)
		return nil
	}
}

// parseParenBranchList parses `( chain (, chain)* )`, requiring between min
// and max branches (max<0 means unbounded).
func (p *Parser) parseParenBranchList(min, max int) []*ast.ComplexOperation {
	if !p.expect(token.LPAREN) {
		return nil
	}
	var branches []*ast.ComplexOperation
	for {
		branches = append(branches, p.parseComplexOperation(token.COMMA, token.RPAREN))
		if p.cur().Type == token.COMMA {
			p.next()
			continue
		}
		break
	}
	p.expect(token.RPAREN)
	if len(branches) < min || (max >= 0 && len(branches) > max) {
		p.errorf("P051", "expected between %d and %d sub-chains, got %d", min, max, len(branches))
	}
	return branches
}

// parseQuantifier parses `ilist_if_all(chain)` / `ilist_if_any(chain)`,
// with optional trailing sentinel clauses `na_false`, `na_true`,
// `empty_false`, `empty_true` (DJ's concrete surface syntax for spec
// §4.7's "N/A = False" / "[] = False" sentinel-clause notation).
func (p *Parser) parseQuantifier(tok token.Token, name string, mod ast.Modifier) *ast.CombinatorOp {
	combName := ast.CombIfAll
	if name == "ilist_if_any" {
		combName = ast.CombIfAny
	}
	naFalse, emptyFalse := true, true

	if !p.expect(token.LPAREN) {
		return &ast.CombinatorOp{TokLexeme: tok.Lexeme, Name: combName, Mod: mod, NAIsFalse: naFalse, EmptyIsFalse: emptyFalse}
	}
	chain := p.parseComplexOperation(token.COMMA, token.RPAREN)
	branches := []*ast.ComplexOperation{chain}

clauses:
	for p.cur().Type == token.COMMA {
		p.next()
		switch {
		case p.cur().Type == token.IDENT && p.cur().Lexeme == "na_false":
			naFalse = true
			p.next()
		case p.cur().Type == token.IDENT && p.cur().Lexeme == "na_true":
			naFalse = false
			p.next()
		case p.cur().Type == token.IDENT && p.cur().Lexeme == "empty_false":
			emptyFalse = true
			p.next()
		case p.cur().Type == token.IDENT && p.cur().Lexeme == "empty_true":
			emptyFalse = false
			p.next()
		default:
			p.errorf("P052", "expected a sentinel clause (na_false/na_true/empty_false/empty_true), got %s %q", p.cur().Type, p.cur().Lexeme)
			break clauses
		}
	}
	p.expect(token.RPAREN)
	return &ast.CombinatorOp{
		TokLexeme:    tok.Lexeme,
		Name:         combName,
		Branches:     branches,
		Mod:          mod,
		NAIsFalse:    naFalse,
		EmptyIsFalse: emptyFalse,
	}
}

// parseRatio parses `ilist_ratio joined? < r ( chainA , chainB )`.
func (p *Parser) parseRatio(tok token.Token, mod ast.Modifier) *ast.CombinatorOp {
	joined := false
	if p.cur().Type == token.IDENT && p.cur().Lexeme == "joined" {
		joined = true
		p.next()
	}
	p.expect(token.LT)
	threshold := p.expectRatio()
	branches := p.parseParenBranchList(2, 2)
	return &ast.CombinatorOp{
		TokLexeme:      tok.Lexeme,
		Name:           ast.CombRatio,
		Branches:       branches,
		Mod:            mod,
		RatioJoined:    joined,
		RatioThreshold: threshold,
		Strict:         true,
	}
}

// parseMax parses `ilist_max length (<)? N`.
func (p *Parser) parseMax(tok token.Token, mod ast.Modifier) *ast.CombinatorOp {
	if p.cur().Type == token.IDENT && p.cur().Lexeme == "length" {
		p.next()
	} else {
		p.errorf("P053", "expected `length` after ilist_max, got %s %q", p.cur().Type, p.cur().Lexeme)
	}
	strict := false
	if p.cur().Type == token.LT {
		strict = true
		p.next()
	}
	n := p.expectInt()
	return &ast.CombinatorOp{
		TokLexeme: tok.Lexeme,
		Name:      ast.CombMax,
		Args:      []ast.Arg{ast.IntArg{Value: n}},
		Mod:       mod,
		Strict:    strict,
	}
}

// parseRestart parses `restart N? ( filter , body )`.
func (p *Parser) parseRestart(tok token.Token, mod ast.Modifier) *ast.CombinatorOp {
	bound := 0
	if p.cur().Type == token.INT {
		bound = p.expectInt()
	}
	branches := p.parseParenBranchList(2, 2)
	return &ast.CombinatorOp{
		TokLexeme:    tok.Lexeme,
		Name:         ast.CombRestart,
		Branches:     branches,
		Mod:          mod,
		RestartBound: bound,
	}
}

func (p *Parser) expectRatio() float64 {
	switch p.cur().Type {
	case token.INT, token.FLOAT:
		f, err := strconv.ParseFloat(p.cur().Lexeme, 64)
		if err != nil {
			p.errorf("P054", "invalid ratio literal %q", p.cur().Lexeme)
		}
		p.next()
		return f
	default:
		p.errorf("P054", "expected a ratio literal, got %s %q", p.cur().Type, p.cur().Lexeme)
		return 0
	}
}
