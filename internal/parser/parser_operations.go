package parser

import (
	"github.com/funvibe/dj/internal/ast"
	"github.com/funvibe/dj/internal/token"
)

// compoundLeafWords joins a small, fixed set of two-token leaf-operation
// names (spec §4.3 examples write these with a space, e.g. "min length 3"):
// the grammar's `op-name` production is a single [a-z_]+ token, so DJ treats
// "min"/"max" immediately followed by "length" as one compound name rather
// than trying to infer multi-word identifiers from arbitrary adjacency
// (which would misparse ordinary chains of single-word leaves like
// `lower remove_ws report`).
var compoundLeafWords = map[string]string{
	"min": "length",
	"max": "length",
}

func (p *Parser) parseOperation() ast.Op {
	mod := ast.ModNone
	switch p.cur().Type {
	case token.PLUS:
		mod = ast.ModPlus
		p.next()
	case token.STAR:
		mod = ast.ModStar
		p.next()
	case token.BANG:
		mod = ast.ModBang
		p.next()
	case token.TILDE:
		mod = ast.ModTilde
		p.next()
	}

	switch p.cur().Type {
	case token.LBRACE:
		return p.parseBlock(mod)
	case token.DO:
		return p.parseMacroInvocation(mod)
	case token.IDENT:
		if isCombinatorName(p.cur().Lexeme) {
			return p.parseCombinator(mod)
		}
		return p.parseLeaf(mod)
	default:
		p.errorf("P040", "expected an operation, got %s %q", p.cur().Type, p.cur().Lexeme)
		p.next()
		return nil
	}
}

func (p *Parser) parseLeaf(mod ast.Modifier) *ast.LeafOp {
	tok := p.cur()
	name := tok.Lexeme
	p.next()

	if want, ok := compoundLeafWords[name]; ok && p.cur().Type == token.IDENT && p.cur().Lexeme == want {
		name = name + "_" + want
		p.next()
	}

	// `prepend each "s"`: the word `each` is accepted and dropped; prepend
	// already applies to every element of the ilist.
	if name == "prepend" && p.cur().Type == token.IDENT && p.cur().Lexeme == "each" {
		p.next()
	}

	var args []ast.Arg
	for {
		a, ok := p.tryParseLiteralArg()
		if !ok {
			break
		}
		args = append(args, a)
	}
	return &ast.LeafOp{TokLexeme: tok.Lexeme, Name: name, Args: args, Mod: mod}
}

func (p *Parser) parseBlock(mod ast.Modifier) *ast.BlockOp {
	tok := p.cur()
	p.next() // consume '{'
	body := p.parseComplexOperation(token.RBRACE)
	p.expect(token.RBRACE)
	sink, target := p.parseSink()
	return &ast.BlockOp{TokLexeme: tok.Lexeme, Body: body, Sink: sink, Target: target, Mod: mod}
}

func (p *Parser) parseSink() (ast.SinkKind, string) {
	var kind ast.SinkKind
	switch p.cur().Type {
	case token.GT:
		kind = ast.SinkAppend
	case token.SINK_LIST:
		kind = ast.SinkListSurvive
	case token.SINK_FWD:
		kind = ast.SinkForward
	case token.SINK_FWD_LIST:
		kind = ast.SinkForwardListSurvive
	default:
		p.errorf("P041", "block requires a sink (>, []>, />, or /[]>), got %s %q", p.cur().Type, p.cur().Lexeme)
		return ast.SinkNone, ""
	}
	p.next()
	name := p.expectIdent()
	return kind, name
}

func (p *Parser) parseMacroInvocation(mod ast.Modifier) *ast.MacroInvocationOp {
	tok := p.cur()
	p.next() // consume 'do'
	name := p.expectIdent()
	return &ast.MacroInvocationOp{TokLexeme: tok.Lexeme, Name: name, Mod: mod}
}
