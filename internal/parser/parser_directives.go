package parser

import (
	"github.com/funvibe/dj/internal/ast"
	"github.com/funvibe/dj/internal/token"
)

func (p *Parser) atDirectiveStart() bool {
	switch p.cur().Type {
	case token.IGNORE, token.CREATE, token.LIST, token.SET,
		token.GLOBAL_LIST, token.GLOBAL_SET, token.CONFIG, token.DEF:
		return true
	}
	return false
}

func (p *Parser) parseDirective(h *ast.Header) {
	switch p.cur().Type {
	case token.IGNORE:
		p.next()
		h.Ignores = append(h.Ignores, p.expectString())
	case token.CREATE:
		p.next()
		h.Creates = append(h.Creates, p.expectString())
	case token.LIST:
		p.next()
		h.Lists = append(h.Lists, p.expectIdent())
	case token.SET:
		p.next()
		h.Sets = append(h.Sets, p.expectIdent())
	case token.GLOBAL_LIST, token.GLOBAL_SET:
		p.parseGlobalDecl(h)
	case token.CONFIG:
		p.parseConfigDirective(h)
	case token.DEF:
		p.parseMacroDef(h)
	default:
		p.errorf("P020", "unexpected token %s %q at header position", p.cur().Type, p.cur().Lexeme)
		p.next()
	}
}

func (p *Parser) parseGlobalDecl(h *ast.Header) {
	isSet := p.cur().Type == token.GLOBAL_SET
	p.next()
	name := p.expectIdent()
	path := p.expectString()
	var filter *ast.ComplexOperation
	if p.cur().Type == token.LPAREN {
		p.next()
		filter = p.parseComplexOperation(token.RPAREN)
		p.expect(token.RPAREN)
	}
	decl := &ast.GlobalDecl{Name: name, Path: path, Filter: filter, IsSet: isSet}
	if isSet {
		h.GlobalSets = append(h.GlobalSets, decl)
	} else {
		h.GlobalLists = append(h.GlobalLists, decl)
	}
}

func (p *Parser) parseConfigDirective(h *ast.Header) {
	p.next() // consume 'config'
	opName := p.expectIdent()
	paramName := p.expectIdent()
	lit := p.parseConfigLiteral()
	h.Configs = append(h.Configs, &ast.ConfigDirective{Op: opName, Param: paramName, Value: lit})
}

func (p *Parser) parseMacroDef(h *ast.Header) {
	p.next() // consume 'def'
	name := p.expectIdent()
	body := p.parseComplexOperation()
	if _, exists := h.Macros[name]; exists {
		p.errorf("P021", "macro %q redefined", name)
	}
	h.Macros[name] = body
}
