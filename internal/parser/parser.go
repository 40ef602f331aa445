// Package parser implements a recursive-descent parser over the DJ script
// grammar of spec §4.1, producing an *ast.Script. Organized the way the
// teacher splits its parser across one file per syntactic concern
// (github.com/funvibe/funxy/internal/parser: statements_*.go,
// expressions_*.go) — here: parser.go (core cursor + helpers),
// parser_directives.go (header), parser_body.go (statements/chains),
// parser_operations.go (leaves/blocks/macro invocations),
// parser_combinators.go (MetaOperations).
package parser

import (
	"strconv"

	"github.com/funvibe/dj/internal/ast"
	"github.com/funvibe/dj/internal/config"
	"github.com/funvibe/dj/internal/diagnostics"
	"github.com/funvibe/dj/internal/lexer"
	"github.com/funvibe/dj/internal/token"
)

// Parser walks a pre-lexed token stream. Scripts are small enough that
// lexing eagerly into a slice (rather than pulling tokens lazily) keeps the
// cursor logic simple, matching the teacher's own preference for explicit,
// readable control flow over cleverness.
type Parser struct {
	toks []token.Token
	pos  int
	errs []*diagnostics.Error
}

// New lexes src in full and returns a Parser ready to produce an AST.
func New(src string) *Parser {
	l := lexer.New(src)
	var toks []token.Token
	for {
		t := l.NextToken()
		toks = append(toks, t)
		if t.Type == token.EOF {
			break
		}
	}
	return &Parser{toks: toks}
}

// ParseScript parses a complete script. Parsing never panics on malformed
// input: it records a diagnostics.Error and attempts to resynchronize at
// the next line, so one bad line does not prevent reporting others.
func (p *Parser) ParseScript() (*ast.Script, []*diagnostics.Error) {
	header := &ast.Header{Macros: map[string]*ast.ComplexOperation{}}
	p.skipNewlines()
	for p.atDirectiveStart() {
		p.parseDirective(header)
		p.skipNewlines()
	}

	var stmts []*ast.Statement
	for !p.atEOF() {
		p.skipNewlines()
		if p.atEOF() {
			break
		}
		stmt := p.parseStatement()
		if stmt != nil {
			stmts = append(stmts, stmt)
		}
		p.syncToLineEnd()
	}

	return &ast.Script{Header: header, Statements: stmts}, p.errs
}

func (p *Parser) cur() token.Token {
	if p.pos >= len(p.toks) {
		return p.toks[len(p.toks)-1] // EOF
	}
	return p.toks[p.pos]
}

func (p *Parser) peek(n int) token.Token {
	idx := p.pos + n
	if idx >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[idx]
}

func (p *Parser) next() token.Token {
	t := p.cur()
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

func (p *Parser) atEOF() bool { return p.cur().Type == token.EOF }

func (p *Parser) skipNewlines() {
	for p.cur().Type == token.NEWLINE {
		p.next()
	}
}

// syncToLineEnd advances to the next NEWLINE/EOF, used for resynchronizing
// after a parse error so sibling statements can still be parsed and
// reported on.
func (p *Parser) syncToLineEnd() {
	for p.cur().Type != token.NEWLINE && p.cur().Type != token.EOF {
		p.next()
	}
}

func (p *Parser) errorf(code string, format string, args ...interface{}) {
	p.errs = append(p.errs, diagnostics.NewError(code, p.cur(), format, args...))
}

// expect consumes the current token if it has type tt, else records an
// error and leaves the cursor in place.
func (p *Parser) expect(tt token.Type) bool {
	if p.cur().Type == tt {
		p.next()
		return true
	}
	p.errorf("P001", "expected %s, got %s %q", tt, p.cur().Type, p.cur().Lexeme)
	return false
}

func (p *Parser) expectString() string {
	if p.cur().Type != token.STRING {
		p.errorf("P002", "expected a string literal, got %s %q", p.cur().Type, p.cur().Lexeme)
		return ""
	}
	s := p.cur().Literal
	p.next()
	return s
}

func (p *Parser) expectIdent() string {
	if p.cur().Type != token.IDENT {
		p.errorf("P003", "expected a name, got %s %q", p.cur().Type, p.cur().Lexeme)
		return ""
	}
	s := p.cur().Lexeme
	p.next()
	return s
}

func (p *Parser) expectInt() int {
	if p.cur().Type != token.INT {
		p.errorf("P004", "expected an integer, got %s %q", p.cur().Type, p.cur().Lexeme)
		return 0
	}
	n, err := strconv.Atoi(p.cur().Lexeme)
	if err != nil {
		p.errorf("P004", "invalid integer literal %q", p.cur().Lexeme)
	}
	p.next()
	return n
}

// parseConfigLiteral parses the literal value of a `config` directive
// (spec §4.1: literal := string | integer | bracketed-literal-list).
func (p *Parser) parseConfigLiteral() config.Literal {
	switch p.cur().Type {
	case token.STRING:
		s := p.cur().Literal
		p.next()
		return config.StringLiteral(s)
	case token.INT:
		return config.IntLiteral(p.expectInt())
	case token.LBRACKET:
		return config.ListLiteral(p.parseBracketedList())
	default:
		p.errorf("P005", "expected a literal (string, integer, or bracketed list), got %s %q", p.cur().Type, p.cur().Lexeme)
		return config.StringLiteral("")
	}
}

func (p *Parser) parseBracketedList() []string {
	p.expect(token.LBRACKET)
	var out []string
	for p.cur().Type != token.RBRACKET && p.cur().Type != token.EOF {
		if p.cur().Type == token.STRING {
			out = append(out, p.cur().Literal)
			p.next()
		} else {
			p.errorf("P006", "expected a string inside a bracketed list, got %s %q", p.cur().Type, p.cur().Lexeme)
			p.next()
		}
		if p.cur().Type == token.COMMA {
			p.next()
		}
	}
	p.expect(token.RBRACKET)
	return out
}

// tryParseLiteralArg consumes one leaf-operation literal argument, if the
// current token starts one.
func (p *Parser) tryParseLiteralArg() (ast.Arg, bool) {
	switch p.cur().Type {
	case token.STRING:
		s := p.cur().Literal
		p.next()
		return ast.StringArg{Value: s}, true
	case token.INT:
		n := p.expectInt()
		return ast.IntArg{Value: n}, true
	case token.LBRACKET:
		return ast.ListArg{Values: p.parseBracketedList()}, true
	default:
		return nil, false
	}
}
