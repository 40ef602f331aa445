// Package lexer tokenizes DJ script source text. A hand-written,
// single-pass scanner in the style of the teacher's lexer
// (github.com/funvibe/funxy/internal/lexer): a small state machine reading
// one rune at a time via readChar/peekChar, with NextToken() producing one
// token.Token per call.
package lexer

import (
	"strings"
	"unicode/utf8"

	"github.com/funvibe/dj/internal/token"
)

// Lexer scans DJ script source.
type Lexer struct {
	input        string
	position     int
	readPosition int
	ch           rune
	line         int
	column       int
}

// New returns a Lexer positioned at the start of input. Backslash-newline
// continuations are spliced before scanning begins (spec §4.1): a final
// backslash on a non-blank, non-comment line joins the next line.
func New(input string) *Lexer {
	l := &Lexer{input: spliceContinuations(input), line: 1, column: 0}
	l.readChar()
	return l
}

// spliceContinuations removes a trailing "\\\n" on any line, joining it with
// the next line, unless the line is a comment (a backslash inside a `#`
// comment has no continuation meaning).
func spliceContinuations(input string) string {
	lines := strings.Split(input, "\n")
	var out []string
	for i := 0; i < len(lines); i++ {
		line := lines[i]
		for {
			trimmed := strings.TrimRight(line, " \t\r")
			if strings.HasSuffix(trimmed, "\\") && !isCommentLine(trimmed) {
				base := trimmed[:len(trimmed)-1]
				if i+1 < len(lines) {
					i++
					line = base + " " + strings.TrimLeft(lines[i], " \t")
					continue
				}
				line = base
			}
			break
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

func isCommentLine(trimmed string) bool {
	t := strings.TrimLeft(trimmed, " \t")
	return strings.HasPrefix(t, "#")
}

func (l *Lexer) readChar() {
	if l.ch == '\n' {
		l.line++
		l.column = 0
	}
	if l.readPosition >= len(l.input) {
		l.ch = 0
		l.position = l.readPosition
		l.readPosition++
		l.column++
		return
	}
	r, w := utf8.DecodeRuneInString(l.input[l.readPosition:])
	l.ch = r
	l.position = l.readPosition
	l.readPosition += w
	l.column++
}

func (l *Lexer) peekChar() rune {
	if l.readPosition >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.readPosition:])
	return r
}

// NextToken scans and returns the next token.
func (l *Lexer) NextToken() token.Token {
	l.skipWhitespaceAndComments()

	var tok token.Token
	switch l.ch {
	case '\n':
		tok = newToken(token.NEWLINE, l.ch, l.line, l.column)
	case '"':
		lit := l.readString()
		tok = token.Token{Type: token.STRING, Lexeme: lit, Literal: lit, Pos: token.Position{Line: l.line, Column: l.column}}
	case '[':
		if l.peekChar() == ']' {
			startLine, startCol := l.line, l.column
			l.readChar() // consume ']'
			if l.peekChar() == '>' {
				l.readChar() // consume '>'
				tok = token.Token{Type: token.SINK_LIST, Lexeme: "[]>", Literal: "[]>", Pos: token.Position{Line: startLine, Column: startCol}}
				break
			}
			tok = token.Token{Type: token.LBRACKET, Lexeme: "[", Literal: "[", Pos: token.Position{Line: startLine, Column: startCol}}
			break
		}
		tok = newToken(token.LBRACKET, l.ch, l.line, l.column)
	case ']':
		tok = newToken(token.RBRACKET, l.ch, l.line, l.column)
	case '(':
		tok = newToken(token.LPAREN, l.ch, l.line, l.column)
	case ')':
		tok = newToken(token.RPAREN, l.ch, l.line, l.column)
	case '{':
		tok = newToken(token.LBRACE, l.ch, l.line, l.column)
	case '}':
		tok = newToken(token.RBRACE, l.ch, l.line, l.column)
	case ',':
		tok = newToken(token.COMMA, l.ch, l.line, l.column)
	case '+':
		tok = newToken(token.PLUS, l.ch, l.line, l.column)
	case '*':
		tok = newToken(token.STAR, l.ch, l.line, l.column)
	case '!':
		tok = newToken(token.BANG, l.ch, l.line, l.column)
	case '~':
		tok = newToken(token.TILDE, l.ch, l.line, l.column)
	case '<':
		tok = newToken(token.LT, l.ch, l.line, l.column)
	case '>':
		tok = newToken(token.GT, l.ch, l.line, l.column)
	case '/':
		startLine, startCol := l.line, l.column
		if l.peekChar() == '>' {
			l.readChar()
			tok = token.Token{Type: token.SINK_FWD, Lexeme: "/>", Literal: "/>", Pos: token.Position{Line: startLine, Column: startCol}}
		} else if l.peekChar() == '[' {
			save := *l
			l.readChar() // consume '['
			if l.peekChar() == ']' {
				l.readChar() // consume ']'
				if l.peekChar() == '>' {
					l.readChar() // consume '>'
					tok = token.Token{Type: token.SINK_FWD_LIST, Lexeme: "/[]>", Literal: "/[]>", Pos: token.Position{Line: startLine, Column: startCol}}
					break
				}
			}
			*l = save
			tok = newToken(token.ILLEGAL, l.ch, l.line, l.column)
		} else {
			tok = newToken(token.ILLEGAL, l.ch, l.line, l.column)
		}
	case 0:
		tok = token.Token{Type: token.EOF, Pos: token.Position{Line: l.line, Column: l.column}}
	default:
		if isIdentStart(l.ch) {
			startLine, startCol := l.line, l.column
			ident := l.readIdentifier()
			tt := token.LookupIdent(ident)
			return token.Token{Type: tt, Lexeme: ident, Literal: ident, Pos: token.Position{Line: startLine, Column: startCol}}
		}
		if isDigit(l.ch) {
			return l.readNumber()
		}
		tok = newToken(token.ILLEGAL, l.ch, l.line, l.column)
	}

	l.readChar()
	return tok
}

func (l *Lexer) readString() string {
	var b strings.Builder
	for {
		l.readChar()
		if l.ch == '"' || l.ch == 0 {
			break
		}
		if l.ch == '\\' {
			l.readChar()
			switch l.ch {
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			case '"':
				b.WriteByte('"')
			case '\\':
				b.WriteByte('\\')
			case 0:
				return b.String()
			default:
				b.WriteRune(l.ch)
			}
			continue
		}
		b.WriteRune(l.ch)
	}
	return b.String()
}

func (l *Lexer) readIdentifier() string {
	position := l.position
	for isIdentPart(l.ch) {
		l.readChar()
	}
	return l.input[position:l.position]
}

func (l *Lexer) readNumber() token.Token {
	startLine, startCol := l.line, l.column
	position := l.position
	for isDigit(l.ch) {
		l.readChar()
	}
	tt := token.INT
	if l.ch == '.' && isDigit(l.peekChar()) {
		tt = token.FLOAT
		l.readChar()
		for isDigit(l.ch) {
			l.readChar()
		}
	}
	lit := l.input[position:l.position]
	return token.Token{Type: tt, Lexeme: lit, Literal: lit, Pos: token.Position{Line: startLine, Column: startCol}}
}

func (l *Lexer) skipWhitespaceAndComments() {
	for {
		for l.ch == ' ' || l.ch == '\t' || l.ch == '\r' {
			l.readChar()
		}
		if l.ch == '#' {
			for l.ch != '\n' && l.ch != 0 {
				l.readChar()
			}
			continue
		}
		break
	}
}

func newToken(tt token.Type, ch rune, line, col int) token.Token {
	lit := string(ch)
	return token.Token{Type: tt, Lexeme: lit, Literal: lit, Pos: token.Position{Line: line, Column: col}}
}

func isIdentStart(ch rune) bool {
	return ('a' <= ch && ch <= 'z') || ('A' <= ch && ch <= 'Z') || ch == '_'
}

func isIdentPart(ch rune) bool {
	return isIdentStart(ch) || isDigit(ch)
}

func isDigit(ch rune) bool {
	return '0' <= ch && ch <= '9'
}
