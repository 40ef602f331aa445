package lexer_test

import (
	"testing"

	"github.com/funvibe/dj/internal/lexer"
	"github.com/funvibe/dj/internal/token"
)

func TestNextToken(t *testing.T) {
	input := `list L
use L prepend each "$" report
+split " " *map " " "-_" !min length 3 ~is_pattern
{ find_all "[A-Z]" }> L
restart 2 ( min length 8 , deduplicate )
# a comment
`

	tests := []struct {
		wantType  token.Type
		wantLexeme string
	}{
		{token.LIST, "list"},
		{token.IDENT, "L"},
		{token.NEWLINE, "\n"},
		{token.USE, "use"},
		{token.IDENT, "L"},
		{token.IDENT, "prepend"},
		{token.IDENT, "each"},
		{token.STRING, "$"},
		{token.IDENT, "report"},
		{token.NEWLINE, "\n"},
		{token.PLUS, "+"},
		{token.IDENT, "split"},
		{token.STRING, " "},
		{token.STAR, "*"},
		{token.IDENT, "map"},
		{token.STRING, " "},
		{token.STRING, "-_"},
		{token.BANG, "!"},
		{token.IDENT, "min"},
		{token.IDENT, "length"},
		{token.INT, "3"},
		{token.TILDE, "~"},
		{token.IDENT, "is_pattern"},
		{token.NEWLINE, "\n"},
		{token.LBRACE, "{"},
		{token.IDENT, "find_all"},
		{token.STRING, "[A-Z]"},
		{token.RBRACE, "}"},
		{token.GT, ">"},
		{token.IDENT, "L"},
		{token.NEWLINE, "\n"},
		{token.IDENT, "restart"},
		{token.INT, "2"},
		{token.LPAREN, "("},
		{token.IDENT, "min"},
		{token.IDENT, "length"},
		{token.INT, "8"},
		{token.COMMA, ","},
		{token.IDENT, "deduplicate"},
		{token.RPAREN, ")"},
		{token.NEWLINE, "\n"},
		{token.NEWLINE, "\n"},
		{token.EOF, ""},
	}

	l := lexer.New(input)
	for i, tt := range tests {
		tok := l.NextToken()
		if tok.Type != tt.wantType {
			t.Fatalf("test[%d] - wrong type: expected=%q, got=%q (lexeme %q)", i, tt.wantType, tok.Type, tok.Lexeme)
		}
		if tok.Type != token.EOF && tok.Lexeme != tt.wantLexeme {
			t.Fatalf("test[%d] - wrong lexeme: expected=%q, got=%q", i, tt.wantLexeme, tok.Lexeme)
		}
	}
}

func TestLineContinuation(t *testing.T) {
	input := "lower \\\n  remove_ws report\n"
	l := lexer.New(input)
	var kinds []token.Type
	for {
		tok := l.NextToken()
		kinds = append(kinds, tok.Type)
		if tok.Type == token.EOF {
			break
		}
	}
	// No NEWLINE should appear before "remove_ws": the continuation joins
	// the two lines into one logical line.
	for i, k := range kinds {
		if k == token.NEWLINE && i < len(kinds)-2 {
			t.Fatalf("unexpected mid-line NEWLINE at index %d: %v", i, kinds)
		}
	}
}

func TestCommentToEndOfLine(t *testing.T) {
	input := "lower # strip case\nreport\n"
	l := lexer.New(input)
	var lexemes []string
	for {
		tok := l.NextToken()
		if tok.Type == token.EOF {
			break
		}
		lexemes = append(lexemes, tok.Lexeme)
	}
	want := []string{"lower", "\n", "report", "\n"}
	if len(lexemes) != len(want) {
		t.Fatalf("got %v, want %v", lexemes, want)
	}
	for i := range want {
		if lexemes[i] != want[i] {
			t.Fatalf("got %v, want %v", lexemes, want)
		}
	}
}
