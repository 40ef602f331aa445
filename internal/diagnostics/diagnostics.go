// Package diagnostics provides the single Error type shared by every stage
// of the DJ pipeline (lexer, parser, resolver, evaluator). Stages never
// panic on a script-author mistake; they append an Error to the pipeline
// Context and keep going where it is safe to do so, so a single run can
// surface more than one problem at once.
package diagnostics

import (
	"fmt"

	"github.com/funvibe/dj/internal/token"
)

// Error is a single diagnostic, positioned in the script source.
type Error struct {
	Code    string // short code, e.g. "P001", "R003", "C001"
	File    string
	Pos     token.Position
	Message string
}

func (e *Error) Error() string {
	if e.File != "" {
		return fmt.Sprintf("%s:%s: [%s] %s", e.File, e.Pos, e.Code, e.Message)
	}
	return fmt.Sprintf("%s: [%s] %s", e.Pos, e.Code, e.Message)
}

// NewError builds a diagnostic positioned at tok.
func NewError(code string, tok token.Token, format string, args ...interface{}) *Error {
	return &Error{
		Code:    code,
		Pos:     tok.Pos,
		Message: fmt.Sprintf(format, args...),
	}
}

// NewErrorAt builds a diagnostic at an explicit position, for cases with no
// token at hand (e.g. end-of-file).
func NewErrorAt(code string, pos token.Position, format string, args ...interface{}) *Error {
	return &Error{Code: code, Pos: pos, Message: fmt.Sprintf(format, args...)}
}

// Kind distinguishes the error classes of spec §7 for CLI exit-code mapping.
type Kind int

const (
	KindParse Kind = iota
	KindResolver
	KindConfig
	KindIO
	KindRuntime
)

// Classified wraps an Error with its Kind so the CLI can choose an exit code.
type Classified struct {
	*Error
	Kind Kind
}

func Parse(e *Error) *Classified    { return &Classified{Error: e, Kind: KindParse} }
func Resolver(e *Error) *Classified { return &Classified{Error: e, Kind: KindResolver} }
func Config(e *Error) *Classified   { return &Classified{Error: e, Kind: KindConfig} }
func IO(e *Error) *Classified       { return &Classified{Error: e, Kind: KindIO} }
func Runtime(e *Error) *Classified  { return &Classified{Error: e, Kind: KindRuntime} }
