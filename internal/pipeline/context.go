package pipeline

import (
	"github.com/funvibe/dj/internal/ast"
	"github.com/funvibe/dj/internal/diagnostics"
	"github.com/funvibe/dj/internal/runtime"
)

// Processor is one stage of a Pipeline (spec §2's four-stage engine:
// lex/parse, resolve, run). Grounded on the teacher's own
// internal/parser.ParserProcessor / internal/evaluator.EvaluatorProcessor
// shape: a stateless adapter whose Process method threads a single mutable
// context between stages.
type Processor interface {
	Process(ctx *Context) *Context
}

// Context carries a script through lex/parse/resolve once, then a single
// input entry through evaluation many times (spec §2's four stages). Stages
// downstream of a failed one should no-op rather than panic, so every stage
// after the first checks ctx.Errors first.
type Context struct {
	FilePath string
	Source   string

	Script *ast.Script
	// Resolved holds a *resolver.Resolved. It is typed as any so this
	// package does not import internal/resolver, which itself imports
	// pipeline for resolver.Processor.
	Resolved any
	Env      *runtime.Environment

	// Entry is set once per input line by the driver in internal/dj before
	// invoking the evaluation stage; the lex/parse/resolve stages ignore it.
	Entry string

	Errors []*diagnostics.Error
}

// Failed reports whether any stage has recorded a fatal error.
func (c *Context) Failed() bool { return len(c.Errors) > 0 }
