package evaluator

import (
	"github.com/funvibe/dj/internal/diagnostics"
	"github.com/funvibe/dj/internal/leaves"
	"github.com/funvibe/dj/internal/pipeline"
	"github.com/funvibe/dj/internal/resolver"
	"github.com/funvibe/dj/internal/token"
)

// Processor adapts Evaluator into a pipeline.Processor, run once per input
// entry (unlike the lex/parse/resolve stages, which run once per script).
// Grounded on the teacher's internal/evaluator/processor.go
// (EvaluatorProcessor.Process), adapted from "evaluate one AST and inspect
// the resulting Object" to "evaluate one entry against an already-resolved
// script and inspect the resulting error".
type Processor struct {
	Catalog *leaves.Registry
}

// NewProcessor returns a Processor sharing one leaf catalog across every
// entry in the run (the catalog is stateless and safe to share).
func NewProcessor(catalog *leaves.Registry) *Processor {
	return &Processor{Catalog: catalog}
}

func (p *Processor) Process(ctx *pipeline.Context) *pipeline.Context {
	if ctx.Failed() || ctx.Resolved == nil || ctx.Env == nil {
		return ctx
	}
	resolved, _ := ctx.Resolved.(*resolver.Resolved)
	eval := &Evaluator{Env: ctx.Env, Catalog: p.Catalog, Resolved: resolved}
	if err := eval.RunEntry(ctx.Entry); err != nil {
		ctx.Errors = append(ctx.Errors, diagnostics.NewErrorAt("E001", token.Position{}, "%v", err))
	}
	return ctx
}
