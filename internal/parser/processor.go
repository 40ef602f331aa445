package parser

import (
	"github.com/funvibe/dj/internal/pipeline"
)

// Processor adapts the parser into a pipeline.Processor (spec §2 stage 1:
// "Lexer/Parser"), grounded on the teacher's own
// internal/parser/processor.go (ParserProcessor), which likewise wraps a
// single New(...).ParseProgram() call plus file-path bookkeeping on the
// resulting errors.
type Processor struct{}

func (pp *Processor) Process(ctx *pipeline.Context) *pipeline.Context {
	p := New(ctx.Source)
	script, errs := p.ParseScript()
	ctx.Script = script
	for _, err := range errs {
		if err.File == "" {
			err.File = ctx.FilePath
		}
	}
	ctx.Errors = append(ctx.Errors, errs...)
	return ctx
}
