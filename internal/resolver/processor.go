package resolver

import (
	"github.com/funvibe/dj/internal/pipeline"
)

// Processor adapts Resolve into a pipeline.Processor (spec §2 stage 2:
// "AST & semantic resolver"), grounded on the teacher's
// internal/analyzer/processor.go (AnalyzerProcessor): a no-op when the
// previous stage already failed, otherwise run the pass and append any
// errors it produced.
type Processor struct {
	Catalog LeafCatalog
}

func (p *Processor) Process(ctx *pipeline.Context) *pipeline.Context {
	if ctx.Failed() || ctx.Script == nil {
		return ctx
	}
	resolved, errs := Resolve(ctx.Script, p.Catalog)
	ctx.Resolved = resolved // stored as any; pipeline.Context can't name *Resolved without an import cycle
	for _, err := range errs {
		if err.File == "" {
			err.File = ctx.FilePath
		}
	}
	ctx.Errors = append(ctx.Errors, errs...)
	return ctx
}
