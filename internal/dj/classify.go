package dj

import (
	"strings"

	"github.com/funvibe/dj/internal/diagnostics"
)

// classify maps an Error's code prefix to the diagnostic Kind of spec §7,
// so a single *diagnostics.Classified return value is enough for the CLI
// to pick an exit code. Codes are assigned per-package ("P" lexer/parser,
// "R" resolver structure, "C" config, "IO" from this package, "E" from the
// evaluator at entry-evaluation time), matching the prefixes each package
// already uses for its own diagnostics.NewErrorAt calls.
func classify(e *diagnostics.Error) *diagnostics.Classified {
	switch {
	case strings.HasPrefix(e.Code, "P"):
		return diagnostics.Parse(e)
	case strings.HasPrefix(e.Code, "R"):
		return diagnostics.Resolver(e)
	case strings.HasPrefix(e.Code, "C"):
		return diagnostics.Config(e)
	case strings.HasPrefix(e.Code, "IO"):
		return diagnostics.IO(e)
	default:
		return diagnostics.Runtime(e)
	}
}
