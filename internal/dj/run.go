// Package dj assembles the lex/parse/resolve/evaluate pipeline of spec.md
// §2 into the single entry point a command-line front end calls: run the
// one-time parse/resolve stages once, then evaluate every line of an input
// dictionary against the resolved script (spec §4.9's per-entry state
// machine, run once per line). Grounded on the teacher's pkg/cli
// (github.com/funvibe/funxy), whose runPipeline function assembles the
// same lex/parse/analyze pipeline.Pipeline for funxy scripts.
package dj

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"

	"github.com/funvibe/dj/internal/diagnostics"
	"github.com/funvibe/dj/internal/evaluator"
	"github.com/funvibe/dj/internal/leaves"
	"github.com/funvibe/dj/internal/parser"
	"github.com/funvibe/dj/internal/pipeline"
	"github.com/funvibe/dj/internal/progress"
	"github.com/funvibe/dj/internal/resolver"
	"github.com/funvibe/dj/internal/runtime"
	"github.com/funvibe/dj/internal/token"
)

// Options configures one DJ run (spec §6 "CLI (contract)").
type Options struct {
	// Source is the script text; FilePath is used only for diagnostics
	// (empty when the script came from an inline flag rather than a file).
	Source   string
	FilePath string

	Input  io.Reader // input dictionary; required
	Report io.Writer // destination for `report`/`result` (e.g. os.Stdout)
	Stderr io.Writer // verbose/timing diagnostics (e.g. os.Stderr)

	Dedup    bool // -u
	Verbose  bool // -v
	Timing   bool // -t
	Progress bool // --progress
	Pace     int  // --pace: progress update interval in entries, 0 = library default
}

// Run executes one script against one input dictionary and returns the
// first fatal diagnostic encountered, classified per spec §7 so the caller
// can choose an exit code. A nil return means every entry was processed
// (individual entries reaching N/A or an empty ilist are not errors and
// are not reported here).
func Run(opts Options) *diagnostics.Classified {
	catalog := leaves.NewRegistry()

	prepare := pipeline.New(&parser.Processor{}, &resolver.Processor{Catalog: catalog})
	ctx := prepare.Run(&pipeline.Context{Source: opts.Source, FilePath: opts.FilePath})
	if ctx.Failed() {
		return classify(ctx.Errors[0])
	}

	resolved, _ := ctx.Resolved.(*resolver.Resolved)

	runID := uuid.New().String()
	env := runtime.NewEnvironment(resolved.Config, runID)
	if opts.Report != nil {
		env.Report = opts.Report
	}
	if opts.Verbose || opts.Timing {
		env.Logger.SetOutput(stderrOrDiscard(opts.Stderr))
	}
	if opts.Dedup {
		env.Dedup = runtime.NewDedupSet()
	}

	if err := loadAuxiliaries(env, catalog, resolved); err != nil {
		return classify(ioError(err))
	}
	defer env.Close()

	ep := evaluator.NewProcessor(catalog)
	ctx.Env = env

	var bar *progress.Bar
	if opts.Progress {
		bar = progress.New(stderrOrDiscard(opts.Stderr), opts.Pace)
	}

	sc := bufio.NewScanner(opts.Input)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	var n int
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r\n")
		if line == "" {
			continue
		}
		ctx.Entry = line
		ep.Process(ctx)
		if ctx.Failed() {
			return classify(ctx.Errors[len(ctx.Errors)-1])
		}
		n++
		if bar != nil {
			bar.Tick(n)
		}
	}
	if err := sc.Err(); err != nil {
		return classify(ioError(fmt.Errorf("reading input dictionary: %w", err)))
	}
	if bar != nil {
		bar.Done(n)
	}
	return nil
}

// loadAuxiliaries populates the Environment's ignore set, pre-created
// output files, and global lists from the script's resolved header
// directives (spec §3), in that order, before any entry is evaluated.
func loadAuxiliaries(env *runtime.Environment, catalog *leaves.Registry, resolved *resolver.Resolved) error {
	for _, path := range resolved.Ignores {
		if err := env.LoadIgnore(path); err != nil {
			return err
		}
	}
	for _, path := range resolved.Creates {
		if err := env.Output.Create(path); err != nil {
			return err
		}
	}
	for _, decl := range resolved.GlobalLists {
		var filter func(string) []string
		if decl.Filter != nil {
			filter = func(line string) []string {
				out, _ := evaluator.RunFilterChain(env, catalog, decl.Filter, line)
				return out
			}
		}
		gl, err := runtime.LoadGlobalList(decl.Name, decl.Path, decl.IsSet, filter)
		if err != nil {
			return err
		}
		env.Globals[decl.Name] = gl
	}
	return nil
}

func stderrOrDiscard(w io.Writer) io.Writer {
	if w == nil {
		return io.Discard
	}
	return w
}

// ioError wraps a plain Go error (script/input/output failures that never
// went through the diagnostics package, e.g. os.Open) into an IOError
// diagnostic, per spec §7.
func ioError(err error) *diagnostics.Error {
	return diagnostics.NewErrorAt("IO001", token.Position{}, "%v", err)
}
