// Package runtime holds the process-wide state one DJ run shares: resolved
// configuration, loaded global lists/sets, the ignore set, shared output
// handles, and the optional global dedup set — everything spec §5 calls
// "read-only after startup" plus the synchronized pieces that are not.
// Per-entry state (EntryState, in namedlist.go) is kept separate since it is
// reset every entry rather than shared across the run.
package runtime

import (
	"io"
	"log"
	"os"

	"github.com/funvibe/dj/internal/config"
	"github.com/funvibe/dj/internal/ops"
)

// Environment is the read-only-after-startup process state threaded through
// evaluation (spec §5 "Shared-resource policy"). It satisfies ops.Env so
// leaf operations can be evaluated directly against it.
type Environment struct {
	Config  *config.Table
	Globals map[string]*GlobalList
	Ignore  map[string]struct{}
	Output  *OutputRegistry
	Dedup   *DedupSet // non-nil only when the -u flag is set
	RunID   string

	Report io.Writer   // destination for `report` (defaults to os.Stdout)
	Logger *log.Logger // verbose/timing diagnostics only, never control flow
}

// NewEnvironment builds an Environment ready for one run. runID is a
// correlation id (spec.md's domain-stack note: generated with
// github.com/google/uuid, grounded on the teacher's own uuid.New() use for
// module/run identity). It is stored on the Environment and passed to its
// OutputRegistry; no log line prints it.
func NewEnvironment(cfg *config.Table, runID string) *Environment {
	return &Environment{
		Config:  cfg,
		Globals: make(map[string]*GlobalList),
		Ignore:  make(map[string]struct{}),
		Output:  NewOutputRegistry(runID),
		RunID:   runID,
		Report:  os.Stdout,
		Logger:  log.New(os.Stderr, "dj: ", log.LstdFlags),
	}
}

// ConfigString implements ops.Env.
func (e *Environment) ConfigString(op, param, fallback string) string {
	return e.Config.GetString(op, param, fallback)
}

// ConfigList implements ops.Env.
func (e *Environment) ConfigList(op, param string) []string {
	return e.Config.GetList(op, param)
}

// GlobalList implements ops.Env.
func (e *Environment) GlobalList(name string) ([]string, bool) {
	gl, ok := e.Globals[name]
	if !ok {
		return nil, false
	}
	return gl.Values, true
}

var _ ops.Env = (*Environment)(nil)

// IsIgnored reports whether entry is present in the read-only ignore set
// loaded from `ignore "path"` header directives (spec §3).
func (e *Environment) IsIgnored(entry string) bool {
	_, ok := e.Ignore[entry]
	return ok
}

// LoadIgnore reads path (one entry per line) into the ignore set.
func (e *Environment) LoadIgnore(path string) error {
	gl, err := LoadGlobalList("ignore", path, true, nil)
	if err != nil {
		return err
	}
	for _, v := range gl.Values {
		e.Ignore[v] = struct{}{}
	}
	return nil
}

// Close releases every resource opened for this run (output handles),
// called once at interpreter shutdown on all exit paths (spec §5).
func (e *Environment) Close() error {
	return e.Output.Close()
}
