package runtime

import (
	"bufio"
	"fmt"
	"os"
	"sync"
)

// handle is one shared, line-buffered output file plus the mutex guarding
// it (spec §5: "Output file handles are shared; writes are line-atomic
// (acquire the handle's mutex for one ilist emission)").
type handle struct {
	mu sync.Mutex
	f  *os.File
	w  *bufio.Writer
}

// OutputRegistry is the process-wide map of open output files referenced by
// `write`/`create` directives (spec §4.8, §5 "Scoped resources"). A single
// registry instance is shared across the whole run; handles are opened
// lazily on first use and closed together at shutdown.
type OutputRegistry struct {
	mu      sync.Mutex
	handles map[string]*handle
	runID   string
}

// NewOutputRegistry returns an empty registry tagged with runID (grounded
// on the teacher's own use of uuid.New() for run/module identity). The id
// is stored only; no log line or output file includes it.
func NewOutputRegistry(runID string) *OutputRegistry {
	return &OutputRegistry{handles: make(map[string]*handle), runID: runID}
}

// RunID returns this registry's run correlation id.
func (r *OutputRegistry) RunID() string { return r.runID }

func (r *OutputRegistry) open(path string, truncate bool) (*handle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if h, ok := r.handles[path]; ok {
		if truncate {
			if err := h.truncate(); err != nil {
				return nil, err
			}
		}
		return h, nil
	}
	flag := os.O_CREATE | os.O_WRONLY
	if truncate {
		flag |= os.O_TRUNC
	} else {
		flag |= os.O_APPEND
	}
	f, err := os.OpenFile(path, flag, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening output file %s: %w", path, err)
	}
	h := &handle{f: f, w: bufio.NewWriter(f)}
	r.handles[path] = h
	return h, nil
}

func (h *handle) truncate() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if err := h.w.Flush(); err != nil {
		return err
	}
	if err := h.f.Truncate(0); err != nil {
		return err
	}
	if _, err := h.f.Seek(0, 0); err != nil {
		return err
	}
	h.w.Reset(h.f)
	return nil
}

// Create truncates the file at path to empty (spec §4.8: "`create "path"`
// (directive): truncate the file at path to empty at script start
// (idempotent within one run)"). Safe to call more than once for the same
// path within a run.
func (r *OutputRegistry) Create(path string) error {
	_, err := r.open(path, true)
	return err
}

// Write appends lines to the file at path, one per line, as a single
// line-atomic operation (spec §4.8 `write`, §5 line-atomicity).
func (r *OutputRegistry) Write(path string, lines []string) error {
	h, err := r.open(path, false)
	if err != nil {
		return err
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, line := range lines {
		if _, err := h.w.WriteString(line); err != nil {
			return err
		}
		if err := h.w.WriteByte('\n'); err != nil {
			return err
		}
	}
	return h.w.Flush()
}

// Close flushes and releases every open handle, called once at interpreter
// shutdown on all exit paths (spec §5 "Scoped resources").
func (r *OutputRegistry) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	var firstErr error
	for path, h := range r.handles {
		h.mu.Lock()
		if err := h.w.Flush(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("flushing %s: %w", path, err)
		}
		if err := h.f.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("closing %s: %w", path, err)
		}
		h.mu.Unlock()
	}
	return firstErr
}
