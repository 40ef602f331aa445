// Package progress renders a best-effort stderr status line for the
// --progress/--pace CLI flags (spec.md §6 "CLI (contract)"). It never
// affects evaluation semantics or exit codes (spec.md §1 lists progress
// reporting as an external collaborator, out of scope as specified
// behavior) — it only decides, cheaply, whether and how often to print.
//
// Grounded on the teacher's (github.com/funvibe/funxy) lib/term TTY
// detection (internal/evaluator/builtins_term.go: isatty.IsTerminal plus
// isatty.IsCygwinTerminal before deciding whether to draw anything), with
// the percentage/bar rendering itself replaced by a lipgloss-styled
// single line, grounded on kris-hansen/comanda's lipgloss status output.
package progress

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

const defaultPace = 500

var labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("36")).Bold(true)

// Bar is a thin, line-redrawing progress reporter. It is safe to use from
// a single goroutine only, matching how internal/dj drives it: once per
// input line, from the same loop that evaluates that line.
type Bar struct {
	w     io.Writer
	pace  int
	tty   bool
	start time.Time
}

// New builds a Bar writing to w. pace is the minimum number of processed
// entries between redraws; 0 falls back to defaultPace. Output is
// suppressed entirely when w is not a terminal, since a redrawn line on a
// pipe or log file is just noise (grounded on the teacher's own
// isatty-gated terminal control builtins).
func New(w io.Writer, pace int) *Bar {
	if pace <= 0 {
		pace = defaultPace
	}
	tty := false
	if f, ok := w.(*os.File); ok {
		tty = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return &Bar{w: w, pace: pace, tty: tty, start: time.Now()}
}

// Tick reports that n entries have been processed so far. It redraws at
// most once per pace entries.
func (b *Bar) Tick(n int) {
	if !b.tty || n%b.pace != 0 {
		return
	}
	b.draw(n)
}

// Done draws a final line reporting the total count processed.
func (b *Bar) Done(n int) {
	if !b.tty {
		return
	}
	b.draw(n)
	_, _ = fmt.Fprintln(b.w)
}

func (b *Bar) draw(n int) {
	elapsed := time.Since(b.start)
	rate := float64(n) / elapsed.Seconds()
	_, _ = fmt.Fprintf(b.w, "\r\033[2K%s %d entries  %s  %.0f/s",
		labelStyle.Render("dj"), n, elapsed.Round(time.Second), rate)
}
