package progress_test

import (
	"bytes"
	"testing"

	"github.com/funvibe/dj/internal/progress"
)

// A plain bytes.Buffer is never a terminal, so a Bar writing to one must
// stay silent regardless of how many ticks it sees.
func TestBarSuppressedOnNonTerminal(t *testing.T) {
	var buf bytes.Buffer
	bar := progress.New(&buf, 1)
	for i := 1; i <= 5; i++ {
		bar.Tick(i)
	}
	bar.Done(5)
	if buf.Len() != 0 {
		t.Errorf("expected no output on a non-terminal writer, got %q", buf.String())
	}
}

func TestNewDefaultsPaceWhenNonPositive(t *testing.T) {
	var buf bytes.Buffer
	bar := progress.New(&buf, 0)
	bar.Tick(500) // would redraw at the default pace if buf were a terminal
	if buf.Len() != 0 {
		t.Errorf("expected no output on a non-terminal writer, got %q", buf.String())
	}
}
