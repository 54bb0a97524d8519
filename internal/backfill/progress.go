package backfill

import (
	"fmt"
	"io"
	"sync"
)

// Progress is the cumulative state after a page.
type Progress struct {
	Job       string
	Page      int
	Processed int
	Changed   int
	Skipped   int
	LastID    string
}

type Reporter interface {
	Report(p Progress)
}

type ReporterFunc func(p Progress)

func (f ReporterFunc) Report(p Progress) { f(p) }

// ConsoleReporter prints one line per page.
type ConsoleReporter struct {
	mu sync.Mutex
	w  io.Writer
}

func NewConsoleReporter(w io.Writer) *ConsoleReporter {
	return &ConsoleReporter{w: w}
}

func (c *ConsoleReporter) Report(p Progress) {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, _ = fmt.Fprintf(c.w, "%s: page %d processed=%d changed=%d skipped=%d\n",
		p.Job, p.Page, p.Processed, p.Changed, p.Skipped)
}

type nopReporter struct{}

func (nopReporter) Report(Progress) {}
