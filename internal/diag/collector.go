package diag

import (
	"fmt"
	"sync"

	"github.com/tidwall/btree"
)

// Collector gathers Diagnostics from possibly-concurrent parses and keeps
// them ordered by (file, span offset) regardless of arrival order, so a
// multi-file driver run renders its report in source order even though
// goroutines finish in whatever order the scheduler picks.
type Collector struct {
	mu   sync.Mutex
	tree btree.Map[string, Diagnostic]
	seq  int
}

// NewCollector returns an empty Collector ready for concurrent use.
func NewCollector() *Collector {
	return &Collector{}
}

// Add records d. Safe to call from multiple goroutines.
func (c *Collector) Add(d Diagnostic) {
	c.mu.Lock()
	defer c.mu.Unlock()
	key := fmt.Sprintf("%s\x00%010d\x00%010d", d.FilePath, d.Span.Start.Offset, c.seq)
	c.seq++
	c.tree.Set(key, d)
}

// Len reports how many diagnostics have been collected so far.
func (c *Collector) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tree.Len()
}

// All returns every collected Diagnostic, ordered by file path and then by
// source span offset within that file.
func (c *Collector) All() []Diagnostic {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Diagnostic, 0, c.tree.Len())
	c.tree.Scan(func(_ string, d Diagnostic) bool {
		out = append(out, d)
		return true
	})
	return out
}
