package diag

import (
	"fmt"
	"strings"

	"github.com/lang-l/lc/internal/position"
)

// Renderer turns collected Diagnostics into a plain-text report, the
// closest idiomatic-Go counterpart to a colored terminal report: one
// highlighted span per diagnostic, in the order the Collector hands them
// back.
type Renderer struct {
	highlighter *position.SpanHighlighter
}

// NewRenderer builds a Renderer that resolves spans against sourceMap.
func NewRenderer(sourceMap *position.SourceMap) *Renderer {
	return &Renderer{highlighter: position.NewSpanHighlighter(sourceMap)}
}

// Render writes a full report for every diagnostic in ds.
func (r *Renderer) Render(ds []Diagnostic) string {
	var b strings.Builder
	for i, d := range ds {
		if i > 0 {
			b.WriteString("\n")
		}
		r.renderOne(&b, d)
	}
	return b.String()
}

func (r *Renderer) renderOne(b *strings.Builder, d Diagnostic) {
	fmt.Fprintf(b, "error[%s]: %s\n", d.Kind, d.Message)
	b.WriteString(r.highlighter.HighlightSpan(d.Span))
	b.WriteString("\n")
}

// RenderError renders a single *parser.Error-derived Diagnostic, for a
// single-file run that never touches a Collector.
func (r *Renderer) RenderError(d Diagnostic) string {
	var b strings.Builder
	r.renderOne(&b, d)
	return b.String()
}
