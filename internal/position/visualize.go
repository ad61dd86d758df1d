package position

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// SpanHighlighter renders a Span as source text with an ASCII caret
// underline, the rendering primitive internal/diag builds error reports on
// top of.
type SpanHighlighter struct {
	sourceMap *SourceMap
}

// NewSpanHighlighter creates a highlighter reading files from sourceMap.
func NewSpanHighlighter(sourceMap *SourceMap) *SpanHighlighter {
	return &SpanHighlighter{sourceMap: sourceMap}
}

// HighlightSpan renders span with two lines of context on either side.
func (sh *SpanHighlighter) HighlightSpan(span Span) string {
	if !span.IsValid() {
		return "invalid span"
	}

	file := sh.sourceMap.GetFile(span.Start.Filename)
	if file == nil {
		return fmt.Sprintf("file not found: %s", span.Start.Filename)
	}

	var result strings.Builder

	fmt.Fprintf(&result, "%s: %s\n\n", span.Start.Filename, span)

	startLine := max(1, span.Start.Line-2)
	endLine := min(len(file.Lines), span.End.Line+2)

	for lineNum := startLine; lineNum <= endLine; lineNum++ {
		line := file.GetLine(lineNum)
		fmt.Fprintf(&result, "%4d | %s\n", lineNum, line)

		if lineNum >= span.Start.Line && lineNum <= span.End.Line {
			sh.addHighlighting(&result, lineNum, line, span)
		}
	}

	return result.String()
}

func (sh *SpanHighlighter) addHighlighting(result *strings.Builder, lineNum int, line string, span Span) {
	result.WriteString("     | ")

	switch {
	case lineNum == span.Start.Line && lineNum == span.End.Line:
		sh.addSingleLineHighlight(result, line, span.Start.Column, span.End.Column)
	case lineNum == span.Start.Line:
		sh.addSingleLineHighlight(result, line, span.Start.Column, utf8.RuneCountInString(line)+1)
	case lineNum == span.End.Line:
		sh.addSingleLineHighlight(result, line, 1, span.End.Column)
	default:
		sh.addSingleLineHighlight(result, line, 1, utf8.RuneCountInString(line)+1)
	}

	result.WriteString("\n")
}

func (sh *SpanHighlighter) addSingleLineHighlight(result *strings.Builder, line string, startCol, endCol int) {
	runes := []rune(line)

	for i := 1; i < startCol; i++ {
		if i <= len(runes) && runes[i-1] == '\t' {
			result.WriteString("\t")
		} else {
			result.WriteString(" ")
		}
	}

	if highlightLen := endCol - startCol; highlightLen > 0 {
		result.WriteString(strings.Repeat("^", min(highlightLen, len(runes)-startCol+1)))
	}
}
