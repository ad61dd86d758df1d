// Package diag collects and renders the diagnostics a parse run produces.
// A single-file parse only ever has one Error to report, but the driver
// parses a project's files concurrently, so this package gives those
// diagnostics a collection point that is safe to write from many
// goroutines and that always drains in source order.
package diag

import (
	"fmt"

	"github.com/lang-l/lc/internal/parser"
	"github.com/lang-l/lc/internal/position"
)

// Kind is the closed set of diagnostic kinds, mirroring parser.ErrorKind so
// a Diagnostic can be built and rendered without importing the parser's
// internal error type into every consumer.
type Kind int

const (
	UnexpectedToken Kind = iota
	UnexpectedEof
	InvalidArraySize
	Lexical
)

func (k Kind) String() string {
	switch k {
	case UnexpectedToken:
		return "unexpected token"
	case UnexpectedEof:
		return "unexpected end of input"
	case InvalidArraySize:
		return "invalid array size"
	case Lexical:
		return "lexical error"
	default:
		return "error"
	}
}

// Diagnostic is one reportable problem found in one file.
type Diagnostic struct {
	Kind     Kind
	Span     position.Span
	Message  string
	FilePath string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s: %s", d.Span, d.Kind, d.Message)
}

// FromParseError converts the single *parser.Error a parse run produced
// into a Diagnostic, preserving its kind and span.
func FromParseError(filePath string, err *parser.Error) Diagnostic {
	d := Diagnostic{Span: err.Span, FilePath: filePath, Message: err.Error()}
	switch err.Kind {
	case parser.KindUnexpectedToken:
		d.Kind = UnexpectedToken
	case parser.KindUnexpectedEof:
		d.Kind = UnexpectedEof
	case parser.KindInvalidArraySize:
		d.Kind = InvalidArraySize
	case parser.KindLexical:
		d.Kind = Lexical
	}
	return d
}
