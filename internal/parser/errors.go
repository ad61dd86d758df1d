package parser

import (
	"fmt"

	"github.com/lang-l/lc/internal/lexer"
	"github.com/lang-l/lc/internal/position"
)

// ErrorKind is the closed set a ParseError can carry. Lexical errors that
// surface mid-parse are wrapped rather than re-kinded, so the original
// span and lexical kind survive.
type ErrorKind int

const (
	KindUnexpectedToken ErrorKind = iota
	KindUnexpectedEof
	KindInvalidArraySize
	KindLexical
)

func (k ErrorKind) String() string {
	switch k {
	case KindUnexpectedToken:
		return "unexpected token"
	case KindUnexpectedEof:
		return "unexpected end of input"
	case KindInvalidArraySize:
		return "invalid array size"
	case KindLexical:
		return "lexical error"
	default:
		return "parse error"
	}
}

// Error is the single error type parsing ever returns. It never attempts
// resynchronization — the first Error aborts the parse and the entry
// point returns no partial tree.
type Error struct {
	Kind     ErrorKind
	Span     position.Span
	Expected string // set for KindUnexpectedToken
	Got      string // set for KindUnexpectedToken
	Message  string
	Lexical  *lexer.LexicalError // set for KindLexical
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindUnexpectedToken:
		return fmt.Sprintf("%s: expected %s, got %s", e.Span, e.Expected, e.Got)
	case KindLexical:
		return e.Lexical.Error()
	default:
		return fmt.Sprintf("%s: %s: %s", e.Span, e.Kind, e.Message)
	}
}

func unexpectedToken(span position.Span, expected, got string) *Error {
	return &Error{Kind: KindUnexpectedToken, Span: span, Expected: expected, Got: got}
}

func unexpectedEOF(span position.Span, expected string) *Error {
	return &Error{Kind: KindUnexpectedEof, Span: span, Expected: expected, Message: "reached end of input"}
}

func invalidArraySize(span position.Span, format string, args ...any) *Error {
	return &Error{Kind: KindInvalidArraySize, Span: span, Message: fmt.Sprintf(format, args...)}
}

func wrapLexical(lexErr *lexer.LexicalError) *Error {
	return &Error{Kind: KindLexical, Span: lexErr.Span, Lexical: lexErr, Message: lexErr.Message}
}
