package lexer

import (
	"fmt"

	"github.com/lang-l/lc/internal/position"
)

// LexicalErrorKind classifies why the lexer refused to produce a token.
type LexicalErrorKind int

const (
	ErrUnknownCharacter LexicalErrorKind = iota
	ErrUnterminatedString
	ErrUnterminatedChar
	ErrUnterminatedBlockComment
	ErrInvalidEscape
	ErrNumericOverflow
	ErrMalformedNumber
	ErrInvalidCharLiteral // not exactly one logical character
)

func (k LexicalErrorKind) String() string {
	switch k {
	case ErrUnknownCharacter:
		return "unknown character"
	case ErrUnterminatedString:
		return "unterminated string literal"
	case ErrUnterminatedChar:
		return "unterminated character literal"
	case ErrUnterminatedBlockComment:
		return "unterminated block comment"
	case ErrInvalidEscape:
		return "invalid escape sequence"
	case ErrNumericOverflow:
		return "numeric literal out of range"
	case ErrMalformedNumber:
		return "malformed numeric literal"
	case ErrInvalidCharLiteral:
		return "character literal is not exactly one character wide"
	default:
		return "lexical error"
	}
}

// LexicalError is fatal: the lexer never recovers and emits no further
// tokens past the one that failed.
type LexicalError struct {
	Kind    LexicalErrorKind
	Span    position.Span
	Message string
}

func (e *LexicalError) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Span, e.Kind, e.Message)
}

func newLexError(kind LexicalErrorKind, span position.Span, format string, args ...any) *LexicalError {
	return &LexicalError{Kind: kind, Span: span, Message: fmt.Sprintf(format, args...)}
}
