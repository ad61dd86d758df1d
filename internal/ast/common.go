package ast

import "github.com/lang-l/lc/internal/position"

// Ident is a name together with the span it was written at. Keywords
// accepted in identifier position (self, notably) are normalized into an
// Ident carrying their textual form.
type Ident struct {
	Name string
	Span position.Span
}

// DocString is one or more consecutive doc-comment lines merged into a
// single node, attached to the item that immediately follows them.
type DocString struct {
	Contents []string
	Span     position.Span
}

// Attribute is a `#[name]` or `#[name = "value"]` annotation. The parser
// records it verbatim on struct, union and enum declarations; attributes
// written before any other item are parsed and then dropped, so
// FunctionDecl.Attributes is never populated. Interpreting attributes is a
// later pass's job.
type Attribute struct {
	Name  string
	Value *string
	Span  position.Span
}

// GenericParam is one type parameter of a generic item, with its
// `+`-separated trait bounds.
type GenericParam struct {
	Name   Ident
	Bounds []TypeName
	Span   position.Span
}

// TypeName is a possibly-qualified name plus optional generic arguments.
// The surface syntax differs by position — type position writes `A::B<T>`,
// value/use position writes the turbofish form `A::B::<T>` — but both
// resolve to the same TypeName shape once parsed.
type TypeName struct {
	Path     []Ident
	Name     Ident
	Generics []TypeDescriptor
	Span     position.Span
}
