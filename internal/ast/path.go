package ast

import "github.com/lang-l/lc/internal/position"

// FnCallOp is a call site: a possibly-qualified target path, optional
// turbofish generics, and an argument list. It backs free function calls,
// method-call path segments, and the call half of an associated-method
// call — the three places the grammar parses "name(...)" shaped syntax.
type FnCallOp struct {
	Path     []Ident // qualifying segments plus the callee name, in order
	Generics []TypeDescriptor
	Args     []Expression
	Span     position.Span
}

// PathSegment is one link appended after the head of a PathOp: a field
// access, a method call, or an array index.
type PathSegment interface {
	pathSegmentNode()
	SpanOf() position.Span
}

// FieldAccessSegment is `.field`.
type FieldAccessSegment struct {
	Field Ident
	Span  position.Span
}

func (*FieldAccessSegment) pathSegmentNode()      {}
func (s *FieldAccessSegment) SpanOf() position.Span { return s.Span }

// MethodCallSegment is `.method(args)` or `.method::<T>(args)`.
type MethodCallSegment struct {
	Call FnCallOp
	Span position.Span
}

func (*MethodCallSegment) pathSegmentNode()       {}
func (s *MethodCallSegment) SpanOf() position.Span { return s.Span }

// ArrayIndexSegment is `[index]`.
type ArrayIndexSegment struct {
	Index Expression
	Span  position.Span
}

func (*ArrayIndexSegment) pathSegmentNode()       {}
func (s *ArrayIndexSegment) SpanOf() position.Span { return s.Span }

// PathOp is an identifier followed by zero or more field/method/index
// segments, e.g. `self.a.b(1)[2]`.
type PathOp struct {
	First Ident
	Extra []PathSegment
	Span  position.Span
}
