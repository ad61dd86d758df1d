package ast

import "github.com/lang-l/lc/internal/position"

// TypeDescriptor is the tagged variant over every shape a type can take:
// a bare name, an array, a reference, a raw pointer, or the self-type used
// only inside method parameter lists.
type TypeDescriptor interface {
	typeDescriptorNode()
	SpanOf() position.Span
}

// NamedType is a plain `TypeName` used as a type.
type NamedType struct {
	Name TypeName
	Span position.Span
}

func (*NamedType) typeDescriptorNode()     {}
func (t *NamedType) SpanOf() position.Span { return t.Span }

// ArrayType is `[T; N]`. Size is validated to fit u64 at parse time —
// overflow is an InvalidArraySize ParseError, not a later pass's concern.
type ArrayType struct {
	Of   TypeDescriptor
	Size uint64
	Span position.Span
}

func (*ArrayType) typeDescriptorNode()     {}
func (t *ArrayType) SpanOf() position.Span { return t.Span }

// RefType is `&T`, a shared reference.
type RefType struct {
	Of   TypeDescriptor
	Span position.Span
}

func (*RefType) typeDescriptorNode()     {}
func (t *RefType) SpanOf() position.Span { return t.Span }

// MutRefType is `&mut T`.
type MutRefType struct {
	Of   TypeDescriptor
	Span position.Span
}

func (*MutRefType) typeDescriptorNode()      {}
func (t *MutRefType) SpanOf() position.Span { return t.Span }

// ConstPtrType is `*const T`.
type ConstPtrType struct {
	Of   TypeDescriptor
	Span position.Span
}

func (*ConstPtrType) typeDescriptorNode()    {}
func (t *ConstPtrType) SpanOf() position.Span { return t.Span }

// MutPtrType is `*mut T`.
type MutPtrType struct {
	Of   TypeDescriptor
	Span position.Span
}

func (*MutPtrType) typeDescriptorNode()      {}
func (t *MutPtrType) SpanOf() position.Span { return t.Span }

// SelfType stands for `self`, `&self`, or `&mut self` in a method's
// parameter list — legal only as the first parameter of a method inside an
// Impl or ImplTrait block.
type SelfType struct {
	IsRef bool
	IsMut bool
	Span  position.Span
}

func (*SelfType) typeDescriptorNode()     {}
func (t *SelfType) SpanOf() position.Span { return t.Span }
