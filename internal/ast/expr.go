package ast

import (
	"math/big"

	"github.com/lang-l/lc/internal/position"
)

// Expression is the tagged variant over every expression shape. See
// §4.2's precedence table in the grammar this package implements: Value,
// ParenExpr, FnCall, Match, If, StructInit, EnumInit, AssocMethodCall,
// ArrayInit, and Path are atoms (level 0); AsRef, Deref, and UnaryOp are
// the prefix forms (level 1); BinaryOp carries every infix operator
// (levels 2 through 4); Cast is the lowest-precedence form (level 5).
type Expression interface {
	exprNode()
	SpanOf() position.Span
}

// BinaryOperator enumerates every infix operator, spanning precedence
// levels 2 through 4.
type BinaryOperator int

const (
	OpEq BinaryOperator = iota
	OpNe
	OpLt
	OpGt
	OpLe
	OpGe
	OpAndAnd
	OpOrOr
	OpMul
	OpDiv
	OpRem
	OpAdd
	OpSub
	OpBitAnd
	OpBitOr
	OpBitXor
)

// UnaryOperator enumerates the prefix operators `-`, `!`, and `~`.
type UnaryOperator int

const (
	OpNeg UnaryOperator = iota
	OpNot
	OpBitNot
)

// ValueExpr is a literal atom: the lexer already decoded everything it
// can (integers to big.Int, characters to rune, booleans to bool); floats
// and the rest keep their lexical spelling per the consumer contract.
type ValueExpr struct {
	Kind ValueKind

	Int    *big.Int // ValueInteger
	Float  string    // ValueFloat, raw source text, decimal parsing deferred
	Str    string    // ValueString, raw text between quotes
	Char   rune      // ValueChar
	Bool   bool      // ValueBoolean

	Span position.Span
}

// ValueKind discriminates which field of ValueExpr is live.
type ValueKind int

const (
	ValueInteger ValueKind = iota
	ValueFloat
	ValueString
	ValueChar
	ValueBoolean
)

func (*ValueExpr) exprNode()             {}
func (e *ValueExpr) SpanOf() position.Span { return e.Span }

// ParenExpr is an explicitly parenthesized subexpression, kept as its own
// node (rather than unwrapped) so re-emitting spans reproduces the source.
type ParenExpr struct {
	Inner Expression
	Span  position.Span
}

func (*ParenExpr) exprNode()             {}
func (e *ParenExpr) SpanOf() position.Span { return e.Span }

// FnCallExpr is a free function call, e.g. `mod::f::<T>(1, 2)`.
type FnCallExpr struct {
	Call FnCallOp
	Span position.Span
}

func (*FnCallExpr) exprNode()             {}
func (e *FnCallExpr) SpanOf() position.Span { return e.Span }

// AssocMethodCallExpr is `TypeName#method(args)` — a call on a type, not a
// value, written with `#` to sidestep the grammar ambiguity `::` would
// introduce against path-with-generics. Preserve the `#` form; it is not a
// stand-in for `::`.
type AssocMethodCallExpr struct {
	Type TypeName
	Call FnCallOp
	Span position.Span
}

func (*AssocMethodCallExpr) exprNode()             {}
func (e *AssocMethodCallExpr) SpanOf() position.Span { return e.Span }

// FieldInit is one `name: value` entry of a struct or enum-variant
// initializer, kept in the order written.
type FieldInit struct {
	Name  Ident
	Value Expression
	Span  position.Span
}

// StructInitExpr is `TypeNameUse { field: value, ... }`.
type StructInitExpr struct {
	Type   TypeName
	Fields []FieldInit
	Span   position.Span
}

func (*StructInitExpr) exprNode()             {}
func (e *StructInitExpr) SpanOf() position.Span { return e.Span }

// EnumInitExpr is `TypeNameUse#Variant` or `TypeNameUse#Variant { ... }`.
type EnumInitExpr struct {
	Type    TypeName
	Variant Ident
	Fields  []FieldInit
	Span    position.Span
}

func (*EnumInitExpr) exprNode()             {}
func (e *EnumInitExpr) SpanOf() position.Span { return e.Span }

// ArrayInitExpr is `[e1, e2, ...]`.
type ArrayInitExpr struct {
	Elements []Expression
	Span     position.Span
}

func (*ArrayInitExpr) exprNode()             {}
func (e *ArrayInitExpr) SpanOf() position.Span { return e.Span }

// PathExpr is a value-position path: an identifier followed by field
// accesses, method calls, and indexing.
type PathExpr struct {
	Path PathOp
	Span position.Span
}

func (*PathExpr) exprNode()             {}
func (e *PathExpr) SpanOf() position.Span { return e.Span }

// AsRefExpr is prefix `&expr` or `&mut expr`.
type AsRefExpr struct {
	Operand Expression
	IsMut   bool
	Span    position.Span
}

func (*AsRefExpr) exprNode()             {}
func (e *AsRefExpr) SpanOf() position.Span { return e.Span }

// DerefExpr is prefix `*expr`.
type DerefExpr struct {
	Operand Expression
	Span    position.Span
}

func (*DerefExpr) exprNode()             {}
func (e *DerefExpr) SpanOf() position.Span { return e.Span }

// UnaryOpExpr is a prefix `-`, `!`, or `~` applied to an operand.
type UnaryOpExpr struct {
	Op      UnaryOperator
	Operand Expression
	Span    position.Span
}

func (*UnaryOpExpr) exprNode()             {}
func (e *UnaryOpExpr) SpanOf() position.Span { return e.Span }

// BinaryOpExpr is an infix operator application at precedence levels 2-4.
type BinaryOpExpr struct {
	Lhs  Expression
	Op   BinaryOperator
	Rhs  Expression
	Span position.Span
}

func (*BinaryOpExpr) exprNode()             {}
func (e *BinaryOpExpr) SpanOf() position.Span { return e.Span }

// CastExpr is `expr as T`, the lowest-precedence form: `a + b as U` parses
// as `(a + b) as U`, intentionally lower than arithmetic.
type CastExpr struct {
	Operand Expression
	Type    TypeDescriptor
	Span    position.Span
}

func (*CastExpr) exprNode()             {}
func (e *CastExpr) SpanOf() position.Span { return e.Span }
