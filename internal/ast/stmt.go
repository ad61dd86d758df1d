package ast

import "github.com/lang-l/lc/internal/position"

// Statement is the tagged variant over every statement shape: Let, Assign,
// FnCall, PathOp (an expression-statement that discards its value), Return,
// Match, If, While, and For.
type Statement interface {
	stmtNode()
	SpanOf() position.Span
}

// LetStmt binds a name to one of the four RHS productions the grammar
// allows in this position: a general Expression, a StructInitExpr, an
// AssocMethodCallExpr, or an EnumInitExpr — all of which satisfy
// Expression, so Value's static type already captures the restriction.
type LetStmt struct {
	IsMut bool
	Name  Ident
	Type  TypeDescriptor
	Value Expression
	Span  position.Span
}

func (*LetStmt) stmtNode()                {}
func (s *LetStmt) SpanOf() position.Span { return s.Span }

// AssignStmt is `*^n lvalue = rhs`. Derefs records how many leading `*`
// tokens preceded the l-value path.
type AssignStmt struct {
	Derefs int
	Target PathOp
	Value  Expression
	Span   position.Span
}

func (*AssignStmt) stmtNode()                {}
func (s *AssignStmt) SpanOf() position.Span { return s.Span }

// FnCallStmt is a free function call used as a statement, its result
// discarded.
type FnCallStmt struct {
	Call FnCallOp
	Span position.Span
}

func (*FnCallStmt) stmtNode()                {}
func (s *FnCallStmt) SpanOf() position.Span { return s.Span }

// PathOpStmt is a path expression (field access / method chain / index)
// used as a statement, its result discarded.
type PathOpStmt struct {
	Path PathOp
	Span position.Span
}

func (*PathOpStmt) stmtNode()                {}
func (s *PathOpStmt) SpanOf() position.Span { return s.Span }

// ReturnStmt is `return;` or `return expr;`.
type ReturnStmt struct {
	Value Expression // nil for a bare `return;`
	Span  position.Span
}

func (*ReturnStmt) stmtNode()                {}
func (s *ReturnStmt) SpanOf() position.Span { return s.Span }
