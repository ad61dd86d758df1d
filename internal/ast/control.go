package ast

import "github.com/lang-l/lc/internal/position"

// MatchExpr is both a statement and an expression — `match` can stand on
// its own as a statement body or be used for its value — so it implements
// both Expression and Statement directly rather than being wrapped twice.
type MatchExpr struct {
	Scrutinee Expression
	Variants  []MatchVariant
	Span      position.Span
}

func (*MatchExpr) exprNode()               {}
func (*MatchExpr) stmtNode()                {}
func (e *MatchExpr) SpanOf() position.Span { return e.Span }

// MatchVariant is one arm: either a value pattern or an enum pattern that
// binds the variant's field names, followed by a single statement or a
// block of statements.
type MatchVariant struct {
	ValuePattern Expression     // set when this arm matches by value
	EnumPattern  *EnumMatchExpr // set when this arm matches an enum variant
	Body         []Statement
	Span         position.Span
}

// EnumMatchExpr is `TypeNameUse#Variant` or `TypeNameUse#Variant { a, b }`,
// binding the listed field names into the arm's body.
type EnumMatchExpr struct {
	Type    TypeName
	Variant Ident
	Binds   []Ident
	Span    position.Span
}

// IfExpr is `if cond { ... } else { ... }`. There is no syntactic
// `else if` chain — a cascaded condition is written `else { if ... }`.
type IfExpr struct {
	Cond Expression
	Then []Statement
	Else []Statement // nil when no else clause was written
	Span position.Span
}

func (*IfExpr) exprNode()               {}
func (*IfExpr) stmtNode()                {}
func (e *IfExpr) SpanOf() position.Span { return e.Span }

// ForKind discriminates the three `for` productions the grammar allows.
type ForKind int

const (
	ForCStyle  ForKind = iota // for (init?; cond?; post?) { ... }
	ForCond                   // for (cond) { ... }
	ForInfinite                // for { ... }
)

// ForStmt covers all three `for` productions. Fields not used by Kind are
// nil/empty.
type ForStmt struct {
	Kind ForKind
	Init Statement  // ForCStyle only, may be nil
	Cond Expression // ForCStyle, ForCond; nil for ForInfinite and an omitted ForCStyle condition
	Post Statement  // ForCStyle only, may be nil
	Body []Statement
	Span position.Span
}

func (*ForStmt) stmtNode()                {}
func (s *ForStmt) SpanOf() position.Span { return s.Span }

// WhileStmt is `while cond { ... }`.
type WhileStmt struct {
	Cond Expression
	Body []Statement
	Span position.Span
}

func (*WhileStmt) stmtNode()                {}
func (s *WhileStmt) SpanOf() position.Span { return s.Span }
