package ast_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lang-l/lc/internal/ast"
	"github.com/lang-l/lc/internal/position"
)

func span(sf *position.SourceFile, lo, hi int) position.Span {
	return position.NewSpan(sf, lo, hi)
}

func TestHandleSharesUnderlyingNode(t *testing.T) {
	sf := position.NewSourceFile("t.l", "struct S {}")
	decl := &ast.StructDecl{Name: ast.Ident{Name: "S"}, Span: span(sf, 0, 11)}

	h1 := ast.NewHandle[ast.ModuleDefItem](decl)
	h2 := h1

	got, ok := h2.Get().(*ast.StructDecl)
	require.True(t, ok)
	assert.Same(t, decl, got)
}

func TestModuleContentsSpanContainedInParent(t *testing.T) {
	sf := position.NewSourceFile("t.l", "mod a { struct S {} }")
	moduleSpan := span(sf, 0, len(sf.Content))
	itemSpan := span(sf, 8, 20)

	item := &ast.StructDecl{Name: ast.Ident{Name: "S"}, Span: itemSpan}
	m := &ast.Module{
		Name:     ast.Ident{Name: "a"},
		Contents: []ast.Handle[ast.ModuleDefItem]{ast.NewHandle[ast.ModuleDefItem](item)},
		FilePath: "t.l",
		Span:     moduleSpan,
	}

	require.Len(t, m.Contents, 1)
	assert.True(t, m.Span.ContainsSpan(m.Contents[0].Get().SpanOf()))
}

func TestWalkVisitsNestedExpressions(t *testing.T) {
	sf := position.NewSourceFile("t.l", "fn f() { return 1 + 2; }")

	lit1 := &ast.ValueExpr{Kind: ast.ValueInteger, Int: big.NewInt(1), Span: span(sf, 16, 17)}
	lit2 := &ast.ValueExpr{Kind: ast.ValueInteger, Int: big.NewInt(2), Span: span(sf, 20, 21)}
	add := &ast.BinaryOpExpr{Lhs: lit1, Op: ast.OpAdd, Rhs: lit2, Span: span(sf, 16, 21)}
	ret := &ast.ReturnStmt{Value: add, Span: span(sf, 9, 22)}

	fn := &ast.FunctionDef{
		Decl: ast.FunctionDecl{Name: ast.Ident{Name: "f"}, Span: span(sf, 0, 8)},
		Body: []ast.Statement{ret},
		Span: span(sf, 0, len(sf.Content)),
	}
	m := &ast.Module{
		Name:     ast.Ident{Name: "root"},
		Contents: []ast.Handle[ast.ModuleDefItem]{ast.NewHandle[ast.ModuleDefItem](fn)},
		Span:     span(sf, 0, len(sf.Content)),
	}
	unit := &ast.CompilationUnit{FilePath: "t.l", Modules: []*ast.Module{m}}

	var visitedBinary, visitedInts int
	v := &countingVisitor{
		onExpr: func(e ast.Expression) bool {
			switch e.(type) {
			case *ast.BinaryOpExpr:
				visitedBinary++
			case *ast.ValueExpr:
				visitedInts++
			}
			return true
		},
	}
	ast.Walk(v, unit)

	assert.Equal(t, 1, visitedBinary)
	assert.Equal(t, 2, visitedInts)
}

type countingVisitor struct {
	onExpr func(ast.Expression) bool
}

func (c *countingVisitor) VisitModule(*ast.Module) bool         { return true }
func (c *countingVisitor) VisitItem(ast.ModuleDefItem) bool     { return true }
func (c *countingVisitor) VisitStatement(ast.Statement) bool    { return true }
func (c *countingVisitor) VisitExpression(e ast.Expression) bool {
	if c.onExpr != nil {
		return c.onExpr(e)
	}
	return true
}
