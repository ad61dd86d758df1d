package parser_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lang-l/lc/internal/ast"
	"github.com/lang-l/lc/internal/parser"
)

func firstItem(t *testing.T, unit *ast.CompilationUnit) ast.ModuleDefItem {
	t.Helper()
	require.Len(t, unit.Modules, 1)
	require.Len(t, unit.Modules[0].Contents, 1)
	return unit.Modules[0].Contents[0].Get()
}

func TestEmptyModule(t *testing.T) {
	unit, err := parser.Parse("t.l", "mod a {}")
	require.NoError(t, err)
	require.Len(t, unit.Modules, 1)
	assert.Equal(t, "a", unit.Modules[0].Name.Name)
	assert.Empty(t, unit.Modules[0].Contents)
}

func TestPrecedenceAddBeforeMul(t *testing.T) {
	src := `mod a { fn f() -> i32 { return 1 + 2 * 3; } }`
	unit, err := parser.Parse("t.l", src)
	require.NoError(t, err)

	item := firstItem(t, unit)
	def, ok := item.(*ast.FunctionDef)
	require.True(t, ok)
	require.Len(t, def.Body, 1)

	ret, ok := def.Body[0].(*ast.ReturnStmt)
	require.True(t, ok)

	outer, ok := ret.Value.(*ast.BinaryOpExpr)
	require.True(t, ok)
	assert.Equal(t, ast.OpAdd, outer.Op)

	lhs, ok := outer.Lhs.(*ast.ValueExpr)
	require.True(t, ok)
	assert.Equal(t, big.NewInt(1), lhs.Int)

	rhs, ok := outer.Rhs.(*ast.BinaryOpExpr)
	require.True(t, ok)
	assert.Equal(t, ast.OpMul, rhs.Op)

	two, ok := rhs.Lhs.(*ast.ValueExpr)
	require.True(t, ok)
	assert.Equal(t, big.NewInt(2), two.Int)
	three, ok := rhs.Rhs.(*ast.ValueExpr)
	require.True(t, ok)
	assert.Equal(t, big.NewInt(3), three.Int)
}

func TestTurbofishCallVsComparison(t *testing.T) {
	unit, err := parser.Parse("t.l", `mod a { const X: i32 = f::<i32>(1); }`)
	require.NoError(t, err)
	decl, ok := firstItem(t, unit).(*ast.ConstantDecl)
	require.True(t, ok)
	call, ok := decl.Value.(*ast.FnCallExpr)
	require.True(t, ok)
	assert.Equal(t, []string{"f"}, identNames(call.Call.Path))
	require.Len(t, call.Call.Generics, 1)
	require.Len(t, call.Call.Args, 1)

	unit2, err := parser.Parse("t.l", `mod a { const X: bool = a < b; }`)
	require.NoError(t, err)
	decl2, ok := firstItem(t, unit2).(*ast.ConstantDecl)
	require.True(t, ok)
	cmp, ok := decl2.Value.(*ast.BinaryOpExpr)
	require.True(t, ok)
	assert.Equal(t, ast.OpLt, cmp.Op)
}

func identNames(ids []ast.Ident) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.Name
	}
	return out
}

func TestGenericParamsWithBounds(t *testing.T) {
	src := `mod a { fn g<T: Add + Copy>(x: T) -> T { return x; } }`
	unit, err := parser.Parse("t.l", src)
	require.NoError(t, err)
	def, ok := firstItem(t, unit).(*ast.FunctionDef)
	require.True(t, ok)
	require.Len(t, def.Decl.GenericParams, 1)
	gp := def.Decl.GenericParams[0]
	assert.Equal(t, "T", gp.Name.Name)
	require.Len(t, gp.Bounds, 2)
	assert.Equal(t, "Add", gp.Bounds[0].Name.Name)
	assert.Equal(t, "Copy", gp.Bounds[1].Name.Name)
}

func TestEnumWithPayloadsAndMatch(t *testing.T) {
	src := `mod a {
		enum E { A { x: i32 }, B }
		fn f(e: E) -> i32 {
			match e {
				E#A { x } => { return x; },
				E#B => { return 0; },
			}
			return 0;
		}
	}`
	unit, err := parser.Parse("t.l", src)
	require.NoError(t, err)
	require.Len(t, unit.Modules[0].Contents, 2)

	enumDecl, ok := unit.Modules[0].Contents[0].Get().(*ast.EnumDecl)
	require.True(t, ok)
	require.Len(t, enumDecl.Variants, 2)
	assert.Equal(t, "A", enumDecl.Variants[0].Name.Name)
	require.Len(t, enumDecl.Variants[0].Fields, 1)
	assert.Equal(t, "B", enumDecl.Variants[1].Name.Name)
	assert.Empty(t, enumDecl.Variants[1].Fields)

	def, ok := unit.Modules[0].Contents[1].Get().(*ast.FunctionDef)
	require.True(t, ok)
	match, ok := def.Body[0].(*ast.MatchExpr)
	require.True(t, ok)
	require.Len(t, match.Variants, 2)

	first := match.Variants[0]
	require.NotNil(t, first.EnumPattern)
	assert.Equal(t, "A", first.EnumPattern.Variant.Name)
	require.Len(t, first.EnumPattern.Binds, 1)
	assert.Equal(t, "x", first.EnumPattern.Binds[0].Name)

	second := match.Variants[1]
	require.NotNil(t, second.EnumPattern)
	assert.Equal(t, "B", second.EnumPattern.Variant.Name)
	assert.Empty(t, second.EnumPattern.Binds)
}

func TestImplMethodWithMutSelf(t *testing.T) {
	src := `mod a { impl A { pub fn set(&mut self, v: i32) { self.a = v; } } }`
	unit, err := parser.Parse("t.l", src)
	require.NoError(t, err)

	impl, ok := firstItem(t, unit).(*ast.ImplBlock)
	require.True(t, ok)
	require.Len(t, impl.Methods, 1)

	method := impl.Methods[0]
	require.Len(t, method.Decl.Params, 2)

	self, ok := method.Decl.Params[0].Type.(*ast.SelfType)
	require.True(t, ok)
	assert.True(t, self.IsRef)
	assert.True(t, self.IsMut)

	require.Len(t, method.Body, 1)
	assign, ok := method.Body[0].(*ast.AssignStmt)
	require.True(t, ok)
	assert.Equal(t, 0, assign.Derefs)
	assert.Equal(t, "self", assign.Target.First.Name)
}

func TestSpansNestInsideParent(t *testing.T) {
	unit, err := parser.Parse("t.l", `mod a { const X: i32 = 1 + 2; }`)
	require.NoError(t, err)
	m := unit.Modules[0]
	item := m.Contents[0].Get()
	assert.True(t, m.Span.ContainsSpan(item.SpanOf()))

	decl := item.(*ast.ConstantDecl)
	assert.True(t, decl.Span.ContainsSpan(decl.Value.SpanOf()))
}

func TestStructInitOnlyLegalAsRHSOrParenthesized(t *testing.T) {
	_, err := parser.Parse("t.l", `mod a { fn f() { if Point { x: 1, y: 2 } { return; } } }`)
	require.Error(t, err)

	unit, err := parser.Parse("t.l", `mod a { const P: Point = Point { x: 1, y: 2 }; }`)
	require.NoError(t, err)
	decl, ok := firstItem(t, unit).(*ast.ConstantDecl)
	require.True(t, ok)
	_, ok = decl.Value.(*ast.StructInitExpr)
	require.True(t, ok)
}

func TestExternalModuleDeclaration(t *testing.T) {
	unit, err := parser.Parse("t.l", `mod a { mod b; }`)
	require.NoError(t, err)
	ext, ok := unit.Modules[0].Contents[0].Get().(*ast.ExternalModuleDecl)
	require.True(t, ok)
	assert.Equal(t, "b", ext.Name.Name)
}

func TestImplTraitForBlock(t *testing.T) {
	src := `mod a { impl Show for Point { fn show(&self) -> i32 { return 0; } } }`
	unit, err := parser.Parse("t.l", src)
	require.NoError(t, err)
	impl, ok := firstItem(t, unit).(*ast.ImplTraitBlock)
	require.True(t, ok)
	assert.Equal(t, "Show", impl.TargetTrait.Name.Name)
	named, ok := impl.Target.(*ast.NamedType)
	require.True(t, ok)
	assert.Equal(t, "Point", named.Name.Name.Name)
	require.Len(t, impl.Methods, 1)
}

func TestZeroDerefAssignmentStatement(t *testing.T) {
	for _, src := range []string{
		`mod a { fn f() { let mut x: i32 = 0; x = 5; } }`,
		`mod a { fn f(arr: [i32; 4]) { arr[0] = 1; } }`,
	} {
		unit, err := parser.Parse("t.l", src)
		require.NoError(t, err, src)
		def, ok := firstItem(t, unit).(*ast.FunctionDef)
		require.True(t, ok)
		assign, ok := def.Body[len(def.Body)-1].(*ast.AssignStmt)
		require.True(t, ok)
		assert.Equal(t, 0, assign.Derefs)
	}
}

func TestSelfRejectedOutsideMethod(t *testing.T) {
	_, err := parser.Parse("t.l", `mod a { fn f(self) -> i32 { return 0; } }`)
	require.Error(t, err)

	_, err = parser.Parse("t.l", `mod a { fn f(&self) -> i32 { return 0; } }`)
	require.Error(t, err)

	_, err = parser.Parse("t.l", `mod a { fn f(&mut self) -> i32 { return 0; } }`)
	require.Error(t, err)
}

func TestIdentHeadedRHSClimbsPrecedence(t *testing.T) {
	unit, err := parser.Parse("t.l", `mod a { fn f() { let x: i32 = a + b; } }`)
	require.NoError(t, err)
	def, ok := firstItem(t, unit).(*ast.FunctionDef)
	require.True(t, ok)
	let, ok := def.Body[0].(*ast.LetStmt)
	require.True(t, ok)
	bin, ok := let.Value.(*ast.BinaryOpExpr)
	require.True(t, ok)
	assert.Equal(t, ast.OpAdd, bin.Op)

	unit2, err := parser.Parse("t.l", `mod a { fn f() -> bool { return a == b; } }`)
	require.NoError(t, err)
	def2, ok := firstItem(t, unit2).(*ast.FunctionDef)
	require.True(t, ok)
	ret, ok := def2.Body[0].(*ast.ReturnStmt)
	require.True(t, ok)
	bin2, ok := ret.Value.(*ast.BinaryOpExpr)
	require.True(t, ok)
	assert.Equal(t, ast.OpEq, bin2.Op)

	unit3, err := parser.Parse("t.l", `mod a { fn f() { for (let mut i: i32 = 0; i < 3; i = i + 1) { } } }`)
	require.NoError(t, err)
	def3, ok := firstItem(t, unit3).(*ast.FunctionDef)
	require.True(t, ok)
	forStmt, ok := def3.Body[0].(*ast.ForStmt)
	require.True(t, ok)
	post, ok := forStmt.Post.(*ast.AssignStmt)
	require.True(t, ok)
	bin3, ok := post.Value.(*ast.BinaryOpExpr)
	require.True(t, ok)
	assert.Equal(t, ast.OpAdd, bin3.Op)
}

func TestParenthesizedIdentHeadedComparison(t *testing.T) {
	unit, err := parser.Parse("t.l", `mod a { fn f() -> bool { return (a < b); } }`)
	require.NoError(t, err)
	def, ok := firstItem(t, unit).(*ast.FunctionDef)
	require.True(t, ok)
	ret, ok := def.Body[0].(*ast.ReturnStmt)
	require.True(t, ok)
	paren, ok := ret.Value.(*ast.ParenExpr)
	require.True(t, ok)
	bin, ok := paren.Inner.(*ast.BinaryOpExpr)
	require.True(t, ok)
	assert.Equal(t, ast.OpLt, bin.Op)
}

func TestSelfLegalInTraitMethodSignature(t *testing.T) {
	unit, err := parser.Parse("t.l", `mod a { trait Show { fn show(&self) -> i32 ; } }`)
	require.NoError(t, err)
	trait, ok := firstItem(t, unit).(*ast.TraitDecl)
	require.True(t, ok)
	require.Len(t, trait.Methods, 1)
	self, ok := trait.Methods[0].Params[0].Type.(*ast.SelfType)
	require.True(t, ok)
	assert.True(t, self.IsRef)
}
