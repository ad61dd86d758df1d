package ast

// Visitor is implemented by callers that want to traverse a parsed tree.
// Each method returns a bool: returning false from a Visit* method skips
// that node's children (the walker itself handles recursion; visitors
// never recurse themselves).
type Visitor interface {
	VisitModule(m *Module) bool
	VisitItem(item ModuleDefItem) bool
	VisitStatement(stmt Statement) bool
	VisitExpression(expr Expression) bool
}

// Walk traverses unit's modules, items, statements, and expressions
// depth-first in source order, calling the matching Visitor method at
// each node.
func Walk(v Visitor, unit *CompilationUnit) {
	for _, m := range unit.Modules {
		walkModule(v, m)
	}
}

func walkModule(v Visitor, m *Module) {
	if !v.VisitModule(m) {
		return
	}
	for _, h := range m.Contents {
		walkItem(v, h.Get())
	}
}

func walkItem(v Visitor, item ModuleDefItem) {
	if !v.VisitItem(item) {
		return
	}
	switch it := item.(type) {
	case *ConstantDecl:
		walkExpr(v, it.Value)
	case *FunctionDef:
		for _, s := range it.Body {
			walkStmt(v, s)
		}
	case *ImplBlock:
		for i := range it.Methods {
			walkItem(v, &it.Methods[i])
		}
	case *ImplTraitBlock:
		for i := range it.Methods {
			walkItem(v, &it.Methods[i])
		}
	case *Module:
		walkModule(v, it)
	}
}

func walkStmt(v Visitor, stmt Statement) {
	if !v.VisitStatement(stmt) {
		return
	}
	switch s := stmt.(type) {
	case *LetStmt:
		walkExpr(v, s.Value)
	case *AssignStmt:
		walkExpr(v, s.Value)
	case *FnCallStmt:
		for _, a := range s.Call.Args {
			walkExpr(v, a)
		}
	case *PathOpStmt:
		walkPath(v, s.Path)
	case *ReturnStmt:
		if s.Value != nil {
			walkExpr(v, s.Value)
		}
	case *MatchExpr:
		walkMatch(v, s)
	case *IfExpr:
		walkIf(v, s)
	case *WhileStmt:
		walkExpr(v, s.Cond)
		for _, b := range s.Body {
			walkStmt(v, b)
		}
	case *ForStmt:
		if s.Init != nil {
			walkStmt(v, s.Init)
		}
		if s.Cond != nil {
			walkExpr(v, s.Cond)
		}
		if s.Post != nil {
			walkStmt(v, s.Post)
		}
		for _, b := range s.Body {
			walkStmt(v, b)
		}
	}
}

func walkMatch(v Visitor, m *MatchExpr) {
	walkExpr(v, m.Scrutinee)
	for _, variant := range m.Variants {
		for _, b := range variant.Body {
			walkStmt(v, b)
		}
	}
}

func walkIf(v Visitor, e *IfExpr) {
	walkExpr(v, e.Cond)
	for _, s := range e.Then {
		walkStmt(v, s)
	}
	for _, s := range e.Else {
		walkStmt(v, s)
	}
}

func walkPath(v Visitor, p PathOp) {
	for _, seg := range p.Extra {
		if mc, ok := seg.(*MethodCallSegment); ok {
			for _, a := range mc.Call.Args {
				walkExpr(v, a)
			}
		}
		if ix, ok := seg.(*ArrayIndexSegment); ok {
			walkExpr(v, ix.Index)
		}
	}
}

func walkExpr(v Visitor, expr Expression) {
	if expr == nil || !v.VisitExpression(expr) {
		return
	}
	switch e := expr.(type) {
	case *ParenExpr:
		walkExpr(v, e.Inner)
	case *FnCallExpr:
		for _, a := range e.Call.Args {
			walkExpr(v, a)
		}
	case *AssocMethodCallExpr:
		for _, a := range e.Call.Args {
			walkExpr(v, a)
		}
	case *StructInitExpr:
		for _, f := range e.Fields {
			walkExpr(v, f.Value)
		}
	case *EnumInitExpr:
		for _, f := range e.Fields {
			walkExpr(v, f.Value)
		}
	case *ArrayInitExpr:
		for _, el := range e.Elements {
			walkExpr(v, el)
		}
	case *PathExpr:
		walkPath(v, e.Path)
	case *AsRefExpr:
		walkExpr(v, e.Operand)
	case *DerefExpr:
		walkExpr(v, e.Operand)
	case *UnaryOpExpr:
		walkExpr(v, e.Operand)
	case *BinaryOpExpr:
		walkExpr(v, e.Lhs)
		walkExpr(v, e.Rhs)
	case *CastExpr:
		walkExpr(v, e.Operand)
	case *MatchExpr:
		walkMatch(v, e)
	case *IfExpr:
		walkIf(v, e)
	}
}
