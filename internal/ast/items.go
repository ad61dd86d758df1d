package ast

import "github.com/lang-l/lc/internal/position"

// ModuleDefItem is the tagged variant over everything that can appear
// inside a module body. Every variant is produced wrapped in a Handle so
// downstream symbol tables can share the same node.
type ModuleDefItem interface {
	moduleDefItemNode()
	SpanOf() position.Span
}

func (*ConstantDecl) moduleDefItemNode()        {}
func (d *ConstantDecl) SpanOf() position.Span   { return d.Span }

func (*StructDecl) moduleDefItemNode()        {}
func (d *StructDecl) SpanOf() position.Span  { return d.Span }

func (*UnionDecl) moduleDefItemNode()       {}
func (d *UnionDecl) SpanOf() position.Span { return d.Span }

func (*EnumDecl) moduleDefItemNode()       {}
func (d *EnumDecl) SpanOf() position.Span { return d.Span }

func (*FunctionDef) moduleDefItemNode()       {}
func (d *FunctionDef) SpanOf() position.Span { return d.Span }

func (*FunctionDecl) moduleDefItemNode()       {}
func (d *FunctionDecl) SpanOf() position.Span { return d.Span }

func (*TraitDecl) moduleDefItemNode()       {}
func (d *TraitDecl) SpanOf() position.Span { return d.Span }

func (*TypeAliasDecl) moduleDefItemNode()       {}
func (d *TypeAliasDecl) SpanOf() position.Span { return d.Span }

func (*ImplBlock) moduleDefItemNode()       {}
func (d *ImplBlock) SpanOf() position.Span { return d.Span }

func (*ImplTraitBlock) moduleDefItemNode()       {}
func (d *ImplTraitBlock) SpanOf() position.Span { return d.Span }

func (*Module) moduleDefItemNode()       {}
func (d *Module) SpanOf() position.Span { return d.Span }

func (*ExternalModuleDecl) moduleDefItemNode()       {}
func (d *ExternalModuleDecl) SpanOf() position.Span { return d.Span }

func (*ImportDecl) moduleDefItemNode()       {}
func (d *ImportDecl) SpanOf() position.Span { return d.Span }

// Module is `mod name { ... }`: a named collection of items, optionally
// documented, always associated with the file it was parsed from.
type Module struct {
	DocString *DocString
	IsPub     bool
	Name      Ident
	Contents  []Handle[ModuleDefItem]
	FilePath  string
	Span      position.Span
}

// CompilationUnit is the result of parsing one file: the top-level
// modules it declares, in source order. Only ModuleDefItem entries need
// the shared-ownership Handle — a Module itself is owned solely by its
// CompilationUnit.
type CompilationUnit struct {
	FilePath string
	Modules  []*Module
}
