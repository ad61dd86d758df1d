package ast

import "github.com/lang-l/lc/internal/position"

// Field is one `name: TypeDescriptor` entry of a struct, union, or
// enum-variant field list.
type Field struct {
	Name Ident
	Type TypeDescriptor
	Span position.Span
}

// StructDecl is `struct Name<T> { field: T, ... }`.
type StructDecl struct {
	DocString  *DocString
	Attributes []Attribute
	IsPub      bool
	Name       Ident
	Generics   []GenericParam
	Fields     []Field
	Span       position.Span
}

// UnionDecl is `union Name<T> { field: T, ... }`.
type UnionDecl struct {
	DocString  *DocString
	Attributes []Attribute
	IsPub      bool
	Name       Ident
	Generics   []GenericParam
	Fields     []Field
	Span       position.Span
}

// EnumVariant is one arm of an enum: a bare name, or a name with a
// struct-like field list, and optionally an explicit discriminant.
type EnumVariant struct {
	Name          Ident
	Fields        []Field // nil for a bare variant
	Discriminant  Expression // nil when not written
	Span          position.Span
}

// EnumDecl is `enum Name<T> { Variant, Variant { field: T }, ... }`.
type EnumDecl struct {
	DocString  *DocString
	Attributes []Attribute
	IsPub      bool
	Name       Ident
	Generics   []GenericParam
	Variants   []EnumVariant
	Span       position.Span
}

// Param is one function parameter: either a named, typed parameter or a
// `self`-typed receiver. SelfType legality (first parameter only, only
// inside Impl/ImplTrait methods) is enforced by the parser, not deferred.
type Param struct {
	Name Ident
	Type TypeDescriptor
	Span position.Span
}

// FunctionDecl is a function signature with no body — used for extern
// declarations and trait-required methods.
type FunctionDecl struct {
	DocString    *DocString
	Attributes   []Attribute
	IsPub        bool
	IsExtern     bool
	Name         Ident
	GenericParams []GenericParam
	Params       []Param
	RetType      TypeDescriptor // nil when no `-> T` was written
	Span         position.Span
}

// FunctionDef is a FunctionDecl plus the body of statements that gives it
// an implementation.
type FunctionDef struct {
	Decl FunctionDecl
	Body []Statement
	Span position.Span
}

// ImplBlock is `impl TypeDescriptor { methods... }`.
type ImplBlock struct {
	Target        TypeDescriptor
	GenericParams []GenericParam
	Methods       []FunctionDef
	Span          position.Span
}

// ImplTraitBlock is `impl Trait for TypeDescriptor { ... }`.
type ImplTraitBlock struct {
	TargetTrait      TypeName
	Target           TypeDescriptor
	GenericParams    []GenericParam
	AssociatedTypes  []TypeAliasDecl
	Methods          []FunctionDef
	Span             position.Span
}

// TypeAliasDecl is `type Name<T> = TypeDescriptor;`, used both as a
// top-level item and as an associated type inside a trait or impl block.
type TypeAliasDecl struct {
	DocString *DocString
	IsPub     bool
	Name      Ident
	Generics  []GenericParam
	Target    TypeDescriptor // nil for an associated type left abstract in a trait
	Span      position.Span
}

// TraitDecl is `trait Name<T> { type Assoc; fn method(...) -> T; }`.
type TraitDecl struct {
	DocString        *DocString
	IsPub            bool
	Name             Ident
	GenericParams    []GenericParam
	AssociatedTypes  []TypeAliasDecl
	Methods          []FunctionDecl
	Span             position.Span
}

// ConstantDecl is `const NAME: T = expr;`.
type ConstantDecl struct {
	DocString *DocString
	IsPub     bool
	Name      Ident
	Type      TypeDescriptor
	Value     Expression
	Span      position.Span
}

// ImportDecl is `import a.b { X, Y };`.
type ImportDecl struct {
	Path  []Ident
	Names []Ident
	Span  position.Span
}

// ExternalModuleDecl is the forward declaration `mod name;`, resolved to an
// actual file by the driver rather than the parser.
type ExternalModuleDecl struct {
	Name Ident
	Span position.Span
}
