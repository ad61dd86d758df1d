package parser

import (
	"github.com/lang-l/lc/internal/ast"
	"github.com/lang-l/lc/internal/lexer"
)

// parseModule parses a top-level `mod name { item* }`, given the doc-string
// and pub-ness already consumed by the caller. The external-module
// shorthand `mod name ;` is rejected here; it is only parsed as an item
// nested inside another module.
func (p *Parser) parseModule(doc *ast.DocString, isPub bool) (*ast.Module, error) {
	startTok, err := p.expect(lexer.TokenMod)
	if err != nil {
		return nil, err
	}
	name, err := p.parseIdentToken()
	if err != nil {
		return nil, err
	}

	if p.at(lexer.TokenSemicolon) {
		return nil, unexpectedToken(p.curSpan(), "{", "; (external modules are only legal nested inside another module)")
	}

	if _, err := p.expect(lexer.TokenLBrace); err != nil {
		return nil, err
	}

	var contents []ast.Handle[ast.ModuleDefItem]
	for !p.at(lexer.TokenRBrace) {
		item, err := p.parseModuleItem()
		if err != nil {
			return nil, err
		}
		contents = append(contents, ast.NewHandle[ast.ModuleDefItem](item))
	}

	closeTok, err := p.expect(lexer.TokenRBrace)
	if err != nil {
		return nil, err
	}

	return &ast.Module{
		DocString: doc,
		IsPub:     isPub,
		Name:      name,
		Contents:  contents,
		FilePath:  p.file.Filename,
		Span:      p.span(startTok, closeTok),
	}, nil
}

// parseModuleItem dispatches on the current token to one of the
// ModuleDefItem productions: a nested or external module, an import, or a
// doc/attribute-prefixed declaration.
func (p *Parser) parseModuleItem() (ast.ModuleDefItem, error) {
	doc, attrs, err := p.collectDocAndAttrs()
	if err != nil {
		return nil, err
	}

	if p.at(lexer.TokenImport) {
		return p.parseImportDecl()
	}

	startTok := p.cur
	isPub := false
	if p.at(lexer.TokenPub) {
		isPub = true
		if err := p.advance(); err != nil {
			return nil, err
		}
	}

	isExtern := false
	if p.at(lexer.TokenExtern) {
		isExtern = true
		if err := p.advance(); err != nil {
			return nil, err
		}
	}

	switch {
	case p.at(lexer.TokenConst):
		return p.parseConstantDecl(doc, isPub, startTok)
	case p.at(lexer.TokenStruct):
		return p.parseStructDecl(doc, attrs, isPub, startTok)
	case p.at(lexer.TokenUnion):
		return p.parseUnionDecl(doc, attrs, isPub, startTok)
	case p.at(lexer.TokenEnum):
		return p.parseEnumDecl(doc, attrs, isPub, startTok)
	case p.at(lexer.TokenFn):
		return p.parseFunctionItem(doc, isPub, isExtern, startTok)
	case p.at(lexer.TokenTrait):
		return p.parseTraitDecl(doc, isPub, startTok)
	case p.at(lexer.TokenTypeKw):
		return p.parseTypeAliasDecl(doc, isPub, startTok)
	case p.at(lexer.TokenImpl):
		return p.parseImplItem(startTok)
	case p.at(lexer.TokenMod):
		return p.parseModuleItemMod(doc, isPub, startTok)
	default:
		return nil, unexpectedToken(p.curSpan(), "const, struct, union, enum, fn, trait, type, impl, mod, or import", p.tokenDesc(p.cur))
	}
}

// parseModuleItemMod parses a nested module or an external-module
// declaration (`mod name ;`), which the grammar only allows beneath
// another module — unlike the top-level unit, which requires a body.
func (p *Parser) parseModuleItemMod(doc *ast.DocString, isPub bool, startTok lexer.Token) (ast.ModuleDefItem, error) {
	if err := p.advance(); err != nil { // mod
		return nil, err
	}
	name, err := p.parseIdentToken()
	if err != nil {
		return nil, err
	}

	if p.at(lexer.TokenSemicolon) {
		semiTok := p.cur
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &ast.ExternalModuleDecl{Name: name, Span: p.span(startTok, semiTok)}, nil
	}

	if _, err := p.expect(lexer.TokenLBrace); err != nil {
		return nil, err
	}
	var contents []ast.Handle[ast.ModuleDefItem]
	for !p.at(lexer.TokenRBrace) {
		item, err := p.parseModuleItem()
		if err != nil {
			return nil, err
		}
		contents = append(contents, ast.NewHandle[ast.ModuleDefItem](item))
	}
	closeTok, err := p.expect(lexer.TokenRBrace)
	if err != nil {
		return nil, err
	}
	return &ast.Module{
		DocString: doc,
		IsPub:     isPub,
		Name:      name,
		Contents:  contents,
		FilePath:  p.file.Filename,
		Span:      p.span(startTok, closeTok),
	}, nil
}

// parseImportDecl parses `import a.b { X, Y } ;`.
func (p *Parser) parseImportDecl() (ast.ModuleDefItem, error) {
	startTok, err := p.expect(lexer.TokenImport)
	if err != nil {
		return nil, err
	}
	var path []ast.Ident
	first, err := p.parseIdentToken()
	if err != nil {
		return nil, err
	}
	path = append(path, first)
	for p.at(lexer.TokenDot) {
		if err := p.advance(); err != nil {
			return nil, err
		}
		next, err := p.parseIdentToken()
		if err != nil {
			return nil, err
		}
		path = append(path, next)
	}

	if _, err := p.expect(lexer.TokenLBrace); err != nil {
		return nil, err
	}
	var names []ast.Ident
	for !p.at(lexer.TokenRBrace) {
		n, err := p.parseIdentToken()
		if err != nil {
			return nil, err
		}
		names = append(names, n)
		if p.at(lexer.TokenComma) {
			if err := p.advance(); err != nil {
				return nil, err
			}
			continue
		}
		break
	}
	if _, err := p.expect(lexer.TokenRBrace); err != nil {
		return nil, err
	}
	semiTok, err := p.expect(lexer.TokenSemicolon)
	if err != nil {
		return nil, err
	}
	return &ast.ImportDecl{Path: path, Names: names, Span: p.span(startTok, semiTok)}, nil
}

// parseConstantDecl parses `const name : T = expr ;`.
func (p *Parser) parseConstantDecl(doc *ast.DocString, isPub bool, startTok lexer.Token) (ast.ModuleDefItem, error) {
	if err := p.advance(); err != nil { // const
		return nil, err
	}
	name, err := p.parseIdentToken()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.TokenColon); err != nil {
		return nil, err
	}
	ty, err := p.parseTypeDescriptor()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.TokenAssign); err != nil {
		return nil, err
	}
	value, err := p.parseRHSExpr()
	if err != nil {
		return nil, err
	}
	semiTok, err := p.expect(lexer.TokenSemicolon)
	if err != nil {
		return nil, err
	}
	return &ast.ConstantDecl{DocString: doc, IsPub: isPub, Name: name, Type: ty, Value: value, Span: p.span(startTok, semiTok)}, nil
}

// parseFields parses `{ name : T, ... }`, shared by struct and union decls.
func (p *Parser) parseFields() ([]ast.Field, lexer.Token, error) {
	if _, err := p.expect(lexer.TokenLBrace); err != nil {
		return nil, lexer.Token{}, err
	}
	var fields []ast.Field
	for !p.at(lexer.TokenRBrace) {
		fStart := p.cur
		name, err := p.parseIdentToken()
		if err != nil {
			return nil, lexer.Token{}, err
		}
		if _, err := p.expect(lexer.TokenColon); err != nil {
			return nil, lexer.Token{}, err
		}
		ty, err := p.parseTypeDescriptor()
		if err != nil {
			return nil, lexer.Token{}, err
		}
		fields = append(fields, ast.Field{Name: name, Type: ty, Span: p.span(fStart, p.lastSpanToken(ty))})
		if p.at(lexer.TokenComma) {
			if err := p.advance(); err != nil {
				return nil, lexer.Token{}, err
			}
			continue
		}
		break
	}
	closeTok, err := p.expect(lexer.TokenRBrace)
	if err != nil {
		return nil, lexer.Token{}, err
	}
	return fields, closeTok, nil
}

func (p *Parser) parseStructDecl(doc *ast.DocString, attrs []ast.Attribute, isPub bool, startTok lexer.Token) (ast.ModuleDefItem, error) {
	if err := p.advance(); err != nil { // struct
		return nil, err
	}
	name, err := p.parseIdentToken()
	if err != nil {
		return nil, err
	}
	generics, err := p.parseGenericParams()
	if err != nil {
		return nil, err
	}
	fields, closeTok, err := p.parseFields()
	if err != nil {
		return nil, err
	}
	return &ast.StructDecl{
		DocString: doc, Attributes: attrs, IsPub: isPub, Name: name,
		Generics: generics, Fields: fields, Span: p.span(startTok, closeTok),
	}, nil
}

func (p *Parser) parseUnionDecl(doc *ast.DocString, attrs []ast.Attribute, isPub bool, startTok lexer.Token) (ast.ModuleDefItem, error) {
	if err := p.advance(); err != nil { // union
		return nil, err
	}
	name, err := p.parseIdentToken()
	if err != nil {
		return nil, err
	}
	generics, err := p.parseGenericParams()
	if err != nil {
		return nil, err
	}
	fields, closeTok, err := p.parseFields()
	if err != nil {
		return nil, err
	}
	return &ast.UnionDecl{
		DocString: doc, Attributes: attrs, IsPub: isPub, Name: name,
		Generics: generics, Fields: fields, Span: p.span(startTok, closeTok),
	}, nil
}

// parseEnumDecl parses `enum Name<...> { Variant (payload)? ("=" expr)?, ... }`.
func (p *Parser) parseEnumDecl(doc *ast.DocString, attrs []ast.Attribute, isPub bool, startTok lexer.Token) (ast.ModuleDefItem, error) {
	if err := p.advance(); err != nil { // enum
		return nil, err
	}
	name, err := p.parseIdentToken()
	if err != nil {
		return nil, err
	}
	generics, err := p.parseGenericParams()
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(lexer.TokenLBrace); err != nil {
		return nil, err
	}
	var variants []ast.EnumVariant
	for !p.at(lexer.TokenRBrace) {
		v, err := p.parseEnumVariant()
		if err != nil {
			return nil, err
		}
		variants = append(variants, v)
		if p.at(lexer.TokenComma) {
			if err := p.advance(); err != nil {
				return nil, err
			}
			continue
		}
		break
	}
	closeTok, err := p.expect(lexer.TokenRBrace)
	if err != nil {
		return nil, err
	}
	return &ast.EnumDecl{
		DocString: doc, Attributes: attrs, IsPub: isPub, Name: name,
		Generics: generics, Variants: variants, Span: p.span(startTok, closeTok),
	}, nil
}

func (p *Parser) parseEnumVariant() (ast.EnumVariant, error) {
	startTok := p.cur
	name, err := p.parseIdentToken()
	if err != nil {
		return ast.EnumVariant{}, err
	}

	var fields []ast.Field
	if p.at(lexer.TokenLBrace) {
		fields, _, err = p.parseFields()
		if err != nil {
			return ast.EnumVariant{}, err
		}
	}

	var discriminant ast.Expression
	if p.at(lexer.TokenAssign) {
		if err := p.advance(); err != nil {
			return ast.EnumVariant{}, err
		}
		discriminant, err = p.parseExpr()
		if err != nil {
			return ast.EnumVariant{}, err
		}
	}

	return ast.EnumVariant{Name: name, Fields: fields, Discriminant: discriminant, Span: p.span(startTok, p.prevTok())}, nil
}

// parseParam parses one function parameter: either a leading `self`,
// `&self`, or `&mut self` (only legal as the first parameter of a method:
// the method context is checked here via inMethod, the first-parameter
// position by the caller), or an ordinary `name : T`.
func (p *Parser) parseParam(inMethod bool) (ast.Param, error) {
	startTok := p.cur

	if p.at(lexer.TokenSelf) || (p.at(lexer.TokenAmp) && (p.peekIs(lexer.TokenSelf) || p.peekIs(lexer.TokenMut))) {
		if !inMethod {
			return ast.Param{}, unexpectedToken(p.curSpan(), "parameter name", "self (only legal inside an impl or impl-trait method)")
		}
	}

	if p.at(lexer.TokenSelf) {
		tok := p.cur
		if err := p.advance(); err != nil {
			return ast.Param{}, err
		}
		self := &ast.SelfType{IsRef: false, IsMut: false, Span: p.span(tok, tok)}
		return ast.Param{Name: ast.Ident{Name: "self", Span: self.Span}, Type: self, Span: self.Span}, nil
	}

	if p.at(lexer.TokenAmp) && (p.peekIs(lexer.TokenSelf) || p.peekIs(lexer.TokenMut)) {
		if err := p.advance(); err != nil { // &
			return ast.Param{}, err
		}
		isMut := false
		if p.at(lexer.TokenMut) {
			isMut = true
			if err := p.advance(); err != nil {
				return ast.Param{}, err
			}
		}
		selfTok, err := p.expect(lexer.TokenSelf)
		if err != nil {
			return ast.Param{}, err
		}
		self := &ast.SelfType{IsRef: true, IsMut: isMut, Span: p.span(startTok, selfTok)}
		return ast.Param{Name: ast.Ident{Name: "self", Span: self.Span}, Type: self, Span: self.Span}, nil
	}

	name, err := p.parseIdentToken()
	if err != nil {
		return ast.Param{}, err
	}
	if _, err := p.expect(lexer.TokenColon); err != nil {
		return ast.Param{}, err
	}
	ty, err := p.parseTypeDescriptor()
	if err != nil {
		return ast.Param{}, err
	}
	return ast.Param{Name: name, Type: ty, Span: p.span(startTok, p.lastSpanToken(ty))}, nil
}

// parseParamList parses `( param ("," param)* ","? )`. Only the first
// parameter may be self-shaped, and only when inMethod is set (the
// parameter list belongs to an impl or impl-trait method); a self
// appearing later is rejected positionally, and a self appearing anywhere
// outside a method is rejected by parseParam.
func (p *Parser) parseParamList(inMethod bool) ([]ast.Param, error) {
	if _, err := p.expect(lexer.TokenLParen); err != nil {
		return nil, err
	}
	var params []ast.Param
	first := true
	for !p.at(lexer.TokenRParen) {
		if !first && (p.at(lexer.TokenSelf) || (p.at(lexer.TokenAmp) && (p.peekIs(lexer.TokenSelf) || p.peekIs(lexer.TokenMut)))) {
			return nil, unexpectedToken(p.curSpan(), "parameter name", "self (only legal as the first parameter)")
		}
		param, err := p.parseParam(inMethod)
		if err != nil {
			return nil, err
		}
		params = append(params, param)
		first = false
		if p.at(lexer.TokenComma) {
			if err := p.advance(); err != nil {
				return nil, err
			}
			continue
		}
		break
	}
	if _, err := p.expect(lexer.TokenRParen); err != nil {
		return nil, err
	}
	return params, nil
}

// parseFunctionSignature parses the shared prefix of a function
// declaration and definition: `fn name<...>(params) -> T`, not including
// the trailing `;` or `{ body }`. inMethod marks whether this signature
// belongs to an impl or impl-trait method, the only place `self` is a
// legal first parameter.
func (p *Parser) parseFunctionSignature(doc *ast.DocString, isPub, isExtern, inMethod bool, startTok lexer.Token) (ast.FunctionDecl, error) {
	if err := p.advance(); err != nil { // fn
		return ast.FunctionDecl{}, err
	}
	name, err := p.parseIdentToken()
	if err != nil {
		return ast.FunctionDecl{}, err
	}
	generics, err := p.parseGenericParams()
	if err != nil {
		return ast.FunctionDecl{}, err
	}
	params, err := p.parseParamList(inMethod)
	if err != nil {
		return ast.FunctionDecl{}, err
	}

	var retType ast.TypeDescriptor
	endTok := p.prevTok()
	if p.at(lexer.TokenArrow) {
		if err := p.advance(); err != nil {
			return ast.FunctionDecl{}, err
		}
		retType, err = p.parseTypeDescriptor()
		if err != nil {
			return ast.FunctionDecl{}, err
		}
		endTok = p.lastSpanToken(retType)
	}

	return ast.FunctionDecl{
		DocString: doc, IsPub: isPub, IsExtern: isExtern, Name: name,
		GenericParams: generics, Params: params, RetType: retType,
		Span: p.span(startTok, endTok),
	}, nil
}

// parseFunctionItem parses either an extern declaration (`extern fn f() -> T ;`)
// or a full definition (`fn f() -> T { body }`) at module scope, where
// `self` is never a legal parameter.
func (p *Parser) parseFunctionItem(doc *ast.DocString, isPub, isExtern bool, startTok lexer.Token) (ast.ModuleDefItem, error) {
	decl, err := p.parseFunctionSignature(doc, isPub, isExtern, false, startTok)
	if err != nil {
		return nil, err
	}

	if isExtern {
		semiTok, err := p.expect(lexer.TokenSemicolon)
		if err != nil {
			return nil, err
		}
		decl.Span = p.span(startTok, semiTok)
		return &decl, nil
	}

	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	closeTok := p.prevCloseBraceTok()
	def := &ast.FunctionDef{Decl: decl, Body: body, Span: p.span(startTok, closeTok)}
	return def, nil
}

// parseFunctionDef parses a non-extern function definition directly, used
// inside impl blocks where methods are never extern.
func (p *Parser) parseFunctionDef() (ast.FunctionDef, error) {
	startTok := p.cur
	doc, _, err := p.collectDocAndAttrs()
	if err != nil {
		return ast.FunctionDef{}, err
	}
	isPub := false
	if p.at(lexer.TokenPub) {
		isPub = true
		if err := p.advance(); err != nil {
			return ast.FunctionDef{}, err
		}
	}
	if !p.at(lexer.TokenFn) {
		return ast.FunctionDef{}, unexpectedToken(p.curSpan(), lexer.TokenFn.String(), p.tokenDesc(p.cur))
	}
	decl, err := p.parseFunctionSignature(doc, isPub, false, true, startTok)
	if err != nil {
		return ast.FunctionDef{}, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return ast.FunctionDef{}, err
	}
	return ast.FunctionDef{Decl: decl, Body: body, Span: p.span(startTok, p.prevCloseBraceTok())}, nil
}

// parseImplItem parses `impl T { method* }` or `impl Trait for T { ... }`.
// Both begin with `impl TypeName`; the production is chosen by
// whether `for` follows.
func (p *Parser) parseImplItem(startTok lexer.Token) (ast.ModuleDefItem, error) {
	if err := p.advance(); err != nil { // impl
		return nil, err
	}
	generics, err := p.parseGenericParams()
	if err != nil {
		return nil, err
	}

	firstTypeTok := p.cur
	first, err := p.parseTypeName(false)
	if err != nil {
		return nil, err
	}

	if p.at(lexer.TokenFor) {
		if err := p.advance(); err != nil {
			return nil, err
		}
		target, err := p.parseTypeDescriptor()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.TokenLBrace); err != nil {
			return nil, err
		}
		var assocTypes []ast.TypeAliasDecl
		var methods []ast.FunctionDef
		for !p.at(lexer.TokenRBrace) {
			if p.at(lexer.TokenTypeKw) {
				at, err := p.parseTypeAliasDeclInner(nil, false)
				if err != nil {
					return nil, err
				}
				assocTypes = append(assocTypes, at)
				continue
			}
			m, err := p.parseFunctionDef()
			if err != nil {
				return nil, err
			}
			methods = append(methods, m)
		}
		closeTok, err := p.expect(lexer.TokenRBrace)
		if err != nil {
			return nil, err
		}
		return &ast.ImplTraitBlock{
			TargetTrait: first, Target: target, GenericParams: generics,
			AssociatedTypes: assocTypes, Methods: methods, Span: p.span(startTok, closeTok),
		}, nil
	}

	target := &ast.NamedType{Name: first, Span: p.span(firstTypeTok, p.prevEndToken(first))}
	if _, err := p.expect(lexer.TokenLBrace); err != nil {
		return nil, err
	}
	var methods []ast.FunctionDef
	for !p.at(lexer.TokenRBrace) {
		m, err := p.parseFunctionDef()
		if err != nil {
			return nil, err
		}
		methods = append(methods, m)
	}
	closeTok, err := p.expect(lexer.TokenRBrace)
	if err != nil {
		return nil, err
	}
	return &ast.ImplBlock{Target: target, GenericParams: generics, Methods: methods, Span: p.span(startTok, closeTok)}, nil
}

// parseTraitDecl parses `trait Name<...> { (type Alias ;)* (fn sig ;)* }`
// — a trait only ever declares signatures and abstract associated types,
// never bodies.
func (p *Parser) parseTraitDecl(doc *ast.DocString, isPub bool, startTok lexer.Token) (ast.ModuleDefItem, error) {
	if err := p.advance(); err != nil { // trait
		return nil, err
	}
	name, err := p.parseIdentToken()
	if err != nil {
		return nil, err
	}
	generics, err := p.parseGenericParams()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.TokenLBrace); err != nil {
		return nil, err
	}

	var assocTypes []ast.TypeAliasDecl
	var methods []ast.FunctionDecl
	for !p.at(lexer.TokenRBrace) {
		mDoc, _, err := p.collectDocAndAttrs()
		if err != nil {
			return nil, err
		}
		if p.at(lexer.TokenTypeKw) {
			at, err := p.parseTypeAliasDeclInner(mDoc, false)
			if err != nil {
				return nil, err
			}
			assocTypes = append(assocTypes, at)
			continue
		}
		mStart := p.cur
		mPub := false
		if p.at(lexer.TokenPub) {
			mPub = true
			if err := p.advance(); err != nil {
				return nil, err
			}
		}
		decl, err := p.parseFunctionSignature(mDoc, mPub, false, true, mStart)
		if err != nil {
			return nil, err
		}
		semiTok, err := p.expect(lexer.TokenSemicolon)
		if err != nil {
			return nil, err
		}
		decl.Span = p.span(mStart, semiTok)
		methods = append(methods, decl)
	}

	closeTok, err := p.expect(lexer.TokenRBrace)
	if err != nil {
		return nil, err
	}
	return &ast.TraitDecl{
		DocString: doc, IsPub: isPub, Name: name, GenericParams: generics,
		AssociatedTypes: assocTypes, Methods: methods, Span: p.span(startTok, closeTok),
	}, nil
}

// parseTypeAliasDecl parses a top-level `type Name<...> = T ;`.
func (p *Parser) parseTypeAliasDecl(doc *ast.DocString, isPub bool, startTok lexer.Token) (ast.ModuleDefItem, error) {
	decl, err := p.parseTypeAliasDeclInner(doc, isPub)
	if err != nil {
		return nil, err
	}
	decl.Span = p.span(startTok, p.prevTok())
	return &decl, nil
}

// parseTypeAliasDeclInner parses `type Name<...> (= T)? ;`, consuming the
// trailing semicolon. The target is nil for an abstract associated type
// inside a trait.
func (p *Parser) parseTypeAliasDeclInner(doc *ast.DocString, isPub bool) (ast.TypeAliasDecl, error) {
	startTok := p.cur
	if err := p.advance(); err != nil { // type
		return ast.TypeAliasDecl{}, err
	}
	name, err := p.parseIdentToken()
	if err != nil {
		return ast.TypeAliasDecl{}, err
	}
	generics, err := p.parseGenericParams()
	if err != nil {
		return ast.TypeAliasDecl{}, err
	}

	var target ast.TypeDescriptor
	if p.at(lexer.TokenAssign) {
		if err := p.advance(); err != nil {
			return ast.TypeAliasDecl{}, err
		}
		target, err = p.parseTypeDescriptor()
		if err != nil {
			return ast.TypeAliasDecl{}, err
		}
	}

	semiTok, err := p.expect(lexer.TokenSemicolon)
	if err != nil {
		return ast.TypeAliasDecl{}, err
	}
	return ast.TypeAliasDecl{
		DocString: doc, IsPub: isPub, Name: name, Generics: generics,
		Target: target, Span: p.span(startTok, semiTok),
	}, nil
}
