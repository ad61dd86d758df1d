package parser

import (
	"github.com/lang-l/lc/internal/ast"
	"github.com/lang-l/lc/internal/lexer"
)

// parseTypeName parses `(Ident "::")* Ident` followed by an optional
// generic-argument list. turbofish selects which generics marker this
// call site uses: type position writes bare `<...>`, use/value position
// writes `::<...>` to stay unambiguous against `<` comparison. The
// parser commits to one production per call site — it never decides by
// arbitrary lookahead.
func (p *Parser) parseTypeName(turbofish bool) (ast.TypeName, error) {
	startTok := p.cur
	first, err := p.parseIdentToken()
	if err != nil {
		return ast.TypeName{}, err
	}
	segs := []ast.Ident{first}

	for p.at(lexer.TokenDoubleColon) {
		if turbofish && p.peekIs(lexer.TokenLt) {
			break
		}
		if err := p.advance(); err != nil {
			return ast.TypeName{}, err
		}
		next, err := p.parseIdentToken()
		if err != nil {
			return ast.TypeName{}, err
		}
		segs = append(segs, next)
	}

	name := segs[len(segs)-1]
	path := segs[:len(segs)-1]

	var generics []ast.TypeDescriptor
	endTok := tokenEndOf(segs)

	hasGenerics := false
	if turbofish {
		hasGenerics = p.at(lexer.TokenDoubleColon) && p.peekIs(lexer.TokenLt)
	} else {
		hasGenerics = p.at(lexer.TokenLt)
	}

	if hasGenerics {
		if turbofish {
			if err := p.advance(); err != nil { // ::
				return ast.TypeName{}, err
			}
		}
		if err := p.advance(); err != nil { // <
			return ast.TypeName{}, err
		}
		generics, err = p.parseGenericArgList()
		if err != nil {
			return ast.TypeName{}, err
		}
		closeTok, err := p.expect(lexer.TokenGt)
		if err != nil {
			return ast.TypeName{}, err
		}
		endTok = closeTok
	}

	return ast.TypeName{
		Path:     path,
		Name:     name,
		Generics: generics,
		Span:     p.span(startTok, endTok),
	}, nil
}

// tokenEndOf is a helper for recovering a representative token to build a
// span from when no generics were present — the last identifier parsed.
func tokenEndOf(segs []ast.Ident) lexer.Token {
	last := segs[len(segs)-1]
	return lexer.Token{Lo: last.Span.Lo(), Hi: last.Span.Hi()}
}

// parseGenericArgList parses a comma-separated, optionally
// trailing-comma-terminated list of type descriptors up to (but not
// including) the closing `>`.
func (p *Parser) parseGenericArgList() ([]ast.TypeDescriptor, error) {
	var args []ast.TypeDescriptor
	for !p.at(lexer.TokenGt) {
		arg, err := p.parseTypeDescriptor()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)

		if p.at(lexer.TokenComma) {
			if err := p.advance(); err != nil {
				return nil, err
			}
			continue
		}
		break
	}
	return args, nil
}

// parseTypeDescriptor parses one type-position TypeDescriptor: a named
// type, an array, a reference, or a raw pointer. SelfType is never
// produced here — it is only legal in a method's first parameter and is
// parsed directly by parseParam.
func (p *Parser) parseTypeDescriptor() (ast.TypeDescriptor, error) {
	switch {
	case p.at(lexer.TokenLBracket):
		return p.parseArrayType()
	case p.at(lexer.TokenAmp):
		return p.parseRefType()
	case p.at(lexer.TokenStar):
		return p.parsePtrType()
	default:
		startTok := p.cur
		name, err := p.parseTypeName(false)
		if err != nil {
			return nil, err
		}
		return &ast.NamedType{Name: name, Span: p.span(startTok, p.prevEndToken(name))}, nil
	}
}

// prevEndToken synthesizes an end marker token from a TypeName's own span
// so callers can combine it into an enclosing span without re-deriving
// offsets from source bytes.
func (p *Parser) prevEndToken(name ast.TypeName) lexer.Token {
	return lexer.Token{Lo: name.Span.Lo(), Hi: name.Span.Hi()}
}

func (p *Parser) parseArrayType() (ast.TypeDescriptor, error) {
	startTok, err := p.expect(lexer.TokenLBracket)
	if err != nil {
		return nil, err
	}
	of, err := p.parseTypeDescriptor()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.TokenSemicolon); err != nil {
		return nil, err
	}

	sizeTok, err := p.expect(lexer.TokenInteger)
	if err != nil {
		return nil, err
	}
	if !sizeTok.IntValue.IsUint64() {
		return nil, invalidArraySize(p.span(sizeTok, sizeTok), "array size %s does not fit in 64 bits", sizeTok.Literal)
	}
	size := sizeTok.IntValue.Uint64()

	closeTok, err := p.expect(lexer.TokenRBracket)
	if err != nil {
		return nil, err
	}

	return &ast.ArrayType{Of: of, Size: size, Span: p.span(startTok, closeTok)}, nil
}

func (p *Parser) parseRefType() (ast.TypeDescriptor, error) {
	ampTok, err := p.expect(lexer.TokenAmp)
	if err != nil {
		return nil, err
	}
	isMut := false
	if p.at(lexer.TokenMut) {
		isMut = true
		if err := p.advance(); err != nil {
			return nil, err
		}
	}
	of, err := p.parseTypeDescriptor()
	if err != nil {
		return nil, err
	}
	span := p.span(ampTok, p.lastSpanToken(of))
	if isMut {
		return &ast.MutRefType{Of: of, Span: span}, nil
	}
	return &ast.RefType{Of: of, Span: span}, nil
}

func (p *Parser) parsePtrType() (ast.TypeDescriptor, error) {
	starTok, err := p.expect(lexer.TokenStar)
	if err != nil {
		return nil, err
	}
	switch {
	case p.at(lexer.TokenConst):
		if err := p.advance(); err != nil {
			return nil, err
		}
		of, err := p.parseTypeDescriptor()
		if err != nil {
			return nil, err
		}
		return &ast.ConstPtrType{Of: of, Span: p.span(starTok, p.lastSpanToken(of))}, nil
	case p.at(lexer.TokenMut):
		if err := p.advance(); err != nil {
			return nil, err
		}
		of, err := p.parseTypeDescriptor()
		if err != nil {
			return nil, err
		}
		return &ast.MutPtrType{Of: of, Span: p.span(starTok, p.lastSpanToken(of))}, nil
	default:
		return nil, unexpectedToken(p.curSpan(), "const or mut", p.tokenDesc(p.cur))
	}
}

// lastSpanToken synthesizes a token from a TypeDescriptor's own span, for
// combining spans without touching source bytes.
func (p *Parser) lastSpanToken(t ast.TypeDescriptor) lexer.Token {
	sp := t.SpanOf()
	return lexer.Token{Lo: sp.Lo(), Hi: sp.Hi()}
}

// parseGenericParams parses `<T: Bound + Bound, U>` generic parameter
// lists attached to an item.
func (p *Parser) parseGenericParams() ([]ast.GenericParam, error) {
	if !p.at(lexer.TokenLt) {
		return nil, nil
	}
	if err := p.advance(); err != nil {
		return nil, err
	}

	var params []ast.GenericParam
	for !p.at(lexer.TokenGt) {
		startTok := p.cur
		name, err := p.parseIdentToken()
		if err != nil {
			return nil, err
		}
		last := lexer.Token{Lo: name.Span.Lo(), Hi: name.Span.Hi()}

		var bounds []ast.TypeName
		if p.at(lexer.TokenColon) {
			if err := p.advance(); err != nil {
				return nil, err
			}
			for {
				b, err := p.parseTypeName(false)
				if err != nil {
					return nil, err
				}
				bounds = append(bounds, b)
				last = lexer.Token{Lo: b.Span.Lo(), Hi: b.Span.Hi()}
				if p.at(lexer.TokenPlus) {
					if err := p.advance(); err != nil {
						return nil, err
					}
					continue
				}
				break
			}
		}

		params = append(params, ast.GenericParam{Name: name, Bounds: bounds, Span: p.span(startTok, last)})

		if p.at(lexer.TokenComma) {
			if err := p.advance(); err != nil {
				return nil, err
			}
			continue
		}
		break
	}

	if _, err := p.expect(lexer.TokenGt); err != nil {
		return nil, err
	}
	return params, nil
}
