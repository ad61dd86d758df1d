package parser

import (
	"math/big"

	"github.com/lang-l/lc/internal/ast"
	"github.com/lang-l/lc/internal/lexer"
	"github.com/lang-l/lc/internal/position"
)

// parseExpr is the entry point into the precedence-climbing expression
// grammar. It never produces a bare StructInit/EnumInit at the top level —
// those are only legal as an entire RHS parsed by parseRHSExpr or wrapped
// in parentheses, per §4.2's parenthesization rule.
func (p *Parser) parseExpr() (ast.Expression, error) {
	return p.parseCast()
}

// parseCast is level 5, the loosest-binding form: `a + b as U` parses as
// `(a + b) as U`, intentionally lower precedence than arithmetic.
func (p *Parser) parseCast() (ast.Expression, error) {
	left, err := p.parseAddSub()
	if err != nil {
		return nil, err
	}
	return p.continueCast(left)
}

// continueCast applies any trailing `as T` to an already-parsed left,
// letting callers that built left from something other than parseAddSub
// (an RHS-only head atom) still climb the rest of the precedence chain.
func (p *Parser) continueCast(left ast.Expression) (ast.Expression, error) {
	for p.at(lexer.TokenAs) {
		startTok := p.cur
		if err := p.advance(); err != nil {
			return nil, err
		}
		ty, err := p.parseTypeDescriptor()
		if err != nil {
			return nil, err
		}
		left = &ast.CastExpr{Operand: left, Type: ty, Span: p.span(exprStartToken(left, startTok), p.lastSpanToken(ty))}
	}
	return left, nil
}

// parseAddSub is level 4: `+ - & | ^`.
func (p *Parser) parseAddSub() (ast.Expression, error) {
	left, err := p.parseMulDiv()
	if err != nil {
		return nil, err
	}
	return p.continueAddSub(left)
}

func (p *Parser) continueAddSub(left ast.Expression) (ast.Expression, error) {
	for {
		op, ok := binOpFor(p.cur.Type, lexer.TokenPlus, lexer.TokenMinus, lexer.TokenAmp, lexer.TokenPipe, lexer.TokenCaret)
		if !ok {
			return left, nil
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseMulDiv()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryOpExpr{Lhs: left, Op: op, Rhs: right, Span: p.span(exprStartToken(left, p.cur), p.lastSpanToken2(right.SpanOf()))}
	}
}

// parseMulDiv is level 3: `* / %`.
func (p *Parser) parseMulDiv() (ast.Expression, error) {
	left, err := p.parseComparison()
	if err != nil {
		return nil, err
	}
	return p.continueMulDiv(left)
}

func (p *Parser) continueMulDiv(left ast.Expression) (ast.Expression, error) {
	for {
		op, ok := binOpFor(p.cur.Type, lexer.TokenStar, lexer.TokenSlash, lexer.TokenPercent)
		if !ok {
			return left, nil
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseComparison()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryOpExpr{Lhs: left, Op: op, Rhs: right, Span: p.span(exprStartToken(left, p.cur), p.lastSpanToken2(right.SpanOf()))}
	}
}

// parseComparison is level 2: comparisons and logical && / || share one
// level and associate strictly left to right.
func (p *Parser) parseComparison() (ast.Expression, error) {
	left, err := p.parsePrefix()
	if err != nil {
		return nil, err
	}
	return p.continueComparison(left)
}

func (p *Parser) continueComparison(left ast.Expression) (ast.Expression, error) {
	for {
		op, ok := binOpFor(p.cur.Type,
			lexer.TokenEq, lexer.TokenNe, lexer.TokenLt, lexer.TokenGt,
			lexer.TokenLe, lexer.TokenGe, lexer.TokenAndAnd, lexer.TokenOrOr)
		if !ok {
			return left, nil
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parsePrefix()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryOpExpr{Lhs: left, Op: op, Rhs: right, Span: p.span(exprStartToken(left, p.cur), p.lastSpanToken2(right.SpanOf()))}
	}
}

// continueExprFromAtom climbs the full precedence chain (comparison →
// mulDiv → addSub → cast) starting from an already-parsed level-0 atom,
// for the one caller — parseRHSExpr — that parses its own head atom
// (with allowBraceInit set) instead of going through parseAtom.
func (p *Parser) continueExprFromAtom(atom ast.Expression) (ast.Expression, error) {
	left, err := p.continueComparison(atom)
	if err != nil {
		return nil, err
	}
	left, err = p.continueMulDiv(left)
	if err != nil {
		return nil, err
	}
	left, err = p.continueAddSub(left)
	if err != nil {
		return nil, err
	}
	return p.continueCast(left)
}

// parsePrefix is level 1: right-associative prefix `&`, `&mut`, `*`, and
// unary `-`, `!`, `~`.
func (p *Parser) parsePrefix() (ast.Expression, error) {
	switch {
	case p.at(lexer.TokenAmp):
		startTok := p.cur
		if err := p.advance(); err != nil {
			return nil, err
		}
		isMut := false
		if p.at(lexer.TokenMut) {
			isMut = true
			if err := p.advance(); err != nil {
				return nil, err
			}
		}
		operand, err := p.parsePrefix()
		if err != nil {
			return nil, err
		}
		return &ast.AsRefExpr{Operand: operand, IsMut: isMut, Span: p.span(startTok, p.lastSpanToken2(operand.SpanOf()))}, nil

	case p.at(lexer.TokenStar):
		startTok := p.cur
		if err := p.advance(); err != nil {
			return nil, err
		}
		operand, err := p.parsePrefix()
		if err != nil {
			return nil, err
		}
		return &ast.DerefExpr{Operand: operand, Span: p.span(startTok, p.lastSpanToken2(operand.SpanOf()))}, nil

	case p.at(lexer.TokenMinus), p.at(lexer.TokenBang), p.at(lexer.TokenTilde):
		startTok := p.cur
		op := unaryOpFor(p.cur.Type)
		if err := p.advance(); err != nil {
			return nil, err
		}
		operand, err := p.parsePrefix()
		if err != nil {
			return nil, err
		}
		return &ast.UnaryOpExpr{Op: op, Operand: operand, Span: p.span(startTok, p.lastSpanToken2(operand.SpanOf()))}, nil

	default:
		return p.parseAtom()
	}
}

func unaryOpFor(tt lexer.TokenType) ast.UnaryOperator {
	switch tt {
	case lexer.TokenMinus:
		return ast.OpNeg
	case lexer.TokenBang:
		return ast.OpNot
	default:
		return ast.OpBitNot
	}
}

func binOpFor(tt lexer.TokenType, candidates ...lexer.TokenType) (ast.BinaryOperator, bool) {
	match := false
	for _, c := range candidates {
		if tt == c {
			match = true
			break
		}
	}
	if !match {
		return 0, false
	}
	switch tt {
	case lexer.TokenEq:
		return ast.OpEq, true
	case lexer.TokenNe:
		return ast.OpNe, true
	case lexer.TokenLt:
		return ast.OpLt, true
	case lexer.TokenGt:
		return ast.OpGt, true
	case lexer.TokenLe:
		return ast.OpLe, true
	case lexer.TokenGe:
		return ast.OpGe, true
	case lexer.TokenAndAnd:
		return ast.OpAndAnd, true
	case lexer.TokenOrOr:
		return ast.OpOrOr, true
	case lexer.TokenStar:
		return ast.OpMul, true
	case lexer.TokenSlash:
		return ast.OpDiv, true
	case lexer.TokenPercent:
		return ast.OpRem, true
	case lexer.TokenPlus:
		return ast.OpAdd, true
	case lexer.TokenMinus:
		return ast.OpSub, true
	case lexer.TokenAmp:
		return ast.OpBitAnd, true
	case lexer.TokenPipe:
		return ast.OpBitOr, true
	case lexer.TokenCaret:
		return ast.OpBitXor, true
	default:
		return 0, false
	}
}

// exprStartToken synthesizes a start-marker token from an already-parsed
// expression's span, falling back to fallback if e is nil.
func exprStartToken(e ast.Expression, fallback lexer.Token) lexer.Token {
	if e == nil {
		return fallback
	}
	sp := e.SpanOf()
	return lexer.Token{Lo: sp.Lo(), Hi: sp.Hi()}
}

// parseAtom parses level 0: literals, parenthesized expressions (which
// may wrap a StructInit/EnumInit), match, if, array literals, and
// identifier-headed forms (free calls, associated-method calls, and
// plain paths). Bare StructInit/EnumInit are never produced
// here — only inside parens, where parseParenExpr allows them.
func (p *Parser) parseAtom() (ast.Expression, error) {
	switch {
	case p.at(lexer.TokenInteger):
		tok := p.cur
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &ast.ValueExpr{Kind: ast.ValueInteger, Int: new(big.Int).Set(tok.IntValue), Span: p.span(tok, tok)}, nil

	case p.at(lexer.TokenFloat):
		tok := p.cur
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &ast.ValueExpr{Kind: ast.ValueFloat, Float: tok.Literal, Span: p.span(tok, tok)}, nil

	case p.at(lexer.TokenString):
		tok := p.cur
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &ast.ValueExpr{Kind: ast.ValueString, Str: tok.Literal, Span: p.span(tok, tok)}, nil

	case p.at(lexer.TokenChar):
		tok := p.cur
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &ast.ValueExpr{Kind: ast.ValueChar, Char: tok.CharValue, Span: p.span(tok, tok)}, nil

	case p.at(lexer.TokenBoolean):
		tok := p.cur
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &ast.ValueExpr{Kind: ast.ValueBoolean, Bool: tok.BoolValue, Span: p.span(tok, tok)}, nil

	case p.at(lexer.TokenLParen):
		return p.parseParenExpr()

	case p.at(lexer.TokenLBracket):
		return p.parseArrayInit()

	case p.at(lexer.TokenMatch):
		return p.parseMatchExpr()

	case p.at(lexer.TokenIf):
		return p.parseIfExpr()

	case p.at(lexer.TokenIdentifier), p.at(lexer.TokenSelf):
		return p.parseHeadIdentExpr(false)

	default:
		return nil, unexpectedToken(p.curSpan(), "expression", p.tokenDesc(p.cur))
	}
}

// parseParenExpr parses `( expr )`, where expr may be a StructInit or
// EnumInit — legal here because parentheses remove the ambiguity with a
// following block that forces the restriction everywhere else.
func (p *Parser) parseParenExpr() (ast.Expression, error) {
	openTok, err := p.expect(lexer.TokenLParen)
	if err != nil {
		return nil, err
	}
	inner, err := p.parseRHSExpr()
	if err != nil {
		return nil, err
	}
	closeTok, err := p.expect(lexer.TokenRParen)
	if err != nil {
		return nil, err
	}
	return &ast.ParenExpr{Inner: inner, Span: p.span(openTok, closeTok)}, nil
}

func (p *Parser) parseArrayInit() (ast.Expression, error) {
	openTok, err := p.expect(lexer.TokenLBracket)
	if err != nil {
		return nil, err
	}
	var elems []ast.Expression
	for !p.at(lexer.TokenRBracket) {
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		elems = append(elems, e)
		if p.at(lexer.TokenComma) {
			if err := p.advance(); err != nil {
				return nil, err
			}
			continue
		}
		break
	}
	closeTok, err := p.expect(lexer.TokenRBracket)
	if err != nil {
		return nil, err
	}
	return &ast.ArrayInitExpr{Elements: elems, Span: p.span(openTok, closeTok)}, nil
}

// parseRHSExpr parses the union of every form legal as a let/assign RHS
// or inside parentheses: a StructInit, an EnumInit, an AssocMethodCall, or
// a general Expression. An identifier-headed RHS still has to parse as the
// level-0 atom of the full precedence chain — `a < b`, `a + b as U`, and so
// on — so the head atom is fed back through every level above it rather
// than returned as the whole expression.
func (p *Parser) parseRHSExpr() (ast.Expression, error) {
	if p.at(lexer.TokenIdentifier) || p.at(lexer.TokenSelf) {
		atom, err := p.parseHeadIdentExpr(true)
		if err != nil {
			return nil, err
		}
		return p.continueExprFromAtom(atom)
	}
	return p.parseExpr()
}

// parseCallArgs parses `( expr ("," expr)* ","? )`.
func (p *Parser) parseCallArgs() ([]ast.Expression, lexer.Token, error) {
	if _, err := p.expect(lexer.TokenLParen); err != nil {
		return nil, lexer.Token{}, err
	}
	var args []ast.Expression
	for !p.at(lexer.TokenRParen) {
		a, err := p.parseExpr()
		if err != nil {
			return nil, lexer.Token{}, err
		}
		args = append(args, a)
		if p.at(lexer.TokenComma) {
			if err := p.advance(); err != nil {
				return nil, lexer.Token{}, err
			}
			continue
		}
		break
	}
	closeTok, err := p.expect(lexer.TokenRParen)
	if err != nil {
		return nil, lexer.Token{}, err
	}
	return args, closeTok, nil
}

// parseTurbofishGenerics parses an optional `::<T, ...>` generic argument
// list in value position.
func (p *Parser) parseTurbofishGenerics() ([]ast.TypeDescriptor, error) {
	if !(p.at(lexer.TokenDoubleColon) && p.peekIs(lexer.TokenLt)) {
		return nil, nil
	}
	if err := p.advance(); err != nil { // ::
		return nil, err
	}
	if err := p.advance(); err != nil { // <
		return nil, err
	}
	gens, err := p.parseGenericArgList()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.TokenGt); err != nil {
		return nil, err
	}
	return gens, nil
}

// parseFieldInits parses `{ name: value, ... }`.
func (p *Parser) parseFieldInits() ([]ast.FieldInit, lexer.Token, error) {
	if _, err := p.expect(lexer.TokenLBrace); err != nil {
		return nil, lexer.Token{}, err
	}
	var fields []ast.FieldInit
	for !p.at(lexer.TokenRBrace) {
		startTok := p.cur
		name, err := p.parseIdentToken()
		if err != nil {
			return nil, lexer.Token{}, err
		}
		if _, err := p.expect(lexer.TokenColon); err != nil {
			return nil, lexer.Token{}, err
		}
		value, err := p.parseExpr()
		if err != nil {
			return nil, lexer.Token{}, err
		}
		fields = append(fields, ast.FieldInit{Name: name, Value: value, Span: p.span(startTok, p.lastSpanToken2(value.SpanOf()))})
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

// parseHeadIdentExpr parses every identifier-headed expression shape: a
// plain path (`a.b[0]`), a free function call (`mod::f::<T>(x)`), an
// associated-method call (`T#method(x)`), or — only when allowBraceInit
// is set — an enum init (`T#Variant` or `T#Variant { a }`) or a struct
// init (`T { a: 1 }`). The grammar commits to one interpretation based
// solely on what follows the identifier chain, never by backtracking.
func (p *Parser) parseHeadIdentExpr(allowBraceInit bool) (ast.Expression, error) {
	startTok := p.cur

	if p.at(lexer.TokenSelf) {
		tok, err := p.parseIdentOrSelf()
		if err != nil {
			return nil, err
		}
		path := ast.PathOp{First: tok, Span: p.span(startTok, startTok)}
		return p.parsePathSuffix(startTok, path)
	}

	typeName, err := p.parseTypeName(true)
	if err != nil {
		return nil, err
	}
	return p.continueFromTypeName(startTok, typeName, allowBraceInit)
}

// continueFromTypeName decides what an already-parsed TypeName turns
// into based solely on what follows it: a call, an associated-method
// call, an enum init or struct init (both only when allowBraceInit), or a
// plain path. Shared by parseHeadIdentExpr and match-arm pattern parsing,
// which both need to parse the same identifier-chain prefix before
// knowing which production it belongs to.
func (p *Parser) continueFromTypeName(startTok lexer.Token, typeName ast.TypeName, allowBraceInit bool) (ast.Expression, error) {
	switch {
	case p.at(lexer.TokenLParen):
		args, closeTok, err := p.parseCallArgs()
		if err != nil {
			return nil, err
		}
		segs := append(append([]ast.Ident{}, typeName.Path...), typeName.Name)
		call := ast.FnCallOp{Path: segs, Generics: typeName.Generics, Args: args, Span: p.span(startTok, closeTok)}
		return &ast.FnCallExpr{Call: call, Span: call.Span}, nil

	case p.at(lexer.TokenHash):
		return p.parseAssocOrEnum(startTok, typeName, allowBraceInit)

	case p.at(lexer.TokenLBrace) && allowBraceInit:
		fields, closeTok, err := p.parseFieldInits()
		if err != nil {
			return nil, err
		}
		return &ast.StructInitExpr{Type: typeName, Fields: fields, Span: p.span(startTok, closeTok)}, nil

	default:
		if len(typeName.Path) > 0 || len(typeName.Generics) > 0 {
			return nil, unexpectedToken(p.curSpan(), "( or # or {", p.tokenDesc(p.cur))
		}
		path := ast.PathOp{First: typeName.Name, Span: typeName.Span}
		return p.parsePathSuffix(startTok, path)
	}
}

func (p *Parser) parseAssocOrEnum(startTok lexer.Token, typeName ast.TypeName, allowBraceInit bool) (ast.Expression, error) {
	if err := p.advance(); err != nil { // '#'
		return nil, err
	}
	name, err := p.parseIdentToken()
	if err != nil {
		return nil, err
	}

	methodGenerics, err := p.parseTurbofishGenerics()
	if err != nil {
		return nil, err
	}

	if p.at(lexer.TokenLParen) {
		args, closeTok, err := p.parseCallArgs()
		if err != nil {
			return nil, err
		}
		call := ast.FnCallOp{Path: []ast.Ident{name}, Generics: methodGenerics, Args: args, Span: p.span(startTok, closeTok)}
		return &ast.AssocMethodCallExpr{Type: typeName, Call: call, Span: call.Span}, nil
	}

	if allowBraceInit && p.at(lexer.TokenLBrace) {
		fields, closeTok, err := p.parseFieldInits()
		if err != nil {
			return nil, err
		}
		return &ast.EnumInitExpr{Type: typeName, Variant: name, Fields: fields, Span: p.span(startTok, closeTok)}, nil
	}

	if !allowBraceInit {
		return nil, unexpectedToken(p.curSpan(), "( (an enum init used as a subexpression must be parenthesized)", p.tokenDesc(p.cur))
	}
	return &ast.EnumInitExpr{Type: typeName, Variant: name, Span: p.span(startTok, p.prevTok())}, nil
}

// prevTok is used to close out a span at the current boundary without
// consuming a token — the caller is positioned just after the last token
// that belongs to the node being built.
func (p *Parser) prevTok() lexer.Token {
	return lexer.Token{Lo: p.cur.Lo, Hi: p.cur.Lo}
}

// parsePathSuffix greedily appends `.field`, `.method(args)`, and
// `[index]` segments onto path.
func (p *Parser) parsePathSuffix(startTok lexer.Token, path ast.PathOp) (ast.Expression, error) {
	for {
		switch {
		case p.at(lexer.TokenDot):
			dotTok := p.cur
			if err := p.advance(); err != nil {
				return nil, err
			}
			name, err := p.parseIdentToken()
			if err != nil {
				return nil, err
			}
			if p.at(lexer.TokenLParen) || (p.at(lexer.TokenDoubleColon) && p.peekIs(lexer.TokenLt)) {
				gens, err := p.parseTurbofishGenerics()
				if err != nil {
					return nil, err
				}
				args, closeTok, err := p.parseCallArgs()
				if err != nil {
					return nil, err
				}
				call := ast.FnCallOp{Path: []ast.Ident{name}, Generics: gens, Args: args, Span: p.span(dotTok, closeTok)}
				path.Extra = append(path.Extra, &ast.MethodCallSegment{Call: call, Span: call.Span})
			} else {
				path.Extra = append(path.Extra, &ast.FieldAccessSegment{Field: name, Span: p.span(dotTok, p.prevConsumedTok(name))})
			}

		case p.at(lexer.TokenLBracket):
			openTok := p.cur
			if err := p.advance(); err != nil {
				return nil, err
			}
			idx, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			closeTok, err := p.expect(lexer.TokenRBracket)
			if err != nil {
				return nil, err
			}
			path.Extra = append(path.Extra, &ast.ArrayIndexSegment{Index: idx, Span: p.span(openTok, closeTok)})

		default:
			last := startTok
			if len(path.Extra) > 0 {
				last = p.lastSpanToken2(path.Extra[len(path.Extra)-1].SpanOf())
			} else {
				last = lexer.Token{Lo: path.First.Span.Lo(), Hi: path.First.Span.Hi()}
			}
			path.Span = p.span(startTok, last)
			return &ast.PathExpr{Path: path, Span: path.Span}, nil
		}
	}
}

func (p *Parser) prevConsumedTok(id ast.Ident) lexer.Token {
	return lexer.Token{Lo: id.Span.Lo(), Hi: id.Span.Hi()}
}

func (p *Parser) lastSpanToken2(sp position.Span) lexer.Token {
	return lexer.Token{Lo: sp.Lo(), Hi: sp.Hi()}
}
