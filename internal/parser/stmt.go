package parser

import (
	"github.com/lang-l/lc/internal/ast"
	"github.com/lang-l/lc/internal/lexer"
)

// parseBlock parses `{ Statement* }`.
func (p *Parser) parseBlock() ([]ast.Statement, error) {
	if _, err := p.expect(lexer.TokenLBrace); err != nil {
		return nil, err
	}
	var stmts []ast.Statement
	for !p.at(lexer.TokenRBrace) {
		s, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, s)
	}
	if _, err := p.expect(lexer.TokenRBrace); err != nil {
		return nil, err
	}
	return stmts, nil
}

// parseStatement dispatches on the current token to one of Let, Assign,
// FnCall, PathOp, Return, Match, If, While, or For.
func (p *Parser) parseStatement() (ast.Statement, error) {
	switch {
	case p.at(lexer.TokenLet):
		return p.parseLetStmt()
	case p.at(lexer.TokenReturn):
		return p.parseReturnStmt()
	case p.at(lexer.TokenMatch):
		return p.parseMatchStmt()
	case p.at(lexer.TokenIf):
		return p.parseIfStmt()
	case p.at(lexer.TokenWhile):
		return p.parseWhileStmt()
	case p.at(lexer.TokenFor):
		return p.parseForStmt()
	case p.at(lexer.TokenStar):
		return p.parseAssignStmt()
	default:
		return p.parseExprStatement()
	}
}

// parseLetStmt parses `let mut? name : T = RHS ;`.
func (p *Parser) parseLetStmt() (ast.Statement, error) {
	startTok, err := p.expect(lexer.TokenLet)
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
	return &ast.LetStmt{IsMut: isMut, Name: name, Type: ty, Value: value, Span: p.span(startTok, semiTok)}, nil
}

// parseAssignStmt parses `*^n PathOp = RHS ;`.
func (p *Parser) parseAssignStmt() (ast.Statement, error) {
	startTok := p.cur
	derefs := 0
	for p.at(lexer.TokenStar) {
		derefs++
		if err := p.advance(); err != nil {
			return nil, err
		}
	}
	target, err := p.parseBarePathOp()
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
	return &ast.AssignStmt{Derefs: derefs, Target: target, Value: value, Span: p.span(startTok, semiTok)}, nil
}

// parseBarePathOp parses a PathOp without deciding call/init semantics —
// used for assignment targets, which are always l-values.
func (p *Parser) parseBarePathOp() (ast.PathOp, error) {
	startTok := p.cur
	first, err := p.parseIdentOrSelf()
	if err != nil {
		return ast.PathOp{}, err
	}
	path := ast.PathOp{First: first, Span: p.span(startTok, startTok)}
	expr, err := p.parsePathSuffix(startTok, path)
	if err != nil {
		return ast.PathOp{}, err
	}
	return expr.(*ast.PathExpr).Path, nil
}

// parseExprStatement parses a statement whose l-value has zero leading
// `*`s: either an assignment (`PathOp = RHS ;`), a free function call, or
// a bare path chain, each terminated by `;`. An assignment target is
// always a PathExpr, so `=` following the parsed head decides the
// production the same way a leading `*` does in parseAssignStmt.
func (p *Parser) parseExprStatement() (ast.Statement, error) {
	startTok := p.cur
	expr, err := p.parseHeadIdentExpr(false)
	if err != nil {
		return nil, err
	}

	if p.at(lexer.TokenAssign) {
		path, ok := expr.(*ast.PathExpr)
		if !ok {
			return nil, unexpectedToken(expr.SpanOf(), "assignment target", "associated-method call or enum init")
		}
		if err := p.advance(); err != nil {
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
		return &ast.AssignStmt{Derefs: 0, Target: path.Path, Value: value, Span: p.span(startTok, semiTok)}, nil
	}

	semiTok, err := p.expect(lexer.TokenSemicolon)
	if err != nil {
		return nil, err
	}
	switch e := expr.(type) {
	case *ast.FnCallExpr:
		return &ast.FnCallStmt{Call: e.Call, Span: p.span(startTok, semiTok)}, nil
	case *ast.PathExpr:
		return &ast.PathOpStmt{Path: e.Path, Span: p.span(startTok, semiTok)}, nil
	default:
		return nil, unexpectedToken(e.SpanOf(), "function call or path expression", "associated-method call or enum init")
	}
}

// parseReturnStmt parses `return ;` or `return expr ;`.
func (p *Parser) parseReturnStmt() (ast.Statement, error) {
	startTok, err := p.expect(lexer.TokenReturn)
	if err != nil {
		return nil, err
	}
	if p.at(lexer.TokenSemicolon) {
		semiTok := p.cur
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &ast.ReturnStmt{Span: p.span(startTok, semiTok)}, nil
	}
	value, err := p.parseRHSExpr()
	if err != nil {
		return nil, err
	}
	semiTok, err := p.expect(lexer.TokenSemicolon)
	if err != nil {
		return nil, err
	}
	return &ast.ReturnStmt{Value: value, Span: p.span(startTok, semiTok)}, nil
}

// parseWhileStmt parses `while expr { stmts }`.
func (p *Parser) parseWhileStmt() (ast.Statement, error) {
	startTok, err := p.expect(lexer.TokenWhile)
	if err != nil {
		return nil, err
	}
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	endTok := p.prevCloseBraceTok()
	return &ast.WhileStmt{Cond: cond, Body: body, Span: p.span(startTok, endTok)}, nil
}

// prevCloseBraceTok recovers a closing-brace position for span-building
// right after parseBlock has consumed it.
func (p *Parser) prevCloseBraceTok() lexer.Token {
	return lexer.Token{Lo: p.cur.Lo, Hi: p.cur.Lo}
}

// parseForStmt parses the three `for` productions: C-style, condition
// only, and infinite.
func (p *Parser) parseForStmt() (ast.Statement, error) {
	startTok, err := p.expect(lexer.TokenFor)
	if err != nil {
		return nil, err
	}

	if p.at(lexer.TokenLBrace) {
		body, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		return &ast.ForStmt{Kind: ast.ForInfinite, Body: body, Span: p.span(startTok, p.prevCloseBraceTok())}, nil
	}

	if _, err := p.expect(lexer.TokenLParen); err != nil {
		return nil, err
	}

	if p.at(lexer.TokenLet) || p.at(lexer.TokenSemicolon) {
		var init ast.Statement
		if p.at(lexer.TokenLet) {
			init, err = p.parseLetStmt()
			if err != nil {
				return nil, err
			}
		} else if err := p.advance(); err != nil { // ';' of an omitted init
			return nil, err
		}
		var cond ast.Expression
		if !p.at(lexer.TokenSemicolon) {
			cond, err = p.parseExpr()
			if err != nil {
				return nil, err
			}
		}
		if _, err := p.expect(lexer.TokenSemicolon); err != nil {
			return nil, err
		}
		var post ast.Statement
		if !p.at(lexer.TokenRParen) {
			post, err = p.parseAssignStmtNoSemi()
			if err != nil {
				return nil, err
			}
		}
		if _, err := p.expect(lexer.TokenRParen); err != nil {
			return nil, err
		}
		body, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		return &ast.ForStmt{Kind: ast.ForCStyle, Init: init, Cond: cond, Post: post, Body: body, Span: p.span(startTok, p.prevCloseBraceTok())}, nil
	}

	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.TokenRParen); err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ast.ForStmt{Kind: ast.ForCond, Cond: cond, Body: body, Span: p.span(startTok, p.prevCloseBraceTok())}, nil
}

// parseAssignStmtNoSemi parses the C-style for-loop's post-statement,
// which has the same shape as AssignStmt but is not `;`-terminated.
func (p *Parser) parseAssignStmtNoSemi() (ast.Statement, error) {
	startTok := p.cur
	derefs := 0
	for p.at(lexer.TokenStar) {
		derefs++
		if err := p.advance(); err != nil {
			return nil, err
		}
	}
	target, err := p.parseBarePathOp()
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
	return &ast.AssignStmt{Derefs: derefs, Target: target, Value: value, Span: p.span(startTok, p.prevTok())}, nil
}

// parseIfStmt parses `if expr { stmts } (else { stmts })?` used as a
// statement. There is no syntactic `else if` — a cascaded condition is
// written `else { if ... }`.
func (p *Parser) parseIfStmt() (ast.Statement, error) {
	e, err := p.parseIfExprInner()
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (p *Parser) parseIfExpr() (ast.Expression, error) {
	return p.parseIfExprInner()
}

func (p *Parser) parseIfExprInner() (*ast.IfExpr, error) {
	startTok, err := p.expect(lexer.TokenIf)
	if err != nil {
		return nil, err
	}
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	then, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	endTok := p.prevCloseBraceTok()

	var elseBody []ast.Statement
	if p.at(lexer.TokenElse) {
		if err := p.advance(); err != nil {
			return nil, err
		}
		elseBody, err = p.parseBlock()
		if err != nil {
			return nil, err
		}
		endTok = p.prevCloseBraceTok()
	}

	return &ast.IfExpr{Cond: cond, Then: then, Else: elseBody, Span: p.span(startTok, endTok)}, nil
}

// parseMatchStmt parses a match expression used as a statement.
func (p *Parser) parseMatchStmt() (ast.Statement, error) {
	return p.parseMatchExpr()
}

// parseMatchExpr parses `match expr { variant ("," variant)* ","? }`.
func (p *Parser) parseMatchExpr() (*ast.MatchExpr, error) {
	startTok, err := p.expect(lexer.TokenMatch)
	if err != nil {
		return nil, err
	}
	scrutinee, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.TokenLBrace); err != nil {
		return nil, err
	}

	var variants []ast.MatchVariant
	for !p.at(lexer.TokenRBrace) {
		v, err := p.parseMatchVariant()
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
	return &ast.MatchExpr{Scrutinee: scrutinee, Variants: variants, Span: p.span(startTok, closeTok)}, nil
}

// parseMatchVariant parses one arm: either a value pattern or an enum
// pattern, each followed by `=>` and a statement or a block.
func (p *Parser) parseMatchVariant() (ast.MatchVariant, error) {
	startTok := p.cur

	if p.at(lexer.TokenIdentifier) {
		typeName, err := p.parseTypeName(true)
		if err != nil {
			return ast.MatchVariant{}, err
		}

		if p.at(lexer.TokenHash) {
			enumPat, err := p.parseEnumMatchFrom(startTok, typeName)
			if err != nil {
				return ast.MatchVariant{}, err
			}
			if _, err := p.expect(lexer.TokenFatArrow); err != nil {
				return ast.MatchVariant{}, err
			}
			body, err := p.parseMatchArmBody()
			if err != nil {
				return ast.MatchVariant{}, err
			}
			return ast.MatchVariant{EnumPattern: enumPat, Body: body, Span: p.span(startTok, p.prevTok())}, nil
		}

		// Not an enum pattern after all: the identifier chain already
		// consumed belongs to a value pattern instead, so finish it from
		// the TypeName rather than re-parsing tokens that are gone.
		value, err := p.continueFromTypeName(startTok, typeName, false)
		if err != nil {
			return ast.MatchVariant{}, err
		}
		if _, err := p.expect(lexer.TokenFatArrow); err != nil {
			return ast.MatchVariant{}, err
		}
		body, err := p.parseMatchArmBody()
		if err != nil {
			return ast.MatchVariant{}, err
		}
		return ast.MatchVariant{ValuePattern: value, Body: body, Span: p.span(startTok, p.prevTok())}, nil
	}

	value, err := p.parseExpr()
	if err != nil {
		return ast.MatchVariant{}, err
	}
	if _, err := p.expect(lexer.TokenFatArrow); err != nil {
		return ast.MatchVariant{}, err
	}
	body, err := p.parseMatchArmBody()
	if err != nil {
		return ast.MatchVariant{}, err
	}
	return ast.MatchVariant{ValuePattern: value, Body: body, Span: p.span(startTok, p.prevTok())}, nil
}

// parseEnumMatchFrom finishes parsing `TypeNameUse#Variant` or
// `TypeNameUse#Variant { a, b }` given the type name already parsed.
func (p *Parser) parseEnumMatchFrom(startTok lexer.Token, typeName ast.TypeName) (*ast.EnumMatchExpr, error) {
	if err := p.advance(); err != nil { // '#'
		return nil, err
	}
	variant, err := p.parseIdentToken()
	if err != nil {
		return nil, err
	}

	var binds []ast.Ident
	if p.at(lexer.TokenLBrace) {
		if err := p.advance(); err != nil {
			return nil, err
		}
		for !p.at(lexer.TokenRBrace) {
			b, err := p.parseIdentToken()
			if err != nil {
				return nil, err
			}
			binds = append(binds, b)
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
	}

	return &ast.EnumMatchExpr{Type: typeName, Variant: variant, Binds: binds, Span: p.span(startTok, p.prevTok())}, nil
}

// parseMatchArmBody parses the right-hand side of `=>`: either a single
// statement or a braced block of statements.
func (p *Parser) parseMatchArmBody() ([]ast.Statement, error) {
	if p.at(lexer.TokenLBrace) {
		return p.parseBlock()
	}
	s, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	return []ast.Statement{s}, nil
}
