// Package parser implements the LR-style, precedence-climbing parser that
// turns a lexer.Lexer's token stream into an ast.CompilationUnit. The
// parser never inspects source bytes directly — every span it builds
// comes from offsets the lexer already attached to tokens.
package parser

import (
	"github.com/lang-l/lc/internal/ast"
	"github.com/lang-l/lc/internal/lexer"
	"github.com/lang-l/lc/internal/position"
)

// Parser consumes a two-token lookahead window over a Lexer. It never
// resynchronizes: the first Error it builds is returned to the caller and
// no further tokens are read.
type Parser struct {
	lex  *lexer.Lexer
	file *position.SourceFile

	cur  lexer.Token
	peek lexer.Token
}

// New creates a Parser positioned at the first token of file.
func New(file *position.SourceFile) (*Parser, error) {
	p := &Parser{lex: lexer.New(file), file: file}

	if err := p.fill(&p.cur); err != nil {
		return nil, err
	}
	if err := p.fill(&p.peek); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Parser) fill(slot *lexer.Token) error {
	tok, err := p.lex.Next()
	if err != nil {
		lexErr, ok := err.(*lexer.LexicalError)
		if !ok {
			return err
		}
		return wrapLexical(lexErr)
	}
	*slot = tok
	return nil
}

// advance shifts the lookahead window forward by one token.
func (p *Parser) advance() error {
	p.cur = p.peek
	return p.fill(&p.peek)
}

func (p *Parser) at(tt lexer.TokenType) bool {
	return p.cur.Type == tt
}

func (p *Parser) peekIs(tt lexer.TokenType) bool {
	return p.peek.Type == tt
}

// span builds a Span covering [loTok.Lo, hiTok.Hi) via the SourceFile the
// lexer attached to tokens, never by re-scanning raw bytes.
func (p *Parser) span(loTok, hiTok lexer.Token) position.Span {
	return position.NewSpan(p.file, loTok.Lo, hiTok.Hi)
}

func (p *Parser) curSpan() position.Span {
	return p.span(p.cur, p.cur)
}

func (p *Parser) tokenDesc(t lexer.Token) string {
	if t.Type == lexer.TokenEOF {
		return "end of input"
	}
	return t.Type.String()
}

// expect requires the current token to have type tt, consumes it, and
// returns it. Otherwise it returns an *Error without advancing.
func (p *Parser) expect(tt lexer.TokenType) (lexer.Token, error) {
	if p.cur.Type == lexer.TokenEOF && tt != lexer.TokenEOF {
		return lexer.Token{}, unexpectedEOF(p.curSpan(), tt.String())
	}
	if !p.at(tt) {
		return lexer.Token{}, unexpectedToken(p.curSpan(), tt.String(), p.tokenDesc(p.cur))
	}
	tok := p.cur
	if err := p.advance(); err != nil {
		return lexer.Token{}, err
	}
	return tok, nil
}

// parseIdentToken accepts a plain identifier — never the `self` keyword,
// which is only meaningful as the first parameter of a method or as a
// path head inside expressions (see parseIdentOrSelf).
func (p *Parser) parseIdentToken() (ast.Ident, error) {
	if !p.at(lexer.TokenIdentifier) {
		return ast.Ident{}, unexpectedToken(p.curSpan(), lexer.TokenIdentifier.String(), p.tokenDesc(p.cur))
	}
	tok := p.cur
	if err := p.advance(); err != nil {
		return ast.Ident{}, err
	}
	return ast.Ident{Name: tok.Literal, Span: p.span(tok, tok)}, nil
}

// parseIdentOrSelf accepts an identifier or the `self` keyword, used at
// the head of a path expression where `self.field` must parse.
func (p *Parser) parseIdentOrSelf() (ast.Ident, error) {
	if p.at(lexer.TokenSelf) {
		tok := p.cur
		if err := p.advance(); err != nil {
			return ast.Ident{}, err
		}
		return ast.Ident{Name: "self", Span: p.span(tok, tok)}, nil
	}
	return p.parseIdentToken()
}

// Parse is the package's entry point: it lexes and parses text under the
// identifier path, returning the file's compilation unit or the first
// error encountered.
func Parse(path, text string) (*ast.CompilationUnit, error) {
	file := position.NewSourceFile(path, text)
	p, err := New(file)
	if err != nil {
		return nil, err
	}
	return p.parseCompilationUnit(path)
}

func (p *Parser) parseCompilationUnit(path string) (*ast.CompilationUnit, error) {
	unit := &ast.CompilationUnit{FilePath: path}

	for !p.at(lexer.TokenEOF) {
		doc, err := p.collectDocString()
		if err != nil {
			return nil, err
		}

		isPub := false
		if p.at(lexer.TokenPub) {
			isPub = true
			if err := p.advance(); err != nil {
				return nil, err
			}
		}

		if !p.at(lexer.TokenMod) {
			return nil, unexpectedToken(p.curSpan(), lexer.TokenMod.String(), p.tokenDesc(p.cur))
		}

		m, err := p.parseModule(doc, isPub)
		if err != nil {
			return nil, err
		}
		unit.Modules = append(unit.Modules, m)
	}

	return unit, nil
}
