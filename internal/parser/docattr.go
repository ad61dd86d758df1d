package parser

import (
	"github.com/lang-l/lc/internal/ast"
	"github.com/lang-l/lc/internal/lexer"
)

// collectDocString consumes a run of consecutive DocString tokens and
// merges them into one ast.DocString. Returns nil if there is no such run
// — a lone run not followed by a doc-accepting item is still consumed
// here by the caller's own logic, since the grammar accepts it and simply
// attaches it to nothing.
func (p *Parser) collectDocString() (*ast.DocString, error) {
	if !p.at(lexer.TokenDocString) {
		return nil, nil
	}

	first := p.cur
	var lines []string
	last := p.cur

	for p.at(lexer.TokenDocString) {
		lines = append(lines, p.cur.Literal)
		last = p.cur
		if err := p.advance(); err != nil {
			return nil, err
		}
	}

	return &ast.DocString{Contents: lines, Span: p.span(first, last)}, nil
}

// collectAttributes consumes a run of `#[name]` / `#[name = "value"]`
// attributes ahead of an item; it stops at the first token that is not
// `#`, so doc-comments are not consumed here. The
// attributes are retained verbatim; nothing here interprets them.
func (p *Parser) collectAttributes() ([]ast.Attribute, error) {
	var attrs []ast.Attribute
	for p.at(lexer.TokenHash) {
		attr, err := p.parseAttribute()
		if err != nil {
			return nil, err
		}
		attrs = append(attrs, attr)
	}
	return attrs, nil
}

func (p *Parser) parseAttribute() (ast.Attribute, error) {
	hashTok, err := p.expect(lexer.TokenHash)
	if err != nil {
		return ast.Attribute{}, err
	}
	if _, err := p.expect(lexer.TokenLBracket); err != nil {
		return ast.Attribute{}, err
	}
	name, err := p.parseIdentToken()
	if err != nil {
		return ast.Attribute{}, err
	}

	var value *string
	if p.at(lexer.TokenAssign) {
		if err := p.advance(); err != nil {
			return ast.Attribute{}, err
		}
		strTok, err := p.expect(lexer.TokenString)
		if err != nil {
			return ast.Attribute{}, err
		}
		v := strTok.Literal
		value = &v
	}

	closeTok, err := p.expect(lexer.TokenRBracket)
	if err != nil {
		return ast.Attribute{}, err
	}

	return ast.Attribute{Name: name.Name, Value: value, Span: p.span(hashTok, closeTok)}, nil
}

// collectDocAndAttrs gathers any mix of doc-comments and attributes
// preceding an item, in the order written, and returns the merged doc
// string (nil if none appeared) plus the attribute list.
func (p *Parser) collectDocAndAttrs() (*ast.DocString, []ast.Attribute, error) {
	var doc *ast.DocString
	var attrs []ast.Attribute

	for {
		if p.at(lexer.TokenDocString) {
			d, err := p.collectDocString()
			if err != nil {
				return nil, nil, err
			}
			doc = mergeDocStrings(doc, d)
			continue
		}
		if p.at(lexer.TokenHash) {
			a, err := p.parseAttribute()
			if err != nil {
				return nil, nil, err
			}
			attrs = append(attrs, a)
			continue
		}
		break
	}

	return doc, attrs, nil
}

func mergeDocStrings(a, b *ast.DocString) *ast.DocString {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	default:
		return &ast.DocString{
			Contents: append(append([]string{}, a.Contents...), b.Contents...),
			Span:     a.Span.Union(b.Span),
		}
	}
}
