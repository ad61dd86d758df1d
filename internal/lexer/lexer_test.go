package lexer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lang-l/lc/internal/lexer"
	"github.com/lang-l/lc/internal/position"
)

func tokenize(t *testing.T, src string) []lexer.Token {
	t.Helper()
	file := position.NewSourceFile("t.l", src)
	l := lexer.New(file)
	var toks []lexer.Token
	for {
		tok, err := l.Next()
		require.NoError(t, err)
		toks = append(toks, tok)
		if tok.Type == lexer.TokenEOF {
			return toks
		}
	}
}

func types(toks []lexer.Token) []lexer.TokenType {
	out := make([]lexer.TokenType, len(toks))
	for i, tok := range toks {
		out[i] = tok.Type
	}
	return out
}

func TestKeywordsAndPunctuation(t *testing.T) {
	toks := tokenize(t, "mod a { pub fn f() -> i32 {} }")
	got := types(toks)
	want := []lexer.TokenType{
		lexer.TokenMod, lexer.TokenIdentifier, lexer.TokenLBrace,
		lexer.TokenPub, lexer.TokenFn, lexer.TokenIdentifier,
		lexer.TokenLParen, lexer.TokenRParen, lexer.TokenArrow,
		lexer.TokenIdentifier, lexer.TokenLBrace, lexer.TokenRBrace,
		lexer.TokenRBrace, lexer.TokenEOF,
	}
	assert.Equal(t, want, got)
}

func TestDoubleColonVsTurbofishTokenization(t *testing.T) {
	toks := tokenize(t, "a::b::<T>(1)")
	got := types(toks)
	want := []lexer.TokenType{
		lexer.TokenIdentifier, lexer.TokenDoubleColon, lexer.TokenIdentifier,
		lexer.TokenDoubleColon, lexer.TokenLt, lexer.TokenIdentifier, lexer.TokenGt,
		lexer.TokenLParen, lexer.TokenInteger, lexer.TokenRParen, lexer.TokenEOF,
	}
	assert.Equal(t, want, got)
}

func TestComparisonOperatorsNotConfusedWithArrowsOrGenerics(t *testing.T) {
	toks := tokenize(t, "a <= b >= c -> d => e")
	got := types(toks)
	want := []lexer.TokenType{
		lexer.TokenIdentifier, lexer.TokenLe, lexer.TokenIdentifier,
		lexer.TokenGe, lexer.TokenIdentifier, lexer.TokenArrow, lexer.TokenIdentifier,
		lexer.TokenFatArrow, lexer.TokenIdentifier, lexer.TokenEOF,
	}
	assert.Equal(t, want, got)
}

func TestIntegerLiteralBig128Bit(t *testing.T) {
	toks := tokenize(t, "340282366920938463463374607431768211455")
	require.Len(t, toks, 2)
	require.Equal(t, lexer.TokenInteger, toks[0].Type)
	assert.Equal(t, "340282366920938463463374607431768211455", toks[0].IntValue.String())
}

func TestIntegerLiteralOverflowsU128(t *testing.T) {
	file := position.NewSourceFile("t.l", "340282366920938463463374607431768211456")
	l := lexer.New(file)
	_, err := l.Next()
	require.Error(t, err)
}

func TestHexBinaryOctalLiterals(t *testing.T) {
	toks := tokenize(t, "0xFF 0b1010 0o17")
	require.Len(t, toks, 4)
	assert.Equal(t, "255", toks[0].IntValue.String())
	assert.Equal(t, "10", toks[1].IntValue.String())
	assert.Equal(t, "15", toks[2].IntValue.String())
}

func TestStringAndCharLiterals(t *testing.T) {
	toks := tokenize(t, `"hello" 'a'`)
	require.Len(t, toks, 3)
	assert.Equal(t, lexer.TokenString, toks[0].Type)
	assert.Equal(t, "hello", toks[0].Literal)
	assert.Equal(t, lexer.TokenChar, toks[1].Type)
	assert.Equal(t, 'a', toks[1].CharValue)
}

func TestBooleanLiterals(t *testing.T) {
	toks := tokenize(t, "true false")
	require.Len(t, toks, 3)
	assert.Equal(t, lexer.TokenBoolean, toks[0].Type)
	assert.True(t, toks[0].BoolValue)
	assert.Equal(t, lexer.TokenBoolean, toks[1].Type)
	assert.False(t, toks[1].BoolValue)
}

func TestDocStringsAndLineComments(t *testing.T) {
	toks := tokenize(t, "/// a doc line\n// not a doc\nfn f() {}")
	require.True(t, len(toks) >= 2)
	assert.Equal(t, lexer.TokenDocString, toks[0].Type)
	assert.Equal(t, lexer.TokenFn, toks[1].Type)
}

func TestNestedBlockComments(t *testing.T) {
	toks := tokenize(t, "a /* outer /* inner */ still outer */ b")
	got := types(toks)
	want := []lexer.TokenType{lexer.TokenIdentifier, lexer.TokenIdentifier, lexer.TokenEOF}
	assert.Equal(t, want, got)
}

func TestHashVsAttribute(t *testing.T) {
	toks := tokenize(t, "#[langitem = \"foo\"] T#Variant")
	got := types(toks)
	want := []lexer.TokenType{
		lexer.TokenHash, lexer.TokenLBracket, lexer.TokenIdentifier, lexer.TokenAssign,
		lexer.TokenString, lexer.TokenRBracket,
		lexer.TokenIdentifier, lexer.TokenHash, lexer.TokenIdentifier, lexer.TokenEOF,
	}
	assert.Equal(t, want, got)
}

func TestSpansCoverExactSourceBytes(t *testing.T) {
	src := "let mut x: i32 = 42;"
	file := position.NewSourceFile("t.l", src)
	l := lexer.New(file)
	for {
		tok, err := l.Next()
		require.NoError(t, err)
		if tok.Type == lexer.TokenEOF {
			break
		}
		assert.Equal(t, tok.Literal != "" || tok.Type != lexer.TokenIdentifier, true, "sanity")
		assert.LessOrEqual(t, tok.Lo, tok.Hi)
		assert.True(t, tok.Hi <= len(src))
		assert.Equal(t, tok.Literal, src[tok.Lo:tok.Hi])
	}
}

func TestLexingIsTotalOnWellFormedInput(t *testing.T) {
	src := "mod a { fn f<T: Copy>(x: &mut T) -> [i32; 4] { let y: T = x; return y; } }"
	toks := tokenize(t, src)
	assert.Equal(t, lexer.TokenEOF, toks[len(toks)-1].Type)
}
