package diag_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lang-l/lc/internal/diag"
	"github.com/lang-l/lc/internal/parser"
	"github.com/lang-l/lc/internal/position"
)

func parseErr(t *testing.T, src string) *parser.Error {
	t.Helper()
	_, err := parser.Parse("t.l", src)
	require.Error(t, err)
	var pErr *parser.Error
	require.True(t, errors.As(err, &pErr))
	return pErr
}

func TestFromParseErrorPreservesKindAndSpan(t *testing.T) {
	pErr := parseErr(t, `mod a { fn f( -> i32 {} }`)
	d := diag.FromParseError("t.l", pErr)
	assert.Equal(t, diag.UnexpectedToken, d.Kind)
	assert.Equal(t, pErr.Span, d.Span)
	assert.Equal(t, "t.l", d.FilePath)
	assert.Contains(t, d.String(), "unexpected token")
}

func TestCollectorOrdersByFileThenOffset(t *testing.T) {
	c := diag.NewCollector()
	late := diag.Diagnostic{FilePath: "b.l", Span: position.Span{Start: position.Position{Filename: "b.l", Line: 1, Column: 1, Offset: 10}, End: position.Position{Filename: "b.l", Line: 1, Column: 1, Offset: 10}}, Message: "late"}
	early := diag.Diagnostic{FilePath: "a.l", Span: position.Span{Start: position.Position{Filename: "a.l", Line: 1, Column: 1, Offset: 5}, End: position.Position{Filename: "a.l", Line: 1, Column: 1, Offset: 5}}, Message: "early"}
	mid := diag.Diagnostic{FilePath: "a.l", Span: position.Span{Start: position.Position{Filename: "a.l", Line: 1, Column: 1, Offset: 50}, End: position.Position{Filename: "a.l", Line: 1, Column: 1, Offset: 50}}, Message: "mid"}

	c.Add(late)
	c.Add(mid)
	c.Add(early)

	require.Equal(t, 3, c.Len())
	all := c.All()
	require.Len(t, all, 3)
	assert.Equal(t, "early", all[0].Message)
	assert.Equal(t, "mid", all[1].Message)
	assert.Equal(t, "late", all[2].Message)
}

func TestCollectorIsSafeForConcurrentAdd(t *testing.T) {
	c := diag.NewCollector()
	done := make(chan struct{})
	for i := 0; i < 50; i++ {
		go func(n int) {
			c.Add(diag.Diagnostic{FilePath: "a.l", Span: position.Span{Start: position.Position{Filename: "a.l", Line: 1, Column: 1, Offset: n}}})
			done <- struct{}{}
		}(i)
	}
	for i := 0; i < 50; i++ {
		<-done
	}
	assert.Equal(t, 50, c.Len())
}

func TestRenderIncludesMessageAndSpanLine(t *testing.T) {
	src := "mod a { fn f( -> i32 {} }"
	pErr := parseErr(t, src)

	sm := position.NewSourceMap()
	sm.AddFile("t.l", src)
	r := diag.NewRenderer(sm)

	d := diag.FromParseError("t.l", pErr)
	out := r.RenderError(d)
	assert.Contains(t, out, "error[unexpected token]")
	assert.Contains(t, out, "t.l")
	assert.Contains(t, out, d.Message)
	assert.Contains(t, out, src)
}
