package position_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lang-l/lc/internal/position"
)

func TestSourceFilePositionFromOffset(t *testing.T) {
	sf := position.NewSourceFile("a.l", "mod a {\n  fn f() {}\n}\n")

	pos := sf.PositionFromOffset(10)
	assert.Equal(t, 2, pos.Line)
	assert.Equal(t, 3, pos.Column)
}

func TestSpanContainsSpan(t *testing.T) {
	sf := position.NewSourceFile("a.l", "mod a { fn f() {} }")
	parent := position.NewSpan(sf, 0, 19)
	child := position.NewSpan(sf, 8, 18)

	require.True(t, parent.IsValid())
	assert.True(t, parent.ContainsSpan(child))
	assert.False(t, child.ContainsSpan(parent))
}

func TestSpanUnion(t *testing.T) {
	sf := position.NewSourceFile("a.l", "1 + 2 * 3")
	lhs := position.NewSpan(sf, 0, 1)
	rhs := position.NewSpan(sf, 8, 9)

	union := lhs.Union(rhs)
	assert.Equal(t, 0, union.Lo())
	assert.Equal(t, 9, union.Hi())
}

func TestSourceFileCRLFOffsetsUnaffected(t *testing.T) {
	sf := position.NewSourceFile("a.l", "mod a {\r\n}\r\n")

	assert.Equal(t, []string{"mod a {", "}", ""}, sf.Lines)
	// Offsets still index the original, unnormalized content.
	assert.Equal(t, byte('\r'), sf.Content[7])
}
