package textscan

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/flowexpr-go/flowexpr/pkg/core"
)

func TestCh_MatchesAndConsumes(t *testing.T) {
	t.Parallel()
	c := NewFromString("(x")
	slot := &core.ValueSlot{}
	require.True(t, Ch('(')(c, slot))
	require.Equal(t, '(', slot.Value())
	require.False(t, c.IsEOF())
}

func TestCh_DeclinesWithoutConsuming(t *testing.T) {
	t.Parallel()
	c := NewFromString("x")
	slot := &core.ValueSlot{}
	require.False(t, Ch('(')(c, slot))
	r, ok := c.Peek()
	require.True(t, ok)
	require.Equal(t, 'x', r)
}

func TestDigit_MatchesDecimalDigit(t *testing.T) {
	t.Parallel()
	c := NewFromString("7a")
	slot := &core.ValueSlot{}
	require.True(t, Digit(c, slot))
	require.Equal(t, 7, slot.Value())
}

func TestNumDecimal_MatchesMultiDigitAndNegative(t *testing.T) {
	t.Parallel()
	c := NewFromString("-123x")
	slot := &core.ValueSlot{}
	require.True(t, NumDecimal(c, slot))
	require.Equal(t, -123, slot.Value())
	r, ok := c.Peek()
	require.True(t, ok)
	require.Equal(t, 'x', r)
}

func TestSp_SkipsWhitespaceAndAlwaysPasses(t *testing.T) {
	t.Parallel()
	c := NewFromString("  \tx")
	slot := &core.ValueSlot{}
	require.True(t, Sp(c, slot))
	r, ok := c.Peek()
	require.True(t, ok)
	require.Equal(t, 'x', r)
}

func TestIsEos_NonConsumingPeek(t *testing.T) {
	t.Parallel()
	c := NewFromString("x")
	slot := &core.ValueSlot{}
	require.False(t, IsEos(c, slot))
	// still at 'x': IsEos must not have consumed anything
	r, ok := c.Peek()
	require.True(t, ok)
	require.Equal(t, 'x', r)

	_, _ = c.Next()
	require.True(t, IsEos(c, slot))
}

func TestAnyCh_MatchesFromSet(t *testing.T) {
	t.Parallel()
	c := NewFromString("+3")
	slot := &core.ValueSlot{}
	require.True(t, AnyCh("+-")(c, slot))
	require.Equal(t, '+', slot.Value())
}
