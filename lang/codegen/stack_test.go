package codegen

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/calestialgem/hlml/lang/semantic"
)

func TestStackPushPop(t *testing.T) {
	var s Stack
	a := s.Push()
	require.Equal(t, 1, s.Top())
	b := s.Push()
	require.Equal(t, 2, s.Top())

	require.True(t, s.Pop(b))
	require.Equal(t, 1, s.Top())
	require.True(t, s.Pop(a))
	require.Equal(t, 0, s.Top())
}

func TestStackPopNonTopIsNoop(t *testing.T) {
	var s Stack
	a := s.Push()
	_ = s.Push()
	require.False(t, s.Pop(a))
	require.Equal(t, 2, s.Top())
}

func TestStackPopNonTemporaryIsNoop(t *testing.T) {
	var s Stack
	s.Push()
	require.False(t, s.Pop(Global(semantic.Name{Source: "t", Identifier: "g"})))
	require.False(t, s.Pop(NullRegister))
	require.Equal(t, 1, s.Top())
}

func TestStackPushReusing(t *testing.T) {
	var s Stack
	a := s.Push()
	reused := s.PushReusing(a)
	require.Equal(t, a, reused)
	require.Equal(t, 1, s.Top())

	fresh := s.PushReusing(NumberConstant(3))
	idx, ok := fresh.IsTemporary()
	require.True(t, ok)
	require.Equal(t, 1, idx)
}

func TestStackPushReusingPair(t *testing.T) {
	var s Stack
	left := s.Push()
	right := s.Push()
	require.Equal(t, 2, s.Top())

	target := s.PushReusingPair(left, right)
	require.Equal(t, left, target)
	require.Equal(t, 1, s.Top())
}
