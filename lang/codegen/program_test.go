package codegen

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestProgramSerializeLinear(t *testing.T) {
	p := NewProgram()
	p.Append(Set{Target: Temporary(0), Source: NumberConstant(1)})
	p.Append(Stop{})

	var buf bytes.Buffer
	require.NoError(t, p.Serialize(&buf))
	require.Equal(t, "set _0 1\nstop\n", buf.String())
}

func TestProgramWaypointForwardReference(t *testing.T) {
	p := NewProgram()
	goal := p.Waypoint()
	p.Append(JumpAlways{Goal: goal})
	p.Append(Stop{})
	p.Define(goal)
	p.Append(End{})

	require.Equal(t, 2, p.Resolve(goal))

	var buf bytes.Buffer
	require.NoError(t, p.Serialize(&buf))
	require.Equal(t, "jump 2 always\nstop\nend\n", buf.String())
}

func TestProgramDefineTwicePanics(t *testing.T) {
	p := NewProgram()
	w := p.Waypoint()
	p.Define(w)
	require.Panics(t, func() { p.Define(w) })
}

func TestProgramResolveUndefinedPanics(t *testing.T) {
	p := NewProgram()
	w := p.Waypoint()
	require.Panics(t, func() { p.Resolve(w) })
}

func TestProgramLen(t *testing.T) {
	p := NewProgram()
	require.Equal(t, 0, p.Len())
	p.Append(Stop{})
	require.Equal(t, 1, p.Len())
}
