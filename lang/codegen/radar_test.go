package codegen

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCanonicalizeFiltersOrdersAndPads(t *testing.T) {
	cases := []struct {
		desc string
		in   []Filter
		want [3]Filter
	}{
		{"empty pads with any x3", nil, [3]Filter{FilterAny, FilterAny, FilterAny}},
		{"single filter goes first, any pads rest", []Filter{FilterBoss}, [3]Filter{FilterBoss, FilterAny, FilterAny}},
		{"already canonical", []Filter{FilterEnemy, FilterFlying}, [3]Filter{FilterEnemy, FilterFlying, FilterAny}},
		{"reverse order gets sorted", []Filter{FilterFlying, FilterEnemy}, [3]Filter{FilterEnemy, FilterFlying, FilterAny}},
		{"any given explicitly still sorts last", []Filter{FilterAny, FilterAlly, FilterAttacker}, [3]Filter{FilterAlly, FilterAttacker, FilterAny}},
	}
	for _, c := range cases {
		t.Run(c.desc, func(t *testing.T) {
			require.Equal(t, c.want, CanonicalizeFilters(c.in))
		})
	}
}

func TestRadarIDIsOrderIndependent(t *testing.T) {
	a := RadarID([]Filter{FilterEnemy, FilterFlying}, MetricDistance)
	b := RadarID([]Filter{FilterFlying, FilterEnemy}, MetricDistance)
	require.Equal(t, a, b)
}

func TestBuildInstructionRadarRoundTrips(t *testing.T) {
	id := RadarID([]Filter{FilterBoss, FilterGround}, MetricHealth)
	building, order, result := Link("enemy-radar"), NumberConstant(1), Temporary(0)
	instr := BuildInstruction(id, []Register{building, order, result})

	radar, ok := instr.(Radar)
	require.True(t, ok)
	require.Equal(t, [3]Filter{FilterBoss, FilterGround, FilterAny}, radar.Filters)
	require.Equal(t, MetricHealth, radar.Metric)
}
