package codegen

import (
	"fmt"

	"golang.org/x/exp/slices"
)

// Filter enumerates the radar target filters of spec.md §4.5.
type Filter uint8

const (
	FilterAny Filter = iota
	FilterEnemy
	FilterAlly
	FilterPlayer
	FilterAttacker
	FilterFlying
	FilterBoss
	FilterGround
)

var filterMnemonics = [...]string{
	FilterAny:      "any",
	FilterEnemy:    "enemy",
	FilterAlly:     "ally",
	FilterPlayer:   "player",
	FilterAttacker: "attacker",
	FilterFlying:   "flying",
	FilterBoss:     "boss",
	FilterGround:   "ground",
}

// canonicalOrder is the mandatory filter ordering of spec.md §4.5: any
// combination of filters is written with FilterAny last (it is the padding
// value) and every non-any filter ordered as it appears here.
var canonicalOrder = [...]Filter{
	FilterEnemy, FilterAlly, FilterPlayer, FilterAttacker, FilterFlying, FilterBoss, FilterGround, FilterAny,
}

var filterRank = func() map[Filter]int {
	m := make(map[Filter]int, len(canonicalOrder))
	for i, f := range canonicalOrder {
		m[f] = i
	}
	return m
}()

// CanonicalizeFilters sorts an arbitrary (possibly partially-"any",
// possibly unordered) set of up to 3 filters into the canonical order
// mandated by spec.md §4.5, padding any missing slots with FilterAny.
func CanonicalizeFilters(given []Filter) [3]Filter {
	fs := make([]Filter, 3)
	copy(fs, given)
	for i := len(given); i < 3; i++ {
		fs[i] = FilterAny
	}
	slices.SortFunc(fs, func(a, b Filter) int { return filterRank[a] - filterRank[b] })
	return [3]Filter{fs[0], fs[1], fs[2]}
}

// Metric enumerates the radar sort metrics of spec.md §4.5.
type Metric uint8

const (
	MetricDistance Metric = iota
	MetricHealth
	MetricShield
	MetricArmor
	MetricMaxHealth
)

var metricMnemonics = [...]string{
	MetricDistance:  "distance",
	MetricHealth:    "health",
	MetricShield:    "shield",
	MetricArmor:     "armor",
	MetricMaxHealth: "maxHealth",
}

// Radar is the single record modeling the entire radar cross product, per
// spec.md §4.5's implementation guidance: rather than hand-enumerating
// every (filter1, filter2, filter3, metric) combination as its own
// instruction variant, the sub-mnemonic is composed at render time from
// this one record.
type Radar struct {
	Filters  [3]Filter
	Metric   Metric
	Building Register
	Order    Register
	Result   Register
}

func (i Radar) render(resolve func(Waypoint) (int, bool)) string {
	return fmt.Sprintf("radar %s %s %s %s %s %s %s",
		filterMnemonics[i.Filters[0]], filterMnemonics[i.Filters[1]], filterMnemonics[i.Filters[2]],
		metricMnemonics[i.Metric], i.Building.print(resolve), i.Order.print(resolve), i.Result.print(resolve))
}
