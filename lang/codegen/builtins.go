package codegen

import (
	"fmt"
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/calestialgem/hlml/lang/semantic"
)

// builtinSpec is one row of the built-in procedure table: it carries both
// the metadata a checker would stamp onto a semantic.BuiltinProcedure and
// the factory that turns the (already lowered, arity-padded) argument
// registers into the concrete Instruction (spec.md §4.4.2, §4.4.3).
type builtinSpec struct {
	arity int
	kind  semantic.BuiltinKind
	dummy string
	build func(args []Register) Instruction
}

// procedure returns the semantic.BuiltinProcedure a checker would produce
// for this table row, given id and its dependencies deps.
func (b builtinSpec) procedure(id string, deps ...semantic.Name) *semantic.BuiltinProcedure {
	return &semantic.BuiltinProcedure{
		Deps:  deps,
		ID:    id,
		Arity: b.arity,
		Kind:  b.kind,
		Dummy: b.dummy,
	}
}

// Builtins maps a BuiltinProcedure.ID to its codegen helper. IDs with the
// "radar:" prefix are not listed here; BuildInstruction parses them
// programmatically to avoid hand-enumerating the full filter x metric cross
// product (spec.md §4.5's implementation guidance).
var Builtins = map[string]builtinSpec{
	"read": {arity: 3, kind: semantic.BuiltinDirect, build: func(a []Register) Instruction {
		return MemoryRead{Result: a[0], Cell: a[1], Address: a[2]}
	}},
	// readcell1 is the "With dummy" pattern from spec.md §4.4.2: the user
	// supplies only (result, address) and the fixed cell name is spliced in
	// between positions 0 and 1 by buildArgs.
	"readcell1": {arity: 2, kind: semantic.BuiltinWithDummy, dummy: "cell1", build: func(a []Register) Instruction {
		return MemoryRead{Result: a[0], Cell: a[1], Address: a[2]}
	}},
	"write": {arity: 3, kind: semantic.BuiltinDirect, build: func(a []Register) Instruction {
		return MemoryWrite{Value: a[0], Cell: a[1], Address: a[2]}
	}},
	"drawflush": {arity: 1, kind: semantic.BuiltinDirect, build: func(a []Register) Instruction {
		return DrawFlush{Target: a[0]}
	}},
	"packcolor": {arity: 5, kind: semantic.BuiltinDirect, build: func(a []Register) Instruction {
		return PackColor{Result: a[0], R: a[1], G: a[2], B: a[3], A: a[4]}
	}},
	"print": {arity: 1, kind: semantic.BuiltinDirect, build: func(a []Register) Instruction {
		return Print{Value: a[0]}
	}},
	"printflush": {arity: 1, kind: semantic.BuiltinDirect, build: func(a []Register) Instruction {
		return PrintFlush{Target: a[0]}
	}},
	"getlink": {arity: 2, kind: semantic.BuiltinDirect, build: func(a []Register) Instruction {
		return GetLink{Result: a[0], Index: a[1]}
	}},
	"wait": {arity: 1, kind: semantic.BuiltinDirect, build: func(a []Register) Instruction {
		return Wait{Seconds: a[0]}
	}},
	"stop": {arity: 0, kind: semantic.BuiltinDirect, build: func(a []Register) Instruction {
		return Stop{}
	}},
}

func init() {
	for kind, arity := range drawArity {
		kind, arity := DrawKind(kind), arity
		Builtins["draw."+drawMnemonics[kind]] = builtinSpec{
			arity: arity, kind: semantic.BuiltinDirect,
			build: func(a []Register) Instruction { return Draw{Kind: kind, Args: append([]Register(nil), a...)} },
		}
	}
	for kind, arity := range controlArity {
		kind, arity := ControlKind(kind), arity
		Builtins["control."+controlMnemonics[kind]] = builtinSpec{
			arity: arity, kind: semantic.BuiltinDirect,
			build: func(a []Register) Instruction {
				return Control{Kind: kind, Building: a[0], Args: append([]Register(nil), a[1:]...)}
			},
		}
	}
	for kind, arity := range unitControlArity {
		kind, arity := UnitControlKind(kind), arity
		Builtins["ucontrol."+unitControlMnemonics[kind]] = builtinSpec{
			arity: arity, kind: semantic.BuiltinDirect,
			build: func(a []Register) Instruction { return UnitControl{Kind: kind, Args: append([]Register(nil), a...)} },
		}
	}
	for kind, mnemonic := range lookupMnemonics {
		kind := LookupKind(kind)
		_ = mnemonic
		Builtins["lookup."+lookupMnemonics[kind]] = builtinSpec{
			arity: 2, kind: semantic.BuiltinDirect,
			build: func(a []Register) Instruction { return Lookup{Kind: kind, Result: a[0], Index: a[1]} },
		}
	}
}

// BuiltinIDs returns every non-radar built-in procedure id in sorted order
// (the radar family's ids are open-ended and generated by RadarID instead).
// Used by the CLI's "builtins" command and by tests asserting table
// completeness.
func BuiltinIDs() []string {
	ids := maps.Keys(Builtins)
	slices.Sort(ids)
	return ids
}

// RadarID names the built-in procedure for one specific (filters, metric)
// combination of the radar family, canonicalizing filters first so two
// calls requesting the same multiset always name the same procedure
// (spec.md §4.5, testable property 5).
func RadarID(filters []Filter, metric Metric) string {
	f := CanonicalizeFilters(filters)
	return fmt.Sprintf("radar:%s:%s:%s:%s", filterMnemonics[f[0]], filterMnemonics[f[1]], filterMnemonics[f[2]], metricMnemonics[metric])
}

// RadarProcedure returns the semantic.BuiltinProcedure a checker would
// produce for a user-written radar call requesting filters/metric.
func RadarProcedure(filters []Filter, metric Metric) *semantic.BuiltinProcedure {
	return &semantic.BuiltinProcedure{
		ID:    RadarID(filters, metric),
		Arity: 3, // building, order, result
		Kind:  semantic.BuiltinDirect,
	}
}

var (
	filterByMnemonic = func() map[string]Filter {
		m := make(map[string]Filter, len(filterMnemonics))
		for f, s := range filterMnemonics {
			m[s] = Filter(f)
		}
		return m
	}()
	metricByMnemonic = func() map[string]Metric {
		m := make(map[string]Metric, len(metricMnemonics))
		for me, s := range metricMnemonics {
			m[s] = Metric(me)
		}
		return m
	}()
)

// BuildInstruction turns the arity-padded args of a built-in call into its
// Instruction, dispatching on id. It is an internal invariant violation to
// pass an id unknown to this table: the checker must never produce one.
func BuildInstruction(id string, args []Register) Instruction {
	if rest, ok := strings.CutPrefix(id, "radar:"); ok {
		parts := strings.Split(rest, ":")
		if len(parts) != 4 {
			panic("unreachable: malformed radar builtin id")
		}
		f0, ok0 := filterByMnemonic[parts[0]]
		f1, ok1 := filterByMnemonic[parts[1]]
		f2, ok2 := filterByMnemonic[parts[2]]
		m, okm := metricByMnemonic[parts[3]]
		if !ok0 || !ok1 || !ok2 || !okm {
			panic("unreachable: malformed radar builtin id")
		}
		return Radar{Filters: [3]Filter{f0, f1, f2}, Metric: m, Building: args[0], Order: args[1], Result: args[2]}
	}

	spec, ok := Builtins[id]
	if !ok {
		panic("unreachable: unknown builtin procedure id: " + id)
	}
	return spec.build(args)
}
