package codegen

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/calestialgem/hlml/lang/semantic"
)

func TestBuiltinIDsSortedAndStable(t *testing.T) {
	ids := BuiltinIDs()
	require.True(t, sort.StringsAreSorted(ids))
	require.Equal(t, ids, BuiltinIDs())
}

func TestBuiltinIDsBuildWithoutPanicking(t *testing.T) {
	for _, id := range BuiltinIDs() {
		spec := Builtins[id]
		arity := spec.arity
		if spec.kind == semantic.BuiltinWithDummy {
			arity++
		}
		args := make([]Register, arity)
		for i := range args {
			args[i] = NullRegister
		}
		require.NotPanics(t, func() { BuildInstruction(id, args) })
	}
}
