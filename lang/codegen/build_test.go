package codegen

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/calestialgem/hlml/lang/semantic"
)

func nameIn(subject, identifier string) semantic.Name {
	return semantic.Name{Source: subject, Identifier: identifier}
}

func TestBuildMissingEntrypoint(t *testing.T) {
	target := &semantic.Target{
		Name:    "empty",
		Sources: map[string]*semantic.Source{"empty": {}},
	}
	_, err := Build("empty", t.TempDir(), target)
	require.ErrorIs(t, err, ErrMissingEntrypoint)
}

func TestBuildGlobalInitializerThenPrint(t *testing.T) {
	const subject = "greet"
	x := nameIn(subject, "x")
	print := nameIn(subject, "print")
	flush := nameIn(subject, "printflush")

	src := &semantic.Source{}
	src.AddGlobal("x", &semantic.GlobalVariable{
		Initializer: &semantic.Constant{Kind: semantic.NumberConstantKind, Number: 5},
	})
	src.AddGlobal("print", &semantic.BuiltinProcedure{ID: "print", Arity: 1, Kind: semantic.BuiltinDirect})
	src.AddGlobal("printflush", &semantic.BuiltinProcedure{ID: "printflush", Arity: 1, Kind: semantic.BuiltinDirect})
	src.Entrypoint = &semantic.Entrypoint{
		Deps: []semantic.Name{x, print, flush},
		Body: &semantic.Block{Statements: []semantic.Statement{
			&semantic.Discard{Expr: &semantic.Call{
				Procedure: print,
				Args:      []semantic.Expression{&semantic.GlobalVariableAccess{Name: x}},
			}},
			&semantic.Discard{Expr: &semantic.Call{
				Procedure: flush,
				Args:      []semantic.Expression{&semantic.LinkAccess{Building: "message1"}},
			}},
		}},
	}

	target := &semantic.Target{Name: subject, Sources: map[string]*semantic.Source{subject: src}}

	dir := t.TempDir()
	path, err := Build(subject, dir, target)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, subject+".mlog"), path)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(content), "\n"), "\n")

	require.Equal(t, []string{
		"set greet$x 5",
		"print greet$x",
		"printflush message1",
		"end",
	}, lines)
}

func TestBuildUserProcedureCallAndReturn(t *testing.T) {
	const subject = "callee"
	double := nameIn(subject, "double")

	proc := &semantic.UserProcedure{
		Parameters: []semantic.Parameter{{Name: "n"}},
		Body: &semantic.Return{Value: &semantic.BinaryExpr{
			Op:    semantic.Mul,
			Left:  &semantic.ParameterAccess{Index: 0},
			Right: &semantic.Constant{Kind: semantic.NumberConstantKind, Number: 2},
		}},
	}

	src := &semantic.Source{}
	src.AddGlobal("double", proc)
	src.Entrypoint = &semantic.Entrypoint{
		Deps: []semantic.Name{double},
		Body: &semantic.Discard{Expr: &semantic.Call{
			Procedure: double,
			Args:      []semantic.Expression{&semantic.Constant{Kind: semantic.NumberConstantKind, Number: 21}},
		}},
	}

	target := &semantic.Target{Name: subject, Sources: map[string]*semantic.Source{subject: src}}

	dir := t.TempDir()
	path, err := Build(subject, dir, target)
	require.NoError(t, err)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(content)

	// The call site sets the return address and the parameter, jumps into the
	// procedure, and the procedure's own body restores control by writing
	// @counter (spec.md §4.4.2's non-reentrant call convention). The
	// procedure's unconditional fall-off trailer is appended after it and is
	// unreachable here since the body always returns explicitly — dead code
	// left in place, per the Non-goal that excludes optimization passes.
	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	require.Equal(t, "set callee$double$param$0 21", lines[1])
	require.True(t, strings.Contains(text, "op mul"))
	require.True(t, strings.Contains(text, "set @counter callee$double$return$location"))
	require.Equal(t, "end", lines[3])
}
