// Package demo stands in for the out-of-scope front-end (spec.md §6.3 calls
// the launcher "out of scope"): it hand-builds a few named semantic.Target
// values so the hlmlc CLI and lang/codegen's own tests have something
// concrete to compile without a lexer/parser/checker in this repository.
package demo

import "github.com/calestialgem/hlml/lang/semantic"

// Targets maps a demo name to the Target it builds. New demos are added by
// appending an entry here.
var Targets = map[string]func() *semantic.Target{
	"counter": counterTarget,
	"message": messageTarget,
}

// counterTarget increments a global counter ten times through a user
// procedure taking the counter by reference, then prints it.
func counterTarget() *semantic.Target {
	const subject = "counter"
	owner := semantic.Name{Source: subject, Identifier: "tick"}

	tick := &semantic.UserProcedure{
		Parameters: []semantic.Parameter{{Name: "value", InOut: true}},
		Body:       &semantic.Increment{Target: &semantic.ParameterAccess{Index: 0}},
	}

	counter := &semantic.GlobalVariable{
		Initializer: &semantic.Constant{Kind: semantic.NumberConstantKind, Number: 0},
	}
	counterName := semantic.Name{Source: subject, Identifier: "counter"}

	printID := "print"
	printProc := &semantic.BuiltinProcedure{ID: printID, Arity: 1, Kind: semantic.BuiltinDirect}
	printName := semantic.Name{Source: subject, Identifier: "print"}

	flushID := "printflush"
	flushProc := &semantic.BuiltinProcedure{ID: flushID, Arity: 1, Kind: semantic.BuiltinDirect}
	flushName := semantic.Name{Source: subject, Identifier: "printflush"}

	loopBody := &semantic.Discard{
		Expr: &semantic.Call{
			Procedure: owner,
			Args:      []semantic.Expression{&semantic.GlobalVariableAccess{Name: counterName}},
		},
	}

	entrypoint := &semantic.Entrypoint{
		Deps: []semantic.Name{owner, counterName, printName, flushName},
		Body: &semantic.Block{Statements: []semantic.Statement{
			&semantic.While{
				Cond: &semantic.BinaryExpr{
					Op:    semantic.LessThan,
					Left:  &semantic.GlobalVariableAccess{Name: counterName},
					Right: &semantic.Constant{Kind: semantic.NumberConstantKind, Number: 10},
				},
				Body: loopBody,
			},
			&semantic.Discard{Expr: &semantic.Call{
				Procedure: printName,
				Args:      []semantic.Expression{&semantic.GlobalVariableAccess{Name: counterName}},
			}},
			&semantic.Discard{Expr: &semantic.Call{
				Procedure: flushName,
				Args:      []semantic.Expression{&semantic.BuiltinAccess{Name: "message1"}},
			}},
		}},
	}

	src := &semantic.Source{}
	src.AddGlobal("tick", tick)
	src.AddGlobal("counter", counter)
	src.AddGlobal("print", printProc)
	src.AddGlobal("printflush", flushProc)
	src.Entrypoint = entrypoint

	return &semantic.Target{
		Name:    subject,
		Sources: map[string]*semantic.Source{subject: src},
	}
}

// messageTarget prints a fixed string to the first linked message building.
func messageTarget() *semantic.Target {
	const subject = "message"

	printProc := &semantic.BuiltinProcedure{ID: "print", Arity: 1, Kind: semantic.BuiltinDirect}
	printName := semantic.Name{Source: subject, Identifier: "print"}
	flushProc := &semantic.BuiltinProcedure{ID: "printflush", Arity: 1, Kind: semantic.BuiltinDirect}
	flushName := semantic.Name{Source: subject, Identifier: "printflush"}

	entrypoint := &semantic.Entrypoint{
		Deps: []semantic.Name{printName, flushName},
		Body: &semantic.Block{Statements: []semantic.Statement{
			&semantic.Discard{Expr: &semantic.Call{
				Procedure: printName,
				Args:      []semantic.Expression{&semantic.Constant{Kind: semantic.StringConstantKind, Text: "hello"}},
			}},
			&semantic.Discard{Expr: &semantic.Call{
				Procedure: flushName,
				Args:      []semantic.Expression{&semantic.LinkAccess{Building: "message1"}},
			}},
		}},
	}

	src := &semantic.Source{}
	src.AddGlobal("print", printProc)
	src.AddGlobal("printflush", flushProc)
	src.Entrypoint = entrypoint

	return &semantic.Target{
		Name:    subject,
		Sources: map[string]*semantic.Source{subject: src},
	}
}
