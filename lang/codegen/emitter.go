package codegen

import (
	"github.com/dolthub/swiss"

	"github.com/calestialgem/hlml/lang/semantic"
)

// entrypointIdentifier is the synthetic owner identifier for registers
// local to the program's own entrypoint (spec.md §3, Register.Local: the
// owner of the entrypoint is named "{target}$entrypoint").
const entrypointIdentifier = "entrypoint"

// emitter holds the mutable state of one Build call: Program, Stack, the
// dependency-closure bookkeeping and the current owner (spec.md §4.3, §5).
// A fresh emitter is constructed per Build call; none of its state is
// shared across invocations.
type emitter struct {
	target *semantic.Target
	prog   *Program
	stack  Stack

	built      *swiss.Map[semantic.Name, struct{}]
	builtOrder []semantic.Name // unused beyond bookkeeping; kept for debugging parity with built set

	initialized []semantic.Name // globals with initializers, in build order
	procOrder   []semantic.Name // user procedures, in build order
	addresses   map[semantic.Name]Waypoint

	current semantic.Name
	loops   []LoopFrame
}

func newEmitter(target *semantic.Target) *emitter {
	return &emitter{
		target:    target,
		prog:      NewProgram(),
		built:     swiss.NewMap[semantic.Name, struct{}](8),
		addresses: make(map[semantic.Name]Waypoint),
	}
}

// run executes the full top-level emission algorithm of spec.md §4.3 for
// src, the target's own source (already confirmed to carry an entrypoint by
// the caller).
func (e *emitter) run(src *semantic.Source) {
	for _, dep := range src.Entrypoint.Dependencies() {
		e.build(dep)
	}

	for _, name := range e.initialized {
		e.current = name
		def := e.lookup(name)
		gv := def.(*semantic.GlobalVariable)
		v := e.expr(gv.Initializer)
		e.stack.Pop(v)
		e.prog.Append(Set{Target: Global(name), Source: v})
	}

	e.current = semantic.Name{Source: e.target.Name, Identifier: entrypointIdentifier}
	e.stmt(src.Entrypoint.Body)
	e.prog.Append(End{})

	for _, name := range e.procOrder {
		proc := e.lookup(name).(*semantic.UserProcedure)
		e.current = name
		e.prog.Define(e.addresses[name])
		e.stmt(proc.Body)
		e.prog.Append(Set{Target: ReturnValue(name), Source: NullRegister})
		e.prog.Append(Set{Target: CounterRegister, Source: ReturnLocation(name)})
	}
}

// build walks the dependency closure rooted at name, post-order, marking
// each name as built before recursing so cyclic initializer graphs (spec.md
// §9) terminate instead of re-entering (the marker-then-recurse pattern).
func (e *emitter) build(name semantic.Name) {
	if _, ok := e.built.Get(name); ok {
		return
	}
	e.built.Put(name, struct{}{})
	e.builtOrder = append(e.builtOrder, name)

	def := e.lookup(name)
	for _, dep := range def.Dependencies() {
		e.build(dep)
	}

	switch d := def.(type) {
	case *semantic.UserProcedure:
		e.addresses[name] = e.prog.Waypoint()
		e.procOrder = append(e.procOrder, name)
	case *semantic.GlobalVariable:
		if d.Initializer != nil {
			e.initialized = append(e.initialized, name)
		}
	default:
		// built-in procedure: no side effect
	}
}

// lookup resolves name to its Definition. It is an internal invariant
// violation for name to be unresolvable: the checker must never reference
// an undeclared global.
func (e *emitter) lookup(name semantic.Name) semantic.Definition {
	src, ok := e.target.Sources[name.Source]
	if !ok {
		panic("unreachable: unknown source: " + name.Source)
	}
	def, ok := src.Global(name.Identifier)
	if !ok {
		panic("unreachable: unknown global: " + name.Source + "$" + name.Identifier)
	}
	return def
}

// ---- statements (spec.md §4.4.1) ----

func (e *emitter) stmt(s semantic.Statement) {
	switch s := s.(type) {
	case *semantic.Block:
		for _, inner := range s.Statements {
			e.stmt(inner)
		}

	case *semantic.LocalVar:
		if s.Initializer != nil {
			v := e.expr(s.Initializer)
			e.stack.Pop(v)
			e.prog.Append(Set{Target: Local(e.current, s.Identifier), Source: v})
		}

	case *semantic.If:
		e.hoist(s.HoistedVars)
		cond := e.expr(s.Cond)
		wElse := e.prog.Waypoint()
		e.prog.Append(JumpIfFalse{Goal: wElse, Cond: cond})
		e.stack.Pop(cond)
		e.stmt(s.Then)
		wEnd := e.prog.Waypoint()
		e.prog.Append(JumpAlways{Goal: wEnd})
		e.prog.Define(wElse)
		if s.Else != nil {
			e.stmt(s.Else)
		}
		e.prog.Define(wEnd)

	case *semantic.While:
		e.hoist(s.HoistedVars)
		cond := e.expr(s.Cond)
		wLoop := e.prog.Waypoint()
		e.prog.Append(JumpIfTrue{Goal: wLoop, Cond: cond})
		e.stack.Pop(cond)
		if s.ZeroBranch != nil {
			e.stmt(s.ZeroBranch)
		}
		wEnd := e.prog.Waypoint()
		e.prog.Append(JumpAlways{Goal: wEnd})
		e.prog.Define(wLoop)
		wBegin := e.prog.Waypoint()
		e.loops = append(e.loops, LoopFrame{Begin: wBegin, End: wEnd})
		e.stmt(s.Body)
		e.loops = e.loops[:len(e.loops)-1]
		e.prog.Define(wBegin)
		if s.Interleaved != nil {
			e.stmt(s.Interleaved)
		}
		cond2 := e.expr(s.Cond)
		e.prog.Append(JumpIfTrue{Goal: wLoop, Cond: cond2})
		e.stack.Pop(cond2)
		e.prog.Define(wEnd)

	case *semantic.Break:
		e.prog.Append(JumpAlways{Goal: e.loopFrame(s.LoopDepth).End})

	case *semantic.Continue:
		e.prog.Append(JumpAlways{Goal: e.loopFrame(s.LoopDepth).Begin})

	case *semantic.Return:
		if s.Value != nil {
			v := e.expr(s.Value)
			e.stack.Pop(v)
			e.prog.Append(Set{Target: ReturnValue(e.current), Source: v})
		}
		e.prog.Append(Set{Target: CounterRegister, Source: ReturnLocation(e.current)})

	case *semantic.Increment:
		t := e.expr(s.Target)
		op := semantic.Add
		if s.IsDecrement {
			op = semantic.Sub
		}
		e.prog.Append(BinaryOp{Kind: op, Target: t, Left: t, Right: NumberConstant(1)})
		e.stack.Pop(t)

	case *semantic.DirectlyAssign:
		t := e.expr(s.Target)
		v := e.expr(s.Source)
		e.prog.Append(Set{Target: t, Source: v})
		e.stack.Pop(v)
		e.stack.Pop(t)

	case *semantic.CompoundAssign:
		t := e.expr(s.Target)
		v := e.expr(s.Source)
		e.prog.Append(BinaryOp{Kind: s.Op, Target: t, Left: t, Right: v})
		e.stack.Pop(v)
		e.stack.Pop(t)

	case *semantic.Discard:
		v := e.expr(s.Expr)
		e.stack.Pop(v)

	default:
		panic("unreachable: unknown statement kind")
	}
}

func (e *emitter) hoist(vars []*semantic.LocalVar) {
	for _, v := range vars {
		e.stmt(v)
	}
}

func (e *emitter) loopFrame(depth int) LoopFrame {
	idx := len(e.loops) - 1 - depth
	if idx < 0 || idx >= len(e.loops) {
		panic("unreachable: break/continue loop depth out of range")
	}
	return e.loops[idx]
}

// ---- expressions (spec.md §4.4.2) ----

func (e *emitter) expr(x semantic.Expression) Register {
	switch x := x.(type) {
	case *semantic.Logical:
		return e.logical(x)

	case *semantic.BinaryExpr:
		left := e.expr(x.Left)
		right := e.expr(x.Right)
		target := e.stack.PushReusingPair(left, right)
		e.prog.Append(BinaryOp{Kind: x.Op, Target: target, Left: left, Right: right})
		return target

	case *semantic.UnaryExpr:
		return e.unary(x)

	case *semantic.Constant:
		switch x.Kind {
		case semantic.NumberConstantKind:
			return NumberConstant(x.Number)
		case semantic.ColorConstantKind:
			return ColorConstant(x.Color)
		case semantic.StringConstantKind:
			return StringConstant(x.Text)
		case semantic.NullConstantKind:
			return NullRegister
		default:
			panic("unreachable: unknown constant kind")
		}

	case *semantic.GlobalVariableAccess:
		return Global(x.Name)

	case *semantic.LocalVariableAccess:
		return Local(e.current, x.Identifier)

	case *semantic.ParameterAccess:
		return Parameter(e.current, x.Index)

	case *semantic.BuiltinAccess:
		return Builtin(x.Name)

	case *semantic.LinkAccess:
		return Link(x.Building)

	case *semantic.MemberAccess:
		obj := e.expr(x.Object)
		member := e.expr(x.Member)
		target := e.stack.PushReusingPair(obj, member)
		e.prog.Append(Sensor{Result: target, Object: obj, Property: member})
		return target

	case *semantic.Call:
		return e.call(x)

	default:
		panic("unreachable: unknown expression kind")
	}
}

func (e *emitter) logical(x *semantic.Logical) Register {
	t := e.stack.Push()
	left := e.expr(x.Left)
	e.prog.Append(Set{Target: t, Source: left})
	wEnd := e.prog.Waypoint()
	if x.Kind == semantic.LogicalOr {
		e.prog.Append(JumpIfTrue{Goal: wEnd, Cond: t})
	} else {
		e.prog.Append(JumpIfFalse{Goal: wEnd, Cond: t})
	}
	e.stack.Pop(left)
	right := e.expr(x.Right)
	e.stack.Pop(right)
	e.prog.Append(Set{Target: t, Source: right})
	e.prog.Define(wEnd)
	return t
}

func (e *emitter) unary(x *semantic.UnaryExpr) Register {
	if x.Op == semantic.BitwiseNot {
		operand := e.expr(x.Operand)
		target := e.stack.PushReusing(operand)
		e.prog.Append(UnaryOp{Target: target, Operand: operand})
		return target
	}

	var kind semantic.BinaryOpKind
	switch x.Op {
	case semantic.Promote:
		kind = semantic.Add
	case semantic.Negate:
		kind = semantic.Sub
	case semantic.LogicalNot:
		kind = semantic.NotEqual
	default:
		panic("unreachable: unknown unary operator kind")
	}

	zero := NumberConstant(0)
	operand := e.expr(x.Operand)
	target := e.stack.PushReusingPair(zero, operand)
	e.prog.Append(BinaryOp{Kind: kind, Target: target, Left: zero, Right: operand})
	return target
}

func (e *emitter) call(x *semantic.Call) Register {
	switch def := e.lookup(x.Procedure).(type) {
	case *semantic.UserProcedure:
		return e.callUser(x.Procedure, def, x.Args)
	case *semantic.BuiltinProcedure:
		return e.callBuiltin(def, x.Args)
	default:
		panic("unreachable: call target is not a procedure")
	}
}

func (e *emitter) callUser(name semantic.Name, proc *semantic.UserProcedure, args []semantic.Expression) Register {
	wAfter := e.prog.Waypoint()
	e.prog.Append(Set{Target: ReturnLocation(name), Source: InstructionAddress(wAfter)})

	argRegs := make([]Register, len(args))
	for i, argExpr := range args {
		v := e.expr(argExpr)
		argRegs[i] = v
		e.prog.Append(Set{Target: Parameter(name, i), Source: v})
		e.stack.Pop(v)
	}
	for i := len(args); i < len(proc.Parameters); i++ {
		e.prog.Append(Set{Target: Parameter(name, i), Source: NullRegister})
	}

	e.prog.Append(JumpAlways{Goal: e.addresses[name]})
	e.prog.Define(wAfter)

	for i, p := range proc.Parameters {
		if i >= len(argRegs) {
			continue
		}
		if p.InOut && argRegs[i].IsVolatile() {
			e.prog.Append(Set{Target: argRegs[i], Source: Parameter(name, i)})
		}
	}

	return ReturnValue(name)
}

func (e *emitter) callBuiltin(proc *semantic.BuiltinProcedure, args []semantic.Expression) Register {
	lowered := e.buildArgs(proc, args)
	e.prog.Append(BuildInstruction(proc.ID, lowered))
	// All of an instruction's operands are live until the instruction that
	// consumes them together is emitted; only now can their slots be freed,
	// popping in reverse (LIFO) order of allocation.
	for i := len(args) - 1; i >= 0; i-- {
		e.stack.Pop(e.argAt(lowered, proc, i))
	}
	return NullRegister
}

// argAt returns the register built-from-args that corresponds to the i-th
// user-supplied argument, undoing the dummy splice callBuiltin must unwind
// when popping.
func (e *emitter) argAt(built []Register, proc *semantic.BuiltinProcedure, i int) Register {
	if proc.Kind == semantic.BuiltinWithDummy && i >= 1 {
		return built[i+1]
	}
	return built[i]
}

// buildArgs lowers each provided argument, pads with Null up to Arity, and
// splices in the fixed dummy argument between positions 0 and 1 for
// BuiltinWithDummy procedures (spec.md §4.4.3). Arguments stay on the stack
// until the caller has built and emitted the instruction that consumes them
// all together.
func (e *emitter) buildArgs(proc *semantic.BuiltinProcedure, args []semantic.Expression) []Register {
	lowered := make([]Register, 0, proc.Arity)
	for _, a := range args {
		lowered = append(lowered, e.expr(a))
	}
	for len(lowered) < proc.Arity {
		lowered = append(lowered, NullRegister)
	}

	if proc.Kind != semantic.BuiltinWithDummy {
		return lowered
	}
	out := make([]Register, 0, len(lowered)+1)
	out = append(out, lowered[0])
	out = append(out, Link(proc.Dummy))
	out = append(out, lowered[1:]...)
	return out
}
