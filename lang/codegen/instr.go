package codegen

import (
	"fmt"

	"github.com/calestialgem/hlml/lang/semantic"
)

// binaryMnemonics maps semantic.BinaryOpKind to its assembly mnemonic
// (spec.md §3, instruction family 2). Sub and Div are not called out
// explicitly in the prose list there ("e.g. add, mul, idiv, mod, ...") but
// the family clearly needs them; naming follows the same scheme as their
// listed siblings.
var binaryMnemonics = [...]string{
	semantic.Add:           "add",
	semantic.Sub:           "sub",
	semantic.Mul:           "mul",
	semantic.Div:           "div",
	semantic.IDiv:          "idiv",
	semantic.Mod:           "mod",
	semantic.Shl:           "shl",
	semantic.Shr:           "shr",
	semantic.And:           "and",
	semantic.Or:            "or",
	semantic.Xor:           "xor",
	semantic.Equal:         "equal",
	semantic.NotEqual:      "notEqual",
	semantic.StrictEqual:   "strictEqual",
	semantic.LessThan:      "lessThan",
	semantic.LessThanEq:    "lessThanEq",
	semantic.GreaterThan:   "greaterThan",
	semantic.GreaterThanEq: "greaterThanEq",
}

// Set is a plain value copy.
type Set struct {
	Target Register
	Source Register
}

func (i Set) render(resolve func(Waypoint) (int, bool)) string {
	return fmt.Sprintf("set %s %s", i.Target.print(resolve), i.Source.print(resolve))
}

// BinaryOp is the op<kind> family: arithmetic, bitwise and comparison.
type BinaryOp struct {
	Kind   semantic.BinaryOpKind
	Target Register
	Left   Register
	Right  Register
}

func (i BinaryOp) render(resolve func(Waypoint) (int, bool)) string {
	return fmt.Sprintf("op %s %s %s %s", binaryMnemonics[i.Kind],
		i.Target.print(resolve), i.Left.print(resolve), i.Right.print(resolve))
}

// UnaryOp is the single dedicated unary opcode (bitwise not); the other
// three unary shapes spec.md §4.4.2 names synthesize a BinaryOp against a
// zero constant instead of needing their own instruction variant.
type UnaryOp struct {
	Target  Register
	Operand Register
}

func (i UnaryOp) render(resolve func(Waypoint) (int, bool)) string {
	return fmt.Sprintf("op not %s %s 0", i.Target.print(resolve), i.Operand.print(resolve))
}

// JumpAlways unconditionally transfers control to Goal.
type JumpAlways struct {
	Goal Waypoint
}

func (i JumpAlways) render(resolve func(Waypoint) (int, bool)) string {
	addr, ok := resolve(i.Goal)
	if !ok {
		panic("unreachable: resolving an undefined waypoint")
	}
	return fmt.Sprintf("jump %d always", addr)
}

// JumpIfTrue transfers control to Goal when Cond is true.
type JumpIfTrue struct {
	Goal Waypoint
	Cond Register
}

func (i JumpIfTrue) render(resolve func(Waypoint) (int, bool)) string {
	addr, ok := resolve(i.Goal)
	if !ok {
		panic("unreachable: resolving an undefined waypoint")
	}
	return fmt.Sprintf("jump %d equal true %s", addr, i.Cond.print(resolve))
}

// JumpIfFalse transfers control to Goal when Cond is false.
type JumpIfFalse struct {
	Goal Waypoint
	Cond Register
}

func (i JumpIfFalse) render(resolve func(Waypoint) (int, bool)) string {
	addr, ok := resolve(i.Goal)
	if !ok {
		panic("unreachable: resolving an undefined waypoint")
	}
	return fmt.Sprintf("jump %d equal false %s", addr, i.Cond.print(resolve))
}

// End is the program terminator.
type End struct{}

func (End) render(func(Waypoint) (int, bool)) string { return "end" }

// Sensor reads a named property off an object.
type Sensor struct {
	Result   Register
	Object   Register
	Property Register
}

func (i Sensor) render(resolve func(Waypoint) (int, bool)) string {
	return fmt.Sprintf("sensor %s %s %s", i.Result.print(resolve), i.Object.print(resolve), i.Property.print(resolve))
}

// MemoryRead reads a cell at Address into Result.
type MemoryRead struct {
	Result  Register
	Cell    Register
	Address Register
}

func (i MemoryRead) render(resolve func(Waypoint) (int, bool)) string {
	return fmt.Sprintf("read %s %s %s", i.Result.print(resolve), i.Cell.print(resolve), i.Address.print(resolve))
}

// MemoryWrite writes Value into a cell at Address.
type MemoryWrite struct {
	Value   Register
	Cell    Register
	Address Register
}

func (i MemoryWrite) render(resolve func(Waypoint) (int, bool)) string {
	return fmt.Sprintf("write %s %s %s", i.Value.print(resolve), i.Cell.print(resolve), i.Address.print(resolve))
}

// Wait stalls execution for Seconds.
type Wait struct {
	Seconds Register
}

func (i Wait) render(resolve func(Waypoint) (int, bool)) string {
	return fmt.Sprintf("wait %s", i.Seconds.print(resolve))
}

// Stop halts processor execution.
type Stop struct{}

func (Stop) render(func(Waypoint) (int, bool)) string { return "stop" }

// Print appends Value to the text buffer.
type Print struct {
	Value Register
}

func (i Print) render(resolve func(Waypoint) (int, bool)) string {
	return fmt.Sprintf("print %s", i.Value.print(resolve))
}

// PrintFlush flushes the text buffer to Target.
type PrintFlush struct {
	Target Register
}

func (i PrintFlush) render(resolve func(Waypoint) (int, bool)) string {
	return fmt.Sprintf("printflush %s", i.Target.print(resolve))
}

// GetLink resolves the Index-th linked building into Result.
type GetLink struct {
	Result Register
	Index  Register
}

func (i GetLink) render(resolve func(Waypoint) (int, bool)) string {
	return fmt.Sprintf("getlink %s %s", i.Result.print(resolve), i.Index.print(resolve))
}
