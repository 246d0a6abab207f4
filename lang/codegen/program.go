package codegen

import (
	"bufio"
	"fmt"
	"io"
)

// Waypoint is an opaque handle to a not-yet-assigned instruction position
// (spec.md §3, §4.1). It is only ever produced by Program.Waypoint and only
// ever consumed by the same Program; defining or resolving a foreign or
// duplicate Waypoint is a programming error.
type Waypoint struct {
	index int
}

// Instruction is the closed sum of assembly instructions spec.md §3
// enumerates. Concrete variants live in instr.go, display.go and radar.go.
// render prints the instruction's mnemonic and operands,
// resolving any InstructionAddress/jump-target Waypoint operand through
// resolve.
type Instruction interface {
	render(resolve func(Waypoint) (int, bool)) string
}

// Program is the append-only instruction buffer plus the Waypoint -> index
// table (spec.md §3, §4.1). The zero value is an empty Program, the same
// one NewProgram returns.
type Program struct {
	instructions []Instruction
	targets      []int // targets[w.index] == -1 means undefined
}

// NewProgram returns an empty Program.
func NewProgram() *Program {
	return &Program{}
}

// Append pushes instruction onto the end of the Program. O(1).
func (p *Program) Append(instruction Instruction) {
	p.instructions = append(p.instructions, instruction)
}

// Len returns the number of instructions appended so far; equivalently, the
// index the next Append'd instruction will occupy.
func (p *Program) Len() int {
	return len(p.instructions)
}

// Waypoint creates a new, undefined Waypoint and returns its handle.
func (p *Program) Waypoint() Waypoint {
	w := Waypoint{index: len(p.targets)}
	p.targets = append(p.targets, -1)
	return w
}

// Define pins w to the index of the next instruction to be appended. It is
// an internal invariant violation (programming error, never reachable on
// well-formed emitter logic) to define a Waypoint twice or define one
// foreign to this Program.
func (p *Program) Define(w Waypoint) {
	if w.index < 0 || w.index >= len(p.targets) {
		panic("unreachable: defining a waypoint foreign to this program")
	}
	if p.targets[w.index] != -1 {
		panic("unreachable: defining an already-defined waypoint")
	}
	p.targets[w.index] = len(p.instructions)
}

// Resolve returns the pinned instruction index for w. It is an internal
// invariant violation to resolve an undefined or foreign Waypoint.
func (p *Program) Resolve(w Waypoint) int {
	idx, ok := p.tryResolve(w)
	if !ok {
		panic("unreachable: resolving an undefined waypoint")
	}
	return idx
}

func (p *Program) tryResolve(w Waypoint) (int, bool) {
	if w.index < 0 || w.index >= len(p.targets) {
		return 0, false
	}
	addr := p.targets[w.index]
	if addr == -1 {
		return 0, false
	}
	return addr, true
}

// Serialize writes one line per instruction to w, each terminated by "\n"
// on every platform; no platform-specific line separator is used.
func (p *Program) Serialize(w io.Writer) error {
	bw := bufio.NewWriter(w)
	resolve := p.tryResolve
	for _, instr := range p.instructions {
		if _, err := fmt.Fprintln(bw, instr.render(resolve)); err != nil {
			return err
		}
	}
	return bw.Flush()
}
