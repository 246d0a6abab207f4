package codegen

import (
	"fmt"
	"strconv"

	"github.com/calestialgem/hlml/lang/semantic"
)

// registerKind tags the variant carried by a Register. Kept unexported: all
// construction goes through the constructor functions below so a Register
// value is always well-formed (exactly the fields its kind needs are set).
type registerKind uint8

const (
	regGlobal registerKind = iota
	regLocal
	regParameter
	regTemporary
	regNumberConstant
	regColorConstant
	regStringConstant
	regLink
	regInstructionAddress
	regBuiltin
	regCounter
	regNull
)

// Register is a tagged sum of value-location tags, per spec.md §3. It
// carries no lifetime of its own; a Temporary's validity is governed by
// Stack (stack.go). Registers are cheap, comparable value types, freely
// copyable.
type Register struct {
	kind registerKind

	// regGlobal, regLocal, regParameter
	owner      semantic.Name
	identifier string
	index      int // regParameter, regTemporary

	// regLocal also needs the owning source when the owner is synthetic
	// (the entrypoint); owner already carries it via Name.Source.

	numberConstant float64
	colorConstant  uint32
	stringConstant string
	link           string
	builtin        string
	waypoint       Waypoint
}

// Global returns the Register naming a global variable slot.
func Global(name semantic.Name) Register {
	return Register{kind: regGlobal, owner: name}
}

// Local returns the Register naming a local slot scoped to owner.
func Local(owner semantic.Name, identifier string) Register {
	return Register{kind: regLocal, owner: owner, identifier: identifier}
}

// Parameter returns the Register naming the i-th parameter slot of
// procedure.
func Parameter(procedure semantic.Name, index int) Register {
	return Register{kind: regParameter, owner: procedure, index: index}
}

// Temporary returns the Register naming scratch slot index.
func Temporary(index int) Register {
	return Register{kind: regTemporary, index: index}
}

// NumberConstant returns an inlined numeric literal Register.
func NumberConstant(v float64) Register {
	return Register{kind: regNumberConstant, numberConstant: v}
}

// ColorConstant returns an inlined packed-color literal Register.
func ColorConstant(v uint32) Register {
	return Register{kind: regColorConstant, colorConstant: v}
}

// StringConstant returns an inlined string literal Register.
func StringConstant(v string) Register {
	return Register{kind: regStringConstant, stringConstant: v}
}

// Link returns the Register naming a linked building.
func Link(building string) Register {
	return Register{kind: regLink, link: building}
}

// InstructionAddress returns a late-bound Register equal to the resolved
// index of waypoint once the Program is serialized.
func InstructionAddress(waypoint Waypoint) Register {
	return Register{kind: regInstructionAddress, waypoint: waypoint}
}

// Builtin returns the Register naming a fixed hardware slot, printed
// "@name".
func Builtin(name string) Register {
	return Register{kind: regBuiltin, builtin: name}
}

// CounterRegister is the Register naming the instruction pointer, "@counter".
var CounterRegister = Register{kind: regCounter}

// NullRegister is the Register naming the null sentinel value.
var NullRegister = Register{kind: regNull}

// IsTemporary reports whether r is a Temporary, and if so its index.
func (r Register) IsTemporary() (int, bool) {
	if r.kind == regTemporary {
		return r.index, true
	}
	return 0, false
}

// IsVolatile reports whether r is a legitimate copy-back destination: an
// actual writable L-value slot (global, local or parameter), as opposed to
// a compile-time constant, address, link or builtin (spec.md §4.4.2,
// "Volatile argument" in the glossary).
func (r Register) IsVolatile() bool {
	switch r.kind {
	case regGlobal, regLocal, regParameter:
		return true
	default:
		return false
	}
}

// returnValueIdent names the synthetic local slot holding a procedure's
// return value; returnLocationIdent names the slot holding the address to
// jump back to.
const (
	returnValueIdent    = "return$value"
	returnLocationIdent = "return$location"
)

// ReturnValue returns the Register for procedure's return-value slot.
func ReturnValue(procedure semantic.Name) Register {
	return Local(procedure, returnValueIdent)
}

// ReturnLocation returns the Register for procedure's return-address slot.
func ReturnLocation(procedure semantic.Name) Register {
	return Local(procedure, returnLocationIdent)
}

// print renders r in the target dialect's register syntax (spec.md §4.1,
// §6.2). resolve maps an InstructionAddress operand's Waypoint to its
// instruction index; it is only called for InstructionAddress registers.
func (r Register) print(resolve func(Waypoint) (int, bool)) string {
	switch r.kind {
	case regGlobal:
		return fmt.Sprintf("%s$%s", r.owner.Source, r.owner.Identifier)
	case regLocal:
		return fmt.Sprintf("%s$%s$%s", r.owner.Source, r.owner.Identifier, r.identifier)
	case regParameter:
		return fmt.Sprintf("%s$%s$param$%d", r.owner.Source, r.owner.Identifier, r.index)
	case regTemporary:
		return "_" + strconv.Itoa(r.index)
	case regNumberConstant:
		return formatNumber(r.numberConstant)
	case regColorConstant:
		return formatColor(r.colorConstant)
	case regStringConstant:
		return strconv.Quote(r.stringConstant)
	case regLink:
		return r.link
	case regInstructionAddress:
		idx, ok := resolve(r.waypoint)
		if !ok {
			panic("unreachable: resolving undefined waypoint")
		}
		return strconv.Itoa(idx)
	case regBuiltin:
		return "@" + r.builtin
	case regCounter:
		return "@counter"
	case regNull:
		return "null"
	default:
		panic("unreachable: unknown register kind")
	}
}

// formatNumber prints v with the least digits that preserve its value,
// per spec.md §4.1's serialization contract.
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// formatColor prints a packed RGBA color as "%RRGGBBAA".
func formatColor(v uint32) string {
	return fmt.Sprintf("%%%08X", v)
}
