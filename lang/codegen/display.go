package codegen

import (
	"fmt"
	"strings"
)

// DrawKind enumerates the display primitives of spec.md §3 family 7 that
// share the "draw <sub>" mnemonic shape (everything except the standalone
// "drawflush"/"packcolor" instructions).
type DrawKind uint8

const (
	DrawClear DrawKind = iota
	DrawColor
	DrawCol
	DrawStroke
	DrawLine
	DrawRect
	DrawLineRect
	DrawPoly
	DrawLinePoly
	DrawTriangle
	DrawImage
)

var drawMnemonics = [...]string{
	DrawClear:    "clear",
	DrawColor:    "color",
	DrawCol:      "col",
	DrawStroke:   "stroke",
	DrawLine:     "line",
	DrawRect:     "rect",
	DrawLineRect: "linerect",
	DrawPoly:     "poly",
	DrawLinePoly: "linepoly",
	DrawTriangle: "triangle",
	DrawImage:    "image",
}

// drawArity is the fixed argument count of each draw sub-instruction, used
// to pad missing trailing arguments with Null (spec.md §4.4.3).
var drawArity = [...]int{
	DrawClear:    3,
	DrawColor:    4,
	DrawCol:      1,
	DrawStroke:   1,
	DrawLine:     4,
	DrawRect:     4,
	DrawLineRect: 4,
	DrawPoly:     5,
	DrawLinePoly: 5,
	DrawTriangle: 6,
	DrawImage:    5,
}

// Draw is a single "draw <sub> args..." instruction. Args is always padded
// to drawArity[Kind] entries by the builtin-call lowering helper.
type Draw struct {
	Kind DrawKind
	Args []Register
}

func (i Draw) render(resolve func(Waypoint) (int, bool)) string {
	return renderArgs("draw "+drawMnemonics[i.Kind], i.Args, resolve)
}

// DrawFlush flushes the draw buffer to Target.
type DrawFlush struct {
	Target Register
}

func (i DrawFlush) render(resolve func(Waypoint) (int, bool)) string {
	return fmt.Sprintf("drawflush %s", i.Target.print(resolve))
}

// PackColor packs four 0..1 channel values into Result.
type PackColor struct {
	Result     Register
	R, G, B, A Register
}

func (i PackColor) render(resolve func(Waypoint) (int, bool)) string {
	return renderArgs("packcolor", []Register{i.Result, i.R, i.G, i.B, i.A}, resolve)
}

// ControlKind enumerates the building-control family (spec.md §3 family 10).
type ControlKind uint8

const (
	ControlEnabled ControlKind = iota
	ControlShoot
	ControlShootp
	ControlConfig
	ControlColor
)

var controlMnemonics = [...]string{
	ControlEnabled: "enabled",
	ControlShoot:   "shoot",
	ControlShootp:  "shootp",
	ControlConfig:  "config",
	ControlColor:   "color",
}

var controlArity = [...]int{
	ControlEnabled: 2,
	ControlShoot:   4,
	ControlShootp:  3,
	ControlConfig:  2,
	ControlColor:   2,
}

// Control is a "control <sub> building args..." instruction.
type Control struct {
	Kind     ControlKind
	Building Register
	Args     []Register
}

func (i Control) render(resolve func(Waypoint) (int, bool)) string {
	args := append([]Register{i.Building}, i.Args...)
	return renderArgs("control "+controlMnemonics[i.Kind], args, resolve)
}

// UnitControlKind enumerates the unit-control family (spec.md §3 family 11).
type UnitControlKind uint8

const (
	UnitIdle UnitControlKind = iota
	UnitStop
	UnitMove
	UnitApproach
	UnitPathfind
	UnitAutoPathfind
	UnitBoost
	UnitTarget
	UnitTargetp
	UnitItemDrop
	UnitItemTake
	UnitPayDrop
	UnitPayTake
	UnitPayEnter
	UnitMine
	UnitFlag
	UnitBuild
	UnitGetBlock
	UnitWithin
	UnitUnbind
)

var unitControlMnemonics = [...]string{
	UnitIdle:         "idle",
	UnitStop:         "stop",
	UnitMove:         "move",
	UnitApproach:     "approach",
	UnitPathfind:     "pathfind",
	UnitAutoPathfind: "autoPathfind",
	UnitBoost:        "boost",
	UnitTarget:       "target",
	UnitTargetp:      "targetp",
	UnitItemDrop:     "itemDrop",
	UnitItemTake:     "itemTake",
	UnitPayDrop:      "payDrop",
	UnitPayTake:      "payTake",
	UnitPayEnter:     "payEnter",
	UnitMine:         "mine",
	UnitFlag:         "flag",
	UnitBuild:        "build",
	UnitGetBlock:     "getBlock",
	UnitWithin:       "within",
	UnitUnbind:       "unbind",
}

var unitControlArity = [...]int{
	UnitIdle:         0,
	UnitStop:         0,
	UnitMove:         2,
	UnitApproach:     3,
	UnitPathfind:     2,
	UnitAutoPathfind: 0,
	UnitBoost:        1,
	UnitTarget:       3,
	UnitTargetp:      2,
	UnitItemDrop:     2,
	UnitItemTake:     3,
	UnitPayDrop:      0,
	UnitPayTake:      1,
	UnitPayEnter:     0,
	UnitMine:         2,
	UnitFlag:         1,
	UnitBuild:        5,
	UnitGetBlock:     4,
	UnitWithin:       4,
	UnitUnbind:       0,
}

// UnitControl is a "ucontrol <sub> args..." instruction.
type UnitControl struct {
	Kind UnitControlKind
	Args []Register
}

func (i UnitControl) render(resolve func(Waypoint) (int, bool)) string {
	return renderArgs("ucontrol "+unitControlMnemonics[i.Kind], i.Args, resolve)
}

// LookupKind enumerates the content-lookup family (spec.md §3 family 12).
type LookupKind uint8

const (
	LookupBlock LookupKind = iota
	LookupUnit
	LookupItem
	LookupLiquid
)

var lookupMnemonics = [...]string{
	LookupBlock:  "block",
	LookupUnit:   "unit",
	LookupItem:   "item",
	LookupLiquid: "liquid",
}

// Lookup resolves the Index-th entry of a content table into Result.
type Lookup struct {
	Kind   LookupKind
	Result Register
	Index  Register
}

func (i Lookup) render(resolve func(Waypoint) (int, bool)) string {
	return fmt.Sprintf("lookup %s %s %s", lookupMnemonics[i.Kind], i.Result.print(resolve), i.Index.print(resolve))
}

// renderArgs prints "mnemonic arg1 arg2 ...", the shared layout of every
// table-driven instruction family above.
func renderArgs(mnemonic string, args []Register, resolve func(Waypoint) (int, bool)) string {
	var b strings.Builder
	b.WriteString(mnemonic)
	for _, a := range args {
		b.WriteByte(' ')
		b.WriteString(a.print(resolve))
	}
	return b.String()
}
