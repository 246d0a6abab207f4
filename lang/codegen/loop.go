package codegen

// LoopFrame pairs a loop's continue-target and exit-target waypoints
// (spec.md §3). The emitter keeps a stack of these, indexed by the
// break/continue statement's resolved loop-depth (0 == innermost).
type LoopFrame struct {
	Begin Waypoint // continue target
	End   Waypoint // break target
}
