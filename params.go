package occluder

// BoxTypeFlags selects which faces of an emitted box are tessellated
// (spec §6, §9 "model them as typed bitflag values, not untyped
// integers, and validate at the boundary").
type BoxTypeFlags uint8

const (
	// BoxSides tessellates the four vertical faces of a box.
	BoxSides BoxTypeFlags = 1 << iota
	// BoxTop tessellates the top face.
	BoxTop
	// BoxBottom tessellates the bottom face.
	BoxBottom
	// BoxDiagonals replaces all faces with two crossed quads, a
	// cheap-proxy shape mutually exclusive with the face flags.
	BoxDiagonals
)

// BoxRegular is the union of all face flags — a fully closed box.
const BoxRegular = BoxSides | BoxTop | BoxBottom

func (f BoxTypeFlags) valid() bool {
	if f == 0 {
		return false
	}
	if f&BoxDiagonals != 0 {
		return f == BoxDiagonals
	}
	return f&^(BoxSides|BoxTop|BoxBottom) == 0
}

// DebugFlags selects what the optional debug mesh/image visualizes.
// Only meaningful when the module is built with the occluder_debug
// build tag (SPEC_FULL.md §2); ignored otherwise.
type DebugFlags uint8

const (
	DebugShell DebugFlags = 1 << iota
	DebugInner
	DebugExtents
	DebugDistanceRays
)

func (f DebugFlags) valid() bool {
	return f&^(DebugShell|DebugInner|DebugExtents|DebugDistanceRays) == 0
}

// Params bundles every input to Generate (spec §6). canary1 and
// canary2 are a zero-initialization tripwire: they must stay at their
// zero value, which lets Generate panic on a parameter bundle that was
// never properly initialized rather than silently running on garbage.
type Params struct {
	VoxelSize     float32
	FillPct       float32
	BoxTypeFlags  BoxTypeFlags
	DebugFlags    DebugFlags
	Logger        Logger
	canary1       uint32
	canary2       uint32
}

func (p Params) validate() {
	assertf(p.canary1 == 0 && p.canary2 == 0, "Params canary fields must be zero (uninitialized Params passed to Generate)")
	assertf(p.VoxelSize > 0, "VoxelSize must be strictly positive, got %v", p.VoxelSize)
	assertf(p.FillPct > 0 && p.FillPct <= 1, "FillPct must be in (0, 1], got %v", p.FillPct)
	assertf(p.BoxTypeFlags.valid(), "BoxTypeFlags %v is invalid: face flags and BoxDiagonals are mutually exclusive", p.BoxTypeFlags)
	assertf(p.DebugFlags.valid(), "DebugFlags %v has unknown bits set", p.DebugFlags)
}

func (p Params) logger() Logger {
	if p.Logger == nil {
		return NewNopLogger()
	}
	return p.Logger
}
