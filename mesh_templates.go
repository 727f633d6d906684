package occluder

import "github.com/go-gl/mathgl/mgl32"

// boxCorners is the fixed local corner order (±1,±1,±1) spec §6
// describes: scaled by a box's half-extent and translated to its
// center to produce the 8 vertices emitted per extent.
var boxCorners = [8]mgl32.Vec3{
	{-1, -1, -1}, {1, -1, -1}, {1, 1, -1}, {-1, 1, -1},
	{-1, -1, 1}, {1, -1, 1}, {1, 1, 1}, {-1, 1, 1},
}

// Per-face triangle lists over the local corner indices above, wound
// so each face's normal points away from the box center.
var (
	faceBottom = []uint32{0, 3, 2, 0, 2, 1} // -Z
	faceTop    = []uint32{4, 5, 6, 4, 6, 7} // +Z
	faceMinusY = []uint32{0, 1, 5, 0, 5, 4}
	facePlusY  = []uint32{2, 3, 7, 2, 7, 6}
	faceMinusX = []uint32{0, 7, 3, 0, 4, 7}
	facePlusX  = []uint32{1, 2, 6, 1, 6, 5}

	// diagonalFaces is the "two crossed quads" cheap-proxy shape (spec
	// §6): vertical planes through opposite pairs of vertical edges,
	// (0,4)-(2,6) and (1,5)-(3,7), crossing through the box's center.
	diagonalFaces = []uint32{
		0, 2, 6, 0, 6, 4,
		1, 3, 7, 1, 7, 5,
	}
)

// boxIndexTemplate returns the local index template selected by
// flags. BoxDiagonals always wins outright since Params.validate
// already rejects combining it with the face flags.
func boxIndexTemplate(flags BoxTypeFlags) []uint32 {
	if flags&BoxDiagonals != 0 {
		return diagonalFaces
	}

	var out []uint32
	if flags&BoxSides != 0 {
		out = append(out, faceMinusX...)
		out = append(out, facePlusX...)
		out = append(out, faceMinusY...)
		out = append(out, facePlusY...)
	}
	if flags&BoxTop != 0 {
		out = append(out, faceTop...)
	}
	if flags&BoxBottom != 0 {
		out = append(out, faceBottom...)
	}
	return out
}

// appendBox appends one box's 8 corner vertices and the index
// template selected by flags (offset to this box's vertex base) to
// verts/idx, returning the extended slices.
func appendBox(verts []mgl32.Vec3, idx []uint32, center, halfExtent mgl32.Vec3, flags BoxTypeFlags) ([]mgl32.Vec3, []uint32) {
	base := uint32(len(verts))
	for _, c := range boxCorners {
		offset := mgl32.Vec3{c.X() * halfExtent.X(), c.Y() * halfExtent.Y(), c.Z() * halfExtent.Z()}
		verts = append(verts, center.Add(offset))
	}
	for _, i := range boxIndexTemplate(flags) {
		idx = append(idx, base+i)
	}
	return verts, idx
}
