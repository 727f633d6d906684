// Package voxelize rasterizes a triangle mesh into the shell voxel
// set of a grid (spec §4.C): every cell intersected by at least one
// input triangle.
package voxelize

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/gekko3d/occluder/pipeline/grid"
	"github.com/gekko3d/occluder/pipeline/sat"
)

// Shell is the set of voxels intersected by the input surface (spec
// §3 "Shell voxel"): a list V in first-discovered order plus a dense
// cell -> index table ("unset" entries hold -1).
type Shell struct {
	Grid    grid.Grid
	Voxels  []uint32 // flattened cell index, in discovery order
	indexOf []int32  // len == Grid.CellCount(); -1 means not a shell voxel
}

// IndexOf returns the position of cell i in Voxels, and whether i is
// a shell voxel at all.
func (s *Shell) IndexOf(cell uint32) (int, bool) {
	v := s.indexOf[cell]
	if v < 0 {
		return 0, false
	}
	return int(v), true
}

// IsShell reports whether cell (x,y,z) is a shell voxel.
func (s *Shell) IsShell(x, y, z uint32) bool {
	_, ok := s.IndexOf(s.Grid.Flatten(x, y, z))
	return ok
}

// Build rasterizes every triangle of (vertices, indices) into g,
// using the SAT triangle/box test (pipeline/sat) for each candidate
// cell in the triangle's snapped AABB.
func Build(g grid.Grid, vertices []mgl32.Vec3, indices []uint16) *Shell {
	s := &Shell{Grid: g, indexOf: make([]int32, g.CellCount())}
	for i := range s.indexOf {
		s.indexOf[i] = -1
	}

	for t := 0; t+2 < len(indices); t += 3 {
		v0 := vertices[indices[t]]
		v1 := vertices[indices[t+1]]
		v2 := vertices[indices[t+2]]
		s.rasterizeTriangle(v0, v1, v2)
	}

	return s
}

// shellEpsilonFactor sets the outward nudge applied to a triangle's
// vertices, as a fraction of the voxel size, before the SAT test
// (spec §4.C's worked scenarios place triangles exactly on cell
// boundaries; a perfectly symmetric SAT test has no consistent way to
// assign such a triangle to one side, so every grid-aligned face would
// wrongly claim the cell on both sides of it). The nudge only affects
// which cell a boundary-coincident triangle is assigned to — it never
// changes the AABB used to pick candidate cells, which is computed
// from the true, un-nudged vertices.
const shellEpsilonFactor = 1e-4

func (s *Shell) rasterizeTriangle(v0, v1, v2 mgl32.Vec3) {
	triMin := componentMin(v0, componentMin(v1, v2))
	triMax := componentMax(v0, componentMax(v1, v2))

	minCell, maxCell := s.Grid.SnapAABB(triMin, triMax)

	nv0, nv1, nv2 := nudgeOutward(v0, v1, v2, s.Grid.VoxelSize*shellEpsilonFactor)

	for z := minCell[2]; z <= maxCell[2]; z++ {
		for y := minCell[1]; y <= maxCell[1]; y++ {
			for x := minCell[0]; x <= maxCell[0]; x++ {
				cell := s.Grid.Flatten(x, y, z)
				if _, already := s.IndexOf(cell); already {
					continue
				}
				center, half := s.Grid.CellCenterHalf(x, y, z)
				if sat.TriangleIntersectsBox(nv0, nv1, nv2, center, half) {
					s.indexOf[cell] = int32(len(s.Voxels))
					s.Voxels = append(s.Voxels, cell)
				}
			}
		}
	}
}

// nudgeOutward offsets a triangle's vertices by eps along its own
// face normal, pushing a grid-aligned triangle off the boundary plane
// and onto the side its winding actually faces. Degenerate (near
// zero-area) triangles are left untouched rather than nudged in an
// arbitrary direction.
func nudgeOutward(v0, v1, v2 mgl32.Vec3, eps float32) (mgl32.Vec3, mgl32.Vec3, mgl32.Vec3) {
	normal := v1.Sub(v0).Cross(v2.Sub(v0))
	length := normal.Len()
	if length < 1e-12 {
		return v0, v1, v2
	}
	offset := normal.Mul(eps / length)
	return v0.Add(offset), v1.Add(offset), v2.Add(offset)
}

func componentMin(a, b mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{min32(a.X(), b.X()), min32(a.Y(), b.Y()), min32(a.Z(), b.Z())}
}

func componentMax(a, b mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{max32(a.X(), b.X()), max32(a.Y(), b.Y()), max32(a.Z(), b.Z())}
}

func min32(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func max32(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
