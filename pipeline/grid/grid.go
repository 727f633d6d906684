// Package grid computes the uniform voxel lattice that the rest of
// the occluder pipeline is built on (spec §4.A): origin, per-axis
// dimensions, and the cell<->linear-index mapping.
package grid

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Grid is a uniform cubic lattice of side VoxelSize covering a
// padded mesh AABB. Cell (x,y,z) spans
// [Origin + VoxelSize*(x,y,z), Origin + VoxelSize*(x+1,y+1,z+1)].
type Grid struct {
	Origin    mgl32.Vec3
	VoxelSize float32
	Dims      [3]uint32 // Dx, Dy, Dz
}

// snapMin/snapMax round a bound outward to the nearest multiple of
// half a voxel (spec §3: "snap min down and max up to multiples of
// s/2 then expand one voxel outward"; §4.A's own formula is written
// in terms of a sign-biased floor/ceil over whole multiples of s —
// the two disagree on an already-aligned bound, see DESIGN.md for why
// this module follows §3 and the worked S1/S2 scenarios instead).
func snapMin(v, s float32) float32 {
	half := s / 2
	return half * float32(math.Floor(float64(v/half)))
}

func snapMax(v, s float32) float32 {
	half := s / 2
	return half * float32(math.Ceil(float64(v/half)))
}

// New computes grid origin and dimensions from a mesh AABB and a
// voxel size, per spec §4.A: snap the AABB to half-voxel multiples,
// then pad by one whole voxel on every face so the shell voxelizer
// never has to special-case a triangle lying exactly on the AABB
// boundary.
func New(min, max mgl32.Vec3, voxelSize float32) Grid {
	if voxelSize <= 0 {
		panic(fmt.Errorf("grid: voxelSize must be positive, got %v", voxelSize))
	}

	m := mgl32.Vec3{snapMin(min.X(), voxelSize), snapMin(min.Y(), voxelSize), snapMin(min.Z(), voxelSize)}
	M := mgl32.Vec3{snapMax(max.X(), voxelSize), snapMax(max.Y(), voxelSize), snapMax(max.Z(), voxelSize)}

	pad := mgl32.Vec3{voxelSize, voxelSize, voxelSize}
	m = m.Sub(pad)
	M = M.Add(pad)

	// extent/voxelSize is, by construction, a multiple of half a voxel
	// (both m and M were snapped to half-voxel multiples and then
	// shifted by a whole voxel), so it is a whole count or a whole count
	// plus one half; float32 division can still land a hair under a
	// whole count, so round to nearest rather than truncate before the
	// cast or a layer of padding silently disappears from the grid.
	extent := M.Sub(m)
	dims := [3]uint32{
		uint32(math.Round(float64(extent.X() / voxelSize))),
		uint32(math.Round(float64(extent.Y() / voxelSize))),
		uint32(math.Round(float64(extent.Z() / voxelSize))),
	}

	return Grid{Origin: m, VoxelSize: voxelSize, Dims: dims}
}

// CellCount returns Dx*Dy*Dz.
func (g Grid) CellCount() uint32 {
	return g.Dims[0] * g.Dims[1] * g.Dims[2]
}

// InBounds reports whether (x,y,z) is a valid cell coordinate.
func (g Grid) InBounds(x, y, z int) bool {
	return x >= 0 && y >= 0 && z >= 0 &&
		uint32(x) < g.Dims[0] && uint32(y) < g.Dims[1] && uint32(z) < g.Dims[2]
}

// Flatten linearizes (x,y,z) as i = x + Dx*y + Dx*Dy*z (spec §3).
func (g Grid) Flatten(x, y, z uint32) uint32 {
	return x + g.Dims[0]*y + g.Dims[0]*g.Dims[1]*z
}

// Unflatten is the exact inverse of Flatten.
func (g Grid) Unflatten(i uint32) (x, y, z uint32) {
	dxdy := g.Dims[0] * g.Dims[1]
	z = i / dxdy
	rem := i % dxdy
	y = rem / g.Dims[0]
	x = rem % g.Dims[0]
	return
}

// CellBounds returns the world-space AABB of cell (x,y,z).
func (g Grid) CellBounds(x, y, z uint32) (min, max mgl32.Vec3) {
	s := g.VoxelSize
	min = g.Origin.Add(mgl32.Vec3{float32(x) * s, float32(y) * s, float32(z) * s})
	max = min.Add(mgl32.Vec3{s, s, s})
	return
}

// CellCenterHalf returns the center and half-extent of cell (x,y,z),
// the form the SAT triangle/box test in pipeline/sat consumes.
func (g Grid) CellCenterHalf(x, y, z uint32) (center, half mgl32.Vec3) {
	min, max := g.CellBounds(x, y, z)
	center = min.Add(max).Mul(0.5)
	half = mgl32.Vec3{g.VoxelSize / 2, g.VoxelSize / 2, g.VoxelSize / 2}
	return
}

// SnapAABB converts a world-space AABB to inclusive cell-coordinate
// bounds, clamped to the grid (spec §4.C: "compute its AABB, snap it
// to grid ... and iterate the enclosed cells"). A margin of a
// thousandth of a voxel is applied on both sides before flooring to
// the cell index: a triangle lying exactly on a cell boundary (as the
// worked scenarios in §8 all do) would otherwise truncate to the cell
// on the high side only, leaving the low-side neighbor out of the
// candidate range entirely before the SAT test ever runs.
func (g Grid) SnapAABB(min, max mgl32.Vec3) (minCell, maxCell [3]uint32) {
	clampAxis := func(lo, hi float32, dim uint32) (uint32, uint32) {
		s := g.VoxelSize
		margin := s * 1e-3
		loI := int32(math.Floor(float64((lo - margin) / s)))
		hiI := int32(math.Floor(float64((hi + margin) / s)))
		if loI < 0 {
			loI = 0
		}
		if hiI < 0 {
			hiI = 0
		}
		if uint32(loI) >= dim {
			loI = int32(dim) - 1
		}
		if uint32(hiI) >= dim {
			hiI = int32(dim) - 1
		}
		return uint32(loI), uint32(hiI)
	}

	rel := func(v mgl32.Vec3) mgl32.Vec3 { return v.Sub(g.Origin) }
	relMin, relMax := rel(min), rel(max)

	x0, x1 := clampAxis(relMin.X(), relMax.X(), g.Dims[0])
	y0, y1 := clampAxis(relMin.Y(), relMax.Y(), g.Dims[1])
	z0, z1 := clampAxis(relMin.Z(), relMax.Z(), g.Dims[2])

	return [3]uint32{x0, y0, z0}, [3]uint32{x1, y1, z1}
}
