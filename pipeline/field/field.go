package field

import (
	"github.com/gekko3d/occluder/pipeline/grid"
	"github.com/gekko3d/occluder/pipeline/voxelize"
)

// VisBits is the six-bit "some shell voxel exists along this ray"
// visibility mask (spec §3 "Voxel status").
type VisBits uint8

const (
	VisPlusX VisBits = 1 << iota
	VisMinusX
	VisPlusY
	VisMinusY
	VisPlusZ
	VisMinusZ
)

// VisAll is the fully-visible mask: all six rays hit a shell voxel.
const VisAll = VisPlusX | VisMinusX | VisPlusY | VisMinusY | VisPlusZ | VisMinusZ

// DistanceInfinite marks a positive-axis distance as not meaningful:
// either the cell is not active, or no shell voxel exists further
// along that ray (spec design note: "do not leak raw sentinels past
// module boundaries" — this is the one named constant that crosses
// the field/extent boundary, everything else is a real distance or 0
// for "coincident").
const DistanceInfinite int32 = 1<<31 - 1

// Field is the dense, cell-indexed min-distance field (spec §3, §4.E):
// per cell, the six-bit visibility mask, the inner flag, and distances
// to the next shell voxel along +X/+Y/+Z.
type Field struct {
	Grid       grid.Grid
	Shell      *voxelize.Shell
	Vis        []VisBits
	Inner      []bool
	Clipped    []bool
	DX, DY, DZ []int32
}

// Active reports whether cell is inner and not yet consumed by a
// prior extent (spec §3: "A cell is active iff inner ∧ ¬clipped").
func (f *Field) Active(cell uint32) bool {
	return f.Inner[cell] && !f.Clipped[cell]
}

// Build computes status and distances for every cell (spec §4.E).
func Build(g grid.Grid, shell *voxelize.Shell, buckets *Buckets) *Field {
	n := g.CellCount()
	f := &Field{
		Grid:  g,
		Shell: shell,
		Vis:     make([]VisBits, n),
		Inner:   make([]bool, n),
		Clipped: make([]bool, n),
		DX:      make([]int32, n),
		DY:      make([]int32, n),
		DZ:      make([]int32, n),
	}

	dx, dy := g.Dims[0], g.Dims[1]

	for z := uint32(0); z < g.Dims[2]; z++ {
		for y := uint32(0); y < g.Dims[1]; y++ {
			for x := uint32(0); x < g.Dims[0]; x++ {
				cell := g.Flatten(x, y, z)
				if shell.IsShell(x, y, z) {
					f.DX[cell], f.DY[cell], f.DZ[cell] = DistanceInfinite, DistanceInfinite, DistanceInfinite
					continue
				}

				var vis VisBits
				dxv := scanLine(buckets.lineX(y, z, dy), x)
				applyAxis(dxv, &vis, VisPlusX, VisMinusX)

				dyv := scanLine(buckets.lineY(x, z, dx), y)
				applyAxis(dyv, &vis, VisPlusY, VisMinusY)

				dzv := scanLine(buckets.lineZ(x, y, dx), z)
				applyAxis(dzv, &vis, VisPlusZ, VisMinusZ)

				distX := distanceOrInf(dxv)
				distY := distanceOrInf(dyv)
				distZ := distanceOrInf(dzv)

				f.Vis[cell] = vis
				f.DX[cell] = distX
				f.DY[cell] = distY
				f.DZ[cell] = distZ

				// spec §4.E.3 / §9 open question: a 0 distance (a shell
				// voxel coincident with this cell's coordinate on some
				// axis) disqualifies `inner` even though the visibility
				// bit for that direction is not set.
				f.Inner[cell] = vis == VisAll &&
					distX != DistanceInfinite && distX != 0 &&
					distY != DistanceInfinite && distY != 0 &&
					distZ != DistanceInfinite && distZ != 0
			}
		}
	}

	return f
}

// axisScan is the result of scanning one line's bucket against a
// coordinate: the minimum positive delta (nil if none), and whether a
// negative or coincident (zero) shell voxel was seen.
type axisScan struct {
	plus     *int32 // min positive delta, nil if none found
	hasMinus bool
	hasZero  bool
}

// scanLine walks every shell voxel recorded on a line and classifies
// it relative to coord, per spec §4.E.2.
func scanLine(line []uint32, coord uint32) axisScan {
	var out axisScan
	for _, v := range line {
		delta := int64(v) - int64(coord)
		switch {
		case delta > 0:
			d := int32(delta)
			if out.plus == nil || d < *out.plus {
				out.plus = &d
			}
		case delta < 0:
			out.hasMinus = true
		default:
			out.hasZero = true
		}
	}
	return out
}

func applyAxis(s axisScan, vis *VisBits, plusBit, minusBit VisBits) {
	if s.plus != nil {
		*vis |= plusBit
	}
	if s.hasMinus {
		*vis |= minusBit
	}
}

// distanceOrInf resolves an axisScan to the field's stored distance:
// 0 when a coincident shell voxel exists, the found positive delta,
// or DistanceInfinite when neither applies.
func distanceOrInf(s axisScan) int32 {
	if s.hasZero {
		return 0
	}
	if s.plus != nil {
		return *s.plus
	}
	return DistanceInfinite
}
