package extent

import (
	"fmt"

	"github.com/gekko3d/occluder/pipeline/field"
	"github.com/gekko3d/occluder/pipeline/grid"
)

// Result is the ordered sequence of extents the greedy extractor
// emitted, plus the cumulative fill fraction actually reached.
type Result struct {
	Extents      []Extent
	FillAchieved float32
}

// Extract repeatedly finds the globally max-volume extent across all
// active cells, clips it, refreshes the field, and repeats until the
// cumulative fill fraction reaches fillPct or no active cell remains
// (spec §4.H). The denominator for fill fraction is the active-cell
// count at the moment Extract is called, before any clipping.
func Extract(g grid.Grid, f *field.Field, fillPct float32) Result {
	total := 0
	for c := uint32(0); c < g.CellCount(); c++ {
		if f.Active(c) {
			total++
		}
	}
	if total == 0 {
		return Result{}
	}

	var result Result
	for {
		var best Extent
		found := false

		for c := uint32(0); c < g.CellCount(); c++ {
			if !f.Active(c) {
				continue
			}
			x, y, z := g.Unflatten(c)
			e := Search(g, f, [3]uint32{x, y, z})
			if e.Volume > best.Volume {
				best = e
				found = true
			}
		}

		if !found || best.Volume == 0 {
			break
		}

		clip(g, f, best)
		refresh(g, f, best)

		result.Extents = append(result.Extents, best)
		result.FillAchieved += float32(best.Volume) / float32(total)

		if result.FillAchieved >= fillPct {
			break
		}
	}

	return result
}

// clip marks every cell of e as clipped (spec §4.H.3). A cell already
// clipped here means two emitted extents overlapped, which can only
// follow a bug upstream in Search or in a prior refresh.
func clip(g grid.Grid, f *field.Field, e Extent) {
	for dz := uint32(0); dz < e.Size[2]; dz++ {
		for dy := uint32(0); dy < e.Size[1]; dy++ {
			for dx := uint32(0); dx < e.Size[0]; dx++ {
				cell := g.Flatten(e.Anchor[0]+dx, e.Anchor[1]+dy, e.Anchor[2]+dz)
				if f.Clipped[cell] {
					panic(fmt.Errorf("extent: cell %d clipped twice by extent at %v", cell, e.Anchor))
				}
				f.Clipped[cell] = true
			}
		}
	}
}

// refresh tightens the distance field for cells outside e but in one
// of its three orthogonal slabs, so a later Search never walks past
// the boundary e just claimed (spec §4.H.4).
func refresh(g grid.Grid, f *field.Field, e Extent) {
	ax, ay, az := e.Anchor[0], e.Anchor[1], e.Anchor[2]
	sx, sy, sz := e.Size[0], e.Size[1], e.Size[2]

	for z := az; z < az+sz; z++ {
		for y := ay; y < ay+sy; y++ {
			for x := uint32(0); x < ax; x++ {
				cell := g.Flatten(x, y, z)
				if !f.Active(cell) {
					continue
				}
				if d := int32(ax - x); d < f.DX[cell] {
					f.DX[cell] = d
				}
			}
		}
	}

	for z := az; z < az+sz; z++ {
		for x := ax; x < ax+sx; x++ {
			for y := uint32(0); y < ay; y++ {
				cell := g.Flatten(x, y, z)
				if !f.Active(cell) {
					continue
				}
				if d := int32(ay - y); d < f.DY[cell] {
					f.DY[cell] = d
				}
			}
		}
	}

	for y := ay; y < ay+sy; y++ {
		for x := ax; x < ax+sx; x++ {
			for z := uint32(0); z < az; z++ {
				cell := g.Flatten(x, y, z)
				if !f.Active(cell) {
					continue
				}
				if d := int32(az - z); d < f.DZ[cell] {
					f.DZ[cell] = d
				}
			}
		}
	}
}
