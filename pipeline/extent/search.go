// Package extent implements the anchor-local extent search and the
// greedy global extractor (spec §4.G, §4.H).
package extent

import (
	"github.com/gekko3d/occluder/pipeline/field"
	"github.com/gekko3d/occluder/pipeline/grid"
)

// Extent is an axis-aligned box of interior cells: the min corner
// (anchor), per-axis cell counts, and the cell volume.
type Extent struct {
	Anchor [3]uint32
	Size   [3]uint32
	Volume uint32
}

// Search finds the largest-volume box of active cells anchored at a,
// an active cell, per spec §4.G. It never inspects cells outside the
// anchor's own (dx,dy,dz) run, so it is safe to call on every active
// cell in a single pass without any shared mutable state.
func Search(g grid.Grid, f *field.Field, a [3]uint32) Extent {
	cell := g.Flatten(a[0], a[1], a[2])
	dxA := uint32(f.DX[cell])
	dyA := uint32(f.DY[cell])
	dzA := uint32(f.DZ[cell])

	type slab struct{ ex, ey uint32 }
	slabs := make([]slab, dzA)

	for s := uint32(0); s < dzA; s++ {
		z := a[2] + s
		ex, ey := dxA, dyA

		for i := uint32(1); i < dxA && i < dyA; i++ {
			nx, ny := a[0]+i, a[1]+i
			c := g.Flatten(nx, ny, z)
			if !f.Active(c) {
				ex, ey = i, i
				break
			}
			if cand := uint32(f.DX[c]) + i; cand < ex {
				ex = cand
			}
			if cand := uint32(f.DY[c]) + i; cand < ey {
				ey = cand
			}
		}

		slabs[s] = slab{ex, ey}
	}

	var mx, my, bestMx, bestMy, bestK, bestVol uint32
	for s, sl := range slabs {
		if s == 0 {
			mx, my = sl.ex, sl.ey
		} else {
			if sl.ex < mx {
				mx = sl.ex
			}
			if sl.ey < my {
				my = sl.ey
			}
		}
		k := uint32(s + 1)
		if vol := mx * my * k; vol > bestVol {
			bestVol, bestMx, bestMy, bestK = vol, mx, my, k
		}
	}

	return Extent{
		Anchor: a,
		Size:   [3]uint32{bestMx, bestMy, bestK},
		Volume: bestVol,
	}
}
