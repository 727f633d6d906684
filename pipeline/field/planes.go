// Package field builds the per-cell min-distance field used by the
// extent search (spec §4.D, §4.E, §4.F).
package field

import (
	"github.com/gekko3d/occluder/pipeline/grid"
	"github.com/gekko3d/occluder/pipeline/voxelize"
)

// Buckets holds the three plane-bucket arrays (spec §3 "Plane
// buckets", §4.D): Px[(y,z)] sorted by x, Py[(x,z)] sorted by y,
// Pz[(x,y)] sorted by z. Every shell voxel appears in exactly one
// bucket per axis.
type Buckets struct {
	Px [][]uint32 // index y + Dy*z -> sorted x coordinates
	Py [][]uint32 // index x + Dx*z -> sorted y coordinates
	Pz [][]uint32 // index x + Dx*y -> sorted z coordinates
}

// BuildBuckets walks every cell in lexicographic order (spec §4.D:
// "this ordering is required and must not be reshuffled") and appends
// each shell voxel to its three line buckets. Because the scan order
// is lexicographic (z slowest, then y, then x fastest — the same
// order grid.Grid.Flatten assigns), each bucket fills in the sorted
// order the field builder requires with no separate sort step.
func BuildBuckets(g grid.Grid, shell *voxelize.Shell) *Buckets {
	dx, dy, dz := g.Dims[0], g.Dims[1], g.Dims[2]

	b := &Buckets{
		Px: make([][]uint32, dy*dz),
		Py: make([][]uint32, dx*dz),
		Pz: make([][]uint32, dx*dy),
	}
	for i := range b.Px {
		b.Px[i] = make([]uint32, 0, dx)
	}
	for i := range b.Py {
		b.Py[i] = make([]uint32, 0, dy)
	}
	for i := range b.Pz {
		b.Pz[i] = make([]uint32, 0, dz)
	}

	for z := uint32(0); z < dz; z++ {
		for y := uint32(0); y < dy; y++ {
			for x := uint32(0); x < dx; x++ {
				cell := g.Flatten(x, y, z)
				if _, ok := shell.IndexOf(cell); !ok {
					continue
				}
				b.Px[y+dy*z] = append(b.Px[y+dy*z], x)
				b.Py[x+dx*z] = append(b.Py[x+dx*z], y)
				b.Pz[x+dx*y] = append(b.Pz[x+dx*y], z)
			}
		}
	}

	return b
}

func (b *Buckets) lineX(y, z, dy uint32) []uint32 { return b.Px[y+dy*z] }
func (b *Buckets) lineY(x, z, dx uint32) []uint32 { return b.Py[x+dx*z] }
func (b *Buckets) lineZ(x, y, dx uint32) []uint32 { return b.Pz[x+dx*y] }
