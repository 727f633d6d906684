// Package occluder turns a closed triangle mesh into a conservative
// box-occluder mesh: a union of axis-aligned boxes lying strictly
// inside the input surface, suitable for cheap real-time occlusion
// culling (spec.md §1). Generate is the sole entry point; everything
// else in this package and pipeline/... is its supporting machinery.
package occluder

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gekko3d/occluder/pipeline/extent"
	"github.com/gekko3d/occluder/pipeline/field"
	"github.com/gekko3d/occluder/pipeline/grid"
	"github.com/gekko3d/occluder/pipeline/voxelize"
)

// Mesh is the minimal vertex/index buffer pair spec.md §6 requires of
// the emitted occluder: a flat vertex array and an index array
// wide enough that many boxes never risk overflowing it (the input
// mesh's own indices stay uint16, matching the teacher's own asset
// contract in mod_assets.go, but nothing bounds how many boxes a
// single Generate call can emit).
type Mesh struct {
	Vertices []mgl32.Vec3
	Indices  []uint32
}

// Result is everything one Generate call produces (spec.md §6).
type Result struct {
	// Ok mirrors spec.md's boolean return code: true on success, false
	// only when the input was not watertight at VoxelSize.
	Ok bool
	// FillAchieved is the cumulative interior volume fraction actually
	// consumed by emitted extents.
	FillAchieved float32
	// OccluderMesh is the concatenation of every emitted extent's box
	// tessellation.
	OccluderMesh Mesh
	// DebugImage is a PNG-encoded grid slice when Params.DebugFlags is
	// non-zero and the module was built with the occluder_debug tag;
	// nil otherwise.
	DebugImage []byte
}

// Generate runs the full pipeline — grid (A), shell voxelization (B,
// C), plane buckets and the distance field (D, E), the watertightness
// gate (F), and the greedy extent extraction (G, H) — on one closed
// mesh (spec.md §2).
//
// vertices/indices describe the input surface; indices must reference
// only valid vertex positions and its length must be a multiple of 3.
// Both conditions are programmer errors (spec.md §7.1) and panic
// rather than return an error.
func Generate(vertices []mgl32.Vec3, indices []uint16, p Params) (Result, error) {
	p.validate()
	log := p.logger()

	assertf(len(vertices) > 0, "Generate called with an empty vertex array")
	assertf(len(indices)%3 == 0, "index array length %d is not a multiple of 3", len(indices))
	for _, i := range indices {
		assertf(int(i) < len(vertices), "index %d out of range of %d vertices", i, len(vertices))
	}

	minB, maxB := vertices[0], vertices[0]
	for _, v := range vertices[1:] {
		minB = componentMin(minB, v)
		maxB = componentMax(maxB, v)
	}

	ctx := newContext(grid.New(minB, maxB, p.VoxelSize), log)
	defer ctx.release()

	log.Debugf("[%s] grid dims %v origin %v voxel %v", ctx.id, ctx.Grid.Dims, ctx.Grid.Origin, p.VoxelSize)

	ctx.Shell = voxelize.Build(ctx.Grid, vertices, indices)
	ctx.Buckets = field.BuildBuckets(ctx.Grid, ctx.Shell)
	ctx.Field = field.Build(ctx.Grid, ctx.Shell, ctx.Buckets)

	log.Debugf("[%s] shell voxels %d", ctx.id, len(ctx.Shell.Voxels))

	if !field.CheckWatertight(ctx.Field) {
		log.Warnf("[%s] mesh is not watertight at voxel size %v", ctx.id, p.VoxelSize)
		return Result{Ok: false}, fmt.Errorf("occluder: %w (voxel size %v)", ErrNotWatertight, p.VoxelSize)
	}

	extraction := extent.Extract(ctx.Grid, ctx.Field, p.FillPct)
	ctx.Extents = extraction.Extents

	var verts []mgl32.Vec3
	var idx []uint32
	for _, e := range extraction.Extents {
		center, half := extentCenterHalf(ctx.Grid, e)
		verts, idx = appendBox(verts, idx, center, half, p.BoxTypeFlags)
	}

	if extraction.FillAchieved < p.FillPct && len(extraction.Extents) > 0 {
		log.Warnf("[%s] fill target %v unreachable: interior exhausted at %v", ctx.id, p.FillPct, extraction.FillAchieved)
	}
	log.Infof("[%s] emitted %d extents, fill %.3f", ctx.id, len(extraction.Extents), extraction.FillAchieved)

	return Result{
		Ok:           true,
		FillAchieved: extraction.FillAchieved,
		OccluderMesh: Mesh{Vertices: verts, Indices: idx},
		DebugImage:   buildDebugImage(ctx, p.DebugFlags),
	}, nil
}

// extentCenterHalf converts an extent's cell-coordinate box to its
// world-space center and half-extent.
func extentCenterHalf(g grid.Grid, e extent.Extent) (center, half mgl32.Vec3) {
	s := g.VoxelSize
	min := g.Origin.Add(mgl32.Vec3{float32(e.Anchor[0]) * s, float32(e.Anchor[1]) * s, float32(e.Anchor[2]) * s})
	max := min.Add(mgl32.Vec3{float32(e.Size[0]) * s, float32(e.Size[1]) * s, float32(e.Size[2]) * s})
	center = min.Add(max).Mul(0.5)
	half = max.Sub(min).Mul(0.5)
	return
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
