//go:build occluder_debug

// Package debugviz renders one z-slice of a grid's classification
// state to a PNG image: shell voxels, inner/active cells, extents
// already consumed by the greedy extractor, and cells whose +X
// distance is 1 (a cheap proxy for "a min-distance ray terminates
// here"). It never opens a window or touches a GPU device — spec.md
// §1 scopes those out as an external viewer's job.
package debugviz

import (
	"bytes"
	"image"
	"image/color"
	"image/png"

	"golang.org/x/image/draw"

	"github.com/gekko3d/occluder/pipeline/extent"
	"github.com/gekko3d/occluder/pipeline/field"
	"github.com/gekko3d/occluder/pipeline/grid"
	"github.com/gekko3d/occluder/pipeline/voxelize"
)

// maxSlicePixels bounds the emitted image on its longer axis; a 512³
// production grid would otherwise produce a multi-megapixel PNG per
// call for no diagnostic benefit.
const maxSlicePixels = 512

// Options selects which classification layers a slice paints.
type Options struct {
	Shell   bool
	Inner   bool
	Extents bool
	Rays    bool
}

var (
	colorBackground = color.RGBA{20, 20, 20, 255}
	colorShell      = color.RGBA{200, 60, 60, 255}
	colorInner      = color.RGBA{60, 120, 200, 255}
	colorExtent     = color.RGBA{60, 200, 90, 255}
	colorRay        = color.RGBA{230, 200, 60, 255}
)

// Slice rasterizes the z-th layer of g into a PNG, one pixel per
// cell, downsampled with golang.org/x/image/draw when either axis
// exceeds maxSlicePixels.
func Slice(g grid.Grid, shell *voxelize.Shell, f *field.Field, extents []extent.Extent, z uint32, opt Options) ([]byte, error) {
	dx, dy := int(g.Dims[0]), int(g.Dims[1])
	img := image.NewRGBA(image.Rect(0, 0, dx, dy))

	consumed := consumedMask(extents, z, opt.Extents)

	for y := 0; y < dy; y++ {
		for x := 0; x < dx; x++ {
			cell := g.Flatten(uint32(x), uint32(y), z)
			img.SetRGBA(x, y, cellColor(shell, f, consumed, uint32(x), uint32(y), cell, opt))
		}
	}

	out := downscale(img, dx, dy)

	var buf bytes.Buffer
	if err := png.Encode(&buf, out); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func consumedMask(extents []extent.Extent, z uint32, enabled bool) map[[2]uint32]bool {
	if !enabled {
		return nil
	}
	mask := make(map[[2]uint32]bool)
	for _, e := range extents {
		if z < e.Anchor[2] || z >= e.Anchor[2]+e.Size[2] {
			continue
		}
		for dy := uint32(0); dy < e.Size[1]; dy++ {
			for dx := uint32(0); dx < e.Size[0]; dx++ {
				mask[[2]uint32{e.Anchor[0] + dx, e.Anchor[1] + dy}] = true
			}
		}
	}
	return mask
}

func cellColor(shell *voxelize.Shell, f *field.Field, consumed map[[2]uint32]bool, x, y, cell uint32, opt Options) color.RGBA {
	switch {
	case opt.Extents && consumed[[2]uint32{x, y}]:
		return colorExtent
	case opt.Shell && shell.IsShell(x, y, cellZOf(cell, f)):
		return colorShell
	case opt.Inner && f.Inner[cell]:
		if opt.Rays && f.Active(cell) && f.DX[cell] == 1 {
			return colorRay
		}
		return colorInner
	default:
		return colorBackground
	}
}

// cellZOf recovers the z coordinate of a flattened cell index via the
// field's own grid, since Shell.IsShell wants (x,y,z) rather than a
// linear index.
func cellZOf(cell uint32, f *field.Field) uint32 {
	_, _, z := f.Grid.Unflatten(cell)
	return z
}

func downscale(img *image.RGBA, dx, dy int) image.Image {
	if dx <= maxSlicePixels && dy <= maxSlicePixels {
		return img
	}
	scale := float64(maxSlicePixels) / float64(maxInt(dx, dy))
	nw, nh := maxInt(1, int(float64(dx)*scale)), maxInt(1, int(float64(dy)*scale))
	scaled := image.NewRGBA(image.Rect(0, 0, nw, nh))
	draw.NearestNeighbor.Scale(scaled, scaled.Bounds(), img, img.Bounds(), draw.Over, nil)
	return scaled
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
