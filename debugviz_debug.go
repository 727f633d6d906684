//go:build occluder_debug

package occluder

import "github.com/gekko3d/occluder/pipeline/debugviz"

// buildDebugImage renders the grid's middle z-slice to a PNG, guarded
// by the occluder_debug build tag so a release build never links
// golang.org/x/image (SPEC_FULL.md §2).
func buildDebugImage(c *context, flags DebugFlags) []byte {
	if flags == 0 {
		return nil
	}
	opt := debugviz.Options{
		Shell:   flags&DebugShell != 0,
		Inner:   flags&DebugInner != 0,
		Extents: flags&DebugExtents != 0,
		Rays:    flags&DebugDistanceRays != 0,
	}

	z := c.Grid.Dims[2] / 2
	data, err := debugviz.Slice(c.Grid, c.Shell, c.Field, c.Extents, z, opt)
	if err != nil {
		c.log.Warnf("debug slice export failed: %v", err)
		return nil
	}
	return data
}
