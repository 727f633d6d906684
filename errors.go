package occluder

import (
	"errors"
	"fmt"
)

// ErrNotWatertight is returned by Generate when the input surface does
// not resolve into a closed shell at the requested VoxelSize (spec
// §4.F, §7.2). It is the only recoverable failure mode; every other
// malformed input is a programmer error and panics instead.
var ErrNotWatertight = errors.New("occluder: mesh is not watertight at the requested voxel size")

// assertf panics with an fmt.Errorf-formatted error if cond is false. Used at API
// boundaries for conditions the caller controls directly (zero
// voxel size, non-zero canary fields, out-of-range indices) — these
// are programmer errors, not data errors, per spec §7.1.
func assertf(cond bool, format string, args ...any) {
	if !cond {
		panic(fmt.Errorf("occluder: "+format, args...))
	}
}
