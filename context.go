package occluder

import (
	"github.com/google/uuid"

	"github.com/gekko3d/occluder/pipeline/extent"
	"github.com/gekko3d/occluder/pipeline/field"
	"github.com/gekko3d/occluder/pipeline/grid"
	"github.com/gekko3d/occluder/pipeline/voxelize"
)

// context owns every buffer a single Generate call allocates: the
// grid, shell voxel set, plane buckets, distance field, and the
// emitted extent list (spec §5: "a call owns its entire Context").
// Nothing here is shared across calls, and nothing survives release.
type context struct {
	id      uuid.UUID
	log     Logger
	Grid    grid.Grid
	Shell   *voxelize.Shell
	Buckets *field.Buckets
	Field   *field.Field
	Extents []extent.Extent
}

func newContext(g grid.Grid, log Logger) *context {
	return &context{id: uuid.New(), log: log, Grid: g}
}

// release drops every Context-scoped buffer, on both the success and
// the watertightness-failure exit path (spec §5: "released on normal
// or error return").
func (c *context) release() {
	c.Shell = nil
	c.Buckets = nil
	c.Field = nil
	c.Extents = nil
}
