//go:build !occluder_debug

package occluder

// buildDebugImage is a no-op unless the module is built with the
// occluder_debug tag. DebugFlags is otherwise accepted and validated
// but has no effect (SPEC_FULL.md §2: the PNG slice exporter and its
// golang.org/x/image dependency only compile in under that tag).
func buildDebugImage(c *context, flags DebugFlags) []byte {
	return nil
}
