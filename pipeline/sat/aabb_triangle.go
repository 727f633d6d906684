// Package sat implements the separating-axis triangle/AABB
// intersection test used by the shell voxelizer (spec §4.B): the
// Akenine-Moller 13-axis test, conservative (no false negatives).
package sat

import "github.com/go-gl/mathgl/mgl32"

// TriangleIntersectsBox reports whether triangle (v0,v1,v2) intersects
// the axis-aligned box centered at boxCenter with half-size boxHalf.
// Invariant under permutation of v0,v1,v2 (spec §8, invariant 6): the
// nine edge axes are the same set regardless of winding/vertex order,
// and the plane/face tests do not depend on vertex order either.
func TriangleIntersectsBox(v0, v1, v2, boxCenter, boxHalf mgl32.Vec3) bool {
	// 1. Translate the triangle into box-local space.
	t0 := v0.Sub(boxCenter)
	t1 := v1.Sub(boxCenter)
	t2 := v2.Sub(boxCenter)

	e0 := t1.Sub(t0)
	e1 := t2.Sub(t1)
	e2 := t0.Sub(t2)

	axes := [3]mgl32.Vec3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
	edges := [3]mgl32.Vec3{e0, e1, e2}

	// 2. Nine edge-cross-axis tests.
	for _, e := range edges {
		for _, a := range axes {
			axis := a.Cross(e)
			if axis.LenSqr() < 1e-20 {
				continue // edge parallel to coordinate axis: no separating test here
			}
			if separatedOnAxis(axis, t0, t1, t2, boxHalf) {
				return false
			}
		}
	}

	// 3. Three coordinate-axis (box face normal) tests.
	for i := 0; i < 3; i++ {
		lo := min3(t0[i], t1[i], t2[i])
		hi := max3(t0[i], t1[i], t2[i])
		if lo > boxHalf[i] || hi < -boxHalf[i] {
			return false
		}
	}

	// 4. Triangle plane vs box test.
	normal := e0.Cross(e1)
	if !planeIntersectsBox(normal, t0, boxHalf) {
		return false
	}

	return true
}

// separatedOnAxis projects the triangle and the box radius onto axis
// and reports whether their intervals are disjoint.
func separatedOnAxis(axis mgl32.Vec3, t0, t1, t2, boxHalf mgl32.Vec3) bool {
	p0 := t0.Dot(axis)
	p1 := t1.Dot(axis)
	p2 := t2.Dot(axis)
	lo := min3(p0, p1, p2)
	hi := max3(p0, p1, p2)

	r := boxHalf.X()*abs(axis.X()) + boxHalf.Y()*abs(axis.Y()) + boxHalf.Z()*abs(axis.Z())

	return lo > r || hi < -r
}

// planeIntersectsBox tests the triangle's supporting plane (normal, a
// point on it) against the box by projecting the box extents onto the
// normal, the standard Akenine-Moller plane/AABB overlap test.
func planeIntersectsBox(normal, point, boxHalf mgl32.Vec3) bool {
	var vmin, vmax mgl32.Vec3
	for i := 0; i < 3; i++ {
		if normal[i] > 0 {
			vmin[i] = -boxHalf[i]
			vmax[i] = boxHalf[i]
		} else {
			vmin[i] = boxHalf[i]
			vmax[i] = -boxHalf[i]
		}
	}

	d := normal.Dot(point)
	if normal.Dot(vmin)+(-d) > 0 {
		return false
	}
	if normal.Dot(vmax)+(-d) >= 0 {
		return true
	}
	return false
}

func min3(a, b, c float32) float32 {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}

func max3(a, b, c float32) float32 {
	m := a
	if b > m {
		m = b
	}
	if c > m {
		m = c
	}
	return m
}

func abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
