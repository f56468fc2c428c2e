package vmath

// RayEpsilon rejects near-parallel rays and self-intersections at t≈0 in
// the Möller–Trumbore test.
const RayEpsilon = 1e-7

// Triangle is three world-space corners, counter-clockwise winding when
// viewed from the front face.
type Triangle struct {
	A, B, C Vec3
}

// Normal returns the unnormalized face normal (winding-dependent sign).
func (tr Triangle) Normal() Vec3 {
	return tr.B.Sub(tr.A).Cross(tr.C.Sub(tr.A))
}

// IntersectRayTriangle runs the Möller–Trumbore test for a ray against one
// triangle. dir must be unit length for t to be a distance. Returns the
// parametric distance t and whether the ray hits the triangle's interior
// with t > RayEpsilon. Both triangle faces intersect (no backface culling);
// cached environment geometry has no guaranteed winding.
func IntersectRayTriangle(origin, dir Vec3, tr Triangle) (t float64, ok bool) {
	edge1 := tr.B.Sub(tr.A)
	edge2 := tr.C.Sub(tr.A)

	pvec := dir.Cross(edge2)
	det := edge1.Dot(pvec)
	if det > -RayEpsilon && det < RayEpsilon {
		return 0, false // Parallel to triangle plane
	}
	invDet := 1.0 / det

	tvec := origin.Sub(tr.A)
	u := tvec.Dot(pvec) * invDet
	if u < 0 || u > 1 {
		return 0, false
	}

	qvec := tvec.Cross(edge1)
	v := dir.Dot(qvec) * invDet
	if v < 0 || u+v > 1 {
		return 0, false
	}

	t = edge2.Dot(qvec) * invDet
	if t <= RayEpsilon {
		return 0, false // Behind or touching the origin
	}
	return t, true
}
