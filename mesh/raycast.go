package mesh

import (
	"github.com/google/uuid"

	"github.com/petgprojects/ElementalWarrior-sub000/vmath"
)

// Hit is the closest ray-geometry intersection. Normal always opposes the
// ray so impact effects face the shooter.
type Hit struct {
	Position vmath.Vec3
	Normal   vmath.Vec3
	Distance float64
	Mesh     uuid.UUID
}

// Raycast scans every cached triangle in world space and keeps the closest
// intersection with t in (epsilon, maxDistance]. Linear in total cached
// triangles; callers rate-limit.
func (c *Cache) Raycast(origin, direction vmath.Vec3, maxDistance float64) (Hit, bool) {
	dir := direction.Normalize()
	if dir.IsZero() || maxDistance <= 0 {
		return Hit{}, false
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	best := Hit{Distance: maxDistance}
	found := false
	for _, e := range c.entries {
		for i := 0; i+2 < len(e.Indices); i += 3 {
			tri := vmath.Triangle{
				A: e.Transform.Apply(e.Vertices[e.Indices[i]]),
				B: e.Transform.Apply(e.Vertices[e.Indices[i+1]]),
				C: e.Transform.Apply(e.Vertices[e.Indices[i+2]]),
			}
			t, ok := vmath.IntersectRayTriangle(origin, dir, tri)
			if !ok || t > best.Distance {
				continue
			}
			if found && t >= best.Distance {
				continue
			}
			normal := tri.Normal()
			if normal.Dot(dir) > 0 {
				normal = normal.Neg()
			}
			best = Hit{
				Position: origin.Add(dir.Scale(t)),
				Normal:   normal,
				Distance: t,
				Mesh:     e.ID,
			}
			found = true
		}
	}
	return best, found
}

// RaycastSegment is the swept form for projectile motion: a cast from the
// previous position to the new one, so a fast projectile cannot tunnel
// through thin geometry between ticks.
func (c *Cache) RaycastSegment(prev, next vmath.Vec3) (Hit, bool) {
	delta := next.Sub(prev)
	length := delta.Len()
	if length <= vmath.RayEpsilon {
		return Hit{}, false
	}
	return c.Raycast(prev, delta.Scale(1/length), length)
}
