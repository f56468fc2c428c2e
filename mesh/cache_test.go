package mesh

import (
	"math"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/petgprojects/ElementalWarrior-sub000/sensor"
	"github.com/petgprojects/ElementalWarrior-sub000/vmath"
)

// wallUpdate builds a 2x2 vertical quad facing +Z, centered at the local
// origin, lifted into world space by transform.
func wallUpdate(id uuid.UUID, transform vmath.Transform) sensor.MeshUpdate {
	return sensor.MeshUpdate{
		Kind:      sensor.MeshAdded,
		ID:        id,
		Transform: transform,
		Vertices: []vmath.Vec3{
			{X: -1, Y: -1}, {X: 1, Y: -1}, {X: 1, Y: 1}, {X: -1, Y: 1},
		},
		Indices: []uint32{0, 1, 2, 0, 2, 3},
		Time:    time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestIngestThenRaycast(t *testing.T) {
	c := NewCache(nil)
	id := uuid.New()
	// Quad 3m in front of the origin along -Z
	tr := vmath.Transform{Position: vmath.Vec3{Z: -3}, Rotation: vmath.QuatIdentity}
	if err := c.Ingest(wallUpdate(id, tr)); err != nil {
		t.Fatalf("Ingest failed: %v", err)
	}

	origin := vmath.Vec3{X: 0.2, Y: 0.1}
	hit, ok := c.Raycast(origin, vmath.Forward, 10)
	if !ok {
		t.Fatal("Expected raycast hit on cached quad")
	}
	if math.Abs(hit.Distance-3) > 1e-9 {
		t.Errorf("Expected hit at distance 3, got %v", hit.Distance)
	}
	if math.Abs(hit.Position.Z+3) > 1e-9 {
		t.Errorf("Expected hit on the quad plane z=-3, got %v", hit.Position)
	}
	// Normal must oppose the ray direction
	if hit.Normal.Dot(vmath.Forward) >= 0 {
		t.Errorf("Expected normal opposing ray, got %v", hit.Normal)
	}
	if hit.Mesh != id {
		t.Errorf("Expected hit mesh %v, got %v", id, hit.Mesh)
	}
}

func TestRaycastParallelMiss(t *testing.T) {
	c := NewCache(nil)
	c.Ingest(wallUpdate(uuid.New(), vmath.Transform{Position: vmath.Vec3{Z: -3}, Rotation: vmath.QuatIdentity}))

	// Ray sliding along the quad plane
	if _, ok := c.Raycast(vmath.Vec3{X: -5, Z: -3}, vmath.Right, 20); ok {
		t.Error("Expected parallel ray to miss")
	}
}

func TestRaycastClosestOfMany(t *testing.T) {
	c := NewCache(nil)
	far := uuid.New()
	near := uuid.New()
	c.Ingest(wallUpdate(far, vmath.Transform{Position: vmath.Vec3{Z: -8}, Rotation: vmath.QuatIdentity}))
	c.Ingest(wallUpdate(near, vmath.Transform{Position: vmath.Vec3{Z: -2}, Rotation: vmath.QuatIdentity}))

	hit, ok := c.Raycast(vmath.Vec3{}, vmath.Forward, 20)
	if !ok {
		t.Fatal("Expected a hit")
	}
	if hit.Mesh != near {
		t.Errorf("Expected closest mesh %v, got %v", near, hit.Mesh)
	}
	if math.Abs(hit.Distance-2) > 1e-9 {
		t.Errorf("Expected distance 2, got %v", hit.Distance)
	}
}

func TestEvictIndependence(t *testing.T) {
	c := NewCache(nil)
	keep := uuid.New()
	drop := uuid.New()
	c.Ingest(wallUpdate(keep, vmath.Transform{Position: vmath.Vec3{Z: -3}, Rotation: vmath.QuatIdentity}))
	c.Ingest(wallUpdate(drop, vmath.Transform{Position: vmath.Vec3{Z: -6}, Rotation: vmath.QuatIdentity}))

	if !c.Evict(drop) {
		t.Fatal("Expected eviction of cached id to succeed")
	}
	if c.Evict(drop) {
		t.Error("Expected second eviction of same id to report false")
	}
	if !c.Contains(keep) {
		t.Error("Expected unrelated entry to survive eviction")
	}
	if _, ok := c.Raycast(vmath.Vec3{}, vmath.Forward, 10); !ok {
		t.Error("Expected surviving entry to stay queryable")
	}
}

func TestMeshRemovedRetainsGeometry(t *testing.T) {
	c := NewCache(nil)
	id := uuid.New()
	c.Ingest(wallUpdate(id, vmath.Transform{Position: vmath.Vec3{Z: -3}, Rotation: vmath.QuatIdentity}))

	// Sensor losing the anchor must not evict cached geometry
	c.Ingest(sensor.MeshUpdate{Kind: sensor.MeshRemoved, ID: id})
	if !c.Contains(id) {
		t.Fatal("Expected geometry to survive a feed removal event")
	}
	if _, ok := c.Raycast(vmath.Vec3{}, vmath.Forward, 10); !ok {
		t.Error("Expected removed anchor to stay hittable")
	}
}

func TestIngestMalformedKeepsPrior(t *testing.T) {
	c := NewCache(nil)
	id := uuid.New()
	c.Ingest(wallUpdate(id, vmath.Transform{Position: vmath.Vec3{Z: -3}, Rotation: vmath.QuatIdentity}))

	bad := wallUpdate(id, vmath.Transform{Position: vmath.Vec3{Z: -9}, Rotation: vmath.QuatIdentity})
	bad.Indices = []uint32{0, 1, 9}
	if err := c.Ingest(bad); err == nil {
		t.Fatal("Expected out-of-range index to be rejected")
	}

	// Prior entry unchanged: still hit at the old distance
	hit, ok := c.Raycast(vmath.Vec3{}, vmath.Forward, 20)
	if !ok || math.Abs(hit.Distance-3) > 1e-9 {
		t.Errorf("Expected prior geometry retained at distance 3, got ok=%v dist=%v", ok, hit.Distance)
	}

	truncated := wallUpdate(uuid.New(), vmath.TransformIdentity)
	truncated.Indices = []uint32{0, 1}
	if err := c.Ingest(truncated); err == nil {
		t.Error("Expected non-triple index count to be rejected")
	}
	empty := wallUpdate(uuid.New(), vmath.TransformIdentity)
	empty.Vertices = nil
	if err := c.Ingest(empty); err == nil {
		t.Error("Expected empty vertex buffer to be rejected")
	}
}

func TestIngestIdenticalBuffersRefreshesTransform(t *testing.T) {
	c := NewCache(nil)
	id := uuid.New()
	c.Ingest(wallUpdate(id, vmath.Transform{Position: vmath.Vec3{Z: -3}, Rotation: vmath.QuatIdentity}))

	// Same content, shifted anchor: dedupe path must still move the mesh
	moved := wallUpdate(id, vmath.Transform{Position: vmath.Vec3{Z: -5}, Rotation: vmath.QuatIdentity})
	moved.Kind = sensor.MeshUpdated
	if err := c.Ingest(moved); err != nil {
		t.Fatalf("Ingest failed: %v", err)
	}
	if c.Len() != 1 {
		t.Fatalf("Expected a single entry after update, got %d", c.Len())
	}

	hit, ok := c.Raycast(vmath.Vec3{}, vmath.Forward, 20)
	if !ok || math.Abs(hit.Distance-5) > 1e-9 {
		t.Errorf("Expected refreshed transform at distance 5, got ok=%v dist=%v", ok, hit.Distance)
	}
}

func TestRaycastSegment(t *testing.T) {
	c := NewCache(nil)
	c.Ingest(wallUpdate(uuid.New(), vmath.Transform{Position: vmath.Vec3{Z: -3}, Rotation: vmath.QuatIdentity}))

	// Segment crossing the quad between ticks
	if hit, ok := c.RaycastSegment(vmath.Vec3{Z: -2}, vmath.Vec3{Z: -4}); !ok {
		t.Error("Expected swept cast across the quad to hit")
	} else if math.Abs(hit.Distance-1) > 1e-9 {
		t.Errorf("Expected hit 1m into the segment, got %v", hit.Distance)
	}

	// Segment stopping short of the quad
	if _, ok := c.RaycastSegment(vmath.Vec3{Z: -1}, vmath.Vec3{Z: -2.5}); ok {
		t.Error("Expected short segment to miss")
	}

	// Degenerate zero-length segment
	if _, ok := c.RaycastSegment(vmath.Vec3{Z: -2}, vmath.Vec3{Z: -2}); ok {
		t.Error("Expected zero-length segment to miss")
	}
}

func TestSnapshotWorldSpace(t *testing.T) {
	c := NewCache(nil)
	c.Ingest(wallUpdate(uuid.New(), vmath.Transform{Position: vmath.Vec3{X: 10, Z: -3}, Rotation: vmath.QuatIdentity}))

	if c.Snapshot() != nil {
		t.Error("Expected nil snapshot while visualization is disabled")
	}
	c.SetVisualization(true)
	if !c.VisualizationEnabled() {
		t.Error("Expected visualization enabled")
	}

	tris := c.Snapshot()
	if len(tris) != 2 {
		t.Fatalf("Expected 2 triangles in snapshot, got %d", len(tris))
	}
	for _, tri := range tris {
		for _, p := range []vmath.Vec3{tri.A, tri.B, tri.C} {
			if math.Abs(p.Z+3) > 1e-9 || p.X < 8.9 || p.X > 11.1 {
				t.Errorf("Expected world-space vertex near x=10 z=-3, got %v", p)
			}
		}
	}
}

func TestClear(t *testing.T) {
	c := NewCache(nil)
	c.Ingest(wallUpdate(uuid.New(), vmath.TransformIdentity))
	c.Ingest(wallUpdate(uuid.New(), vmath.Transform{Position: vmath.Vec3{Z: -4}, Rotation: vmath.QuatIdentity}))

	if c.Len() != 2 || c.TriangleTotal() != 4 {
		t.Fatalf("Expected 2 entries / 4 triangles, got %d / %d", c.Len(), c.TriangleTotal())
	}
	c.Clear()
	if c.Len() != 0 {
		t.Errorf("Expected empty cache after clear, got %d", c.Len())
	}
}
