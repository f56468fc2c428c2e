package mesh

import (
	"encoding/binary"
	"fmt"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/petgprojects/ElementalWarrior-sub000/parameter"
	"github.com/petgprojects/ElementalWarrior-sub000/sensor"
	"github.com/petgprojects/ElementalWarrior-sub000/vmath"
)

// Entry is one cached environment-mesh anchor. Buffers are anchor-local;
// the transform lifts them into world space at query time.
type Entry struct {
	ID        uuid.UUID
	Transform vmath.Transform
	Vertices  []vmath.Vec3
	Indices   []uint32
	UpdatedAt time.Time

	// contentHash fingerprints the raw buffers so identical re-deliveries
	// skip the copy and only refresh transform and timestamp.
	contentHash uint64
}

// TriangleCount is the entry's triangle total.
func (e *Entry) TriangleCount() int {
	return len(e.Indices) / 3
}

// Cache holds every environment mesh ever observed. Entries survive the
// sensor dropping their anchor from the live feed; a projectile can still
// hit a wall scanned minutes ago. Only Evict and Clear remove data.
type Cache struct {
	mu      sync.RWMutex
	entries map[uuid.UUID]*Entry
	log     *zap.Logger
	visual  atomic.Bool
}

func NewCache(log *zap.Logger) *Cache {
	if log == nil {
		log = zap.NewNop()
	}
	return &Cache{
		entries: make(map[uuid.UUID]*Entry),
		log:     log,
	}
}

// Ingest validates and upserts one mesh update. Malformed buffers are
// rejected with an error and any prior entry for the id stays untouched.
// MeshRemoved events only refresh bookkeeping; cached geometry is kept.
func (c *Cache) Ingest(u sensor.MeshUpdate) error {
	if u.Kind == sensor.MeshRemoved {
		// Anchor left the live feed. Deliberately not an eviction.
		c.log.Debug("mesh anchor removed from feed, geometry retained",
			zap.String("mesh", u.ID.String()))
		return nil
	}
	if err := validateBuffers(u.Vertices, u.Indices); err != nil {
		c.log.Warn("dropping malformed mesh update",
			zap.String("mesh", u.ID.String()),
			zap.Error(err))
		return err
	}

	hash := hashBuffers(u.Vertices, u.Indices)

	c.mu.Lock()
	defer c.mu.Unlock()

	if prev, ok := c.entries[u.ID]; ok && prev.contentHash == hash {
		prev.Transform = u.Transform
		prev.UpdatedAt = u.Time
		return nil
	}

	entry := &Entry{
		ID:          u.ID,
		Transform:   u.Transform,
		Vertices:    append([]vmath.Vec3(nil), u.Vertices...),
		Indices:     append([]uint32(nil), u.Indices...),
		UpdatedAt:   u.Time,
		contentHash: hash,
	}
	c.entries[u.ID] = entry
	c.log.Debug("mesh ingested",
		zap.String("mesh", u.ID.String()),
		zap.Int("triangles", entry.TriangleCount()))
	return nil
}

// Evict removes one entry. This path exists only for the user-facing
// clear-scan action; tracking loss never reaches it.
func (c *Cache) Evict(id uuid.UUID) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.entries[id]; !ok {
		return false
	}
	delete(c.entries, id)
	return true
}

// Clear drops every cached mesh.
func (c *Cache) Clear() {
	c.mu.Lock()
	n := len(c.entries)
	c.entries = make(map[uuid.UUID]*Entry)
	c.mu.Unlock()
	c.log.Info("mesh cache cleared", zap.Int("evicted", n))
}

// Len reports the cached anchor count.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// TriangleTotal reports the summed triangle count across all entries.
func (c *Cache) TriangleTotal() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	total := 0
	for _, e := range c.entries {
		total += e.TriangleCount()
	}
	return total
}

// Contains reports whether an anchor id is queryable.
func (c *Cache) Contains(id uuid.UUID) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.entries[id]
	return ok
}

// SetVisualization toggles the read-only triangle snapshot. Disabled by
// default so overlay consumers pay the copy cost only when watching.
func (c *Cache) SetVisualization(on bool) {
	c.visual.Store(on)
}

// VisualizationEnabled reports the snapshot toggle.
func (c *Cache) VisualizationEnabled() bool {
	return c.visual.Load()
}

// Snapshot returns every cached triangle in world space for read-only
// visualization overlays, or nil while visualization is disabled.
func (c *Cache) Snapshot() []vmath.Triangle {
	if !c.visual.Load() {
		return nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]vmath.Triangle, 0, c.triangleTotalLocked())
	for _, e := range c.entries {
		for i := 0; i+2 < len(e.Indices); i += 3 {
			out = append(out, vmath.Triangle{
				A: e.Transform.Apply(e.Vertices[e.Indices[i]]),
				B: e.Transform.Apply(e.Vertices[e.Indices[i+1]]),
				C: e.Transform.Apply(e.Vertices[e.Indices[i+2]]),
			})
		}
	}
	return out
}

func (c *Cache) triangleTotalLocked() int {
	total := 0
	for _, e := range c.entries {
		total += e.TriangleCount()
	}
	return total
}

func validateBuffers(vertices []vmath.Vec3, indices []uint32) error {
	if len(vertices) == 0 {
		return fmt.Errorf("empty vertex buffer")
	}
	if len(indices) == 0 || len(indices)%parameter.MeshIndicesPerTriangle != 0 {
		return fmt.Errorf("index count %d not a multiple of %d", len(indices), parameter.MeshIndicesPerTriangle)
	}
	limit := uint32(len(vertices))
	for _, idx := range indices {
		if idx >= limit {
			return fmt.Errorf("index %d out of range for %d vertices", idx, limit)
		}
	}
	return nil
}

func hashBuffers(vertices []vmath.Vec3, indices []uint32) uint64 {
	d := xxhash.New()
	var buf [8]byte
	writeFloat := func(f float64) {
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(f))
		d.Write(buf[:])
	}
	for _, v := range vertices {
		writeFloat(v.X)
		writeFloat(v.Y)
		writeFloat(v.Z)
	}
	for _, idx := range indices {
		binary.LittleEndian.PutUint64(buf[:], uint64(idx))
		d.Write(buf[:])
	}
	return d.Sum64()
}
