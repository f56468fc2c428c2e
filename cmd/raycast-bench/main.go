// raycast-bench measures the environment-mesh cache: ingest throughput,
// the unchanged-buffer dedupe path, and raycast latency against a ring of
// scanned panels approximating a room.
package main

import (
	"flag"
	"fmt"
	"math"
	"math/rand"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/petgprojects/ElementalWarrior-sub000/mesh"
	"github.com/petgprojects/ElementalWarrior-sub000/sensor"
	"github.com/petgprojects/ElementalWarrior-sub000/vmath"
)

const (
	roomRadius  = 8.0
	panelWidth  = 2.5
	panelHeight = 3.0
	eyeHeight   = 1.5
)

// panel builds one anchor-local quad strip: cols quads, 2*cols triangles.
func panel(cols int) ([]vmath.Vec3, []uint32) {
	verts := make([]vmath.Vec3, 0, (cols+1)*2)
	for i := 0; i <= cols; i++ {
		x := -panelWidth/2 + panelWidth*float64(i)/float64(cols)
		verts = append(verts,
			vmath.Vec3{x, -panelHeight / 2, 0},
			vmath.Vec3{x, panelHeight / 2, 0},
		)
	}
	idx := make([]uint32, 0, cols*6)
	for i := 0; i < cols; i++ {
		bl := uint32(i * 2)
		tl := bl + 1
		br := uint32((i + 1) * 2)
		tr := br + 1
		idx = append(idx, bl, br, tr, bl, tr, tl)
	}
	return verts, idx
}

// ringUpdates places anchors around a circle facing the center.
func ringUpdates(anchors, cols int) []sensor.MeshUpdate {
	verts, idx := panel(cols)
	out := make([]sensor.MeshUpdate, 0, anchors)
	for k := 0; k < anchors; k++ {
		theta := 2 * math.Pi * float64(k) / float64(anchors)
		pos := vmath.Vec3{roomRadius * math.Sin(theta), eyeHeight, -roomRadius * math.Cos(theta)}
		inward := pos.Neg().Horizontal().Normalize()
		out = append(out, sensor.MeshUpdate{
			Kind:      sensor.MeshAdded,
			ID:        uuid.New(),
			Transform: vmath.Transform{Position: pos, Rotation: vmath.LookRotation(inward, vmath.Up)},
			Vertices:  verts,
			Indices:   idx,
		})
	}
	return out
}

// castRay yields a jittered eye-level origin and a mostly horizontal
// direction so most rays meet the ring.
func castRay(rng *rand.Rand) (origin, dir vmath.Vec3) {
	origin = vmath.Vec3{
		rng.Float64() - 0.5,
		eyeHeight + (rng.Float64()-0.5)*0.6,
		rng.Float64() - 0.5,
	}
	az := rng.Float64() * 2 * math.Pi
	el := (rng.Float64() - 0.5) * 0.6
	dir = vmath.Vec3{
		math.Sin(az) * math.Cos(el),
		math.Sin(el),
		-math.Cos(az) * math.Cos(el),
	}
	return origin, dir
}

func main() {
	anchors := flag.Int("anchors", 16, "mesh anchors in the ring")
	cols := flag.Int("cols", 64, "quads per anchor (2 triangles each)")
	rays := flag.Int("rays", 200000, "raycasts to time")
	warm := flag.Int("warm", 10000, "warmup raycasts before timing")
	seed := flag.Int64("seed", 1, "ray generator seed")
	segment := flag.Bool("segment", false, "use segment sweeps instead of capped rays")
	flag.Parse()

	if *anchors < 1 || *cols < 1 || *rays < 1 {
		fmt.Fprintln(os.Stderr, "anchors, cols and rays must be positive")
		os.Exit(1)
	}

	cache := mesh.NewCache(nil)
	updates := ringUpdates(*anchors, *cols)

	ingestStart := time.Now()
	for _, u := range updates {
		if err := cache.Ingest(u); err != nil {
			fmt.Fprintf(os.Stderr, "ingest failed: %v\n", err)
			os.Exit(1)
		}
	}
	ingestTook := time.Since(ingestStart)
	tris := cache.TriangleTotal()
	fmt.Printf("ingest      %d anchors / %d triangles in %v (%.0f tris/ms)\n",
		cache.Len(), tris, ingestTook, float64(tris)/float64(ingestTook.Milliseconds()+1))

	// Identical buffers re-delivered: the content hash short-circuits the
	// copy, leaving only the transform refresh.
	redoStart := time.Now()
	for _, u := range updates {
		u.Kind = sensor.MeshUpdated
		if err := cache.Ingest(u); err != nil {
			fmt.Fprintf(os.Stderr, "re-ingest failed: %v\n", err)
			os.Exit(1)
		}
	}
	redoTook := time.Since(redoStart)
	fmt.Printf("re-ingest   unchanged buffers in %v (%.1fx ingest)\n",
		redoTook, float64(ingestTook)/float64(redoTook))

	rng := rand.New(rand.NewSource(*seed))
	maxDist := roomRadius * 2

	cast := func() (hit bool, dist float64) {
		origin, dir := castRay(rng)
		if *segment {
			h, ok := cache.RaycastSegment(origin, origin.Add(dir.Scale(maxDist)))
			return ok, h.Distance
		}
		h, ok := cache.Raycast(origin, dir, maxDist)
		return ok, h.Distance
	}

	for i := 0; i < *warm; i++ {
		cast()
	}

	var hits int
	var total float64
	castStart := time.Now()
	for i := 0; i < *rays; i++ {
		if ok, d := cast(); ok {
			hits++
			total += d
		}
	}
	castTook := time.Since(castStart)

	mode := "ray"
	if *segment {
		mode = "segment"
	}
	perRay := castTook / time.Duration(*rays)
	fmt.Printf("raycast     %d %ss in %v, %v/cast, %.1f%% hit\n",
		*rays, mode, castTook, perRay, 100*float64(hits)/float64(*rays))
	if hits > 0 {
		fmt.Printf("            mean hit distance %.2fm over %d triangles\n",
			total/float64(hits), tris)
	}
}
