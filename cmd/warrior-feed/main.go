// warrior-feed hosts the interaction engine on a looping demo clip and
// publishes everything it emits over HTTP: a websocket event stream plus
// JSON snapshots of live status, debug state, and cached geometry.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/petgprojects/ElementalWarrior-sub000/core"
	"github.com/petgprojects/ElementalWarrior-sub000/demo"
	"github.com/petgprojects/ElementalWarrior-sub000/engine"
	"github.com/petgprojects/ElementalWarrior-sub000/sensor"
)

const (
	frameInterval = 16 * time.Millisecond
	loopGap       = time.Second
)

// envelope is the wire form of one feed message.
type envelope struct {
	Type    string    `json:"type"`
	Time    time.Time `json:"time"`
	Payload any       `json:"payload,omitempty"`
}

type feed struct {
	log *zap.Logger
	hub *hub

	mu       sync.RWMutex
	eng      *engine.Engine
	clip     demo.Clip
	seq      *sensor.Sequence
	start    time.Time
	meshSent []bool

	began time.Time
}

func newFeed(clipName string, log *zap.Logger) (*feed, error) {
	clip, err := demo.Build(clipName)
	if err != nil {
		return nil, err
	}
	f := &feed{
		log:   log,
		hub:   newHub(log.Named("hub")),
		clip:  clip,
		began: time.Now(),
	}
	if err := f.resetEngine(); err != nil {
		return nil, err
	}
	return f, nil
}

func (f *feed) engine() *engine.Engine {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.eng
}

// resetEngine swaps in a fresh engine and rewinds the clip clock.
func (f *feed) resetEngine() error {
	eng, err := engine.New(engine.Options{Logger: f.log.Named("engine")})
	if err != nil {
		return err
	}
	eng.SetMeshVisualization(true)
	eng.Start()

	f.mu.Lock()
	old := f.eng
	f.eng = eng
	f.start = time.Now()
	f.seq = &sensor.Sequence{Start: f.start, Keys: f.clip.Keys}
	f.meshSent = make([]bool, len(f.clip.Meshes))
	f.mu.Unlock()

	if old != nil {
		old.Stop()
	}
	return nil
}

// runClip drives sensor frames at capture cadence and broadcasts every
// emitted event until ctx ends.
func (f *feed) runClip(ctx context.Context) {
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			f.step()
		}
	}
}

func (f *feed) step() {
	elapsed := time.Since(f.start)

	for i, m := range f.clip.Meshes {
		if !f.meshSent[i] && m.At <= elapsed {
			f.eng.OnMeshUpdate(m.Update)
			f.meshSent[i] = true
		}
	}

	frame := f.seq.FrameAt(elapsed)
	f.eng.OnFrame(&frame)

	for _, ev := range f.eng.Events().Consume() {
		b, err := json.Marshal(envelope{Type: ev.Type.String(), Time: ev.Time, Payload: ev.Payload})
		if err != nil {
			f.log.Warn("event marshal failed", zap.String("type", ev.Type.String()), zap.Error(err))
			continue
		}
		f.hub.broadcast <- b
	}

	if elapsed > f.clip.Length+loopGap {
		if err := f.resetEngine(); err != nil {
			f.log.Error("clip restart failed", zap.Error(err))
		}
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Debug tool; cross-origin dashboards are the point.
	CheckOrigin: func(*http.Request) bool { return true },
}

func (f *feed) serveWs(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		f.log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	c := &client{hub: f.hub, conn: conn, send: make(chan []byte, sendBuffer)}
	f.hub.register <- c

	go c.writePump()
	go c.readPump()

	f.sendSnapshot(c)
}

// sendSnapshot queues the hello and current geometry so a new client can
// render the world before the next live event arrives.
func (f *feed) sendSnapshot(c *client) {
	hello, err := json.Marshal(envelope{
		Type: "hello",
		Time: time.Now(),
		Payload: map[string]any{
			"clip":   f.clip.Name,
			"clips":  demo.Names,
			"uptime": time.Since(f.began).Round(time.Second).String(),
		},
	})
	if err == nil {
		c.send <- hello
	}

	mesh, err := json.Marshal(envelope{
		Type:    "meshSnapshot",
		Time:    time.Now(),
		Payload: f.engine().MeshSnapshot(),
	})
	if err == nil {
		c.send <- mesh
	}
}

func writeJSON(w http.ResponseWriter, log *zap.Logger, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn("response encode failed", zap.Error(err))
	}
}

func (f *feed) serveIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, f.log, map[string]any{
		"service":   "warrior-feed",
		"clip":      f.clip.Name,
		"uptime":    time.Since(f.began).Round(time.Second).String(),
		"clients":   f.hub.clientCount(),
		"endpoints": []string{"/ws", "/status", "/debug", "/mesh"},
	})
}

func (f *feed) serveStatus(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, f.log, map[string]any{
		"clip":    f.clip.Name,
		"uptime":  time.Since(f.began).Round(time.Second).String(),
		"clients": f.hub.clientCount(),
		"metrics": f.engine().Status().Snapshot(),
	})
}

func (f *feed) serveDebug(w http.ResponseWriter, _ *http.Request) {
	d := f.engine().Debug()
	writeJSON(w, f.log, map[string]any{
		"left":           d.Limbs[core.ChiralityLeft],
		"right":          d.Limbs[core.ChiralityRight],
		"projectiles":    d.Projectiles,
		"walls":          d.Walls,
		"wallsConfirmed": d.WallsConfirmed,
		"sessionActive":  d.SessionActive,
		"selectedWall":   d.SelectedWall,
		"meshEntries":    d.MeshEntries,
		"meshTriangles":  d.MeshTriangles,
		"combinedStream": d.CombinedStream,
	})
}

func (f *feed) serveMesh(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, f.log, map[string]any{
		"triangles": f.engine().MeshSnapshot(),
	})
}

func buildLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func main() {
	addr := flag.String("addr", ":8787", "listen address")
	clipName := flag.String("scene", "full", "demo clip: full, summon, throw, merge, stream, wall")
	debug := flag.Bool("debug", false, "console log output")
	flag.Parse()

	log, err := buildLogger(*debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	f, err := newFeed(*clipName, log)
	if err != nil {
		log.Fatal("feed init failed", zap.Error(err))
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	go f.hub.run()
	go f.runClip(ctx)

	mux := http.NewServeMux()
	mux.HandleFunc("/", f.serveIndex)
	mux.HandleFunc("/ws", f.serveWs)
	mux.HandleFunc("/status", f.serveStatus)
	mux.HandleFunc("/debug", f.serveDebug)
	mux.HandleFunc("/mesh", f.serveMesh)

	srv := &http.Server{Addr: *addr, Handler: mux}
	go func() {
		log.Info("feed listening", zap.String("addr", *addr), zap.String("clip", f.clip.Name))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server failed", zap.Error(err))
			cancel()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutCtx, shutCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutCancel()
	srv.Shutdown(shutCtx)
	f.engine().Stop()
}
