// warrior-console replays scripted capture clips through the interaction
// engine and renders the resulting state and events as a terminal
// dashboard, with audio cues when a backend is available.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/petgprojects/ElementalWarrior-sub000/audio"
	"github.com/petgprojects/ElementalWarrior-sub000/core"
	"github.com/petgprojects/ElementalWarrior-sub000/demo"
	"github.com/petgprojects/ElementalWarrior-sub000/engine"
	"github.com/petgprojects/ElementalWarrior-sub000/event"
	"github.com/petgprojects/ElementalWarrior-sub000/sensor"
)

const (
	frameInterval = 16 * time.Millisecond // ~60 FPS sensor cadence
	eventLogDepth = 12
	loopGap       = time.Second
)

type console struct {
	screen tcell.Screen
	width  int
	height int

	log  *zap.Logger
	eng  *engine.Engine
	snd  *audio.Sink
	disp *event.Dispatcher

	scn      demo.Clip
	seq      *sensor.Sequence
	start    time.Time
	meshSent []bool
	loop     bool

	paused   bool
	pausedAt time.Time

	recent []string
}

func newConsole(sceneName string, loop, mute bool, log *zap.Logger) (*console, error) {
	scn, err := demo.Build(sceneName)
	if err != nil {
		return nil, err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}

	c := &console{
		screen: screen,
		log:    log,
		scn:    scn,
		loop:   loop,
		snd:    audio.NewSink(audio.DefaultConfig(), log.Named("audio")),
		disp:   event.NewDispatcher(),
		recent: make([]string, 0, eventLogDepth),
	}
	c.width, c.height = screen.Size()

	// Audio is best effort; the sink stays silent when no backend exists.
	c.snd.Start()
	if mute {
		c.snd.ToggleMute()
	}

	c.wireCues()
	if err := c.resetEngine(); err != nil {
		screen.Fini()
		c.snd.Stop()
		return nil, err
	}
	return c, nil
}

// wireCues maps terminal interaction events onto audio cues and feeds the
// on-screen event log. Per-frame update events are too chatty to log.
func (c *console) wireCues() {
	cues := map[event.EventType]audio.Cue{
		event.EventElementSummoned:  audio.CueSummon,
		event.EventElementDespawned: audio.CueDespawn,
		event.EventElementLaunched:  audio.CueLaunch,
		event.EventProjectileImpact: audio.CueImpact,
		event.EventElementMerged:    audio.CueMerge,
		event.EventStreamStarted:    audio.CueStreamIgnite,
		event.EventWallConfirmed:    audio.CueWallConfirm,
		event.EventWallRejected:     audio.CueWallReject,
		event.EventWallSelected:     audio.CueSelect,
	}
	for t, cue := range cues {
		c.disp.On(t, func(event.Event) { c.snd.Play(cue) })
	}
	c.disp.OnAll(c.pushEvent)
}

func (c *console) pushEvent(ev event.Event) {
	switch ev.Type {
	case event.EventElementUpdated, event.EventStreamUpdated, event.EventWallUpdated:
		return
	}
	line := fmt.Sprintf("%6.2fs  %-18s %s",
		ev.Time.Sub(c.start).Seconds(), ev.Type, payloadSummary(ev.Payload))
	c.recent = append(c.recent, line)
	if len(c.recent) > eventLogDepth {
		c.recent = c.recent[1:]
	}
}

func payloadSummary(p any) string {
	switch v := p.(type) {
	case *event.ElementPayload:
		s := fmt.Sprintf("%s scale=%.2f", v.Limb, v.Scale)
		if v.Empowered {
			s += " empowered"
		}
		return s
	case *event.ElementLaunchedPayload:
		s := fmt.Sprintf("%s speed=%.1f", v.Limb, v.Speed)
		if v.Empowered {
			s += " empowered"
		}
		if v.CrossLimb {
			s += " cross"
		}
		return s
	case *event.ElementMergedPayload:
		return fmt.Sprintf("%s into %s", v.Donor, v.Receiver)
	case *event.StreamPayload:
		return fmt.Sprintf("%s len=%.2f", v.Limb, v.Length)
	case *event.StreamMergePayload:
		return fmt.Sprintf("at (%.2f %.2f %.2f)", v.Position.X, v.Position.Y, v.Position.Z)
	case *event.ScorchPayload:
		return fmt.Sprintf("at (%.2f %.2f %.2f)", v.Position.X, v.Position.Y, v.Position.Z)
	case *event.ProjectileImpactPayload:
		s := fmt.Sprintf("mag=%.1f", v.Magnitude)
		if v.Empowered {
			s += " empowered"
		}
		return s
	case *event.ProjectileExpiredPayload:
		return fmt.Sprintf("travelled=%.1f", v.Travelled)
	case *event.WallPayload:
		return fmt.Sprintf("w=%.2f h=%.2f yaw=%.2f %s", v.Width, v.HeightFraction, v.Yaw, v.Status)
	case *event.WallRejectedPayload:
		return fmt.Sprintf("%d/%d confirmed", v.Confirmed, v.Cap)
	case *event.TrackingPayload:
		return v.Limb.String()
	default:
		return ""
	}
}

// resetEngine builds a fresh engine and rewinds the scene clock. Used at
// startup, on restart, and on scene switches.
func (c *console) resetEngine() error {
	if c.eng != nil {
		c.eng.Stop()
	}
	eng, err := engine.New(engine.Options{Logger: c.log.Named("engine")})
	if err != nil {
		return err
	}
	eng.Start()
	c.eng = eng
	c.start = time.Now()
	c.seq = &sensor.Sequence{Start: c.start, Keys: c.scn.Keys}
	c.meshSent = make([]bool, len(c.scn.Meshes))
	return nil
}

func (c *console) switchScene(name string) {
	scn, err := demo.Build(name)
	if err != nil {
		return
	}
	c.scn = scn
	c.resetEngine()
}

// step advances one sensor frame: due mesh anchors first, then the
// interpolated hand frame, then the event drain.
func (c *console) step() {
	elapsed := time.Since(c.start)

	for i, m := range c.scn.Meshes {
		if !c.meshSent[i] && m.At <= elapsed {
			c.eng.OnMeshUpdate(m.Update)
			c.meshSent[i] = true
		}
	}

	f := c.seq.FrameAt(elapsed)
	c.eng.OnFrame(&f)
	c.disp.Dispatch(c.eng.Events().Consume())

	if c.loop && elapsed > c.scn.Length+loopGap {
		c.resetEngine()
	}
}

func (c *console) handleResize() {
	c.width, c.height = c.screen.Size()
}

func (c *console) handleInput(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if ev.Key() == tcell.KeyRune {
			switch r := ev.Rune(); {
			case r == 'q':
				return false
			case r == ' ':
				c.togglePause()
			case r == 'm':
				c.snd.ToggleMute()
			case r == 'r':
				c.resetEngine()
			case r == 'c':
				c.eng.MeshClear()
			case r >= '1' && r <= '6':
				c.switchScene(demo.Names[r-'1'])
			}
		}

	case *tcell.EventResize:
		c.handleResize()
	}
	return true
}

// togglePause freezes the scene clock so resuming does not skip ahead.
func (c *console) togglePause() {
	if c.paused {
		c.start = c.start.Add(time.Since(c.pausedAt))
		c.paused = false
		return
	}
	c.paused = true
	c.pausedAt = time.Now()
}

func (c *console) run() {
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			eventChan <- c.screen.PollEvent()
		}
	}()

	for {
		select {
		case ev := <-eventChan:
			if !c.handleInput(ev) {
				return
			}

		case <-ticker.C:
			if !c.paused {
				c.step()
			}
			c.draw()
		}
	}
}

func (c *console) drawText(x, y int, style tcell.Style, text string) {
	for i, r := range text {
		c.screen.SetContent(x+i, y, r, nil, style)
	}
}

func limbFlags(l engine.LimbDebug) string {
	s := ""
	if l.Holding {
		s += "holding "
	}
	if l.Streaming {
		s += "streaming "
	}
	if l.Empowered {
		s += "empowered"
	}
	if s == "" {
		s = "-"
	}
	return s
}

func (c *console) draw() {
	c.screen.Clear()

	title := tcell.StyleDefault.Foreground(tcell.ColorYellow)
	dim := tcell.StyleDefault.Foreground(tcell.ColorGray)
	plain := tcell.StyleDefault
	left := tcell.StyleDefault.Foreground(tcell.ColorGreen)
	right := tcell.StyleDefault.Foreground(tcell.ColorBlue)

	elapsed := time.Since(c.start)
	if c.paused {
		elapsed = c.pausedAt.Sub(c.start)
	}
	head := fmt.Sprintf(" ElementalWarrior console   scene %-7s %7.1fs", c.scn.Name, elapsed.Seconds())
	if c.paused {
		head += "   [paused]"
	}
	c.drawText(0, 0, title, head)

	audioLine := " audio: "
	if c.snd.Enabled() {
		played, dropped := c.snd.Stats()
		audioLine += fmt.Sprintf("%s (played %d, dropped %d)", c.snd.Backend(), played, dropped)
		if c.snd.Muted() {
			audioLine += "  muted"
		}
	} else {
		audioLine += "disabled"
	}
	c.drawText(0, 1, dim, audioLine)

	d := c.eng.Debug()
	ld := d.Limbs[core.ChiralityLeft]
	rd := d.Limbs[core.ChiralityRight]

	c.drawText(0, 3, left, " left")
	c.drawText(24, 3, right, "right")
	rows := []struct {
		label string
		lv    string
		rv    string
	}{
		{"tracked", fmt.Sprintf("%v", ld.Tracked), fmt.Sprintf("%v", rd.Tracked)},
		{"gesture", ld.Gesture, rd.Gesture},
		{"phase", ld.Phase, rd.Phase},
		{"flags", limbFlags(ld), limbFlags(rd)},
		{"speed", fmt.Sprintf("%.2f m/s", ld.Velocity.Len()), fmt.Sprintf("%.2f m/s", rd.Velocity.Len())},
	}
	for i, row := range rows {
		c.drawText(1, 4+i, dim, row.label)
		c.drawText(10, 4+i, plain, fmt.Sprintf("%-13s", row.lv))
		c.drawText(24, 4+i, plain, row.rv)
	}

	world := fmt.Sprintf(" world: projectiles %d | walls %d (%d confirmed) | mesh %d anchors / %d tris",
		d.Projectiles, d.Walls, d.WallsConfirmed, d.MeshEntries, d.MeshTriangles)
	if d.SessionActive {
		world += " | editing"
	}
	if d.SelectedWall != 0 {
		world += fmt.Sprintf(" | selected #%d", d.SelectedWall)
	}
	if d.CombinedStream {
		world += " | streams combined"
	}
	c.drawText(0, 10, plain, world)

	c.drawText(0, 12, title, " events")
	for i, line := range c.recent {
		c.drawText(1, 13+i, plain, line)
	}

	help := " [1-6] scene  [space] pause  [m] mute  [r] restart  [c] clear mesh  [esc] quit"
	c.drawText(0, c.height-1, dim, help)

	c.screen.Show()
}

func (c *console) cleanup() {
	c.screen.Fini()
	if c.eng != nil {
		c.eng.Stop()
	}
	c.snd.Stop()
}

func buildLogger(path string) (*zap.Logger, error) {
	if path == "" {
		return zap.NewNop(), nil
	}
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{path}
	return cfg.Build()
}

func main() {
	sceneFlag := flag.String("scene", "full", "demo scene: full, summon, throw, merge, stream, wall")
	loopFlag := flag.Bool("loop", false, "restart the scene after it ends")
	muteFlag := flag.Bool("mute", false, "start with audio muted")
	logPath := flag.String("log", "", "write the debug log to this file")
	flag.Parse()

	log, err := buildLogger(*logPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open log: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	c, err := newConsole(*sceneFlag, *loopFlag, *muteFlag, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	defer c.cleanup()

	c.run()
}
