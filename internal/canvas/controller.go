// Package canvas composes the overlay scene from a settings snapshot and
// keeps it current: it owns the scene graph, the terminator engine and the
// recompute timer, and rebuilds all three on every settings reload.
//
// The Controller is driven from one event loop. It never blocks and never
// starts goroutines; the caller schedules timer ticks using TimerGeneration
// and feeds them back through Tick.
package canvas

import (
	"fmt"
	"runtime"
	"time"

	"github.com/papapumpkin/meridian/internal/geo"
	"github.com/papapumpkin/meridian/internal/logging"
	"github.com/papapumpkin/meridian/internal/scene"
	"github.com/papapumpkin/meridian/internal/settings"
	"github.com/papapumpkin/meridian/internal/terminator"
)

// Layout constants, in surface pixels.
const (
	LineTop        = 20 // y of every meridian line
	LabelShiftX    = 10 // label offset right of its line
	LabelLift      = 40 // label distance above the monitor box
	MonitorBorders = 3  // monitor sits this many border widths above the box
)

// Paint order of each object kind.
const (
	ZBackground = 0
	ZLine       = 1
	ZLabel      = 2
	ZLocation   = 10
	ZMonitor    = 99
)

// lineCount is today's line plus tomorrow's.
const lineCount = 2

// Controller is the composition state machine.
type Controller struct {
	graph  *scene.Graph
	engine *terminator.Engine
	snap   settings.Snapshot
	state  State

	timerGen    uint64
	timerActive bool
	interval    time.Duration

	// location is the live marker; live is the most recent tracker fix and
	// survives rebuilds.
	location geo.Location
	live     geo.GeoPoint
	hasLive  bool

	labels     [lineCount]*labelText
	background *backgroundPainter

	lineListeners     []func(terminator.Pair)
	locationListeners []func(geo.Location)

	log logging.Logger
	now func() time.Time
}

// Option configures a Controller.
type Option func(*Controller)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// WithLogger sets the log sink.
func WithLogger(l logging.Logger) Option {
	return func(c *Controller) { c.log = l }
}

// WithInterval overrides the recompute period.
func WithInterval(d time.Duration) Option {
	return func(c *Controller) { c.interval = d }
}

// New returns an idle controller with an empty graph.
func New(opts ...Option) *Controller {
	c := &Controller{
		graph:    scene.NewGraph(),
		state:    StateIdle,
		interval: terminator.Interval,
		log:      logging.Nop{},
		now:      time.Now,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// ReloadStart tears the scene down: the timer stops, every object and
// listener is dropped, and the controller waits in StateEmpty for the new
// snapshot. It is valid in any state.
func (c *Controller) ReloadStart() {
	c.state = StateTearingDown
	c.stopTimer()
	c.graph.Clear()
	c.lineListeners = nil
	c.locationListeners = nil
	c.engine = nil
	c.background = nil
	c.labels = [lineCount]*labelText{}
	c.state = StateEmpty
	logging.Logf(c.log, logging.SeverityDebug, "canvas: scene cleared")
}

// ReloadFinish rebuilds the scene from snap. Calling it outside StateEmpty
// is a controller bug and panics.
func (c *Controller) ReloadFinish(snap settings.Snapshot) {
	if c.state != StateEmpty {
		panic(fmt.Sprintf("canvas: ReloadFinish in state %s", c.state))
	}
	c.state = StateRebuilding
	c.graph.Clear()
	c.snap = snap

	c.location = snap.Location
	if c.hasLive {
		c.location = settings.LocationAt(c.live, snap.Map, snap.Location.DotRadius, snap.Location.DotBorder)
	}

	if snap.MapVisible {
		c.buildMap()
	}
	c.buildMonitor()

	c.state = StateReady
	logging.Logf(c.log, logging.SeverityDebug, "canvas: scene rebuilt with %d objects, %d meridians (generation %d)",
		c.graph.Len(), c.graph.Count(scene.KindTerminatorLine), snap.Generation)

	if snap.MapVisible {
		c.recompute(c.now())
		c.startTimer()
	}
}

func (c *Controller) buildMap() {
	snap := c.snap
	c.engine = terminator.NewEngine(snap.Map)

	c.background = &backgroundPainter{cfg: snap.Map, places: snap.Places, dot: c.location}
	c.graph.Add(scene.Object{
		ID:      scene.Singleton(scene.KindBackground),
		Z:       ZBackground,
		Visible: true,
		Painter: c.background,
	})

	lineHeight := snap.Map.CenterY + snap.Map.PixelHeight()/2 - LineTop
	labelY := float64(snap.Screen.Height) - snap.Box.Height - LabelLift
	for i := 0; i < lineCount; i++ {
		c.graph.Add(scene.Object{
			ID:      scene.Indexed(scene.KindTerminatorLine, i),
			Z:       ZLine,
			Pos:     geo.MapPoint{Y: LineTop},
			Visible: true,
			Painter: linePainter{height: lineHeight},
		})

		text := &labelText{}
		c.labels[i] = text
		c.graph.Add(scene.Object{
			ID:      scene.Indexed(scene.KindTerminatorLabel, i),
			Z:       ZLabel,
			Pos:     geo.MapPoint{Y: labelY},
			Visible: true,
			Painter: labelPainter{text: text},
		})
	}

	c.graph.Add(scene.Object{
		ID:      scene.Singleton(scene.KindLocationMarker),
		Z:       ZLocation,
		Pos:     c.location.Anchor(),
		Visible: true,
		Painter: markerPainter{radius: c.location.Offset()},
	})

	c.lineListeners = append(c.lineListeners, func(p terminator.Pair) {
		for i, l := range p {
			c.graph.SetPosition(scene.Indexed(scene.KindTerminatorLine, i), geo.MapPoint{X: l.MapX, Y: LineTop})
			c.graph.SetPosition(scene.Indexed(scene.KindTerminatorLabel, i), geo.MapPoint{X: l.MapX + LabelShiftX, Y: labelY})
			c.labels[i].set(l)
		}
	})
	c.locationListeners = append(c.locationListeners,
		func(l geo.Location) {
			c.graph.SetPosition(scene.Singleton(scene.KindLocationMarker), l.Anchor())
		},
		func(l geo.Location) {
			c.background.dot = l
		},
	)
}

func (c *Controller) buildMonitor() {
	snap := c.snap
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	monitorY := float64(snap.Screen.Height) - snap.Box.Height - MonitorBorders*snap.Box.BorderWidth
	c.graph.Add(scene.Object{
		ID:      scene.Singleton(scene.KindMonitor),
		Z:       ZMonitor,
		Pos:     geo.MapPoint{Y: monitorY},
		Visible: true,
		Painter: monitorPainter{
			width:      snap.Screen.Width,
			height:     snap.Box.Height,
			builtAt:    c.now().UTC(),
			host:       snap.MapHost,
			heap:       mem.HeapAlloc,
			generation: snap.Generation,
			places:     len(snap.Places),
		},
	})
}

// Tick handles a timer firing for generation gen. Ticks from a stopped or
// replaced timer are ignored. It reports whether the timer is still running,
// in which case the caller schedules the next tick.
func (c *Controller) Tick(gen uint64, now time.Time) bool {
	if !c.timerActive || gen != c.timerGen {
		return false
	}
	c.recompute(now)
	return true
}

// TimerGeneration returns the generation of the live timer and whether a
// timer is running at all.
func (c *Controller) TimerGeneration() (uint64, bool) {
	return c.timerGen, c.timerActive
}

// Interval returns the recompute period.
func (c *Controller) Interval() time.Duration {
	return c.interval
}

func (c *Controller) startTimer() {
	c.timerGen++
	c.timerActive = true
}

func (c *Controller) stopTimer() {
	if c.timerActive {
		c.timerGen++
	}
	c.timerActive = false
}

func (c *Controller) recompute(now time.Time) {
	if c.engine == nil {
		return
	}
	pair := c.engine.Recompute(now)
	for _, fn := range c.lineListeners {
		fn(pair)
	}
}

// LocationChanged moves the location marker to p. While the map is hidden
// the fix is only remembered and applied on the next rebuild.
func (c *Controller) LocationChanged(p geo.GeoPoint) {
	c.live, c.hasLive = p, true
	if c.state != StateReady || !c.snap.MapVisible {
		return
	}
	c.location = settings.LocationAt(p, c.snap.Map, c.location.DotRadius, c.location.DotBorder)
	for _, fn := range c.locationListeners {
		fn(c.location)
	}
	logging.Logf(c.log, logging.SeverityDebug, "canvas: location moved to %s", p)
}

// State returns the lifecycle phase.
func (c *Controller) State() State {
	return c.state
}

// Lines returns the current meridian pair. ok is false while the map is
// hidden or before the first recomputation.
func (c *Controller) Lines() (terminator.Pair, bool) {
	if c.engine == nil {
		return terminator.Pair{}, false
	}
	return c.engine.Lines()
}

// Location returns the live location marker geometry.
func (c *Controller) Location() geo.Location {
	return c.location
}

// LiveLocation returns the geographic position of the marker: the latest
// tracker fix, or the configured home point.
func (c *Controller) LiveLocation() geo.GeoPoint {
	if c.hasLive {
		return c.live
	}
	return c.snap.Home
}

// Snapshot returns the settings the scene was built from.
func (c *Controller) Snapshot() settings.Snapshot {
	return c.snap
}

// Objects returns the scene in paint order.
func (c *Controller) Objects() []scene.Object {
	return c.graph.Objects()
}

// Render paints the scene onto s.
func (c *Controller) Render(s scene.Surface) {
	c.graph.Render(s)
}
