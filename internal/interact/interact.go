// Package interact classifies raw input events into overlay actions. The
// overlay swallows scrolling and keys, raises a context menu on right release
// and opens an external map on a left double click.
package interact

import (
	"fmt"
	"math"
	"time"

	"github.com/papapumpkin/meridian/internal/geo"
)

// EventKind identifies the type of an input event.
type EventKind int

// Event kinds.
const (
	KindScroll EventKind = iota
	KindWheel
	KindKeyPress
	KindButtonRelease
	KindDoubleClick
	KindMotion
)

// Button is the mouse button attached to an event.
type Button int

// Mouse buttons.
const (
	ButtonNone Button = iota
	ButtonLeft
	ButtonRight
	ButtonMiddle
)

// Event is one input event in surface pixel coordinates.
type Event struct {
	Kind   EventKind
	Button Button
	Pos    geo.MapPoint
}

// Outcome says what the overlay does with an event.
type Outcome int

const (
	// Pass lets the event through unhandled.
	Pass Outcome = iota
	// Suppressed swallows the event.
	Suppressed
	// ContextRequest asks for the context menu at Action.Pos.
	ContextRequest
	// OpenLocation asks for the external map at Action.Geo.
	OpenLocation
)

// String returns the outcome name used in logs.
func (o Outcome) String() string {
	switch o {
	case Pass:
		return "pass"
	case Suppressed:
		return "suppressed"
	case ContextRequest:
		return "context-request"
	case OpenLocation:
		return "open-location"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// Action is the classification result. Geo is meaningful only when HasGeo
// is set, which requires the map to be visible.
type Action struct {
	Outcome Outcome
	Pos     geo.MapPoint
	Geo     geo.GeoPoint
	HasGeo  bool
}

// Classify maps ev to an Action. cfg converts the event position to
// geographic coordinates while the map is visible.
func Classify(ev Event, mapVisible bool, cfg geo.MapConfig) Action {
	switch ev.Kind {
	case KindScroll, KindWheel, KindKeyPress:
		return Action{Outcome: Suppressed}

	case KindButtonRelease:
		if ev.Button != ButtonRight {
			return Action{Outcome: Suppressed}
		}
		a := Action{Outcome: ContextRequest, Pos: ev.Pos}
		if mapVisible {
			a.Geo = geo.ToGeo(ev.Pos.X, ev.Pos.Y, cfg)
			a.HasGeo = true
		}
		return a

	case KindDoubleClick:
		if ev.Button != ButtonLeft || !mapVisible {
			return Action{Outcome: Suppressed}
		}
		return Action{
			Outcome: OpenLocation,
			Pos:     ev.Pos,
			Geo:     geo.ToGeo(ev.Pos.X, ev.Pos.Y, cfg),
			HasGeo:  true,
		}

	default:
		return Action{Outcome: Pass}
	}
}

// OpenMapLabel is the context menu caption for opening p on the map.
func OpenMapLabel(p geo.GeoPoint) string {
	return fmt.Sprintf("Open map (lat: %s, lon: %s)", geo.FormatCoord(p.Lat), geo.FormatCoord(p.Lon))
}

// Double click detection thresholds.
const (
	DoubleClickWindow   = 400 * time.Millisecond
	DoubleClickDistance = 1.0
)

// ClickTracker turns pairs of nearby left releases into a double click.
// Terminals report only presses and releases, so the overlay synthesizes the
// event itself. The zero value is ready to use.
type ClickTracker struct {
	last    time.Time
	lastPos geo.MapPoint
	armed   bool
}

// Observe records a left release at pos and reports whether it completes a
// double click. A completed pair disarms the tracker, so a triple click
// yields one double click.
func (c *ClickTracker) Observe(pos geo.MapPoint, at time.Time) bool {
	if c.armed && at.Sub(c.last) <= DoubleClickWindow && near(pos, c.lastPos) {
		c.armed = false
		return true
	}
	c.last, c.lastPos, c.armed = at, pos, true
	return false
}

// Reset forgets any pending first click.
func (c *ClickTracker) Reset() {
	c.armed = false
}

func near(a, b geo.MapPoint) bool {
	return math.Abs(a.X-b.X) <= DoubleClickDistance && math.Abs(a.Y-b.Y) <= DoubleClickDistance
}
