// Package terminator tracks the two meridians where it is currently 00:00 UTC:
// the midnight that started today and the one that starts tomorrow.
//
// As UTC time advances the midnight meridian sweeps westward at 15° per hour.
// At 12:00 UTC today's midnight sits at -180° and tomorrow's at +180°.
package terminator

import (
	"time"

	"github.com/papapumpkin/meridian/internal/geo"
)

// Interval is how often the lines are recomputed while the map is shown.
const Interval = 15 * time.Second

// degreesPerMinute is the eastward shift of a midnight meridian per minute of
// time remaining until it.
const degreesPerMinute = 360.0 / (24.0 * 60.0)

// Line is the projected position of one 00:00 UTC meridian.
type Line struct {
	// MinuteOffset is the signed number of minutes from now until the
	// reference midnight. Negative once that midnight has passed.
	MinuteOffset float64 `toml:"minute_offset"`
	// Longitude of the meridian in degrees.
	Longitude float64 `toml:"longitude"`
	// MapX is the meridian's x position on the map surface.
	MapX float64 `toml:"map_x"`
	// ReferenceDate is the 00:00 UTC instant the line belongs to.
	ReferenceDate time.Time `toml:"reference_date"`
}

// Pair holds today's line at index 0 and tomorrow's at index 1.
type Pair [2]Line

// Midnight truncates now to 00:00 UTC of the same calendar date.
func Midnight(now time.Time) time.Time {
	y, m, d := now.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// LineFor computes the line for the midnight instant zero as seen at now.
// Only whole seconds count toward the offset.
func LineFor(now, zero time.Time, cfg geo.MapConfig) Line {
	secs := zero.Unix() - now.Unix()
	offset := float64(secs) / 60.0
	lon := offset * degreesPerMinute
	return Line{
		MinuteOffset:  offset,
		Longitude:     lon,
		MapX:          geo.ToMap(0, lon, cfg).X,
		ReferenceDate: zero,
	}
}

// Compute returns both lines for the single instant now.
func Compute(now time.Time, cfg geo.MapConfig) Pair {
	zero := Midnight(now)
	return Pair{
		LineFor(now, zero, cfg),
		LineFor(now, zero.AddDate(0, 0, 1), cfg),
	}
}

// Engine owns the current pair of lines for one map configuration.
// It is not safe for concurrent use; the composition controller drives it
// from a single event loop.
type Engine struct {
	cfg      geo.MapConfig
	lines    Pair
	computed bool
}

// NewEngine returns an engine that projects onto cfg.
func NewEngine(cfg geo.MapConfig) *Engine {
	return &Engine{cfg: cfg}
}

// Recompute replaces both lines with values for now and returns them.
func (e *Engine) Recompute(now time.Time) Pair {
	e.lines = Compute(now, e.cfg)
	e.computed = true
	return e.lines
}

// Lines returns the last computed pair. ok is false before the first
// Recompute.
func (e *Engine) Lines() (lines Pair, ok bool) {
	return e.lines, e.computed
}
