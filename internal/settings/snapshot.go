// Package settings turns the configuration file into immutable snapshots and
// announces each reload as a two-phase lifecycle: ReloadStart, then
// ReloadFinish carrying the new snapshot.
//
// Both phases travel on one ordered channel, so a consumer always sees a
// start fully before the matching finish, and never sees two reloads
// interleave.
package settings

import (
	"github.com/papapumpkin/meridian/internal/config"
	"github.com/papapumpkin/meridian/internal/geo"
	"github.com/papapumpkin/meridian/internal/places"
)

// Fallback surface size used when neither the config nor the terminal
// provides one.
const (
	FallbackWidth  = 160
	FallbackHeight = 96
)

// Box sizes the monitor panel.
type Box struct {
	Height      float64 `toml:"height"`
	BorderWidth float64 `toml:"border_width"`
}

// Screen is the drawing surface size in pixels.
type Screen struct {
	Width  int `toml:"width"`
	Height int `toml:"height"`
}

// Snapshot is one generation of settings. It is never mutated after Build.
type Snapshot struct {
	Generation uint64         `toml:"generation"`
	Map        geo.MapConfig  `toml:"map"`
	MapVisible bool           `toml:"map_visible"`
	MapHost    string         `toml:"map_host"`
	Box        Box            `toml:"box"`
	Screen     Screen         `toml:"screen"`
	Home       geo.GeoPoint   `toml:"home"`
	Location   geo.Location   `toml:"location"`
	Places     []places.Place `toml:"places"`
	Debug      bool           `toml:"debug"`
	Warnings   []string       `toml:"warnings,omitempty"`
}

// Build derives a snapshot from cfg. termW and termH are the terminal
// surface size in pixels and are used when the config leaves the screen size
// at zero.
func Build(cfg config.Config, termW, termH int, catalog []places.Place) Snapshot {
	mc := geo.MapConfig{
		PixelWidth: cfg.Map.Width,
		CenterX:    cfg.Map.CenterX,
		CenterY:    cfg.Map.CenterY,
	}
	home := geo.GeoPoint{Lat: cfg.Location.Lat, Lon: cfg.Location.Lon}

	return Snapshot{
		Map:        mc,
		MapVisible: cfg.Map.Visible,
		MapHost:    cfg.Map.Host,
		Box:        Box{Height: cfg.Box.Height, BorderWidth: cfg.Box.BorderWidth},
		Screen: Screen{
			Width:  pick(cfg.Screen.Width, termW, FallbackWidth),
			Height: pick(cfg.Screen.Height, termH, FallbackHeight),
		},
		Home:     home,
		Location: LocationAt(home, mc, cfg.Map.DotRadius, cfg.Map.DotBorder),
		Places:   catalog,
		Debug:    cfg.Debug,
		Warnings: cfg.Validate(),
	}
}

// LocationAt projects p onto mc and attaches the dot size.
func LocationAt(p geo.GeoPoint, mc geo.MapConfig, radius, border float64) geo.Location {
	return geo.Location{
		Point:     geo.ToMap(p.Lat, p.Lon, mc),
		DotRadius: radius,
		DotBorder: border,
	}
}

// pick returns the first positive value.
func pick(vals ...int) int {
	for _, v := range vals {
		if v > 0 {
			return v
		}
	}
	return 0
}
