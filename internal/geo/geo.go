// Package geo converts between geographic coordinates and pixel positions on
// a flat equirectangular world map.
//
// The map is described by a MapConfig: its longitude span covers PixelWidth
// pixels and its latitude span covers PixelWidth/2 pixels, both centered on
// (CenterX, CenterY). Nothing is clamped or wrapped; points outside the
// canonical ranges extrapolate linearly in both directions.
package geo

import "fmt"

// MapConfig describes where the world map sits on the drawing surface.
// PixelWidth must be positive. A zero width is tolerated by ToMap but makes
// ToGeo divide by zero, producing Inf/NaN coordinates instead of a panic.
type MapConfig struct {
	PixelWidth float64 `toml:"pixel_width"`
	CenterX    float64 `toml:"center_x"`
	CenterY    float64 `toml:"center_y"`
}

// Valid reports whether the config satisfies the PixelWidth > 0 precondition.
func (c MapConfig) Valid() bool {
	return c.PixelWidth > 0
}

// PixelHeight returns the height of the latitude span, which is always half
// the width.
func (c MapConfig) PixelHeight() float64 {
	return c.PixelWidth / 2
}

// GeoPoint is a latitude/longitude pair in degrees.
type GeoPoint struct {
	Lat float64 `toml:"lat"`
	Lon float64 `toml:"lon"`
}

// String formats the point with six decimals, latitude first.
func (p GeoPoint) String() string {
	return fmt.Sprintf("%s, %s", FormatCoord(p.Lat), FormatCoord(p.Lon))
}

// MapPoint is a position in surface pixel space.
type MapPoint struct {
	X float64 `toml:"x"`
	Y float64 `toml:"y"`
}

// Add returns p shifted by (dx, dy).
func (p MapPoint) Add(dx, dy float64) MapPoint {
	return MapPoint{X: p.X + dx, Y: p.Y + dy}
}

// ToMap projects a geographic position onto the map. North is up, so the y
// axis is inverted relative to latitude.
func ToMap(lat, lon float64, cfg MapConfig) MapPoint {
	return MapPoint{
		X: cfg.CenterX + lon*cfg.PixelWidth/360,
		Y: cfg.CenterY - lat*cfg.PixelHeight()/180,
	}
}

// ToGeo is the algebraic inverse of ToMap.
func ToGeo(x, y float64, cfg MapConfig) GeoPoint {
	return GeoPoint{
		Lat: (cfg.CenterY - y) * 180 / cfg.PixelHeight(),
		Lon: (x - cfg.CenterX) * 360 / cfg.PixelWidth,
	}
}

// Location is the tracked current position together with the size of the dot
// used to draw it.
type Location struct {
	Point     MapPoint `toml:"point"`
	DotRadius float64  `toml:"dot_radius"`
	DotBorder float64  `toml:"dot_border"`
}

// Offset is the distance from the dot's top-left corner to its center.
func (l Location) Offset() float64 {
	return l.DotRadius + l.DotBorder
}

// Anchor returns the top-left corner a marker must be placed at so that the
// dot is centered on Point.
func (l Location) Anchor() MapPoint {
	half := l.Offset()
	return l.Point.Add(-half, -half)
}
