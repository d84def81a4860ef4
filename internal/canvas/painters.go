package canvas

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/papapumpkin/meridian/internal/geo"
	"github.com/papapumpkin/meridian/internal/places"
	"github.com/papapumpkin/meridian/internal/scene"
	"github.com/papapumpkin/meridian/internal/terminator"
)

// Palette used by the painters.
const (
	ColorOcean   scene.Color = "#0B1D33"
	ColorLand    scene.Color = "#2E5E3A"
	ColorPlace   scene.Color = "#E0C55D"
	ColorDot     scene.Color = "#FF3B3B"
	ColorMarker  scene.Color = "#FFFFFF"
	ColorLine    scene.Color = "#F5A623"
	ColorLabel   scene.Color = "#F5D48A"
	ColorMonitor scene.Color = "#9AA5B1"
	ColorBorder  scene.Color = "#44505C"
)

// LabelTitle is the first line of every meridian label.
const LabelTitle = "00:00 UTC"

// backgroundPainter draws the world map, the place catalog and the location
// dot. dot is replaced by a location listener.
type backgroundPainter struct {
	cfg    geo.MapConfig
	places []places.Place
	dot    geo.Location
}

func (b *backgroundPainter) Paint(s scene.Surface, _ scene.Object) {
	if !b.cfg.Valid() {
		return
	}
	sw, sh := s.Size()
	left := int(math.Floor(b.cfg.CenterX - b.cfg.PixelWidth/2))
	top := int(math.Floor(b.cfg.CenterY - b.cfg.PixelHeight()/2))
	right := int(math.Ceil(b.cfg.CenterX + b.cfg.PixelWidth/2))
	bottom := int(math.Ceil(b.cfg.CenterY + b.cfg.PixelHeight()/2))

	for y := max(top, 0); y < min(bottom, sh); y++ {
		for x := max(left, 0); x < min(right, sw); x++ {
			// Sample the pixel centre.
			p := geo.ToGeo(float64(x)+0.5, float64(y)+0.5, b.cfg)
			if landAt(p.Lat, p.Lon) {
				s.Plot(x, y, ColorLand)
			} else {
				s.Plot(x, y, ColorOcean)
			}
		}
	}

	for _, pl := range b.places {
		mp := geo.ToMap(pl.Lat, pl.Lon, b.cfg)
		x0, x1 := span(math.Round(mp.X), math.Round(mp.X), sw)
		y0, y1 := span(math.Round(mp.Y), math.Round(mp.Y), sh)
		if x0 > x1 || y0 > y1 {
			continue
		}
		s.Plot(x0, y0, ColorPlace)
		// Names sit on the character row of the dot, two cells to the right.
		s.Text(x0+2, y0, pl.Name, ColorPlace)
	}

	disc(s, b.dot.Point, b.dot.DotRadius, ColorDot)
}

// linePainter draws a vertical meridian from the object position down.
type linePainter struct {
	height float64
}

func (l linePainter) Paint(s scene.Surface, o scene.Object) {
	sw, sh := s.Size()
	x := math.Round(o.Pos.X)
	x0, x1 := span(x, x, sw)
	if x0 > x1 {
		return
	}
	top := math.Round(o.Pos.Y)
	y0, y1 := span(top, top+math.Round(l.height)-1, sh)
	for y := y0; y <= y1; y++ {
		s.Plot(x0, y, ColorLine)
	}
}

// labelText is the mutable state of one label, fed by the line listener.
type labelText struct {
	date      time.Time
	longitude float64
	ok        bool
}

func (t *labelText) set(l terminator.Line) {
	t.date = l.ReferenceDate
	t.longitude = l.Longitude
	t.ok = true
}

// lines returns the label text, one entry per character row.
func (t *labelText) lines() []string {
	if !t.ok {
		return []string{LabelTitle}
	}
	return []string{
		LabelTitle,
		t.date.Format("Mon 02 Jan"),
		formatLongitude(t.longitude),
	}
}

type labelPainter struct {
	text *labelText
}

func (l labelPainter) Paint(s scene.Surface, o scene.Object) {
	x, y := round(o.Pos.X), round(o.Pos.Y)
	for i, line := range l.text.lines() {
		// Two pixels per character row.
		s.Text(x, y+2*i, line, ColorLabel)
	}
}

// markerPainter draws a ring around the location dot. The object position
// is the ring's top-left anchor.
type markerPainter struct {
	radius float64
}

func (m markerPainter) Paint(s scene.Surface, o scene.Object) {
	center := o.Pos.Add(m.radius, m.radius)
	sw, sh := s.Size()
	cx, cy := math.Round(center.X), math.Round(center.Y)
	r := math.Ceil(m.radius)
	x0, x1 := span(cx-r, cx+r, sw)
	y0, y1 := span(cy-r, cy+r, sh)
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			d := math.Hypot(float64(x)-cx, float64(y)-cy)
			if d <= m.radius+0.5 && d >= m.radius-0.5 {
				s.Plot(x, y, ColorMarker)
			}
		}
	}
}

// monitorPainter draws the status box along the bottom of the surface.
type monitorPainter struct {
	width      int
	height     float64
	builtAt    time.Time
	host       string
	heap       uint64
	generation uint64
	places     int
}

func (m monitorPainter) Paint(s scene.Surface, o scene.Object) {
	sw, sh := s.Size()
	x, y := round(o.Pos.X), round(o.Pos.Y)
	h := max(round(m.height), 2)
	for _, row := range []int{y, y + h - 1} {
		if row < 0 || row >= sh {
			continue
		}
		for i := max(0, -x); i < min(m.width, sw-x); i++ {
			s.Plot(x+i, row, ColorBorder)
		}
	}
	s.Text(x+2, y+2, m.status(), ColorMonitor)
}

func (m monitorPainter) status() string {
	parts := []string{
		"built " + m.builtAt.Format("15:04:05") + " UTC (" + humanize.Time(m.builtAt) + ")",
		"gen " + humanize.Comma(int64(m.generation)),
		"heap " + humanize.Bytes(m.heap),
	}
	if m.places > 0 {
		parts = append(parts, fmt.Sprintf("%d places", m.places))
	}
	if m.host != "" {
		parts = append(parts, m.host)
	}
	return strings.Join(parts, " | ")
}

// disc fills a circle of radius r around p.
func disc(s scene.Surface, p geo.MapPoint, r float64, c scene.Color) {
	sw, sh := s.Size()
	cx, cy := math.Round(p.X), math.Round(p.Y)
	n := math.Ceil(r)
	x0, x1 := span(cx-n, cx+n, sw)
	y0, y1 := span(cy-n, cy+n, sh)
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			if math.Hypot(float64(x)-cx, float64(y)-cy) <= r+0.25 {
				s.Plot(x, y, c)
			}
		}
	}
}

// span clips the inclusive pixel range [lo, hi] to [0, limit). An empty
// result has first > last. NaN bounds yield an empty range.
func span(lo, hi float64, limit int) (first, last int) {
	lo = math.Max(math.Ceil(lo), 0)
	hi = math.Min(math.Floor(hi), float64(limit-1))
	if !(lo <= hi) {
		return 0, -1
	}
	return int(lo), int(hi)
}

func formatLongitude(lon float64) string {
	hemi := "E"
	if lon < 0 {
		hemi = "W"
	}
	return fmt.Sprintf("%.1f°%s", math.Abs(lon), hemi)
}

func round(v float64) int {
	return int(math.Round(v))
}
